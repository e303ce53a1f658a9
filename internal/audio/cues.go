// Package audio plays the platformer's procedural sound effects and music
// through gopxl/beep. Nothing is loaded from disk: every cue is synthesized.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Cue identifies a sound effect.
type Cue int

const (
	CueJump Cue = iota
	CueCoin
	CueGameOver
	CuePlatformWarning
	CueEnemyWarning
)

func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueCoin:
		return "coin"
	case CueGameOver:
		return "game-over"
	case CuePlatformWarning:
		return "platform-warning"
	case CueEnemyWarning:
		return "enemy-warning"
	default:
		return "unknown"
	}
}

// cueGain is the per-cue level before the master volume.
func cueGain(c Cue) float64 {
	switch c {
	case CuePlatformWarning, CueEnemyWarning:
		return 0.3
	default:
		return 0.5
	}
}

// buildCue synthesizes the finite stream for a cue at master volume vol.
func buildCue(c Cue, sr beep.SampleRate, vol float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueJump:
		s = newSweep(sr, 320, 640, 150*time.Millisecond)
	case CueCoin:
		s = beep.Seq(tone(sr, 988, 80*time.Millisecond), tone(sr, 1319, 220*time.Millisecond))
	case CueGameOver:
		s = beep.Seq(
			newSweep(sr, 440, 330, 200*time.Millisecond),
			newSweep(sr, 330, 220, 200*time.Millisecond),
			newSweep(sr, 220, 110, 400*time.Millisecond),
		)
	case CuePlatformWarning:
		s = newBlip(sr, 520, 60*time.Millisecond)
	case CueEnemyWarning:
		s = beep.Seq(newBlip(sr, 260, 50*time.Millisecond), beep.Silence(sr.N(30*time.Millisecond)), newBlip(sr, 260, 50*time.Millisecond))
	default:
		return beep.Silence(0)
	}
	return newVolume(s, cueGain(c)*vol)
}

// tone returns a sine note of the given length.
func tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return beep.Silence(sr.N(d))
	}
	return newFade(beep.Take(sr.N(d), sine), sr.N(d))
}

// newVolume wraps s in a volume effect; vol is linear in [0, 1].
// math.Log2(0) is -Inf, so zero is mapped to a silent effect.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// sweep is a sine glide between two frequencies.
type sweep struct {
	sr       beep.SampleRate
	from, to float64
	total    int
	pos      int
	phase    float64
}

func newSweep(sr beep.SampleRate, from, to float64, d time.Duration) beep.Streamer {
	return &sweep{sr: sr, from: from, to: to, total: sr.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*progress
		s.phase += freq / float64(s.sr)
		s.phase -= math.Floor(s.phase)

		// Linear release over the whole note.
		v := math.Sin(2*math.Pi*s.phase) * (1 - progress)
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// blip is a short square pulse.
type blip struct {
	sr    beep.SampleRate
	freq  float64
	total int
	pos   int
}

func newBlip(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	return &blip{sr: sr, freq: freq, total: sr.N(d)}
}

func (b *blip) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if b.pos >= b.total {
			return i, i > 0
		}
		t := float64(b.pos) / float64(b.sr)
		v := 0.6
		if math.Sin(2*math.Pi*b.freq*t) < 0 {
			v = -0.6
		}
		samples[i][0] = v
		samples[i][1] = v
		b.pos++
	}
	return len(samples), true
}

func (b *blip) Err() error { return nil }

// fade applies a linear release to the last fifth of a finite stream.
type fade struct {
	s     beep.Streamer
	total int
	pos   int
}

func newFade(s beep.Streamer, total int) beep.Streamer {
	return &fade{s: s, total: total}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.s.Stream(samples)
	release := max(f.total/5, 1)
	for i := 0; i < n; i++ {
		if remaining := f.total - f.pos; remaining < release {
			g := float64(remaining) / float64(release)
			samples[i][0] *= g
			samples[i][1] *= g
		}
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

// melody loops a short arpeggio forever; it is the background music.
type melody struct {
	sr      beep.SampleRate
	notes   []float64
	noteLen int
	pos     int
	phase   float64
}

func newMelody(sr beep.SampleRate) *melody {
	return &melody{
		sr:      sr,
		notes:   []float64{262, 330, 392, 523, 392, 330, 294, 349, 440, 349},
		noteLen: sr.N(240 * time.Millisecond),
	}
}

func (m *melody) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		idx := (m.pos / m.noteLen) % len(m.notes)
		inNote := m.pos % m.noteLen
		m.phase += m.notes[idx] / float64(m.sr)
		m.phase -= math.Floor(m.phase)

		env := 1 - float64(inNote)/float64(m.noteLen)
		v := 0.25 * env * math.Sin(2*math.Pi*m.phase)
		bass := 0.1 * math.Sin(2*math.Pi*m.notes[0]/2*float64(m.pos)/float64(m.sr))

		samples[i][0] = v + bass
		samples[i][1] = v + bass
		m.pos++
	}
	return len(samples), true
}

func (m *melody) Err() error { return nil }
