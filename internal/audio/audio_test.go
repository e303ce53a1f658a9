package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(44100)

// drain streams s to the end and returns the sample count, failing on
// samples outside [-1, 1].
func drain(t *testing.T, s beep.Streamer, limit int) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if math.Abs(buf[i][0]) > 1 || math.Abs(buf[i][1]) > 1 {
				t.Fatalf("sample %d out of range: %v", total+i, buf[i])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
	return total
}

func TestCuesAreFinite(t *testing.T) {
	cues := []Cue{CueJump, CueCoin, CueGameOver, CuePlatformWarning, CueEnemyWarning}
	limit := testRate.N(2 * time.Second)

	for _, c := range cues {
		t.Run(c.String(), func(t *testing.T) {
			n := drain(t, buildCue(c, testRate, 1.0), limit)
			if n == 0 || n >= limit {
				t.Errorf("cue %s streamed %d samples, expected a short finite sound", c, n)
			}
		})
	}
}

func TestSweepLength(t *testing.T) {
	s := newSweep(testRate, 200, 400, 100*time.Millisecond)
	if n := drain(t, s, testRate.N(time.Second)); n != testRate.N(100*time.Millisecond) {
		t.Errorf("sweep streamed %d samples, expected %d", n, testRate.N(100*time.Millisecond))
	}
	if s.Err() != nil {
		t.Errorf("unexpected error: %v", s.Err())
	}
}

func TestMelodyNeverEnds(t *testing.T) {
	m := newMelody(testRate)
	limit := testRate.N(3 * time.Second)
	if n := drain(t, m, limit); n < limit {
		t.Errorf("music stopped after %d samples", n)
	}
}

func TestNewVolumeZeroIsSilent(t *testing.T) {
	v := newVolume(beep.Silence(10), 0)
	if !v.Silent {
		t.Error("zero volume should be silent")
	}
	v = newVolume(beep.Silence(10), 0.5)
	if v.Silent || v.Volume != -1 {
		t.Errorf("volume 0.5 should be -1 in base 2, got %v silent=%v", v.Volume, v.Silent)
	}
}

func TestManagerWithoutSpeakerIsNoop(t *testing.T) {
	m := NewManager(0)
	m.Play(CueCoin)
	m.SetMusic(false)
	m.SetVolume(1.7)
	m.Close()

	if m.Volume() != 1 {
		t.Errorf("Volume() = %v, expected clamped 1", m.Volume())
	}
	if m.musicOn {
		t.Error("SetMusic(false) should be remembered for Init")
	}
}

func TestCueString(t *testing.T) {
	if CueEnemyWarning.String() != "enemy-warning" || Cue(42).String() != "unknown" {
		t.Error("unexpected cue names")
	}
}
