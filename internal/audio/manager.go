package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// Manager mixes cues and music onto the system speaker.
// Until Init succeeds every method is a no-op, so a machine without an audio
// device still runs the game.
type Manager struct {
	mu          sync.Mutex
	sr          beep.SampleRate
	mixer       *beep.Mixer
	music       *beep.Ctrl
	musicVolume *effects.Volume
	volume      float64
	musicOn     bool
	initialized bool
}

// NewManager creates a manager for the given sample rate.
func NewManager(sampleRate int) *Manager {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &Manager{
		sr:      beep.SampleRate(sampleRate),
		mixer:   &beep.Mixer{},
		volume:  0.5,
		musicOn: true,
	}
}

// Init opens the speaker and starts the (possibly paused) music loop.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sr, m.sr.N(100*time.Millisecond)); err != nil {
		return err
	}

	m.musicVolume = newVolume(newMelody(m.sr), m.volume)
	m.music = &beep.Ctrl{Streamer: m.musicVolume, Paused: !m.musicOn}
	m.mixer.Add(m.music)
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Play mixes a cue in at the current volume.
func (m *Manager) Play(c Cue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	s := buildCue(c, m.sr, m.volume)
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// SetMusic pauses or resumes the music loop.
func (m *Manager) SetMusic(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.musicOn = on
	if !m.initialized {
		return
	}
	speaker.Lock()
	m.music.Paused = !on
	speaker.Unlock()
}

// SetVolume sets the master volume in [0, 1] for music and later cues.
func (m *Manager) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.volume = clampVolume(v)
	if !m.initialized {
		return
	}
	fresh := newVolume(nil, m.volume)
	speaker.Lock()
	m.musicVolume.Volume = fresh.Volume
	m.musicVolume.Silent = fresh.Silent
	speaker.Unlock()
}

// Volume returns the master volume.
func (m *Manager) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// Close silences everything and releases the speaker.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.music.Paused = true
	m.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	m.initialized = false
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Silent discards every request. Used for SSH sessions and --mute.
type Silent struct{}

func (Silent) Play(Cue)          {}
func (Silent) SetMusic(bool)     {}
func (Silent) SetVolume(float64) {}
func (Silent) Close()            {}
