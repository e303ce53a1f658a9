package platformer

import "time"

// LevelTimer is the countdown-then-budget clock of one level attempt.
// It reads wall-clock time, so it does not depend on the frame rate.
type LevelTimer struct {
	start     time.Time
	countdown time.Duration
	duration  time.Duration
}

// NewLevelTimer starts a timer at start.
func NewLevelTimer(start time.Time, countdown, duration time.Duration) *LevelTimer {
	return &LevelTimer{start: start, countdown: countdown, duration: duration}
}

// Start returns when the level was (re)started.
func (t *LevelTimer) Start() time.Time {
	return t.start
}

// Duration returns the time budget after the countdown.
func (t *LevelTimer) Duration() time.Duration {
	return t.duration
}

// CountdownDone reports whether the pre-roll is over.
func (t *LevelTimer) CountdownDone(now time.Time) bool {
	return now.Sub(t.start) >= t.countdown
}

// CountdownLeft returns the whole seconds still shown by the pre-roll
// (3, 2, 1), or 0 once it is over.
func (t *LevelTimer) CountdownLeft(now time.Time) int {
	left := t.countdown - now.Sub(t.start)
	if left <= 0 {
		return 0
	}
	return int((left + time.Second - 1) / time.Second)
}

// Elapsed returns the time spent since the countdown ended, never negative.
func (t *LevelTimer) Elapsed(now time.Time) time.Duration {
	return max(0, now.Sub(t.start)-t.countdown)
}

// Remaining returns max(0, duration - elapsed).
func (t *LevelTimer) Remaining(now time.Time) time.Duration {
	return max(0, t.duration-t.Elapsed(now))
}

// Expired reports whether the budget has run out.
func (t *LevelTimer) Expired(now time.Time) bool {
	return t.CountdownDone(now) && t.Remaining(now) <= 0
}

// Shift moves the timer forward by d, e.g. to skip time spent paused.
func (t *LevelTimer) Shift(d time.Duration) {
	t.start = t.start.Add(d)
}

// formatClock renders a duration as MM:SS, truncating partial seconds.
func formatClock(d time.Duration) string {
	secs := int(d / time.Second)
	return twoDigits(secs/60) + ":" + twoDigits(secs%60)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + string(rune('0'+n))
	}
	if n > 99 {
		n = 99
	}
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}
