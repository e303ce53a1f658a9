package platformer

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Alert messages shown during play.
const (
	msgJumped     = "jumped!"
	msgMoveLeft   = "Move Left"
	msgMoveRight  = "Move Right"
	msgHitEnemy   = "HIT BY ENEMY! YOU DIED!"
	msgFellInLava = "FELL IN LAVA! YOU DIED!"
	msgSaved      = "Game saved successfully!"
	msgSaveFailed = "Failed to save game"
	msgTimesUp    = "TIME'S UP!"
)

// AlertStyle is how an alert is drawn and how long it lives.
type AlertStyle struct {
	Color    core.Color
	Duration time.Duration
	Shake    int // Jitter amplitude in world pixels
}

// Alert is a transient on-screen message.
type Alert struct {
	Text    string
	Created time.Time
	Style   AlertStyle
}

// Expired reports whether the alert has outlived its style's duration.
func (a Alert) Expired(now time.Time) bool {
	return now.Sub(a.Created) >= a.Style.Duration
}

// Alerts is an ordered list of live messages, oldest first.
type Alerts struct {
	items []Alert
	plain AlertStyle
	coin  AlertStyle
}

// NewAlerts creates an empty list using the configured styles.
func NewAlerts(cfg config.AlertConfig) *Alerts {
	return &Alerts{
		plain: AlertStyle{
			Color:    core.ColorWhite,
			Duration: time.Duration(cfg.DurationMS) * time.Millisecond,
			Shake:    cfg.Shake,
		},
		coin: AlertStyle{
			Color:    core.ColorGold,
			Duration: time.Duration(cfg.CoinDurationMS) * time.Millisecond,
			Shake:    cfg.CoinShake,
		},
	}
}

// Add appends a message in the default style.
func (a *Alerts) Add(text string, now time.Time) {
	a.items = append(a.items, Alert{Text: text, Created: now, Style: a.plain})
}

// AddCoin appends a message in the coin style.
func (a *Alerts) AddCoin(text string, now time.Time) {
	a.items = append(a.items, Alert{Text: text, Created: now, Style: a.coin})
}

// Purge drops every expired alert, keeping the order of the rest.
func (a *Alerts) Purge(now time.Time) {
	kept := a.items[:0]
	for _, it := range a.items {
		if !it.Expired(now) {
			kept = append(kept, it)
		}
	}
	a.items = kept
}

// Clear drops everything.
func (a *Alerts) Clear() {
	a.items = a.items[:0]
}

// Items returns the live alerts, oldest first.
func (a *Alerts) Items() []Alert {
	return a.items
}

// Len returns the number of live alerts.
func (a *Alerts) Len() int {
	return len(a.items)
}
