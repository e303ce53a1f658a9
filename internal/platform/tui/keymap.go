package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action. For ActionDigit the digit
// is returned as well.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, digit int) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, 0
	case "a", "left":
		return core.ActionLeft, 0
	case "d", "right":
		return core.ActionRight, 0
	case "w", "up":
		return core.ActionUp, 0
	case "s", "down":
		return core.ActionDown, 0
	case " ":
		return core.ActionJump, 0
	case "enter":
		return core.ActionConfirm, 0
	case "b", "esc":
		return core.ActionBack, 0
	case "p":
		return core.ActionPause, 0
	case "o":
		return core.ActionSettings, 0
	case "r":
		return core.ActionRestart, 0
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return core.ActionDigit, int(key[0] - '0')
	}
	return core.ActionNone, 0
}

// holdable reports whether an action stays down while its key repeats.
func holdable(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown, core.ActionJump:
		return true
	default:
		return false
	}
}

var holdableActions = []core.Action{
	core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown, core.ActionJump,
}

// HoldTracker synthesizes key releases. Terminals only report key presses
// (and auto-repeats), so a movement key counts as held until no repeat has
// arrived for the timeout.
type HoldTracker struct {
	timeout time.Duration
	until   *intmap.Map[core.Action, time.Time]
}

// NewHoldTracker creates a tracker releasing keys after timeout of silence.
func NewHoldTracker(timeout time.Duration) *HoldTracker {
	return &HoldTracker{
		timeout: timeout,
		until:   intmap.New[core.Action, time.Time](len(holdableActions)),
	}
}

// Press records a key press into frame. Only the first press of a hold
// produces a press event; repeats just extend the hold.
func (h *HoldTracker) Press(a core.Action, digit int, now time.Time, frame *core.InputFrame) {
	switch {
	case a == core.ActionDigit:
		frame.PressDigit(digit)
	case holdable(a):
		if _, down := h.until.Get(a); !down {
			frame.Press(a)
		}
		h.until.Put(a, now.Add(h.timeout))
	default:
		frame.Press(a)
		frame.Release(a)
	}
}

// Expire releases every hold whose timeout has passed.
func (h *HoldTracker) Expire(now time.Time, frame *core.InputFrame) {
	for _, a := range holdableActions {
		deadline, down := h.until.Get(a)
		if down && !now.Before(deadline) {
			h.until.Del(a)
			frame.Release(a)
		}
	}
}

// Held reports whether a is currently held.
func (h *HoldTracker) Held(a core.Action) bool {
	_, down := h.until.Get(a)
	return down
}
