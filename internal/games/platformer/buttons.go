package platformer

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

type buttonID int

const (
	btnStart buttonID = iota
	btnContinue
	btnSettings
	btnExit
	btnBack
	btnLevel
	btnSave
	btnResume
	btnRestart
	btnMainMenu
	btnMusic
	btnSFX
	btnVolume
	btnControls
)

// button is a clickable label in screen cells.
type button struct {
	id    buttonID
	level int // Valid for btnLevel
	label string
	rect  core.Rect
}

const (
	levelColumns   = 4
	levelCellWidth = 7
)

// buttons lays out the buttons of the active state. Rendering and hit testing
// share this layout, so a click lands on what is drawn.
func (s *Session) buttons() []button {
	now := s.clock()
	switch s.state {
	case StateMainMenu:
		if !s.titleDone(now) {
			return nil
		}
		labels := []button{{id: btnStart, label: "Start"}}
		if s.saved != nil {
			labels = append(labels, button{id: btnContinue, label: fmt.Sprintf("Continue (level %d)", s.saved.Level)})
		}
		labels = append(labels,
			button{id: btnSettings, label: "Settings"},
			button{id: btnExit, label: "Exit"},
		)
		return s.column(labels, s.height/2)

	case StateLevelSelect:
		return s.levelGrid()

	case StatePaused:
		return s.column([]button{
			{id: btnSave, label: "Save"},
			{id: btnResume, label: "Resume"},
			{id: btnRestart, label: "Restart"},
			{id: btnMainMenu, label: "Main menu"},
		}, s.height/2-3)

	case StateSettings:
		return s.column([]button{
			{id: btnMusic, label: "Music: " + onOff(s.settings.MusicEnabled)},
			{id: btnSFX, label: "Sound FX: " + onOff(s.settings.SFXEnabled)},
			{id: btnVolume, label: fmt.Sprintf("Volume: < %3d%% >", volumePercent(s.settings.Volume))},
			{id: btnControls, label: "Controls hint: " + onOff(s.settings.ControlsShown)},
			{id: btnBack, label: "Back"},
		}, s.height/2-4)

	case StateDead:
		return s.column([]button{
			{id: btnRestart, label: "Restart"},
			{id: btnMainMenu, label: "Main menu"},
		}, s.height/2+1)

	case StateWon:
		return s.column([]button{
			{id: btnRestart, label: "Play again"},
			{id: btnMainMenu, label: "Main menu"},
		}, s.height/2+1)
	}
	return nil
}

// column stacks buttons vertically, centred, two rows apart.
func (s *Session) column(btns []button, top int) []button {
	w := 0
	for _, b := range btns {
		w = max(w, len([]rune(b.label))+4)
	}
	x := (s.width - w) / 2
	for i := range btns {
		btns[i].rect = core.NewRect(x, top+2*i, w, 1)
	}
	return btns
}

func (s *Session) levelGrid() []button {
	rows := (levels.MaxLevel + levelColumns - 1) / levelColumns
	left := (s.width - levelColumns*levelCellWidth) / 2
	top := s.height/2 - rows

	btns := make([]button, 0, levels.MaxLevel+1)
	for n := 1; n <= levels.MaxLevel; n++ {
		col, row := (n-1)%levelColumns, (n-1)/levelColumns
		btns = append(btns, button{
			id:    btnLevel,
			level: n,
			label: fmt.Sprintf("%d", n),
			rect:  core.NewRect(left+col*levelCellWidth+1, top+2*row, levelCellWidth-2, 1),
		})
	}
	back := s.column([]button{{id: btnBack, label: "Back"}}, top+2*rows+1)
	return append(btns, back...)
}

// navigate moves the keyboard focus and returns the activated button, if any.
// Pointer presses activate the button under the pointer; the press event is
// the only trigger.
func (s *Session) navigate(in core.InputFrame, btns []button, grid bool) (button, bool) {
	if len(btns) == 0 {
		return button{}, false
	}
	s.focus = core.Clamp(s.focus, 0, len(btns)-1)

	for _, ev := range in.Events {
		switch ev.Kind {
		case core.EventPointerPress:
			for i, b := range btns {
				if b.rect.Contains(ev.X, ev.Y) {
					s.focus = i
					return b, true
				}
			}
		case core.EventPress:
			switch ev.Action {
			case core.ActionUp:
				step := 1
				if grid && s.focus >= levelColumns {
					step = levelColumns
				}
				s.focus = (s.focus - step + len(btns)) % len(btns)
			case core.ActionDown:
				step := 1
				if grid && s.focus+levelColumns < len(btns) {
					step = levelColumns
				}
				s.focus = (s.focus + step) % len(btns)
			case core.ActionLeft:
				if grid {
					s.focus = (s.focus - 1 + len(btns)) % len(btns)
				}
			case core.ActionRight:
				if grid {
					s.focus = (s.focus + 1) % len(btns)
				}
			case core.ActionConfirm, core.ActionJump:
				return btns[s.focus], true
			}
		}
	}
	return button{}, false
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

func volumePercent(v float64) int {
	return int(v*100 + 0.5)
}
