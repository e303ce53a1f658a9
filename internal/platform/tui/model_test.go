package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// stubGame records what the model feeds it.
type stubGame struct {
	state     platformer.State
	onStep    func() // Runs once on the next step
	frames    []core.InputFrame
	submitted []string
	submitErr error
	cancelled int
	overrides []int
	quit      bool
}

func (g *stubGame) ID() string                { return "platformer" }
func (g *stubGame) Reset(core.RuntimeConfig)  {}
func (g *stubGame) Resize(int, int)           {}
func (g *stubGame) Render(dst *core.Screen)   { dst.Clear() }
func (g *stubGame) State() core.GameState     { return core.GameState{Quit: g.quit} }
func (g *stubGame) Current() platformer.State { return g.state }
func (g *stubGame) NameField() core.Rect      { return core.NewRect(10, 5, 19, 3) }
func (g *stubGame) OverrideChanged(level int) { g.overrides = append(g.overrides, level) }
func (g *stubGame) CancelNameInput()          { g.cancelled++; g.state = platformer.StateMainMenu }

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	if g.onStep != nil {
		g.onStep()
		g.onStep = nil
	}
	return core.StepResult{State: g.State()}
}

func (g *stubGame) SubmitName(name string) error {
	g.submitted = append(g.submitted, name)
	if g.submitErr != nil {
		return g.submitErr
	}
	g.state = platformer.StateLevelSelect
	return nil
}

func (g *stubGame) lastFrame() core.InputFrame {
	return g.frames[len(g.frames)-1]
}

type stubScores struct {
	scores []storage.HighScore
}

func (s stubScores) TopHighScores(context.Context, int) ([]storage.HighScore, error) {
	return s.scores, nil
}

func newTestModel(g *stubGame, opts Options) Model {
	opts.Logger = log.New(&strings.Builder{})
	return NewModel(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}, opts)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMenuKeysArePressAndRelease(t *testing.T) {
	g := &stubGame{state: platformer.StateMainMenu}
	m := newTestModel(g, Options{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, TickMsg(time.Now()))

	f := g.lastFrame()
	if !f.Has(core.ActionDown) || !f.Released(core.ActionDown) {
		t.Error("menu key should be a press followed by a release")
	}
	if f.IsHeld(core.ActionDown) {
		t.Error("menu key should not stay held")
	}
}

func TestPlayingKeysAreHeld(t *testing.T) {
	g := &stubGame{state: platformer.StatePlaying}
	m := newTestModel(g, Options{HoldTimeout: time.Hour})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, TickMsg(time.Now()))
	if f := g.lastFrame(); !f.Has(core.ActionRight) || !f.IsHeld(core.ActionRight) {
		t.Fatal("first press should be held")
	}

	m = update(t, m, TickMsg(time.Now()))
	if f := g.lastFrame(); f.Has(core.ActionRight) || !f.IsHeld(core.ActionRight) {
		t.Error("hold should carry over without a new press event")
	}
}

func TestNameEntry(t *testing.T) {
	g := &stubGame{state: platformer.StateMainMenu}
	m := newTestModel(g, Options{DefaultName: "ann"})

	g.onStep = func() { g.state = platformer.StateNameInput }
	m = update(t, m, TickMsg(time.Now()))
	if !m.nameInput.Focused() {
		t.Fatal("entering name input should focus the field")
	}

	m = update(t, m, runes("e"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(g.submitted) != 1 || g.submitted[0] != "anne" {
		t.Fatalf("submitted %v, expected [anne]", g.submitted)
	}
	if m.nameInput.Focused() {
		t.Error("field should blur after a valid name")
	}
	if len(g.frames) != 1 {
		t.Error("typing should not reach the session as actions")
	}
}

func TestNameEntryShowsError(t *testing.T) {
	g := &stubGame{state: platformer.StateNameInput, submitErr: errors.New("bad name")}
	m := newTestModel(g, Options{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.nameErr != "bad name" {
		t.Errorf("nameErr = %q", m.nameErr)
	}
	if !strings.Contains(m.View(), "bad name") {
		t.Error("error should be drawn below the field")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if g.cancelled != 1 || m.nameErr != "" {
		t.Error("esc should cancel name input and clear the error")
	}
}

func TestScoreboardToggle(t *testing.T) {
	g := &stubGame{state: platformer.StateMainMenu}
	scores := stubScores{scores: []storage.HighScore{
		{PlayerName: "anne", Score: 12, Level: 3, DateAchieved: time.Now()},
	}}
	m := newTestModel(g, Options{Scores: scores})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.scoreboard == nil {
		t.Fatal("tab should open the scoreboard")
	}
	if view := m.View(); !strings.Contains(view, "HIGH SCORES") || !strings.Contains(view, "anne") {
		t.Error("scoreboard should list the scores")
	}

	m = update(t, m, TickMsg(time.Now()))
	if len(g.frames) != 0 {
		t.Error("session should not step behind the scoreboard")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.scoreboard != nil {
		t.Error("esc should close the scoreboard")
	}
}

func TestMouseBecomesPointerEvents(t *testing.T) {
	g := &stubGame{state: platformer.StateMainMenu}
	m := newTestModel(g, Options{})

	m = update(t, m, tea.MouseMsg{X: 4, Y: 7, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m = update(t, m, TickMsg(time.Now()))

	f := g.lastFrame()
	if len(f.Events) != 1 || f.Events[0].Kind != core.EventPointerPress || f.Events[0].X != 4 || f.Events[0].Y != 7 {
		t.Errorf("events = %+v", f.Events)
	}
}

func TestOverrideAndQuit(t *testing.T) {
	g := &stubGame{state: platformer.StatePlaying}
	m := newTestModel(g, Options{})

	m = update(t, m, overrideMsg(3))
	if len(g.overrides) != 1 || g.overrides[0] != 3 {
		t.Errorf("overrides = %v", g.overrides)
	}

	g.quit = true
	m = update(t, m, TickMsg(time.Now()))
	if !m.quitting || m.View() != "" {
		t.Error("a quit result should end the program")
	}
}

func TestRenderScreenTrimsRows(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "ab")
	s.SetWithColor(3, 1, '#', core.ColorRed)

	lines := strings.Split(RenderScreen(s), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if lines[0] != "ab" {
		t.Errorf("row 0 = %q, expected trailing blanks dropped", lines[0])
	}
	if !strings.HasPrefix(lines[1], "   ") || !strings.Contains(lines[1], "#") {
		t.Errorf("row 1 = %q", lines[1])
	}
}
