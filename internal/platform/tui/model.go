package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
)

// Game is what the model drives: the platformer session.
// It contains pure logic with no Bubble Tea dependency.
type Game interface {
	ID() string
	Reset(cfg core.RuntimeConfig)
	Resize(width, height int)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
	Current() platformer.State
	SubmitName(name string) error
	CancelNameInput()
	NameField() core.Rect
	OverrideChanged(level int)
}

// Options configures a Model.
type Options struct {
	Scores      ScoreSource   // Leaderboard for the Tab screen; may be nil
	HoldTimeout time.Duration // Synthetic key release delay
	DefaultName string        // Pre-filled player name
	Overrides   <-chan int    // Levels whose override file changed; may be nil
	Logger      *log.Logger
}

// overrideMsg reports an edited override file.
type overrideMsg int

// Model is the Bubble Tea model running one platformer session.
type Model struct {
	game       Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	keys       *KeyMapper
	holds      *HoldTracker
	inputFrame core.InputFrame
	gameState  core.GameState
	nameInput  textinput.Model
	nameErr    string
	scoreboard *ScoreboardModel
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given session.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.HoldTimeout <= 0 {
		opts.HoldTimeout = 140 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = platformer.MaxNameLen
	ti.Prompt = ""
	ti.SetValue(opts.DefaultName)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		opts:       opts,
		keys:       NewKeyMapper(),
		holds:      NewHoldTracker(opts.HoldTimeout),
		inputFrame: core.NewInputFrame(),
		nameInput:  ti,
	}
}

// Init starts the session and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate), waitForOverride(m.opts.Overrides))
}

// waitForOverride delivers the next override change, if a channel is set.
func waitForOverride(ch <-chan int) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return overrideMsg(n)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case overrideMsg:
		m.game.OverrideChanged(int(msg))
		return m, waitForOverride(m.opts.Overrides)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.scoreboard != nil {
		sb, cmd := m.scoreboard.Update(msg)
		m.scoreboard = &sb
		if sb.IsQuitting() {
			m.quitting = true
			return m, tea.Quit
		}
		if sb.IsGoingBack() {
			m.scoreboard = nil
		}
		return m, cmd
	}

	switch m.game.Current() {
	case platformer.StateNameInput:
		return m.handleNameKey(msg)
	case platformer.StateMainMenu:
		if msg.String() == "tab" {
			sb := NewScoreboardModel(m.opts.Scores, m.config.ScreenW, m.config.ScreenH)
			m.scoreboard = &sb
			return m, nil
		}
	}

	action, digit := m.keys.MapKey(msg)
	if action == core.ActionNone {
		return m, nil
	}
	if m.game.Current() == platformer.StatePlaying {
		m.holds.Press(action, digit, time.Now(), &m.inputFrame)
	} else if action == core.ActionDigit {
		m.inputFrame.PressDigit(digit)
	} else {
		// Menus take every key press, repeats included.
		m.inputFrame.Press(action)
		m.inputFrame.Release(action)
	}
	return m, nil
}

// handleNameKey routes keys to the name field while it is active.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if err := m.game.SubmitName(m.nameInput.Value()); err != nil {
			m.nameErr = err.Error()
			return m, nil
		}
		m.nameErr = ""
		m.nameInput.Blur()
		return m, nil
	case tea.KeyEsc:
		m.nameErr = ""
		m.nameInput.Blur()
		m.game.CancelNameInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handleMouse turns left button presses and releases into pointer events.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.scoreboard != nil || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		m.inputFrame.PointerPress(msg.X, msg.Y)
	case tea.MouseActionRelease:
		m.inputFrame.PointerRelease(msg.X, msg.Y)
	}
	return m, nil
}

// handleResize processes window resize events. The session keeps its state;
// only the layout follows the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)

	if m.scoreboard != nil {
		sb, cmd := m.scoreboard.Update(msg)
		m.scoreboard = &sb
		return m, cmd
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.scoreboard != nil {
		return m, tickCmd(m.config.TickRate)
	}

	before := m.game.Current()
	m.holds.Expire(now, &m.inputFrame)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.Quit {
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if after := m.game.Current(); after != before && after == platformer.StateNameInput {
		m.nameErr = ""
		m.nameInput.CursorEnd()
		cmd = m.nameInput.Focus()
	}

	return m, tea.Batch(cmd, tickCmd(m.config.TickRate))
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.render()

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot failed", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot failed", "err", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// render draws the session plus the name being typed.
func (m *Model) render() {
	m.game.Render(m.screen)
	if m.game.Current() != platformer.StateNameInput {
		return
	}

	field := m.game.NameField()
	value := []rune(m.nameInput.Value())
	pos := min(m.nameInput.Position(), len(value))
	x, y := field.X+2, field.Y+1
	m.screen.DrawTextColored(x, y, string(value), core.ColorBrightWhite)
	if pos < len(value) {
		m.screen.SetWithColor(x+pos, y, value[pos], core.ColorBrightYellow)
	} else {
		m.screen.SetWithColor(x+pos, y, '_', core.ColorBrightYellow)
	}
	if m.nameErr != "" {
		m.screen.DrawTextCenteredColored(field.Bottom()+3, m.nameErr, core.ColorRed)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	m.render()
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for a local session.
func Run(game Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Buttons are clickable
	)

	_, err := p.Run()
	return err
}
