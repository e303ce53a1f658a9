// Package platformer implements the platformer session: the menu state
// machine, level progression, timer, alerts and the per-frame game loop that
// drives the world simulation. It has no terminal dependencies; the platform
// layer feeds it input frames and draws its screen buffer.
package platformer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/audio"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// MaxNameLen is the longest accepted player name, in characters.
const MaxNameLen = 15

var (
	// ErrInvalidName is returned for empty or over-long player names.
	ErrInvalidName = errors.New("platformer: name must be 1-15 characters")
	// ErrWrongState is returned when an operation does not apply to the
	// active screen.
	ErrWrongState = errors.New("platformer: not accepted in the current state")
)

// Store is the persistence the session uses. Every call is best effort.
type Store interface {
	SaveProgress(ctx context.Context, p storage.Progress) error
	LoadProgress(ctx context.Context) (storage.Progress, bool, error)
	SaveHighScore(ctx context.Context, name string, score, level int) (bool, error)
	LoadSettings(ctx context.Context) (storage.Settings, error)
	SaveSettings(ctx context.Context, s storage.Settings) error
}

// Sounds plays cues and music.
type Sounds interface {
	Play(c audio.Cue)
	SetMusic(on bool)
	SetVolume(v float64)
}

// LevelSource returns the tile grid of a level.
type LevelSource interface {
	Level(n int) levels.Grid
}

// Options configures a Session. Zero values pick working defaults: no
// persistence, no sound, built-in levels and the wall clock.
type Options struct {
	Config  config.PlatformerConfig
	Store   Store
	Sounds  Sounds
	Levels  LevelSource
	Logger  *log.Logger
	Clock   func() time.Time
	Context context.Context
}

// storeTimeout bounds a single persistence call made from the game loop.
const storeTimeout = 2 * time.Second

// Session is one player's run through the game, from the main menu on.
type Session struct {
	cfg    config.PlatformerConfig
	rules  world.Rules
	store  Store
	sounds Sounds
	levels LevelSource
	logger *log.Logger
	clock  func() time.Time
	ctx    context.Context
	rng    *rand.Rand

	state          State
	settingsReturn State
	focus          int

	level      int
	score      int
	playerName string
	playedPrev int // Seconds played on earlier levels of this run

	world    *world.World
	player   *world.Player
	timer    *LevelTimer
	alerts   *Alerts
	settings storage.Settings
	cause    world.Cause

	frozenAt      time.Time
	lastAction    time.Time
	scoreFlashEnd time.Time
	titleStart    time.Time
	platformWarn  time.Time
	enemyWarn     time.Time

	saved *storage.Progress
	quit  bool

	width, height int
}

// New creates a session on the main menu.
func New(opts Options) *Session {
	s := &Session{
		cfg:    opts.Config,
		store:  opts.Store,
		sounds: opts.Sounds,
		levels: opts.Levels,
		logger: opts.Logger,
		clock:  opts.Clock,
		ctx:    opts.Context,
	}
	if s.cfg.Timer.Durations == nil {
		s.cfg = config.DefaultPlatformerConfig()
	}
	if s.sounds == nil {
		s.sounds = audio.Silent{}
	}
	if s.levels == nil {
		s.levels = levels.NewProvider("", nil)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}

	s.rules = RulesFromConfig(s.cfg)
	s.alerts = NewAlerts(s.cfg.Alerts)
	s.settings = s.loadSettings()
	s.applyAudio()

	s.Reset(core.DefaultConfig())
	return s
}

// RulesFromConfig converts the physics section of a config into world rules.
func RulesFromConfig(cfg config.PlatformerConfig) world.Rules {
	r := world.DefaultRules()
	p := cfg.Physics
	r.Gravity = p.Gravity
	r.MaxFallSpeed = p.MaxFallSpeed
	r.JumpPower = p.JumpPower
	r.HardJumpPower = p.HardJumpPower
	r.HardFromLevel = p.HardFromLevel
	r.MoveSpeed = p.MoveSpeed
	r.PlatformThreshold = p.PlatformThreshold
	r.WalkCooldown = p.WalkCooldown
	r.PatrolBound = p.PatrolBound
	r.GhostRise = p.GhostRise
	r.GhostCeiling = p.GhostCeiling
	r.SpawnX = cfg.Player.SpawnX
	r.SpawnY = cfg.Player.SpawnY
	r.PlayerW = cfg.Player.Width
	r.PlayerH = cfg.Player.Height
	return r
}

// ID returns the game identifier used for screenshots and logs.
func (s *Session) ID() string { return "platformer" }

// Title returns the display name.
func (s *Session) Title() string { return "Platformer" }

// Reset returns to the main menu with an empty world.
func (s *Session) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = s.clock().UnixNano()
	}
	s.rng = rand.New(rand.NewSource(seed))
	s.Resize(cfg.ScreenW, cfg.ScreenH)
	s.quit = false
	s.toMainMenu()
}

// Resize changes the screen size the layout is computed for.
func (s *Session) Resize(width, height int) {
	s.width, s.height = width, height
}

// Step advances the session by one frame.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	now := s.clock()
	s.alerts.Purge(now)

	if in.Has(core.ActionQuit) && s.state != StateNameInput {
		s.quit = true
	}

	switch s.state {
	case StateMainMenu:
		s.stepMainMenu(in, now)
	case StateNameInput:
		if in.Has(core.ActionBack) {
			s.setState(StateMainMenu)
		}
	case StateLevelSelect:
		s.stepLevelSelect(in)
	case StateSettings:
		s.stepSettings(in, now)
	case StatePlaying:
		s.stepPlaying(in, now)
	case StatePaused:
		s.stepPaused(in, now)
	case StateDead:
		s.stepDead(in)
	case StateWon:
		s.stepWon(in)
	}

	return core.StepResult{State: s.State()}
}

// State summarizes the session for the platform layer.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:    s.score,
		Level:    s.level,
		Screen:   s.state.String(),
		GameOver: s.state == StateDead || s.state == StateWon,
		Paused:   s.state.Overlay(),
		Quit:     s.quit,
	}
}

// Current returns the active state.
func (s *Session) Current() State { return s.state }

// PlayerName returns the name scores are recorded under.
func (s *Session) PlayerName() string { return s.playerName }

// Settings returns the live user settings.
func (s *Session) Settings() storage.Settings { return s.settings }

// Alerts returns the live alert list.
func (s *Session) Alerts() []Alert { return s.alerts.Items() }

// Remaining returns the time left on the level clock, or 0 outside a level.
func (s *Session) Remaining() time.Duration {
	if s.timer == nil || s.level == 0 {
		return 0
	}
	return s.timer.Remaining(s.frozenOr(s.clock()))
}

// StartNameInput moves from the main menu to name entry.
func (s *Session) StartNameInput() error {
	if s.state != StateMainMenu {
		return ErrWrongState
	}
	s.setState(StateNameInput)
	return nil
}

// SubmitName validates and stores the player name, then opens level select.
func (s *Session) SubmitName(name string) error {
	if s.state != StateNameInput {
		return ErrWrongState
	}
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLen {
		return ErrInvalidName
	}
	s.playerName = name
	s.setState(StateLevelSelect)
	return nil
}

// CancelNameInput returns from name entry to the main menu.
func (s *Session) CancelNameInput() {
	if s.state == StateNameInput {
		s.setState(StateMainMenu)
	}
}

// OverrideChanged reports that the override file of level n was edited.
// The new layout takes effect the next time the level is built.
func (s *Session) OverrideChanged(n int) {
	if s.level > 0 && n == s.level {
		s.alerts.Add(fmt.Sprintf("Level %d changed, restart to reload", n), s.clock())
		return
	}
	s.logger.Debug("level override changed", "level", n)
}

func (s *Session) setState(next State) {
	if next == s.state {
		return
	}
	s.logger.Debug("state change", "from", s.state, "to", next)
	s.state = next
	s.focus = 0
	if next == StateMainMenu {
		s.titleStart = s.clock()
		s.saved = s.loadProgress()
	}
}

func (s *Session) toMainMenu() {
	s.level = 0
	s.score = 0
	s.playedPrev = 0
	s.world = world.Empty()
	s.player = world.NewPlayer(s.rules)
	s.timer = nil
	s.frozenAt = time.Time{}
	s.alerts.Clear()
	s.state = StateMainMenu
	s.focus = 0
	s.titleStart = s.clock()
	s.saved = s.loadProgress()
}

func (s *Session) titleDone(now time.Time) bool {
	fade := time.Duration(s.cfg.Hints.TitleFadeMS) * time.Millisecond
	return now.Sub(s.titleStart) >= fade
}

func (s *Session) stepMainMenu(in core.InputFrame, now time.Time) {
	if !s.titleDone(now) {
		return
	}
	if in.Has(core.ActionSettings) {
		s.openSettings(StateMainMenu)
		return
	}
	b, ok := s.navigate(in, s.buttons(), false)
	if !ok {
		return
	}
	switch b.id {
	case btnStart:
		s.setState(StateNameInput)
	case btnContinue:
		s.continueSaved()
	case btnSettings:
		s.openSettings(StateMainMenu)
	case btnExit:
		s.quit = true
	}
}

func (s *Session) continueSaved() {
	if s.saved == nil {
		return
	}
	p := *s.saved
	s.playerName = p.PlayerName
	s.playedPrev = p.PlayTime
	s.startLevel(core.Clamp(p.Level, 1, levels.MaxLevel), p.Score)
}

func (s *Session) stepLevelSelect(in core.InputFrame) {
	if in.Has(core.ActionBack) {
		s.setState(StateMainMenu)
		return
	}
	for _, ev := range in.Events {
		if ev.Kind == core.EventPress && ev.Action == core.ActionDigit &&
			ev.Digit >= 1 && ev.Digit <= levels.MaxLevel {
			s.newRun(ev.Digit)
			return
		}
	}
	b, ok := s.navigate(in, s.buttons(), true)
	if !ok {
		return
	}
	switch b.id {
	case btnLevel:
		s.newRun(b.level)
	case btnBack:
		s.setState(StateMainMenu)
	}
}

// newRun starts level n with score 0.
func (s *Session) newRun(n int) {
	s.playedPrev = 0
	s.startLevel(n, 0)
}

// startLevel (re)builds level n and enters Playing.
func (s *Session) startLevel(n, score int) {
	now := s.clock()
	s.level = n
	s.score = score
	s.world = world.New(s.levels.Level(n))
	s.world.AddCoin(world.NewCoin(20, 20))
	s.player.Reset(s.rules)
	s.cause = world.CauseNone

	countdown := time.Duration(s.cfg.Timer.CountdownSeconds) * time.Second
	duration := time.Duration(s.cfg.Timer.LevelDuration(n)) * time.Second
	s.timer = NewLevelTimer(now, countdown, duration)

	s.frozenAt = time.Time{}
	s.lastAction = now.Add(countdown)
	s.scoreFlashEnd = time.Time{}
	s.platformWarn = time.Time{}
	s.enemyWarn = time.Time{}

	s.logger.Debug("level start", "level", n, "score", score, "duration", duration)
	s.setState(StatePlaying)
}

func (s *Session) stepPlaying(in core.InputFrame, now time.Time) {
	if in.Has(core.ActionPause) || in.Has(core.ActionBack) {
		s.frozenAt = now
		s.setState(StatePaused)
		return
	}
	if in.Has(core.ActionSettings) {
		s.frozenAt = now
		s.openSettings(StatePlaying)
		return
	}
	if !s.timer.CountdownDone(now) {
		return
	}

	if in.Has(core.ActionLeft) {
		s.alerts.Add(msgMoveLeft, now)
	}
	if in.Has(core.ActionRight) {
		s.alerts.Add(msgMoveRight, now)
	}

	if s.timer.Expired(now) {
		s.die(world.CauseTimeout, now)
		return
	}

	s.world.Step(s.rules)
	s.collectCoins(now)
	s.world.AnimateExits()

	rep := s.player.Update(s.world, controlsFrom(in), s.level, s.rules)
	if rep.Jumped {
		s.alerts.Add(msgJumped, now)
		s.cue(audio.CueJump)
	}
	if rep.Moved {
		s.lastAction = now
	}

	switch rep.Outcome {
	case world.Dead:
		s.die(rep.Cause, now)
		return
	case world.Exited:
		s.completeLevel(now)
		return
	}

	s.proximityWarnings(now)
}

// controlsFrom treats a press within the frame as held so a tap shorter
// than one frame still registers.
func controlsFrom(in core.InputFrame) world.Controls {
	held := func(a core.Action) bool { return in.IsHeld(a) || in.Has(a) }
	return world.Controls{
		Left:  held(core.ActionLeft),
		Right: held(core.ActionRight),
		Jump:  held(core.ActionJump) || held(core.ActionUp),
	}
}

func (s *Session) collectCoins(now time.Time) {
	n := s.world.CollectCoins(s.player.Rect)
	for range n {
		s.score++
		s.alerts.AddCoin(fmt.Sprintf("+1 Coin! (Total: %d)", s.score), now)
		s.cue(audio.CueCoin)
	}
	if n > 0 {
		s.scoreFlashEnd = now.Add(time.Duration(s.cfg.Hints.ScoreFlashMS) * time.Millisecond)
	}
}

func (s *Session) die(cause world.Cause, now time.Time) {
	s.cause = cause
	s.player.Kill()
	switch cause {
	case world.CauseEnemy:
		s.alerts.Add(msgHitEnemy, now)
	case world.CauseLava:
		s.alerts.Add(msgFellInLava, now)
	case world.CauseTimeout:
		s.alerts.Add(msgTimesUp, now)
	}
	s.cue(audio.CueGameOver)
	s.setState(StateDead)
}

func (s *Session) completeLevel(now time.Time) {
	s.playedPrev += int(s.timer.Elapsed(now) / time.Second)
	s.saveHighScore()

	next := s.level + 1
	if next > levels.MaxLevel {
		s.setState(StateWon)
		return
	}
	s.startLevel(next, s.score)
}

func (s *Session) proximityWarnings(now time.Time) {
	if !s.settings.SFXEnabled {
		return
	}
	cooldown := time.Duration(s.cfg.Audio.WarningCooldownMS) * time.Millisecond

	near := func(distSq, limit int) bool {
		return distSq >= 0 && distSq < limit*limit
	}
	if near(s.world.NearestPlatformSq(s.player.Rect), s.cfg.Audio.PlatformProximity) &&
		now.Sub(s.platformWarn) >= cooldown {
		s.platformWarn = now
		s.sounds.Play(audio.CuePlatformWarning)
	}
	if near(s.world.NearestEnemySq(s.player.Rect), s.cfg.Audio.EnemyProximity) &&
		now.Sub(s.enemyWarn) >= cooldown {
		s.enemyWarn = now
		s.sounds.Play(audio.CueEnemyWarning)
	}
}

func (s *Session) stepPaused(in core.InputFrame, now time.Time) {
	if in.Has(core.ActionPause) || in.Has(core.ActionBack) {
		s.resume(now)
		return
	}
	if in.Has(core.ActionSettings) {
		s.openSettings(StatePaused)
		return
	}
	b, ok := s.navigate(in, s.buttons(), false)
	if !ok {
		return
	}
	switch b.id {
	case btnSave:
		s.saveProgress(now)
	case btnResume:
		s.resume(now)
	case btnRestart:
		s.newRun(s.level)
	case btnMainMenu:
		s.toMainMenu()
	}
}

// resume unfreezes the level clock and returns to Playing.
func (s *Session) resume(now time.Time) {
	if !s.frozenAt.IsZero() {
		s.timer.Shift(now.Sub(s.frozenAt))
		s.lastAction = s.lastAction.Add(now.Sub(s.frozenAt))
		s.frozenAt = time.Time{}
	}
	s.setState(StatePlaying)
}

func (s *Session) frozenOr(now time.Time) time.Time {
	if !s.frozenAt.IsZero() {
		return s.frozenAt
	}
	return now
}

func (s *Session) stepDead(in core.InputFrame) {
	s.player.Float(s.rules)

	if in.Has(core.ActionRestart) {
		s.newRun(s.level)
		return
	}
	b, ok := s.navigate(in, s.buttons(), false)
	if !ok {
		return
	}
	switch b.id {
	case btnRestart:
		s.newRun(s.level)
	case btnMainMenu:
		s.toMainMenu()
	}
}

func (s *Session) stepWon(in core.InputFrame) {
	if in.Has(core.ActionRestart) {
		s.newRun(1)
		return
	}
	b, ok := s.navigate(in, s.buttons(), false)
	if !ok {
		return
	}
	switch b.id {
	case btnRestart:
		s.newRun(1)
	case btnMainMenu:
		s.toMainMenu()
	}
}

func (s *Session) openSettings(from State) {
	s.settingsReturn = from
	s.setState(StateSettings)
}

func (s *Session) closeSettings(now time.Time) {
	if s.settingsReturn == StatePlaying {
		s.resume(now)
		return
	}
	s.setState(s.settingsReturn)
}

func (s *Session) stepSettings(in core.InputFrame, now time.Time) {
	if in.Has(core.ActionBack) || in.Has(core.ActionSettings) {
		s.closeSettings(now)
		return
	}

	btns := s.buttons()
	if s.focus < len(btns) && btns[s.focus].id == btnVolume {
		switch {
		case in.Has(core.ActionLeft):
			s.changeSettings(func(st *storage.Settings) { st.Volume = stepVolume(st.Volume, -1) })
		case in.Has(core.ActionRight):
			s.changeSettings(func(st *storage.Settings) { st.Volume = stepVolume(st.Volume, 1) })
		}
	}

	b, ok := s.navigate(in, btns, false)
	if !ok {
		return
	}
	switch b.id {
	case btnMusic:
		s.changeSettings(func(st *storage.Settings) { st.MusicEnabled = !st.MusicEnabled })
	case btnSFX:
		s.changeSettings(func(st *storage.Settings) { st.SFXEnabled = !st.SFXEnabled })
	case btnVolume:
		s.changeSettings(func(st *storage.Settings) {
			if volumePercent(st.Volume) >= 100 {
				st.Volume = 0
				return
			}
			st.Volume = stepVolume(st.Volume, 1)
		})
	case btnControls:
		s.changeSettings(func(st *storage.Settings) { st.ControlsShown = !st.ControlsShown })
	case btnBack:
		s.closeSettings(now)
	}
}

// stepVolume moves v by one tenth in direction dir, within [0, 1].
func stepVolume(v float64, dir int) float64 {
	pct := volumePercent(v) + 10*dir
	return float64(core.Clamp(pct, 0, 100)) / 100
}

func (s *Session) changeSettings(mutate func(*storage.Settings)) {
	next := s.settings
	mutate(&next)
	s.settings = next
	s.applyAudio()
	s.saveSettings()
}

func (s *Session) applyAudio() {
	s.sounds.SetVolume(s.settings.Volume)
	s.sounds.SetMusic(s.settings.MusicEnabled)
}

func (s *Session) cue(c audio.Cue) {
	if s.settings.SFXEnabled {
		s.sounds.Play(c)
	}
}

// hintVisible reports whether the controls hint is on screen.
func (s *Session) hintVisible(now time.Time) bool {
	if !s.settings.ControlsShown || s.state != StatePlaying || !s.timer.CountdownDone(now) {
		return false
	}
	countdownEnd := s.timer.Start().Add(time.Duration(s.cfg.Timer.CountdownSeconds) * time.Second)
	display := time.Duration(s.cfg.Hints.DisplayMS) * time.Millisecond
	idle := time.Duration(s.cfg.Hints.IdleMS) * time.Millisecond
	return now.Sub(countdownEnd) < display || now.Sub(s.lastAction) >= idle
}

func (s *Session) storeCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(s.ctx, storeTimeout)
}

func (s *Session) loadSettings() storage.Settings {
	if s.store == nil {
		return storage.DefaultSettings()
	}
	ctx, cancel := s.storeCtx()
	defer cancel()
	st, err := s.store.LoadSettings(ctx)
	if err != nil {
		s.logger.Warn("loading settings failed, using defaults", "err", err)
		return storage.DefaultSettings()
	}
	return st
}

func (s *Session) saveSettings() {
	if s.store == nil {
		return
	}
	ctx, cancel := s.storeCtx()
	defer cancel()
	if err := s.store.SaveSettings(ctx, s.settings); err != nil {
		s.logger.Warn("saving settings failed", "err", err)
	}
}

func (s *Session) loadProgress() *storage.Progress {
	if s.store == nil {
		return nil
	}
	ctx, cancel := s.storeCtx()
	defer cancel()
	p, ok, err := s.store.LoadProgress(ctx)
	if err != nil {
		s.logger.Warn("loading progress failed", "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	return &p
}

func (s *Session) saveProgress(now time.Time) {
	if s.store == nil {
		s.alerts.Add(msgSaveFailed, now)
		return
	}
	p := storage.Progress{
		PlayerName: s.playerName,
		Level:      s.level,
		Score:      s.score,
		PlayTime:   s.playedPrev + int(s.timer.Elapsed(s.frozenOr(now))/time.Second),
	}
	ctx, cancel := s.storeCtx()
	defer cancel()
	if err := s.store.SaveProgress(ctx, p); err != nil {
		s.logger.Warn("saving progress failed", "err", err)
		s.alerts.Add(msgSaveFailed, now)
		return
	}
	s.alerts.Add(msgSaved, now)
}

func (s *Session) saveHighScore() {
	if s.store == nil {
		return
	}
	name := s.playerName
	if name == "" {
		name = storage.DefaultPlayerName
	}
	ctx, cancel := s.storeCtx()
	defer cancel()
	wrote, err := s.store.SaveHighScore(ctx, name, s.score, s.level)
	if err != nil {
		s.logger.Warn("saving high score failed", "err", err)
		return
	}
	s.logger.Debug("high score", "player", name, "score", s.score, "level", s.level, "new_best", wrote)
}
