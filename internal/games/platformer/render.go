package platformer

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
)

// Visual characters for rendering
const (
	DirtChar     = '▓'
	GrassChar    = '█'
	EnemyChar    = '◆'
	PlatformChar = '═'
	LavaChar     = '≈'
	CoinChar     = '●'
	ExitChar     = '╳'
	ExitDimChar  = 'x'
)

const (
	title     = "TUI PLATFORMER"
	hintText  = "←/→ move  SPACE jump  P pause  O settings"
	shakeTime = 300 * time.Millisecond
)

var (
	playerHead = []rune("◖◗")
	ghostLegs  = []rune("╰╯")
	walkLegs   = [][]rune{
		[]rune("▌▐"),
		[]rune("╱▐"),
		[]rune("╱╲"),
		[]rune("▌╲"),
	}
)

// Render draws the active state into dst.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	now := s.clock()

	switch s.state {
	case StateMainMenu:
		s.drawMainMenu(dst, now)
	case StateNameInput:
		s.drawNameInput(dst)
	case StateLevelSelect:
		s.drawLevelSelect(dst)
	case StateSettings:
		if s.level > 0 {
			s.drawLevel(dst, now)
		}
		s.drawPanel(dst, "SETTINGS", 12, "←/→ volume  ESC back")
		s.drawButtons(dst)
	case StatePlaying:
		s.drawLevel(dst, now)
		if left := s.timer.CountdownLeft(now); left > 0 {
			f := s.field()
			dst.DrawTextCenteredColored(f.Y+f.H/2-1, "GET READY", core.ColorBrightWhite)
			dst.DrawTextCenteredColored(f.Y+f.H/2+1, fmt.Sprintf("%d", left), core.ColorBrightYellow)
		}
	case StatePaused:
		s.drawLevel(dst, now)
		s.drawPanel(dst, "PAUSED", 10, "P resume")
		s.drawButtons(dst)
	case StateDead:
		s.drawLevel(dst, now)
		s.drawPanel(dst, "YOU DIED", 7, "R restart")
		dst.DrawTextCenteredColored(s.height/2-1, causeText(s.cause), core.ColorRed)
		s.drawButtons(dst)
	case StateWon:
		s.drawLevel(dst, now)
		s.drawPanel(dst, "YOU WIN!", 7, "R play again")
		dst.DrawTextCenteredColored(s.height/2-1, fmt.Sprintf("Final score: %d", s.score), core.ColorGold)
		s.drawButtons(dst)
	}

	s.drawAlerts(dst, now)
}

// NameField returns the screen cells where the platform draws the name
// being typed.
func (s *Session) NameField() core.Rect {
	w := MaxNameLen + 4
	return core.NewRect((s.width-w)/2, s.height/2-1, w, 3)
}

// field returns the screen rectangle of the playfield in cells.
func (s *Session) field() core.Rect {
	cw, ch := s.cellSize()
	px := levels.GridSize * levels.TileSize
	w, h := px/cw, px/ch
	x := max((s.width-w)/2, 0)
	y := max((s.height-h-2)/2+1, 1)
	return core.NewRect(x, y, w, h)
}

func (s *Session) cellSize() (int, int) {
	return max(s.cfg.Display.CellWidth, 1), max(s.cfg.Display.CellHeight, 1)
}

// toCells projects a world rectangle to a screen rectangle. The origin is
// floored and the size rounded up, so every entity keeps a stable footprint
// while it moves.
func (s *Session) toCells(r core.Rect) core.Rect {
	cw, ch := s.cellSize()
	f := s.field()
	return core.NewRect(
		f.X+core.FloorDiv(r.X, cw),
		f.Y+core.FloorDiv(r.Y, ch),
		max(core.CeilDiv(r.W, cw), 1),
		max(core.CeilDiv(r.H, ch), 1),
	)
}

func (s *Session) drawLevel(dst *core.Screen, now time.Time) {
	f := s.field()

	for _, b := range s.world.Blocks {
		if b.Kind == levels.TileGrass {
			dst.FillRect(s.toCells(b.Rect), GrassChar, core.ColorGreen)
		} else {
			dst.FillRect(s.toCells(b.Rect), DirtChar, core.ColorBrown)
		}
	}
	for _, l := range s.world.Lava {
		dst.FillRect(s.toCells(l.Rect), LavaChar, core.ColorRed)
	}
	for _, p := range s.world.Platforms {
		dst.FillRect(s.toCells(p.Rect), PlatformChar, core.ColorGray)
	}
	for _, e := range s.world.Exits {
		ch := ExitDimChar
		if e.Scale() > 0.9 {
			ch = ExitChar
		}
		dst.FillRect(s.toCells(e.Rect), ch, core.ColorBrightRed)
	}
	for _, c := range s.world.Coins {
		r := s.toCells(c.Rect)
		dst.SetWithColor(r.X, r.Y, CoinChar, core.ColorGold)
	}
	for _, e := range s.world.Enemies {
		dst.FillRect(s.toCells(e.Rect), EnemyChar, core.ColorMagenta)
	}
	s.drawPlayer(dst)

	s.drawHUD(dst, f, now)
}

func (s *Session) drawPlayer(dst *core.Screen) {
	r := s.toCells(s.player.Rect)
	color := core.ColorBrightYellow
	legs := walkLegs[s.player.Frame%len(walkLegs)]
	if s.player.Dead {
		color = core.ColorCyan
		legs = ghostLegs
	}
	for i := 0; i < r.W && i < len(playerHead); i++ {
		dst.SetWithColor(r.X+i, r.Y, playerHead[i], color)
		dst.SetWithColor(r.X+i, r.Y+r.H-1, legs[i], color)
	}
}

func (s *Session) drawHUD(dst *core.Screen, f core.Rect, now time.Time) {
	hudY := f.Y - 1

	scoreColor := core.ColorWhite
	if now.Before(s.scoreFlashEnd) {
		scoreColor = core.ColorGold
	}
	dst.DrawTextColored(f.X, hudY, fmt.Sprintf("SCORE %d", s.score), scoreColor)

	lvl := fmt.Sprintf("LEVEL %d/%d", s.level, levels.MaxLevel)
	dst.DrawTextColored(f.X+(f.W-len(lvl))/2, hudY, lvl, core.ColorBrightWhite)

	remaining := s.Remaining()
	timeColor := core.ColorWhite
	if remaining < time.Duration(s.cfg.Timer.WarningSeconds)*time.Second {
		timeColor = core.ColorRed
	}
	clock := "TIME " + formatClock(remaining)
	dst.DrawTextColored(f.Right()-len(clock), hudY, clock, timeColor)

	footY := f.Bottom()
	if s.hintVisible(now) {
		dst.DrawTextCenteredColored(footY, hintText, core.ColorGray)
	} else if s.playerName != "" {
		dst.DrawTextCenteredColored(footY, s.playerName, core.ColorGray)
	}
}

// drawPanel clears a centred box for an overlay and writes its heading and
// footer.
func (s *Session) drawPanel(dst *core.Screen, heading string, height int, footer string) {
	w := 30
	box := core.NewRect((s.width-w)/2, s.height/2-height/2-2, w, height+4)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBoxColored(box, core.ColorBrightWhite)
	dst.DrawTextCenteredColored(box.Y+1, heading, core.ColorBrightYellow)
	dst.DrawTextCenteredColored(box.Bottom()-2, footer, core.ColorGray)
}

func (s *Session) drawButtons(dst *core.Screen) {
	for i, b := range s.buttons() {
		label := "[ " + b.label + " ]"
		color := core.ColorWhite
		if i == s.focus {
			label = "> " + b.label + " <"
			color = core.ColorBrightYellow
		}
		x := b.rect.X + (b.rect.W-utf8.RuneCountInString(label))/2
		dst.DrawTextColored(x, b.rect.Y, label, color)
	}
}

func (s *Session) drawMainMenu(dst *core.Screen, now time.Time) {
	top := s.height/2 - 6

	// The title types itself in over the fade period.
	fade := time.Duration(s.cfg.Hints.TitleFadeMS) * time.Millisecond
	shown := len(title)
	color := core.ColorBrightCyan
	if elapsed := now.Sub(s.titleStart); fade > 0 && elapsed < fade {
		shown = int(float64(len(title)) * float64(elapsed) / float64(fade))
		color = core.ColorGray
	}
	dst.DrawTextCenteredColored(top, padRight(title[:shown], len(title)), color)
	dst.DrawTextCenteredColored(top+2, "Reach the exit before time runs out", core.ColorGray)

	s.drawButtons(dst)
	dst.DrawTextCenteredColored(s.height-2, "↑/↓ choose  ENTER select  TAB scores  Q quit", core.ColorGray)
}

func (s *Session) drawNameInput(dst *core.Screen) {
	box := s.NameField()
	dst.DrawTextCenteredColored(box.Y-2, "ENTER YOUR NAME", core.ColorBrightYellow)
	dst.DrawBoxColored(box, core.ColorBrightWhite)
	dst.DrawTextCenteredColored(box.Bottom()+1, fmt.Sprintf("1-%d characters  ENTER confirm  ESC back", MaxNameLen), core.ColorGray)
}

func (s *Session) drawLevelSelect(dst *core.Screen) {
	btns := s.buttons()
	top := s.height / 2
	if len(btns) > 0 {
		top = btns[0].rect.Y
	}
	dst.DrawTextCenteredColored(top-4, "SELECT LEVEL", core.ColorBrightYellow)
	if s.playerName != "" {
		dst.DrawTextCenteredColored(top-2, "Player: "+s.playerName, core.ColorWhite)
	}
	s.drawButtons(dst)

	if s.focus < len(btns) && btns[s.focus].id == btnLevel {
		n := btns[s.focus].level
		info := fmt.Sprintf("Level %d: %ds on the clock", n, s.cfg.Timer.LevelDuration(n))
		dst.DrawTextCenteredColored(btns[len(btns)-1].rect.Y+2, info, core.ColorGray)
	}
	dst.DrawTextCenteredColored(s.height-2, fmt.Sprintf("1-%d pick  ARROWS move  ESC back", levels.MaxLevel), core.ColorGray)
}

// drawAlerts stacks live alerts near the top of the playfield, oldest first.
// Fresh alerts jitter sideways by their shake amplitude.
func (s *Session) drawAlerts(dst *core.Screen, now time.Time) {
	f := s.field()
	cw, _ := s.cellSize()
	for i, a := range s.alerts.Items() {
		x := (s.width - utf8.RuneCountInString(a.Text)) / 2
		if a.Style.Shake > 0 && now.Sub(a.Created) < shakeTime {
			amp := core.CeilDiv(a.Style.Shake, cw)
			x += s.rng.Intn(2*amp+1) - amp
		}
		dst.DrawTextColored(x, f.Y+1+i, a.Text, a.Style.Color)
	}
}

func causeText(c world.Cause) string {
	switch c {
	case world.CauseEnemy:
		return "Caught by an enemy"
	case world.CauseLava:
		return "Burned in lava"
	case world.CauseTimeout:
		return "Out of time"
	default:
		return ""
	}
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
