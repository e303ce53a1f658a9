package world

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

// Entity sizes in pixels.
const (
	EnemyW, EnemyH       = 40, 25
	PlatformW, PlatformH = levels.TileSize, levels.TileSize / 2
	LavaW, LavaH         = levels.TileSize, levels.TileSize / 2
	CoinSize             = levels.TileSize / 2
	ExitW, ExitH         = levels.TileSize, levels.TileSize * 3 / 2
)

// Block is a static solid tile.
type Block struct {
	Rect core.Rect
	Kind levels.Tile // TileDirt or TileGrass
}

// patrol is the ping-pong motion shared by enemies and platforms.
type patrol struct {
	Direction int
	Counter   int
}

// advance ticks the counter and flips direction once |counter| exceeds bound.
func (p *patrol) advance(bound int) {
	p.Counter++
	if core.Abs(p.Counter) > bound {
		p.Direction = -p.Direction
		p.Counter = -p.Counter
	}
}

// Enemy walks back and forth one pixel per frame.
type Enemy struct {
	Rect core.Rect
	patrol
}

// NewEnemy creates an enemy whose top-left corner is (x, y).
func NewEnemy(x, y int) *Enemy {
	return &Enemy{
		Rect:   core.NewRect(x, y, EnemyW, EnemyH),
		patrol: patrol{Direction: 1},
	}
}

// Update moves the enemy one frame.
func (e *Enemy) Update(bound int) {
	e.Rect.X += e.Direction
	e.advance(bound)
}

// Platform is a moving ledge the player can ride.
type Platform struct {
	Rect  core.Rect
	MoveX int // 1 for horizontal platforms
	MoveY int // 1 for vertical platforms
	patrol
}

// NewPlatform creates a platform at (x, y) moving along the given axis.
func NewPlatform(x, y, moveX, moveY int) *Platform {
	return &Platform{
		Rect:   core.NewRect(x, y, PlatformW, PlatformH),
		MoveX:  moveX,
		MoveY:  moveY,
		patrol: patrol{Direction: 1},
	}
}

// Step returns the displacement the platform applies this frame.
func (p *Platform) Step() (dx, dy int) {
	return p.Direction * p.MoveX, p.Direction * p.MoveY
}

// Update moves the platform one frame.
func (p *Platform) Update(bound int) {
	dx, dy := p.Step()
	p.Rect = p.Rect.Offset(dx, dy)
	p.advance(bound)
}

// Lava kills on touch.
type Lava struct {
	Rect core.Rect
}

// Coin is a collectible worth one point.
type Coin struct {
	Rect core.Rect
}

// NewCoin creates a coin centred at (cx, cy).
func NewCoin(cx, cy int) Coin {
	return Coin{Rect: core.NewRectCentered(cx, cy, CoinSize, CoinSize)}
}

// Exit ends the level when touched. It pulses while idle.
type Exit struct {
	Rect  core.Rect
	Pulse float64
}

// Animate advances the pulse phase.
func (e *Exit) Animate() {
	e.Pulse += 0.05
}

// Scale returns the current visual scale in [0.8, 1.0].
func (e *Exit) Scale() float64 {
	return math.Abs(math.Sin(e.Pulse))*0.2 + 0.8
}
