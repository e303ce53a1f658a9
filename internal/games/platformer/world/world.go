package world

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

// World owns the terrain and every dynamic entity of one level attempt.
// A new World is built for every (re)start; nothing carries over.
type World struct {
	Blocks    []Block
	Enemies   []*Enemy
	Platforms []*Platform
	Lava      []Lava
	Coins     []Coin
	Exits     []*Exit
}

// New builds a world from a tile grid. Ragged grids are accepted as-is:
// each row is walked as far as it goes.
func New(g levels.Grid) *World {
	w := &World{}
	const ts = levels.TileSize

	for row, cells := range g {
		for col, tile := range cells {
			x, y := col*ts, row*ts
			switch tile {
			case levels.TileDirt, levels.TileGrass:
				w.Blocks = append(w.Blocks, Block{Rect: core.NewRect(x, y, ts, ts), Kind: tile})
			case levels.TileEnemy:
				w.Enemies = append(w.Enemies, NewEnemy(x, y+15))
			case levels.TilePlatformX:
				w.Platforms = append(w.Platforms, NewPlatform(x, y, 1, 0))
			case levels.TilePlatformY:
				w.Platforms = append(w.Platforms, NewPlatform(x, y, 0, 1))
			case levels.TileLava:
				w.Lava = append(w.Lava, Lava{Rect: core.NewRect(x, y+ts/2, LavaW, LavaH)})
			case levels.TileCoin:
				w.Coins = append(w.Coins, NewCoin(x+ts/2, y+ts/2))
			case levels.TileExit:
				w.Exits = append(w.Exits, &Exit{Rect: core.NewRect(x, y-ts/2, ExitW, ExitH)})
			}
		}
	}
	return w
}

// Empty returns a world with nothing in it.
func Empty() *World {
	return &World{}
}

// Step advances enemies and platforms by one frame.
func (w *World) Step(rules Rules) {
	for _, e := range w.Enemies {
		e.Update(rules.PatrolBound)
	}
	for _, p := range w.Platforms {
		p.Update(rules.PatrolBound)
	}
}

// AnimateExits advances the exit pulse.
func (w *World) AnimateExits() {
	for _, e := range w.Exits {
		e.Animate()
	}
}

// AddCoin appends a coin, e.g. the HUD score marker.
func (w *World) AddCoin(c Coin) {
	w.Coins = append(w.Coins, c)
}

// CollectCoins removes every coin overlapping r and returns how many were taken.
// A removed coin is gone; calling again with the same rect returns 0.
func (w *World) CollectCoins(r core.Rect) int {
	kept := w.Coins[:0]
	taken := 0
	for _, c := range w.Coins {
		if c.Rect.Intersects(r) {
			taken++
			continue
		}
		kept = append(kept, c)
	}
	w.Coins = kept
	return taken
}

// NearestPlatformSq returns the squared centre distance to the closest
// platform, or -1 when there are none.
func (w *World) NearestPlatformSq(r core.Rect) int {
	best := -1
	for _, p := range w.Platforms {
		if d := r.DistanceSq(p.Rect); best < 0 || d < best {
			best = d
		}
	}
	return best
}

// NearestEnemySq returns the squared centre distance to the closest enemy,
// or -1 when there are none.
func (w *World) NearestEnemySq(r core.Rect) int {
	best := -1
	for _, e := range w.Enemies {
		if d := r.DistanceSq(e.Rect); best < 0 || d < best {
			best = d
		}
	}
	return best
}

func (w *World) hitsEnemy(r core.Rect) bool {
	for _, e := range w.Enemies {
		if e.Rect.Intersects(r) {
			return true
		}
	}
	return false
}

func (w *World) hitsLava(r core.Rect) bool {
	for _, l := range w.Lava {
		if l.Rect.Intersects(r) {
			return true
		}
	}
	return false
}

func (w *World) hitsExit(r core.Rect) bool {
	for _, e := range w.Exits {
		if e.Rect.Intersects(r) {
			return true
		}
	}
	return false
}
