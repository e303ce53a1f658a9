// Package levels provides tile grids for the platformer: the built-in
// layouts and the legacy per-level override files that replace them.
package levels

import "fmt"

// Tile is a cell code in a level grid.
type Tile int

const (
	TileEmpty     Tile = iota // Nothing
	TileDirt                  // Solid dirt block
	TileGrass                 // Solid grass block
	TileEnemy                 // Enemy spawn
	TilePlatformX             // Horizontally moving platform spawn
	TilePlatformY             // Vertically moving platform spawn
	TileLava                  // Lava hazard
	TileCoin                  // Collectible coin
	TileExit                  // Level exit
)

const (
	// TileSize is the edge of one tile in world pixels.
	TileSize = 40
	// GridSize is the number of rows and columns of a built-in grid.
	GridSize = 20
	// MaxLevel is the number of playable levels.
	MaxLevel = 7
)

// Solid reports whether the tile blocks movement.
func (t Tile) Solid() bool {
	return t == TileDirt || t == TileGrass
}

// Valid reports whether the code is a known tile.
func (t Tile) Valid() bool {
	return t >= TileEmpty && t <= TileExit
}

func (t Tile) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileDirt:
		return "dirt"
	case TileGrass:
		return "grass"
	case TileEnemy:
		return "enemy"
	case TilePlatformX:
		return "platform-x"
	case TilePlatformY:
		return "platform-y"
	case TileLava:
		return "lava"
	case TileCoin:
		return "coin"
	case TileExit:
		return "exit"
	default:
		return fmt.Sprintf("tile(%d)", int(t))
	}
}

// Grid is a level layout indexed [row][col]. Rows may differ in length.
type Grid [][]Tile

// EmptyGrid returns a GridSize x GridSize grid of empty tiles.
func EmptyGrid() Grid {
	g := make(Grid, GridSize)
	for row := range g {
		g[row] = make([]Tile, GridSize)
	}
	return g
}

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the length of the longest row.
func (g Grid) Cols() int {
	cols := 0
	for _, row := range g {
		cols = max(cols, len(row))
	}
	return cols
}

// At returns the tile at (row, col), or TileEmpty outside the grid.
func (g Grid) At(row, col int) Tile {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return TileEmpty
	}
	return g[row][col]
}

// Count returns how many cells hold the given tile.
func (g Grid) Count(t Tile) int {
	n := 0
	for _, row := range g {
		for _, cell := range row {
			if cell == t {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = make([]Tile, len(row))
		copy(out[i], row)
	}
	return out
}

// ClosedPerimeter reports whether the first and last rows and columns are
// all solid. Ragged grids are never closed.
func (g Grid) ClosedPerimeter() bool {
	if len(g) < 2 {
		return false
	}
	cols := len(g[0])
	if cols < 2 {
		return false
	}
	for _, row := range g {
		if len(row) != cols || !row[0].Solid() || !row[cols-1].Solid() {
			return false
		}
	}
	for col := range cols {
		if !g[0][col].Solid() || !g[len(g)-1][col].Solid() {
			return false
		}
	}
	return true
}

// Problem describes a suspicious property of a grid.
type Problem struct {
	Row, Col int // -1 when the problem is not tied to a cell
	Message  string
}

func (p Problem) String() string {
	if p.Row < 0 {
		return p.Message
	}
	return fmt.Sprintf("row %d col %d: %s", p.Row, p.Col, p.Message)
}

// Check lists properties that make a grid unplayable or odd. The game still
// loads such grids; this is for tooling.
func (g Grid) Check() []Problem {
	var problems []Problem

	if len(g) == 0 {
		return []Problem{{Row: -1, Col: -1, Message: "grid has no rows"}}
	}

	cols := len(g[0])
	for r, row := range g {
		if len(row) != cols {
			problems = append(problems, Problem{Row: r, Col: -1, Message: fmt.Sprintf("row %d has %d columns, expected %d", r, len(row), cols)})
		}
		for c, cell := range row {
			if !cell.Valid() {
				problems = append(problems, Problem{Row: r, Col: c, Message: fmt.Sprintf("unknown tile code %d", int(cell))})
			}
		}
	}

	switch exits := g.Count(TileExit); exits {
	case 1:
	case 0:
		problems = append(problems, Problem{Row: -1, Col: -1, Message: "no exit"})
	default:
		problems = append(problems, Problem{Row: -1, Col: -1, Message: fmt.Sprintf("%d exits", exits)})
	}

	if !g.ClosedPerimeter() {
		problems = append(problems, Problem{Row: -1, Col: -1, Message: "perimeter is not closed"})
	}

	return problems
}
