package levels

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoOverride is returned when no override file exists for a level.
	ErrNoOverride = errors.New("levels: no override file")
	// ErrMalformed is returned when an override payload cannot be decoded.
	ErrMalformed = errors.New("levels: malformed level data")
)

// OverrideName returns the file name of the override for level n.
func OverrideName(n int) string {
	return fmt.Sprintf("level%d_data", n)
}

// LevelFromName extracts the level number from an override file name.
func LevelFromName(path string) (int, bool) {
	var n int
	base := filepath.Base(path)
	if _, err := fmt.Sscanf(base, "level%d_data", &n); err != nil {
		return 0, false
	}
	if n < 1 || OverrideName(n) != base {
		return 0, false
	}
	return n, true
}

// LoadOverride reads and decodes the override file of level n from dir.
// It returns ErrNoOverride when the file does not exist.
func LoadOverride(dir string, n int) (Grid, error) {
	path := filepath.Join(dir, OverrideName(n))
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoOverride
		}
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Parse decodes an override payload.
// Two encodings are accepted:
//
//	YAML (or JSON) integer matrix: [[1, 1, 1], [1, 0, 1], ...] or a block list of rows
//	ASCII digit map: one row per line, '0'-'8' per cell, '.' for empty, '#' starts a comment line
func Parse(data []byte) (Grid, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformed)
	}

	var matrix [][]int
	if err := yaml.Unmarshal(trimmed, &matrix); err == nil && len(matrix) > 0 {
		return fromMatrix(matrix)
	}

	var lines []string
	for _, line := range strings.Split(string(trimmed), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return ParseASCII(lines)
}

// ParseASCII creates a grid from digit rows.
func ParseASCII(lines []string) (Grid, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformed)
	}
	g := make(Grid, len(lines))
	for r, line := range lines {
		g[r] = make([]Tile, len(line))
		for c := 0; c < len(line); c++ {
			ch := line[c]
			switch {
			case ch == '.':
				g[r][c] = TileEmpty
			case ch >= '0' && ch <= '8':
				g[r][c] = Tile(ch - '0')
			default:
				return nil, fmt.Errorf("%w: row %d col %d: unexpected %q", ErrMalformed, r, c, ch)
			}
		}
	}
	return g, nil
}

func fromMatrix(matrix [][]int) (Grid, error) {
	g := make(Grid, len(matrix))
	for r, row := range matrix {
		g[r] = make([]Tile, len(row))
		for c, code := range row {
			t := Tile(code)
			if !t.Valid() {
				return nil, fmt.Errorf("%w: row %d col %d: tile code %d", ErrMalformed, r, c, code)
			}
			g[r][c] = t
		}
	}
	return g, nil
}

// Provider resolves the grid of a level: the override file when present and
// decodable, the built-in layout otherwise.
type Provider struct {
	Dir    string // Override directory; empty disables overrides
	Logger *log.Logger
}

// NewProvider creates a provider reading overrides from dir.
func NewProvider(dir string, logger *log.Logger) *Provider {
	return &Provider{Dir: dir, Logger: logger}
}

// Level returns the grid for level n.
func (p *Provider) Level(n int) Grid {
	if p == nil || p.Dir == "" {
		return Builtin(n)
	}
	g, err := LoadOverride(p.Dir, n)
	if err != nil {
		if !errors.Is(err, ErrNoOverride) && p.Logger != nil {
			p.Logger.Debug("ignoring level override", "level", n, "err", err)
		}
		return Builtin(n)
	}
	if p.Logger != nil {
		p.Logger.Debug("using level override", "level", n, "rows", g.Rows(), "cols", g.Cols())
	}
	return g
}

// HasOverride reports whether an override file exists for level n,
// regardless of whether it decodes.
func (p *Provider) HasOverride(n int) bool {
	if p == nil || p.Dir == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(p.Dir, OverrideName(n)))
	return err == nil
}
