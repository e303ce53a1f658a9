// platformer is a 2D tile platformer played in the terminal.
//
// Usage:
//
//	platformer play          - Play locally
//	platformer serve         - Start SSH server for remote play
//	platformer scores        - Show the high score table
//	platformer levels        - List levels; "levels check" validates overrides
//	platformer progress      - Show the latest save and totals
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/platformer.db)
//	--config <path>       - Custom platformer.yaml
//	--levels-dir <dir>    - Directory holding level{N}_data overrides
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Log destination (default: ~/.arcade/platformer.log)
//	--mute                - Disable audio
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevelsDir  string
	flagLogLevel   string
	flagLogFile    string
	flagMute       bool
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "TUI Platformer - jump through seven levels in your terminal",
	Long: `TUI Platformer is a tile platformer rendered in the terminal.
Collect coins, dodge enemies and lava, and reach the exit of each of the
seven levels before the clock runs out.

Available commands:
  play      - Play locally
  serve     - Start SSH server for remote play
  scores    - View high scores
  levels    - List levels and validate override files
  progress  - Show the latest saved game

Examples:
  platformer play
  platformer play --difficulty easy --mute
  platformer play --levels-dir ./levels --watch
  platformer serve --ssh :2222
  platformer scores`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/platformer.db", "Path to game database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom platformer YAML")
	pf.StringVar(&flagLevelsDir, "levels-dir", "", "Directory with level{N}_data override files")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "~/.arcade/platformer.log", "Log file path")
	pf.BoolVar(&flagMute, "mute", false, "Disable audio")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// openLogger creates the file logger used during local play, where stderr
// belongs to the terminal UI. The returned closer is never nil.
func openLogger(path string) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var (
		w      io.Writer = io.Discard
		closer io.Closer = io.NopCloser(nil)
	)
	if path != "" {
		path = expandHome(path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer",
		Level:           level,
	})
	return logger, closer, nil
}

// loadGameConfig loads platformer.yaml and applies the difficulty preset.
func loadGameConfig() (config.PlatformerConfig, error) {
	cfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		config.ApplyPlatformerPreset(&cfg, preset)
	}
	return cfg, nil
}
