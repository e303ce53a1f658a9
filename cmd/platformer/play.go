package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/audio"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the platformer",
	Long: `Start the platformer in this terminal.

Controls:
  A/D, Left/Right  - Move
  Space, W/Up      - Jump
  P                - Pause (save, resume, restart)
  O                - Settings
  R                - Restart after death
  Enter            - Confirm, 1-7 pick a level
  Tab              - High scores (main menu)
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 1.5x time on every level
  normal - The standard time table
  hard   - 0.75x time on every level

Level overrides:
  A file named level{N}_data (N = 1..7) in --levels-dir replaces the
  built-in layout of level N. With --watch, edits are reported in game.

Examples:
  platformer play
  platformer play --difficulty hard
  platformer play --levels-dir ./levels --watch
  platformer play --config ./my-platformer.yaml --mute`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Report edits to override files while playing")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, logCloser, err := openLogger(flagLogFile)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	opts := platformer.Options{
		Config: gameCfg,
		Levels: levels.NewProvider(flagLevelsDir, logger),
		Logger: logger,
		Sounds: audio.Silent{},
	}

	// Open game storage
	var scores tui.ScoreSource
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open game database: %v\n", err)
		logger.Warn("playing without storage", "err", err)
		// Continue without storage - progress and scores are not kept
	} else {
		defer store.Close()
		opts.Store = store
		scores = store
	}

	if !flagMute {
		sounds := audio.NewManager(gameCfg.Audio.SampleRate)
		if initErr := sounds.Init(); initErr != nil {
			logger.Warn("audio unavailable", "err", initErr)
		} else {
			defer sounds.Close()
			opts.Sounds = sounds
		}
	}

	var overrides <-chan int
	if flagWatch {
		if flagLevelsDir == "" {
			return errors.New("--watch needs --levels-dir")
		}
		watcher, watchErr := levels.NewWatcher(flagLevelsDir)
		if watchErr != nil {
			return fmt.Errorf("cannot watch %s: %w", flagLevelsDir, watchErr)
		}
		defer watcher.Close()
		overrides = watcher.Events
		go logWatchErrors(watcher, logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	opts.Context = ctx

	game := platformer.New(opts)
	return tui.Run(game, cfg, tui.Options{
		Scores:      scores,
		HoldTimeout: time.Duration(gameCfg.Input.HoldTimeoutMS) * time.Millisecond,
		Overrides:   overrides,
		Logger:      logger,
	})
}

// logWatchErrors drains watcher errors until the watcher is closed.
func logWatchErrors(w *levels.Watcher, logger *log.Logger) {
	for err := range w.Errors {
		logger.Warn("level watcher", "err", err)
	}
}
