package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels",
	Long: `Show every level with its time budget and what it contains.
With --levels-dir, levels replaced by a level{N}_data file are marked.

Examples:
  platformer levels
  platformer levels --levels-dir ./levels --difficulty easy
  platformer levels check --levels-dir ./levels`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

var levelsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate level override files",
	Long: `Decode every level{N}_data file in --levels-dir and report problems:
unreadable payloads, unknown tile codes, ragged rows, a missing or
repeated exit, and an open perimeter.

The command fails when any override cannot be loaded by the game.`,
	Args: cobra.NoArgs,
	RunE: runLevelsCheck,
}

func init() {
	levelsCmd.AddCommand(levelsCheckCmd)
}

func runLevels(_ *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	provider := levels.NewProvider(flagLevelsDir, nil)

	fmt.Printf("  %-5s  %-6s  %-7s  %-5s  %-8s  %-4s  %-5s  %s\n",
		"Level", "Time", "Source", "Coins", "Enemies", "Lava", "Moves", "Exit")
	fmt.Printf("  %-5s  %-6s  %-7s  %-5s  %-8s  %-4s  %-5s  %s\n",
		"-----", "----", "------", "-----", "-------", "----", "-----", "----")

	for n := 1; n <= levels.MaxLevel; n++ {
		g := provider.Level(n)
		source := "builtin"
		if provider.HasOverride(n) {
			source = "file"
		}
		moving := g.Count(levels.TilePlatformX) + g.Count(levels.TilePlatformY)
		fmt.Printf("  %-5d  %-6s  %-7s  %-5d  %-8d  %-4d  %-5d  %s\n",
			n,
			formatSeconds(cfg.Timer.LevelDuration(n)),
			source,
			g.Count(levels.TileCoin),
			g.Count(levels.TileEnemy),
			g.Count(levels.TileLava),
			moving,
			yesNo(g.Count(levels.TileExit) > 0),
		)
	}
	return nil
}

func runLevelsCheck(_ *cobra.Command, _ []string) error {
	if flagLevelsDir == "" {
		return errors.New("levels check needs --levels-dir")
	}

	broken := 0
	found := 0
	for n := 1; n <= levels.MaxLevel; n++ {
		g, err := levels.LoadOverride(flagLevelsDir, n)
		if errors.Is(err, levels.ErrNoOverride) {
			continue
		}
		found++
		name := levels.OverrideName(n)
		if err != nil {
			broken++
			fmt.Printf("%s: FAIL %v (built-in layout is used)\n", name, err)
			continue
		}

		problems := g.Check()
		if len(problems) == 0 {
			fmt.Printf("%s: ok (%dx%d)\n", name, g.Rows(), g.Cols())
			continue
		}
		fmt.Printf("%s: %d warning(s)\n", name, len(problems))
		for _, p := range problems {
			fmt.Printf("  - %s\n", p)
		}
	}

	if found == 0 {
		fmt.Printf("No override files in %s.\n", flagLevelsDir)
	}
	if broken > 0 {
		return fmt.Errorf("%d override file(s) cannot be loaded", broken)
	}
	return nil
}

func formatSeconds(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
