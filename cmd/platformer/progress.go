package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show the latest saved game",
	Long: `Display the most recent save (the one Continue resumes) and totals
across all saves and high scores.

Examples:
  platformer progress
  platformer progress --db ./platformer.db`,
	Args: cobra.NoArgs,
	RunE: runProgress,
}

func runProgress(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening game database: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p, ok, err := store.LoadProgress(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("No saved game yet. Pause a level and choose Save.")
	} else {
		fmt.Println("Latest save")
		fmt.Printf("  Player:    %s\n", p.PlayerName)
		fmt.Printf("  Level:     %d\n", p.Level)
		fmt.Printf("  Score:     %d\n", p.Score)
		fmt.Printf("  Play time: %s\n", time.Duration(p.PlayTime)*time.Second)
		fmt.Printf("  Saved:     %s\n", p.LastSaved.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetStats(ctx)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Totals")
	fmt.Printf("  Saves:      %d\n", stats.Saves)
	fmt.Printf("  Play time:  %s\n", time.Duration(stats.TotalPlayTime)*time.Second)
	fmt.Printf("  Players:    %d\n", stats.Players)
	fmt.Printf("  Best score: %d\n", stats.BestScore)
	return nil
}
