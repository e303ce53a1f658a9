package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best score of every player, highest first.
A player's entry is updated only when they beat it.

Examples:
  platformer scores
  platformer scores --limit 3
  platformer scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all high scores")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening game database: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flagScoresClear {
		if err := store.ClearHighScores(ctx); err != nil {
			return err
		}
		fmt.Println("High scores cleared.")
		return nil
	}

	scores, err := store.TopHighScores(ctx, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println("High Scores - TUI Platformer")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Finish a level in 'platformer play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-15s  %-6s  %-5s  %s\n", "Rank", "Player", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-15s  %-6s  %-5s  %s\n", "----", "------", "-----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.DateAchieved.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-15s  %-6d  %-5d  %s\n", i+1, entry.PlayerName, entry.Score, entry.Level, dateStr)
	}
	return nil
}
