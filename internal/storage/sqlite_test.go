package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveHighScore(ctx, "anne", 3, 2); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	best, ok, err := store.BestScore(ctx, "anne")
	if err != nil || !ok || best != 3 {
		t.Errorf("BestScore() = %d, %v, %v; expected 3, true, nil", best, ok, err)
	}
}

func TestStoreProgress(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if _, ok, err := store.LoadProgress(ctx); err != nil || ok {
		t.Fatalf("LoadProgress() on empty db = %v, %v; expected false, nil", ok, err)
	}

	if err := store.SaveProgress(ctx, Progress{PlayerName: "anne", Level: 2, Score: 4, PlayTime: 12}); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}
	if err := store.SaveProgress(ctx, Progress{Level: 3, Score: 1, PlayTime: 30}); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}

	p, ok, err := store.LoadProgress(ctx)
	if err != nil || !ok {
		t.Fatalf("LoadProgress() = %v, %v", ok, err)
	}

	// Same-second saves fall back to insertion order.
	if p.Level != 3 || p.Score != 1 || p.PlayTime != 30 {
		t.Errorf("LoadProgress() = %+v, expected the latest save", p)
	}
	if p.PlayerName != DefaultPlayerName {
		t.Errorf("PlayerName = %q, expected %q", p.PlayerName, DefaultPlayerName)
	}
	if p.LastSaved.IsZero() {
		t.Error("LastSaved should be set")
	}
}

func TestStoreSaveHighScorePersonalBest(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	tests := []struct {
		name     string
		player   string
		score    int
		expected bool
	}{
		{"fresh player with zero", "anne", 0, true},
		{"tie does not overwrite", "anne", 0, false},
		{"improvement", "anne", 5, true},
		{"same score twice", "anne", 5, false},
		{"lower score", "anne", 2, false},
		{"other player", "bob", 1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wrote, err := store.SaveHighScore(ctx, tc.player, tc.score, 1)
			if err != nil {
				t.Fatalf("SaveHighScore() failed: %v", err)
			}
			if wrote != tc.expected {
				t.Errorf("SaveHighScore(%q, %d) = %v, expected %v", tc.player, tc.score, wrote, tc.expected)
			}
		})
	}

	entries, err := store.TopHighScores(ctx, 10)
	if err != nil {
		t.Fatalf("TopHighScores() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Expected 3 high score rows, got %d", len(entries))
	}
}

func TestStoreTopHighScoresOrder(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	saves := []struct {
		player       string
		score, level int
	}{
		{"a", 3, 1},
		{"b", 7, 2},
		{"c", 3, 5},
		{"d", 1, 7},
	}
	for _, s := range saves {
		if _, err := store.SaveHighScore(ctx, s.player, s.score, s.level); err != nil {
			t.Fatalf("SaveHighScore() failed: %v", err)
		}
	}

	entries, err := store.TopHighScores(ctx, 3)
	if err != nil {
		t.Fatalf("TopHighScores() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries (limit), got %d", len(entries))
	}

	var got []string
	for _, e := range entries {
		got = append(got, e.PlayerName)
	}
	if strings.Join(got, ",") != "b,c,a" {
		t.Errorf("order = %v, expected [b c a] (score desc, then level desc)", got)
	}
	if entries[0].DateAchieved.IsZero() {
		t.Error("DateAchieved should be set")
	}
}

func TestStoreClearHighScores(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	store.SaveHighScore(ctx, "anne", 4, 1) //nolint:errcheck
	if err := store.ClearHighScores(ctx); err != nil {
		t.Fatalf("ClearHighScores() failed: %v", err)
	}

	entries, err := store.TopHighScores(ctx, 10)
	if err != nil {
		t.Fatalf("TopHighScores() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries after clear, got %d", len(entries))
	}
}

func TestStoreSettings(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	got, err := store.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if got != DefaultSettings() {
		t.Errorf("LoadSettings() = %+v, expected seeded defaults", got)
	}

	want := Settings{MusicEnabled: false, SFXEnabled: true, Volume: 0.25, ControlsShown: false}
	if err := store.SaveSettings(ctx, want); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}

	got, err = store.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if got != want {
		t.Errorf("LoadSettings() = %+v, expected %+v", got, want)
	}
}

func TestStoreStats(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	stats, err := store.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Saves != 0 || stats.BestScore != 0 || !stats.LastSaved.IsZero() {
		t.Errorf("GetStats() on empty db = %+v", stats)
	}

	store.SaveProgress(ctx, Progress{PlayerName: "anne", Level: 1, PlayTime: 10}) //nolint:errcheck
	store.SaveProgress(ctx, Progress{PlayerName: "anne", Level: 2, PlayTime: 15}) //nolint:errcheck
	store.SaveHighScore(ctx, "anne", 6, 2)                                        //nolint:errcheck
	store.SaveHighScore(ctx, "bob", 2, 1)                                         //nolint:errcheck

	stats, err = store.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Saves != 2 || stats.TotalPlayTime != 25 || stats.Players != 2 || stats.BestScore != 6 {
		t.Errorf("GetStats() = %+v", stats)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.arcade/test-platformer.db")
	if err != nil {
		t.Fatalf("Open() with ~ failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".arcade", "test-platformer.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}
