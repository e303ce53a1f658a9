// Package storage provides SQLite-based persistence for progress, high scores
// and settings. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPlayerName is used when a record has no name.
const DefaultPlayerName = "Player"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Progress is a saved game position.
type Progress struct {
	ID         int64
	PlayerName string
	Level      int
	Score      int
	PlayTime   int // Seconds spent on the level when saved
	LastSaved  time.Time
}

// HighScore is a personal best entry.
type HighScore struct {
	ID           int64
	PlayerName   string
	Score        int
	Level        int
	DateAchieved time.Time
}

// Settings is the single row of game preferences.
type Settings struct {
	MusicEnabled  bool
	SFXEnabled    bool
	Volume        float64 // 0..1
	ControlsShown bool
}

// DefaultSettings returns the seeded settings row.
func DefaultSettings() Settings {
	return Settings{
		MusicEnabled:  true,
		SFXEnabled:    true,
		Volume:        0.5,
		ControlsShown: true,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	// SQLite allows a single writer; serialize access from SSH sessions.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist and seeds the
// settings row.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS player_progress (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_name TEXT DEFAULT 'Player',
			level INTEGER DEFAULT 1,
			score INTEGER DEFAULT 0,
			play_time INTEGER DEFAULT 0,
			last_saved TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_progress_last_saved ON player_progress(last_saved DESC);

		CREATE TABLE IF NOT EXISTS high_scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_name TEXT,
			score INTEGER,
			level INTEGER,
			date_achieved TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_high_scores_player ON high_scores(player_name, score DESC);
		CREATE INDEX IF NOT EXISTS idx_high_scores_top ON high_scores(score DESC, level DESC);

		CREATE TABLE IF NOT EXISTS game_settings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			music_enabled INTEGER DEFAULT 1,
			sfx_enabled INTEGER DEFAULT 1,
			volume REAL DEFAULT 0.5,
			controls_shown INTEGER DEFAULT 1
		);
		INSERT INTO game_settings (id)
			SELECT 1 WHERE NOT EXISTS (SELECT 1 FROM game_settings);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveProgress appends a progress record.
func (s *Store) SaveProgress(ctx context.Context, p Progress) error {
	name := p.PlayerName
	if name == "" {
		name = DefaultPlayerName
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO player_progress (player_name, level, score, play_time)
		 VALUES (?, ?, ?, ?)`,
		name, p.Level, p.Score, p.PlayTime,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// LoadProgress returns the most recently saved progress.
// The boolean is false when nothing has been saved yet.
func (s *Store) LoadProgress(ctx context.Context) (Progress, bool, error) {
	var p Progress
	var lastSaved any
	err := s.db.QueryRowContext(ctx,
		`SELECT id, player_name, level, score, play_time, last_saved
		 FROM player_progress
		 ORDER BY last_saved DESC, id DESC
		 LIMIT 1`,
	).Scan(&p.ID, &p.PlayerName, &p.Level, &p.Score, &p.PlayTime, &lastSaved)

	if errors.Is(err, sql.ErrNoRows) {
		return Progress{}, false, nil
	}
	if err != nil {
		return Progress{}, false, fmt.Errorf("storage: cannot load progress: %w", err)
	}
	p.LastSaved = parseTimestamp(lastSaved)
	return p, true, nil
}

// BestScore returns the player's personal best and whether one exists.
func (s *Store) BestScore(ctx context.Context, playerName string) (int, bool, error) {
	var best sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM high_scores WHERE player_name = ?",
		playerName,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

// SaveHighScore records score if it strictly beats the player's personal
// best. A player without any record always gets one. Reports whether a row
// was written.
func (s *Store) SaveHighScore(ctx context.Context, playerName string, score, level int) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var best sql.NullInt64
	if err := tx.QueryRowContext(ctx,
		"SELECT MAX(score) FROM high_scores WHERE player_name = ?",
		playerName,
	).Scan(&best); err != nil {
		return false, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if best.Valid && int64(score) <= best.Int64 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO high_scores (player_name, score, level) VALUES (?, ?, ?)",
		playerName, score, level,
	); err != nil {
		return false, fmt.Errorf("storage: cannot save high score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("storage: cannot commit high score: %w", err)
	}
	return true, nil
}

// TopHighScores retrieves the best entries ordered by score, then level.
func (s *Store) TopHighScores(ctx context.Context, limit int) ([]HighScore, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player_name, score, level, date_achieved
		 FROM high_scores
		 ORDER BY score DESC, level DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query high scores: %w", err)
	}
	defer rows.Close()

	var entries []HighScore
	for rows.Next() {
		var e HighScore
		var name sql.NullString
		var achieved any
		if err := rows.Scan(&e.ID, &name, &e.Score, &e.Level, &achieved); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.PlayerName = name.String
		e.DateAchieved = parseTimestamp(achieved)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearHighScores deletes every high score.
func (s *Store) ClearHighScores(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM high_scores"); err != nil {
		return fmt.Errorf("storage: cannot clear high scores: %w", err)
	}
	return nil
}

// LoadSettings reads the settings row. Defaults are returned if the row is gone.
func (s *Store) LoadSettings(ctx context.Context) (Settings, error) {
	var music, sfx, controls int
	var volume float64
	err := s.db.QueryRowContext(ctx,
		"SELECT music_enabled, sfx_enabled, volume, controls_shown FROM game_settings WHERE id = 1",
	).Scan(&music, &sfx, &volume, &controls)

	if errors.Is(err, sql.ErrNoRows) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return DefaultSettings(), fmt.Errorf("storage: cannot load settings: %w", err)
	}

	return Settings{
		MusicEnabled:  music != 0,
		SFXEnabled:    sfx != 0,
		Volume:        volume,
		ControlsShown: controls != 0,
	}, nil
}

// SaveSettings updates the settings row.
func (s *Store) SaveSettings(ctx context.Context, st Settings) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE game_settings
		 SET music_enabled = ?, sfx_enabled = ?, volume = ?, controls_shown = ?
		 WHERE id = 1`,
		boolInt(st.MusicEnabled), boolInt(st.SFXEnabled), st.Volume, boolInt(st.ControlsShown),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save settings: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics across all saves and high scores.
type Stats struct {
	Saves         int
	TotalPlayTime int // Seconds
	Players       int
	BestScore     int
	LastSaved     time.Time
}

// GetStats retrieves aggregated statistics.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	var lastSaved any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(play_time), 0), MAX(last_saved)
		 FROM player_progress`,
	).Scan(&stats.Saves, &stats.TotalPlayTime, &lastSaved)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get progress stats: %w", err)
	}
	stats.LastSaved = parseTimestamp(lastSaved)

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT player_name), COALESCE(MAX(score), 0)
		 FROM high_scores`,
	).Scan(&stats.Players, &stats.BestScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get score stats: %w", err)
	}

	return stats, nil
}

// parseTimestamp handles both time.Time and string values from the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
