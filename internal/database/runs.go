package database

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/isaacjstriker/blockgrid/internal/types"
)

// SaveRun stores a finished run. An empty ID is filled with a new UUID and a
// zero PlayedAt with the current time. Daily runs also update daily_results.
func (db *DB) SaveRun(r *types.RunResult) error {
	if r.ID == "" {
		r.ID = newRunID()
	}
	if r.PlayedAt.IsZero() {
		r.PlayedAt = time.Now()
	}

	query := `
		INSERT INTO runs (id, player, mode, seed, date, score, lines, pieces, best_streak,
			revives, all_clears, undos, last_clear_count, duration, completed, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query,
		r.ID, r.Player, r.Mode, int64(r.Seed), r.Date, r.Score, r.Lines, r.Pieces, r.BestStreak,
		r.Revives, r.AllClears, r.Undos, r.LastClearCount, r.Duration, r.Completed, r.PlayedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	if r.Mode == "daily" && r.Date != "" {
		if err := db.RecordDaily(types.DailyResult{Player: r.Player, Date: r.Date, Seed: r.Seed, Score: r.Score}); err != nil {
			return err
		}
	}
	return nil
}

// GetRun loads a run by id.
func (db *DB) GetRun(id string) (*types.RunResult, error) {
	query := `
		SELECT id, player, mode, seed, date, score, lines, pieces, best_streak,
			revives, all_clears, undos, last_clear_count, duration, completed, played_at
		FROM runs WHERE id = ?
	`
	var r types.RunResult
	var seed int64
	var playedAt interface{}
	err := db.QueryRow(query, id).Scan(
		&r.ID, &r.Player, &r.Mode, &seed, &r.Date, &r.Score, &r.Lines, &r.Pieces, &r.BestStreak,
		&r.Revives, &r.AllClears, &r.Undos, &r.LastClearCount, &r.Duration, &r.Completed, &playedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	r.Seed = uint32(seed)
	r.PlayedAt = parseTime(playedAt)
	return &r, nil
}

// HighScore returns the player's best score across all runs, or 0.
func (db *DB) HighScore(player string) (int, error) {
	var best int
	err := db.QueryRow(`SELECT COALESCE(MAX(score), 0) FROM runs WHERE player = ?`, player).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("failed to get high score: %w", err)
	}
	return best, nil
}

// Leaderboard returns each player's best run in mode, highest first.
func (db *DB) Leaderboard(mode string, limit int) ([]types.LeaderboardEntry, error) {
	query := `
		SELECT player, MAX(score) AS best_score, MAX(played_at) AS last_played
		FROM runs
		WHERE mode = ?
		GROUP BY player
		ORDER BY best_score DESC, player ASC
		LIMIT ?
	`
	rows, err := db.Query(query, mode, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []types.LeaderboardEntry
	for rows.Next() {
		var entry types.LeaderboardEntry
		var lastPlayed interface{}
		if err := rows.Scan(&entry.Player, &entry.Score, &lastPlayed); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entry.Rank = len(entries) + 1
		entry.Mode = mode
		entry.PlayedAt = parseTime(lastPlayed)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	return entries, nil
}

// RecordDaily keeps the best score per player and date.
func (db *DB) RecordDaily(d types.DailyResult) error {
	var query string
	if db.dbType == "postgres" {
		query = `
			INSERT INTO daily_results (player, date, seed, score) VALUES (?, ?, ?, ?)
			ON CONFLICT (player, date) DO UPDATE SET score = GREATEST(daily_results.score, EXCLUDED.score)
		`
	} else {
		query = `
			INSERT INTO daily_results (player, date, seed, score) VALUES (?, ?, ?, ?)
			ON CONFLICT (player, date) DO UPDATE SET score = MAX(daily_results.score, excluded.score)
		`
	}
	if _, err := db.Exec(query, d.Player, d.Date, int64(d.Seed), d.Score); err != nil {
		return fmt.Errorf("failed to record daily result: %w", err)
	}
	return nil
}

// DailyResult returns the player's best result for date.
func (db *DB) DailyResult(player, date string) (*types.DailyResult, error) {
	var d types.DailyResult
	var seed int64
	err := db.QueryRow(`SELECT player, date, seed, score FROM daily_results WHERE player = ? AND date = ?`, player, date).
		Scan(&d.Player, &d.Date, &seed, &d.Score)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily result: %w", err)
	}
	d.Seed = uint32(seed)
	return &d, nil
}

// DailyLeaderboard returns the best results posted for date.
func (db *DB) DailyLeaderboard(date string, limit int) ([]types.LeaderboardEntry, error) {
	rows, err := db.Query(`
		SELECT player, score FROM daily_results
		WHERE date = ?
		ORDER BY score DESC, player ASC
		LIMIT ?
	`, date, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []types.LeaderboardEntry
	for rows.Next() {
		entry := types.LeaderboardEntry{Mode: "daily", Date: date}
		if err := rows.Scan(&entry.Player, &entry.Score); err != nil {
			return nil, fmt.Errorf("failed to scan daily entry: %w", err)
		}
		entry.Rank = len(entries) + 1
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read daily leaderboard: %w", err)
	}
	return entries, nil
}

// Stats aggregates the player's runs and daily results. today (YYYY-MM-DD)
// anchors the current daily streak.
func (db *DB) Stats(player, today string) (*types.PlayerStats, error) {
	query := `
		SELECT
			COUNT(id),
			COALESCE(SUM(score), 0),
			COALESCE(SUM(lines), 0),
			COALESCE(SUM(pieces), 0),
			COALESCE(MAX(score), 0),
			COALESCE(MAX(best_streak), 0),
			COALESCE(SUM(all_clears), 0)
		FROM runs WHERE player = ?
	`
	s := &types.PlayerStats{Player: player}
	err := db.QueryRow(query, player).Scan(
		&s.TotalGames, &s.TotalScore, &s.TotalLines, &s.TotalPieces,
		&s.BestScore, &s.BestStreak, &s.AllClears,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get player stats: %w", err)
	}

	rows, err := db.Query(`SELECT date FROM daily_results WHERE player = ?`, player)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily dates: %w", err)
	}
	defer rows.Close()
	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan daily date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read daily dates: %w", err)
	}

	s.DailyCompletions = len(dates)
	s.DailyStreak, s.BestDailyStreak = DailyStreaks(dates, today)
	return s, nil
}

// DailyStreaks computes the current and longest runs of consecutive dates.
// The current streak counts back from today, or from yesterday when today
// has not been played yet. Unparseable dates are ignored.
func DailyStreaks(dates []string, today string) (current, best int) {
	days := make([]time.Time, 0, len(dates))
	seen := map[string]bool{}
	for _, d := range dates {
		t, err := time.Parse("2006-01-02", d)
		if err != nil || seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, t)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	run := 0
	for i, d := range days {
		if i > 0 && d.Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}

	anchor, err := time.Parse("2006-01-02", today)
	if err != nil {
		return 0, best
	}
	if !seen[today] {
		anchor = anchor.AddDate(0, 0, -1)
	}
	for seen[anchor.Format("2006-01-02")] {
		current++
		anchor = anchor.AddDate(0, 0, -1)
	}
	return current, best
}

// RecordUnlock stores an achievement unlock. Recording the same id twice
// keeps the first timestamp.
func (db *DB) RecordUnlock(player, achievementID string, at time.Time) error {
	query := `
		INSERT INTO achievements (player, achievement_id, unlocked_at) VALUES (?, ?, ?)
		ON CONFLICT (player, achievement_id) DO NOTHING
	`
	if _, err := db.Exec(query, player, achievementID, at); err != nil {
		return fmt.Errorf("failed to record achievement: %w", err)
	}
	return nil
}

// Unlocked returns the player's unlocked achievement ids with their unlock
// time.
func (db *DB) Unlocked(player string) (map[string]time.Time, error) {
	rows, err := db.Query(`SELECT achievement_id, unlocked_at FROM achievements WHERE player = ?`, player)
	if err != nil {
		return nil, fmt.Errorf("failed to get achievements: %w", err)
	}
	defer rows.Close()

	out := map[string]time.Time{}
	for rows.Next() {
		var id string
		var at interface{}
		if err := rows.Scan(&id, &at); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		out[id] = parseTime(at)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read achievements: %w", err)
	}
	return out, nil
}
