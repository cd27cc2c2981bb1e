package types

import "time"

// RunResult is the outcome of a single run, as handed to the store.
type RunResult struct {
	ID             string    `json:"id"`
	Player         string    `json:"player"`
	Mode           string    `json:"mode"`
	Seed           uint32    `json:"seed,omitempty"`
	Date           string    `json:"date,omitempty"`
	Score          int       `json:"score"`
	Lines          int       `json:"lines"`
	Pieces         int       `json:"pieces"`
	BestStreak     int       `json:"best_streak"`
	Revives        int       `json:"revives"`
	AllClears      int       `json:"all_clears"`
	Undos          int       `json:"undos"`
	LastClearCount int       `json:"last_clear_count"`
	Duration       float64   `json:"duration"`
	Completed      bool      `json:"completed"`
	PlayedAt       time.Time `json:"played_at"`
}

// LeaderboardEntry is one row of the score table.
type LeaderboardEntry struct {
	Rank     int       `json:"rank"`
	Player   string    `json:"player"`
	Score    int       `json:"score"`
	Mode     string    `json:"mode"`
	Date     string    `json:"date,omitempty"`
	PlayedAt time.Time `json:"played_at"`
}

// PlayerStats are the cumulative totals for one player.
type PlayerStats struct {
	Player           string `json:"player"`
	TotalGames       int    `json:"total_games"`
	TotalScore       int    `json:"total_score"`
	TotalLines       int    `json:"total_lines"`
	TotalPieces      int    `json:"total_pieces"`
	BestScore        int    `json:"best_score"`
	BestStreak       int    `json:"best_streak"`
	AllClears        int    `json:"all_clears"`
	DailyCompletions int    `json:"daily_completions"`
	DailyStreak      int    `json:"daily_streak"`
	BestDailyStreak  int    `json:"best_daily_streak"`
}

// DailyResult is the best score a player posted for one daily date.
type DailyResult struct {
	Player string `json:"player"`
	Date   string `json:"date"`
	Seed   uint32 `json:"seed"`
	Score  int    `json:"score"`
}
