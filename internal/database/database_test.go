package database

import (
	"errors"
	"testing"
	"time"

	"github.com/isaacjstriker/blockgrid/games/blockgrid/seeded"
	"github.com/isaacjstriker/blockgrid/internal/types"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Connect("sqlite3://:memory:")
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := db.CreateTables(); err != nil {
		t.Fatalf("CreateTables: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestConnect_Unsupported(t *testing.T) {
	for _, url := range []string{"", "mysql://localhost/db", "blockgrid.db"} {
		if _, err := Connect(url); err == nil {
			t.Errorf("Connect(%q) should fail", url)
		}
	}
}

func TestRebind(t *testing.T) {
	pg := &DB{dbType: "postgres"}
	if got := pg.rebind("a = ? AND b = ?"); got != "a = $1 AND b = $2" {
		t.Errorf("rebind = %q", got)
	}
	lite := &DB{dbType: "sqlite3"}
	if got := lite.rebind("a = ?"); got != "a = ?" {
		t.Errorf("sqlite rebind = %q", got)
	}
}

func TestSaveRun_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	played := time.Date(2025, 2, 3, 10, 30, 0, 0, time.UTC)
	r := &types.RunResult{
		Player:         "ada",
		Mode:           "classic",
		Score:          1840,
		Lines:          19,
		Pieces:         61,
		BestStreak:     4,
		Revives:        1,
		AllClears:      1,
		Undos:          2,
		LastClearCount: 2,
		Duration:       312.5,
		Completed:      true,
		PlayedAt:       played,
	}
	if err := db.SaveRun(r); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if r.ID == "" {
		t.Fatal("SaveRun did not assign an id")
	}

	got, err := db.GetRun(r.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Score != 1840 || got.Lines != 19 || got.Pieces != 61 || got.BestStreak != 4 ||
		got.Revives != 1 || got.AllClears != 1 || got.Undos != 2 || got.LastClearCount != 2 ||
		got.Duration != 312.5 || !got.Completed || got.Mode != "classic" || got.Player != "ada" {
		t.Errorf("GetRun = %+v", got)
	}
	if !got.PlayedAt.Equal(played) {
		t.Errorf("played at %v, want %v", got.PlayedAt, played)
	}

	if _, err := db.GetRun("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetRun(missing) error %v, want ErrNotFound", err)
	}
}

func TestHighScoreAndLeaderboard(t *testing.T) {
	db := openTestDB(t)
	runs := []types.RunResult{
		{Player: "ada", Mode: "classic", Score: 500},
		{Player: "ada", Mode: "classic", Score: 2100},
		{Player: "bob", Mode: "classic", Score: 1300},
		{Player: "cy", Mode: "classic", Score: 900},
		{Player: "cy", Mode: "daily", Date: "2025-01-01", Seed: seeded.DateToSeed("2025-01-01"), Score: 9000},
	}
	for i := range runs {
		if err := db.SaveRun(&runs[i]); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	best, err := db.HighScore("ada")
	if err != nil || best != 2100 {
		t.Errorf("HighScore(ada) = %d, %v; want 2100", best, err)
	}
	best, err = db.HighScore("nobody")
	if err != nil || best != 0 {
		t.Errorf("HighScore(nobody) = %d, %v; want 0", best, err)
	}

	board, err := db.Leaderboard("classic", 2)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("Leaderboard len %d, want 2", len(board))
	}
	if board[0].Player != "ada" || board[0].Score != 2100 || board[0].Rank != 1 {
		t.Errorf("first entry %+v", board[0])
	}
	if board[1].Player != "bob" || board[1].Rank != 2 {
		t.Errorf("second entry %+v", board[1])
	}
	if board[0].PlayedAt.IsZero() {
		t.Error("last played time was not parsed")
	}
}

func TestDailyResults(t *testing.T) {
	db := openTestDB(t)
	date := "2025-05-05"
	seed := seeded.DateToSeed(date)
	for _, score := range []int{700, 1500, 1100} {
		r := &types.RunResult{Player: "ada", Mode: "daily", Date: date, Seed: seed, Score: score}
		if err := db.SaveRun(r); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}
	if err := db.RecordDaily(types.DailyResult{Player: "bob", Date: date, Seed: seed, Score: 1200}); err != nil {
		t.Fatalf("RecordDaily: %v", err)
	}

	d, err := db.DailyResult("ada", date)
	if err != nil {
		t.Fatalf("DailyResult: %v", err)
	}
	if d.Score != 1500 || d.Seed != seed {
		t.Errorf("daily result %+v, want best score 1500", d)
	}
	if _, err := db.DailyResult("ada", "2020-01-01"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing daily error %v, want ErrNotFound", err)
	}

	entries, err := db.DailyLeaderboard(date, 10)
	if err != nil {
		t.Fatalf("DailyLeaderboard: %v", err)
	}
	if len(entries) != 2 || entries[0].Player != "ada" || entries[1].Player != "bob" {
		t.Errorf("daily leaderboard %+v", entries)
	}
}

func TestStats(t *testing.T) {
	db := openTestDB(t)
	runs := []types.RunResult{
		{Player: "ada", Mode: "classic", Score: 400, Lines: 4, Pieces: 20, BestStreak: 2, AllClears: 0},
		{Player: "ada", Mode: "classic", Score: 1600, Lines: 15, Pieces: 55, BestStreak: 6, AllClears: 1},
		{Player: "ada", Mode: "daily", Date: "2025-03-01", Seed: seeded.DateToSeed("2025-03-01"), Score: 100, Lines: 1, Pieces: 9},
		{Player: "ada", Mode: "daily", Date: "2025-03-02", Seed: seeded.DateToSeed("2025-03-02"), Score: 200, Lines: 2, Pieces: 10},
		{Player: "bob", Mode: "classic", Score: 9999},
	}
	for i := range runs {
		if err := db.SaveRun(&runs[i]); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	s, err := db.Stats("ada", "2025-03-03")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := types.PlayerStats{
		Player:           "ada",
		TotalGames:       4,
		TotalScore:       2300,
		TotalLines:       22,
		TotalPieces:      94,
		BestScore:        1600,
		BestStreak:       6,
		AllClears:        1,
		DailyCompletions: 2,
		DailyStreak:      2,
		BestDailyStreak:  2,
	}
	if *s != want {
		t.Errorf("Stats = %+v\nwant %+v", *s, want)
	}

	empty, err := db.Stats("nobody", "2025-03-03")
	if err != nil {
		t.Fatalf("Stats(nobody): %v", err)
	}
	if empty.TotalGames != 0 || empty.BestScore != 0 || empty.DailyStreak != 0 {
		t.Errorf("Stats(nobody) = %+v", empty)
	}
}

func TestDailyStreaks(t *testing.T) {
	cases := []struct {
		name    string
		dates   []string
		today   string
		current int
		best    int
	}{
		{"none", nil, "2025-01-10", 0, 0},
		{"played today", []string{"2025-01-08", "2025-01-09", "2025-01-10"}, "2025-01-10", 3, 3},
		{"not yet today", []string{"2025-01-08", "2025-01-09"}, "2025-01-10", 2, 2},
		{"broken", []string{"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-09"}, "2025-01-10", 1, 3},
		{"lapsed", []string{"2025-01-01", "2025-01-02"}, "2025-01-10", 0, 2},
		{"unordered with duplicates", []string{"2025-01-03", "2025-01-01", "2025-01-02", "2025-01-02"}, "2025-01-03", 3, 3},
		{"month boundary", []string{"2025-01-31", "2025-02-01"}, "2025-02-01", 2, 2},
		{"bad input ignored", []string{"yesterday", "2025-01-10"}, "2025-01-10", 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cur, best := DailyStreaks(tc.dates, tc.today)
			if cur != tc.current || best != tc.best {
				t.Errorf("DailyStreaks = %d, %d; want %d, %d", cur, best, tc.current, tc.best)
			}
		})
	}
}

func TestAchievementUnlocks(t *testing.T) {
	db := openTestDB(t)
	first := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	if err := db.RecordUnlock("ada", "first_game", first); err != nil {
		t.Fatalf("RecordUnlock: %v", err)
	}
	if err := db.RecordUnlock("ada", "first_game", first.Add(time.Hour)); err != nil {
		t.Fatalf("RecordUnlock again: %v", err)
	}
	if err := db.RecordUnlock("ada", "streak_5", first); err != nil {
		t.Fatalf("RecordUnlock: %v", err)
	}

	got, err := db.Unlocked("ada")
	if err != nil {
		t.Fatalf("Unlocked: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Unlocked = %v, want 2 entries", got)
	}
	if !got["first_game"].Equal(first) {
		t.Errorf("first_game unlocked at %v, want %v", got["first_game"], first)
	}

	none, err := db.Unlocked("bob")
	if err != nil || len(none) != 0 {
		t.Errorf("Unlocked(bob) = %v, %v", none, err)
	}
}
