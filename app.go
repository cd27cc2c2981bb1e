package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/isaacjstriker/blockgrid/games"
	"github.com/isaacjstriker/blockgrid/games/blockgrid"
	"github.com/isaacjstriker/blockgrid/games/blockgrid/engine"
	"github.com/isaacjstriker/blockgrid/games/blockgrid/seeded"
	"github.com/isaacjstriker/blockgrid/internal/achievements"
	"github.com/isaacjstriker/blockgrid/internal/config"
	"github.com/isaacjstriker/blockgrid/internal/database"
	"github.com/isaacjstriker/blockgrid/internal/receipt"
	"github.com/isaacjstriker/blockgrid/internal/types"
)

// app wires configuration, storage and the optional achievements script
// around the game. A nil db means runs are played but not recorded.
type app struct {
	cfg    *config.Config
	db     *database.DB
	script *achievements.Script
	out    io.Writer
	now    func() time.Time
}

func newApp(cfg *config.Config, out io.Writer) *app {
	a := &app{cfg: cfg, out: out, now: time.Now}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Printf("[WARN] Could not connect to database, runs will not be saved: %v", err)
	} else if err := db.CreateTables(); err != nil {
		log.Printf("[WARN] Could not create tables, runs will not be saved: %v", err)
		db.Close()
	} else {
		a.db = db
	}

	if cfg.AchievementsScript != "" {
		s, err := achievements.LoadScript(cfg.AchievementsScript)
		if err != nil {
			log.Printf("[WARN] Skipping custom achievements: %v", err)
		} else {
			a.script = s
			log.Printf("[INFO] Loaded %d custom achievements from %s", len(s.Achievements), cfg.AchievementsScript)
		}
	}
	return a
}

func (a *app) Close() {
	if a.script != nil {
		a.script.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

func (a *app) achievementList() []achievements.Achievement {
	list := achievements.Catalog()
	if a.script != nil {
		list = append(list, a.script.Achievements...)
	}
	return list
}

func (a *app) today() string {
	return seeded.Today(a.now())
}

// newSession builds a session for mode with the player's stored best loaded.
func (a *app) newSession(mode games.Mode) *engine.Session {
	s := engine.NewSession(a.cfg.Tuning.Deps(nil))
	if a.db != nil {
		best, err := a.db.HighScore(a.cfg.PlayerName)
		if err != nil {
			log.Printf("[WARN] Could not load high score: %v", err)
		}
		s.LoadHighScore(best)
	}
	mode.Start(s, a.now())
	return s
}

func (a *app) play(name string) error {
	mode, err := games.GetMode(name)
	if err != nil {
		return err
	}

	g := blockgrid.NewGame(a.newSession(mode))
	g.Debug = a.cfg.Debug
	g.OnRunEnd = func(r types.RunResult) {
		if err := a.finishRun(r); err != nil {
			log.Printf("[WARN] %v", err)
		}
	}

	result, err := g.Play()
	if err != nil {
		return err
	}
	if result.Pieces == 0 {
		return nil
	}
	return a.finishRun(result)
}

// finishRun records a run, unlocks achievements and prints the summary. Daily
// runs also get a share code.
func (a *app) finishRun(r types.RunResult) error {
	r.Player = a.cfg.PlayerName

	fmt.Fprintln(a.out, strings.Repeat("=", 40))
	fmt.Fprintf(a.out, "Run over: %d points, %d lines, %d pieces\n", r.Score, r.Lines, r.Pieces)
	fmt.Fprintf(a.out, "Best streak: %d | All clears: %d | Revives: %d | Undos: %d\n",
		r.BestStreak, r.AllClears, r.Revives, r.Undos)

	if a.db != nil {
		if err := a.db.SaveRun(&r); err != nil {
			return err
		}
		if err := a.unlockAchievements(r); err != nil {
			return err
		}
	}

	if r.Mode == "daily" {
		code, err := receipt.Issue(a.cfg.ReceiptSecret, r, a.now())
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Daily %s share code:\n%s\n", r.Date, code)
	}
	fmt.Fprintln(a.out, strings.Repeat("=", 40))
	return nil
}

func (a *app) unlockAchievements(r types.RunResult) error {
	stats, err := a.db.Stats(r.Player, a.today())
	if err != nil {
		return err
	}
	have, err := a.db.Unlocked(r.Player)
	if err != nil {
		return err
	}
	unlocked := make(map[string]bool, len(have))
	for id := range have {
		unlocked[id] = true
	}

	list := a.achievementList()
	now := a.now()
	for _, id := range achievements.CheckAll(achievements.NewContext(*stats, r), unlocked, list...) {
		if err := a.db.RecordUnlock(r.Player, id, now); err != nil {
			return err
		}
		ach, _ := achievements.Lookup(id, list...)
		fmt.Fprintf(a.out, "Achievement unlocked: %s (%s)\n", ach.Name, ach.Tier)
	}
	return nil
}

var errNoDatabase = errors.New("no database configured; set DATABASE_URL")

func (a *app) showStats() error {
	if a.db == nil {
		return errNoDatabase
	}
	s, err := a.db.Stats(a.cfg.PlayerName, a.today())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Stats for %s\n", s.Player)
	fmt.Fprintln(a.out, strings.Repeat("-", 40))
	fmt.Fprintf(a.out, "Games played:   %d\n", s.TotalGames)
	fmt.Fprintf(a.out, "Best score:     %d\n", s.BestScore)
	fmt.Fprintf(a.out, "Total score:    %d\n", s.TotalScore)
	fmt.Fprintf(a.out, "Lines cleared:  %d\n", s.TotalLines)
	fmt.Fprintf(a.out, "Pieces placed:  %d\n", s.TotalPieces)
	fmt.Fprintf(a.out, "Best streak:    %d\n", s.BestStreak)
	fmt.Fprintf(a.out, "All clears:     %d\n", s.AllClears)
	fmt.Fprintf(a.out, "Daily played:   %d (streak %d, best %d)\n", s.DailyCompletions, s.DailyStreak, s.BestDailyStreak)
	return nil
}

func (a *app) showLeaderboard(mode string) error {
	if a.db == nil {
		return errNoDatabase
	}
	if _, err := games.GetMode(mode); err != nil {
		return err
	}

	var entries []types.LeaderboardEntry
	var err error
	title := "Classic leaderboard"
	if mode == "daily" {
		title = "Daily leaderboard " + a.today()
		entries, err = a.db.DailyLeaderboard(a.today(), a.cfg.LeaderboardSize)
	} else {
		entries, err = a.db.Leaderboard(mode, a.cfg.LeaderboardSize)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, title)
	fmt.Fprintln(a.out, strings.Repeat("-", 40))
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No scores yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(a.out, "%3d. %-20s %8d\n", e.Rank, e.Player, e.Score)
	}
	return nil
}

func (a *app) showAchievements() error {
	if a.db == nil {
		return errNoDatabase
	}
	stats, err := a.db.Stats(a.cfg.PlayerName, a.today())
	if err != nil {
		return err
	}
	have, err := a.db.Unlocked(a.cfg.PlayerName)
	if err != nil {
		return err
	}
	ctx := achievements.NewContext(*stats, types.RunResult{})

	for _, ach := range a.achievementList() {
		mark := "[ ]"
		if _, ok := have[ach.ID]; ok {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %-22s %-6s", mark, ach.Name, ach.Tier)
		if ach.Progress != nil {
			cur, target := ach.Progress(ctx)
			line += fmt.Sprintf(" %d/%d", cur, target)
		}
		fmt.Fprintln(a.out, strings.TrimRight(line, " "))
	}
	return nil
}

func (a *app) verify(code string) error {
	c, err := receipt.Verify(a.cfg.ReceiptSecret, code)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Valid receipt: %s scored %d (%d lines) on the %s daily\n", c.Player, c.Score, c.Lines, c.Date)

	if a.db == nil {
		return nil
	}
	d, err := a.db.DailyResult(c.Player, c.Date)
	switch {
	case errors.Is(err, database.ErrNotFound):
		fmt.Fprintln(a.out, "No local result recorded for that player and date.")
	case err != nil:
		return err
	case d.Score == c.Score:
		fmt.Fprintln(a.out, "Matches the local best.")
	default:
		fmt.Fprintf(a.out, "Local best for that day is %d.\n", d.Score)
	}
	return nil
}
