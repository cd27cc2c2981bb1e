package achievements

import (
	"github.com/isaacjstriker/blockgrid/internal/types"
)

// Tier is the medal an achievement awards.
type Tier int

const (
	Bronze Tier = iota
	Silver
	Gold
)

func (t Tier) String() string {
	switch t {
	case Bronze:
		return "bronze"
	case Silver:
		return "silver"
	case Gold:
		return "gold"
	default:
		return "unknown"
	}
}

// ParseTier maps a tier name to a Tier. Unknown names are Bronze.
func ParseTier(s string) Tier {
	switch s {
	case "silver":
		return Silver
	case "gold":
		return Gold
	default:
		return Bronze
	}
}

// Context is the read-only view predicates are evaluated against.
type Context struct {
	TotalGames       int
	TotalScore       int
	TotalLines       int
	TotalPieces      int
	BestStreak       int
	AllClears        int
	DailyStreak      int
	BestDailyStreak  int
	DailyCompletions int

	RunScore          int
	RunRevives        int
	RunLastClearCount int
	RunLines          int
}

// NewContext builds a Context from cumulative stats and the run just
// finished. stats is expected to already include run.
func NewContext(stats types.PlayerStats, run types.RunResult) Context {
	return Context{
		TotalGames:        stats.TotalGames,
		TotalScore:        stats.TotalScore,
		TotalLines:        stats.TotalLines,
		TotalPieces:       stats.TotalPieces,
		BestStreak:        stats.BestStreak,
		AllClears:         stats.AllClears,
		DailyStreak:       stats.DailyStreak,
		BestDailyStreak:   stats.BestDailyStreak,
		DailyCompletions:  stats.DailyCompletions,
		RunScore:          run.Score,
		RunRevives:        run.Revives,
		RunLastClearCount: run.LastClearCount,
		RunLines:          run.Lines,
	}
}

// Achievement is a single unlockable predicate. Progress is optional.
type Achievement struct {
	ID       string
	Name     string
	Tier     Tier
	Check    func(Context) bool
	Progress func(Context) (current, target int)
}

// counter builds an achievement that unlocks when get(ctx) reaches target.
func counter(id, name string, tier Tier, target int, get func(Context) int) Achievement {
	return Achievement{
		ID:    id,
		Name:  name,
		Tier:  tier,
		Check: func(c Context) bool { return get(c) >= target },
		Progress: func(c Context) (int, int) {
			cur := get(c)
			if cur > target {
				cur = target
			}
			return cur, target
		},
	}
}

var catalog = []Achievement{
	counter("first_game", "First Drop", Bronze, 1, func(c Context) int { return c.TotalGames }),
	counter("games_50", "Regular", Silver, 50, func(c Context) int { return c.TotalGames }),
	counter("games_250", "Devoted", Gold, 250, func(c Context) int { return c.TotalGames }),

	counter("score_1000", "Four Digits", Bronze, 1000, func(c Context) int { return c.RunScore }),
	counter("score_5000", "High Roller", Silver, 5000, func(c Context) int { return c.RunScore }),
	counter("score_25000", "Grandmaster", Gold, 25000, func(c Context) int { return c.RunScore }),

	counter("lines_100", "Line Cutter", Bronze, 100, func(c Context) int { return c.TotalLines }),
	counter("lines_1000", "Line Breaker", Silver, 1000, func(c Context) int { return c.TotalLines }),
	counter("pieces_5000", "Block Mover", Silver, 5000, func(c Context) int { return c.TotalPieces }),

	counter("streak_5", "On Fire", Bronze, 5, func(c Context) int { return c.BestStreak }),
	counter("streak_10", "Unstoppable", Gold, 10, func(c Context) int { return c.BestStreak }),

	counter("all_clear", "Clean Slate", Silver, 1, func(c Context) int { return c.AllClears }),
	counter("all_clear_10", "Spotless", Gold, 10, func(c Context) int { return c.AllClears }),

	{
		ID:    "triple_clear",
		Name:  "Hat Trick",
		Tier:  Bronze,
		Check: func(c Context) bool { return c.RunLastClearCount >= 3 },
	},
	{
		ID:    "no_revive_5000",
		Name:  "No Second Chances",
		Tier:  Gold,
		Check: func(c Context) bool { return c.RunScore >= 5000 && c.RunRevives == 0 },
	},

	counter("daily_first", "Daily Player", Bronze, 1, func(c Context) int { return c.DailyCompletions }),
	counter("daily_streak_7", "Week Streak", Silver, 7, func(c Context) int { return c.BestDailyStreak }),
	counter("daily_streak_30", "Month Streak", Gold, 30, func(c Context) int { return c.BestDailyStreak }),
}

// Catalog returns the built-in achievements.
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds an achievement by id in list, or in the catalog when list is
// empty.
func Lookup(id string, list ...Achievement) (Achievement, bool) {
	if len(list) == 0 {
		list = catalog
	}
	for _, a := range list {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// CheckAll evaluates every achievement not in unlocked and returns the ids
// that are now satisfied, in list order. An empty list means the catalog.
// unlocked is not modified.
func CheckAll(ctx Context, unlocked map[string]bool, list ...Achievement) []string {
	if len(list) == 0 {
		list = catalog
	}
	var out []string
	for _, a := range list {
		if unlocked[a.ID] || a.Check == nil {
			continue
		}
		if a.Check(ctx) {
			out = append(out, a.ID)
		}
	}
	return out
}
