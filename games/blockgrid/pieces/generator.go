// Package pieces holds the shape catalog and the weighted tray generators.
//
// Weights are recomputed once per tray. Each slot is sampled with rejection:
// shapes with no legal position on the live board are dropped for the rest of
// the slot, the number of draws is bounded by Tuning.MaxAttempts, and the
// 1-cell dot is the fallback when nothing was confirmed placeable.
package pieces

import (
	"math"

	"github.com/isaacjstriker/blockgrid/games/blockgrid/board"
	"github.com/isaacjstriker/blockgrid/games/blockgrid/seeded"
)

// TraySize is the number of slots offered per round.
const TraySize = 3

// Piece is an immutable tray entry generated from a catalog shape.
type Piece struct {
	ID      int          `json:"id"`
	ShapeID string       `json:"shape"`
	Cells   []board.Cell `json:"cells"`
	Color   board.Color  `json:"color"`
	Tier    Tier         `json:"tier"`
}

// Tray is the set of offered pieces; nil marks a slot already placed.
type Tray [TraySize]*Piece

// Empty reports whether every slot has been placed.
func (t Tray) Empty() bool {
	for _, p := range t {
		if p != nil {
			return false
		}
	}
	return true
}

// Shapes returns the cell lists of the non-empty slots.
func (t Tray) Shapes() [][]board.Cell {
	out := make([][]board.Cell, 0, TraySize)
	for _, p := range t {
		if p != nil {
			out = append(out, p.Cells)
		}
	}
	return out
}

// Tuning controls dynamic difficulty.
type Tuning struct {
	RampStart     int     `yaml:"ramp_start"`
	RampEnd       int     `yaml:"ramp_end"`
	HardRampMax   float64 `yaml:"hard_ramp_max"`
	EasyRampFloor float64 `yaml:"easy_ramp_floor"`

	StreakThreshold int     `yaml:"streak_threshold"`
	StreakHardStep  float64 `yaml:"streak_hard_step"`
	StreakEasyStep  float64 `yaml:"streak_easy_step"`
	StreakMaxSteps  int     `yaml:"streak_max_steps"`

	OpenThreshold     float64 `yaml:"open_threshold"`
	OpenHardBoost     float64 `yaml:"open_hard_boost"`
	CriticalThreshold float64 `yaml:"critical_threshold"`
	CriticalEasyBoost float64 `yaml:"critical_easy_boost"`

	PityStall        int     `yaml:"pity_stall"`
	PityMinPositions int     `yaml:"pity_min_positions"`
	PityBoost        float64 `yaml:"pity_boost"`
	SolutionStall    int     `yaml:"solution_stall"`
	SolutionBoost    float64 `yaml:"solution_boost"`

	MinWeight   float64 `yaml:"min_weight"`
	MaxAttempts int     `yaml:"max_attempts"`

	ReviveEasy   float64 `yaml:"revive_easy"`
	ReviveMedium float64 `yaml:"revive_medium"`
	ReviveHard   float64 `yaml:"revive_hard"`
}

// DefaultTuning is the shipped difficulty curve.
var DefaultTuning = Tuning{
	RampStart:     1500,
	RampEnd:       15000,
	HardRampMax:   2.0,
	EasyRampFloor: 0.5,

	StreakThreshold: 3,
	StreakHardStep:  0.15,
	StreakEasyStep:  0.10,
	StreakMaxSteps:  5,

	OpenThreshold:     0.70,
	OpenHardBoost:     1.3,
	CriticalThreshold: 0.30,
	CriticalEasyBoost: 1.6,

	PityStall:        3,
	PityMinPositions: 3,
	PityBoost:        3,
	SolutionStall:    6,
	SolutionBoost:    6,

	MinWeight:   0.05,
	MaxAttempts: 12,

	ReviveEasy:   2.0,
	ReviveMedium: 1.2,
	ReviveHard:   0.3,
}

// Context is the run information the adaptive weights depend on.
// Board may be nil when no live board is available.
type Context struct {
	Board  *board.Board
	Score  int
	Streak int
	Stall  int
}

// Generator builds trays from a shape list.
type Generator struct {
	Shapes []Shape
	Tuning Tuning
}

// NewGenerator returns a generator over the full catalog.
func NewGenerator(t Tuning) *Generator {
	return &Generator{Shapes: Catalog(), Tuning: t}
}

// tierMultipliers computes the easy and hard multipliers from score, streak
// and board openness. Medium is never scaled.
func (g *Generator) tierMultipliers(ctx Context) (easy, hard float64) {
	t := g.Tuning
	easy, hard = 1, 1

	if t.RampEnd > t.RampStart && ctx.Score > t.RampStart {
		p := float64(ctx.Score-t.RampStart) / float64(t.RampEnd-t.RampStart)
		if p > 1 {
			p = 1
		}
		hard *= 1 + p*(t.HardRampMax-1)
		easy *= 1 - p*(1-t.EasyRampFloor)
	}

	if t.StreakThreshold > 0 && ctx.Streak >= t.StreakThreshold {
		over := ctx.Streak - t.StreakThreshold + 1
		if t.StreakMaxSteps > 0 && over > t.StreakMaxSteps {
			over = t.StreakMaxSteps
		}
		hard *= 1 + float64(over)*t.StreakHardStep
		easy *= math.Max(0, 1-float64(over)*t.StreakEasyStep)
	}

	if ctx.Board != nil {
		open := board.EmptyRatio(*ctx.Board)
		switch {
		case open > t.OpenThreshold:
			hard *= t.OpenHardBoost
		case open < t.CriticalThreshold:
			easy *= t.CriticalEasyBoost
		}
	}
	return easy, hard
}

// Weights returns the effective selection weight of every shape, index
// aligned with g.Shapes. No weight is below Tuning.MinWeight.
func (g *Generator) Weights(ctx Context) []float64 {
	t := g.Tuning
	easy, hard := g.tierMultipliers(ctx)
	out := make([]float64, len(g.Shapes))
	for i, s := range g.Shapes {
		w := s.Weight
		switch s.Tier {
		case Easy:
			w *= easy
		case Hard:
			w *= hard
		}
		if ctx.Board != nil {
			if ctx.Stall > t.PityStall && board.ValidPositions(*ctx.Board, s.Cells) >= t.PityMinPositions {
				w *= t.PityBoost
			}
			if ctx.Stall > t.SolutionStall && board.ClearsLine(*ctx.Board, s.Cells) {
				w *= t.SolutionBoost
			}
		}
		out[i] = math.Max(w, t.MinWeight)
	}
	return out
}

// BaseWeights returns the catalog weights with only the floor applied.
func (g *Generator) BaseWeights() []float64 {
	out := make([]float64, len(g.Shapes))
	for i, s := range g.Shapes {
		out[i] = math.Max(s.Weight, g.Tuning.MinWeight)
	}
	return out
}

// PityWeights favors easy and medium shapes for the tray handed out after a
// revive.
func (g *Generator) PityWeights() []float64 {
	t := g.Tuning
	out := make([]float64, len(g.Shapes))
	for i, s := range g.Shapes {
		w := s.Weight
		switch s.Tier {
		case Easy:
			w *= t.ReviveEasy
		case Medium:
			w *= t.ReviveMedium
		case Hard:
			w *= t.ReviveHard
		}
		out[i] = math.Max(w, t.MinWeight)
	}
	return out
}

// Tray generates an adaptive tray. nextID is the first instance id to use;
// the following unused id is returned.
func (g *Generator) Tray(ctx Context, src seeded.Source, nextID int) (Tray, int) {
	return g.fill(g.Weights(ctx), ctx.Board, src, nextID)
}

// PityTray generates a revive tray without a board fit pre-check.
func (g *Generator) PityTray(src seeded.Source, nextID int) (Tray, int) {
	return g.fill(g.PityWeights(), nil, src, nextID)
}

// DailyTray generates a tray from flat catalog weights. The result depends
// only on src and the board, never on score or streak.
func (g *Generator) DailyTray(b board.Board, src seeded.Source, nextID int) (Tray, int) {
	return g.fill(g.BaseWeights(), &b, src, nextID)
}

func (g *Generator) fill(weights []float64, b *board.Board, src seeded.Source, nextID int) (Tray, int) {
	var tray Tray
	for slot := 0; slot < TraySize; slot++ {
		excluded := make([]bool, len(g.Shapes))
		remaining := len(g.Shapes)
		for _, p := range tray[:slot] {
			if i := g.index(p.ShapeID); i >= 0 && !excluded[i] {
				excluded[i] = true
				remaining--
			}
		}
		if remaining == 0 {
			excluded = make([]bool, len(g.Shapes))
		}

		chosen := -1
		for attempt := 0; attempt < g.Tuning.MaxAttempts; attempt++ {
			i := sample(weights, excluded, src)
			if i < 0 {
				break
			}
			if b == nil || board.CanPlace(*b, g.Shapes[i].Cells) {
				chosen = i
				break
			}
			excluded[i] = true
		}
		if chosen < 0 {
			chosen = g.fallback()
		}

		s := g.Shapes[chosen]
		color := seeded.Pick(src, Palette)
		tray[slot] = &Piece{
			ID:      nextID,
			ShapeID: s.ID,
			Cells:   s.Cells,
			Color:   color,
			Tier:    s.Tier,
		}
		nextID++
	}
	return tray, nextID
}

// sample draws an index proportional to weight among non-excluded entries.
// It returns -1 when nothing is selectable.
func sample(weights []float64, excluded []bool, src seeded.Source) int {
	total := 0.0
	for i, w := range weights {
		if !excluded[i] {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	x := src.Float64() * total
	last := -1
	for i, w := range weights {
		if excluded[i] {
			continue
		}
		last = i
		if x < w {
			return i
		}
		x -= w
	}
	return last
}

func (g *Generator) index(id string) int {
	for i, s := range g.Shapes {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// fallback is the dot, or the smallest shape when the list has no dot.
func (g *Generator) fallback() int {
	if i := g.index(DotID); i >= 0 {
		return i
	}
	best := 0
	for i, s := range g.Shapes {
		if len(s.Cells) < len(g.Shapes[best].Cells) {
			best = i
		}
	}
	return best
}
