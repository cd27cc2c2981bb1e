package board

import "math"

// Scoring holds the product-tuning constants of the score formula.
type Scoring struct {
	PerCell         int     `yaml:"per_cell"`
	ComboUnit       int     `yaml:"combo_unit"`
	StreakIncrement float64 `yaml:"streak_increment"`
	AllClearBonus   int     `yaml:"all_clear_bonus"`
}

// DefaultScoring is the shipped tuning.
var DefaultScoring = Scoring{
	PerCell:         10,
	ComboUnit:       10,
	StreakIncrement: 0.5,
	AllClearBonus:   300,
}

// ComboBonus grows super-linearly with the number of lines cleared by a
// single placement: unit*n*(n+1).
func (s Scoring) ComboBonus(lines int) int {
	if lines <= 0 {
		return 0
	}
	return s.ComboUnit * lines * (lines + 1)
}

// Points scores a clear. streak is the number of consecutive clearing
// placements before this one. The all-clear bonus is not included.
func (s Scoring) Points(cellsCleared, linesCleared, streak int) int {
	if linesCleared == 0 {
		return 0
	}
	if streak < 0 {
		streak = 0
	}
	base := float64(cellsCleared*s.PerCell + s.ComboBonus(linesCleared))
	return int(math.Round(base * (1 + float64(streak)*s.StreakIncrement)))
}

// Score applies DefaultScoring.
func Score(cellsCleared, linesCleared, streak int) int {
	return DefaultScoring.Points(cellsCleared, linesCleared, streak)
}
