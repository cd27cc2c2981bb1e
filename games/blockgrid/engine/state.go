// Package engine is the block-puzzle state machine. State is a plain value;
// Reduce applies one Action and returns the next State. Invalid actions
// return the input unchanged.
package engine

import (
	"fmt"

	"github.com/isaacjstriker/blockgrid/games/blockgrid/board"
	"github.com/isaacjstriker/blockgrid/games/blockgrid/pieces"
)

// Tray is the set of offered pieces.
type Tray = pieces.Tray

// Mode selects the tray generator.
type Mode int

const (
	ModeClassic Mode = iota
	ModeDaily
)

func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "classic"
	case ModeDaily:
		return "daily"
	default:
		return "unknown"
	}
}

// RunStats are the per-run counters.
type RunStats struct {
	PiecesPlaced   int `json:"piecesPlaced"`
	LinesCleared   int `json:"linesCleared"`
	BestStreak     int `json:"bestStreak"`
	Revives        int `json:"revives"`
	AllClears      int `json:"allClears"`
	LastClearCount int `json:"lastClearCount"`
	UndosUsed      int `json:"undosUsed"`
}

// UndoSnapshot holds what a single placement can change.
type UndoSnapshot struct {
	Board     board.Board
	Tray      Tray
	Score     int
	Streak    int
	Stall     int
	Epoch     int
	Milestone int
	GameOver  bool
	Stats     RunStats
}

// State is the full game state. It is comparable with ==.
type State struct {
	Board       board.Board   `json:"board"`
	Tray        Tray          `json:"tray"`
	Score       int           `json:"score"`
	HighScore   int           `json:"highScore"`
	LastPoints  int           `json:"lastPoints"`
	Streak      int           `json:"streak"`
	Stall       int           `json:"stall"`
	Epoch       int           `json:"epoch"`
	Milestone   int           `json:"milestone"`
	RevivesLeft int           `json:"revivesLeft"`
	UndosLeft   int           `json:"undosLeft"`
	Undo        *UndoSnapshot `json:"-"`
	GameOver    bool          `json:"gameOver"`
	Celebration string        `json:"celebration,omitempty"`
	Mode        Mode          `json:"mode"`
	Seed        uint32        `json:"seed,omitempty"`
	Date        string        `json:"date,omitempty"`
	NextID      int           `json:"-"`
	Stats       RunStats      `json:"stats"`
}

// CanUndo reports whether an Undo action would apply.
func (s State) CanUndo() bool {
	return s.Undo != nil && s.UndosLeft > 0
}

// CanRevive reports whether a Revive action would apply.
func (s State) CanRevive() bool {
	return s.GameOver && s.RevivesLeft > 0
}

func (s State) snapshot() UndoSnapshot {
	return UndoSnapshot{
		Board:     s.Board,
		Tray:      s.Tray,
		Score:     s.Score,
		Streak:    s.Streak,
		Stall:     s.Stall,
		Epoch:     s.Epoch,
		Milestone: s.Milestone,
		GameOver:  s.GameOver,
		Stats:     s.Stats,
	}
}

func (u UndoSnapshot) restore(s *State) {
	s.Board = u.Board
	s.Tray = u.Tray
	s.Score = u.Score
	s.Streak = u.Streak
	s.Stall = u.Stall
	s.Epoch = u.Epoch
	s.Milestone = u.Milestone
	s.GameOver = u.GameOver
	s.Stats = u.Stats
}

// Rules are the run budgets and milestone table.
type Rules struct {
	ReviveCells  int   `yaml:"revive_cells"`
	ReviveBudget int   `yaml:"revive_budget"`
	UndoBudget   int   `yaml:"undo_budget"`
	Milestones   []int `yaml:"milestones"`
}

// DefaultRules are the shipped budgets.
var DefaultRules = Rules{
	ReviveCells:  10,
	ReviveBudget: 1,
	UndoBudget:   3,
	Milestones:   []int{1000, 2500, 5000, 10000, 25000, 50000, 100000},
}

// crossed returns the highest milestone above prev that score has reached,
// or 0 when none was crossed.
func (r Rules) crossed(prev, score int) int {
	hit := 0
	for _, m := range r.Milestones {
		if m > prev && m <= score && m > hit {
			hit = m
		}
	}
	return hit
}

// celebration picks the single message for a placement.
// All clear beats milestone, which beats multi-line, which beats streak.
func celebration(allClear bool, milestone, lines, streak int) string {
	switch {
	case allClear:
		return "ALL CLEAR!"
	case milestone > 0:
		return fmt.Sprintf("%d POINTS!", milestone)
	case lines >= 2:
		switch lines {
		case 2:
			return "DOUBLE!"
		case 3:
			return "TRIPLE!"
		case 4:
			return "QUAD!"
		default:
			return fmt.Sprintf("%d LINES!", lines)
		}
	case streak >= 3:
		return fmt.Sprintf("STREAK x%d", streak)
	}
	return ""
}
