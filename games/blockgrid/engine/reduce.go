package engine

import (
	"github.com/isaacjstriker/blockgrid/games/blockgrid/board"
	"github.com/isaacjstriker/blockgrid/games/blockgrid/pieces"
	"github.com/isaacjstriker/blockgrid/games/blockgrid/seeded"
)

// Deps are the collaborators Reduce draws from. Source is the only
// nondeterministic input.
type Deps struct {
	Source    seeded.Source
	Generator *pieces.Generator
	Scoring   board.Scoring
	Rules     Rules
}

// DefaultDeps builds Deps with the shipped tuning around src.
func DefaultDeps(src seeded.Source) Deps {
	return Deps{
		Source:    src,
		Generator: pieces.NewGenerator(pieces.DefaultTuning),
		Scoring:   board.DefaultScoring,
		Rules:     DefaultRules,
	}
}

// Reduce applies a to s.
func Reduce(s State, a Action, d Deps) State {
	switch a := a.(type) {
	case Place:
		return place(s, a, d)
	case NewGame:
		return start(s, ModeClassic, 0, "", d)
	case NewDailyGame:
		return start(s, ModeDaily, a.Seed, a.Date, d)
	case Revive:
		return revive(s, d)
	case Undo:
		return undo(s)
	case DismissCelebration:
		s.Celebration = ""
		return s
	case LoadHighScore:
		if a.Value < 0 {
			return s
		}
		s.HighScore = a.Value
		return s
	}
	return s
}

func start(s State, mode Mode, seed uint32, date string, d Deps) State {
	n := State{
		HighScore:   s.HighScore,
		RevivesLeft: d.Rules.ReviveBudget,
		UndosLeft:   d.Rules.UndoBudget,
		Mode:        mode,
		Seed:        seed,
		Date:        date,
		NextID:      1,
	}
	n.Tray, n.NextID = refill(n, d)
	n.Epoch = 1
	n.GameOver = stuck(n.Board, n.Tray)
	return n
}

func refill(s State, d Deps) (Tray, int) {
	if s.Mode == ModeDaily {
		return d.Generator.DailyTray(s.Board, d.Source, s.NextID)
	}
	b := s.Board
	return d.Generator.Tray(pieces.Context{
		Board:  &b,
		Score:  s.Score,
		Streak: s.Streak,
		Stall:  s.Stall,
	}, d.Source, s.NextID)
}

func place(s State, a Place, d Deps) State {
	if s.GameOver || a.Slot < 0 || a.Slot >= len(s.Tray) {
		return s
	}
	p := s.Tray[a.Slot]
	if p == nil || !board.Fits(s.Board, p.Cells, a.Row, a.Col) {
		return s
	}

	snap := s.snapshot()
	n := s
	n.Undo = &snap
	n.Board = board.Place(s.Board, p.Cells, p.Color, a.Row, a.Col)
	n.Tray[a.Slot] = nil
	n.Stats.PiecesPlaced++

	rows, cols := board.CompletedLines(n.Board)
	lines := len(rows) + len(cols)
	allClear := false
	points := 0
	if lines > 0 {
		var cleared int
		n.Board, cleared = board.ClearLines(n.Board, rows, cols)
		points = d.Scoring.Points(cleared, lines, s.Streak)
		if board.IsEmpty(n.Board) {
			allClear = true
			points += d.Scoring.AllClearBonus
			n.Stats.AllClears++
		}
		n.Streak = s.Streak + 1
		n.Stall = 0
		n.Stats.LinesCleared += lines
		n.Stats.LastClearCount = lines
		if n.Streak > n.Stats.BestStreak {
			n.Stats.BestStreak = n.Streak
		}
	} else {
		n.Streak = 0
		n.Stall = s.Stall + 1
	}
	n.LastPoints = points
	n.Score = s.Score + points
	if n.Score > n.HighScore {
		n.HighScore = n.Score
	}

	milestone := d.Rules.crossed(s.Milestone, n.Score)
	if milestone > 0 {
		n.Milestone = milestone
	}
	n.Celebration = celebration(allClear, milestone, lines, n.Streak)

	if n.Tray.Empty() {
		n.Tray, n.NextID = refill(n, d)
		n.Epoch++
	}
	n.GameOver = stuck(n.Board, n.Tray)
	return n
}

func revive(s State, d Deps) State {
	if !s.CanRevive() {
		return s
	}
	n := s
	n.Board = board.ClearForRevive(s.Board, d.Rules.ReviveCells, d.Source)
	n.Tray, n.NextID = d.Generator.PityTray(d.Source, s.NextID)
	n.Epoch++
	n.Stall = 0
	n.RevivesLeft--
	n.Stats.Revives++
	n.Undo = nil
	n.Celebration = ""
	n.LastPoints = 0
	n.GameOver = stuck(n.Board, n.Tray)
	return n
}

func undo(s State) State {
	if !s.CanUndo() {
		return s
	}
	n := s
	s.Undo.restore(&n)
	n.Undo = nil
	n.UndosLeft--
	n.Stats.UndosUsed = s.Stats.UndosUsed + 1
	n.Celebration = ""
	n.LastPoints = 0
	return n
}

// stuck reports whether no tray piece fits anywhere.
func stuck(b board.Board, t Tray) bool {
	return !board.AnyFits(b, t.Shapes())
}
