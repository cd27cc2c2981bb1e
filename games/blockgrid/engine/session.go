package engine

import (
	"math/rand"
	"time"

	"github.com/isaacjstriker/blockgrid/games/blockgrid/seeded"
	"github.com/isaacjstriker/blockgrid/internal/types"
)

// Session owns one run: its State, its random source and its deps.
// It is not safe for concurrent use.
type Session struct {
	state   State
	deps    Deps
	classic seeded.Source
	now     func() time.Time
	started time.Time

	// OnChange, when set, is called after every action that changed the state.
	OnChange func(prev, next State)
}

// NewSession creates a session and starts a classic run. A nil d.Source is
// replaced with a time-seeded math/rand generator.
func NewSession(d Deps) *Session {
	if d.Source == nil {
		d.Source = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Session{
		deps:    d,
		classic: d.Source,
		now:     time.Now,
	}
	s.NewGame()
	return s
}

// Dispatch applies a and reports whether the state changed.
func (s *Session) Dispatch(a Action) bool {
	switch a := a.(type) {
	case NewGame:
		s.deps.Source = s.classic
		s.started = s.now()
	case NewDailyGame:
		s.deps.Source = seeded.New(a.Seed)
		s.started = s.now()
	}
	prev := s.state
	s.state = Reduce(prev, a, s.deps)
	changed := s.state != prev
	if changed && s.OnChange != nil {
		s.OnChange(prev, s.state)
	}
	return changed
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

func (s *Session) Place(slot, row, col int) bool {
	return s.Dispatch(Place{Slot: slot, Row: row, Col: col})
}

func (s *Session) NewGame() {
	s.Dispatch(NewGame{})
}

// NewDaily starts the daily run for date (YYYY-MM-DD).
func (s *Session) NewDaily(date string) {
	s.Dispatch(NewDailyGame{Seed: seeded.DateToSeed(date), Date: date})
}

func (s *Session) Revive() bool {
	return s.Dispatch(Revive{})
}

func (s *Session) Undo() bool {
	return s.Dispatch(Undo{})
}

func (s *Session) DismissCelebration() {
	s.Dispatch(DismissCelebration{})
}

func (s *Session) LoadHighScore(v int) {
	s.Dispatch(LoadHighScore{Value: v})
}

// Result summarizes the current run for persistence.
func (s *Session) Result() types.RunResult {
	st := s.state
	now := s.now()
	return types.RunResult{
		Mode:           st.Mode.String(),
		Seed:           st.Seed,
		Date:           st.Date,
		Score:          st.Score,
		Lines:          st.Stats.LinesCleared,
		Pieces:         st.Stats.PiecesPlaced,
		BestStreak:     st.Stats.BestStreak,
		Revives:        st.Stats.Revives,
		AllClears:      st.Stats.AllClears,
		Undos:          st.Stats.UndosUsed,
		LastClearCount: st.Stats.LastClearCount,
		Duration:       now.Sub(s.started).Seconds(),
		Completed:      st.GameOver,
		PlayedAt:       now,
	}
}
