package engine

// Action is a command accepted by Reduce. The set is closed.
type Action interface {
	action()
}

// Place drops the piece in Slot with its origin at (Row, Col).
type Place struct {
	Slot int
	Row  int
	Col  int
}

// NewGame starts a classic run.
type NewGame struct{}

// NewDailyGame starts a daily run. The caller must supply a Source seeded
// with Seed; Session does this.
type NewDailyGame struct {
	Seed uint32
	Date string
}

// Revive clears cells and hands out a fresh tray after game over.
type Revive struct{}

// Undo rolls back the last placement.
type Undo struct{}

// DismissCelebration clears the celebration text.
type DismissCelebration struct{}

// LoadHighScore replaces the high score with Value.
type LoadHighScore struct {
	Value int
}

func (Place) action()              {}
func (NewGame) action()            {}
func (NewDailyGame) action()       {}
func (Revive) action()             {}
func (Undo) action()               {}
func (DismissCelebration) action() {}
func (LoadHighScore) action()      {}
