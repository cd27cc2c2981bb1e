package games

import (
	"fmt"
	"sort"
	"time"

	"github.com/isaacjstriker/blockgrid/games/blockgrid/engine"
	"github.com/isaacjstriker/blockgrid/games/blockgrid/seeded"
)

// Mode is a way to start a run.
type Mode struct {
	Name        string
	Description string
	Daily       bool
}

// Start resets s into a fresh run of this mode. Daily runs use the local date
// of now.
func (m Mode) Start(s *engine.Session, now time.Time) {
	if m.Daily {
		s.NewDaily(seeded.Today(now))
		return
	}
	s.NewGame()
}

// Registry of available modes
var Modes = map[string]Mode{
	"classic": {
		Name:        "classic",
		Description: "Endless run with adaptive pieces",
	},
	"daily": {
		Name:        "daily",
		Description: "Same pieces for everyone today",
		Daily:       true,
	},
}

// GetMode looks up a mode by name.
func GetMode(name string) (Mode, error) {
	m, ok := Modes[name]
	if !ok {
		return Mode{}, fmt.Errorf("unknown mode %q", name)
	}
	return m, nil
}

// GetModeList returns the mode names in sorted order.
func GetModeList() []string {
	var modes []string
	for name := range Modes {
		modes = append(modes, name)
	}
	sort.Strings(modes)
	return modes
}
