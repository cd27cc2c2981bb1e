package games

import (
	"testing"
	"time"

	"github.com/isaacjstriker/blockgrid/games/blockgrid/engine"
	"github.com/isaacjstriker/blockgrid/games/blockgrid/seeded"
)

func TestGetModeList(t *testing.T) {
	got := GetModeList()
	if len(got) != 2 || got[0] != "classic" || got[1] != "daily" {
		t.Errorf("GetModeList = %v, want [classic daily]", got)
	}
}

func TestGetMode(t *testing.T) {
	if _, err := GetMode("tetris"); err == nil {
		t.Error("unknown mode should fail")
	}
	m, err := GetMode("daily")
	if err != nil || !m.Daily {
		t.Errorf("GetMode(daily) = %+v, %v", m, err)
	}
}

func TestModeStart(t *testing.T) {
	s := engine.NewSession(engine.DefaultDeps(seeded.New(3)))
	now := time.Date(2025, 9, 14, 20, 0, 0, 0, time.Local)

	Modes["daily"].Start(s, now)
	st := s.State()
	if st.Mode != engine.ModeDaily || st.Date != "2025-09-14" || st.Seed != seeded.DateToSeed("2025-09-14") {
		t.Errorf("daily start: mode %v date %q seed %d", st.Mode, st.Date, st.Seed)
	}

	Modes["classic"].Start(s, now)
	if st := s.State(); st.Mode != engine.ModeClassic || st.Date != "" {
		t.Errorf("classic start: mode %v date %q", st.Mode, st.Date)
	}
}
