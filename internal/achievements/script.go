package achievements

import (
	"fmt"
	"log"

	lua "github.com/yuin/gopher-lua"
)

// Script holds achievements defined by a Lua file. The Lua state stays open
// for as long as the predicates are used; call Close when done.
//
// A script returns a list of tables:
//
//	return {
//	  { id = "marathon", name = "Marathon", tier = "silver", target = 500,
//	    progress = function(ctx) return ctx.total_lines end,
//	    check = function(ctx) return ctx.total_lines >= 500 end },
//	}
//
// check may be omitted when progress and target are given.
type Script struct {
	L            *lua.LState
	Achievements []Achievement
}

// LoadScript runs the Lua file at path and collects its achievements.
func LoadScript(path string) (*Script, error) {
	L := lua.NewState()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("failed to run achievements script: %w", err)
	}
	return collect(L)
}

// LoadScriptString is LoadScript for inline source.
func LoadScriptString(src string) (*Script, error) {
	L := lua.NewState()
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("failed to run achievements script: %w", err)
	}
	return collect(L)
}

func collect(L *lua.LState) (*Script, error) {
	tbl, ok := L.Get(-1).(*lua.LTable)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("achievements script must return a table")
	}

	s := &Script{L: L}
	seen := map[string]bool{}
	for _, a := range catalog {
		seen[a.ID] = true
	}

	tbl.ForEach(func(_, v lua.LValue) {
		entry, ok := v.(*lua.LTable)
		if !ok {
			return
		}
		id := getLuaString(entry, "id", "")
		if id == "" {
			log.Printf("[WARN] Skipping scripted achievement without an id")
			return
		}
		if seen[id] {
			log.Printf("[WARN] Skipping duplicate achievement id %q", id)
			return
		}
		seen[id] = true

		check, _ := entry.RawGetString("check").(*lua.LFunction)
		progress, _ := entry.RawGetString("progress").(*lua.LFunction)
		target := getLuaInt(entry, "target", 0)

		a := Achievement{
			ID:   id,
			Name: getLuaString(entry, "name", id),
			Tier: ParseTier(getLuaString(entry, "tier", "bronze")),
		}
		if progress != nil && target > 0 {
			a.Progress = func(c Context) (int, int) {
				cur := s.callInt(progress, c)
				if cur > target {
					cur = target
				}
				return cur, target
			}
		}
		switch {
		case check != nil:
			a.Check = func(c Context) bool { return s.callBool(check, c) }
		case progress != nil && target > 0:
			a.Check = func(c Context) bool { return s.callInt(progress, c) >= target }
		default:
			log.Printf("[WARN] Scripted achievement %q has no check", id)
			return
		}
		s.Achievements = append(s.Achievements, a)
	})
	return s, nil
}

// Close releases the Lua state.
func (s *Script) Close() {
	if s != nil && s.L != nil {
		s.L.Close()
	}
}

func (s *Script) call(fn *lua.LFunction, c Context) (lua.LValue, bool) {
	err := s.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, contextTable(s.L, c))
	if err != nil {
		log.Printf("[WARN] Achievement script error: %v", err)
		return lua.LNil, false
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)
	return ret, true
}

func (s *Script) callBool(fn *lua.LFunction, c Context) bool {
	v, ok := s.call(fn, c)
	return ok && lua.LVAsBool(v)
}

func (s *Script) callInt(fn *lua.LFunction, c Context) int {
	v, ok := s.call(fn, c)
	if !ok {
		return 0
	}
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

func contextTable(L *lua.LState, c Context) *lua.LTable {
	t := L.NewTable()
	set := func(k string, v int) { t.RawSetString(k, lua.LNumber(v)) }
	set("total_games", c.TotalGames)
	set("total_score", c.TotalScore)
	set("total_lines", c.TotalLines)
	set("total_pieces", c.TotalPieces)
	set("best_streak", c.BestStreak)
	set("all_clears", c.AllClears)
	set("daily_streak", c.DailyStreak)
	set("best_daily_streak", c.BestDailyStreak)
	set("daily_completions", c.DailyCompletions)
	set("run_score", c.RunScore)
	set("run_revives", c.RunRevives)
	set("run_last_clear_count", c.RunLastClearCount)
	set("run_lines", c.RunLines)
	return t
}

func getLuaString(tbl *lua.LTable, key, fallback string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return fallback
}

func getLuaInt(tbl *lua.LTable, key string, fallback int) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return fallback
}
