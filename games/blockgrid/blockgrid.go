// Package blockgrid is the terminal front end: it reads keys, turns them into
// engine commands and redraws the board after each one.
package blockgrid

import (
	"fmt"
	"log"
	"os"

	"github.com/eiannone/keyboard"
	"golang.org/x/term"

	"github.com/isaacjstriker/blockgrid/games/blockgrid/board"
	"github.com/isaacjstriker/blockgrid/games/blockgrid/engine"
	"github.com/isaacjstriker/blockgrid/internal/types"
)

// Game drives one Session from the keyboard.
type Game struct {
	Session *engine.Session
	Debug   bool

	// OnRunEnd receives a run that is abandoned by starting a new one from
	// inside the loop. The run active on quit is returned by Play instead.
	OnRunEnd func(types.RunResult)

	view View
}

// NewGame wraps s.
func NewGame(s *engine.Session) *Game {
	g := &Game{Session: s}
	g.view.Row, g.view.Col = 3, 3
	return g
}

// Play runs the loop until the player quits and returns the run that was
// active at that point.
func (g *Game) Play() (types.RunResult, error) {
	if err := keyboard.Open(); err != nil {
		return types.RunResult{}, fmt.Errorf("failed to open keyboard: %w", err)
	}
	defer keyboard.Close()

	g.view.Color = supportsColor()
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		g.view.Width = w
	}

	for {
		g.render()

		char, key, err := keyboard.GetKey()
		if err != nil {
			return g.Session.Result(), fmt.Errorf("failed to read key: %w", err)
		}
		if g.handle(char, key) {
			fmt.Print("\033[2J\033[H")
			return g.Session.Result(), nil
		}
	}
}

func (g *Game) render() {
	fmt.Print("\033[2J\033[H")
	fmt.Print(Render(g.Session.State(), g.view))
}

// handle applies one key press and reports whether the player quit.
func (g *Game) handle(char rune, key keyboard.Key) bool {
	g.view.Message = ""
	st := g.Session.State()

	switch {
	case char == 'q' || char == 'Q' || key == keyboard.KeyEsc:
		return true
	case char >= '1' && char <= '3':
		g.selectSlot(int(char - '1'))
	case char == 'a' || char == 'A' || key == keyboard.KeyArrowLeft:
		g.move(0, -1)
	case char == 'd' || char == 'D' || key == keyboard.KeyArrowRight:
		g.move(0, 1)
	case char == 'w' || char == 'W' || key == keyboard.KeyArrowUp:
		g.move(-1, 0)
	case char == 's' || char == 'S' || key == keyboard.KeyArrowDown:
		g.move(1, 0)
	case key == keyboard.KeyEnter || key == keyboard.KeySpace || char == ' ':
		g.place()
	case char == 'u' || char == 'U':
		if !g.Session.Undo() {
			g.view.Message = "Nothing to undo."
		}
		g.ensureSelection()
	case char == 'r' || char == 'R':
		if !g.Session.Revive() {
			g.view.Message = "Revive is not available."
		}
		g.ensureSelection()
	case char == 'n' || char == 'N':
		g.restart(st)
	}

	if st.Celebration != "" && g.Session.State().Celebration == st.Celebration {
		g.Session.DismissCelebration()
	}
	return false
}

func (g *Game) selectSlot(i int) {
	if g.Session.State().Tray[i] == nil {
		g.view.Message = fmt.Sprintf("Slot %d is empty.", i+1)
		return
	}
	g.view.Slot = i
}

func (g *Game) move(dr, dc int) {
	g.view.Row = clamp(g.view.Row+dr, 0, board.Size-1)
	g.view.Col = clamp(g.view.Col+dc, 0, board.Size-1)
}

func (g *Game) place() {
	if g.Session.State().GameOver {
		return
	}
	if !g.Session.Place(g.view.Slot, g.view.Row, g.view.Col) {
		g.view.Message = "That piece doesn't fit there."
		return
	}
	st := g.Session.State()
	if g.Debug {
		log.Printf("[DEBUG] placed slot %d at (%d,%d) score=%d streak=%d stall=%d",
			g.view.Slot, g.view.Row, g.view.Col, st.Score, st.Streak, st.Stall)
	}
	g.ensureSelection()
}

// ensureSelection moves the selection to the first filled slot when the
// current one is empty.
func (g *Game) ensureSelection() {
	st := g.Session.State()
	if g.view.Slot >= 0 && g.view.Slot < len(st.Tray) && st.Tray[g.view.Slot] != nil {
		return
	}
	for i, p := range st.Tray {
		if p != nil {
			g.view.Slot = i
			return
		}
	}
}

func (g *Game) restart(prev engine.State) {
	if prev.Stats.PiecesPlaced > 0 && g.OnRunEnd != nil {
		g.OnRunEnd(g.Session.Result())
	}
	if prev.Mode == engine.ModeDaily {
		g.Session.NewDaily(prev.Date)
	} else {
		g.Session.NewGame()
	}
	g.view.Slot = 0
	g.ensureSelection()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func supportsColor() bool {
	t := os.Getenv("TERM")
	return t != "" && t != "dumb" && term.IsTerminal(int(os.Stdout.Fd()))
}
