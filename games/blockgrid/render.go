package blockgrid

import (
	"fmt"
	"strings"

	"github.com/isaacjstriker/blockgrid/games/blockgrid/board"
	"github.com/isaacjstriker/blockgrid/games/blockgrid/engine"
	"github.com/isaacjstriker/blockgrid/games/blockgrid/pieces"
)

// View is the front-end state layered over the engine state.
type View struct {
	Slot    int
	Row     int
	Col     int
	Color   bool
	Width   int
	Message string
}

var cellColors = []string{
	"\033[44m  \033[0m", // Blue
	"\033[43m  \033[0m", // Yellow
	"\033[45m  \033[0m", // Magenta
	"\033[42m  \033[0m", // Green
	"\033[41m  \033[0m", // Red
	"\033[47m  \033[0m", // White
	"\033[46m  \033[0m", // Cyan
}

var cellASCII = []string{"##", "@@", "**", "%%", "&&", "++", "=="}

const (
	emptyCell  = " ."
	ghostFits  = "[]"
	ghostBlock = "><"
	slotWidth  = 12
)

func cellString(c board.Color, color bool) string {
	if c == board.Empty {
		return emptyCell
	}
	i := int(c-1) % len(cellASCII)
	if color {
		return cellColors[i]
	}
	return cellASCII[i]
}

// Render draws the board, the tray and the status lines.
func Render(st engine.State, v View) string {
	var sb strings.Builder

	title := "BLOCKGRID"
	if st.Mode == engine.ModeDaily {
		title = "DAILY " + st.Date
	}
	fmt.Fprintf(&sb, "%s | Score: %d | Best: %d | Streak: %d\n", title, st.Score, st.HighScore, st.Streak)
	rule := 50
	if v.Width > 0 && v.Width < rule {
		rule = v.Width
	}
	sb.WriteString(strings.Repeat("═", rule) + "\n")

	ghost := map[board.Cell]bool{}
	fits := false
	if p := selected(st, v.Slot); p != nil && !st.GameOver {
		fits = board.Fits(st.Board, p.Cells, v.Row, v.Col)
		for _, c := range p.Cells {
			ghost[board.Cell{Row: v.Row + c.Row, Col: v.Col + c.Col}] = true
		}
	}

	sb.WriteString("   ")
	for c := 0; c < board.Size; c++ {
		fmt.Fprintf(&sb, "%2d", c)
	}
	sb.WriteString("\n")
	sb.WriteString("  ╔" + strings.Repeat("═", board.Size*2) + "╗\n")
	for r := 0; r < board.Size; r++ {
		fmt.Fprintf(&sb, "%d ║", r)
		for c := 0; c < board.Size; c++ {
			switch {
			case ghost[board.Cell{Row: r, Col: c}] && fits:
				sb.WriteString(ghostFits)
			case ghost[board.Cell{Row: r, Col: c}]:
				sb.WriteString(ghostBlock)
			default:
				sb.WriteString(cellString(st.Board[r][c], v.Color))
			}
		}
		sb.WriteString("║\n")
	}
	sb.WriteString("  ╚" + strings.Repeat("═", board.Size*2) + "╝\n\n")

	stacked := v.Width > 0 && v.Width < slotWidth*len(st.Tray)
	for _, line := range trayLines(st.Tray, v.Slot, v.Color, stacked) {
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")

	if st.Celebration != "" {
		fmt.Fprintf(&sb, "*** %s ***\n", st.Celebration)
	}
	if v.Message != "" {
		sb.WriteString(v.Message + "\n")
	}
	if st.GameOver {
		opts := []string{}
		if st.CanRevive() {
			opts = append(opts, "R=Revive")
		}
		if st.CanUndo() {
			opts = append(opts, "U=Undo")
		}
		opts = append(opts, "N=New game", "Q=Quit")
		fmt.Fprintf(&sb, "GAME OVER! No piece fits. %s\n", strings.Join(opts, ", "))
	}
	fmt.Fprintf(&sb, "Undo: %d | Revive: %d | Lines: %d | Pieces: %d\n",
		st.UndosLeft, st.RevivesLeft, st.Stats.LinesCleared, st.Stats.PiecesPlaced)
	sb.WriteString("Controls: 1-3=Select, Arrows/WASD=Move, Enter/Space=Place, U=Undo, Q=Quit\n")
	return sb.String()
}

func selected(st engine.State, slot int) *pieces.Piece {
	if slot < 0 || slot >= len(st.Tray) {
		return nil
	}
	return st.Tray[slot]
}

type trayLine struct {
	text    string
	visible int
}

// shapeLines draws a piece inside its bounding box.
func shapeLines(p *pieces.Piece, color bool) []trayLine {
	rows, cols := 0, 0
	for _, c := range p.Cells {
		if c.Row+1 > rows {
			rows = c.Row + 1
		}
		if c.Col+1 > cols {
			cols = c.Col + 1
		}
	}
	grid := make([][]bool, rows)
	for i := range grid {
		grid[i] = make([]bool, cols)
	}
	for _, c := range p.Cells {
		grid[c.Row][c.Col] = true
	}
	out := make([]trayLine, rows)
	for r, row := range grid {
		var sb strings.Builder
		for _, on := range row {
			if on {
				sb.WriteString(cellString(p.Color, color))
			} else {
				sb.WriteString("  ")
			}
		}
		out[r] = trayLine{text: sb.String(), visible: cols * 2}
	}
	return out
}

func trayLines(t engine.Tray, sel int, color, stacked bool) []string {
	blocks := make([][]trayLine, len(t))
	height := 0
	for i, p := range t {
		label := fmt.Sprintf(" %d ", i+1)
		if i == sel {
			label = fmt.Sprintf("[%d]", i+1)
		}
		lines := []trayLine{{text: label, visible: len(label)}}
		if p == nil {
			lines = append(lines, trayLine{text: " --", visible: 3})
		} else {
			lines = append(lines, shapeLines(p, color)...)
		}
		blocks[i] = lines
		if len(lines) > height {
			height = len(lines)
		}
	}

	var out []string
	if stacked {
		for _, b := range blocks {
			for _, l := range b {
				out = append(out, l.text)
			}
		}
		return out
	}
	for i := 0; i < height; i++ {
		var sb strings.Builder
		for _, b := range blocks {
			if i < len(b) {
				sb.WriteString(b[i].text)
				if pad := slotWidth - b[i].visible; pad > 0 {
					sb.WriteString(strings.Repeat(" ", pad))
				}
			} else {
				sb.WriteString(strings.Repeat(" ", slotWidth))
			}
		}
		out = append(out, strings.TrimRight(sb.String(), " "))
	}
	return out
}
