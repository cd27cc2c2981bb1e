// Package board implements the 8x8 occupancy grid and the pure placement,
// line-clear and scoring rules that operate on it.
//
// Board is a value type. Every operation that changes cells returns a new
// Board, so callers may keep the previous one around.
package board

import (
	"strings"

	"github.com/isaacjstriker/blockgrid/games/blockgrid/seeded"
)

// Size is the board edge length.
const Size = 8

// Color identifies the color of an occupied cell. Empty is the zero value.
type Color uint8

const Empty Color = 0

// Cell is a (row, col) offset or coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is the occupancy grid indexed [row][col].
type Board [Size][Size]Color

func inBounds(r, c int) bool {
	return r >= 0 && r < Size && c >= 0 && c < Size
}

// Fits reports whether every cell of the shape lands in-bounds on an empty
// cell when the shape's origin is placed at (row, col).
func Fits(b Board, cells []Cell, row, col int) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		r, cc := row+c.Row, col+c.Col
		if !inBounds(r, cc) || b[r][cc] != Empty {
			return false
		}
	}
	return true
}

// Place returns a copy of b with the shape's cells set to color.
// The caller is expected to have checked Fits.
func Place(b Board, cells []Cell, color Color, row, col int) Board {
	out := b
	for _, c := range cells {
		r, cc := row+c.Row, col+c.Col
		if inBounds(r, cc) {
			out[r][cc] = color
		}
	}
	return out
}

// CompletedLines returns the indices of full rows and full columns in
// ascending order.
func CompletedLines(b Board) (rows, cols []int) {
	for r := 0; r < Size; r++ {
		full := true
		for c := 0; c < Size; c++ {
			if b[r][c] == Empty {
				full = false
				break
			}
		}
		if full {
			rows = append(rows, r)
		}
	}
	for c := 0; c < Size; c++ {
		full := true
		for r := 0; r < Size; r++ {
			if b[r][c] == Empty {
				full = false
				break
			}
		}
		if full {
			cols = append(cols, c)
		}
	}
	return rows, cols
}

// ClearLines empties every cell in the named rows and columns and returns the
// new board together with the number of distinct cells that were cleared.
func ClearLines(b Board, rows, cols []int) (Board, int) {
	out := b
	cleared := 0
	clear := func(r, c int) {
		if out[r][c] != Empty {
			out[r][c] = Empty
			cleared++
		}
	}
	for _, r := range rows {
		if r < 0 || r >= Size {
			continue
		}
		for c := 0; c < Size; c++ {
			clear(r, c)
		}
	}
	for _, c := range cols {
		if c < 0 || c >= Size {
			continue
		}
		for r := 0; r < Size; r++ {
			clear(r, c)
		}
	}
	return out, cleared
}

// Occupied returns the number of occupied cells.
func Occupied(b Board) int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] != Empty {
				n++
			}
		}
	}
	return n
}

// IsEmpty reports whether no cell is occupied.
func IsEmpty(b Board) bool {
	return Occupied(b) == 0
}

// FillRatio is the fraction of occupied cells, in [0,1].
func FillRatio(b Board) float64 {
	return float64(Occupied(b)) / float64(Size*Size)
}

// EmptyRatio is 1 - FillRatio.
func EmptyRatio(b Board) float64 {
	return 1 - FillRatio(b)
}

// ClearForRevive empties min(n, occupied) occupied cells chosen uniformly at
// random with a Fisher-Yates shuffle driven by src.
func ClearForRevive(b Board, n int, src seeded.Source) Board {
	occupied := make([]Cell, 0, Size*Size)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] != Empty {
				occupied = append(occupied, Cell{Row: r, Col: c})
			}
		}
	}
	if n > len(occupied) {
		n = len(occupied)
	}
	if n <= 0 {
		return b
	}
	for i := len(occupied) - 1; i > 0; i-- {
		j := seeded.Intn(src, i+1)
		occupied[i], occupied[j] = occupied[j], occupied[i]
	}
	out := b
	for _, c := range occupied[:n] {
		out[c.Row][c.Col] = Empty
	}
	return out
}

// ValidPositions counts the origins at which the shape fits.
func ValidPositions(b Board, cells []Cell) int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if Fits(b, cells, r, c) {
				n++
			}
		}
	}
	return n
}

// CanPlace reports whether the shape fits anywhere on the board.
func CanPlace(b Board, cells []Cell) bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if Fits(b, cells, r, c) {
				return true
			}
		}
	}
	return false
}

// AnyFits reports whether at least one of the shapes fits somewhere.
// Empty (nil or zero-length) shapes are skipped.
func AnyFits(b Board, shapes [][]Cell) bool {
	for _, cells := range shapes {
		if len(cells) == 0 {
			continue
		}
		if CanPlace(b, cells) {
			return true
		}
	}
	return false
}

// ClearsLine reports whether some legal placement of the shape would complete
// at least one row or column.
func ClearsLine(b Board, cells []Cell) bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if !Fits(b, cells, r, c) {
				continue
			}
			rows, cols := CompletedLines(Place(b, cells, 1, r, c))
			if len(rows)+len(cols) > 0 {
				return true
			}
		}
	}
	return false
}

// String renders the board with '.' for empty cells and the color digit for
// occupied ones, one row per line.
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('0' + byte(b[r][c]%10))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Parse builds a board from the String format. Any byte other than '.' or
// ' ' marks an occupied cell; digits keep their color. Missing rows or
// columns are empty.
func Parse(s string) Board {
	var b Board
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for r, line := range lines {
		if r >= Size {
			break
		}
		line = strings.TrimSpace(line)
		for c := 0; c < len(line) && c < Size; c++ {
			ch := line[c]
			switch {
			case ch == '.' || ch == ' ':
			case ch >= '1' && ch <= '9':
				b[r][c] = Color(ch - '0')
			default:
				b[r][c] = 1
			}
		}
	}
	return b
}
