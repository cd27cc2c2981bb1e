package pieces

import "github.com/isaacjstriker/blockgrid/games/blockgrid/board"

// Tier classifies how constrained a shape's placement typically is.
type Tier int

const (
	Easy Tier = iota
	Medium
	Hard
)

func (t Tier) String() string {
	switch t {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// Shape is a catalog entry. Cells are non-negative offsets from the origin.
type Shape struct {
	ID     string
	Cells  []board.Cell
	Weight float64
	Tier   Tier
}

// DotID is the 1-cell shape used as the guaranteed fallback.
const DotID = "dot"

func cells(pairs ...int) []board.Cell {
	out := make([]board.Cell, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, board.Cell{Row: pairs[i], Col: pairs[i+1]})
	}
	return out
}

// catalog is ordered; generator sampling walks it in this order.
var catalog = []Shape{
	// easy
	{ID: DotID, Cells: cells(0, 0), Weight: 0.6, Tier: Easy},
	{ID: "h2", Cells: cells(0, 0, 0, 1), Weight: 1.0, Tier: Easy},
	{ID: "v2", Cells: cells(0, 0, 1, 0), Weight: 1.0, Tier: Easy},
	{ID: "h3", Cells: cells(0, 0, 0, 1, 0, 2), Weight: 1.0, Tier: Easy},
	{ID: "v3", Cells: cells(0, 0, 1, 0, 2, 0), Weight: 1.0, Tier: Easy},
	{ID: "corner_tl", Cells: cells(0, 0, 0, 1, 1, 0), Weight: 0.8, Tier: Easy},
	{ID: "corner_tr", Cells: cells(0, 0, 0, 1, 1, 1), Weight: 0.8, Tier: Easy},
	{ID: "corner_bl", Cells: cells(0, 0, 1, 0, 1, 1), Weight: 0.8, Tier: Easy},
	{ID: "corner_br", Cells: cells(0, 1, 1, 0, 1, 1), Weight: 0.8, Tier: Easy},

	// medium
	{ID: "h4", Cells: cells(0, 0, 0, 1, 0, 2, 0, 3), Weight: 0.9, Tier: Medium},
	{ID: "v4", Cells: cells(0, 0, 1, 0, 2, 0, 3, 0), Weight: 0.9, Tier: Medium},
	{ID: "square2", Cells: cells(0, 0, 0, 1, 1, 0, 1, 1), Weight: 1.0, Tier: Medium},
	{ID: "t_up", Cells: cells(0, 1, 1, 0, 1, 1, 1, 2), Weight: 0.6, Tier: Medium},
	{ID: "t_down", Cells: cells(0, 0, 0, 1, 0, 2, 1, 1), Weight: 0.6, Tier: Medium},
	{ID: "t_left", Cells: cells(0, 1, 1, 0, 1, 1, 2, 1), Weight: 0.6, Tier: Medium},
	{ID: "t_right", Cells: cells(0, 0, 1, 0, 1, 1, 2, 0), Weight: 0.6, Tier: Medium},
	{ID: "l_a", Cells: cells(0, 0, 1, 0, 2, 0, 2, 1), Weight: 0.5, Tier: Medium},
	{ID: "l_b", Cells: cells(0, 0, 0, 1, 0, 2, 1, 0), Weight: 0.5, Tier: Medium},
	{ID: "l_c", Cells: cells(0, 0, 0, 1, 1, 1, 2, 1), Weight: 0.5, Tier: Medium},
	{ID: "l_d", Cells: cells(0, 2, 1, 0, 1, 1, 1, 2), Weight: 0.5, Tier: Medium},
	{ID: "j_a", Cells: cells(0, 1, 1, 1, 2, 0, 2, 1), Weight: 0.5, Tier: Medium},
	{ID: "j_b", Cells: cells(0, 0, 1, 0, 1, 1, 1, 2), Weight: 0.5, Tier: Medium},
	{ID: "j_c", Cells: cells(0, 0, 0, 1, 1, 0, 2, 0), Weight: 0.5, Tier: Medium},
	{ID: "j_d", Cells: cells(0, 0, 0, 1, 0, 2, 1, 2), Weight: 0.5, Tier: Medium},
	{ID: "s_h", Cells: cells(0, 1, 0, 2, 1, 0, 1, 1), Weight: 0.5, Tier: Medium},
	{ID: "s_v", Cells: cells(0, 0, 1, 0, 1, 1, 2, 1), Weight: 0.5, Tier: Medium},
	{ID: "z_h", Cells: cells(0, 0, 0, 1, 1, 1, 1, 2), Weight: 0.5, Tier: Medium},
	{ID: "z_v", Cells: cells(0, 1, 1, 0, 1, 1, 2, 0), Weight: 0.5, Tier: Medium},

	// hard
	{ID: "h5", Cells: cells(0, 0, 0, 1, 0, 2, 0, 3, 0, 4), Weight: 0.6, Tier: Hard},
	{ID: "v5", Cells: cells(0, 0, 1, 0, 2, 0, 3, 0, 4, 0), Weight: 0.6, Tier: Hard},
	{ID: "rect_2x3", Cells: cells(0, 0, 0, 1, 0, 2, 1, 0, 1, 1, 1, 2), Weight: 0.5, Tier: Hard},
	{ID: "rect_3x2", Cells: cells(0, 0, 0, 1, 1, 0, 1, 1, 2, 0, 2, 1), Weight: 0.5, Tier: Hard},
	{ID: "square3", Cells: cells(0, 0, 0, 1, 0, 2, 1, 0, 1, 1, 1, 2, 2, 0, 2, 1, 2, 2), Weight: 0.4, Tier: Hard},
	{ID: "big_corner_tl", Cells: cells(0, 0, 0, 1, 0, 2, 1, 0, 2, 0), Weight: 0.35, Tier: Hard},
	{ID: "big_corner_tr", Cells: cells(0, 0, 0, 1, 0, 2, 1, 2, 2, 2), Weight: 0.35, Tier: Hard},
	{ID: "big_corner_bl", Cells: cells(0, 0, 1, 0, 2, 0, 2, 1, 2, 2), Weight: 0.35, Tier: Hard},
	{ID: "big_corner_br", Cells: cells(0, 2, 1, 2, 2, 0, 2, 1, 2, 2), Weight: 0.35, Tier: Hard},
	{ID: "diag2", Cells: cells(0, 0, 1, 1), Weight: 0.3, Tier: Hard},
	{ID: "anti_diag2", Cells: cells(0, 1, 1, 0), Weight: 0.3, Tier: Hard},
	{ID: "diag3", Cells: cells(0, 0, 1, 1, 2, 2), Weight: 0.25, Tier: Hard},
	{ID: "anti_diag3", Cells: cells(0, 2, 1, 1, 2, 0), Weight: 0.25, Tier: Hard},
}

// Catalog returns a copy of the shape catalog.
func Catalog() []Shape {
	out := make([]Shape, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a shape by id.
func Lookup(id string) (Shape, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Shape{}, false
}

// Palette is the set of piece colors, indexed from 1 on the board.
var Palette = []board.Color{1, 2, 3, 4, 5, 6, 7}
