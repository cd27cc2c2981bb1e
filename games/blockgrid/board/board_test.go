package board

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/isaacjstriker/blockgrid/games/blockgrid/seeded"
)

var (
	dot    = []Cell{{0, 0}}
	hLine3 = []Cell{{0, 0}, {0, 1}, {0, 2}}
	square = []Cell{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
)

func fullBoard() Board {
	var b Board
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			b[r][c] = 1
		}
	}
	return b
}

func TestFits(t *testing.T) {
	var b Board
	b[3][3] = 2

	cases := []struct {
		name  string
		cells []Cell
		row   int
		col   int
		want  bool
	}{
		{"empty board corner", square, 0, 0, true},
		{"bottom right edge", square, 6, 6, true},
		{"past right edge", square, 0, 7, false},
		{"past bottom edge", hLine3, 8, 0, false},
		{"negative origin", dot, -1, 0, false},
		{"overlaps occupied", square, 2, 2, false},
		{"adjacent to occupied", square, 4, 4, true},
		{"no cells", nil, 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Fits(b, tc.cells, tc.row, tc.col); got != tc.want {
				t.Errorf("Fits(%d,%d) = %v, want %v\n%s", tc.row, tc.col, got, tc.want, b)
			}
		})
	}
}

func TestPlace_DoesNotMutateInput(t *testing.T) {
	var b Board
	after := Place(b, square, 4, 1, 1)
	if !IsEmpty(b) {
		t.Fatalf("input board was mutated:\n%s", b)
	}
	if Occupied(after) != 4 {
		t.Fatalf("Occupied %d, want 4\n%s", Occupied(after), after)
	}
	if after[1][1] != 4 || after[2][2] != 4 {
		t.Errorf("placed cells have wrong color:\n%s", after)
	}
}

func TestPlace_ThenFitsIsFalse(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	shapes := [][]Cell{dot, hLine3, square}
	for i := 0; i < 200; i++ {
		var b Board
		for j := 0; j < 20; j++ {
			b[rng.Intn(Size)][rng.Intn(Size)] = 3
		}
		cells := shapes[rng.Intn(len(shapes))]
		r, c := rng.Intn(Size), rng.Intn(Size)
		if !Fits(b, cells, r, c) {
			continue
		}
		after := Place(b, cells, 5, r, c)
		if Fits(after, cells, r, c) {
			t.Fatalf("shape still fits at (%d,%d) after placement:\n%s", r, c, after)
		}
	}
}

func TestCompletedLines(t *testing.T) {
	b := Parse(`
11111111
1.......
1.......
1.......
1.......
1.......
1.......
1.......
`)
	rows, cols := CompletedLines(b)
	if len(rows) != 1 || rows[0] != 0 {
		t.Errorf("rows %v, want [0]", rows)
	}
	if len(cols) != 1 || cols[0] != 0 {
		t.Errorf("cols %v, want [0]", cols)
	}

	rows, cols = CompletedLines(Board{})
	if len(rows) != 0 || len(cols) != 0 {
		t.Errorf("empty board reported lines rows=%v cols=%v", rows, cols)
	}
}

func TestClearLines_IntersectionCountedOnce(t *testing.T) {
	b := Parse(`
11111111
1.......
1.......
1.......
1.......
1.......
1.......
1.......
`)
	rows, cols := CompletedLines(b)
	after, cleared := ClearLines(b, rows, cols)
	if cleared != 15 {
		t.Errorf("cleared %d, want 15", cleared)
	}
	if !IsEmpty(after) {
		t.Errorf("board should be empty after clearing:\n%s", after)
	}
	r2, c2 := CompletedLines(after)
	if len(r2)+len(c2) != 0 {
		t.Errorf("lines remain after clear rows=%v cols=%v", r2, c2)
	}
}

func TestClearLines_Idempotent(t *testing.T) {
	b := fullBoard()
	rows, cols := CompletedLines(b)
	once, n1 := ClearLines(b, rows, cols)
	twice, n2 := ClearLines(once, rows, cols)
	if n1 != 64 {
		t.Errorf("first clear %d cells, want 64", n1)
	}
	if n2 != 0 {
		t.Errorf("second clear %d cells, want 0", n2)
	}
	if once != twice {
		t.Error("second clear changed the board")
	}
}

func TestFillRatio(t *testing.T) {
	if got := FillRatio(Board{}); got != 0 {
		t.Errorf("FillRatio(empty) = %v, want 0", got)
	}
	if got := FillRatio(fullBoard()); got != 1 {
		t.Errorf("FillRatio(full) = %v, want 1", got)
	}
	b := Place(Board{}, square, 1, 0, 0)
	if got := FillRatio(b); got != 4.0/64.0 {
		t.Errorf("FillRatio = %v, want %v", got, 4.0/64.0)
	}
	if got := EmptyRatio(b); got != 60.0/64.0 {
		t.Errorf("EmptyRatio = %v, want %v", got, 60.0/64.0)
	}
}

func TestClearForRevive(t *testing.T) {
	cases := []struct {
		name     string
		occupied int
		target   int
	}{
		{"more occupied than target", 40, 10},
		{"fewer occupied than target", 6, 10},
		{"empty board", 0, 10},
		{"zero target", 20, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var b Board
			for i := 0; i < tc.occupied; i++ {
				b[i/Size][i%Size] = 2
			}
			after := ClearForRevive(b, tc.target, seeded.New(99))
			want := tc.target
			if tc.occupied < want {
				want = tc.occupied
			}
			removed := Occupied(b) - Occupied(after)
			if removed != want {
				t.Errorf("removed %d cells, want %d", removed, want)
			}
			for r := 0; r < Size; r++ {
				for c := 0; c < Size; c++ {
					if b[r][c] == Empty && after[r][c] != Empty {
						t.Fatalf("revive filled cell (%d,%d)", r, c)
					}
				}
			}
		})
	}
}

func TestClearForRevive_Deterministic(t *testing.T) {
	b := fullBoard()
	a := ClearForRevive(b, 12, seeded.New(5))
	c := ClearForRevive(b, 12, seeded.New(5))
	if a != c {
		t.Errorf("same seed produced different boards:\n%s\n%s", a, c)
	}
}

func TestAnyFits_OneFreeCell(t *testing.T) {
	b := fullBoard()
	b[4][5] = Empty

	if AnyFits(b, [][]Cell{hLine3, square}) {
		t.Error("multi-cell shapes should not fit a single free cell")
	}
	if !AnyFits(b, [][]Cell{hLine3, dot}) {
		t.Error("dot should fit the single free cell")
	}
	if AnyFits(b, [][]Cell{nil, nil, nil}) {
		t.Error("empty tray should not fit")
	}
}

func TestValidPositions(t *testing.T) {
	if got := ValidPositions(Board{}, dot); got != 64 {
		t.Errorf("dot positions %d, want 64", got)
	}
	if got := ValidPositions(Board{}, square); got != 49 {
		t.Errorf("square positions %d, want 49", got)
	}
	if got := ValidPositions(fullBoard(), dot); got != 0 {
		t.Errorf("full board positions %d, want 0", got)
	}
}

func TestClearsLine(t *testing.T) {
	b := Parse(`
11111.11
........
`)
	if !ClearsLine(b, dot) {
		t.Errorf("dot should complete row 0:\n%s", b)
	}
	if ClearsLine(b, square) {
		t.Errorf("square cannot complete a line:\n%s", b)
	}
}

func TestParseString_RoundTrip(t *testing.T) {
	b := Place(Board{}, hLine3, 3, 2, 4)
	got := Parse(b.String())
	if got != b {
		t.Errorf("round trip mismatch:\n%s\nvs\n%s", b, got)
	}
	if !strings.Contains(b.String(), "....333.") {
		t.Errorf("unexpected rendering:\n%s", b)
	}
}
