package board

import "testing"

func TestScore(t *testing.T) {
	cases := []struct {
		name   string
		cells  int
		lines  int
		streak int
		want   int
	}{
		{"no lines", 8, 0, 3, 0},
		{"single line", 8, 1, 0, 100},
		{"single line streak 1", 8, 1, 1, 150},
		{"single line streak 2", 8, 1, 2, 200},
		{"row and column", 15, 2, 0, 210},
		{"two parallel rows", 16, 2, 0, 220},
		{"three lines", 24, 3, 0, 360},
		{"negative streak clamps", 8, 1, -4, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.cells, tc.lines, tc.streak); got != tc.want {
				t.Errorf("Score(%d,%d,%d) = %d, want %d", tc.cells, tc.lines, tc.streak, got, tc.want)
			}
		})
	}
}

func TestComboBonus_SuperLinear(t *testing.T) {
	s := DefaultScoring
	for n := 2; n <= 6; n++ {
		if s.ComboBonus(n) <= n*s.ComboBonus(1) {
			t.Errorf("ComboBonus(%d) = %d, not greater than %d single clears", n, s.ComboBonus(n), n)
		}
	}
}

func TestPoints_Rounding(t *testing.T) {
	s := Scoring{PerCell: 1, ComboUnit: 0, StreakIncrement: 0.25}
	// 3 * 1.25 = 3.75 -> 4
	if got := s.Points(3, 1, 1); got != 4 {
		t.Errorf("Points = %d, want 4", got)
	}
}
