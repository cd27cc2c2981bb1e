package seeded

import (
	"math/rand"
	"testing"
	"time"
)

func TestMulberry32_SameSeedSameStream(t *testing.T) {
	a := New(12345)
	b := New(12345)
	for i := 0; i < 1000; i++ {
		x, y := a.Float64(), b.Float64()
		if x != y {
			t.Fatalf("draw %d: %v != %v", i, x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("draw %d out of range: %v", i, x)
		}
	}
}

func TestMulberry32_DifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Uint32() == b.Uint32() {
			same++
		}
	}
	if same > 2 {
		t.Errorf("streams for different seeds matched %d/100 times", same)
	}
}

func TestMulberry32_KnownValues(t *testing.T) {
	// Regression values for the reference algorithm with seed 0.
	m := New(0)
	want := []uint32{1144304738, 1416247, 958946056}
	for i, w := range want {
		if got := m.Uint32(); got != w {
			t.Errorf("draw %d = %d, want %d", i, got, w)
		}
	}
}

func TestDateToSeed(t *testing.T) {
	if DateToSeed("2024-03-01") != DateToSeed("2024-03-01") {
		t.Fatal("hash is not stable")
	}
	if DateToSeed("2024-03-01") == DateToSeed("2024-03-02") {
		t.Error("adjacent dates hashed to the same seed")
	}
	if got := DateToSeed(""); got != 0 {
		t.Errorf("DateToSeed(\"\") = %d, want 0", got)
	}
	// "a" is 97; "ab" is 97*31+98.
	if got := DateToSeed("ab"); got != 97*31+98 {
		t.Errorf("DateToSeed(\"ab\") = %d, want %d", got, 97*31+98)
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2025, time.January, 7, 23, 59, 0, 0, time.UTC)
	if got := Today(now); got != "2025-01-07" {
		t.Errorf("Today %q, want 2025-01-07", got)
	}
}

func TestIntn(t *testing.T) {
	src := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		v := Intn(src, 5)
		if v < 0 || v >= 5 {
			t.Fatalf("Intn out of range: %d", v)
		}
	}
	if Intn(src, 0) != 0 {
		t.Error("Intn(0) should be 0")
	}
}

func TestPick(t *testing.T) {
	items := []string{"a", "b", "c"}
	a, b := New(17), New(17)
	for i := 0; i < 20; i++ {
		x, y := Pick(a, items), Pick(b, items)
		if x != y {
			t.Fatalf("draw %d: %q vs %q", i, x, y)
		}
	}
}
