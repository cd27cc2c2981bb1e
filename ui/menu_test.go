package ui

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func testMenu() *Menu {
	return &Menu{
		Title: "Main Menu",
		Items: []MenuItem{
			{Label: "Play", Value: "play"},
			{Label: "Daily", Value: "daily"},
			{Label: "Quit", Value: "exit"},
		},
		Width: 40,
	}
}

func TestMoveWraps(t *testing.T) {
	m := testMenu()
	m.moveUp()
	if m.Selected != 2 {
		t.Errorf("moveUp from top selected %d, want 2", m.Selected)
	}
	m.moveDown()
	if m.Selected != 0 {
		t.Errorf("moveDown from bottom selected %d, want 0", m.Selected)
	}
	m.moveDown()
	if m.Selected != 1 {
		t.Errorf("moveDown selected %d, want 1", m.Selected)
	}
}

func TestCenterText(t *testing.T) {
	m := testMenu()
	cases := []struct {
		name string
		text string
	}{
		{"short", "Play"},
		{"multibyte", "► Daily"},
		{"too long", strings.Repeat("x", 80)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := m.centerText(tc.text, m.Width)
			if n := utf8.RuneCountInString(got); n != m.Width-4 {
				t.Errorf("width %d, want %d", n, m.Width-4)
			}
		})
	}
}

func TestRenderBoxLines(t *testing.T) {
	m := testMenu()
	m.Selected = 1
	out := m.render()
	if !strings.Contains(out, "► Daily") {
		t.Errorf("selected item not marked:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "╔") || strings.HasPrefix(line, "╚") {
			if n := utf8.RuneCountInString(line); n != m.Width {
				t.Errorf("border width %d, want %d", n, m.Width)
			}
		}
	}
}
