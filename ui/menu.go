package ui

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/eiannone/keyboard"
	"golang.org/x/term"
)

type MenuItem struct {
	Label string
	Value string
}

type Menu struct {
	Title    string
	Subtitle string
	Items    []MenuItem
	Selected int
	Width    int
}

func NewMenu(title string, items []MenuItem) *Menu {
	return &Menu{
		Title:    title,
		Items:    items,
		Selected: 0,
		Width:    menuWidth(),
	}
}

// menuWidth fits the box to the terminal, between 30 and 60 columns.
func menuWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w >= 60 {
		return 60
	}
	if w < 30 {
		return 30
	}
	return w
}

func (m *Menu) clearScreen() {
	fmt.Print("\033[2J\033[H")
}

func border(left, fill, right string, width int) string {
	return left + strings.Repeat(fill, width-2) + right
}

func (m *Menu) centerText(text string, width int) string {
	inner := width - 4
	n := utf8.RuneCountInString(text)
	if n >= inner {
		return string([]rune(text)[:inner])
	}
	padding := (inner - n) / 2
	return strings.Repeat(" ", padding) + text + strings.Repeat(" ", inner-n-padding)
}

const banner = `
 ___ _    ___   ___ _  _____ ___ ___ ___
| _ ) |  / _ \ / __| |/ / __| _ \_ _|   \
| _ \ |_| (_) | (__| ' < (_ |   /| || |) |
|___/____\___/ \___|_|\_\___|_|_\___|___/
`

func (m *Menu) render() string {
	var sb strings.Builder
	if m.Width >= 44 {
		sb.WriteString(banner)
		sb.WriteString("\n")
	}
	if m.Subtitle != "" {
		sb.WriteString(m.centerText(m.Subtitle, m.Width) + "\n\n")
	}

	sb.WriteString(border("╔", "═", "╗", m.Width) + "\n")
	fmt.Fprintf(&sb, "║ %s ║\n", m.centerText(m.Title, m.Width))
	sb.WriteString(border("╠", "═", "╣", m.Width) + "\n")

	for i, item := range m.Items {
		prefix := "  "
		if i == m.Selected {
			prefix = "► "
		}
		text := m.centerText(prefix+item.Label, m.Width)
		if i == m.Selected {
			fmt.Fprintf(&sb, "║ \033[7m%s\033[0m ║\n", text) // Highlighted
		} else {
			fmt.Fprintf(&sb, "║ %s ║\n", text)
		}
	}

	sb.WriteString(border("╚", "═", "╝", m.Width) + "\n\n")
	sb.WriteString("Use ↑/↓ arrows to navigate, Enter to select, 'q' to quit\n")
	return sb.String()
}

func (m *Menu) moveUp() {
	if m.Selected > 0 {
		m.Selected--
	} else {
		m.Selected = len(m.Items) - 1 // Wrap to bottom
	}
}

func (m *Menu) moveDown() {
	if m.Selected < len(m.Items)-1 {
		m.Selected++
	} else {
		m.Selected = 0 // Wrap to top
	}
}

// Show runs the menu until an item is chosen and returns its Value, or
// "exit" when the player quits.
func (m *Menu) Show() string {
	if len(m.Items) == 0 {
		return "exit"
	}
	if err := keyboard.Open(); err != nil {
		fmt.Printf("Failed to open keyboard: %v\n", err)
		return ""
	}
	defer keyboard.Close()

	for {
		m.clearScreen()
		fmt.Print(m.render())

		char, key, err := keyboard.GetKey()
		if err != nil {
			fmt.Printf("Error reading key: %v\n", err)
			return ""
		}

		switch key {
		case keyboard.KeyArrowUp:
			m.moveUp()
		case keyboard.KeyArrowDown:
			m.moveDown()
		case keyboard.KeyEnter:
			m.clearScreen()
			return m.Items[m.Selected].Value
		case keyboard.KeyEsc:
			return "exit"
		}

		switch {
		case char == 'q' || char == 'Q':
			return "exit"
		case char == 'k' || char == 'w':
			m.moveUp()
		case char == 'j' || char == 's':
			m.moveDown()
		case char >= '1' && char <= '9' && int(char-'1') < len(m.Items):
			m.Selected = int(char - '1')
		}
	}
}
