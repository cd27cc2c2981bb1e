package main

import (
	"fmt"
	"log"
	"os"

	"github.com/isaacjstriker/blockgrid/games"
	"github.com/isaacjstriker/blockgrid/internal/config"
	"github.com/isaacjstriker/blockgrid/ui"
)

const usage = `Usage: blockgrid [command]

Commands:
  play                 start a classic run
  daily                play today's daily challenge
  stats                show your totals
  leaderboard [mode]   best scores for classic (default) or daily
  achievements         list achievements and progress
  verify <code>        check a daily share code
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	a := newApp(cfg, os.Stdout)
	defer a.Close()

	if len(os.Args) < 2 {
		runMenu(a)
		return
	}

	switch cmd := os.Args[1]; cmd {
	case "play", "classic":
		err = a.play("classic")
	case "daily":
		err = a.play("daily")
	case "stats":
		err = a.showStats()
	case "leaderboard":
		mode := "classic"
		if len(os.Args) > 2 {
			mode = os.Args[2]
		}
		err = a.showLeaderboard(mode)
	case "achievements":
		err = a.showAchievements()
	case "verify":
		if len(os.Args) < 3 {
			fmt.Print(usage)
			os.Exit(2)
		}
		err = a.verify(os.Args[2])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", cmd)
		fmt.Print(usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
}

func runMenu(a *app) {
	items := []ui.MenuItem{}
	for _, name := range games.GetModeList() {
		m := games.Modes[name]
		items = append(items, ui.MenuItem{Label: fmt.Sprintf("Play %s - %s", m.Name, m.Description), Value: m.Name})
	}
	items = append(items,
		ui.MenuItem{Label: "Stats", Value: "stats"},
		ui.MenuItem{Label: "Leaderboard", Value: "leaderboard"},
		ui.MenuItem{Label: "Achievements", Value: "achievements"},
		ui.MenuItem{Label: "Exit", Value: "exit"},
	)

	menu := ui.NewMenu(a.cfg.AppName, items)
	menu.Subtitle = "Fit the pieces. Clear the lines."
	for {
		choice := menu.Show()
		var err error
		switch choice {
		case "", "exit":
			fmt.Println("Goodbye!")
			return
		case "stats":
			err = a.showStats()
		case "leaderboard":
			err = a.showLeaderboard("classic")
		case "achievements":
			err = a.showAchievements()
		default:
			err = a.play(choice)
		}
		if err != nil {
			log.Printf("[WARN] %v", err)
		}
		fmt.Println("\nPress Enter to return to the menu...")
		fmt.Scanln()
	}
}
