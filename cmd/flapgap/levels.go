package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the career ladder",
	Long: `Lists every career level with its target and reward, and the
player's progress: [*] cleared, [#] locked.

Examples:
  flapgap levels
  flapgap levels --player ann --levels ./my-levels.yaml`,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	env, cleanup, err := loadEnv(false)
	if err != nil {
		return err
	}
	defer cleanup()

	var completed map[string]int
	if env.Economy != nil {
		prof, err := env.Economy.Profile(env.Player)
		if err != nil {
			return err
		}
		completed = prof.Completed
	}

	fmt.Printf("Career - %s\n\n", env.Player)
	fmt.Printf("      %-4s  %-14s  %6s  %5s  %5s  %6s  %4s\n", "ID", "Name", "Target", "Speed", "Gap", "Reward", "Best")
	for _, l := range env.Levels.Levels {
		mark, best := "   ", "-"
		if score, ok := completed[l.ID]; ok {
			mark, best = "[*]", fmt.Sprint(score)
		} else if env.Economy != nil {
			open, err := env.Economy.Unlocked(env.Player, l.ID)
			if err != nil {
				return err
			}
			if !open {
				mark = "[#]"
			}
		}
		fmt.Printf("  %s %-4s  %-14s  %6d  %5.1f  %5.0f  %6d  %4s\n",
			mark, l.ID, l.Name, l.Target, l.Speed, l.Gap, l.Reward, best)
	}
	return nil
}
