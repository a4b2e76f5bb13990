package main

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show lives, coins and best scores",
	Long: `Shows the player's wallet: lives and when the next one comes back,
coins, best score per mode and cleared career levels.

Examples:
  flapgap profile
  flapgap profile --player ann`,
	RunE: runProfile,
}

func runProfile(_ *cobra.Command, _ []string) error {
	env, cleanup, err := loadEnv(false)
	if err != nil {
		return err
	}
	defer cleanup()

	if env.Economy == nil {
		return fmt.Errorf("no profile database at %s", flagDBPath)
	}
	prof, err := env.Economy.Profile(env.Player)
	if err != nil {
		return err
	}

	fmt.Printf("Player: %s\n", prof.Name)
	fmt.Printf("Lives:  %d/%d", prof.Lives, prof.MaxLives)
	if prof.NextLife > 0 {
		fmt.Printf(" (next in %s)", prof.NextLife.Round(time.Second))
	}
	fmt.Println()
	fmt.Printf("Coins:  %d\n", prof.Coins)

	if len(prof.Best) > 0 {
		fmt.Println()
		fmt.Println("Best scores:")
		for _, mode := range slices.Sorted(maps.Keys(prof.Best)) {
			fmt.Printf("  %-8s %d\n", mode, prof.Best[mode])
		}
	}

	fmt.Println()
	fmt.Printf("Career: %d/%d levels cleared\n", len(prof.Completed), len(env.Levels.Levels))
	return nil
}
