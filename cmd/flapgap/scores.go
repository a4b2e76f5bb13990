package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapgap/internal/registry"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top 10 scores for a mode, or a summary of every mode
when none is given.

Examples:
  flapgap scores
  flapgap scores arcade`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

var flagClear bool

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score of the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	env, cleanup, err := loadEnv(false)
	if err != nil {
		return err
	}
	defer cleanup()

	if env.Store == nil {
		return fmt.Errorf("no score database at %s", flagDBPath)
	}

	if len(args) == 0 {
		stats, err := env.Store.GetAllGamesStats()
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			fmt.Println("No rounds recorded yet.")
			return nil
		}
		fmt.Printf("  %-8s  %6s  %5s  %5s  %6s  %s\n", "Mode", "Rounds", "Wins", "Best", "Avg", "Last played")
		for _, mode := range slices.Sorted(maps.Keys(stats)) {
			s := stats[mode]
			fmt.Printf("  %-8s  %6d  %5d  %5d  %6.1f  %s\n",
				s.Mode, s.GamesCount, s.Wins, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
		}
		return nil
	}

	modeID := args[0]
	mode, err := registry.Create(modeID)
	if err != nil {
		return fmt.Errorf("unknown mode %q, run 'flapgap list' to see available modes", modeID)
	}

	if flagClear {
		if err := env.Store.ClearScores(modeID); err != nil {
			return err
		}
		fmt.Printf("Cleared %s scores.\n", mode.Title())
		return nil
	}

	scores, err := env.Store.TopScores(modeID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n\n", mode.Title())
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'flapgap play %s' to set the first high score!\n", modeID)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %5s  %5s  %-5s  %s\n", "Rank", "Player", "Score", "Coins", "Level", "Date")
	fmt.Printf("  %-4s  %-12s  %5s  %5s  %-5s  %s\n", "----", "------", "-----", "-----", "-----", "----")
	for i, e := range scores {
		level := "-"
		if e.LevelID != "" {
			level = e.LevelID
		}
		fmt.Printf("  %-4d  %-12s  %5d  %5d  %-5s  %s\n",
			i+1, e.Player, e.Score, e.Coins, level, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if high, err := env.Store.HighScore(modeID); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
	if best, err := env.Store.PlayerBest(env.Player, modeID); err == nil && best > 0 {
		fmt.Printf("Your best: %d\n", best)
	}
	return nil
}
