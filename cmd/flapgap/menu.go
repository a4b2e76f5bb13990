package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapgap/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick modes and levels interactively",
	Long: `Start flapgap in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
Career opens the level list. After a round you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  flapgap menu
  flapgap menu --fps 30
  flapgap menu --player ann`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	env, cleanup, err := loadEnv(true)
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.RunApp(env, terminalConfig())
}
