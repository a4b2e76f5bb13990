package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapgap/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all play modes",
	Long:  `Shows every registered play mode.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")
	for _, m := range modes {
		desc := m.Description
		if m.RequiresLevel {
			desc += " (needs --level)"
		}
		fmt.Printf("  %-*s  %s\n", maxIDLen, m.ID, desc)
	}

	fmt.Println()
	fmt.Println("Run 'flapgap play <id>' to play a mode.")
}
