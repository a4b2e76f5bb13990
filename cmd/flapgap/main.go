// flapgap is a terminal flap-past-the-gaps game with classic, arcade and
// career modes.
//
// Usage:
//
//	flapgap list              - List play modes
//	flapgap play <mode>       - Play a mode directly
//	flapgap menu              - Pick modes and levels interactively
//	flapgap levels            - Show the career ladder and progress
//	flapgap scores [mode]     - Show high scores
//	flapgap profile           - Show lives, coins and best scores
//	flapgap serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible rounds
//	--db <dsn>      - SQLite path or postgres:// URL (default: ~/.flapgap/flapgap.db)
//	--player <name> - Profile to play as (default: $USER)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/flapgap/internal/games/flappy/modes"

	"github.com/vovakirdan/flapgap/internal/config"
	"github.com/vovakirdan/flapgap/internal/economy"
	"github.com/vovakirdan/flapgap/internal/platform/tui"
	"github.com/vovakirdan/flapgap/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagPlayer     string
	flagConfig     string
	flagLevels     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flapgap",
	Short: "flapgap - flap past the gaps in your terminal",
	Long: `flapgap is a terminal game: keep the bird in the air and fly
through the gaps between pipes.

Modes:
  classic  - Endless run, one point per pipe
  arcade   - Coins and power-ups (shield, magnet, ghost, wider gaps)
  career   - A ladder of levels, each cleared at a target score

Examples:
  flapgap play classic
  flapgap play career --level 3
  flapgap menu
  flapgap serve --ssh :2222
  flapgap scores arcade`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flapgap/flapgap.db", "SQLite path or postgres:// URL")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Player profile name")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Path to custom levels.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (terminal play is silent otherwise)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger. Interactive commands own the
// terminal, so without --log-file their logs are dropped.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	var out io.Writer = os.Stderr
	closeFn := func() {}

	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	case interactive:
		out = io.Discard
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "flapgap",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadEnv loads configuration, opens storage and builds the economy. A
// database that cannot be opened is logged and play continues without
// persistence. The returned func releases everything.
func loadEnv(interactive bool) (tui.Env, func(), error) {
	logger, closeLog, err := newLogger(interactive)
	if err != nil {
		return tui.Env{}, nil, err
	}

	game, err := config.LoadGame(flagConfig)
	if err != nil {
		closeLog()
		return tui.Env{}, nil, err
	}
	if flagDifficulty != "" {
		game.ApplyPreset(config.DifficultyPreset(flagDifficulty))
	}

	levels, err := config.LoadLevels(flagLevels)
	if err != nil {
		closeLog()
		return tui.Env{}, nil, err
	}

	env := tui.Env{
		Game:   game,
		Levels: levels,
		Player: flagPlayer,
		Logger: logger,
	}
	if env.Player == "" {
		env.Player = "player"
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, progress will not be saved", "error", err)
		return env, closeLog, nil
	}
	logger.Debug("storage opened", "dialect", store.Dialect())

	env.Store = store
	env.Economy = economy.New(store, levels)
	if _, err := env.Economy.Join(env.Player); err != nil {
		logger.Warn("could not create player", "player", env.Player, "error", err)
		env.Economy = nil
	}

	return env, func() {
		store.Close()
		closeLog()
	}, nil
}
