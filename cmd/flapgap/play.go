package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flapgap/internal/config"
	"github.com/vovakirdan/flapgap/internal/core"
	"github.com/vovakirdan/flapgap/internal/platform/tui"
	"github.com/vovakirdan/flapgap/internal/registry"
)

var (
	flagLevel    string
	flagSpeed    float64
	flagGap      float64
	flagInterval int
	flagTarget   int
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start a round of the given mode.

Controls:
  Space/Up/W - Flap
  P/Esc      - Pause
  R          - Restart (after the round ends)
  Enter      - Next level (after clearing a career level)
  B          - Back (when paused or finished)
  Q/Ctrl+C   - Quit
  Ctrl+S     - Save a screenshot to ~/.flapgap/screenshots

Career rounds cost one life. Lives come back over time.

Difficulty options (classic and arcade):
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression

Examples:
  flapgap play classic
  flapgap play arcade --difficulty hard
  flapgap play career --level 2
  flapgap play classic --gap 220 --speed 2`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Career level id")
	playCmd.Flags().Float64Var(&flagSpeed, "speed", 0, "Override scroll speed")
	playCmd.Flags().Float64Var(&flagGap, "gap", 0, "Override gap size")
	playCmd.Flags().IntVar(&flagInterval, "interval", 0, "Override ticks between pipes")
	playCmd.Flags().IntVar(&flagTarget, "target", 0, "Override target score")
}

// playOptions collects the overrides the user actually set.
func playOptions(cmd *cobra.Command) config.Options {
	var opts config.Options
	flags := cmd.Flags()
	if flags.Changed("speed") {
		opts.Speed = config.F64(flagSpeed)
	}
	if flags.Changed("gap") {
		opts.Gap = config.F64(flagGap)
	}
	if flags.Changed("interval") {
		opts.SpawnInterval = config.Int(flagInterval)
	}
	if flags.Changed("target") {
		opts.Target = config.Int(flagTarget)
	}
	return opts
}

// terminalConfig sizes the screen from the controlling terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(cmd *cobra.Command, args []string) error {
	modeID := args[0]

	if !registry.Exists(modeID) {
		return fmt.Errorf("unknown mode %q, run 'flapgap list' to see available modes", modeID)
	}

	env, cleanup, err := loadEnv(true)
	if err != nil {
		return err
	}
	defer cleanup()
	env.Options = playOptions(cmd)

	mode, err := registry.Create(modeID)
	if err != nil {
		return err
	}

	var level *config.Level
	if mode.RequiresLevel() {
		if flagLevel == "" {
			return fmt.Errorf("mode %q needs --level, run 'flapgap levels' to see them", modeID)
		}
		l, ok := env.Levels.ByID(flagLevel)
		if !ok {
			return fmt.Errorf("unknown level %q", flagLevel)
		}
		if env.Economy != nil {
			open, err := env.Economy.Unlocked(env.Player, l.ID)
			if err != nil {
				return err
			}
			if !open {
				return fmt.Errorf("level %s is locked, clear the previous level first", l.ID)
			}
		}
		level = l
	}

	return tui.Run(env, modeID, level, terminalConfig())
}
