package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"symptom-sim/internal/config"
	"symptom-sim/internal/logging"
	"symptom-sim/internal/notify"
	"symptom-sim/internal/preset"
	"symptom-sim/internal/random"
	"symptom-sim/internal/selection"
	"symptom-sim/internal/sim"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one symptom timeline",
	Long: "simulate generates one timeline. Settings come from the config file, then " +
		"SYMPTOM_SIM_* environment variables, then a preset, then explicit flags.",
	RunE: runSimulate,
}

func init() {
	addSimulateFlags(simulateCmd.Flags())
}

func addSimulateFlags(fs *pflag.FlagSet) {
	fs.String("severity", "", "Severity tier: mild, moderate or severe")
	fs.Int("duration", 0, "Run duration in hours")
	fs.Int("start-hour", 0, "Hour of day the fast-time clock starts at")
	fs.Bool("realtime", false, "Wait in real time between events and ring an alert")
	fs.Uint64("seed", 0, "Random seed (0 picks one)")
	fs.StringP("output", "o", "", "Output: color, json or tui")
	fs.String("log-level", "", "Log level: debug, info, warn or error")
	fs.BoolP("interactive", "i", false, "Prompt for severity, duration and mode")
	fs.String("preset", "", "Named preset to start from")
	fs.String("presets-file", "", "YAML file with additional presets")
	fs.String("config", "", "Path to simulation configuration YAML")
	fs.String("schema", "schemas/simulation.cue", "Path to CUE schema file")
}

// resolveConfig layers the config file, the environment, a preset and the
// flags the user set explicitly.
func resolveConfig(fs *pflag.FlagSet) (*config.SimulationConfig, error) {
	configPath, _ := fs.GetString("config")
	schemaPath, _ := fs.GetString("schema")
	cfg, err := config.Load(configPath, schemaPath)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if name, _ := fs.GetString("preset"); name != "" {
		presetsFile, _ := fs.GetString("presets-file")
		all, err := loadPresets(presetsFile)
		if err != nil {
			return nil, err
		}
		p, err := preset.Lookup(all, name)
		if err != nil {
			return nil, err
		}
		p.Apply(cfg)
	}

	if fs.Changed("severity") {
		cfg.Severity, _ = fs.GetString("severity")
	}
	if fs.Changed("duration") {
		cfg.DurationHours, _ = fs.GetInt("duration")
	}
	if fs.Changed("start-hour") {
		cfg.StartHour, _ = fs.GetInt("start-hour")
	}
	if fs.Changed("realtime") {
		cfg.Realtime, _ = fs.GetBool("realtime")
	}
	if fs.Changed("seed") {
		cfg.Seed, _ = fs.GetUint64("seed")
	}
	if fs.Changed("output") {
		cfg.Output, _ = fs.GetString("output")
	}
	if fs.Changed("log-level") {
		cfg.LogLevel, _ = fs.GetString("log-level")
	}
	return cfg, nil
}

func loadPresets(path string) (map[string]preset.Preset, error) {
	all := preset.BuiltIn()
	if path == "" {
		return all, nil
	}
	extra, err := preset.Load(path)
	if err != nil {
		return nil, err
	}
	return preset.Merge(all, extra), nil
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	fs := cmd.Flags()
	cfg, err := resolveConfig(fs)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if interactive, _ := fs.GetBool("interactive"); interactive {
		c, err := selection.Prompt(ctx, selection.Choice{
			Severity:      cfg.Level(),
			DurationHours: cfg.DurationHours,
			Realtime:      cfg.Realtime,
		}, preset.DurationPresets)
		if errors.Is(err, selection.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		cfg.Severity = c.Severity.String()
		cfg.DurationHours = c.DurationHours
		cfg.Realtime = c.Realtime
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Seed == 0 {
		if cfg.Seed, err = random.NewSeed(); err != nil {
			return err
		}
	}

	// The TUI owns the terminal; logs would tear it.
	var logOut io.Writer = os.Stderr
	if cfg.Output == config.OutputTUI {
		logOut = io.Discard
	}
	log := logging.New(cfg.LogLevel, logOut)
	ctx = logging.NewContext(ctx, log)

	writer, cleanup, err := newWriter(cfg.Output)
	if err != nil {
		return err
	}
	defer cleanup()

	var notifier sim.Notifier = notify.Nop{}
	if cfg.Realtime {
		notifier = notify.NewBellNotifier(cfg.NotifyAlert())
	}
	simulator, err := sim.NewSimulator(cfg.SimOptions(), writer, notifier)
	if err != nil {
		return err
	}
	sum, err := simulator.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("simulation stopped", "total_triggered", sum.TotalTriggered)
		return nil
	}
	if err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	return nil
}
