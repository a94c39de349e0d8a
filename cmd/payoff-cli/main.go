// Package main provides an offline CLI over the payoff engine.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/pflag"

	"github.com/hwpayoff/runtime/api"
	"github.com/hwpayoff/runtime/config"
	"github.com/hwpayoff/runtime/contracts"
	"github.com/hwpayoff/runtime/internal/logging"
	"github.com/hwpayoff/runtime/internal/orchestration"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "developers":
		err = developersCmd(os.Args[2:])
	case "models":
		err = modelsCmd(os.Args[2:])
	case "modes":
		err = modesCmd(os.Args[2:])
	case "compare":
		err = compareCmd(os.Args[2:])
	case "sweep":
		err = sweepCmd(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  payoff-cli developers
  payoff-cli models --developer <id>
  payoff-cli modes
  payoff-cli compare --model <dev/model[:qty]>... --hardware mac|spark [--memory <GB>] [--replicas <n>]
                     [--mode <id>] [--daily-hours <h>] [--input-share <f>] [--json]
  payoff-cli sweep --model <dev/model[:qty]>... [--replicas <n>] [--mode <id>] [--daily-hours <h>]

Every command accepts --dataset <path> and reads PAYOFF_* variables and .env.
`)
}

// newFlags returns a flag set carrying the shared settings flags.
func newFlags(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ExitOnError)
	config.RegisterFlags(flags)
	return flags
}

// setup loads settings, the dataset and the engine after flags are parsed.
func setup(flags *pflag.FlagSet) (config.Settings, orchestration.Components, error) {
	settings, err := config.LoadSettings(flags, ".env")
	if err != nil {
		return settings, orchestration.Components{}, err
	}

	log, err := logging.NewLogger(settings.LogLevel, logging.FormatConsole)
	if err != nil {
		return settings, orchestration.Components{}, err
	}

	ds, err := config.NewLoader().Load(settings.DatasetPath)
	if err != nil {
		return settings, orchestration.Components{}, err
	}

	return settings, orchestration.NewComponents(ds, orchestration.FactoryOptions{
		Logger:                 log,
		DefaultInputTokenShare: contracts.Share(settings.InputTokenShare),
	}), nil
}

func developersCmd(args []string) error {
	flags := newFlags("developers")
	_ = flags.Parse(args)

	_, c, err := setup(flags)
	if err != nil {
		return err
	}
	return printDevelopers(os.Stdout, c.Catalog.Developers())
}

func modelsCmd(args []string) error {
	flags := newFlags("models")
	developer := flags.String("developer", "", "developer id")
	_ = flags.Parse(args)

	if *developer == "" {
		return errors.New("--developer is required")
	}

	_, c, err := setup(flags)
	if err != nil {
		return err
	}

	id := contracts.DeveloperID(*developer)
	for _, d := range c.Catalog.Developers() {
		if d.ID == id {
			return printModels(os.Stdout, c.Catalog.Models(id))
		}
	}
	return fmt.Errorf("developer %s: %w", id, contracts.ErrDeveloperNotFound)
}

func modesCmd(args []string) error {
	flags := newFlags("modes")
	_ = flags.Parse(args)

	_, c, err := setup(flags)
	if err != nil {
		return err
	}
	return printModes(os.Stdout, c.Modes.List())
}

func compareCmd(args []string) error {
	flags := newFlags("compare")
	models := flags.StringArray("model", nil, "workload entry developer/model[:quantity], repeatable")
	class := flags.String("hardware", string(contracts.HardwareMac), "hardware class")
	memory := flags.Float64("memory", 0, "memory capacity in GB for configurable hardware")
	replicas := flags.Int("replicas", 1, "number of hardware units")
	mode := flags.String("mode", string(contracts.ModeInference), "training mode id")
	asJSON := flags.Bool("json", false, "print the full comparison as JSON")
	_ = flags.Parse(args)

	workload, err := parseWorkload(*models)
	if err != nil {
		return err
	}

	settings, c, err := setup(flags)
	if err != nil {
		return err
	}
	if err := checkWorkload(c.Catalog, workload); err != nil {
		return err
	}
	if err := checkMode(c.Modes, contracts.TrainingModeID(*mode)); err != nil {
		return err
	}

	sel := contracts.HardwareSelection{Class: contracts.HardwareClass(*class), MemoryGB: *memory, Replicas: *replicas}
	if _, ok := c.Hardware.Resolve(sel); !ok {
		return fmt.Errorf("%s with %gGB: %w", sel.Class, sel.MemoryGB, contracts.ErrUnsupportedCapacity)
	}

	input := contracts.ComparisonInput{
		Workload:     workload,
		DailyHours:   settings.DailyHours,
		Hardware:     sel,
		TrainingMode: contracts.TrainingModeID(*mode),
	}
	bundle := c.Engine.ComputeWorkloadComparison(input)

	if *asJSON {
		return writeJSON(os.Stdout, api.EntryToResponse(&api.ComparisonEntry{
			Input:     input,
			Bundle:    bundle,
			CreatedAt: time.Now(),
		}))
	}
	return printComparison(os.Stdout, bundle)
}

func sweepCmd(args []string) error {
	flags := newFlags("sweep")
	models := flags.StringArray("model", nil, "workload entry developer/model[:quantity], repeatable")
	replicas := flags.Int("replicas", 1, "number of hardware units per sweep point")
	mode := flags.String("mode", string(contracts.ModeInference), "training mode id")
	_ = flags.Parse(args)

	workload, err := parseWorkload(*models)
	if err != nil {
		return err
	}

	settings, c, err := setup(flags)
	if err != nil {
		return err
	}
	if err := checkWorkload(c.Catalog, workload); err != nil {
		return err
	}
	if err := checkMode(c.Modes, contracts.TrainingModeID(*mode)); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	base := contracts.ComparisonInput{
		Workload:     workload,
		DailyHours:   settings.DailyHours,
		TrainingMode: contracts.TrainingModeID(*mode),
	}
	bundles, err := orchestration.Sweep(ctx, c.Engine, base, c.Hardware.Selections(*replicas), settings.SweepParallelism)
	if err != nil {
		return err
	}
	return printSweep(os.Stdout, bundles)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
