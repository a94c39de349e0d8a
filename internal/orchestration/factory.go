package orchestration

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/hwpayoff/runtime/config"
	"github.com/hwpayoff/runtime/contracts"
	"github.com/hwpayoff/runtime/internal/cost"
)

// FactoryOptions provides optional customization for engine assembly.
type FactoryOptions struct {
	// Logger is passed to the engine. Zero discards.
	Logger logr.Logger

	// DefaultInputTokenShare overrides contracts.DefaultInputTokenShare
	// when set. Zero is a valid share.
	DefaultInputTokenShare *float64

	// OnComparison, if set, observes every computed bundle.
	OnComparison func(contracts.ComparisonInput, contracts.ComparisonBundle)
}

// Components are the lookup tables built from a dataset plus the engine
// computing over them. Outer surfaces use the tables for listings.
type Components struct {
	Catalog  contracts.ModelCatalog
	Hardware *cost.HardwareCatalog
	Modes    *cost.TrainingModeTable
	Engine   contracts.Comparator
}

// NewComponents assembles the engine from a loaded dataset.
// The dataset's training modes replace the built-in table when present.
func NewComponents(ds *config.Dataset, opts FactoryOptions) Components {
	modes := cost.NewDefaultTrainingModeTable()
	if len(ds.TrainingModes) > 0 {
		modes = cost.NewTrainingModeTable(ds.TrainingModes)
	}

	c := Components{
		Catalog:  cost.NewModelCatalog(ds.Developers),
		Hardware: cost.NewHardwareCatalog(ds.Hardware),
		Modes:    modes,
	}

	deps := EngineDeps{
		Catalog:                c.Catalog,
		Hardware:               c.Hardware,
		Modes:                  c.Modes,
		Prices:                 ds.Prices,
		DefaultInputTokenShare: opts.DefaultInputTokenShare,
		Logger:                 opts.Logger,
	}
	if opts.OnComparison != nil {
		c.Engine = NewEngineWithCallback(deps, opts.OnComparison)
	} else {
		c.Engine = NewEngine(deps)
	}
	return c
}

// NewComponentsWithDefaults assembles the engine over the built-in dataset.
func NewComponentsWithDefaults(opts FactoryOptions) (Components, error) {
	ds, err := config.NewLoader().LoadDefault()
	if err != nil {
		return Components{}, fmt.Errorf("assembling engine: %w", err)
	}
	return NewComponents(ds, opts), nil
}
