package orchestration

import (
	"github.com/go-logr/logr"

	"github.com/hwpayoff/runtime/contracts"
	"github.com/hwpayoff/runtime/internal/cost"
	"github.com/hwpayoff/runtime/internal/logging"
)

// engine implements contracts.Comparator.
// It holds only immutable tables, so one engine may serve concurrent callers.
type engine struct {
	catalog      contracts.ModelCatalog
	hardware     *cost.HardwareCatalog
	modes        *cost.TrainingModeTable
	prices       contracts.PriceTables
	defaultShare float64
	log          logr.Logger

	// onComparison is called after every computed bundle (optional).
	onComparison func(contracts.ComparisonInput, contracts.ComparisonBundle)
}

// EngineDeps contains everything the engine reads.
type EngineDeps struct {
	Catalog  contracts.ModelCatalog
	Hardware *cost.HardwareCatalog
	Modes    *cost.TrainingModeTable
	Prices   contracts.PriceTables

	// DefaultInputTokenShare applies when a request sets no share.
	// Nil means contracts.DefaultInputTokenShare.
	DefaultInputTokenShare *float64

	// Logger may be left zero, which discards.
	Logger logr.Logger
}

// NewEngine creates a Comparator over the given tables.
func NewEngine(deps EngineDeps) contracts.Comparator {
	modes := deps.Modes
	if modes == nil {
		modes = cost.NewDefaultTrainingModeTable()
	}
	hardware := deps.Hardware
	if hardware == nil {
		hardware = cost.NewHardwareCatalog(contracts.HardwareTable{})
	}
	catalog := deps.Catalog
	if catalog == nil {
		catalog = cost.NewModelCatalog(nil)
	}
	share := contracts.DefaultInputTokenShare
	if deps.DefaultInputTokenShare != nil {
		share = *deps.DefaultInputTokenShare
	}

	return &engine{
		catalog:      catalog,
		hardware:     hardware,
		modes:        modes,
		prices:       deps.Prices,
		defaultShare: share,
		log:          deps.Logger.WithName("engine"),
	}
}

// NewEngineWithCallback creates a Comparator that reports every bundle it
// computes to onComparison. The callback may run concurrently during sweeps.
func NewEngineWithCallback(deps EngineDeps, onComparison func(contracts.ComparisonInput, contracts.ComparisonBundle)) contracts.Comparator {
	e := NewEngine(deps).(*engine)
	e.onComparison = onComparison
	return e
}

// ComputeWorkloadComparison runs the whole pipeline for one input: hardware
// resolution, memory feasibility, throughput and the three comparators.
//
// An unresolved hardware selection or an infeasible workload yields a bundle
// with CanRun=false, zero throughput and empty provider lists.
func (e *engine) ComputeWorkloadComparison(input contracts.ComparisonInput) contracts.ComparisonBundle {
	bundle := e.compute(input)
	if e.onComparison != nil {
		e.onComparison(input, bundle)
	}
	return bundle
}

func (e *engine) compute(input contracts.ComparisonInput) contracts.ComparisonBundle {
	mode := e.modes.Resolve(input.TrainingMode)
	if _, known := e.modes.Get(input.TrainingMode); !known && input.TrainingMode != "" {
		e.log.V(logging.DEBUG).Info("Unknown training mode, using inference", "mode", input.TrainingMode)
	}

	bundle := contracts.ComparisonBundle{
		WorkloadSummary: []contracts.WorkloadSummary{},
		Cloud:           []contracts.CloudResult{},
		OSSAPI:          []contracts.APIResult{},
		Proprietary:     []contracts.ProprietaryResult{},
	}

	hw, found := e.hardware.Resolve(input.Hardware)
	if !found {
		e.log.V(logging.DEBUG).Info("Hardware selection not resolved",
			"class", input.Hardware.Class,
			"memoryGB", input.Hardware.MemoryGB)
		bundle.Memory = cost.CanRunWorkload(0, input.Workload, e.catalog, input.Hardware.Class, mode)
		bundle.Memory.CanRun = false
		return bundle
	}
	bundle.HardwareFound = true
	bundle.Hardware = hw

	bundle.Memory = cost.CanRunWorkload(hw.MemoryGB, input.Workload, e.catalog, hw.Class, mode)
	if !bundle.Memory.CanRun {
		e.log.V(logging.DEBUG).Info("Workload cannot run on hardware",
			"hardware", hw.Name,
			"totalRAM", bundle.Memory.TotalRAM,
			"deficit", bundle.Memory.Deficit,
			"incompatible", bundle.Memory.IncompatibleModels)
		return bundle
	}
	bundle.CanRun = true

	share := e.defaultShare
	if input.Options.InputTokenShare != nil {
		share = *input.Options.InputTokenShare
	}

	tp := cost.AggregateThroughput(input.Workload, e.catalog, hw.Class, hw.Replicas, input.DailyHours)
	bundle.LocalTPS = tp.LocalTPS
	bundle.TokensPerDay = tp.TokensPerDay
	bundle.WorkloadSummary = tp.Entries

	demand := cost.CloudDemandOf(input.Workload, e.catalog)
	bundle.Cloud = cost.CompareCloud(e.prices.Cloud, demand, tp.TokensPerDay, tp.LocalTPS, hw.PriceUSD)
	bundle.OSSAPI = cost.CompareOSSAPI(e.prices.OSSAPI, tp, hw.PriceUSD, share)
	bundle.Proprietary = cost.CompareProprietary(e.prices.Proprietary, tp, hw.PriceUSD, share)
	bundle.Best = cost.CheapestAlternative(bundle.Cloud, bundle.OSSAPI, hw.PriceUSD)

	e.log.V(logging.TRACE).Info("Comparison computed",
		"hardware", hw.Name,
		"localTPS", tp.LocalTPS,
		"tokensPerDay", tp.TokensPerDay,
		"cloud", len(bundle.Cloud),
		"ossApi", len(bundle.OSSAPI),
		"proprietary", len(bundle.Proprietary))

	return bundle
}
