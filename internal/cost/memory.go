package cost

import (
	"math"

	"github.com/hwpayoff/runtime/contracts"
)

// DefaultTrainingModes is the default training mode table. Multipliers and
// breakdown ratios are heuristics from public fine-tuning benchmarks: full
// fine-tuning with Adam needs gradients about the size of the weights, two
// optimizer moments per gradient and activations around half the weights;
// LoRA/QLoRA train roughly 10% of the parameters.
// Can be overridden via configuration.
var DefaultTrainingModes = []contracts.TrainingMode{
	{
		ID:          contracts.ModeInference,
		Name:        "Inference",
		Category:    contracts.CategoryInference,
		Multiplier:  1,
		Description: "Model weights + KV cache only",
	},
	{
		ID:              contracts.ModeGRPOFull,
		Name:            "GRPO (Full)",
		Category:        contracts.CategoryFullTune,
		Multiplier:      4.5,
		Description:     "Full fine-tuning with Adam optimizer",
		GradientRatio:   1,
		OptimizerRatio:  2,
		ActivationRatio: 0.5,
	},
	{
		ID:              contracts.ModeGRPOLoRA,
		Name:            "GRPO (LoRA)",
		Category:        contracts.CategoryAdapterTune,
		Multiplier:      1.3,
		Description:     "Low-rank adaptation, ~10% trainable params",
		GradientRatio:   0.1,
		OptimizerRatio:  2,
		ActivationRatio: 0.1,
	},
	{
		ID:              contracts.ModeGRPOQLoRA,
		Name:            "GRPO (QLoRA)",
		Category:        contracts.CategoryAdapterTune,
		Multiplier:      1.15,
		Description:     "4-bit quantized with LoRA adapters",
		GradientRatio:   0.1,
		OptimizerRatio:  2,
		ActivationRatio: 0.1,
	},
}

// TrainingModeTable is a swappable lookup over training modes.
type TrainingModeTable struct {
	order []contracts.TrainingModeID
	modes map[contracts.TrainingModeID]contracts.TrainingMode
}

// NewTrainingModeTable builds a table from modes, keeping the first of any
// duplicate id. If the modes lack an inference row, the default one is added
// so lookups always have a fallback.
func NewTrainingModeTable(modes []contracts.TrainingMode) *TrainingModeTable {
	t := &TrainingModeTable{
		modes: make(map[contracts.TrainingModeID]contracts.TrainingMode, len(modes)+1),
	}
	for _, m := range modes {
		t.add(m)
	}
	if _, ok := t.modes[contracts.ModeInference]; !ok {
		t.add(DefaultTrainingModes[0])
	}
	return t
}

// NewDefaultTrainingModeTable builds a table from DefaultTrainingModes.
func NewDefaultTrainingModeTable() *TrainingModeTable {
	return NewTrainingModeTable(DefaultTrainingModes)
}

func (t *TrainingModeTable) add(m contracts.TrainingMode) {
	if _, dup := t.modes[m.ID]; dup {
		return
	}
	t.order = append(t.order, m.ID)
	t.modes[m.ID] = m
}

// Get returns the mode for id, ok=false when absent.
func (t *TrainingModeTable) Get(id contracts.TrainingModeID) (contracts.TrainingMode, bool) {
	m, ok := t.modes[id]
	return m, ok
}

// Resolve returns the mode for id, falling back to inference when absent.
func (t *TrainingModeTable) Resolve(id contracts.TrainingModeID) contracts.TrainingMode {
	if m, ok := t.modes[id]; ok {
		return m
	}
	return t.modes[contracts.ModeInference]
}

// List returns the modes in table order.
func (t *TrainingModeTable) List() []contracts.TrainingMode {
	result := make([]contracts.TrainingMode, 0, len(t.order))
	for _, id := range t.order {
		result = append(result, t.modes[id])
	}
	return result
}

// ModelFits reports whether a single model fits in memoryGB.
func ModelFits(memoryGB, minRAM float64) bool {
	return memoryGB >= minRAM
}

// TrainingMemory estimates the memory needed for baseRAM of inference weights
// under mode. TotalRAM = ceil(baseRAM * multiplier). The breakdown is an
// approximation and is not reconciled with TotalRAM; the gap is reported in
// Unaccounted.
func TrainingMemory(baseRAM float64, mode contracts.TrainingMode) contracts.MemoryFootprint {
	fp := contracts.MemoryFootprint{
		TotalRAM:    math.Ceil(baseRAM * mode.Multiplier),
		Mode:        mode.Name,
		Description: mode.Description,
	}

	if !mode.IsTraining() {
		// KV cache is already part of the inference minRAM.
		fp.Breakdown = contracts.MemoryBreakdown{Weights: baseRAM}
	} else {
		gradients := baseRAM * mode.GradientRatio
		fp.Breakdown = contracts.MemoryBreakdown{
			Weights:     baseRAM,
			Gradients:   math.Ceil(gradients),
			Optimizer:   math.Ceil(gradients * mode.OptimizerRatio),
			Activations: math.Ceil(baseRAM * mode.ActivationRatio),
		}
	}

	fp.Unaccounted = fp.TotalRAM - fp.Breakdown.Sum()
	return fp
}

// WorkloadMemory sums the per-entry training memory of a workload. Entries
// whose model is not in the catalog contribute nothing.
func WorkloadMemory(workload []contracts.WorkloadEntry, catalog contracts.ModelCatalog, mode contracts.TrainingMode) contracts.WorkloadMemoryInfo {
	info := contracts.WorkloadMemoryInfo{
		Entries:             []contracts.EntryMemory{},
		TrainingMode:        mode.Name,
		TrainingDescription: mode.Description,
		IsTraining:          mode.IsTraining(),
	}

	for _, r := range resolveWorkload(catalog, workload) {
		baseRAM := r.model.MinRAM * float64(r.entry.Quantity)
		fp := TrainingMemory(baseRAM, mode)
		info.TotalRAM += fp.TotalRAM
		info.Entries = append(info.Entries, contracts.EntryMemory{
			ModelID:      r.entry.ModelID,
			Name:         r.model.Name,
			RAM:          r.model.MinRAM,
			Quantity:     r.entry.Quantity,
			BaseSubtotal: baseRAM,
			Subtotal:     fp.TotalRAM,
			Breakdown:    fp.Breakdown,
		})
	}

	return info
}

// CanRunWorkload checks whether the workload fits into availableMemory on
// class. A model whose declared throughput for class is zero is incompatible
// regardless of memory; CanRun needs enough memory and no incompatible models.
func CanRunWorkload(availableMemory float64, workload []contracts.WorkloadEntry, catalog contracts.ModelCatalog, class contracts.HardwareClass, mode contracts.TrainingMode) contracts.Feasibility {
	mem := WorkloadMemory(workload, catalog, mode)

	incompatible := []string{}
	for _, r := range resolveWorkload(catalog, workload) {
		if r.model.TokPerSec(class) <= 0 {
			incompatible = append(incompatible, r.model.Name)
		}
	}

	canRun := availableMemory >= mem.TotalRAM && len(incompatible) == 0

	var deficit float64
	if !canRun {
		deficit = math.Max(0, mem.TotalRAM-availableMemory)
	}

	return contracts.Feasibility{
		CanRun:             canRun,
		TotalRAM:           mem.TotalRAM,
		AvailableRAM:       availableMemory,
		Deficit:            deficit,
		IncompatibleModels: incompatible,
		Memory:             mem,
	}
}
