package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hwpayoff/runtime/contracts"
	"github.com/hwpayoff/runtime/internal/cost"
)

// parseWorkload parses --model values of the form developer/model[:quantity].
func parseWorkload(specs []string) ([]contracts.WorkloadEntry, error) {
	if len(specs) == 0 {
		return nil, contracts.ErrEmptyWorkload
	}

	workload := make([]contracts.WorkloadEntry, 0, len(specs))
	for _, spec := range specs {
		entry, err := parseModelSpec(spec)
		if err != nil {
			return nil, err
		}
		workload = append(workload, entry)
	}
	return workload, nil
}

func parseModelSpec(spec string) (contracts.WorkloadEntry, error) {
	ref, qtyText, hasQty := strings.Cut(spec, ":")
	dev, model, ok := strings.Cut(ref, "/")
	if !ok || dev == "" || model == "" {
		return contracts.WorkloadEntry{}, fmt.Errorf("model %q: want developer/model[:quantity]: %w", spec, contracts.ErrInvalidInput)
	}

	qty := 1
	if hasQty {
		n, err := strconv.Atoi(qtyText)
		if err != nil || n < 1 {
			return contracts.WorkloadEntry{}, fmt.Errorf("model %q: quantity must be a positive integer: %w", spec, contracts.ErrInvalidInput)
		}
		qty = n
	}

	return contracts.WorkloadEntry{
		DeveloperID: contracts.DeveloperID(dev),
		ModelID:     contracts.ModelID(model),
		Quantity:    qty,
	}, nil
}

// checkWorkload reports the first workload entry missing from the catalog.
func checkWorkload(catalog contracts.ModelCatalog, workload []contracts.WorkloadEntry) error {
	for _, e := range workload {
		if _, ok := catalog.Find(e.DeveloperID, e.ModelID); !ok {
			return fmt.Errorf("model %s/%s: %w", e.DeveloperID, e.ModelID, contracts.ErrModelNotFound)
		}
	}
	return nil
}

// checkMode rejects a training mode the table does not list; the engine
// would otherwise fall back to inference.
func checkMode(modes *cost.TrainingModeTable, id contracts.TrainingModeID) error {
	if _, ok := modes.Get(id); !ok {
		return fmt.Errorf("training mode %q: %w", id, contracts.ErrUnknownTrainingMode)
	}
	return nil
}
