package cost

import (
	"github.com/hwpayoff/runtime/contracts"
)

func testDevelopers() []contracts.Developer {
	return []contracts.Developer{
		{
			ID:   "meta",
			Name: "Meta",
			Models: []contracts.ModelSpec{
				{
					ID:                   "llama-8b",
					Name:                 "Llama 3.1 8B",
					Params:               "8B",
					MinRAM:               16,
					LocalTokPerSec:       12,
					AltHardwareTokPerSec: 20,
					CloudTokPerSec:       50,
					CloudGPUs:            0.5,
					Tier:                 contracts.TierSmall,
				},
				{
					ID:                   "llama-405b",
					Name:                 "Llama 3.1 405B",
					Params:               "405B",
					MinRAM:               300,
					LocalTokPerSec:       3,
					AltHardwareTokPerSec: 0,
					CloudTokPerSec:       30,
					CloudGPUs:            8,
					Tier:                 contracts.TierFrontier,
				},
			},
		},
		{
			ID:   "qwen",
			Name: "Qwen",
			Models: []contracts.ModelSpec{
				{
					ID:                   "qwen-32b",
					Name:                 "Qwen 2.5 32B",
					Params:               "32B",
					MinRAM:               40,
					LocalTokPerSec:       8,
					AltHardwareTokPerSec: 10,
					CloudTokPerSec:       60,
					CloudGPUs:            1,
					Tier:                 contracts.TierLarge,
				},
			},
		},
	}
}

func testCatalog() contracts.ModelCatalog {
	return NewModelCatalog(testDevelopers())
}

func entry(dev contracts.DeveloperID, model contracts.ModelID, qty int) contracts.WorkloadEntry {
	return contracts.WorkloadEntry{DeveloperID: dev, ModelID: model, Quantity: qty}
}

func inferenceMode() contracts.TrainingMode {
	return NewDefaultTrainingModeTable().Resolve(contracts.ModeInference)
}
