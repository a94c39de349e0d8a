package config

import (
	"github.com/hwpayoff/runtime/contracts"
)

// Dataset is the static input of the engine, loaded once at startup:
// the model catalog, the hardware table, every provider price table and the
// training mode table.
type Dataset struct {
	Version string `yaml:"version" json:"version"`
	Updated string `yaml:"updated,omitempty" json:"updated,omitempty"`

	Developers []contracts.Developer   `yaml:"developers" json:"developers"`
	Hardware   contracts.HardwareTable `yaml:"hardware" json:"hardware"`
	Prices     contracts.PriceTables   `yaml:"prices" json:"prices"`

	// TrainingModes replaces the built-in table when set.
	TrainingModes []contracts.TrainingMode `yaml:"trainingModes,omitempty" json:"trainingModes,omitempty"`
}

// modelIDs returns every model id in the catalog, across developers.
func (d *Dataset) modelIDs() map[contracts.ModelID]bool {
	ids := make(map[contracts.ModelID]bool)
	for _, dev := range d.Developers {
		for _, m := range dev.Models {
			ids[m.ID] = true
		}
	}
	return ids
}
