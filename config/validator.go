package config

import (
	"fmt"

	"github.com/hwpayoff/runtime/contracts"
)

// Validator validates datasets.
type Validator struct{}

// NewValidator creates a new dataset validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks a Dataset and returns an error describing the first
// failure, or nil if it is valid.
func (v *Validator) Validate(ds *Dataset) error {
	if ds == nil {
		return ErrConfigEmpty
	}

	if err := v.validateCatalog(ds.Developers); err != nil {
		return err
	}
	if err := v.validateHardware(ds.Hardware); err != nil {
		return err
	}
	if err := v.validatePrices(ds.Prices, ds.modelIDs()); err != nil {
		return err
	}
	return v.validateTrainingModes(ds.TrainingModes)
}

func (v *Validator) validateCatalog(developers []contracts.Developer) error {
	if len(developers) == 0 {
		return ErrNoDevelopers
	}

	devIDs := make(map[contracts.DeveloperID]bool)
	for i, dev := range developers {
		if dev.ID == "" {
			return fmt.Errorf("developers[%d]: %w", i, ErrDeveloperIDEmpty)
		}
		if devIDs[dev.ID] {
			return fmt.Errorf("developer.id=%s: %w", dev.ID, ErrDeveloperDuplicate)
		}
		devIDs[dev.ID] = true

		modelIDs := make(map[contracts.ModelID]bool)
		for j, m := range dev.Models {
			if m.ID == "" {
				return fmt.Errorf("developer.id=%s models[%d]: %w", dev.ID, j, ErrModelIDEmpty)
			}
			if modelIDs[m.ID] {
				return fmt.Errorf("developer.id=%s model.id=%s: %w", dev.ID, m.ID, ErrModelDuplicate)
			}
			modelIDs[m.ID] = true

			if m.MinRAM < 0 || m.LocalTokPerSec < 0 || m.AltHardwareTokPerSec < 0 ||
				m.CloudTokPerSec < 0 || m.CloudGPUs < 0 {
				return fmt.Errorf("model.id=%s: %w", m.ID, ErrNegativeFigure)
			}
			if !m.Tier.Valid() {
				return fmt.Errorf("model.id=%s tier=%q: %w", m.ID, m.Tier, ErrUnknownTier)
			}
		}
	}
	return nil
}

func (v *Validator) validateHardware(hw contracts.HardwareTable) error {
	if len(hw.Profiles) == 0 {
		return ErrNoHardware
	}

	for cur, rate := range hw.ExchangeRates {
		if rate <= 0 {
			return fmt.Errorf("exchange rate %s=%g: %w", cur, rate, ErrInvalidPrice)
		}
	}

	classes := make(map[contracts.HardwareClass]bool)
	for _, p := range hw.Profiles {
		if !p.Class.Valid() {
			return fmt.Errorf("hardware class=%q: %w", p.Class, ErrUnknownHardwareClass)
		}
		if classes[p.Class] {
			return fmt.Errorf("hardware class=%s: %w", p.Class, ErrHardwareDuplicate)
		}
		classes[p.Class] = true

		if !p.Configurable() {
			if p.MemoryGB <= 0 {
				return fmt.Errorf("hardware class=%s: %w", p.Class, ErrInvalidCapacity)
			}
			if p.PriceUSD < 0 {
				return fmt.Errorf("hardware class=%s: %w", p.Class, ErrInvalidPrice)
			}
			continue
		}

		for _, c := range p.Configs {
			if c.MemoryGB <= 0 {
				return fmt.Errorf("hardware class=%s config=%gGB: %w", p.Class, c.MemoryGB, ErrInvalidCapacity)
			}
			if c.Price < 0 {
				return fmt.Errorf("hardware class=%s config=%gGB: %w", p.Class, c.MemoryGB, ErrInvalidPrice)
			}
			if c.Currency != "" && c.Currency != contracts.USD {
				if _, ok := hw.ExchangeRates[c.Currency]; !ok {
					return fmt.Errorf("hardware class=%s currency=%s: %w", p.Class, c.Currency, ErrUnknownCurrency)
				}
			}
		}
	}
	return nil
}

func (v *Validator) validatePrices(prices contracts.PriceTables, catalog map[contracts.ModelID]bool) error {
	for _, c := range prices.Cloud {
		if c.Name == "" {
			return fmt.Errorf("cloud provider: %w", ErrProviderNameEmpty)
		}
		if c.RatePerGPUHour < 0 {
			return fmt.Errorf("cloud provider=%s: %w", c.Name, ErrInvalidPrice)
		}
	}

	for modelID, offers := range prices.OSSAPI {
		if !catalog[modelID] {
			return fmt.Errorf("ossApi model.id=%s: %w", modelID, ErrUnknownPricedModel)
		}
		seen := make(map[contracts.ProviderName]bool, len(offers))
		for _, o := range offers {
			if o.Name == "" {
				return fmt.Errorf("ossApi model.id=%s: %w", modelID, ErrProviderNameEmpty)
			}
			if seen[o.Name] {
				return fmt.Errorf("ossApi model.id=%s provider=%s: %w", modelID, o.Name, ErrOfferDuplicate)
			}
			seen[o.Name] = true
			if o.InputPer1M < 0 || o.OutputPer1M < 0 {
				return fmt.Errorf("ossApi model.id=%s provider=%s: %w", modelID, o.Name, ErrInvalidPrice)
			}
		}
	}

	for tier, models := range prices.Proprietary {
		if !tier.Valid() {
			return fmt.Errorf("proprietary tier=%q: %w", tier, ErrUnknownTier)
		}
		for _, m := range models {
			if m.Provider == "" {
				return fmt.Errorf("proprietary tier=%s model=%s: %w", tier, m.Name, ErrProviderNameEmpty)
			}
			if m.InputPer1M < 0 || m.OutputPer1M < 0 || m.TokPerSec < 0 {
				return fmt.Errorf("proprietary tier=%s model=%s: %w", tier, m.Name, ErrInvalidPrice)
			}
		}
	}
	return nil
}

func (v *Validator) validateTrainingModes(modes []contracts.TrainingMode) error {
	ids := make(map[contracts.TrainingModeID]bool)
	for i, m := range modes {
		if m.ID == "" {
			return fmt.Errorf("trainingModes[%d]: %w", i, ErrInvalidTrainingMode)
		}
		if ids[m.ID] {
			return fmt.Errorf("trainingMode.id=%s duplicate: %w", m.ID, ErrInvalidTrainingMode)
		}
		ids[m.ID] = true
		if m.Multiplier <= 0 {
			return fmt.Errorf("trainingMode.id=%s multiplier=%g: %w", m.ID, m.Multiplier, ErrInvalidTrainingMode)
		}
	}
	return nil
}
