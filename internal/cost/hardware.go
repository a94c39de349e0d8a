package cost

import (
	"fmt"

	"github.com/hwpayoff/runtime/contracts"
)

// HardwareCatalog resolves hardware selections against the hardware table.
type HardwareCatalog struct {
	table contracts.HardwareTable
}

// NewHardwareCatalog creates a HardwareCatalog over table.
func NewHardwareCatalog(table contracts.HardwareTable) *HardwareCatalog {
	return &HardwareCatalog{table: table}
}

// Profiles returns the hardware profiles in table order.
func (h *HardwareCatalog) Profiles() []contracts.HardwareProfile {
	result := make([]contracts.HardwareProfile, len(h.table.Profiles))
	copy(result, h.table.Profiles)
	return result
}

// Profile returns the profile of a hardware class.
func (h *HardwareCatalog) Profile(class contracts.HardwareClass) (contracts.HardwareProfile, bool) {
	for _, p := range h.table.Profiles {
		if p.Class == class {
			return p, true
		}
	}
	return contracts.HardwareProfile{}, false
}

// ToUSD converts an amount in currency to USD. Unknown currencies report
// ok=false.
func (h *HardwareCatalog) ToUSD(amount float64, currency contracts.Currency) (float64, bool) {
	if currency == "" || currency == contracts.USD {
		return amount, true
	}
	rate, ok := h.table.ExchangeRates[currency]
	if !ok {
		return 0, false
	}
	return amount * rate, true
}

// Resolve prices and scales a selection. Capacity and price scale linearly
// with the replica count. An unknown class, a capacity the class does not
// offer, or an unconvertible currency reports ok=false.
func (h *HardwareCatalog) Resolve(sel contracts.HardwareSelection) (contracts.ResolvedHardware, bool) {
	profile, ok := h.Profile(sel.Class)
	if !ok {
		return contracts.ResolvedHardware{}, false
	}

	replicas := sel.Replicas
	if replicas < 1 {
		replicas = 1
	}

	unitMemory := profile.MemoryGB
	unitPrice := profile.PriceUSD
	name := profile.Name

	if profile.Configurable() {
		cfg, found := findConfig(profile.Configs, sel.MemoryGB)
		if !found {
			return contracts.ResolvedHardware{}, false
		}
		price, converted := h.ToUSD(cfg.Price, cfg.Currency)
		if !converted {
			return contracts.ResolvedHardware{}, false
		}
		unitMemory = cfg.MemoryGB
		unitPrice = price
		name = fmt.Sprintf("%s (%gGB)", profile.Name, cfg.MemoryGB)
	}

	if replicas > 1 {
		name = fmt.Sprintf("%d× %s", replicas, name)
	}

	return contracts.ResolvedHardware{
		Class:        profile.Class,
		Name:         name,
		Replicas:     replicas,
		UnitMemoryGB: unitMemory,
		MemoryGB:     unitMemory * float64(replicas),
		Bandwidth:    profile.Bandwidth,
		UnitPriceUSD: unitPrice,
		PriceUSD:     unitPrice * float64(replicas),
	}, true
}

func findConfig(configs []contracts.HardwareConfig, memoryGB float64) (contracts.HardwareConfig, bool) {
	for _, c := range configs {
		if c.MemoryGB == memoryGB {
			return c, true
		}
	}
	return contracts.HardwareConfig{}, false
}

// Selections lists every purchasable selection at the given replica count:
// one per capacity for configurable classes, one for fixed classes.
func (h *HardwareCatalog) Selections(replicas int) []contracts.HardwareSelection {
	var result []contracts.HardwareSelection
	for _, p := range h.table.Profiles {
		if !p.Configurable() {
			result = append(result, contracts.HardwareSelection{Class: p.Class, MemoryGB: p.MemoryGB, Replicas: replicas})
			continue
		}
		for _, c := range p.Configs {
			result = append(result, contracts.HardwareSelection{Class: p.Class, MemoryGB: c.MemoryGB, Replicas: replicas})
		}
	}
	return result
}
