package cost

import (
	"github.com/hwpayoff/runtime/contracts"
)

type modelKey struct {
	developer contracts.DeveloperID
	model     contracts.ModelID
}

// modelCatalog implements contracts.ModelCatalog.
// It is built once and never mutated, so it needs no locking.
type modelCatalog struct {
	developers []contracts.Developer
	byDev      map[contracts.DeveloperID]int
	byKey      map[modelKey]contracts.ModelSpec
}

// NewModelCatalog creates a ModelCatalog from developers in display order.
// A repeated developer or (developer, model) key keeps its first occurrence.
func NewModelCatalog(developers []contracts.Developer) contracts.ModelCatalog {
	c := &modelCatalog{
		developers: make([]contracts.Developer, 0, len(developers)),
		byDev:      make(map[contracts.DeveloperID]int, len(developers)),
		byKey:      make(map[modelKey]contracts.ModelSpec),
	}

	for _, dev := range developers {
		if _, dup := c.byDev[dev.ID]; dup {
			continue
		}

		models := make([]contracts.ModelSpec, 0, len(dev.Models))
		for _, m := range dev.Models {
			key := modelKey{developer: dev.ID, model: m.ID}
			if _, dup := c.byKey[key]; dup {
				continue
			}
			c.byKey[key] = m
			models = append(models, m)
		}

		c.byDev[dev.ID] = len(c.developers)
		c.developers = append(c.developers, contracts.Developer{
			ID:     dev.ID,
			Name:   dev.Name,
			Models: models,
		})
	}

	return c
}

// Developers returns developer summaries in catalog order.
func (c *modelCatalog) Developers() []contracts.DeveloperSummary {
	result := make([]contracts.DeveloperSummary, 0, len(c.developers))
	for _, dev := range c.developers {
		result = append(result, contracts.DeveloperSummary{
			ID:         dev.ID,
			Name:       dev.Name,
			ModelCount: len(dev.Models),
		})
	}
	return result
}

// Models returns a copy of the developer's models, or an empty list if unknown.
func (c *modelCatalog) Models(developer contracts.DeveloperID) []contracts.ModelSpec {
	idx, ok := c.byDev[developer]
	if !ok {
		return []contracts.ModelSpec{}
	}
	models := c.developers[idx].Models
	result := make([]contracts.ModelSpec, len(models))
	copy(result, models)
	return result
}

// Find returns the model for (developer, model).
func (c *modelCatalog) Find(developer contracts.DeveloperID, model contracts.ModelID) (contracts.ModelSpec, bool) {
	m, ok := c.byKey[modelKey{developer: developer, model: model}]
	return m, ok
}

// All returns every model with its developer identity, in catalog order.
func (c *modelCatalog) All() []contracts.CatalogModel {
	var result []contracts.CatalogModel
	for _, dev := range c.developers {
		for _, m := range dev.Models {
			result = append(result, contracts.CatalogModel{
				DeveloperID:   dev.ID,
				DeveloperName: dev.Name,
				ModelSpec:     m,
			})
		}
	}
	return result
}

// resolvedEntry pairs a workload entry with its catalog model.
type resolvedEntry struct {
	entry contracts.WorkloadEntry
	model contracts.ModelSpec
}

// resolveWorkload looks up every workload entry, dropping unknown ones.
func resolveWorkload(catalog contracts.ModelCatalog, workload []contracts.WorkloadEntry) []resolvedEntry {
	result := make([]resolvedEntry, 0, len(workload))
	for _, entry := range workload {
		model, ok := catalog.Find(entry.DeveloperID, entry.ModelID)
		if !ok {
			continue
		}
		result = append(result, resolvedEntry{entry: entry, model: model})
	}
	return result
}
