package cost

import (
	"github.com/hwpayoff/runtime/contracts"
)

// coverageCounter implements the full-coverage rule: it counts, per provider,
// how many distinct required keys (model ids or tiers) the provider prices,
// and reports a provider as eligible only when that count equals the number
// of distinct keys the workload requires.
//
// Providers are remembered in first-seen order so results are deterministic.
type coverageCounter[K comparable] struct {
	required map[K]struct{}
	served   map[contracts.ProviderName]map[K]struct{}
	order    []contracts.ProviderName
}

func newCoverageCounter[K comparable](required []K) *coverageCounter[K] {
	c := &coverageCounter[K]{
		required: make(map[K]struct{}, len(required)),
		served:   make(map[contracts.ProviderName]map[K]struct{}),
	}
	for _, k := range required {
		c.required[k] = struct{}{}
	}
	return c
}

// Add records that provider prices key. Keys outside the required set and
// repeated (provider, key) pairs are ignored.
func (c *coverageCounter[K]) Add(provider contracts.ProviderName, key K) {
	if _, ok := c.required[key]; !ok {
		return
	}
	keys, seen := c.served[provider]
	if !seen {
		keys = make(map[K]struct{})
		c.served[provider] = keys
		c.order = append(c.order, provider)
	}
	keys[key] = struct{}{}
}

// Count returns how many distinct required keys provider prices.
func (c *coverageCounter[K]) Count(provider contracts.ProviderName) int {
	return len(c.served[provider])
}

// Required returns the number of distinct required keys.
func (c *coverageCounter[K]) Required() int {
	return len(c.required)
}

// Eligible returns, in first-seen order, the providers pricing every
// required key. An empty requirement makes no provider eligible.
func (c *coverageCounter[K]) Eligible() []contracts.ProviderName {
	if len(c.required) == 0 {
		return nil
	}
	var result []contracts.ProviderName
	for _, p := range c.order {
		if c.Count(p) == len(c.required) {
			result = append(result, p)
		}
	}
	return result
}
