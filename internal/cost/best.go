package cost

import (
	"github.com/hwpayoff/runtime/contracts"
)

// CheapestAlternative picks the cheaper of the cheapest cloud GPU option and
// the cheapest OSS API option, and prices the hardware payoff against it.
// Both lists must be sorted cheapest first. Ties go to the GPU option.
// It returns nil when both lists are empty.
func CheapestAlternative(cloud []contracts.CloudResult, api []contracts.APIResult, hardwarePrice float64) *contracts.BestAlternative {
	var best *contracts.BestAlternative
	if len(cloud) > 0 {
		best = &contracts.BestAlternative{
			Kind:     contracts.AlternativeGPU,
			Provider: cloud[0].Provider,
			Payoff:   NewPayoff(hardwarePrice, cloud[0].DailyCost),
		}
	}
	if len(api) > 0 && (best == nil || api[0].DailyCost < best.DailyCost) {
		best = &contracts.BestAlternative{
			Kind:     contracts.AlternativeAPI,
			Provider: api[0].Provider,
			Payoff:   NewPayoff(hardwarePrice, api[0].DailyCost),
		}
	}
	return best
}
