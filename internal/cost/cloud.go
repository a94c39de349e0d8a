package cost

import (
	"math"
	"sort"

	"github.com/hwpayoff/runtime/contracts"
)

// CloudDemand is the cloud GPU footprint of a workload.
type CloudDemand struct {
	// RequiredGPUs is ceil(sum(cloudGPUs * quantity)); GPUs rent whole.
	RequiredGPUs int
	// WeightedTPS is sum(cloudTokPerSec * quantity).
	WeightedTPS float64
}

// CloudDemandOf sums the cloud GPU needs of the workload's known models.
func CloudDemandOf(workload []contracts.WorkloadEntry, catalog contracts.ModelCatalog) CloudDemand {
	var gpus, tps float64
	for _, r := range resolveWorkload(catalog, workload) {
		q := float64(r.entry.Quantity)
		gpus += r.model.CloudGPUs * q
		tps += r.model.CloudTokPerSec * q
	}
	return CloudDemand{
		RequiredGPUs: int(math.Ceil(gpus)),
		WeightedTPS:  tps,
	}
}

// CompareCloud prices the workload's daily tokens on every cloud provider and
// returns the results cheapest first.
func CompareCloud(providers []contracts.CloudProvider, demand CloudDemand, tokensPerDay, localTPS, hardwarePrice float64) []contracts.CloudResult {
	hours := HoursNeeded(tokensPerDay, demand.WeightedTPS)
	speed := SpeedRatio(demand.WeightedTPS, localTPS)

	results := make([]contracts.CloudResult, 0, len(providers))
	for _, p := range providers {
		hourly := p.RatePerGPUHour * float64(demand.RequiredGPUs)
		daily := HourlyDailyCost(hours, hourly)

		results = append(results, contracts.CloudResult{
			Provider:         p.Name,
			GPUs:             demand.RequiredGPUs,
			CloudTPS:         demand.WeightedTPS,
			HourlyRatePerGPU: p.RatePerGPUHour,
			HourlyRateTotal:  hourly,
			HoursNeeded:      hours,
			SpeedRatio:       speed,
			Payoff:           NewPayoff(hardwarePrice, daily),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DailyCost < results[j].DailyCost
	})
	return results
}
