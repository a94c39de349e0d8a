package cost

import (
	"github.com/hwpayoff/runtime/contracts"
)

// AggregateThroughput combines the local throughput of every workload entry
// on a hardware class. Each entry runs at the model's per-class tok/s times
// its quantity, and the whole workload scales linearly with replicas:
//
//	LocalTPS     = sum(tokPerSec(class) * quantity) * replicas
//	TokensPerDay = LocalTPS * 3600 * dailyHours
//
// Per-entry figures include the replica factor, so the entry tokens/day add
// up to the workload total. Unknown models contribute nothing.
func AggregateThroughput(workload []contracts.WorkloadEntry, catalog contracts.ModelCatalog, class contracts.HardwareClass, replicas int, dailyHours float64) contracts.Throughput {
	if replicas < 1 {
		replicas = 1
	}

	out := contracts.Throughput{Entries: []contracts.WorkloadSummary{}}
	var combined float64
	for _, r := range resolveWorkload(catalog, workload) {
		entryTPS := r.model.TokPerSec(class) * float64(r.entry.Quantity)
		combined += entryTPS
		tps := entryTPS * float64(replicas)
		out.Entries = append(out.Entries, contracts.WorkloadSummary{
			ModelID:      r.entry.ModelID,
			Name:         r.model.Name,
			Params:       r.model.Params,
			Tier:         r.model.Tier,
			Quantity:     r.entry.Quantity,
			TPS:          tps,
			RAM:          r.model.MinRAM * float64(r.entry.Quantity),
			TokensPerDay: TokensPerDay(tps, dailyHours),
		})
	}
	out.LocalTPS = combined * float64(replicas)
	out.TokensPerDay = TokensPerDay(out.LocalTPS, dailyHours)

	return out
}
