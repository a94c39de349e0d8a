package cost

import (
	"sort"

	"github.com/hwpayoff/runtime/contracts"
)

// DefaultProprietaryTokPerSec is assumed for proprietary models that publish
// no throughput figure.
const DefaultProprietaryTokPerSec = 100

// tierVolume is the daily token volume of one tier of the workload.
type tierVolume struct {
	tier   contracts.Tier
	tokens float64
}

// tierVolumes buckets the workload's daily tokens by tier, in ascending
// capability order. Unknown tiers follow the known ones in first-seen order.
func tierVolumes(entries []contracts.WorkloadSummary) []tierVolume {
	index := make(map[contracts.Tier]int)
	var volumes []tierVolume
	for _, e := range entries {
		i, ok := index[e.Tier]
		if !ok {
			i = len(volumes)
			index[e.Tier] = i
			volumes = append(volumes, tierVolume{tier: e.Tier})
		}
		volumes[i].tokens += e.TokensPerDay
	}

	rank := func(t contracts.Tier) int {
		for i, known := range contracts.Tiers() {
			if t == known {
				return i
			}
		}
		return len(contracts.Tiers())
	}
	sort.SliceStable(volumes, func(i, j int) bool {
		return rank(volumes[i].tier) < rank(volumes[j].tier)
	})
	return volumes
}

// CompareProprietary prices the workload on every proprietary provider that
// lists a model in every tier the workload touches, cheapest first.
//
// Workload tokens are bucketed per tier and each bucket is billed at the
// provider's model for that tier. When a provider lists several models in one
// tier the cheapest blended rate is used, first listed on ties. Provider rates
// and tok/s are token-volume-weighted across tiers.
func CompareProprietary(table contracts.ProprietaryTable, throughput contracts.Throughput, hardwarePrice, inputShare float64) []contracts.ProprietaryResult {
	share := inputShareOrDefault(inputShare)
	volumes := tierVolumes(throughput.Entries)

	required := make([]contracts.Tier, 0, len(volumes))
	for _, v := range volumes {
		required = append(required, v.tier)
	}
	coverage := newCoverageCounter(required)
	details := make(map[contracts.ProviderName][]contracts.TierDetail)

	for _, v := range volumes {
		for _, m := range cheapestPerProvider(table[v.tier], share) {
			coverage.Add(m.Provider, v.tier)

			tps := m.TokPerSec
			if tps <= 0 {
				tps = DefaultProprietaryTokPerSec
			}
			blended := BlendedRate(m.InputPer1M, m.OutputPer1M, share)
			details[m.Provider] = append(details[m.Provider], contracts.TierDetail{
				Tier:          v.tier,
				ModelName:     m.Name,
				TokensPerDay:  v.tokens,
				InputPer1M:    m.InputPer1M,
				OutputPer1M:   m.OutputPer1M,
				BlendedPer1M:  blended,
				TokPerSec:     tps,
				ContextWindow: m.ContextWindow,
				DailyCost:     APIDailyCost(v.tokens, blended),
			})
		}
	}

	eligible := coverage.Eligible()
	results := make([]contracts.ProprietaryResult, 0, len(eligible))
	for _, name := range eligible {
		tiers := details[name]

		var daily float64
		rates := make([]weightedRate, 0, len(tiers))
		for _, t := range tiers {
			daily += t.DailyCost
			rates = append(rates, weightedRate{
				tokens: t.TokensPerDay,
				input:  t.InputPer1M,
				output: t.OutputPer1M,
				tps:    t.TokPerSec,
			})
		}
		input, output := weightedRates(rates)
		tps := weightedTPS(rates)

		results = append(results, contracts.ProprietaryResult{
			Provider:     name,
			InputPer1M:   input,
			OutputPer1M:  output,
			BlendedPer1M: BlendedRate(input, output, share),
			TokPerSec:    tps,
			HoursNeeded:  HoursNeeded(throughput.TokensPerDay, tps),
			SpeedRatio:   SpeedRatio(tps, throughput.LocalTPS),
			Tiers:        tiers,
			Payoff:       NewPayoff(hardwarePrice, daily),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DailyCost < results[j].DailyCost
	})
	return results
}

// cheapestPerProvider keeps one model per provider: the one with the lowest
// blended rate. Providers keep their first-listed order.
func cheapestPerProvider(models []contracts.ProprietaryModel, share float64) []contracts.ProprietaryModel {
	index := make(map[contracts.ProviderName]int)
	var result []contracts.ProprietaryModel
	for _, m := range models {
		i, seen := index[m.Provider]
		if !seen {
			index[m.Provider] = len(result)
			result = append(result, m)
			continue
		}
		current := result[i]
		if BlendedRate(m.InputPer1M, m.OutputPer1M, share) < BlendedRate(current.InputPer1M, current.OutputPer1M, share) {
			result[i] = m
		}
	}
	return result
}
