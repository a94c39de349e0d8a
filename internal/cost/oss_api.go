package cost

import (
	"sort"

	"github.com/hwpayoff/runtime/contracts"
)

// CompareOSSAPI prices the workload on every OSS API provider that serves all
// of its distinct models, cheapest first.
//
// Each model's daily tokens come from its local throughput (per-class tok/s
// times quantity times replicas) over dailyHours, taken from throughput.
// A provider's reported rates are averages weighted by those token volumes.
// A provider listed twice for one model is billed once, at its cheaper offer.
func CompareOSSAPI(prices contracts.APIPriceTable, throughput contracts.Throughput, hardwarePrice, inputShare float64) []contracts.APIResult {
	share := inputShareOrDefault(inputShare)

	required := make([]contracts.ModelID, 0, len(throughput.Entries))
	for _, e := range throughput.Entries {
		required = append(required, e.ModelID)
	}
	coverage := newCoverageCounter(required)
	details := make(map[contracts.ProviderName][]contracts.APIModelDetail)

	for _, e := range throughput.Entries {
		for _, offer := range cheapestOffers(prices[e.ModelID], share) {
			coverage.Add(offer.Name, e.ModelID)

			blended := BlendedRate(offer.InputPer1M, offer.OutputPer1M, share)
			details[offer.Name] = append(details[offer.Name], contracts.APIModelDetail{
				ModelID:      e.ModelID,
				ModelName:    e.Name,
				Quantity:     e.Quantity,
				TokensPerDay: e.TokensPerDay,
				InputPer1M:   offer.InputPer1M,
				OutputPer1M:  offer.OutputPer1M,
				BlendedPer1M: blended,
				DailyCost:    APIDailyCost(e.TokensPerDay, blended),
			})
		}
	}

	eligible := coverage.Eligible()
	results := make([]contracts.APIResult, 0, len(eligible))
	for _, name := range eligible {
		d := details[name]

		var daily float64
		rates := make([]weightedRate, 0, len(d))
		for _, detail := range d {
			daily += detail.DailyCost
			rates = append(rates, weightedRate{
				tokens: detail.TokensPerDay,
				input:  detail.InputPer1M,
				output: detail.OutputPer1M,
			})
		}
		input, output := weightedRates(rates)

		results = append(results, contracts.APIResult{
			Provider:     name,
			InputPer1M:   input,
			OutputPer1M:  output,
			BlendedPer1M: BlendedRate(input, output, share),
			Details:      d,
			Payoff:       NewPayoff(hardwarePrice, daily),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DailyCost < results[j].DailyCost
	})
	return results
}

// cheapestOffers keeps one offer per provider, the lowest blended rate,
// in first-listed order.
func cheapestOffers(offers []contracts.APIOffer, share float64) []contracts.APIOffer {
	index := make(map[contracts.ProviderName]int, len(offers))
	result := make([]contracts.APIOffer, 0, len(offers))
	for _, o := range offers {
		i, seen := index[o.Name]
		if !seen {
			index[o.Name] = len(result)
			result = append(result, o)
			continue
		}
		current := result[i]
		if BlendedRate(o.InputPer1M, o.OutputPer1M, share) < BlendedRate(current.InputPer1M, current.OutputPer1M, share) {
			result[i] = o
		}
	}
	return result
}

// weightedRate is one priced token volume.
type weightedRate struct {
	tokens float64
	input  float64
	output float64
	tps    float64
}

// weightedRates averages input and output rates weighted by token volume.
// With no volume at all the first rate is reported as is.
func weightedRates(rates []weightedRate) (input, output float64) {
	if len(rates) == 0 {
		return 0, 0
	}
	var total, in, out float64
	for _, r := range rates {
		total += r.tokens
		in += r.input * r.tokens
		out += r.output * r.tokens
	}
	if total <= 0 {
		return rates[0].input, rates[0].output
	}
	return in / total, out / total
}

// weightedTPS averages throughput weighted by token volume, with the same
// fallback as weightedRates.
func weightedTPS(rates []weightedRate) float64 {
	if len(rates) == 0 {
		return 0
	}
	var total, tps float64
	for _, r := range rates {
		total += r.tokens
		tps += r.tps * r.tokens
	}
	if total <= 0 {
		return rates[0].tps
	}
	return tps / total
}
