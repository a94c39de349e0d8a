package contracts

// Payoff is the cost/payoff block shared by every comparator result.
// PayoffDays and PayoffMonths are +Inf when DailyCost is not positive.
type Payoff struct {
	DailyCost    float64 `json:"dailyCost"`
	MonthlyCost  float64 `json:"monthlyCost"`
	PayoffDays   float64 `json:"payoffDays"`
	PayoffMonths float64 `json:"payoffMonths"`
}

// MemoryBreakdown decomposes a memory footprint. It is an approximation and
// does not necessarily add up to the reported total; see MemoryFootprint.
type MemoryBreakdown struct {
	Weights     float64 `json:"weights"`
	KVCache     float64 `json:"kvCache"`
	Gradients   float64 `json:"gradients"`
	Optimizer   float64 `json:"optimizer"`
	Activations float64 `json:"activations"`
}

// Sum returns the total of every breakdown component.
func (b MemoryBreakdown) Sum() float64 {
	return b.Weights + b.KVCache + b.Gradients + b.Optimizer + b.Activations
}

// MemoryFootprint is the memory needed to run or train a model under a mode.
// Unaccounted is TotalRAM minus the breakdown sum and may be negative.
type MemoryFootprint struct {
	TotalRAM    float64         `json:"totalRAM"`
	Breakdown   MemoryBreakdown `json:"breakdown"`
	Unaccounted float64         `json:"unaccounted"`
	Mode        string          `json:"mode"`
	Description string          `json:"description"`
}

// EntryMemory is the memory footprint of one workload entry.
type EntryMemory struct {
	ModelID      ModelID         `json:"modelId"`
	Name         string          `json:"name"`
	RAM          float64         `json:"ram"` // per copy, inference
	Quantity     int             `json:"quantity"`
	BaseSubtotal float64         `json:"baseSubtotal"`
	Subtotal     float64         `json:"subtotal"`
	Breakdown    MemoryBreakdown `json:"trainingBreakdown"`
}

// WorkloadMemoryInfo is the memory footprint of a whole workload.
type WorkloadMemoryInfo struct {
	TotalRAM            float64       `json:"totalRAM"`
	Entries             []EntryMemory `json:"breakdown"`
	TrainingMode        string        `json:"trainingMode"`
	TrainingDescription string        `json:"trainingDescription"`
	IsTraining          bool          `json:"isTraining"`
}

// Feasibility reports whether a workload fits on a hardware selection.
type Feasibility struct {
	CanRun             bool               `json:"canRun"`
	TotalRAM           float64            `json:"totalRAM"`
	AvailableRAM       float64            `json:"availableRAM"`
	Deficit            float64            `json:"deficit"`
	IncompatibleModels []string           `json:"incompatibleModels"`
	Memory             WorkloadMemoryInfo `json:"memory"`
}

// WorkloadSummary is the local throughput of one workload entry.
type WorkloadSummary struct {
	ModelID      ModelID `json:"modelId"`
	Name         string  `json:"name"`
	Params       string  `json:"params"`
	Tier         Tier    `json:"tier"`
	Quantity     int     `json:"quantity"`
	TPS          float64 `json:"tps"`
	RAM          float64 `json:"ram"`
	TokensPerDay float64 `json:"tokensPerDay"`
}

// Throughput is the aggregated local throughput of a workload.
type Throughput struct {
	LocalTPS     float64           `json:"localTPS"`
	TokensPerDay float64           `json:"tokensPerDay"`
	Entries      []WorkloadSummary `json:"entries"`
}

// CloudResult compares the hardware against renting cloud GPUs.
type CloudResult struct {
	Provider         ProviderName `json:"provider"`
	GPUs             int          `json:"gpus"`
	CloudTPS         float64      `json:"cloudTPS"`
	HourlyRatePerGPU float64      `json:"hourlyRatePerGPU"`
	HourlyRateTotal  float64      `json:"hourlyRateTotal"`
	HoursNeeded      float64      `json:"cloudHoursNeeded"`
	SpeedRatio       float64      `json:"speedRatio"`
	Payoff
}

// APIModelDetail is one model's share of an OSS API provider's cost.
type APIModelDetail struct {
	ModelID      ModelID `json:"modelId"`
	ModelName    string  `json:"modelName"`
	Quantity     int     `json:"quantity"`
	TokensPerDay float64 `json:"tokensPerDay"`
	InputPer1M   float64 `json:"inputPer1M"`
	OutputPer1M  float64 `json:"outputPer1M"`
	BlendedPer1M float64 `json:"blendedPer1M"`
	DailyCost    float64 `json:"dailyCost"`
}

// APIResult compares the hardware against paying an OSS API provider per token.
// Rates are token-volume-weighted averages across the provider's models.
type APIResult struct {
	Provider     ProviderName     `json:"name"`
	InputPer1M   float64          `json:"inputPer1M"`
	OutputPer1M  float64          `json:"outputPer1M"`
	BlendedPer1M float64          `json:"blendedPer1M"`
	Details      []APIModelDetail `json:"details"`
	Payoff
}

// TierDetail is one tier's share of a proprietary provider's cost.
type TierDetail struct {
	Tier          Tier    `json:"tier"`
	ModelName     string  `json:"modelName"`
	TokensPerDay  float64 `json:"tokensPerDay"`
	InputPer1M    float64 `json:"inputPer1M"`
	OutputPer1M   float64 `json:"outputPer1M"`
	BlendedPer1M  float64 `json:"blendedPer1M"`
	TokPerSec     float64 `json:"tokPerSec"`
	ContextWindow int     `json:"contextWindow,omitempty"`
	DailyCost     float64 `json:"dailyCost"`
}

// ProprietaryResult compares the hardware against a proprietary API provider
// covering every tier of the workload. Rates and TokPerSec are
// token-volume-weighted across tiers.
type ProprietaryResult struct {
	Provider     ProviderName `json:"provider"`
	InputPer1M   float64      `json:"inputPer1M"`
	OutputPer1M  float64      `json:"outputPer1M"`
	BlendedPer1M float64      `json:"blendedPer1M"`
	TokPerSec    float64      `json:"tokPerSec"`
	HoursNeeded  float64      `json:"hoursNeeded"`
	SpeedRatio   float64      `json:"speedRatio"`
	Tiers        []TierDetail `json:"tiers"`
	Payoff
}

// AlternativeKind names the family of the cheapest alternative.
type AlternativeKind string

const (
	AlternativeGPU AlternativeKind = "GPU"
	AlternativeAPI AlternativeKind = "API"
)

// BestAlternative is the cheapest non-local option and the hardware payoff
// against it.
type BestAlternative struct {
	Kind     AlternativeKind `json:"type"`
	Provider ProviderName    `json:"name"`
	Payoff
}
