package contracts

// WorkloadEntry describes one kind of model instance to run.
// Quantity is the number of simultaneous copies and must be >= 1.
type WorkloadEntry struct {
	DeveloperID DeveloperID `json:"developerId" yaml:"developerId"`
	ModelID     ModelID     `json:"modelId" yaml:"modelId"`
	Quantity    int         `json:"quantity" yaml:"quantity"`
}

// HardwareConfig is one purchasable capacity of a configurable hardware class.
type HardwareConfig struct {
	MemoryGB float64  `json:"memoryGB" yaml:"memoryGB"`
	Price    float64  `json:"price" yaml:"price"`
	Currency Currency `json:"currency,omitempty" yaml:"currency,omitempty"` // empty means USD
}

// HardwareProfile describes a local hardware class. Fixed-capacity classes
// set MemoryGB and PriceUSD; configurable classes list Configs instead.
type HardwareProfile struct {
	Class     HardwareClass    `json:"class" yaml:"class"`
	Name      string           `json:"name" yaml:"name"`
	Bandwidth float64          `json:"bandwidth" yaml:"bandwidth"` // GB/s
	MemoryGB  float64          `json:"memoryGB,omitempty" yaml:"memoryGB,omitempty"`
	PriceUSD  float64          `json:"priceUSD,omitempty" yaml:"priceUSD,omitempty"`
	Configs   []HardwareConfig `json:"configs,omitempty" yaml:"configs,omitempty"`
}

// Configurable reports whether the profile offers a discrete set of capacities.
func (p HardwareProfile) Configurable() bool {
	return len(p.Configs) > 0
}

// HardwareTable is the static hardware input. ExchangeRates converts a
// foreign currency into USD (USD per unit).
type HardwareTable struct {
	Profiles      []HardwareProfile    `json:"profiles" yaml:"profiles"`
	ExchangeRates map[Currency]float64 `json:"exchangeRates,omitempty" yaml:"exchangeRates,omitempty"`
}

// HardwareSelection is the caller's hardware choice. MemoryGB picks the
// capacity of a configurable class and is ignored for fixed classes.
// Replicas is the number of parallel units; zero is treated as one.
type HardwareSelection struct {
	Class    HardwareClass `json:"class" yaml:"class"`
	MemoryGB float64       `json:"memoryGB,omitempty" yaml:"memoryGB,omitempty"`
	Replicas int           `json:"replicas,omitempty" yaml:"replicas,omitempty"`
}

// ResolvedHardware is a selection priced and scaled by its replica count.
// Capacity and price scale linearly with Replicas.
type ResolvedHardware struct {
	Class        HardwareClass `json:"class"`
	Name         string        `json:"name"`
	Replicas     int           `json:"replicas"`
	UnitMemoryGB float64       `json:"unitMemoryGB"`
	MemoryGB     float64       `json:"memoryGB"`
	Bandwidth    float64       `json:"bandwidth"`
	UnitPriceUSD float64       `json:"unitPriceUSD"`
	PriceUSD     float64       `json:"priceUSD"`
}

// TrainingMode is a row of the training mode table. The ratios drive the
// informational memory breakdown:
//
//	gradients   = weights * GradientRatio
//	optimizer   = gradients * OptimizerRatio
//	activations = weights * ActivationRatio
type TrainingMode struct {
	ID              TrainingModeID   `json:"id" yaml:"id"`
	Name            string           `json:"name" yaml:"name"`
	Category        TrainingCategory `json:"category" yaml:"category"`
	Multiplier      float64          `json:"multiplier" yaml:"multiplier"`
	Description     string           `json:"description" yaml:"description"`
	GradientRatio   float64          `json:"gradientRatio" yaml:"gradientRatio"`
	OptimizerRatio  float64          `json:"optimizerRatio" yaml:"optimizerRatio"`
	ActivationRatio float64          `json:"activationRatio" yaml:"activationRatio"`
}

// IsTraining reports whether the mode allocates training state.
func (m TrainingMode) IsTraining() bool {
	return m.Category != CategoryInference
}

// CloudProvider prices GPU rental by the GPU-hour.
type CloudProvider struct {
	Name           ProviderName `json:"name" yaml:"name"`
	RatePerGPUHour float64      `json:"ratePerGPUHour" yaml:"ratePerGPUHour"`
	URL            string       `json:"url,omitempty" yaml:"url,omitempty"`
}

// APIOffer is one provider's per-token price for an open-weight model.
type APIOffer struct {
	Name        ProviderName `json:"name" yaml:"name"`
	InputPer1M  float64      `json:"inputPer1M" yaml:"inputPer1M"`
	OutputPer1M float64      `json:"outputPer1M" yaml:"outputPer1M"`
}

// APIPriceTable maps an open-weight model id to the offers serving it.
type APIPriceTable map[ModelID][]APIOffer

// ProprietaryModel is a commercial API model listed under a capability tier.
type ProprietaryModel struct {
	Name          string       `json:"name" yaml:"name"`
	Provider      ProviderName `json:"provider" yaml:"provider"`
	InputPer1M    float64      `json:"inputPer1M" yaml:"inputPer1M"`
	OutputPer1M   float64      `json:"outputPer1M" yaml:"outputPer1M"`
	TokPerSec     float64      `json:"tokPerSec,omitempty" yaml:"tokPerSec,omitempty"`
	ContextWindow int          `json:"contextWindow,omitempty" yaml:"contextWindow,omitempty"`
}

// ProprietaryTable maps a tier to the commercial models comparable to it.
type ProprietaryTable map[Tier][]ProprietaryModel

// PriceTables bundles every provider price input.
type PriceTables struct {
	Cloud       []CloudProvider   `json:"cloud" yaml:"cloud"`
	OSSAPI      APIPriceTable     `json:"ossApi" yaml:"ossApi"`
	Proprietary ProprietaryTable  `json:"proprietary" yaml:"proprietary"`
	Sources     map[string]string `json:"sources,omitempty" yaml:"sources,omitempty"`
}
