package contracts

// ModelSpec is a single catalog entry describing an open-weight model and how
// fast it runs on each hardware class and in the cloud.
type ModelSpec struct {
	ID           ModelID `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Params       string  `json:"params,omitempty" yaml:"params,omitempty"`             // display label, e.g. "70B"
	ParamCount   float64 `json:"paramCount,omitempty" yaml:"paramCount,omitempty"`     // billions
	ActiveParams string  `json:"activeParams,omitempty" yaml:"activeParams,omitempty"` // MoE active parameters
	Quantization string  `json:"quantization,omitempty" yaml:"quantization,omitempty"`
	Notes        string  `json:"notes,omitempty" yaml:"notes,omitempty"`

	MinRAM               float64 `json:"minRAM" yaml:"minRAM"` // GB for inference
	LocalTokPerSec       float64 `json:"localTokPerSec" yaml:"localTokPerSec"`
	AltHardwareTokPerSec float64 `json:"altHardwareTokPerSec" yaml:"altHardwareTokPerSec"`
	CloudTokPerSec       float64 `json:"cloudTokPerSec" yaml:"cloudTokPerSec"`
	CloudGPUs            float64 `json:"cloudGPUs" yaml:"cloudGPUs"`
	Tier                 Tier    `json:"tier" yaml:"tier"`
}

// TokPerSec returns the declared throughput of the model on a hardware class.
// Unknown classes report zero.
func (m ModelSpec) TokPerSec(class HardwareClass) float64 {
	switch class {
	case HardwareMac:
		return m.LocalTokPerSec
	case HardwareSpark:
		return m.AltHardwareTokPerSec
	default:
		return 0
	}
}

// Developer groups the models published by one developer.
type Developer struct {
	ID     DeveloperID `json:"id" yaml:"id"`
	Name   string      `json:"name" yaml:"name"`
	Models []ModelSpec `json:"models" yaml:"models"`
}

// DeveloperSummary is the listing view of a developer.
type DeveloperSummary struct {
	ID         DeveloperID `json:"id"`
	Name       string      `json:"name"`
	ModelCount int         `json:"modelCount"`
}

// CatalogModel is a model flattened together with its developer identity.
type CatalogModel struct {
	DeveloperID   DeveloperID `json:"developerId"`
	DeveloperName string      `json:"developerName"`
	ModelSpec
}

// ModelCatalog resolves (developer, model) keys against the static catalog.
// Lookups never fail loudly: unknown keys resolve to empty lists or ok=false.
type ModelCatalog interface {
	// Developers returns developer summaries in catalog order.
	Developers() []DeveloperSummary

	// Models returns the models of a developer, or an empty list if unknown.
	Models(developer DeveloperID) []ModelSpec

	// Find returns the model for (developer, model), ok=false when absent.
	Find(developer DeveloperID, model ModelID) (ModelSpec, bool)

	// All returns every model flattened with its developer, in catalog order.
	All() []CatalogModel
}
