package contracts

// Tier is a capability bucket mapping an open-weight model to comparable
// proprietary API models.
type Tier string

const (
	TierSmall    Tier = "small"
	TierMedium   Tier = "medium"
	TierLarge    Tier = "large"
	TierFrontier Tier = "frontier"
)

// Tiers returns the known tiers in ascending capability order.
func Tiers() []Tier {
	return []Tier{TierSmall, TierMedium, TierLarge, TierFrontier}
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierSmall, TierMedium, TierLarge, TierFrontier:
		return true
	default:
		return false
	}
}

func (t Tier) String() string {
	return string(t)
}

// HardwareClass identifies one of the local hardware families.
type HardwareClass string

const (
	// HardwareMac is the configurable-memory class (Mac Studio); its models
	// report throughput in ModelSpec.LocalTokPerSec.
	HardwareMac HardwareClass = "mac"
	// HardwareSpark is the fixed-memory class (DGX Spark); its models report
	// throughput in ModelSpec.AltHardwareTokPerSec.
	HardwareSpark HardwareClass = "spark"
)

// Valid reports whether c is one of the known hardware classes.
func (c HardwareClass) Valid() bool {
	switch c {
	case HardwareMac, HardwareSpark:
		return true
	default:
		return false
	}
}

func (c HardwareClass) String() string {
	return string(c)
}

// Training mode identifiers of the default table.
const (
	ModeInference TrainingModeID = "inference"
	ModeGRPOFull  TrainingModeID = "grpoFull"
	ModeGRPOLoRA  TrainingModeID = "grpoLora"
	ModeGRPOQLoRA TrainingModeID = "grpoQlora"
)

// TrainingCategory groups training modes.
type TrainingCategory string

const (
	CategoryInference   TrainingCategory = "inference"
	CategoryFullTune    TrainingCategory = "full-finetune"
	CategoryAdapterTune TrainingCategory = "adapter-finetune"
)
