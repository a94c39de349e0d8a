package contracts

// ComparisonOptions tunes the comparators.
type ComparisonOptions struct {
	// InputTokenShare is the fraction of tokens billed at the input rate when
	// blending input and output prices. Nil selects the engine default; zero
	// bills every token at the output rate.
	InputTokenShare *float64 `json:"inputTokenShare,omitempty" yaml:"inputTokenShare,omitempty"`
}

// DefaultComparisonOptions returns the options used when the caller sets none.
func DefaultComparisonOptions() ComparisonOptions {
	return ComparisonOptions{InputTokenShare: Share(DefaultInputTokenShare)}
}

// Share returns a pointer to an input token share.
func Share(v float64) *float64 {
	return &v
}

// ComparisonInput is the immutable command object describing one UI state.
// It is replaced wholesale on every change; the engine never mutates it.
type ComparisonInput struct {
	Workload     []WorkloadEntry   `json:"workload"`
	DailyHours   float64           `json:"dailyHours"`
	Hardware     HardwareSelection `json:"hardware"`
	TrainingMode TrainingModeID    `json:"trainingMode"`
	Options      ComparisonOptions `json:"options"`
}

// ComparisonBundle is everything derived from one ComparisonInput.
//
// Callers must check HardwareFound and CanRun before trusting the cost
// figures: an unresolved hardware selection or an infeasible workload yields
// empty provider lists and zero throughput.
type ComparisonBundle struct {
	HardwareFound bool             `json:"hardwareFound"`
	CanRun        bool             `json:"canRun"`
	Hardware      ResolvedHardware `json:"hardware"`
	Memory        Feasibility      `json:"memoryInfo"`

	LocalTPS        float64           `json:"localTPS"`
	TokensPerDay    float64           `json:"tokensPerDay"`
	WorkloadSummary []WorkloadSummary `json:"workloadSummary"`

	Cloud       []CloudResult       `json:"providers"`
	OSSAPI      []APIResult         `json:"apiProviders"`
	Proprietary []ProprietaryResult `json:"proprietaryAlternatives"`

	Best *BestAlternative `json:"bestAlternative,omitempty"`
}

// Comparator computes a ComparisonBundle from a ComparisonInput.
// Implementations are pure: identical inputs yield identical bundles.
type Comparator interface {
	ComputeWorkloadComparison(input ComparisonInput) ComparisonBundle
}
