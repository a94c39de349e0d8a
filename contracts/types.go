// Package contracts defines the core types and interfaces for the payoff engine.
package contracts

// DeveloperID identifies a model developer (e.g., "meta", "qwen").
type DeveloperID string

// ModelID identifies an open-weight model within the catalog (e.g., "llama-3.1-70b").
type ModelID string

// ProviderName identifies a cloud or API provider (e.g., "RunPod", "Together").
type ProviderName string

// TrainingModeID identifies an entry of the training mode table.
type TrainingModeID string

// Currency represents a currency code (e.g., "USD").
type Currency string

const (
	// USD is the currency every cost figure is reported in.
	USD Currency = "USD"

	// DaysPerMonth converts daily figures into monthly ones.
	DaysPerMonth = 30

	// SecondsPerHour converts tokens/sec into tokens/hour.
	SecondsPerHour = 3600

	// TokensPerMillion is the unit API prices are quoted in.
	TokensPerMillion = 1_000_000

	// DefaultInputTokenShare assumes a 4:1 input:output token ratio.
	DefaultInputTokenShare = 0.8
)
