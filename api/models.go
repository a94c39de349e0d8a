// Package api provides the HTTP API layer for the payoff engine.
package api

import (
	"math"
	"strconv"

	"github.com/hwpayoff/runtime/contracts"
	"github.com/hwpayoff/runtime/internal/format"
)

// ============================================================================
// Request DTOs
// ============================================================================

// CompareRequest is the request body for POST /api/v1/comparisons.
type CompareRequest struct {
	Workload     []WorkloadEntryDTO `json:"workload"`
	DailyHours   *float64           `json:"dailyHours,omitempty"` // nil uses the server default
	Hardware     HardwareDTO        `json:"hardware"`
	TrainingMode string             `json:"trainingMode,omitempty"`

	// InputTokenShare is the fraction of tokens billed at the input rate.
	// Missing uses the server default.
	InputTokenShare *float64 `json:"inputTokenShare,omitempty"`
}

// SweepRequest is the request body for POST /api/v1/sweeps. An empty
// Hardware list sweeps every offered capacity with Replicas units each.
type SweepRequest struct {
	Workload        []WorkloadEntryDTO `json:"workload"`
	DailyHours      *float64           `json:"dailyHours,omitempty"`
	Hardware        []HardwareDTO      `json:"hardware,omitempty"`
	Replicas        int                `json:"replicas,omitempty"`
	TrainingMode    string             `json:"trainingMode,omitempty"`
	InputTokenShare *float64           `json:"inputTokenShare,omitempty"`
}

// WorkloadEntryDTO is one model instance kind in a request.
type WorkloadEntryDTO struct {
	DeveloperID string `json:"developerId"`
	ModelID     string `json:"modelId"`
	Quantity    int    `json:"quantity"`
}

// HardwareDTO selects local hardware.
type HardwareDTO struct {
	Class    string  `json:"class"`
	MemoryGB float64 `json:"memoryGB,omitempty"`
	Replicas int     `json:"replicas,omitempty"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// Figure is a float that encodes non-finite values as JSON null.
type Figure float64

// MarshalJSON implements json.Marshaler.
func (f Figure) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// PayoffDTO is the shared cost/payoff block of every result.
type PayoffDTO struct {
	DailyCost    Figure `json:"dailyCost"`
	MonthlyCost  Figure `json:"monthlyCost"`
	PayoffDays   Figure `json:"payoffDays"`
	PayoffMonths Figure `json:"payoffMonths"`
	PayoffLabel  string `json:"payoffLabel"`
}

// CloudResultDTO is one cloud GPU provider row.
type CloudResultDTO struct {
	Provider         string `json:"provider"`
	GPUs             int    `json:"gpus"`
	CloudTPS         Figure `json:"cloudTPS"`
	HourlyRatePerGPU Figure `json:"hourlyRatePerGPU"`
	HourlyRateTotal  Figure `json:"hourlyRateTotal"`
	HoursNeeded      Figure `json:"cloudHoursNeeded"`
	SpeedRatio       Figure `json:"speedRatio"`
	PayoffDTO
}

// APIResultDTO is one OSS API provider row.
type APIResultDTO struct {
	Provider     string                     `json:"name"`
	InputPer1M   Figure                     `json:"inputPer1M"`
	OutputPer1M  Figure                     `json:"outputPer1M"`
	BlendedPer1M Figure                     `json:"blendedPer1M"`
	Details      []contracts.APIModelDetail `json:"details"`
	PayoffDTO
}

// ProprietaryResultDTO is one proprietary provider row.
type ProprietaryResultDTO struct {
	Provider     string                 `json:"provider"`
	InputPer1M   Figure                 `json:"inputPer1M"`
	OutputPer1M  Figure                 `json:"outputPer1M"`
	BlendedPer1M Figure                 `json:"blendedPer1M"`
	TokPerSec    Figure                 `json:"tokPerSec"`
	HoursNeeded  Figure                 `json:"hoursNeeded"`
	SpeedRatio   Figure                 `json:"speedRatio"`
	Tiers        []contracts.TierDetail `json:"tiers"`
	PayoffDTO
}

// BestAlternativeDTO is the verdict block.
type BestAlternativeDTO struct {
	Kind     string `json:"type"`
	Provider string `json:"name"`
	PayoffDTO
}

// ComparisonResponse is the response body for comparison endpoints.
type ComparisonResponse struct {
	ID        string                    `json:"id"`
	CreatedAt int64                     `json:"created_at"`
	Input     contracts.ComparisonInput `json:"input"`

	HardwareFound bool                       `json:"hardwareFound"`
	CanRun        bool                       `json:"canRun"`
	Hardware      contracts.ResolvedHardware `json:"hardware"`
	Memory        contracts.Feasibility      `json:"memoryInfo"`

	LocalTPS        Figure                      `json:"localTPS"`
	TokensPerDay    Figure                      `json:"tokensPerDay"`
	TokensPerDayFmt string                      `json:"tokensPerDayLabel"`
	WorkloadSummary []contracts.WorkloadSummary `json:"workloadSummary"`

	Providers               []CloudResultDTO       `json:"providers"`
	APIProviders            []APIResultDTO         `json:"apiProviders"`
	ProprietaryAlternatives []ProprietaryResultDTO `json:"proprietaryAlternatives"`
	BestAlternative         *BestAlternativeDTO    `json:"bestAlternative,omitempty"`
}

// SweepResponse is the response body for POST /api/v1/sweeps.
type SweepResponse struct {
	Comparisons []*ComparisonResponse `json:"comparisons"`
}

// HealthResponse is the response body for GET /healthz.
type HealthResponse struct {
	Status         string `json:"status"`
	DatasetVersion string `json:"datasetVersion,omitempty"`
}

// ErrorDTO represents an error in the response.
type ErrorDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ============================================================================
// Converters: Request DTO → contracts
// ============================================================================

// ToSelection converts HardwareDTO to contracts.HardwareSelection.
func (h HardwareDTO) ToSelection() contracts.HardwareSelection {
	return contracts.HardwareSelection{
		Class:    contracts.HardwareClass(h.Class),
		MemoryGB: h.MemoryGB,
		Replicas: h.Replicas,
	}
}

func toWorkload(entries []WorkloadEntryDTO) []contracts.WorkloadEntry {
	workload := make([]contracts.WorkloadEntry, len(entries))
	for i, e := range entries {
		workload[i] = contracts.WorkloadEntry{
			DeveloperID: contracts.DeveloperID(e.DeveloperID),
			ModelID:     contracts.ModelID(e.ModelID),
			Quantity:    e.Quantity,
		}
	}
	return workload
}

// ToComparisonInput converts the request, filling unset daily hours with
// defaultHours.
func (r *CompareRequest) ToComparisonInput(defaultHours float64) contracts.ComparisonInput {
	hours := defaultHours
	if r.DailyHours != nil {
		hours = *r.DailyHours
	}
	return contracts.ComparisonInput{
		Workload:     toWorkload(r.Workload),
		DailyHours:   hours,
		Hardware:     r.Hardware.ToSelection(),
		TrainingMode: contracts.TrainingModeID(r.TrainingMode),
		Options:      contracts.ComparisonOptions{InputTokenShare: r.InputTokenShare},
	}
}

// ToComparisonInput converts the shared part of a sweep request. The
// hardware selection is filled per sweep point.
func (r *SweepRequest) ToComparisonInput(defaultHours float64) contracts.ComparisonInput {
	hours := defaultHours
	if r.DailyHours != nil {
		hours = *r.DailyHours
	}
	return contracts.ComparisonInput{
		Workload:     toWorkload(r.Workload),
		DailyHours:   hours,
		TrainingMode: contracts.TrainingModeID(r.TrainingMode),
		Options:      contracts.ComparisonOptions{InputTokenShare: r.InputTokenShare},
	}
}

// ============================================================================
// Converters: contracts → Response DTO
// ============================================================================

func payoffToDTO(p contracts.Payoff) PayoffDTO {
	return PayoffDTO{
		DailyCost:    Figure(p.DailyCost),
		MonthlyCost:  Figure(p.MonthlyCost),
		PayoffDays:   Figure(p.PayoffDays),
		PayoffMonths: Figure(p.PayoffMonths),
		PayoffLabel:  format.FormatPayoff(p.PayoffMonths),
	}
}

// EntryToResponse converts a stored comparison to ComparisonResponse.
func EntryToResponse(entry *ComparisonEntry) *ComparisonResponse {
	b := entry.Bundle
	resp := &ComparisonResponse{
		ID:              entry.ID,
		CreatedAt:       entry.CreatedAt.UnixMilli(),
		Input:           entry.Input,
		HardwareFound:   b.HardwareFound,
		CanRun:          b.CanRun,
		Hardware:        b.Hardware,
		Memory:          b.Memory,
		LocalTPS:        Figure(b.LocalTPS),
		TokensPerDay:    Figure(b.TokensPerDay),
		TokensPerDayFmt: format.FormatTokens(b.TokensPerDay),
		WorkloadSummary: b.WorkloadSummary,

		Providers:               make([]CloudResultDTO, len(b.Cloud)),
		APIProviders:            make([]APIResultDTO, len(b.OSSAPI)),
		ProprietaryAlternatives: make([]ProprietaryResultDTO, len(b.Proprietary)),
	}

	for i, c := range b.Cloud {
		resp.Providers[i] = CloudResultDTO{
			Provider:         string(c.Provider),
			GPUs:             c.GPUs,
			CloudTPS:         Figure(c.CloudTPS),
			HourlyRatePerGPU: Figure(c.HourlyRatePerGPU),
			HourlyRateTotal:  Figure(c.HourlyRateTotal),
			HoursNeeded:      Figure(c.HoursNeeded),
			SpeedRatio:       Figure(c.SpeedRatio),
			PayoffDTO:        payoffToDTO(c.Payoff),
		}
	}

	for i, a := range b.OSSAPI {
		resp.APIProviders[i] = APIResultDTO{
			Provider:     string(a.Provider),
			InputPer1M:   Figure(a.InputPer1M),
			OutputPer1M:  Figure(a.OutputPer1M),
			BlendedPer1M: Figure(a.BlendedPer1M),
			Details:      a.Details,
			PayoffDTO:    payoffToDTO(a.Payoff),
		}
	}

	for i, p := range b.Proprietary {
		resp.ProprietaryAlternatives[i] = ProprietaryResultDTO{
			Provider:     string(p.Provider),
			InputPer1M:   Figure(p.InputPer1M),
			OutputPer1M:  Figure(p.OutputPer1M),
			BlendedPer1M: Figure(p.BlendedPer1M),
			TokPerSec:    Figure(p.TokPerSec),
			HoursNeeded:  Figure(p.HoursNeeded),
			SpeedRatio:   Figure(p.SpeedRatio),
			Tiers:        p.Tiers,
			PayoffDTO:    payoffToDTO(p.Payoff),
		}
	}

	if b.Best != nil {
		resp.BestAlternative = &BestAlternativeDTO{
			Kind:      string(b.Best.Kind),
			Provider:  string(b.Best.Provider),
			PayoffDTO: payoffToDTO(b.Best.Payoff),
		}
	}

	return resp
}
