package api

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-logr/logr"

	"github.com/hwpayoff/runtime/contracts"
	"github.com/hwpayoff/runtime/internal/logging"
	"github.com/hwpayoff/runtime/internal/orchestration"
)

// maxRequestBodySize limits the size of incoming request bodies (1MB).
const maxRequestBodySize = 1 << 20

// HandlerOptions configures request defaults and side effects.
type HandlerOptions struct {
	DatasetVersion   string
	DailyHours       float64       // used when a request omits dailyHours
	Retention        time.Duration // how long stored comparisons are kept
	AuditDir         string        // directory for comparison audit JSON files (empty = disabled)
	SweepParallelism int
	Logger           logr.Logger
}

// Handlers contains the HTTP handler methods for the API.
type Handlers struct {
	components orchestration.Components
	store      *ComparisonStore
	metrics    *Metrics
	opts       HandlerOptions
	log        logr.Logger
}

// NewHandlers creates a new Handlers instance. metrics may be nil.
func NewHandlers(components orchestration.Components, store *ComparisonStore, metrics *Metrics, opts HandlerOptions) *Handlers {
	return &Handlers{
		components: components,
		store:      store,
		metrics:    metrics,
		opts:       opts,
		log:        opts.Logger.WithName("api"),
	}
}

// HandleHealth handles GET /healthz.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.writeJSON(w, HealthResponse{Status: "ok", DatasetVersion: h.opts.DatasetVersion})
}

// HandleListDevelopers handles GET /api/v1/developers.
func (h *Handlers) HandleListDevelopers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.writeJSON(w, h.components.Catalog.Developers())
}

// HandleListModels handles GET /api/v1/developers/{id}/models.
// The catalog answers unknown developers with an empty list; the API
// reports them as not found.
func (h *Handlers) HandleListModels(w http.ResponseWriter, r *http.Request) {
	id := contracts.DeveloperID(r.PathValue("id"))
	if !h.developerExists(id) {
		h.writeError(w, fmt.Errorf("developer %s: %w", id, contracts.ErrDeveloperNotFound))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	h.writeJSON(w, h.components.Catalog.Models(id))
}

// HandleListHardware handles GET /api/v1/hardware.
func (h *Handlers) HandleListHardware(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.writeJSON(w, h.components.Hardware.Profiles())
}

// HandleListTrainingModes handles GET /api/v1/training-modes.
func (h *Handlers) HandleListTrainingModes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.writeJSON(w, h.components.Modes.List())
}

// HandleCreateComparison handles POST /api/v1/comparisons.
func (h *Handlers) HandleCreateComparison(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := readJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	if err := validateCompareRequest(&req); err != nil {
		h.writeError(w, err)
		return
	}

	input := req.ToComparisonInput(h.opts.DailyHours)
	if err := h.checkReferences(input.Workload, input.TrainingMode, []contracts.HardwareSelection{input.Hardware}); err != nil {
		h.writeError(w, err)
		return
	}

	timer := h.metrics.Timer()
	bundle := h.components.Engine.ComputeWorkloadComparison(input)
	timer.ObserveDuration()

	entry := h.store.Create(input, bundle)
	logging.Audit(h.log, "comparison_created",
		"comparison_id", entry.ID,
		"hardware", bundle.Hardware.Name,
		"can_run", bundle.CanRun)

	// Best-effort cleanup of old comparisons
	if pruned := h.store.Prune(h.opts.Retention); pruned > 0 {
		logging.Audit(h.log, "comparisons_pruned", "count", pruned)
	}

	resp := EntryToResponse(entry)
	h.writeAuditFile(resp)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Location", "/api/v1/comparisons/"+entry.ID)
	w.WriteHeader(http.StatusCreated)
	h.writeJSON(w, resp)
}

// HandleGetComparison handles GET /api/v1/comparisons/{id}.
func (h *Handlers) HandleGetComparison(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, fmt.Errorf("missing comparison ID: %w", contracts.ErrInvalidInput))
		return
	}

	entry, err := h.store.Get(id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	h.writeJSON(w, EntryToResponse(entry))
}

// HandleSweep handles POST /api/v1/sweeps.
func (h *Handlers) HandleSweep(w http.ResponseWriter, r *http.Request) {
	var req SweepRequest
	if err := readJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	if err := validateSweepRequest(&req); err != nil {
		h.writeError(w, err)
		return
	}

	base := req.ToComparisonInput(h.opts.DailyHours)

	var selections []contracts.HardwareSelection
	if len(req.Hardware) == 0 {
		selections = h.components.Hardware.Selections(req.Replicas)
	} else {
		selections = make([]contracts.HardwareSelection, len(req.Hardware))
		for i, hw := range req.Hardware {
			selections[i] = hw.ToSelection()
		}
	}

	if err := h.checkReferences(base.Workload, base.TrainingMode, selections); err != nil {
		h.writeError(w, err)
		return
	}

	timer := h.metrics.Timer()
	bundles, err := orchestration.Sweep(r.Context(), h.components.Engine, base, selections, h.opts.SweepParallelism)
	timer.ObserveDuration()
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := SweepResponse{Comparisons: make([]*ComparisonResponse, len(bundles))}
	for i, bundle := range bundles {
		input := base
		input.Hardware = selections[i]
		entry := h.store.Create(input, bundle)
		resp.Comparisons[i] = EntryToResponse(entry)
	}
	logging.Audit(h.log, "sweep_created", "points", len(bundles))
	h.store.Prune(h.opts.Retention)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	h.writeJSON(w, resp)
}

func (h *Handlers) developerExists(id contracts.DeveloperID) bool {
	for _, d := range h.components.Catalog.Developers() {
		if d.ID == id {
			return true
		}
	}
	return false
}

// checkReferences resolves every id in a request against the loaded tables.
// The engine tolerates unknown ids; API callers get an explicit error.
func (h *Handlers) checkReferences(workload []contracts.WorkloadEntry, mode contracts.TrainingModeID, selections []contracts.HardwareSelection) error {
	for _, e := range workload {
		if _, ok := h.components.Catalog.Find(e.DeveloperID, e.ModelID); !ok {
			return fmt.Errorf("model %s/%s: %w", e.DeveloperID, e.ModelID, contracts.ErrModelNotFound)
		}
	}

	if mode != "" {
		if _, ok := h.components.Modes.Get(mode); !ok {
			return fmt.Errorf("training mode %q: %w", mode, contracts.ErrUnknownTrainingMode)
		}
	}

	for _, sel := range selections {
		if _, ok := h.components.Hardware.Profile(sel.Class); !ok {
			return fmt.Errorf("hardware class %q: %w", sel.Class, contracts.ErrUnknownHardware)
		}
		if _, ok := h.components.Hardware.Resolve(sel); !ok {
			return fmt.Errorf("%s with %gGB: %w", sel.Class, sel.MemoryGB, contracts.ErrUnsupportedCapacity)
		}
	}
	return nil
}

// writeAuditFile writes the comparison to a JSON file in the configured audit directory.
func (h *Handlers) writeAuditFile(resp *ComparisonResponse) {
	if h.opts.AuditDir == "" {
		return
	}

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		h.log.Error(err, "Failed to marshal audit JSON", "comparison_id", resp.ID)
		return
	}

	filename := filepath.Join(h.opts.AuditDir, fmt.Sprintf("comparison-%s.json", resp.ID))
	if err := os.MkdirAll(h.opts.AuditDir, 0o755); err != nil {
		h.log.Error(err, "Failed to create audit dir", "dir", h.opts.AuditDir)
		return
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		h.log.Error(err, "Failed to write audit file", "path", filename)
		return
	}

	logging.Audit(h.log, "audit_file_written", "comparison_id", resp.ID, "path", filename)
}

// readJSON decodes a size-limited request body into v.
func readJSON(r *http.Request, v any) error {
	limitedReader := io.LimitReader(r.Body, maxRequestBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", contracts.ErrInvalidInput)
	}
	if len(body) > maxRequestBodySize {
		return fmt.Errorf("request body too large (max %d bytes): %w", maxRequestBodySize, contracts.ErrInvalidInput)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON: %w", contracts.ErrInvalidInput)
	}
	return nil
}

// validateCompareRequest validates a CompareRequest.
func validateCompareRequest(req *CompareRequest) error {
	if err := validateWorkload(req.Workload); err != nil {
		return err
	}
	if err := validateShared(req.DailyHours, req.InputTokenShare); err != nil {
		return err
	}
	return validateHardware(req.Hardware)
}

// validateSweepRequest validates a SweepRequest.
func validateSweepRequest(req *SweepRequest) error {
	if err := validateWorkload(req.Workload); err != nil {
		return err
	}
	if err := validateShared(req.DailyHours, req.InputTokenShare); err != nil {
		return err
	}
	if req.Replicas < 0 {
		return fmt.Errorf("replicas must be >= 0: %w", contracts.ErrInvalidInput)
	}
	for _, hw := range req.Hardware {
		if err := validateHardware(hw); err != nil {
			return err
		}
	}
	return nil
}

func validateWorkload(entries []WorkloadEntryDTO) error {
	if len(entries) == 0 {
		return contracts.ErrEmptyWorkload
	}
	for i, e := range entries {
		if e.DeveloperID == "" || e.ModelID == "" {
			return fmt.Errorf("workload[%d]: developerId and modelId are required: %w", i, contracts.ErrInvalidInput)
		}
		if e.Quantity < 1 {
			return fmt.Errorf("workload[%d]: quantity must be >= 1: %w", i, contracts.ErrInvalidInput)
		}
	}
	return nil
}

func validateShared(dailyHours *float64, share *float64) error {
	if dailyHours != nil && !(*dailyHours > 0 && *dailyHours <= 24) {
		return fmt.Errorf("dailyHours must be in (0, 24]: %w", contracts.ErrInvalidInput)
	}
	if share != nil && (math.IsNaN(*share) || *share < 0 || *share > 1) {
		return fmt.Errorf("inputTokenShare must be in [0, 1]: %w", contracts.ErrInvalidInput)
	}
	return nil
}

func validateHardware(hw HardwareDTO) error {
	if hw.Class == "" {
		return fmt.Errorf("hardware.class is required: %w", contracts.ErrInvalidInput)
	}
	if hw.Replicas < 0 {
		return fmt.Errorf("hardware.replicas must be >= 0: %w", contracts.ErrInvalidInput)
	}
	return nil
}

// writeJSON writes a JSON response. Headers are already sent, so an encode
// failure can only be logged.
func (h *Handlers) writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error(err, "Failed to encode response")
	}
}

// writeError writes an error response, logging a failed body encode.
func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	if encErr := WriteError(w, err); encErr != nil {
		h.log.Error(encErr, "Failed to encode error response", "cause", err.Error())
	}
}

// timeNowFunc is a variable for testing time-dependent code.
var timeNowFunc = time.Now
