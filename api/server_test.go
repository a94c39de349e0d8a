package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hwpayoff/runtime/config"
	"github.com/hwpayoff/runtime/contracts"
	"github.com/hwpayoff/runtime/internal/logging"
	"github.com/hwpayoff/runtime/internal/orchestration"
)

const testDatasetYAML = `
version: api-test
developers:
  - id: meta
    name: Meta
    models:
      - {id: llama-8b, name: Llama 8B, minRAM: 16, localTokPerSec: 12, altHardwareTokPerSec: 20, cloudTokPerSec: 50, cloudGPUs: 0.5, tier: small}
      - {id: llama-405b, name: Llama 405B, minRAM: 300, localTokPerSec: 3, altHardwareTokPerSec: 0, cloudTokPerSec: 30, cloudGPUs: 8, tier: frontier}
  - id: empty
    name: No Models
    models: []
hardware:
  exchangeRates: {CAD: 0.75}
  profiles:
    - class: mac
      name: Mac Studio
      bandwidth: 819
      configs:
        - {memoryGB: 96, price: 5000, currency: CAD}
        - {memoryGB: 512, price: 10000, currency: CAD}
    - {class: spark, name: DGX Spark, bandwidth: 273, memoryGB: 128, priceUSD: 4000}
prices:
  cloud:
    - {name: Paid, ratePerGPUHour: 1}
    - {name: Free, ratePerGPUHour: 0}
  ossApi:
    llama-8b:
      - {name: X, inputPer1M: 1, outputPer1M: 1}
  proprietary:
    small:
      - {name: Mini, provider: P, inputPer1M: 1, outputPer1M: 1, tokPerSec: 200}
`

func newTestServer(t *testing.T, mutate func(s *config.Settings)) *Server {
	t.Helper()
	ds, err := config.NewLoader().LoadFromBytes([]byte(testDatasetYAML))
	require.NoError(t, err)

	settings := config.DefaultSettings()
	if mutate != nil {
		mutate(&settings)
	}
	return NewServer(settings, ds, logr.Discard())
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

const compareBody = `{
	"workload": [{"developerId": "meta", "modelId": "llama-8b", "quantity": 1}],
	"hardware": {"class": "mac", "memoryGB": 96}
}`

// ============================================================================
// Listing endpoints
// ============================================================================

func TestServer_Health(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "api-test", resp.DatasetVersion)
}

func TestServer_ListDevelopers(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/api/v1/developers", "")

	require.Equal(t, http.StatusOK, rec.Code)
	devs := decode[[]contracts.DeveloperSummary](t, rec)
	require.Len(t, devs, 2)
	assert.Equal(t, contracts.DeveloperID("meta"), devs[0].ID)
	assert.Equal(t, 2, devs[0].ModelCount)
}

func TestServer_ListModels(t *testing.T) {
	srv := newTestServer(t, nil)

	t.Run("known developer", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/v1/developers/meta/models", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]contracts.ModelSpec](t, rec), 2)
	})

	t.Run("developer without models", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/v1/developers/empty/models", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decode[[]contracts.ModelSpec](t, rec))
	})

	t.Run("unknown developer", func(t *testing.T) {
		rec := do(t, srv, http.MethodGet, "/api/v1/developers/nobody/models", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, string(CodeDeveloperNotFound), decode[ErrorDTO](t, rec).Code)
	})
}

func TestServer_ListHardwareAndModes(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/v1/hardware", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]contracts.HardwareProfile](t, rec), 2)

	rec = do(t, srv, http.MethodGet, "/api/v1/training-modes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	modes := decode[[]contracts.TrainingMode](t, rec)
	require.Len(t, modes, 4)
	assert.Equal(t, contracts.ModeInference, modes[0].ID)
}

// ============================================================================
// Comparisons
// ============================================================================

func TestServer_CreateAndGetComparison(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodPost, "/api/v1/comparisons", compareBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[ComparisonResponse](t, rec)
	_, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/comparisons/"+created.ID, rec.Header().Get("Location"))
	assert.True(t, created.HardwareFound)
	assert.True(t, created.CanRun)
	assert.Equal(t, 8.0, created.Input.DailyHours, "server default hours")
	assert.Equal(t, Figure(345_600), created.TokensPerDay)
	assert.Equal(t, "345.6K", created.TokensPerDayFmt)
	require.Len(t, created.Providers, 2)
	assert.Equal(t, "Free", created.Providers[0].Provider)
	require.NotNil(t, created.BestAlternative)
	assert.Equal(t, "GPU", created.BestAlternative.Kind)
	assert.Equal(t, 1, srv.Store().Len())

	rec = do(t, srv, http.MethodGet, "/api/v1/comparisons/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decode[ComparisonResponse](t, rec)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.CreatedAt, fetched.CreatedAt)
}

func TestServer_ZeroInputShare(t *testing.T) {
	ds, err := config.NewLoader().LoadFromBytes([]byte(testDatasetYAML))
	require.NoError(t, err)
	ds.Prices.OSSAPI["llama-8b"] = []contracts.APIOffer{{Name: "X", InputPer1M: 0.03, OutputPer1M: 0.05}}

	withShare := func(share string) string {
		return `{
	"workload": [{"developerId": "meta", "modelId": "llama-8b", "quantity": 1}],
	"hardware": {"class": "mac", "memoryGB": 96},
	"inputTokenShare": ` + share + `
}`
	}
	blended := func(t *testing.T, srv *Server, body string) float64 {
		t.Helper()
		rec := do(t, srv, http.MethodPost, "/api/v1/comparisons", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		resp := decode[ComparisonResponse](t, rec)
		require.Len(t, resp.APIProviders, 1)
		return float64(resp.APIProviders[0].BlendedPer1M)
	}

	t.Run("configured zero bills output rate", func(t *testing.T) {
		settings := config.DefaultSettings()
		settings.InputTokenShare = 0
		srv := NewServer(settings, ds, logr.Discard())

		assert.InDelta(t, 0.05, blended(t, srv, compareBody), 1e-12)
		assert.InDelta(t, 0.04, blended(t, srv, withShare("0.5")), 1e-12)
	})

	t.Run("request zero overrides default", func(t *testing.T) {
		srv := NewServer(config.DefaultSettings(), ds, logr.Discard())

		assert.InDelta(t, 0.034, blended(t, srv, compareBody), 1e-12)
		assert.InDelta(t, 0.05, blended(t, srv, withShare("0")), 1e-12)
	})
}

func TestServer_InfiniteFiguresEncodeAsNull(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodPost, "/api/v1/comparisons", compareBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))

	providers := raw["providers"].([]any)
	free := providers[0].(map[string]any)
	assert.Equal(t, "Free", free["provider"])
	assert.Nil(t, free["payoffDays"])
	assert.Nil(t, free["payoffMonths"])
	assert.Equal(t, "N/A", free["payoffLabel"])
	assert.Equal(t, 0.0, free["dailyCost"])

	best := raw["bestAlternative"].(map[string]any)
	assert.Equal(t, "Free", best["name"])
	assert.Nil(t, best["payoffDays"])
}

func TestServer_InfeasibleComparison(t *testing.T) {
	body := `{
		"workload": [{"developerId": "meta", "modelId": "llama-405b", "quantity": 1}],
		"hardware": {"class": "spark"}
	}`
	rec := do(t, newTestServer(t, nil), http.MethodPost, "/api/v1/comparisons", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decode[ComparisonResponse](t, rec)
	assert.True(t, resp.HardwareFound)
	assert.False(t, resp.CanRun)
	assert.Equal(t, []string{"Llama 405B"}, resp.Memory.IncompatibleModels)
	assert.Empty(t, resp.Providers)
	assert.NotNil(t, resp.Providers)
	assert.Nil(t, resp.BestAlternative)
}

func TestServer_CreateComparison_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   ErrorCode
	}{
		{
			name:       "malformed JSON",
			body:       `{"workload": [`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidInput,
		},
		{
			name:       "empty workload",
			body:       `{"workload": [], "hardware": {"class": "mac", "memoryGB": 96}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeEmptyWorkload,
		},
		{
			name:       "zero quantity",
			body:       `{"workload": [{"developerId": "meta", "modelId": "llama-8b", "quantity": 0}], "hardware": {"class": "mac", "memoryGB": 96}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidInput,
		},
		{
			name:       "hours over a day",
			body:       `{"workload": [{"developerId": "meta", "modelId": "llama-8b", "quantity": 1}], "dailyHours": 25, "hardware": {"class": "mac", "memoryGB": 96}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidInput,
		},
		{
			name:       "zero hours",
			body:       `{"workload": [{"developerId": "meta", "modelId": "llama-8b", "quantity": 1}], "dailyHours": 0, "hardware": {"class": "mac", "memoryGB": 96}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidInput,
		},
		{
			name:       "share above one",
			body:       `{"workload": [{"developerId": "meta", "modelId": "llama-8b", "quantity": 1}], "inputTokenShare": 1.5, "hardware": {"class": "mac", "memoryGB": 96}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidInput,
		},
		{
			name:       "negative replicas",
			body:       `{"workload": [{"developerId": "meta", "modelId": "llama-8b", "quantity": 1}], "hardware": {"class": "spark", "replicas": -1}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidInput,
		},
		{
			name:       "unknown model",
			body:       `{"workload": [{"developerId": "meta", "modelId": "ghost", "quantity": 1}], "hardware": {"class": "mac", "memoryGB": 96}}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   CodeModelNotFound,
		},
		{
			name:       "unknown hardware class",
			body:       `{"workload": [{"developerId": "meta", "modelId": "llama-8b", "quantity": 1}], "hardware": {"class": "tpu"}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeUnknownHardware,
		},
		{
			name:       "capacity not offered",
			body:       `{"workload": [{"developerId": "meta", "modelId": "llama-8b", "quantity": 1}], "hardware": {"class": "mac", "memoryGB": 256}}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   CodeUnsupportedCapacity,
		},
		{
			name:       "unknown training mode",
			body:       `{"workload": [{"developerId": "meta", "modelId": "llama-8b", "quantity": 1}], "trainingMode": "dpo", "hardware": {"class": "mac", "memoryGB": 96}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeUnknownTrainingMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, nil)
			rec := do(t, srv, http.MethodPost, "/api/v1/comparisons", tt.body)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, string(tt.wantCode), decode[ErrorDTO](t, rec).Code)
			assert.Zero(t, srv.Store().Len())
		})
	}
}

func TestServer_CreateComparison_BodyTooLarge(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(`{"workload": [`)
	for buf.Len() <= maxRequestBodySize {
		buf.WriteString(`{"developerId": "meta", "modelId": "llama-8b", "quantity": 1},`)
	}
	buf.WriteString(`{"developerId": "meta", "modelId": "llama-8b", "quantity": 1}]}`)

	rec := do(t, newTestServer(t, nil), http.MethodPost, "/api/v1/comparisons", buf.String())

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorDTO](t, rec).Message, "too large")
}

func TestServer_GetComparison_NotFound(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/api/v1/comparisons/"+uuid.NewString(), "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(CodeComparisonNotFound), decode[ErrorDTO](t, rec).Code)
}

func TestServer_AuditFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "audit")
	srv := newTestServer(t, func(s *config.Settings) { s.AuditDir = dir })

	rec := do(t, srv, http.MethodPost, "/api/v1/comparisons", compareBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[ComparisonResponse](t, rec).ID

	data, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("comparison-%s.json", id)))
	require.NoError(t, err)

	var audited ComparisonResponse
	require.NoError(t, json.Unmarshal(data, &audited))
	assert.Equal(t, id, audited.ID)
}

// ============================================================================
// Sweeps
// ============================================================================

func TestServer_Sweep_AllCapacities(t *testing.T) {
	srv := newTestServer(t, nil)
	body := `{"workload": [{"developerId": "meta", "modelId": "llama-8b", "quantity": 1}], "dailyHours": 4}`

	rec := do(t, srv, http.MethodPost, "/api/v1/sweeps", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode[SweepResponse](t, rec)
	require.Len(t, resp.Comparisons, 3)
	names := make([]string, len(resp.Comparisons))
	for i, c := range resp.Comparisons {
		names[i] = c.Hardware.Name
		assert.True(t, c.CanRun)
		assert.Equal(t, 4.0, c.Input.DailyHours)
	}
	assert.Equal(t, []string{"Mac Studio (96GB)", "Mac Studio (512GB)", "DGX Spark"}, names)
	assert.Equal(t, 3, srv.Store().Len())
}

func TestServer_Sweep_ExplicitSelections(t *testing.T) {
	body := `{
		"workload": [{"developerId": "meta", "modelId": "llama-8b", "quantity": 1}],
		"hardware": [{"class": "spark", "replicas": 2}, {"class": "mac", "memoryGB": 512}]
	}`

	rec := do(t, newTestServer(t, nil), http.MethodPost, "/api/v1/sweeps", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode[SweepResponse](t, rec)
	require.Len(t, resp.Comparisons, 2)
	assert.Equal(t, "2× DGX Spark", resp.Comparisons[0].Hardware.Name)
	assert.Equal(t, "Mac Studio (512GB)", resp.Comparisons[1].Hardware.Name)
}

func TestServer_Sweep_RejectsUnknownCapacity(t *testing.T) {
	body := `{
		"workload": [{"developerId": "meta", "modelId": "llama-8b", "quantity": 1}],
		"hardware": [{"class": "mac", "memoryGB": 1024}]
	}`
	rec := do(t, newTestServer(t, nil), http.MethodPost, "/api/v1/sweeps", body)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, string(CodeUnsupportedCapacity), decode[ErrorDTO](t, rec).Code)
}

// ============================================================================
// Metrics
// ============================================================================

func TestServer_Metrics(t *testing.T) {
	srv := newTestServer(t, nil)
	do(t, srv, http.MethodPost, "/api/v1/comparisons", compareBody)

	rec := do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `payoff_comparisons_total{outcome="computed"} 1`)
	assert.Contains(t, body, `payoff_eligible_providers{comparator="cloud"} 2`)
	assert.Contains(t, body, "payoff_comparison_duration_seconds_count 1")
}

func TestServer_MetricsDisabled(t *testing.T) {
	srv := newTestServer(t, func(s *config.Settings) { s.MetricsEnabled = false })

	rec := do(t, srv, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/v1/comparisons", compareBody)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

// ============================================================================
// Store
// ============================================================================

func TestComparisonStore_Prune(t *testing.T) {
	store := NewComparisonStore()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	timeNowFunc = func() time.Time { return base }
	t.Cleanup(func() { timeNowFunc = time.Now })

	old := store.Create(contracts.ComparisonInput{}, contracts.ComparisonBundle{})

	timeNowFunc = func() time.Time { return base.Add(50 * time.Minute) }
	recent := store.Create(contracts.ComparisonInput{}, contracts.ComparisonBundle{})

	timeNowFunc = func() time.Time { return base.Add(90 * time.Minute) }
	assert.Zero(t, store.Prune(0), "zero retention keeps everything")
	assert.Equal(t, 1, store.Prune(time.Hour))

	_, err := store.Get(old.ID)
	assert.ErrorIs(t, err, contracts.ErrComparisonNotFound)
	_, err = store.Get(recent.ID)
	assert.NoError(t, err)
}

// ============================================================================
// Errors and encoding
// ============================================================================

func TestMapError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   ErrorCode
	}{
		{fmt.Errorf("x: %w", contracts.ErrInvalidInput), http.StatusBadRequest, CodeInvalidInput},
		{contracts.ErrEmptyWorkload, http.StatusBadRequest, CodeEmptyWorkload},
		{contracts.ErrDeveloperNotFound, http.StatusNotFound, CodeDeveloperNotFound},
		{contracts.ErrComparisonNotFound, http.StatusNotFound, CodeComparisonNotFound},
		{contracts.ErrModelNotFound, http.StatusUnprocessableEntity, CodeModelNotFound},
		{contracts.ErrUnsupportedCapacity, http.StatusUnprocessableEntity, CodeUnsupportedCapacity},
		{fmt.Errorf("sweep aborted: %w", context.Canceled), 499, CodeCancelled},
		{errors.New("boom"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		got := MapError(tt.err)
		require.NotNil(t, got)
		assert.Equal(t, tt.wantStatus, got.StatusCode, tt.err.Error())
		assert.Equal(t, tt.wantCode, got.Code, tt.err.Error())
	}

	assert.Nil(t, MapError(nil))
}

func TestFigure_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Figure{
		"inf":  Figure(math.Inf(1)),
		"half": 0.5,
		"big":  1e21,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"inf": null, "half": 0.5, "big": 1e21}`, string(data))
}

func TestHandlers_WriteJSONLogsEncodeFailure(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := NewHandlers(orchestration.Components{}, NewComparisonStore(), nil, HandlerOptions{Logger: logging.FromCore(core)})

	h.writeJSON(httptest.NewRecorder(), math.Inf(1))

	entries := logs.FilterMessage("Failed to encode response").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "api", entries[0].LoggerName)
}
