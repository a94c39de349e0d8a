package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hwpayoff/runtime/contracts"
)

const minimalYAML = `
version: test
developers:
  - id: meta
    name: Meta
    models:
      - id: llama-8b
        name: Llama 8B
        minRAM: 8
        localTokPerSec: 90
        altHardwareTokPerSec: 40
        cloudTokPerSec: 180
        cloudGPUs: 0.5
        tier: small
hardware:
  exchangeRates: {CAD: 0.7}
  profiles:
    - class: mac
      name: Mac Studio
      bandwidth: 819
      configs:
        - {memoryGB: 96, price: 5000, currency: CAD}
    - class: spark
      name: DGX Spark
      bandwidth: 273
      memoryGB: 128
      priceUSD: 3999
prices:
  cloud:
    - {name: RunPod, ratePerGPUHour: 2.39}
  ossApi:
    llama-8b:
      - {name: Together, inputPer1M: 0.18, outputPer1M: 0.18}
  proprietary:
    small:
      - {name: Mini, provider: OpenAI, inputPer1M: 0.15, outputPer1M: 0.6}
`

func TestLoader_LoadFromBytes_ValidYAML(t *testing.T) {
	ds, err := NewLoader().LoadFromBytes([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "test", ds.Version)
	require.Len(t, ds.Developers, 1)
	assert.Equal(t, contracts.TierSmall, ds.Developers[0].Models[0].Tier)
	assert.Equal(t, 0.7, ds.Hardware.ExchangeRates["CAD"])
	assert.Equal(t, contracts.Currency("CAD"), ds.Hardware.Profiles[0].Configs[0].Currency)
	assert.Len(t, ds.Prices.OSSAPI["llama-8b"], 1)
	assert.Len(t, ds.Prices.Proprietary[contracts.TierSmall], 1)
	assert.Empty(t, ds.TrainingModes)
}

func TestLoader_LoadFromBytes_ValidJSON(t *testing.T) {
	ds, err := NewLoader().LoadFromBytes([]byte(minimalYAML))
	require.NoError(t, err)

	// Round-trip through JSON: the loader accepts JSON documents too.
	data, err := json.Marshal(toYAMLKeys(t, ds))
	require.NoError(t, err)

	fromJSON, err := NewLoader().LoadFromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, ds.Developers, fromJSON.Developers)
}

// toYAMLKeys re-encodes ds through yaml so JSON field names follow yaml tags.
func toYAMLKeys(t *testing.T, ds *Dataset) map[string]any {
	t.Helper()
	raw, err := yaml.Marshal(ds)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &m))
	return m
}

func TestLoader_LoadFromBytes_Empty(t *testing.T) {
	for _, data := range [][]byte{nil, {}, []byte("  \n\t")} {
		_, err := NewLoader().LoadFromBytes(data)
		assert.ErrorIs(t, err, ErrConfigEmpty)
	}
}

func TestLoader_LoadFromBytes_UnknownField(t *testing.T) {
	_, err := NewLoader().LoadFromBytes([]byte(minimalYAML + "\nsurprise: true\n"))
	require.Error(t, err)

	var typeErr *yaml.TypeError
	assert.True(t, errors.As(err, &typeErr), "got %T: %v", err, err)
}

func TestLoader_LoadFromBytes_Malformed(t *testing.T) {
	_, err := NewLoader().LoadFromBytes([]byte("developers: [unclosed"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfigEmpty)
}

func TestLoader_LoadFromBytes_RunsValidator(t *testing.T) {
	_, err := NewLoader().LoadFromBytes([]byte("version: x\ndevelopers: []\n"))
	assert.ErrorIs(t, err, ErrNoDevelopers)
}

func TestLoader_LoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dataset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalYAML), 0o600))

	ds, err := NewLoader().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "test", ds.Version)
}

func TestLoader_LoadFromFile_NotFound(t *testing.T) {
	_, err := NewLoader().LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoader_LoadDefault(t *testing.T) {
	ds, err := NewLoader().LoadDefault()
	require.NoError(t, err)

	assert.NotEmpty(t, ds.Developers)
	assert.Len(t, ds.Hardware.Profiles, 2)
	assert.NotEmpty(t, ds.Prices.Cloud)
	assert.NotEmpty(t, ds.Prices.OSSAPI)
	for _, tier := range contracts.Tiers() {
		assert.NotEmpty(t, ds.Prices.Proprietary[tier], "tier %s", tier)
	}
	assert.Len(t, ds.TrainingModes, 4)
}

func TestLoader_Load(t *testing.T) {
	ds, err := NewLoader().Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, ds.Version)

	_, err = NewLoader().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
