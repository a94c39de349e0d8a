package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hwpayoff/runtime/contracts"
)

// EnvPrefix prefixes every environment variable read into Settings,
// e.g. PAYOFF_LISTEN_ADDR.
const EnvPrefix = "PAYOFF"

// Setting keys, shared by flags, environment variables and viper.
const (
	KeyListenAddr       = "listen-addr"
	KeyDataset          = "dataset"
	KeyLogLevel         = "log-level"
	KeyLogFormat        = "log-format"
	KeyDailyHours       = "daily-hours"
	KeyInputTokenShare  = "input-share"
	KeyMetrics          = "metrics"
	KeyRetention        = "retention"
	KeyAuditDir         = "audit-dir"
	KeySweepParallelism = "sweep-parallelism"
)

// Settings are the process-level options of the server and CLI.
type Settings struct {
	ListenAddr       string
	DatasetPath      string // empty uses the built-in dataset
	LogLevel         string
	LogFormat        string
	DailyHours       float64
	InputTokenShare  float64
	MetricsEnabled   bool
	Retention        time.Duration
	AuditDir         string // empty disables audit files
	SweepParallelism int
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		ListenAddr:       ":8080",
		LogLevel:         "info",
		LogFormat:        "json",
		DailyHours:       8,
		InputTokenShare:  contracts.DefaultInputTokenShare,
		MetricsEnabled:   true,
		Retention:        time.Hour,
		SweepParallelism: 4,
	}
}

// RegisterFlags adds a flag for every setting to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	d := DefaultSettings()
	flags.String(KeyListenAddr, d.ListenAddr, "HTTP listen address")
	flags.String(KeyDataset, d.DatasetPath, "dataset file (YAML or JSON); built-in when empty")
	flags.String(KeyLogLevel, d.LogLevel, "log level: error, warn, info, debug, trace")
	flags.String(KeyLogFormat, d.LogFormat, "log format: json or console")
	flags.Float64(KeyDailyHours, d.DailyHours, "default hours of use per day")
	flags.Float64(KeyInputTokenShare, d.InputTokenShare, "default share of tokens billed at the input rate")
	flags.Bool(KeyMetrics, d.MetricsEnabled, "expose Prometheus metrics on /metrics")
	flags.Duration(KeyRetention, d.Retention, "how long stored comparisons are kept")
	flags.String(KeyAuditDir, d.AuditDir, "directory for comparison audit files; disabled when empty")
	flags.Int(KeySweepParallelism, d.SweepParallelism, "concurrent comparisons per hardware sweep")
}

// LoadSettings layers defaults, an optional .env file, PAYOFF_* environment
// variables and explicitly set flags, in increasing precedence.
// A missing envFile is not an error.
func LoadSettings(flags *pflag.FlagSet, envFile string) (Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	d := DefaultSettings()
	v.SetDefault(KeyListenAddr, d.ListenAddr)
	v.SetDefault(KeyDataset, d.DatasetPath)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
	v.SetDefault(KeyDailyHours, d.DailyHours)
	v.SetDefault(KeyInputTokenShare, d.InputTokenShare)
	v.SetDefault(KeyMetrics, d.MetricsEnabled)
	v.SetDefault(KeyRetention, d.Retention)
	v.SetDefault(KeyAuditDir, d.AuditDir)
	v.SetDefault(KeySweepParallelism, d.SweepParallelism)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Settings{}, fmt.Errorf("binding flags: %w", err)
		}
	}

	s := Settings{
		ListenAddr:       v.GetString(KeyListenAddr),
		DatasetPath:      v.GetString(KeyDataset),
		LogLevel:         v.GetString(KeyLogLevel),
		LogFormat:        v.GetString(KeyLogFormat),
		DailyHours:       v.GetFloat64(KeyDailyHours),
		InputTokenShare:  v.GetFloat64(KeyInputTokenShare),
		MetricsEnabled:   v.GetBool(KeyMetrics),
		Retention:        v.GetDuration(KeyRetention),
		AuditDir:         v.GetString(KeyAuditDir),
		SweepParallelism: v.GetInt(KeySweepParallelism),
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks that every setting is in range.
func (s Settings) Validate() error {
	switch {
	case s.DailyHours <= 0 || s.DailyHours > 24:
		return fmt.Errorf("%s=%g must be in (0, 24]: %w", KeyDailyHours, s.DailyHours, ErrInvalidSettings)
	case s.InputTokenShare < 0 || s.InputTokenShare > 1:
		return fmt.Errorf("%s=%g must be in [0, 1]: %w", KeyInputTokenShare, s.InputTokenShare, ErrInvalidSettings)
	case s.Retention < 0:
		return fmt.Errorf("%s=%s must not be negative: %w", KeyRetention, s.Retention, ErrInvalidSettings)
	case s.SweepParallelism < 1:
		return fmt.Errorf("%s=%d must be at least 1: %w", KeySweepParallelism, s.SweepParallelism, ErrInvalidSettings)
	case s.LogFormat != "json" && s.LogFormat != "console":
		return fmt.Errorf("%s=%q must be json or console: %w", KeyLogFormat, s.LogFormat, ErrInvalidSettings)
	}
	return nil
}
