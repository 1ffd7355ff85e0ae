// Package config loads engine and collaborator-layer configuration from the
// environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/renteduse/cost-collective-calc/internal/calculator"
)

// Mode values for the engine's policy knobs.
const (
	ModeStrict  = "strict"
	ModeLenient = "lenient"

	SettlementPairwise = "pairwise"
	SettlementNet      = "net"
)

type Config struct {
	// Database
	DBPath string

	// DefaultCurrency is the fallback reporting currency for groups that
	// don't set one.
	DefaultCurrency string

	// ConversionMode: strict aborts on unknown currency codes, lenient
	// warns and passes amounts through unconverted.
	ConversionMode string

	// ShareValidation: strict rejects expenses whose shares don't sum to
	// the amount, lenient sums shares as given.
	ShareValidation string

	// SettlementMode: pairwise (canonical) or net (simplified).
	SettlementMode string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		DBPath:          getEnv("DB_PATH", "./data/ledger.db"),
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "USD"),
		ConversionMode:  getEnv("CONVERSION_MODE", ModeStrict),
		ShareValidation: getEnv("SHARE_VALIDATION", ModeLenient),
		SettlementMode:  getEnv("SETTLEMENT_MODE", SettlementPairwise),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if c.DBPath == "" {
		errs = append(errs, "database path cannot be empty")
	}
	if c.DefaultCurrency == "" {
		errs = append(errs, "default currency cannot be empty")
	}
	if c.ConversionMode != ModeStrict && c.ConversionMode != ModeLenient {
		errs = append(errs, fmt.Sprintf("invalid conversion mode '%s': must be '%s' or '%s'", c.ConversionMode, ModeStrict, ModeLenient))
	}
	if c.ShareValidation != ModeStrict && c.ShareValidation != ModeLenient {
		errs = append(errs, fmt.Sprintf("invalid share validation '%s': must be '%s' or '%s'", c.ShareValidation, ModeStrict, ModeLenient))
	}
	if c.SettlementMode != SettlementPairwise && c.SettlementMode != SettlementNet {
		errs = append(errs, fmt.Sprintf("invalid settlement mode '%s': must be '%s' or '%s'", c.SettlementMode, SettlementPairwise, SettlementNet))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// EngineOptions translates the config into calculator options.
func (c *Config) EngineOptions() calculator.Options {
	opts := calculator.Options{}
	if c.ConversionMode == ModeLenient {
		opts.Conversion = calculator.LenientConversion
	}
	if c.ShareValidation == ModeStrict {
		opts.Shares = calculator.StrictShares
	}
	return opts
}

// Settlement translates the config into a calculator settlement mode.
func (c *Config) Settlement() calculator.SettlementMode {
	if c.SettlementMode == SettlementNet {
		return calculator.NetMode
	}
	return calculator.PairwiseMode
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
