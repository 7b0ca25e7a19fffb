// Package config loads the YAML configuration for the live trading command.
package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kestrel-trading/kestrel/internal/trading/engine"
	tradingprovider "github.com/kestrel-trading/kestrel/internal/trading/provider"
	"github.com/kestrel-trading/kestrel/pkg/errors"
)

// Duration parses YAML values like "30s" or "4h" into a time.Duration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid duration %q", value.Value)
	}

	*d = Duration(parsed)

	return nil
}

// StrategyConfig selects a strategy variant and its parameter overrides. The
// params node is kept raw so each variant can unmarshal its own struct.
type StrategyConfig struct {
	Name   string    `yaml:"name" validate:"required"`
	Params yaml.Node `yaml:"params"`
}

// RawParams re-encodes the params node for the strategy factory. Returns nil
// when no overrides are configured.
func (c *StrategyConfig) RawParams() ([]byte, error) {
	if c.Params.IsZero() {
		return nil, nil
	}

	raw, err := yaml.Marshal(&c.Params)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "cannot encode strategy params", err)
	}

	return raw, nil
}

// TradingConfig configures the polling loop and order sizing.
type TradingConfig struct {
	PollInterval   Duration `yaml:"poll_interval"`
	MaxRuntime     Duration `yaml:"max_runtime"`
	LookbackBars   int      `yaml:"lookback_bars" validate:"gt=1"`
	EquityFraction float64  `yaml:"equity_fraction" validate:"gt=0,lte=1"`
	// Paper selects the Binance testnet instead of the live exchange.
	Paper bool `yaml:"paper"`
	// LogFile, when set, mirrors the live loop's log output to a file.
	LogFile string `yaml:"log_file"`
}

// Config is the top-level configuration for the trade command.
type Config struct {
	Symbol   string                                `yaml:"symbol" validate:"required"`
	Interval string                                `yaml:"interval" validate:"required"`
	Strategy StrategyConfig                        `yaml:"strategy"`
	Trading  TradingConfig                         `yaml:"trading"`
	Binance  tradingprovider.BinanceProviderConfig `yaml:"binance"`
}

// Load reads and validates a config file. Binance credentials fall back to
// the BINANCE_API_KEY and BINANCE_SECRET_KEY environment variables so they
// can stay out of the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "cannot read config file %s", path)
	}

	return Parse(data)
}

// Parse parses and validates config file contents.
func Parse(data []byte) (*Config, error) {
	config := defaultConfig()

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "cannot parse config file", err)
	}

	if config.Binance.ApiKey == "" {
		config.Binance.ApiKey = os.Getenv("BINANCE_API_KEY")
	}

	if config.Binance.SecretKey == "" {
		config.Binance.SecretKey = os.Getenv("BINANCE_SECRET_KEY")
	}

	// The provider config mirrors the top-level pair settings.
	if config.Binance.Symbol == "" {
		config.Binance.Symbol = config.Symbol
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func defaultConfig() *Config {
	defaults := engine.DefaultLiveTradingConfig("")

	return &Config{
		Interval: defaults.Interval,
		Trading: TradingConfig{
			PollInterval:   Duration(defaults.PollInterval),
			MaxRuntime:     Duration(defaults.MaxRuntime),
			LookbackBars:   defaults.LookbackBars,
			EquityFraction: defaults.EquityFraction,
			Paper:          true,
		},
		Binance: tradingprovider.BinanceProviderConfig{
			QuoteAsset: "USDT",
		},
	}
}

// Validate validates the Config struct, including the nested provider
// config.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return c.Binance.Validate()
}

// LiveTradingConfig builds the engine config from the loaded file.
func (c *Config) LiveTradingConfig() engine.LiveTradingConfig {
	return engine.LiveTradingConfig{
		Symbol:         c.Symbol,
		Interval:       c.Interval,
		PollInterval:   time.Duration(c.Trading.PollInterval),
		MaxRuntime:     time.Duration(c.Trading.MaxRuntime),
		LookbackBars:   c.Trading.LookbackBars,
		EquityFraction: c.Trading.EquityFraction,
	}
}

// ProviderType returns the trading provider implied by the paper flag.
func (c *Config) ProviderType() tradingprovider.ProviderType {
	if c.Trading.Paper {
		return tradingprovider.ProviderBinancePaper
	}

	return tradingprovider.ProviderBinanceLive
}
