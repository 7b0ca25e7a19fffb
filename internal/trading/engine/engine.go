// Package engine defines the live trading engine contract. An engine polls
// for market data, evaluates a strategy, and acts on the resulting intent
// through a trading provider.
package engine

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kestrel-trading/kestrel/pkg/errors"
)

// TradingEngine runs a strategy against live market data.
type TradingEngine interface {
	// Step executes a single poll cycle: fetch new bars, recompute
	// indicators, evaluate the strategy, act on the intent.
	Step(ctx context.Context) error
	// Run loops Step at the configured poll interval until the context is
	// cancelled or the maximum runtime elapses.
	Run(ctx context.Context) error
}

// LiveTradingConfig configures the polling loop.
type LiveTradingConfig struct {
	// Symbol is the traded pair, e.g. BTCUSDT.
	Symbol string `yaml:"symbol" validate:"required"`
	// Interval is the bar interval in Binance notation, e.g. "1m" or "4h".
	Interval string `yaml:"interval" validate:"required"`
	// PollInterval is the wall-clock delay between cycles.
	PollInterval time.Duration `yaml:"poll_interval" validate:"gt=0"`
	// MaxRuntime stops Run after the wall-clock duration elapses. Zero
	// means run until the context is cancelled.
	MaxRuntime time.Duration `yaml:"max_runtime" validate:"gte=0"`
	// LookbackBars caps the in-memory bar history used for indicator
	// computation. Must exceed the strategy's warmup.
	LookbackBars int `yaml:"lookback_bars" validate:"gt=1"`
	// EquityFraction is the fraction of account equity committed per entry.
	EquityFraction float64 `yaml:"equity_fraction" validate:"gt=0,lte=1"`
}

// DefaultLiveTradingConfig returns the config used when a field is not set
// explicitly.
func DefaultLiveTradingConfig(symbol string) LiveTradingConfig {
	return LiveTradingConfig{
		Symbol:         symbol,
		Interval:       "1m",
		PollInterval:   30 * time.Second,
		MaxRuntime:     0,
		LookbackBars:   500,
		EquityFraction: 0.02,
	}
}

// Validate validates the LiveTradingConfig struct.
func (c *LiveTradingConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid live trading config", err)
	}

	return nil
}
