// Package strategy evaluates bar series into trade intents. Each variant
// precomputes its indicator series over the full history and is then asked,
// bar by bar, for an intent given the current position state.
package strategy

import (
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/kestrel-trading/kestrel/internal/position"
	"github.com/kestrel-trading/kestrel/internal/types"
	"github.com/kestrel-trading/kestrel/pkg/errors"
)

// Strategy is a signal evaluator over a bar series.
//
// ComputeIndicators derives the variant's indicator series over the full
// history; Evaluate turns the series at one index into an intent. Evaluate
// must be pure with respect to the tracker: it reads position state but
// never mutates it.
type Strategy interface {
	// Name returns the variant name used in configs and stats output.
	Name() string
	// WarmupBars returns the minimum number of bars ComputeIndicators needs.
	WarmupBars() int
	// ComputeIndicators derives all indicator series for the given bars.
	ComputeIndicators(bars []types.MarketData) (*IndicatorSet, error)
	// Evaluate returns the intent for the bar at index.
	Evaluate(set *IndicatorSet, bars []types.MarketData, index int, pos *position.Tracker) types.SignalType
}

var validate = validator.New()

func validateParams(params any) error {
	if err := validate.Struct(params); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid strategy parameters", err)
	}

	return nil
}

// anomalousPosition reports whether the tracker holds something other than a
// long position. Such a position is closed unconditionally, before any
// variant-specific rule runs.
func anomalousPosition(pos *position.Tracker) bool {
	return pos.IsOpen() && !pos.IsLong()
}

// protectiveExit reports whether the close breaches the stop or take-profit
// level. Unset levels never trigger.
func protectiveExit(close float64, pos *position.Tracker) bool {
	stop := pos.StopLoss().TakeOr(math.NaN())
	takeProfit := pos.TakeProfit().TakeOr(math.NaN())

	return close <= stop || close >= takeProfit
}
