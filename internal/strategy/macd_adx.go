package strategy

import (
	"github.com/kestrel-trading/kestrel/internal/indicator"
	"github.com/kestrel-trading/kestrel/internal/position"
	"github.com/kestrel-trading/kestrel/internal/types"
)

const MacdAdxTrendFollowingName = "MacdAdxTrendFollowing"

// MacdAdxParams configures the MACD/ADX trend-following variant.
type MacdAdxParams struct {
	AdxWindow         int     `yaml:"adx_window" validate:"required,gt=1"`
	AdxEntryThreshold float64 `yaml:"adx_entry_threshold" validate:"required,gt=0,gtfield=AdxExitThreshold"`
	AdxExitThreshold  float64 `yaml:"adx_exit_threshold" validate:"required,gt=0"`
	MacdShortWindow   int     `yaml:"macd_short_window" validate:"required,gt=0"`
	MacdLongWindow    int     `yaml:"macd_long_window" validate:"required,gt=0,gtfield=MacdShortWindow"`
	MacdSignalWindow  int     `yaml:"macd_signal_window" validate:"required,gt=0"`
}

func DefaultMacdAdxParams() MacdAdxParams {
	return MacdAdxParams{
		AdxWindow:         13,
		AdxEntryThreshold: 25,
		AdxExitThreshold:  20,
		MacdShortWindow:   14,
		MacdLongWindow:    28,
		MacdSignalWindow:  9,
	}
}

// MacdAdxTrendFollowing buys when the MACD line crosses above its signal line
// in a confirmed uptrend (+DI above -DI, ADX above the entry threshold), and
// exits when the trend weakens below the exit threshold or a protective
// level is breached.
type MacdAdxTrendFollowing struct {
	params MacdAdxParams
}

var _ Strategy = (*MacdAdxTrendFollowing)(nil)

func NewMacdAdxTrendFollowing(params MacdAdxParams) (*MacdAdxTrendFollowing, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	return &MacdAdxTrendFollowing{params: params}, nil
}

func (s *MacdAdxTrendFollowing) Name() string {
	return MacdAdxTrendFollowingName
}

func (s *MacdAdxTrendFollowing) Params() MacdAdxParams {
	return s.params
}

func (s *MacdAdxTrendFollowing) WarmupBars() int {
	// The value-seeded smoothings are defined from the first bars; two bars
	// are the hard minimum for the directional movement series.
	return 2
}

func (s *MacdAdxTrendFollowing) ComputeIndicators(bars []types.MarketData) (*IndicatorSet, error) {
	closes := types.Closes(bars)

	macd, err := indicator.MACD(closes, s.params.MacdShortWindow, s.params.MacdLongWindow, s.params.MacdSignalWindow)
	if err != nil {
		return nil, err
	}

	adx, err := indicator.ADX(bars, s.params.AdxWindow)
	if err != nil {
		return nil, err
	}

	set := NewIndicatorSet()
	set.Set(SeriesClose, closes)
	set.Set(SeriesMACD, macd.MACD)
	set.Set(SeriesMACDSignal, macd.Signal)
	set.Set(SeriesADX, adx.ADX)
	set.Set(SeriesPlusDI, adx.PlusDI)
	set.Set(SeriesMinusDI, adx.MinusDI)

	return set, nil
}

func (s *MacdAdxTrendFollowing) Evaluate(set *IndicatorSet, bars []types.MarketData, index int, pos *position.Tracker) types.SignalType {
	close := set.At(SeriesClose, index)

	if anomalousPosition(pos) {
		return types.SignalTypeClosePosition
	}

	if pos.IsLong() {
		if set.At(SeriesADX, index) < s.params.AdxExitThreshold || protectiveExit(close, pos) {
			return types.SignalTypeClosePosition
		}

		return types.SignalTypeHold
	}

	if indicator.CrossAbove(set.Get(SeriesMACD), set.Get(SeriesMACDSignal), index) &&
		set.At(SeriesPlusDI, index) > set.At(SeriesMinusDI, index) &&
		set.At(SeriesADX, index) > s.params.AdxEntryThreshold {
		return types.SignalTypeOpenLong
	}

	return types.SignalTypeHold
}
