package strategy

import (
	"github.com/kestrel-trading/kestrel/internal/indicator"
	"github.com/kestrel-trading/kestrel/internal/position"
	"github.com/kestrel-trading/kestrel/internal/types"
)

const EmaAdxTrendFollowingName = "EmaAdxTrendFollowing"

// EmaAdxParams configures the EMA/ADX trend-following variant.
type EmaAdxParams struct {
	AdxWindow         int     `yaml:"adx_window" validate:"required,gt=1"`
	AdxEntryThreshold float64 `yaml:"adx_entry_threshold" validate:"required,gt=0,gtfield=AdxExitThreshold"`
	AdxExitThreshold  float64 `yaml:"adx_exit_threshold" validate:"required,gt=0"`
	EmaShortWindow    int     `yaml:"ema_short_window" validate:"required,gt=0"`
	EmaLongWindow     int     `yaml:"ema_long_window" validate:"required,gt=0,gtfield=EmaShortWindow"`
}

func DefaultEmaAdxParams() EmaAdxParams {
	return EmaAdxParams{
		AdxWindow:         14,
		AdxEntryThreshold: 25,
		AdxExitThreshold:  20,
		EmaShortWindow:    12,
		EmaLongWindow:     26,
	}
}

// EmaAdxTrendFollowing buys when the short exponentially weighted mean
// crosses above the long one in a confirmed uptrend. Both means are
// value-seeded, so they are defined from the first bar.
type EmaAdxTrendFollowing struct {
	params EmaAdxParams
}

var _ Strategy = (*EmaAdxTrendFollowing)(nil)

func NewEmaAdxTrendFollowing(params EmaAdxParams) (*EmaAdxTrendFollowing, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	return &EmaAdxTrendFollowing{params: params}, nil
}

func (s *EmaAdxTrendFollowing) Name() string {
	return EmaAdxTrendFollowingName
}

func (s *EmaAdxTrendFollowing) Params() EmaAdxParams {
	return s.params
}

func (s *EmaAdxTrendFollowing) WarmupBars() int {
	return 2
}

func (s *EmaAdxTrendFollowing) ComputeIndicators(bars []types.MarketData) (*IndicatorSet, error) {
	closes := types.Closes(bars)

	shortEma, err := indicator.EWMA(closes, s.params.EmaShortWindow)
	if err != nil {
		return nil, err
	}

	longEma, err := indicator.EWMA(closes, s.params.EmaLongWindow)
	if err != nil {
		return nil, err
	}

	adx, err := indicator.ADX(bars, s.params.AdxWindow)
	if err != nil {
		return nil, err
	}

	set := NewIndicatorSet()
	set.Set(SeriesClose, closes)
	set.Set(SeriesEMAShort, shortEma)
	set.Set(SeriesEMALong, longEma)
	set.Set(SeriesADX, adx.ADX)
	set.Set(SeriesPlusDI, adx.PlusDI)
	set.Set(SeriesMinusDI, adx.MinusDI)

	return set, nil
}

func (s *EmaAdxTrendFollowing) Evaluate(set *IndicatorSet, bars []types.MarketData, index int, pos *position.Tracker) types.SignalType {
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

	if indicator.CrossAbove(set.Get(SeriesEMAShort), set.Get(SeriesEMALong), index) &&
		set.At(SeriesPlusDI, index) > set.At(SeriesMinusDI, index) &&
		set.At(SeriesADX, index) > s.params.AdxEntryThreshold {
		return types.SignalTypeOpenLong
	}

	return types.SignalTypeHold
}
