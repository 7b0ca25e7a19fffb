package strategy

import (
	"github.com/kestrel-trading/kestrel/internal/indicator"
	"github.com/kestrel-trading/kestrel/internal/position"
	"github.com/kestrel-trading/kestrel/internal/types"
)

const EmaRsiMeanReversionName = "EmaRsiMeanReversion"

// EmaRsiParams configures the EMA/RSI mean-reversion variant.
type EmaRsiParams struct {
	RsiWindow    int     `yaml:"rsi_window" validate:"required,gt=0"`
	EmaWindow    int     `yaml:"ema_window" validate:"required,gt=0"`
	LowerRsiBand float64 `yaml:"lower_rsi_band" validate:"required,gt=0,lt=100"`
	UpperRsiBand float64 `yaml:"upper_rsi_band" validate:"required,gt=0,lte=100,gtfield=LowerRsiBand"`
}

func DefaultEmaRsiParams() EmaRsiParams {
	return EmaRsiParams{
		RsiWindow:    10,
		EmaWindow:    70,
		LowerRsiBand: 30,
		UpperRsiBand: 80,
	}
}

// EmaRsiMeanReversion buys when price crosses below a slow EMA while RSI is
// oversold, and exits when RSI turns overbought or a protective level is
// breached.
type EmaRsiMeanReversion struct {
	params EmaRsiParams
}

var _ Strategy = (*EmaRsiMeanReversion)(nil)

func NewEmaRsiMeanReversion(params EmaRsiParams) (*EmaRsiMeanReversion, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	return &EmaRsiMeanReversion{params: params}, nil
}

func (s *EmaRsiMeanReversion) Name() string {
	return EmaRsiMeanReversionName
}

func (s *EmaRsiMeanReversion) Params() EmaRsiParams {
	return s.params
}

func (s *EmaRsiMeanReversion) WarmupBars() int {
	return max(s.params.EmaWindow, s.params.RsiWindow+1)
}

func (s *EmaRsiMeanReversion) ComputeIndicators(bars []types.MarketData) (*IndicatorSet, error) {
	closes := types.Closes(bars)

	ema, err := indicator.EMA(closes, s.params.EmaWindow)
	if err != nil {
		return nil, err
	}

	rsi, err := indicator.RSI(closes, s.params.RsiWindow)
	if err != nil {
		return nil, err
	}

	set := NewIndicatorSet()
	set.Set(SeriesClose, closes)
	set.Set(SeriesEMA, ema)
	set.Set(SeriesRSI, rsi)

	return set, nil
}

func (s *EmaRsiMeanReversion) Evaluate(set *IndicatorSet, bars []types.MarketData, index int, pos *position.Tracker) types.SignalType {
	close := set.At(SeriesClose, index)

	if anomalousPosition(pos) {
		return types.SignalTypeClosePosition
	}

	if pos.IsLong() {
		if protectiveExit(close, pos) || set.At(SeriesRSI, index) > s.params.UpperRsiBand {
			return types.SignalTypeClosePosition
		}

		return types.SignalTypeHold
	}

	if indicator.CrossBelow(set.Get(SeriesClose), set.Get(SeriesEMA), index) &&
		set.At(SeriesRSI, index) < s.params.LowerRsiBand {
		return types.SignalTypeOpenLong
	}

	return types.SignalTypeHold
}
