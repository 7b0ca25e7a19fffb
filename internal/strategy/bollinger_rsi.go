package strategy

import (
	"github.com/kestrel-trading/kestrel/internal/indicator"
	"github.com/kestrel-trading/kestrel/internal/position"
	"github.com/kestrel-trading/kestrel/internal/types"
)

const BollingerRsiMeanReversionName = "BollingerRsiMeanReversion"

// BollingerRsiParams configures the Bollinger/RSI mean-reversion variant.
type BollingerRsiParams struct {
	BollingerWindow int     `yaml:"bollinger_window" validate:"required,gt=0"`
	RsiWindow       int     `yaml:"rsi_window" validate:"required,gt=0"`
	LowerRsiBand    float64 `yaml:"lower_rsi_band" validate:"required,gt=0,lt=100"`
	UpperRsiBand    float64 `yaml:"upper_rsi_band" validate:"required,gt=0,lte=100,gtfield=LowerRsiBand"`
}

func DefaultBollingerRsiParams() BollingerRsiParams {
	return BollingerRsiParams{
		BollingerWindow: 20,
		RsiWindow:       14,
		LowerRsiBand:    30,
		UpperRsiBand:    70,
	}
}

// BollingerRsiMeanReversion buys when price crosses below the lower Bollinger
// band while RSI is oversold, and exits when RSI turns overbought or a
// protective level is breached.
type BollingerRsiMeanReversion struct {
	params BollingerRsiParams
}

var _ Strategy = (*BollingerRsiMeanReversion)(nil)

func NewBollingerRsiMeanReversion(params BollingerRsiParams) (*BollingerRsiMeanReversion, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	return &BollingerRsiMeanReversion{params: params}, nil
}

func (s *BollingerRsiMeanReversion) Name() string {
	return BollingerRsiMeanReversionName
}

func (s *BollingerRsiMeanReversion) Params() BollingerRsiParams {
	return s.params
}

func (s *BollingerRsiMeanReversion) WarmupBars() int {
	return max(s.params.BollingerWindow, s.params.RsiWindow+1)
}

func (s *BollingerRsiMeanReversion) ComputeIndicators(bars []types.MarketData) (*IndicatorSet, error) {
	closes := types.Closes(bars)

	bands, err := indicator.BollingerBands(closes, s.params.BollingerWindow)
	if err != nil {
		return nil, err
	}

	rsi, err := indicator.RSI(closes, s.params.RsiWindow)
	if err != nil {
		return nil, err
	}

	set := NewIndicatorSet()
	set.Set(SeriesClose, closes)
	set.Set(SeriesBBMiddle, bands.Middle)
	set.Set(SeriesBBUpper, bands.Upper)
	set.Set(SeriesBBLower, bands.Lower)
	set.Set(SeriesRSI, rsi)

	return set, nil
}

func (s *BollingerRsiMeanReversion) Evaluate(set *IndicatorSet, bars []types.MarketData, index int, pos *position.Tracker) types.SignalType {
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

	if indicator.CrossBelow(set.Get(SeriesClose), set.Get(SeriesBBLower), index) &&
		set.At(SeriesRSI, index) < s.params.LowerRsiBand {
		return types.SignalTypeOpenLong
	}

	return types.SignalTypeHold
}
