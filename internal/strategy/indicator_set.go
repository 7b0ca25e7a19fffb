package strategy

import "math"

// Series names shared between ComputeIndicators and Evaluate.
const (
	SeriesEMA        = "ema"
	SeriesEMAShort   = "ema_short"
	SeriesEMALong    = "ema_long"
	SeriesRSI        = "rsi"
	SeriesBBUpper    = "bb_upper"
	SeriesBBMiddle   = "bb_middle"
	SeriesBBLower    = "bb_lower"
	SeriesMACD       = "macd"
	SeriesMACDSignal = "macd_signal"
	SeriesADX        = "adx"
	SeriesPlusDI     = "plus_di"
	SeriesMinusDI    = "minus_di"
	SeriesClose      = "close"
)

// IndicatorSet holds named indicator series, each aligned index-for-index
// with the bar series they were computed from.
type IndicatorSet struct {
	series map[string][]float64
}

func NewIndicatorSet() *IndicatorSet {
	return &IndicatorSet{series: make(map[string][]float64)}
}

// Set stores a series under the given name, replacing any previous one.
func (s *IndicatorSet) Set(name string, values []float64) {
	s.series[name] = values
}

// Get returns the named series, or nil if it was never set.
func (s *IndicatorSet) Get(name string) []float64 {
	return s.series[name]
}

// At returns the named series value at index, or NaN when the series is
// missing or the index is out of range.
func (s *IndicatorSet) At(name string, index int) float64 {
	values, ok := s.series[name]
	if !ok || index < 0 || index >= len(values) {
		return math.NaN()
	}

	return values[index]
}
