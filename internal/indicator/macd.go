package indicator

import (
	"github.com/kestrel-trading/kestrel/pkg/errors"
)

// MACDResult holds the MACD line, its signal line, and the histogram.
type MACDResult struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes macd = EWMA(short) - EWMA(long), signal = EWMA(macd,
// signalWindow), and histogram = macd - signal. The EWMAs are value-seeded,
// so there is no warm-up gating beyond the seeding at index 0.
func MACD(prices []float64, shortWindow, longWindow, signalWindow int) (MACDResult, error) {
	if shortWindow <= 0 || longWindow <= 0 || signalWindow <= 0 {
		return MACDResult{}, errors.Newf(errors.ErrCodeInvalidWindow,
			"macd windows must be positive, got short=%d long=%d signal=%d", shortWindow, longWindow, signalWindow)
	}

	if shortWindow >= longWindow {
		return MACDResult{}, errors.Newf(errors.ErrCodeInvalidWindow,
			"macd short window %d must be smaller than long window %d", shortWindow, longWindow)
	}

	if len(prices) == 0 {
		return MACDResult{}, errors.Wrap(errors.ErrCodeInsufficientData,
			"macd requires at least one price",
			errors.NewInsufficientDataError(1, 0, "", "empty price series"))
	}

	shortEma := ewma(prices, shortWindow)
	longEma := ewma(prices, longWindow)

	macd := make([]float64, len(prices))
	for i := range prices {
		macd[i] = shortEma[i] - longEma[i]
	}

	signal := ewma(macd, signalWindow)

	histogram := make([]float64, len(prices))
	for i := range prices {
		histogram[i] = macd[i] - signal[i]
	}

	return MACDResult{
		MACD:      macd,
		Signal:    signal,
		Histogram: histogram,
	}, nil
}
