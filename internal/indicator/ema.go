package indicator

import (
	"github.com/kestrel-trading/kestrel/pkg/errors"
)

// EMA computes the exponential moving average with smoothing factor
// alpha = 2/(window+1). The value at index window-1 is seeded with the
// simple mean of the first window prices; every later value follows the
// recurrence ema[i] = alpha*price[i] + (1-alpha)*ema[i-1]. The first
// window-1 positions are NaN.
func EMA(prices []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidWindow, "ema window must be positive, got %d", window)
	}

	if len(prices) < window {
		return nil, errors.Wrapf(errors.ErrCodeInsufficientData,
			errors.NewInsufficientDataErrorf(window, len(prices), "", "ema requires %d prices to seed the initial mean, have %d", window, len(prices)),
			"ema window %d not satisfied", window)
	}

	out := nanSeries(len(prices))
	alpha := 2.0 / float64(window+1)

	seed := 0.0
	for i := 0; i < window; i++ {
		seed += prices[i]
	}

	out[window-1] = seed / float64(window)

	for i := window; i < len(prices); i++ {
		out[i] = alpha*prices[i] + (1-alpha)*out[i-1]
	}

	return out, nil
}

// EWMA computes the value-seeded exponentially weighted moving average with
// span semantics (alpha = 2/(span+1)), starting from the first sample with
// no warm-up window. MACD, ADX smoothing, and the EMA-crossover trend
// variant are defined in terms of this flavor.
func EWMA(prices []float64, span int) ([]float64, error) {
	if span <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidWindow, "ewma span must be positive, got %d", span)
	}

	if len(prices) == 0 {
		return nil, errors.Wrap(errors.ErrCodeInsufficientData,
			"ewma requires at least one price",
			errors.NewInsufficientDataError(1, 0, "", "empty price series"))
	}

	return ewma(prices, span), nil
}
