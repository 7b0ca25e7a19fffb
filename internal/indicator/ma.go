package indicator

import (
	"math"

	"github.com/kestrel-trading/kestrel/pkg/errors"
)

// SMA computes the simple moving average over a trailing window. Output
// positions before index window-1 are NaN.
func SMA(prices []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidWindow, "sma window must be positive, got %d", window)
	}

	if len(prices) < window {
		return nil, errors.Wrapf(errors.ErrCodeInsufficientData,
			errors.NewInsufficientDataErrorf(window, len(prices), "", "sma requires %d prices, have %d", window, len(prices)),
			"sma window %d not satisfied", window)
	}

	out := nanSeries(len(prices))

	sum := 0.0
	for i, p := range prices {
		sum += p
		if i >= window {
			sum -= prices[i-window]
		}

		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}

	return out, nil
}

// RollingStd computes the population standard deviation over a trailing
// window, with the same warm-up rule as SMA.
func RollingStd(prices []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidWindow, "rolling std window must be positive, got %d", window)
	}

	if len(prices) < window {
		return nil, errors.Wrapf(errors.ErrCodeInsufficientData,
			errors.NewInsufficientDataErrorf(window, len(prices), "", "rolling std requires %d prices, have %d", window, len(prices)),
			"rolling std window %d not satisfied", window)
	}

	out := nanSeries(len(prices))

	for i := window - 1; i < len(prices); i++ {
		mean := 0.0
		for j := i - window + 1; j <= i; j++ {
			mean += prices[j]
		}

		mean /= float64(window)

		variance := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := prices[j] - mean
			variance += d * d
		}

		variance /= float64(window)

		out[i] = math.Sqrt(variance)
	}

	return out, nil
}
