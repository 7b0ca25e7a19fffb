package indicator

import (
	"math"

	"github.com/kestrel-trading/kestrel/pkg/errors"
)

// RSI computes the smoothed (Wilder) Relative Strength Index. Per-bar gain
// and loss are max(delta, 0) and max(-delta, 0); the bar at index 0 has no
// previous close, so its gain and loss are both zero. The initial average
// gain/loss at index window-1 is the simple mean of the first window values;
// later averages follow avg[i] = (avg[i-1]*(window-1) + value[i]) / window.
// The first window output positions are NaN.
//
// When the average loss is exactly zero the division follows IEEE float
// semantics: a positive average gain yields RSI 100 (rs = +Inf), and an
// all-flat window yields NaN (0/0). No clamping is applied.
func RSI(prices []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidWindow, "rsi window must be positive, got %d", window)
	}

	if len(prices) < window+1 {
		return nil, errors.Wrapf(errors.ErrCodeInsufficientData,
			errors.NewInsufficientDataErrorf(window+1, len(prices), "", "rsi requires %d prices, have %d", window+1, len(prices)),
			"rsi window %d not satisfied", window)
	}

	gains := make([]float64, len(prices))
	losses := make([]float64, len(prices))

	for i := 1; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		gains[i] = math.Max(delta, 0)
		losses[i] = math.Max(-delta, 0)
	}

	avgGain := 0.0
	avgLoss := 0.0

	for i := 0; i < window; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}

	avgGain /= float64(window)
	avgLoss /= float64(window)

	out := nanSeries(len(prices))

	for i := window; i < len(prices); i++ {
		avgGain = (avgGain*float64(window-1) + gains[i]) / float64(window)
		avgLoss = (avgLoss*float64(window-1) + losses[i]) / float64(window)

		rs := avgGain / avgLoss
		out[i] = 100 - 100/(1+rs)
	}

	return out, nil
}
