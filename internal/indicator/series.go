// Package indicator implements the technical indicators used by the strategy
// variants. All functions are pure: they take a full price (or bar) history
// and return series aligned index-for-index with the input. Positions inside
// an indicator's warm-up window are NaN; inputs shorter than the minimum an
// operation needs fail with an InsufficientDataError.
package indicator

import "math"

// nanSeries returns a slice of the given length filled with NaN.
func nanSeries(length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

// ewma computes an exponentially weighted moving average with smoothing
// factor alpha = 2/(span+1), seeded at the first non-NaN sample. A NaN input
// after the seed holds the previous smoothed value; a NaN input before the
// seed yields NaN. This mirrors the recursive ewm(span, adjust=False)
// smoothing the MACD and ADX formulas are defined in terms of, which is
// value-seeded and has no warm-up window of its own.
func ewma(values []float64, span int) []float64 {
	out := nanSeries(len(values))
	alpha := 2.0 / float64(span+1)

	acc := math.NaN()
	seeded := false

	for i, v := range values {
		if math.IsNaN(v) {
			if seeded {
				out[i] = acc
			}

			continue
		}

		if !seeded {
			acc = v
			seeded = true
		} else {
			acc = alpha*v + (1-alpha)*acc
		}

		out[i] = acc
	}

	return out
}

// CrossAbove reports whether series a crossed above series b at index i:
// a was strictly below b on the previous sample and is at or above b now.
// It requires two consecutive defined samples, so it is always false at
// i == 0 and whenever any of the four samples is NaN. The first usable bar
// after an indicator's warm-up can therefore never signal a cross.
func CrossAbove(a, b []float64, i int) bool {
	if i < 1 || i >= len(a) || i >= len(b) {
		return false
	}

	if math.IsNaN(a[i-1]) || math.IsNaN(b[i-1]) || math.IsNaN(a[i]) || math.IsNaN(b[i]) {
		return false
	}

	return a[i-1] < b[i-1] && a[i] >= b[i]
}

// CrossBelow is the mirror of CrossAbove: a was at or above b on the
// previous sample and is strictly below b now.
func CrossBelow(a, b []float64, i int) bool {
	if i < 1 || i >= len(a) || i >= len(b) {
		return false
	}

	if math.IsNaN(a[i-1]) || math.IsNaN(b[i-1]) || math.IsNaN(a[i]) || math.IsNaN(b[i]) {
		return false
	}

	return a[i-1] >= b[i-1] && a[i] < b[i]
}
