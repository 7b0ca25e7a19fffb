package indicator

import (
	"math"

	"github.com/kestrel-trading/kestrel/internal/types"
	"github.com/kestrel-trading/kestrel/pkg/errors"
)

// ADXResult holds the Average Directional Index and both directional
// indicator series.
type ADXResult struct {
	ADX     []float64
	PlusDI  []float64
	MinusDI []float64
}

// ADX computes the Average Directional Index from OHLC bars.
//
// True range TR = max(high-low, |high-prevClose|, |low-prevClose|);
// +DM/-DM are the positive high/low deltas, each nonzero only when its delta
// strictly exceeds the opposite delta. TR, +DM and -DM are smoothed with a
// value-seeded EWMA of span window; +DI = 100*(+DM_smooth/TR_smooth) and
// -DI analogous; DX = 100*|+DI - -DI|/(+DI + -DI); ADX = EWMA(DX, window).
//
// The bar at index 0 has no previous close, so TR/+DM/-DM start as NaN and
// the smoothed series seed at index 1. Zero-range input makes TR_smooth
// zero, the DI divisions 0/0 = NaN, and the whole ADX series NaN; a later
// bar with nonzero range re-seeds the smoothing and overwrites the
// undefined streak. No division guard is applied.
func ADX(bars []types.MarketData, window int) (ADXResult, error) {
	if window <= 0 {
		return ADXResult{}, errors.Newf(errors.ErrCodeInvalidWindow, "adx window must be positive, got %d", window)
	}

	if len(bars) < 2 {
		return ADXResult{}, errors.Wrapf(errors.ErrCodeInsufficientData,
			errors.NewInsufficientDataErrorf(2, len(bars), "", "adx requires at least 2 bars, have %d", len(bars)),
			"adx window %d not satisfied", window)
	}

	tr := nanSeries(len(bars))
	plusDM := nanSeries(len(bars))
	minusDM := nanSeries(len(bars))

	for i := 1; i < len(bars); i++ {
		high := bars[i].High
		low := bars[i].Low
		prevClose := bars[i-1].Close

		tr[i] = math.Max(high-low, math.Max(math.Abs(high-prevClose), math.Abs(low-prevClose)))

		upMove := high - bars[i-1].High
		downMove := bars[i-1].Low - low

		if upMove > downMove {
			plusDM[i] = math.Max(upMove, 0)
		} else {
			plusDM[i] = 0
		}

		if downMove > upMove {
			minusDM[i] = math.Max(downMove, 0)
		} else {
			minusDM[i] = 0
		}
	}

	trSmooth := ewma(tr, window)
	plusDMSmooth := ewma(plusDM, window)
	minusDMSmooth := ewma(minusDM, window)

	plusDI := nanSeries(len(bars))
	minusDI := nanSeries(len(bars))
	dx := nanSeries(len(bars))

	for i := range bars {
		plusDI[i] = 100 * (plusDMSmooth[i] / trSmooth[i])
		minusDI[i] = 100 * (minusDMSmooth[i] / trSmooth[i])
		dx[i] = 100 * math.Abs(plusDI[i]-minusDI[i]) / (plusDI[i] + minusDI[i])
	}

	adx := ewma(dx, window)

	return ADXResult{
		ADX:     adx,
		PlusDI:  plusDI,
		MinusDI: minusDI,
	}, nil
}
