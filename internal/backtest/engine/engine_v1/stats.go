package engine_v1

import (
	"math"
	"sort"
	"time"

	"github.com/kestrel-trading/kestrel/internal/types"
)

const hoursPerYear = 24 * 365

func barTimestamps(bars []types.MarketData) []time.Time {
	times := make([]time.Time, len(bars))
	for i, bar := range bars {
		times[i] = bar.Time
	}

	return times
}

// annualizationFactor estimates how many bars make up one year from the
// median spacing between consecutive bar timestamps. The median is robust to
// gaps (weekends, exchange downtime) that would skew a mean.
func annualizationFactor(times []time.Time) float64 {
	if len(times) < 2 {
		return math.NaN()
	}

	spacings := make([]float64, 0, len(times)-1)
	for i := 1; i < len(times); i++ {
		spacings = append(spacings, times[i].Sub(times[i-1]).Hours())
	}
	sort.Float64s(spacings)

	median := spacings[len(spacings)/2]
	if len(spacings)%2 == 0 {
		median = (spacings[len(spacings)/2-1] + spacings[len(spacings)/2]) / 2
	}

	if median <= 0 {
		return math.NaN()
	}

	return hoursPerYear / median
}

// totalReturnPct is the simple return over the whole equity curve, in percent.
func totalReturnPct(equity []float64) float64 {
	if len(equity) < 2 || equity[0] == 0 {
		return math.NaN()
	}

	return (equity[len(equity)-1]/equity[0] - 1) * 100
}

// annualizedReturnPct compounds the total return to a one-year horizon using
// the bar count and the per-year bar estimate.
func annualizedReturnPct(equity []float64, barsPerYear float64) float64 {
	if len(equity) < 2 || equity[0] <= 0 {
		return math.NaN()
	}

	growth := equity[len(equity)-1] / equity[0]
	if growth <= 0 {
		return math.NaN()
	}

	years := float64(len(equity)-1) / barsPerYear

	return (math.Pow(growth, 1/years) - 1) * 100
}

// annualizedVolatilityPct scales the per-bar return standard deviation to a
// one-year horizon.
func annualizedVolatilityPct(equity []float64, barsPerYear float64) float64 {
	if len(equity) < 3 {
		return math.NaN()
	}

	returns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		if equity[i-1] == 0 {
			return math.NaN()
		}
		returns = append(returns, equity[i]/equity[i-1]-1)
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)

	return math.Sqrt(variance) * math.Sqrt(barsPerYear) * 100
}

// maxDrawdownPct is the deepest peak-to-trough equity decline, in percent,
// reported as a negative number. A curve that never declines reports 0.
func maxDrawdownPct(equity []float64) float64 {
	if len(equity) == 0 {
		return math.NaN()
	}

	peak := equity[0]
	worst := 0.0

	for _, e := range equity {
		if e > peak {
			peak = e
		}

		if peak > 0 {
			dd := e/peak - 1
			if dd < worst {
				worst = dd
			}
		}
	}

	return worst * 100
}

// returnToDrawdown is the optimizer's objective: the absolute ratio of total
// return to max drawdown. NaN when either term is zero, so flat runs and
// runs that never drew down rank below any run with a defined ratio.
func returnToDrawdown(totalReturn, maxDrawdown float64) float64 {
	if totalReturn == 0 || maxDrawdown == 0 {
		return math.NaN()
	}

	return math.Abs(totalReturn / maxDrawdown)
}

// winRatePct is the share of closed trades with positive PnL, NaN when no
// trades closed.
func winRatePct(wins, trades int) float64 {
	if trades == 0 {
		return math.NaN()
	}

	return float64(wins) / float64(trades) * 100
}
