package optimizer

import (
	"github.com/kestrel-trading/kestrel/internal/strategy"
	"github.com/kestrel-trading/kestrel/pkg/errors"
)

// intRange enumerates start, start+step, ... up to but excluding stop.
func intRange(start, stop, step int) []int {
	var out []int
	for v := start; v < stop; v += step {
		out = append(out, v)
	}

	return out
}

// EmaRsiCandidates enumerates the EMA/RSI mean-reversion grid. Band pairs
// with the upper band at or below the lower band are skipped.
func EmaRsiCandidates() ([]strategy.Strategy, error) {
	var candidates []strategy.Strategy

	for _, rsiWindow := range intRange(8, 18, 2) {
		for _, lower := range intRange(10, 50, 10) {
			for _, upper := range intRange(50, 100, 10) {
				if upper <= lower {
					continue
				}

				for _, emaWindow := range intRange(30, 80, 10) {
					strat, err := strategy.NewEmaRsiMeanReversion(strategy.EmaRsiParams{
						RsiWindow:    rsiWindow,
						EmaWindow:    emaWindow,
						LowerRsiBand: float64(lower),
						UpperRsiBand: float64(upper),
					})
					if err != nil {
						return nil, err
					}

					candidates = append(candidates, strat)
				}
			}
		}
	}

	return candidates, nil
}

// BollingerRsiCandidates enumerates the Bollinger/RSI mean-reversion grid.
func BollingerRsiCandidates() ([]strategy.Strategy, error) {
	var candidates []strategy.Strategy

	for _, bbWindow := range intRange(16, 24, 2) {
		for _, rsiWindow := range intRange(8, 18, 2) {
			for _, lower := range intRange(10, 50, 10) {
				for _, upper := range intRange(50, 100, 10) {
					if upper <= lower {
						continue
					}

					strat, err := strategy.NewBollingerRsiMeanReversion(strategy.BollingerRsiParams{
						BollingerWindow: bbWindow,
						RsiWindow:       rsiWindow,
						LowerRsiBand:    float64(lower),
						UpperRsiBand:    float64(upper),
					})
					if err != nil {
						return nil, err
					}

					candidates = append(candidates, strat)
				}
			}
		}
	}

	return candidates, nil
}

// MacdAdxCandidates enumerates the MACD/ADX trend-following grid. Thresholds
// and the signal window are fixed.
func MacdAdxCandidates() ([]strategy.Strategy, error) {
	var candidates []strategy.Strategy

	for _, adxWindow := range intRange(7, 16, 2) {
		for _, short := range intRange(8, 16, 2) {
			for _, long := range intRange(24, 30, 2) {
				strat, err := strategy.NewMacdAdxTrendFollowing(strategy.MacdAdxParams{
					AdxWindow:         adxWindow,
					AdxEntryThreshold: 25,
					AdxExitThreshold:  20,
					MacdShortWindow:   short,
					MacdLongWindow:    long,
					MacdSignalWindow:  9,
				})
				if err != nil {
					return nil, err
				}

				candidates = append(candidates, strat)
			}
		}
	}

	return candidates, nil
}

// EmaAdxCandidates enumerates the EMA-crossover/ADX trend-following grid.
func EmaAdxCandidates() ([]strategy.Strategy, error) {
	var candidates []strategy.Strategy

	for _, adxWindow := range intRange(7, 16, 2) {
		for _, short := range intRange(5, 12, 1) {
			for _, long := range intRange(50, 110, 10) {
				strat, err := strategy.NewEmaAdxTrendFollowing(strategy.EmaAdxParams{
					AdxWindow:         adxWindow,
					AdxEntryThreshold: 25,
					AdxExitThreshold:  20,
					EmaShortWindow:    short,
					EmaLongWindow:     long,
				})
				if err != nil {
					return nil, err
				}

				candidates = append(candidates, strat)
			}
		}
	}

	return candidates, nil
}

// CandidatesFor returns the grid for one strategy variant by name.
func CandidatesFor(name string) ([]strategy.Strategy, error) {
	switch name {
	case strategy.EmaRsiMeanReversionName:
		return EmaRsiCandidates()
	case strategy.BollingerRsiMeanReversionName:
		return BollingerRsiCandidates()
	case strategy.MacdAdxTrendFollowingName:
		return MacdAdxCandidates()
	case strategy.EmaAdxTrendFollowingName:
		return EmaAdxCandidates()
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedStrategy, "no parameter grid for strategy %q", name)
	}
}
