package indicator

// BollingerBandsResult holds the three Bollinger band series.
type BollingerBandsResult struct {
	Middle []float64
	Upper  []float64
	Lower  []float64
}

// BollingerBands computes the middle band as an SMA over the window and the
// upper/lower bands two rolling population standard deviations away from it.
func BollingerBands(prices []float64, window int) (BollingerBandsResult, error) {
	middle, err := SMA(prices, window)
	if err != nil {
		return BollingerBandsResult{}, err
	}

	std, err := RollingStd(prices, window)
	if err != nil {
		return BollingerBandsResult{}, err
	}

	upper := make([]float64, len(prices))
	lower := make([]float64, len(prices))

	for i := range prices {
		upper[i] = middle[i] + 2*std[i]
		lower[i] = middle[i] - 2*std[i]
	}

	return BollingerBandsResult{
		Middle: middle,
		Upper:  upper,
		Lower:  lower,
	}, nil
}
