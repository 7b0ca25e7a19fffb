package commission_fee

import "math"

// BinanceSpotTakerRate is the standard spot taker fee.
const BinanceSpotTakerRate = 0.001

// RateCommissionFee charges a flat percentage of the fill's notional value.
type RateCommissionFee struct {
	rate float64
}

func NewRateCommissionFee(rate float64) CommissionFee {
	return &RateCommissionFee{rate: rate}
}

func (c *RateCommissionFee) Calculate(notional float64) float64 {
	return math.Abs(notional) * c.rate
}
