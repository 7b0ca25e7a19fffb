package commission_fee

// CommissionFee computes the fee in quote currency for a fill with the given
// notional value.
type CommissionFee interface {
	Calculate(notional float64) float64
}

type Model string

const (
	ModelZero        Model = "zero"
	ModelBinanceSpot Model = "binance_spot"
)

var AllModels = []any{
	ModelZero,
	ModelBinanceSpot,
}

// GetCommissionFeeHandler returns the fee model for the given name. Unknown
// names fall back to zero commission.
func GetCommissionFeeHandler(model Model) CommissionFee {
	switch model {
	case ModelBinanceSpot:
		return NewRateCommissionFee(BinanceSpotTakerRate)
	case ModelZero:
		return NewZeroCommissionFee()
	default:
		return NewZeroCommissionFee()
	}
}
