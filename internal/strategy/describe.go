package strategy

import "fmt"

// Describe renders a strategy's parameter set for stats output and logs.
func Describe(s Strategy) string {
	switch v := s.(type) {
	case *EmaRsiMeanReversion:
		return fmt.Sprintf("%+v", v.Params())
	case *BollingerRsiMeanReversion:
		return fmt.Sprintf("%+v", v.Params())
	case *MacdAdxTrendFollowing:
		return fmt.Sprintf("%+v", v.Params())
	case *EmaAdxTrendFollowing:
		return fmt.Sprintf("%+v", v.Params())
	default:
		return s.Name()
	}
}
