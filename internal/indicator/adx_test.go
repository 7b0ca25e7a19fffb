package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/kestrel-trading/kestrel/internal/types"
	"github.com/kestrel-trading/kestrel/pkg/errors"
)

type ADXTestSuite struct {
	suite.Suite
}

func TestADXSuite(t *testing.T) {
	suite.Run(t, new(ADXTestSuite))
}

func bar(t time.Time, high, low, close float64) types.MarketData {
	return types.MarketData{
		Symbol: "TEST",
		Time:   t,
		Open:   close,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: 1000,
	}
}

func (suite *ADXTestSuite) TestZeroRangeBarsYieldNaN() {
	start := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	window := 5

	bars := make([]types.MarketData, window)
	for i := range bars {
		// high == low == close: TR, +DM and -DM are all zero.
		bars[i] = bar(start.Add(time.Duration(i)*time.Minute), 100, 100, 100)
	}

	result, err := ADX(bars, window)
	suite.NoError(err)

	for i := range bars {
		suite.True(math.IsNaN(result.ADX[i]), "adx index %d", i)
	}

	// DI divisions are 0/0 once smoothing seeds.
	suite.True(math.IsNaN(result.PlusDI[1]))
	suite.True(math.IsNaN(result.MinusDI[1]))
}

func (suite *ADXTestSuite) TestUptrendFavorsPlusDI() {
	start := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)

	bars := make([]types.MarketData, 40)
	for i := range bars {
		base := 100 + 2*float64(i)
		bars[i] = bar(start.Add(time.Duration(i)*time.Minute), base+1, base-1, base)
	}

	result, err := ADX(bars, 5)
	suite.NoError(err)

	last := len(bars) - 1
	suite.Greater(result.PlusDI[last], result.MinusDI[last])
	suite.False(math.IsNaN(result.ADX[last]))
	suite.GreaterOrEqual(result.ADX[last], 0.0)
	suite.LessOrEqual(result.ADX[last], 100.0)
}

func (suite *ADXTestSuite) TestRecoversAfterFlatStretch() {
	start := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)

	bars := make([]types.MarketData, 0, 30)
	for i := 0; i < 10; i++ {
		bars = append(bars, bar(start.Add(time.Duration(i)*time.Minute), 100, 100, 100))
	}

	for i := 10; i < 30; i++ {
		base := 100 + 2*float64(i-9)
		bars = append(bars, bar(start.Add(time.Duration(i)*time.Minute), base+1, base-1, base))
	}

	result, err := ADX(bars, 5)
	suite.NoError(err)

	// The undefined streak from the flat stretch is overwritten once the
	// range becomes nonzero again.
	suite.True(math.IsNaN(result.ADX[5]))
	suite.False(math.IsNaN(result.ADX[len(bars)-1]))
}

func (suite *ADXTestSuite) TestInsufficientData() {
	_, err := ADX([]types.MarketData{bar(time.Now(), 10, 9, 9.5)}, 14)
	suite.Error(err)
	suite.True(errors.IsInsufficientDataError(err))
}
