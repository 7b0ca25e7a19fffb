package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kestrel-trading/kestrel/pkg/errors"
)

type EMATestSuite struct {
	suite.Suite
}

func TestEMASuite(t *testing.T) {
	suite.Run(t, new(EMATestSuite))
}

func (suite *EMATestSuite) TestSeedEqualsSimpleMean() {
	prices := []float64{10, 11, 12, 13, 14, 15}
	window := 4

	out, err := EMA(prices, window)
	suite.NoError(err)

	for i := 0; i < window-1; i++ {
		suite.True(math.IsNaN(out[i]), "index %d should be undefined", i)
	}

	suite.InDelta((10+11+12+13)/4.0, out[window-1], 1e-12)
}

func (suite *EMATestSuite) TestRecurrenceHolds() {
	prices := []float64{100, 98, 103, 101, 99, 104, 102, 105, 103, 106}
	window := 3

	out, err := EMA(prices, window)
	suite.NoError(err)

	alpha := 2.0 / float64(window+1)
	for i := window; i < len(prices); i++ {
		expected := alpha*prices[i] + (1-alpha)*out[i-1]
		suite.InDelta(expected, out[i], 1e-12, "recurrence violated at index %d", i)
	}
}

func (suite *EMATestSuite) TestInsufficientData() {
	_, err := EMA([]float64{1, 2}, 3)
	suite.Error(err)
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *EMATestSuite) TestEWMAValueSeeded() {
	out, err := EWMA([]float64{2, 4, 6}, 2)
	suite.NoError(err)

	// Seeded with the first value, no warm-up NaN.
	suite.InDelta(2.0, out[0], 1e-12)
	suite.InDelta(10.0/3.0, out[1], 1e-12)
	suite.InDelta(46.0/9.0, out[2], 1e-12)
}

func (suite *EMATestSuite) TestEWMASkipsLeadingNaN() {
	out := ewma([]float64{math.NaN(), 5, 7}, 3)

	suite.True(math.IsNaN(out[0]))
	suite.InDelta(5.0, out[1], 1e-12)

	alpha := 2.0 / 4.0
	suite.InDelta(alpha*7+(1-alpha)*5, out[2], 1e-12)
}

func (suite *EMATestSuite) TestEWMAHoldsThroughMidSeriesNaN() {
	out := ewma([]float64{5, math.NaN(), 7}, 3)

	suite.InDelta(5.0, out[0], 1e-12)
	// NaN after the seed holds the previous smoothed value.
	suite.InDelta(5.0, out[1], 1e-12)

	alpha := 2.0 / 4.0
	suite.InDelta(alpha*7+(1-alpha)*5, out[2], 1e-12)
}

func (suite *EMATestSuite) TestEWMAEmptyInput() {
	_, err := EWMA(nil, 3)
	suite.Error(err)
	suite.True(errors.IsInsufficientDataError(err))
}
