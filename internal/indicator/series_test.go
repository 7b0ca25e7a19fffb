package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SeriesTestSuite struct {
	suite.Suite
}

func TestSeriesSuite(t *testing.T) {
	suite.Run(t, new(SeriesTestSuite))
}

func (suite *SeriesTestSuite) TestCrossAbove() {
	a := []float64{1, 3}
	b := []float64{2, 2}

	suite.True(CrossAbove(a, b, 1))
	suite.False(CrossBelow(a, b, 1))
}

func (suite *SeriesTestSuite) TestCrossBelow() {
	a := []float64{3, 1}
	b := []float64{2, 2}

	suite.True(CrossBelow(a, b, 1))
	suite.False(CrossAbove(a, b, 1))
}

func (suite *SeriesTestSuite) TestTouchCountsAsCross() {
	// a reaches exactly b from below.
	a := []float64{1, 2}
	b := []float64{2, 2}

	suite.True(CrossAbove(a, b, 1))
}

func (suite *SeriesTestSuite) TestNoCrossWhenAlreadyAbove() {
	a := []float64{3, 4}
	b := []float64{2, 2}

	suite.False(CrossAbove(a, b, 1))
	suite.False(CrossBelow(a, b, 1))
}

func (suite *SeriesTestSuite) TestUndefinedValuesNeverCross() {
	a := []float64{math.NaN(), 3}
	b := []float64{2, 2}

	suite.False(CrossAbove(a, b, 1))
	suite.False(CrossBelow(a, b, 1))
}

func (suite *SeriesTestSuite) TestFirstIndexNeverCrosses() {
	a := []float64{3}
	b := []float64{2}

	suite.False(CrossAbove(a, b, 0))
	suite.False(CrossBelow(a, b, 0))
}

func (suite *SeriesTestSuite) TestOutOfRangeIndex() {
	a := []float64{1, 3}
	b := []float64{2, 2}

	suite.False(CrossAbove(a, b, 5))
	suite.False(CrossBelow(a, b, -1))
}
