package engine_v1

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type StatsTestSuite struct {
	suite.Suite
}

func TestStatsSuite(t *testing.T) {
	suite.Run(t, new(StatsTestSuite))
}

func hourlyTimes(count int) []time.Time {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	times := make([]time.Time, count)
	for i := range times {
		times[i] = start.Add(time.Duration(i) * time.Hour)
	}

	return times
}

func (suite *StatsTestSuite) TestAnnualizationFactorHourlyBars() {
	factor := annualizationFactor(hourlyTimes(100))
	suite.InDelta(8760.0, factor, 1e-9)
}

func (suite *StatsTestSuite) TestAnnualizationFactorIgnoresGaps() {
	times := hourlyTimes(50)
	// A two-day outage between two bars must not skew the estimate.
	for i := 25; i < len(times); i++ {
		times[i] = times[i].Add(48 * time.Hour)
	}

	factor := annualizationFactor(times)
	suite.InDelta(8760.0, factor, 1e-9)
}

func (suite *StatsTestSuite) TestTotalReturn() {
	suite.InDelta(10.0, totalReturnPct([]float64{100, 105, 110}), 1e-9)
	suite.InDelta(-50.0, totalReturnPct([]float64{100, 50}), 1e-9)
	suite.True(math.IsNaN(totalReturnPct([]float64{100})))
}

func (suite *StatsTestSuite) TestAnnualizedReturnOverExactYear() {
	// 8760 hourly intervals make exactly one year, so the annualized return
	// equals the total return.
	equity := make([]float64, 8761)
	for i := range equity {
		equity[i] = 100 * (1 + 0.1*float64(i)/8760)
	}

	suite.InDelta(10.0, annualizedReturnPct(equity, 8760), 1e-6)
}

func (suite *StatsTestSuite) TestAnnualizedVolatilityFlatCurve() {
	equity := []float64{100, 100, 100, 100}
	suite.InDelta(0.0, annualizedVolatilityPct(equity, 8760), 1e-9)
}

func (suite *StatsTestSuite) TestMaxDrawdown() {
	suite.InDelta(-25.0, maxDrawdownPct([]float64{100, 120, 90, 100}), 1e-9)
	suite.InDelta(0.0, maxDrawdownPct([]float64{100, 110, 120}), 1e-9)
}

func (suite *StatsTestSuite) TestReturnToDrawdown() {
	suite.InDelta(0.4, returnToDrawdown(10, -25), 1e-9)
	suite.True(math.IsNaN(returnToDrawdown(0, -25)))
	suite.True(math.IsNaN(returnToDrawdown(10, 0)))
}

func (suite *StatsTestSuite) TestWinRate() {
	suite.InDelta(50.0, winRatePct(2, 4), 1e-9)
	suite.True(math.IsNaN(winRatePct(0, 0)))
}
