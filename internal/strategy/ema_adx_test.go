package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kestrel-trading/kestrel/internal/position"
	"github.com/kestrel-trading/kestrel/internal/types"
)

type EmaAdxTestSuite struct {
	suite.Suite
	strat *EmaAdxTrendFollowing
}

func TestEmaAdxSuite(t *testing.T) {
	suite.Run(t, new(EmaAdxTestSuite))
}

func (suite *EmaAdxTestSuite) SetupTest() {
	strat, err := NewEmaAdxTrendFollowing(DefaultEmaAdxParams())
	suite.Require().NoError(err)
	suite.strat = strat
}

func emaCrossSet(adx, plusDI, minusDI float64) *IndicatorSet {
	set := NewIndicatorSet()
	set.Set(SeriesClose, []float64{100, 103})
	set.Set(SeriesEMAShort, []float64{99, 102})
	set.Set(SeriesEMALong, []float64{101, 101.5})
	set.Set(SeriesADX, []float64{adx, adx})
	set.Set(SeriesPlusDI, []float64{plusDI, plusDI})
	set.Set(SeriesMinusDI, []float64{minusDI, minusDI})

	return set
}

func (suite *EmaAdxTestSuite) TestEntryOnGoldenCross() {
	set := emaCrossSet(28, 30, 10)
	pos := position.NewTracker("BTCUSDT")

	suite.Equal(types.SignalTypeOpenLong, suite.strat.Evaluate(set, nil, 1, pos))
}

func (suite *EmaAdxTestSuite) TestNoEntryInWeakTrend() {
	set := emaCrossSet(12, 30, 10)
	pos := position.NewTracker("BTCUSDT")

	suite.Equal(types.SignalTypeHold, suite.strat.Evaluate(set, nil, 1, pos))
}

func (suite *EmaAdxTestSuite) TestExitWhenTrendFades() {
	set := emaCrossSet(15, 30, 10)
	pos := position.NewTracker("BTCUSDT")
	suite.Require().NoError(pos.OpenLong(100))

	suite.Equal(types.SignalTypeClosePosition, suite.strat.Evaluate(set, nil, 1, pos))
}

func (suite *EmaAdxTestSuite) TestAnomalousShortClosed() {
	set := emaCrossSet(30, 30, 10)
	pos := position.NewTracker("BTCUSDT")
	pos.SyncOpen(types.PositionTypeShort, 100)

	suite.Equal(types.SignalTypeClosePosition, suite.strat.Evaluate(set, nil, 1, pos))
}

func (suite *EmaAdxTestSuite) TestUptrendProducesEntry() {
	// A selloff followed by a sustained rally: the short mean crosses back
	// above the long one while the directional readings confirm the trend.
	closes := make([]float64, 0, 80)
	price := 100.0
	for i := 0; i < 30; i++ {
		price *= 0.99
		closes = append(closes, price)
	}
	for i := 0; i < 50; i++ {
		price *= 1.02
		closes = append(closes, price)
	}
	bars := makeBars(closes)

	set, err := suite.strat.ComputeIndicators(bars)
	suite.Require().NoError(err)

	pos := position.NewTracker("BTCUSDT")
	sawEntry := false

	for i := suite.strat.WarmupBars(); i < len(bars); i++ {
		if suite.strat.Evaluate(set, bars, i, pos) == types.SignalTypeOpenLong {
			sawEntry = true
			break
		}
	}

	suite.True(sawEntry)
}
