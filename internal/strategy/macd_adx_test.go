package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kestrel-trading/kestrel/internal/position"
	"github.com/kestrel-trading/kestrel/internal/types"
	"github.com/kestrel-trading/kestrel/pkg/errors"
)

type MacdAdxTestSuite struct {
	suite.Suite
	strat *MacdAdxTrendFollowing
}

func TestMacdAdxSuite(t *testing.T) {
	suite.Run(t, new(MacdAdxTestSuite))
}

func (suite *MacdAdxTestSuite) SetupTest() {
	strat, err := NewMacdAdxTrendFollowing(DefaultMacdAdxParams())
	suite.Require().NoError(err)
	suite.strat = strat
}

// trendSet hand-builds a MACD crossover with the given trend readings.
func trendSet(adx, plusDI, minusDI float64) *IndicatorSet {
	set := NewIndicatorSet()
	set.Set(SeriesClose, []float64{100, 101})
	set.Set(SeriesMACD, []float64{-0.5, 0.4})
	set.Set(SeriesMACDSignal, []float64{0.1, 0.2})
	set.Set(SeriesADX, []float64{adx, adx})
	set.Set(SeriesPlusDI, []float64{plusDI, plusDI})
	set.Set(SeriesMinusDI, []float64{minusDI, minusDI})

	return set
}

func (suite *MacdAdxTestSuite) TestEntryOnConfirmedCrossover() {
	set := trendSet(30, 28, 12)
	pos := position.NewTracker("BTCUSDT")

	suite.Equal(types.SignalTypeOpenLong, suite.strat.Evaluate(set, nil, 1, pos))
}

func (suite *MacdAdxTestSuite) TestNoEntryBelowAdxThreshold() {
	set := trendSet(18, 28, 12)
	pos := position.NewTracker("BTCUSDT")

	suite.Equal(types.SignalTypeHold, suite.strat.Evaluate(set, nil, 1, pos))
}

func (suite *MacdAdxTestSuite) TestNoEntryAgainstDirection() {
	set := trendSet(30, 12, 28)
	pos := position.NewTracker("BTCUSDT")

	suite.Equal(types.SignalTypeHold, suite.strat.Evaluate(set, nil, 1, pos))
}

func (suite *MacdAdxTestSuite) TestExitWhenTrendFades() {
	set := trendSet(15, 20, 10)
	pos := position.NewTracker("BTCUSDT")
	suite.Require().NoError(pos.OpenLong(100))

	suite.Equal(types.SignalTypeClosePosition, suite.strat.Evaluate(set, nil, 1, pos))
}

func (suite *MacdAdxTestSuite) TestExitOnTakeProfit() {
	set := NewIndicatorSet()
	set.Set(SeriesClose, []float64{112})
	set.Set(SeriesADX, []float64{40})

	pos := position.NewTracker("BTCUSDT")
	suite.Require().NoError(pos.OpenLong(100))

	suite.Equal(types.SignalTypeClosePosition, suite.strat.Evaluate(set, nil, 0, pos))
}

func (suite *MacdAdxTestSuite) TestHoldWhileTrendIntact() {
	set := NewIndicatorSet()
	set.Set(SeriesClose, []float64{102})
	set.Set(SeriesADX, []float64{35})

	pos := position.NewTracker("BTCUSDT")
	suite.Require().NoError(pos.OpenLong(100))

	suite.Equal(types.SignalTypeHold, suite.strat.Evaluate(set, nil, 0, pos))
}

func (suite *MacdAdxTestSuite) TestShortWindowMustBeBelowLong() {
	params := DefaultMacdAdxParams()
	params.MacdShortWindow = 30
	params.MacdLongWindow = 28

	_, err := NewMacdAdxTrendFollowing(params)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))
}

func (suite *MacdAdxTestSuite) TestComputeIndicatorsSeries() {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	set, err := suite.strat.ComputeIndicators(makeBars(closes))
	suite.NoError(err)

	suite.Len(set.Get(SeriesMACD), len(closes))
	suite.Len(set.Get(SeriesMACDSignal), len(closes))
	suite.Len(set.Get(SeriesADX), len(closes))
	suite.Len(set.Get(SeriesPlusDI), len(closes))
	suite.Len(set.Get(SeriesMinusDI), len(closes))
}
