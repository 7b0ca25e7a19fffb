package optimizer

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	engine_v1 "github.com/kestrel-trading/kestrel/internal/backtest/engine/engine_v1"
	"github.com/kestrel-trading/kestrel/internal/logger"
	"github.com/kestrel-trading/kestrel/internal/strategy"
	"github.com/kestrel-trading/kestrel/internal/types"
	"github.com/kestrel-trading/kestrel/pkg/errors"
)

type OptimizerTestSuite struct {
	suite.Suite
}

func TestOptimizerSuite(t *testing.T) {
	suite.Run(t, new(OptimizerTestSuite))
}

func (suite *OptimizerTestSuite) TestBetterTreatsNaNAsLowest() {
	suite.True(better(1.0, math.NaN()))
	suite.False(better(math.NaN(), 1.0))
	suite.False(better(math.NaN(), math.NaN()))
	suite.True(better(2.0, 1.0))
	suite.False(better(1.0, 2.0))
}

func (suite *OptimizerTestSuite) TestEmaRsiGridHonorsBandConstraint() {
	candidates, err := EmaRsiCandidates()
	suite.Require().NoError(err)
	suite.NotEmpty(candidates)

	// rsi 5 x ema 5 x valid band pairs. All 4x5=20 pairs satisfy upper>lower
	// since the upper range starts above the lower range's end.
	suite.Len(candidates, 5*5*20)

	for _, candidate := range candidates {
		params := candidate.(*strategy.EmaRsiMeanReversion).Params()
		suite.Greater(params.UpperRsiBand, params.LowerRsiBand)
	}
}

func (suite *OptimizerTestSuite) TestMacdAdxGridSize() {
	candidates, err := MacdAdxCandidates()
	suite.Require().NoError(err)

	// adx 5 x short 4 x long 3.
	suite.Len(candidates, 5*4*3)
}

func (suite *OptimizerTestSuite) TestEmaAdxGridSize() {
	candidates, err := EmaAdxCandidates()
	suite.Require().NoError(err)

	// adx 5 x short 7 x long 6.
	suite.Len(candidates, 5*7*6)
}

func (suite *OptimizerTestSuite) TestCandidatesForUnknown() {
	_, err := CandidatesFor("NotAStrategy")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedStrategy))
}

func (suite *OptimizerTestSuite) TestOptimizeEmptyCandidates() {
	engine, err := engine_v1.NewBacktestV1(engine_v1.DefaultBacktestConfig(), logger.NewNopLogger())
	suite.Require().NoError(err)

	optimizer := NewOptimizer(engine, logger.NewNopLogger(), false)

	_, _, err = optimizer.Optimize(nil, nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeOptimizerNoCandidates))
}

func (suite *OptimizerTestSuite) TestOptimizeScoresAllCandidates() {
	engine, err := engine_v1.NewBacktestV1(engine_v1.DefaultBacktestConfig(), logger.NewNopLogger())
	suite.Require().NoError(err)

	optimizer := NewOptimizer(engine, logger.NewNopLogger(), false)

	var candidates []strategy.Strategy
	for _, rsiWindow := range []int{8, 10} {
		candidate, buildErr := strategy.NewEmaRsiMeanReversion(strategy.EmaRsiParams{
			RsiWindow:    rsiWindow,
			EmaWindow:    5,
			LowerRsiBand: 30,
			UpperRsiBand: 80,
		})
		suite.Require().NoError(buildErr)
		candidates = append(candidates, candidate)
	}

	// A flat stretch then a decline: the entry and stop-loss exit both fire,
	// so the objective is defined.
	closes := make([]float64, 0, 40)
	for i := 0; i < 12; i++ {
		closes = append(closes, 100)
	}
	for i := 0; i < 20; i++ {
		closes = append(closes, 100-2*float64(i+1))
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.MarketData, len(closes))
	for i, c := range closes {
		bars[i] = types.MarketData{
			Symbol: "BTCUSDT",
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}

	best, results, err := optimizer.Optimize(candidates, bars)
	suite.Require().NoError(err)

	suite.Len(results, len(candidates))
	suite.Equal(strategy.EmaRsiMeanReversionName, best.Stats.StrategyName)
	suite.False(math.IsNaN(best.Score))
}

func (suite *OptimizerTestSuite) TestCandidatesForAllVariants() {
	for _, name := range strategy.Names() {
		candidates, err := CandidatesFor(name)
		suite.NoError(err, name)
		suite.NotEmpty(candidates, name)

		for _, candidate := range candidates {
			suite.Equal(name, candidate.Name())
		}
	}
}
