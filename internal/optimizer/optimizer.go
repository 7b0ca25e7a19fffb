// Package optimizer grid-searches strategy parameter sets against the
// backtest engine, scored by the return-to-drawdown ratio.
package optimizer

import (
	"math"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	engine_v1 "github.com/kestrel-trading/kestrel/internal/backtest/engine/engine_v1"
	"github.com/kestrel-trading/kestrel/internal/logger"
	"github.com/kestrel-trading/kestrel/internal/strategy"
	"github.com/kestrel-trading/kestrel/internal/types"
	"github.com/kestrel-trading/kestrel/pkg/errors"
)

// Result is one scored candidate.
type Result struct {
	Stats types.BacktestStats
	// Score is the return-to-drawdown ratio. NaN scores rank below every
	// defined score.
	Score float64
}

type Optimizer struct {
	engine       *engine_v1.BacktestV1
	logger       *logger.Logger
	showProgress bool
}

func NewOptimizer(engine *engine_v1.BacktestV1, log *logger.Logger, showProgress bool) *Optimizer {
	return &Optimizer{
		engine:       engine,
		logger:       log,
		showProgress: showProgress,
	}
}

// Optimize backtests every candidate over the bar series and returns the
// best result plus all scored results. Candidates whose run fails (for
// example a warm-up window longer than the series) are skipped with a log
// line rather than aborting the sweep.
func (o *Optimizer) Optimize(candidates []strategy.Strategy, bars []types.MarketData) (Result, []Result, error) {
	if len(candidates) == 0 {
		return Result{}, nil, errors.New(errors.ErrCodeOptimizerNoCandidates, "no candidates to optimize")
	}

	var bar *progressbar.ProgressBar
	if o.showProgress {
		bar = progressbar.Default(int64(len(candidates)), "optimizing")
	}

	results := make([]Result, 0, len(candidates))
	best := Result{Score: math.NaN()}
	haveBest := false

	for _, candidate := range candidates {
		if bar != nil {
			_ = bar.Add(1)
		}

		stats, err := o.engine.Run(candidate, bars)
		if err != nil {
			o.logger.Warn("skipping candidate",
				zap.String("strategy", candidate.Name()),
				zap.String("params", strategy.Describe(candidate)),
				zap.Error(err))

			continue
		}

		result := Result{Stats: stats, Score: stats.ReturnToDrawdownRatio}
		results = append(results, result)

		if !haveBest || better(result.Score, best.Score) {
			best = result
			haveBest = true
		}
	}

	if !haveBest {
		return Result{}, nil, errors.New(errors.ErrCodeOptimizerNoCandidates, "no candidate completed a backtest")
	}

	return best, results, nil
}

// better reports whether a beats b, treating NaN as the lowest possible
// score.
func better(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}

	if math.IsNaN(b) {
		return true
	}

	return a > b
}
