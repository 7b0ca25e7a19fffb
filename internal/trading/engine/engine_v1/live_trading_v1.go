// Package engine_v1 implements the polling live trading engine. Each cycle
// fetches new bars, recomputes the strategy's indicators over the retained
// history, evaluates the last bar, and acts through the executor.
package engine_v1

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/kestrel-trading/kestrel/internal/logger"
	"github.com/kestrel-trading/kestrel/internal/position"
	"github.com/kestrel-trading/kestrel/internal/strategy"
	"github.com/kestrel-trading/kestrel/internal/trading/engine"
	"github.com/kestrel-trading/kestrel/internal/types"
	mdprovider "github.com/kestrel-trading/kestrel/pkg/marketdata/provider"
)

// LiveEngineV1 is the polling implementation of engine.TradingEngine.
type LiveEngineV1 struct {
	config   engine.LiveTradingConfig
	strat    strategy.Strategy
	data     mdprovider.Provider
	executor *Executor
	tracker  *position.Tracker
	log      *logger.Logger

	bars    []types.MarketData
	barSpan time.Duration
	now     func() time.Time
}

var _ engine.TradingEngine = (*LiveEngineV1)(nil)

// NewLiveEngineV1 creates a live engine. The tracker must be the same one
// the executor reconciles.
func NewLiveEngineV1(config engine.LiveTradingConfig, strat strategy.Strategy, data mdprovider.Provider, executor *Executor, tracker *position.Tracker, log *logger.Logger) (*LiveEngineV1, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	barSpan, err := mdprovider.IntervalDuration(config.Interval)
	if err != nil {
		return nil, err
	}

	return &LiveEngineV1{
		config:   config,
		strat:    strat,
		data:     data,
		executor: executor,
		tracker:  tracker,
		log:      log,
		bars:     make([]types.MarketData, 0, config.LookbackBars),
		barSpan:  barSpan,
		now:      time.Now,
	}, nil
}

// Step implements engine.TradingEngine. A cycle that cannot trade (not
// enough history yet) is not an error; a cycle that cannot fetch data or
// reach the broker returns the error so Run can log and continue.
func (e *LiveEngineV1) Step(ctx context.Context) error {
	end := e.now()
	start := end.Add(-time.Duration(e.config.LookbackBars) * e.barSpan)

	if len(e.bars) > 0 {
		// Refetch from the last retained bar so a still-forming bar gets
		// replaced by its final version.
		if last := e.bars[len(e.bars)-1].Time; last.After(start) {
			start = last
		}
	}

	fetched, err := e.data.GetBars(ctx, e.config.Symbol, e.config.Interval, start, end)
	if err != nil {
		return err
	}

	e.bars = mergeBars(e.bars, fetched, e.config.LookbackBars)

	if len(e.bars) <= e.strat.WarmupBars() {
		e.log.Debug("not enough history to evaluate",
			zap.Int("bars", len(e.bars)),
			zap.Int("warmup", e.strat.WarmupBars()),
		)

		return nil
	}

	set, err := e.strat.ComputeIndicators(e.bars)
	if err != nil {
		return err
	}

	last := len(e.bars) - 1
	signal := e.strat.Evaluate(set, e.bars, last, e.tracker)
	price := e.bars[last].Close

	e.log.Info("cycle evaluated",
		zap.Time("bar_time", e.bars[last].Time),
		zap.Float64("close", price),
		zap.String("signal", string(signal)),
		zap.Bool("position_open", e.tracker.IsOpen()),
	)

	return e.executor.Execute(ctx, signal, price)
}

// Run implements engine.TradingEngine. Failed cycles are logged and skipped;
// only context cancellation or the runtime cutoff stops the loop.
func (e *LiveEngineV1) Run(ctx context.Context) error {
	var deadline time.Time
	if e.config.MaxRuntime > 0 {
		deadline = e.now().Add(e.config.MaxRuntime)
	}

	e.log.Info("live trading started",
		zap.String("symbol", e.config.Symbol),
		zap.String("interval", e.config.Interval),
		zap.String("strategy", e.strat.Name()),
		zap.Duration("poll_interval", e.config.PollInterval),
		zap.Duration("max_runtime", e.config.MaxRuntime),
	)

	for {
		if !deadline.IsZero() && !e.now().Before(deadline) {
			e.log.Info("maximum runtime reached, stopping")

			return nil
		}

		if err := e.Step(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			e.log.Warn("cycle skipped", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(e.config.PollInterval):
		}
	}
}

// mergeBars merges newly fetched bars into the retained history, collapsing
// duplicate timestamps in favor of the newer fetch and trimming the history
// to the lookback cap.
func mergeBars(history []types.MarketData, fetched []types.MarketData, lookback int) []types.MarketData {
	if len(fetched) == 0 {
		return history
	}

	merged := make([]types.MarketData, 0, len(history)+len(fetched))
	merged = append(merged, history...)
	merged = append(merged, fetched...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Time.Before(merged[j].Time)
	})

	deduped := merged[:1]
	for _, bar := range merged[1:] {
		if bar.Time.Equal(deduped[len(deduped)-1].Time) {
			deduped[len(deduped)-1] = bar

			continue
		}

		deduped = append(deduped, bar)
	}

	if len(deduped) > lookback {
		deduped = deduped[len(deduped)-lookback:]
	}

	return deduped
}
