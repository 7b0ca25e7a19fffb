package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	engine "github.com/kestrel-trading/kestrel/internal/backtest/engine/engine_v1"
	"github.com/kestrel-trading/kestrel/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/kestrel-trading/kestrel/internal/logger"
	"github.com/kestrel-trading/kestrel/internal/optimizer"
	"github.com/kestrel-trading/kestrel/internal/strategy"
	"github.com/kestrel-trading/kestrel/internal/types"
)

func optimizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "optimize",
		Usage: "Grid-search strategy parameters over a historical bar file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Path to a CSV or Parquet bar file",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "strategy",
				Aliases: []string{"s"},
				Usage:   fmt.Sprintf("Strategy variant, one of %v", strategy.Names()),
				Value:   strategy.EmaRsiMeanReversionName,
			},
			&cli.FloatFlag{
				Name:  "capital",
				Usage: "Initial capital in quote currency",
				Value: engine.DefaultBacktestConfig().InitialCapital,
			},
			&cli.FloatFlag{
				Name:  "fraction",
				Usage: "Fraction of equity committed per entry",
				Value: engine.DefaultBacktestConfig().EquityFraction,
			},
			&cli.StringFlag{
				Name:  "commission",
				Usage: fmt.Sprintf("Commission model, one of %v", commission_fee.AllModels),
				Value: string(commission_fee.ModelZero),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write all scored results to this YAML file",
			},
		},
		Action: optimizeAction,
	}
}

func optimizeAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger()
	if err != nil {
		return err
	}

	defer log.Sync()

	bars, err := loadBarsFromFile(cmd.String("data"), log)
	if err != nil {
		return err
	}

	candidates, err := optimizer.CandidatesFor(cmd.String("strategy"))
	if err != nil {
		return err
	}

	config := engine.BacktestConfig{
		InitialCapital:  cmd.Float("capital"),
		EquityFraction:  cmd.Float("fraction"),
		CommissionModel: commission_fee.Model(cmd.String("commission")),
	}

	backtester, err := engine.NewBacktestV1(config, log)
	if err != nil {
		return err
	}

	// Per-run logging would drown the sweep; only the summary is reported.
	sweep := optimizer.NewOptimizer(backtester, logger.NewNopLogger(), true)

	best, results, err := sweep.Optimize(candidates, bars)
	if err != nil {
		return err
	}

	log.Info("sweep finished",
		zap.Int("candidates", len(candidates)),
		zap.Int("scored", len(results)),
		zap.String("best_params", best.Stats.Params),
		zap.Float64("best_score", best.Score),
	)

	if output := cmd.String("output"); output != "" {
		all := make([]types.BacktestStats, 0, len(results))
		for _, result := range results {
			all = append(all, result.Stats)
		}

		if err := types.WriteBacktestStats(output, all); err != nil {
			return err
		}
	}

	return emitStats("", []types.BacktestStats{best.Stats})
}
