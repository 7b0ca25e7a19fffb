package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	engine "github.com/kestrel-trading/kestrel/internal/backtest/engine/engine_v1"
	"github.com/kestrel-trading/kestrel/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/kestrel-trading/kestrel/internal/logger"
	"github.com/kestrel-trading/kestrel/internal/strategy"
	"github.com/kestrel-trading/kestrel/internal/types"
)

func backtestCommand() *cli.Command {
	return &cli.Command{
		Name:  "backtest",
		Usage: "Run a strategy over a historical bar file",
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
			&cli.StringFlag{
				Name:    "params",
				Aliases: []string{"p"},
				Usage:   "YAML file with strategy parameter overrides",
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
				Usage:   "Write the run summary to this YAML file",
			},
		},
		Action: backtestAction,
	}
}

func backtestAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger()
	if err != nil {
		return err
	}

	defer log.Sync()

	bars, err := loadBarsFromFile(cmd.String("data"), log)
	if err != nil {
		return err
	}

	strat, err := loadStrategy(cmd.String("strategy"), cmd.String("params"))
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

	stats, err := backtester.Run(strat, bars)
	if err != nil {
		return err
	}

	return emitStats(cmd.String("output"), []types.BacktestStats{stats})
}

// loadStrategy builds a strategy from a variant name and an optional params
// file.
func loadStrategy(name string, paramsPath string) (strategy.Strategy, error) {
	var rawParams []byte

	if paramsPath != "" {
		data, err := os.ReadFile(paramsPath)
		if err != nil {
			return nil, fmt.Errorf("cannot read params file: %w", err)
		}

		rawParams = data
	}

	return strategy.New(name, rawParams)
}

// emitStats prints the run summaries to stdout and optionally writes them to
// a YAML file.
func emitStats(outputPath string, stats []types.BacktestStats) error {
	data, err := yaml.Marshal(stats)
	if err != nil {
		return err
	}

	fmt.Print(string(data))

	if outputPath != "" {
		return types.WriteBacktestStats(outputPath, stats)
	}

	return nil
}
