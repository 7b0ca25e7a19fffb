package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/kestrel-trading/kestrel/internal/config"
	"github.com/kestrel-trading/kestrel/internal/logger"
	"github.com/kestrel-trading/kestrel/internal/position"
	"github.com/kestrel-trading/kestrel/internal/strategy"
	tradingengine "github.com/kestrel-trading/kestrel/internal/trading/engine/engine_v1"
	tradingprovider "github.com/kestrel-trading/kestrel/internal/trading/provider"
	mdprovider "github.com/kestrel-trading/kestrel/pkg/marketdata/provider"
)

func tradeCommand() *cli.Command {
	return &cli.Command{
		Name:  "trade",
		Usage: "Run the live polling loop against Binance",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to the YAML config file",
				Required: true,
			},
		},
		Action: tradeAction,
	}
}

func tradeAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	log, err := newTradeLogger(cfg)
	if err != nil {
		return err
	}

	defer log.Sync()

	raw, err := cfg.Strategy.RawParams()
	if err != nil {
		return err
	}

	strat, err := strategy.New(cfg.Strategy.Name, raw)
	if err != nil {
		return err
	}

	broker, err := tradingprovider.NewTradingProvider(cfg.ProviderType(), cfg.Binance)
	if err != nil {
		return err
	}

	tracker := position.NewTracker(cfg.Symbol)

	executor, err := tradingengine.NewExecutor(broker, tracker, log, cfg.Trading.EquityFraction, strat.Name())
	if err != nil {
		return err
	}

	liveEngine, err := tradingengine.NewLiveEngineV1(cfg.LiveTradingConfig(), strat,
		mdprovider.NewBinanceProvider(), executor, tracker, log)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = liveEngine.Run(runCtx)
	if err == context.Canceled {
		log.Info("interrupted, shutting down")

		return nil
	}

	return err
}

func newTradeLogger(cfg *config.Config) (*logger.Logger, error) {
	if cfg.Trading.LogFile != "" {
		return logger.NewFileLogger(cfg.Trading.LogFile)
	}

	return logger.NewLogger()
}
