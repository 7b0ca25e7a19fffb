// Command kestrel backtests, optimizes, and live-trades the built-in
// strategy variants.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/moznion/go-optional"
	"github.com/urfave/cli/v3"

	"github.com/kestrel-trading/kestrel/internal/backtest/engine/engine_v1/datasource"
	"github.com/kestrel-trading/kestrel/internal/logger"
	"github.com/kestrel-trading/kestrel/internal/types"
)

func main() {
	cmd := &cli.Command{
		Name:  "kestrel",
		Usage: "Technical-analysis trading toolkit",
		Commands: []*cli.Command{
			backtestCommand(),
			optimizeCommand(),
			tradeCommand(),
			downloadCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadBarsFromFile loads a CSV or Parquet bar file through a transient
// DuckDB database.
func loadBarsFromFile(path string, log *logger.Logger) ([]types.MarketData, error) {
	source, err := datasource.NewDataSource(":memory:", log)
	if err != nil {
		return nil, err
	}

	defer source.Close()

	if err := source.Initialize(path); err != nil {
		return nil, err
	}

	return datasource.CollectBars(source, optional.None[time.Time](), optional.None[time.Time]())
}
