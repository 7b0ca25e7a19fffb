package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	mdprovider "github.com/kestrel-trading/kestrel/pkg/marketdata/provider"
	"github.com/kestrel-trading/kestrel/pkg/marketdata/writer"
)

func downloadCommand() *cli.Command {
	return &cli.Command{
		Name:  "download",
		Usage: "Download historical bars to a CSV file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "symbol",
				Aliases:  []string{"t"},
				Usage:    "Symbol to download, e.g. BTCUSDT",
				Required: true,
			},
			&cli.TimestampFlag{
				Name:     "start",
				Aliases:  []string{"s"},
				Usage:    "Start date in `YYYY-MM-DD` format",
				Required: true,
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.TimestampFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "End date in `YYYY-MM-DD` format, defaults to now",
				Value:   time.Now(),
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.StringFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Bar interval, e.g. 1m, 15m, 4h, 1d",
				Value:   "1m",
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage: fmt.Sprintf("Data provider (%s, %s); polygon reads POLYGON_API_KEY",
					mdprovider.ProviderBinance, mdprovider.ProviderPolygon),
				Value: string(mdprovider.ProviderBinance),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output CSV path",
				Value:   "data/bars.csv",
			},
		},
		Action: downloadAction,
	}
}

func downloadAction(ctx context.Context, cmd *cli.Command) error {
	provider, err := mdprovider.NewMarketDataProvider(
		mdprovider.ProviderType(cmd.String("provider")), os.Getenv("POLYGON_API_KEY"))
	if err != nil {
		return err
	}

	output := cmd.String("output")
	provider.ConfigWriter(writer.NewCSVWriter(output))

	symbol := cmd.String("symbol")
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", symbol)),
		progressbar.OptionShowCount(),
	)

	start := cmd.Timestamp("start")
	end := cmd.Timestamp("end")

	path, err := provider.Download(ctx, symbol, cmd.String("interval"), start, end,
		func(current, total float64, message string) {
			if total > float64(start.UnixMilli()) {
				elapsed := (current - float64(start.UnixMilli())) / (total - float64(start.UnixMilli()))
				_ = bar.Set(int(elapsed * 100))
			}
		})
	if err != nil {
		return err
	}

	_ = bar.Finish()
	fmt.Printf("\nDownloaded %s bars to %s\n", symbol, path)

	return nil
}
