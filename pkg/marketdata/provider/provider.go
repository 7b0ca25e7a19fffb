package provider

import (
	"context"
	"sort"
	"time"

	"github.com/kestrel-trading/kestrel/internal/types"
	"github.com/kestrel-trading/kestrel/pkg/errors"
	"github.com/kestrel-trading/kestrel/pkg/marketdata/writer"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderBinance ProviderType = "binance"
	ProviderPolygon ProviderType = "polygon"
)

// OnDownloadProgress reports download progress to the caller.
type OnDownloadProgress = func(current float64, total float64, message string)

// Provider fetches historical bars for a symbol.
type Provider interface {
	// ConfigWriter configures the writer used by Download.
	ConfigWriter(w writer.MarketDataWriter)
	// GetBars returns the bars for the symbol and interval in [start, end],
	// deduplicated and sorted by ascending timestamp.
	GetBars(ctx context.Context, symbol string, interval string, start time.Time, end time.Time) ([]types.MarketData, error)
	// Download streams the bars for the date range through the configured
	// writer and returns the output path.
	Download(ctx context.Context, symbol string, interval string, start time.Time, end time.Time, onProgress OnDownloadProgress) (path string, err error)
}

// NewMarketDataProvider creates a market data provider. The API key is only
// required by Polygon; Binance klines are public data.
func NewMarketDataProvider(providerType ProviderType, apiKey string) (Provider, error) {
	switch providerType {
	case ProviderBinance:
		return NewBinanceProvider(), nil
	case ProviderPolygon:
		return NewPolygonProvider(apiKey)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider,
			"unsupported market data provider: %s", providerType)
	}
}

// intervalDurations lists the supported bar intervals in Binance notation.
var intervalDurations = map[string]time.Duration{
	"1m":  time.Minute,
	"3m":  3 * time.Minute,
	"5m":  5 * time.Minute,
	"15m": 15 * time.Minute,
	"30m": 30 * time.Minute,
	"1h":  time.Hour,
	"2h":  2 * time.Hour,
	"4h":  4 * time.Hour,
	"6h":  6 * time.Hour,
	"8h":  8 * time.Hour,
	"12h": 12 * time.Hour,
	"1d":  24 * time.Hour,
}

// IntervalDuration returns the bar duration for an interval string such as
// "1m" or "4h".
func IntervalDuration(interval string) (time.Duration, error) {
	duration, ok := intervalDurations[interval]
	if !ok {
		return 0, errors.Newf(errors.ErrCodeInvalidInterval, "unsupported interval: %s", interval)
	}

	return duration, nil
}

// sortDedupBars sorts bars by ascending timestamp and collapses duplicate
// timestamps, keeping the last occurrence.
func sortDedupBars(bars []types.MarketData) []types.MarketData {
	if len(bars) == 0 {
		return bars
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Time.Before(bars[j].Time)
	})

	deduped := bars[:1]
	for _, bar := range bars[1:] {
		if bar.Time.Equal(deduped[len(deduped)-1].Time) {
			deduped[len(deduped)-1] = bar

			continue
		}

		deduped = append(deduped, bar)
	}

	return deduped
}
