package provider

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"github.com/kestrel-trading/kestrel/internal/types"
	"github.com/kestrel-trading/kestrel/pkg/errors"
	"github.com/kestrel-trading/kestrel/pkg/marketdata/writer"
)

// polygonPageLimit is the maximum aggregates per page supported by the
// Polygon API.
const polygonPageLimit = 50000

// PolygonProvider fetches historical aggregates from the Polygon REST API.
type PolygonProvider struct {
	client *polygon.Client
	writer writer.MarketDataWriter
}

var _ Provider = (*PolygonProvider)(nil)

// NewPolygonProvider creates a Polygon market data provider.
func NewPolygonProvider(apiKey string) (*PolygonProvider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "polygon provider requires an api key")
	}

	return &PolygonProvider{client: polygon.New(apiKey)}, nil
}

// ConfigWriter implements Provider.
func (p *PolygonProvider) ConfigWriter(w writer.MarketDataWriter) {
	p.writer = w
}

// GetBars implements Provider.
func (p *PolygonProvider) GetBars(ctx context.Context, symbol string, interval string, start time.Time, end time.Time) ([]types.MarketData, error) {
	bars := make([]types.MarketData, 0)

	err := p.iterateAggs(ctx, symbol, interval, start, end, func(bar types.MarketData) error {
		bars = append(bars, bar)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sortDedupBars(bars), nil
}

// Download implements Provider.
func (p *PolygonProvider) Download(ctx context.Context, symbol string, interval string, start time.Time, end time.Time, onProgress OnDownloadProgress) (string, error) {
	if p.writer == nil {
		return "", errors.New(errors.ErrCodeInvalidConfiguration, "no writer configured, call ConfigWriter first")
	}

	if err := p.writer.Initialize(); err != nil {
		return "", err
	}

	endMillis := float64(end.UnixMilli())
	written := 0

	err := p.iterateAggs(ctx, symbol, interval, start, end, func(bar types.MarketData) error {
		if err := p.writer.Write(bar); err != nil {
			return err
		}

		written++
		if onProgress != nil && written%1000 == 0 {
			onProgress(float64(bar.Time.UnixMilli()), endMillis,
				fmt.Sprintf("downloading %s aggregates from polygon", symbol))
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return p.writer.Finalize()
}

func (p *PolygonProvider) iterateAggs(ctx context.Context, symbol string, interval string, start time.Time, end time.Time, onBar func(types.MarketData) error) error {
	multiplier, timespan, err := polygonTimespan(interval)
	if err != nil {
		return err
	}

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: multiplier,
		Timespan:   timespan,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithLimit(polygonPageLimit)

	iter := p.client.ListAggs(ctx, params)

	for iter.Next() {
		agg := iter.Item()

		bar := types.MarketData{
			Symbol:     symbol,
			Time:       time.Time(agg.Timestamp).UTC(),
			Open:       agg.Open,
			High:       agg.High,
			Low:        agg.Low,
			Close:      agg.Close,
			Volume:     agg.Volume,
			TradeCount: int64(agg.Transactions),
		}

		if err := onBar(bar); err != nil {
			return err
		}
	}

	if iter.Err() != nil {
		return errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "cannot fetch aggregates from polygon", iter.Err())
	}

	return nil
}

// polygonTimespan converts an interval string such as "15m" or "1d" to a
// Polygon multiplier and timespan.
func polygonTimespan(interval string) (int, models.Timespan, error) {
	if _, err := IntervalDuration(interval); err != nil {
		return 0, "", err
	}

	unit := interval[len(interval)-1:]
	multiplier, err := strconv.Atoi(strings.TrimSuffix(interval, unit))
	if err != nil {
		return 0, "", errors.Newf(errors.ErrCodeInvalidInterval, "unsupported interval: %s", interval)
	}

	switch unit {
	case "m":
		return multiplier, models.Minute, nil
	case "h":
		return multiplier, models.Hour, nil
	case "d":
		return multiplier, models.Day, nil
	default:
		return 0, "", errors.Newf(errors.ErrCodeInvalidInterval, "unsupported interval: %s", interval)
	}
}
