package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"

	"github.com/kestrel-trading/kestrel/internal/types"
	"github.com/kestrel-trading/kestrel/pkg/errors"
	"github.com/kestrel-trading/kestrel/pkg/marketdata/writer"
)

// binanceKlinesPageSize is the per-request kline limit of the Binance REST
// API.
const binanceKlinesPageSize = 500

// KlinesService interface for fetching klines, extracted for testing.
type KlinesService interface {
	Symbol(symbol string) KlinesService
	Interval(interval string) KlinesService
	StartTime(startTime int64) KlinesService
	EndTime(endTime int64) KlinesService
	Limit(limit int) KlinesService
	Do(ctx context.Context) ([]*binance.Kline, error)
}

// BinanceAPIClient abstracts the Binance client for testing.
type BinanceAPIClient interface {
	NewKlinesService() KlinesService
}

type realBinanceAPIClient struct {
	client *binance.Client
}

func (r *realBinanceAPIClient) NewKlinesService() KlinesService {
	return &realKlinesService{service: r.client.NewKlinesService()}
}

type realKlinesService struct {
	service *binance.KlinesService
}

func (s *realKlinesService) Symbol(symbol string) KlinesService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realKlinesService) Interval(interval string) KlinesService {
	s.service = s.service.Interval(interval)

	return s
}

func (s *realKlinesService) StartTime(startTime int64) KlinesService {
	s.service = s.service.StartTime(startTime)

	return s
}

func (s *realKlinesService) EndTime(endTime int64) KlinesService {
	s.service = s.service.EndTime(endTime)

	return s
}

func (s *realKlinesService) Limit(limit int) KlinesService {
	s.service = s.service.Limit(limit)

	return s
}

func (s *realKlinesService) Do(ctx context.Context) ([]*binance.Kline, error) {
	return s.service.Do(ctx)
}

// BinanceProvider fetches historical klines from the Binance spot API.
// Klines are public data, so no credentials are needed.
type BinanceProvider struct {
	client BinanceAPIClient
	writer writer.MarketDataWriter
}

var _ Provider = (*BinanceProvider)(nil)

// NewBinanceProvider creates a Binance market data provider.
func NewBinanceProvider() *BinanceProvider {
	return &BinanceProvider{
		client: &realBinanceAPIClient{client: binance.NewClient("", "")},
	}
}

// newBinanceProviderWithClient injects a custom client for tests.
func newBinanceProviderWithClient(client BinanceAPIClient) *BinanceProvider {
	return &BinanceProvider{client: client}
}

// ConfigWriter implements Provider.
func (p *BinanceProvider) ConfigWriter(w writer.MarketDataWriter) {
	p.writer = w
}

// GetBars implements Provider.
func (p *BinanceProvider) GetBars(ctx context.Context, symbol string, interval string, start time.Time, end time.Time) ([]types.MarketData, error) {
	bars := make([]types.MarketData, 0, binanceKlinesPageSize)

	err := p.fetchPages(ctx, symbol, interval, start, end, func(page []types.MarketData) error {
		bars = append(bars, page...)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sortDedupBars(bars), nil
}

// Download implements Provider.
func (p *BinanceProvider) Download(ctx context.Context, symbol string, interval string, start time.Time, end time.Time, onProgress OnDownloadProgress) (string, error) {
	if p.writer == nil {
		return "", errors.New(errors.ErrCodeInvalidConfiguration, "no writer configured, call ConfigWriter first")
	}

	if err := p.writer.Initialize(); err != nil {
		return "", err
	}

	endMillis := float64(end.UnixMilli())

	err := p.fetchPages(ctx, symbol, interval, start, end, func(page []types.MarketData) error {
		for _, bar := range page {
			if err := p.writer.Write(bar); err != nil {
				return err
			}
		}

		if onProgress != nil && len(page) > 0 {
			last := page[len(page)-1]
			onProgress(float64(last.Time.UnixMilli()), endMillis,
				fmt.Sprintf("downloading %s klines from binance", symbol))
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return p.writer.Finalize()
}

// fetchPages pages through the klines endpoint. Binance caps each response
// at 500 klines, so the next request starts at the last kline's close time
// plus one millisecond.
func (p *BinanceProvider) fetchPages(ctx context.Context, symbol string, interval string, start time.Time, end time.Time, onPage func([]types.MarketData) error) error {
	if _, err := IntervalDuration(interval); err != nil {
		return err
	}

	currentStart := start.UnixMilli()
	endMillis := end.UnixMilli()

	for {
		klines, err := p.client.NewKlinesService().
			Symbol(symbol).
			Interval(interval).
			StartTime(currentStart).
			EndTime(endMillis).
			Limit(binanceKlinesPageSize).
			Do(ctx)
		if err != nil {
			return errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "cannot fetch klines from binance", err)
		}

		if err := onPage(barsFromKlines(symbol, klines)); err != nil {
			return err
		}

		if len(klines) < binanceKlinesPageSize {
			return nil
		}

		currentStart = klines[len(klines)-1].CloseTime + 1
		if currentStart >= endMillis {
			return nil
		}
	}
}

func barsFromKlines(symbol string, klines []*binance.Kline) []types.MarketData {
	bars := make([]types.MarketData, 0, len(klines))

	for _, k := range klines {
		open, _ := strconv.ParseFloat(k.Open, 64)
		high, _ := strconv.ParseFloat(k.High, 64)
		low, _ := strconv.ParseFloat(k.Low, 64)
		closePrice, _ := strconv.ParseFloat(k.Close, 64)
		volume, _ := strconv.ParseFloat(k.Volume, 64)

		bars = append(bars, types.MarketData{
			Symbol:     symbol,
			Time:       time.UnixMilli(k.OpenTime).UTC(),
			Open:       open,
			High:       high,
			Low:        low,
			Close:      closePrice,
			Volume:     volume,
			TradeCount: k.TradeNum,
		})
	}

	return bars
}
