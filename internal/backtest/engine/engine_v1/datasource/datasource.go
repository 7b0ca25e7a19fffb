package datasource

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/kestrel-trading/kestrel/internal/types"
)

// DataSource feeds historical bars into the backtest engine.
type DataSource interface {
	// Initialize loads market data from the given CSV or Parquet file.
	Initialize(path string) error
	// ReadAll returns an iterator over all bars in time order, optionally
	// restricted to [start, end].
	ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.MarketData, error) bool)
	// Count returns the number of bars, optionally restricted to [start, end].
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// GetAllSymbols returns the distinct symbols present in the data.
	GetAllSymbols() ([]string, error)
	// Close releases the underlying database.
	Close() error
}

// CollectBars drains the data source iterator into a slice, stopping at the
// first error.
func CollectBars(source DataSource, start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.MarketData, error) {
	bars := make([]types.MarketData, 0)

	var iterErr error

	source.ReadAll(start, end)(func(bar types.MarketData, err error) bool {
		if err != nil {
			iterErr = err

			return false
		}

		bars = append(bars, bar)

		return true
	})

	if iterErr != nil {
		return nil, iterErr
	}

	return bars, nil
}
