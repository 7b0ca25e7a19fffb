package writer

import (
	"github.com/kestrel-trading/kestrel/internal/types"
)

// MarketDataWriter defines the interface for persisting downloaded market
// data to a destination such as a CSV file.
type MarketDataWriter interface {
	// Initialize sets up the writer, creating files or directories as needed.
	Initialize() error
	// Write persists a single bar.
	Write(data types.MarketData) error
	// Finalize completes the writing process and returns the output path.
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}
