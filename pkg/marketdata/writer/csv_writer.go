package writer

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kestrel-trading/kestrel/internal/types"
	"github.com/kestrel-trading/kestrel/pkg/errors"
)

// csvHeader matches the column layout the backtest datasource expects.
var csvHeader = []string{"time", "symbol", "open", "high", "low", "close", "volume"}

// CSVWriter writes bars to a single CSV file.
type CSVWriter struct {
	outputPath string
	file       *os.File
	writer     *csv.Writer
}

var _ MarketDataWriter = (*CSVWriter)(nil)

// NewCSVWriter creates a CSV writer targeting the given file path. Parent
// directories are created on Initialize.
func NewCSVWriter(outputPath string) *CSVWriter {
	return &CSVWriter{outputPath: outputPath}
}

// Initialize implements MarketDataWriter.
func (w *CSVWriter) Initialize() error {
	if err := os.MkdirAll(filepath.Dir(w.outputPath), 0o755); err != nil {
		return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err,
			"cannot create output directory for %s", w.outputPath)
	}

	file, err := os.Create(w.outputPath)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err,
			"cannot create output file %s", w.outputPath)
	}

	w.file = file
	w.writer = csv.NewWriter(file)

	if err := w.writer.Write(csvHeader); err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "cannot write csv header", err)
	}

	return nil
}

// Write implements MarketDataWriter.
func (w *CSVWriter) Write(data types.MarketData) error {
	if w.writer == nil {
		return errors.New(errors.ErrCodeInvalidConfiguration, "csv writer is not initialized")
	}

	record := []string{
		data.Time.UTC().Format(time.RFC3339),
		data.Symbol,
		strconv.FormatFloat(data.Open, 'f', -1, 64),
		strconv.FormatFloat(data.High, 'f', -1, 64),
		strconv.FormatFloat(data.Low, 'f', -1, 64),
		strconv.FormatFloat(data.Close, 'f', -1, 64),
		strconv.FormatFloat(data.Volume, 'f', -1, 64),
	}

	if err := w.writer.Write(record); err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "cannot write csv record", err)
	}

	return nil
}

// Finalize implements MarketDataWriter.
func (w *CSVWriter) Finalize() (string, error) {
	if w.writer == nil {
		return "", errors.New(errors.ErrCodeInvalidConfiguration, "csv writer is not initialized")
	}

	w.writer.Flush()

	if err := w.writer.Error(); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "cannot flush csv output", err)
	}

	return w.outputPath, nil
}

// Close implements MarketDataWriter. Safe to call multiple times.
func (w *CSVWriter) Close() error {
	if w.file == nil {
		return nil
	}

	err := w.file.Close()
	w.file = nil
	w.writer = nil

	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "cannot close csv output", err)
	}

	return nil
}

// GetOutputPath implements MarketDataWriter.
func (w *CSVWriter) GetOutputPath() string {
	return w.outputPath
}
