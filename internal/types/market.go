package types

import "time"

// MarketData is a single OHLCV bar for a symbol. Bars arrive deduplicated
// and sorted by strictly increasing timestamp (the data provider collapses
// duplicates before the engine sees them).
type MarketData struct {
	Symbol     string    `csv:"symbol" yaml:"symbol"`
	Time       time.Time `csv:"time" yaml:"time"`
	Open       float64   `csv:"open" yaml:"open"`
	High       float64   `csv:"high" yaml:"high"`
	Low        float64   `csv:"low" yaml:"low"`
	Close      float64   `csv:"close" yaml:"close"`
	Volume     float64   `csv:"volume" yaml:"volume"`
	TradeCount int64     `csv:"trade_count" yaml:"trade_count"`
}

// Closes extracts the close price series from a bar slice, aligned
// index-for-index with the input.
func Closes(bars []MarketData) []float64 {
	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}

	return closes
}
