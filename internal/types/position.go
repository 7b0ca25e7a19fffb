package types

// BrokerPosition is a position as reported by the broker's open-position
// query. This is the authoritative view the execution reconciler syncs the
// local position machine against.
type BrokerPosition struct {
	Symbol   string       `json:"symbol" yaml:"symbol"`
	Side     PositionType `json:"side" yaml:"side"`
	Quantity float64      `json:"quantity" yaml:"quantity"`
	// AvgEntryPrice is the broker-reported average entry price, zero when
	// the broker does not expose it.
	AvgEntryPrice float64 `json:"avg_entry_price" yaml:"avg_entry_price"`
}
