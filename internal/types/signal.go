package types

import "time"

type SignalType string

const (
	// SignalTypeOpenLong tells the position machine to open a long position
	SignalTypeOpenLong SignalType = "open_long"
	// SignalTypeClosePosition tells the position machine to close the current position
	SignalTypeClosePosition SignalType = "close_position"
	// SignalTypeHold tells the position machine to do nothing this cycle
	SignalTypeHold SignalType = "hold"
)

// Signal is the evaluated intent for one bar, together with the context it
// was derived from. The Type field is what drives the position machine;
// the rest is kept for logging and marks.
type Signal struct {
	// Time is the bar time the signal was evaluated at
	Time time.Time
	// Type is the intent
	Type SignalType
	// Symbol is the symbol the signal applies to
	Symbol string
	// Reason is a human-readable description of why the intent was emitted
	Reason string
	// RawValue holds the indicator values that produced the intent
	RawValue map[string]float64
	// StrategyName is the strategy variant that produced the signal
	StrategyName string
}
