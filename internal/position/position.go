// Package position tracks the engine's local view of the held position for a
// single symbol. The tracker is a two-state machine (flat or long) with
// protective levels that exist exactly while a position is open.
package position

import (
	"github.com/moznion/go-optional"

	"github.com/kestrel-trading/kestrel/internal/types"
	"github.com/kestrel-trading/kestrel/pkg/errors"
)

const (
	// StopLossRatio places the protective stop 5% below the entry price.
	StopLossRatio = 0.95
	// TakeProfitRatio places the profit target 10% above the entry price.
	TakeProfitRatio = 1.10
)

// Tracker holds the local position state for one symbol. It is the engine's
// belief about the position; the execution reconciler overwrites it with the
// broker's view after every order.
type Tracker struct {
	symbol     string
	isOpen     bool
	side       types.PositionType
	entryPrice optional.Option[float64]
	stopLoss   optional.Option[float64]
	takeProfit optional.Option[float64]
}

// NewTracker returns a flat tracker for the given symbol.
func NewTracker(symbol string) *Tracker {
	return &Tracker{
		symbol:     symbol,
		entryPrice: optional.None[float64](),
		stopLoss:   optional.None[float64](),
		takeProfit: optional.None[float64](),
	}
}

// Symbol returns the symbol this tracker follows.
func (t *Tracker) Symbol() string {
	return t.symbol
}

// IsOpen reports whether a position is currently held.
func (t *Tracker) IsOpen() bool {
	return t.isOpen
}

// IsLong reports whether the held position is long. A flat tracker is not
// long.
func (t *Tracker) IsLong() bool {
	return t.isOpen && t.side == types.PositionTypeLong
}

// EntryPrice returns the entry price, set iff a position is open.
func (t *Tracker) EntryPrice() optional.Option[float64] {
	return t.entryPrice
}

// StopLoss returns the protective stop level, set iff a position is open.
func (t *Tracker) StopLoss() optional.Option[float64] {
	return t.stopLoss
}

// TakeProfit returns the profit target level, set iff a position is open.
func (t *Tracker) TakeProfit() optional.Option[float64] {
	return t.takeProfit
}

// OpenLong transitions flat → long at the given entry price and derives the
// stop and take-profit levels from it. Opening while already open is an
// invariant violation the evaluator is supposed to prevent; it is reported
// as a coded error rather than silently re-entering.
func (t *Tracker) OpenLong(entryPrice float64) error {
	if entryPrice <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPrice, "entry price must be positive, got %f", entryPrice)
	}

	if t.isOpen {
		return errors.Newf(errors.ErrCodeInvalidTransition, "cannot open long for %s: position already open", t.symbol)
	}

	t.isOpen = true
	t.side = types.PositionTypeLong
	t.entryPrice = optional.Some(entryPrice)
	t.stopLoss = optional.Some(entryPrice * StopLossRatio)
	t.takeProfit = optional.Some(entryPrice * TakeProfitRatio)

	return nil
}

// Close transitions to flat and clears the entry and protective levels.
// Closing a flat tracker is a no-op.
func (t *Tracker) Close() {
	t.isOpen = false
	t.side = ""
	t.entryPrice = optional.None[float64]()
	t.stopLoss = optional.None[float64]()
	t.takeProfit = optional.None[float64]()
}

// Apply drives the state machine from an evaluated signal. Hold does
// nothing; close on a flat tracker does nothing.
func (t *Tracker) Apply(signalType types.SignalType, price float64) error {
	switch signalType {
	case types.SignalTypeOpenLong:
		return t.OpenLong(price)
	case types.SignalTypeClosePosition:
		t.Close()
		return nil
	case types.SignalTypeHold:
		return nil
	default:
		return errors.Newf(errors.ErrCodeInvalidParameter, "unknown signal type %q", signalType)
	}
}

// SyncOpenLong overwrites the tracker with a broker-reported long position.
// Existing protective levels are kept so that repeated reconciliations
// against the same broker state do not move the stop or target; levels are
// derived from the entry price only when none are set yet.
func (t *Tracker) SyncOpenLong(entryPrice float64) {
	t.isOpen = true
	t.side = types.PositionTypeLong

	if t.entryPrice.IsNone() {
		t.entryPrice = optional.Some(entryPrice)
	}
	if t.stopLoss.IsNone() {
		t.stopLoss = optional.Some(entryPrice * StopLossRatio)
	}
	if t.takeProfit.IsNone() {
		t.takeProfit = optional.Some(entryPrice * TakeProfitRatio)
	}
}

// SyncFlat overwrites the tracker with a broker-reported flat state.
func (t *Tracker) SyncFlat() {
	t.Close()
}

// SyncOpen overwrites the tracker with an arbitrary broker-reported open
// position. Non-long sides are recorded as-is; the evaluator's safety rule
// turns them into an unconditional close on the next cycle.
func (t *Tracker) SyncOpen(side types.PositionType, entryPrice float64) {
	if side == types.PositionTypeLong {
		t.SyncOpenLong(entryPrice)
		return
	}

	t.isOpen = true
	t.side = side
	t.entryPrice = optional.Some(entryPrice)
	t.stopLoss = optional.None[float64]()
	t.takeProfit = optional.None[float64]()
}
