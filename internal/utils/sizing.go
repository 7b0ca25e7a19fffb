// Package utils holds small helpers shared by the backtest and live engines.
package utils

import (
	"github.com/shopspring/decimal"

	"github.com/kestrel-trading/kestrel/pkg/errors"
)

// PositionSize returns the quantity to trade so that the order's notional is
// the given fraction of account equity.
func PositionSize(equity, fraction, price float64) (float64, error) {
	if price <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPrice, "price must be positive, got %f", price)
	}

	if fraction <= 0 || fraction > 1 {
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "equity fraction must be in (0, 1], got %f", fraction)
	}

	if equity < 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "equity must be non-negative, got %f", equity)
	}

	return equity * fraction / price, nil
}

// RoundQuantity truncates a quantity to the given number of decimal places.
// Truncation (never rounding up) keeps the order's notional within the
// intended budget and within the venue's lot-size precision.
func RoundQuantity(quantity float64, decimals int32) float64 {
	return decimal.NewFromFloat(quantity).RoundFloor(decimals).InexactFloat64()
}

// FormatQuantity renders a truncated quantity the way broker REST APIs
// expect, without float formatting artifacts.
func FormatQuantity(quantity float64, decimals int32) string {
	return decimal.NewFromFloat(quantity).RoundFloor(decimals).String()
}
