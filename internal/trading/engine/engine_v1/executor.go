package engine_v1

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kestrel-trading/kestrel/internal/logger"
	"github.com/kestrel-trading/kestrel/internal/position"
	tradingprovider "github.com/kestrel-trading/kestrel/internal/trading/provider"
	"github.com/kestrel-trading/kestrel/internal/types"
	"github.com/kestrel-trading/kestrel/internal/utils"
	"github.com/kestrel-trading/kestrel/pkg/errors"
)

// Executor turns a strategy intent into a broker order and reconciles the
// local position machine against the broker afterwards. The broker's
// open-position query is the authoritative view: whatever the submission
// outcome, the query result overwrites local state. A failed query leaves
// local state untouched, because an unknown broker state is not the same as
// a flat one.
type Executor struct {
	provider       tradingprovider.TradingProvider
	tracker        *position.Tracker
	log            *logger.Logger
	equityFraction float64
	strategyName   string
}

// NewExecutor creates an executor committing the given fraction of account
// equity per entry.
func NewExecutor(provider tradingprovider.TradingProvider, tracker *position.Tracker, log *logger.Logger, equityFraction float64, strategyName string) (*Executor, error) {
	if equityFraction <= 0 || equityFraction > 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter,
			"equity fraction must be in (0, 1], got %f", equityFraction)
	}

	return &Executor{
		provider:       provider,
		tracker:        tracker,
		log:            log,
		equityFraction: equityFraction,
		strategyName:   strategyName,
	}, nil
}

// Execute acts on the intent at the given price. Hold is a no-op. For the
// other intents it submits a market order and then reconciles, returning the
// submission error (if any) once reconciliation has run.
func (e *Executor) Execute(ctx context.Context, signal types.SignalType, price float64) error {
	if signal == types.SignalTypeHold {
		return nil
	}

	if price <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPrice, "cannot trade at price %f", price)
	}

	var submitErr error

	switch signal {
	case types.SignalTypeOpenLong:
		submitErr = e.submitBuy(ctx, price)
	case types.SignalTypeClosePosition:
		submitErr = e.submitSell(ctx, price)
	default:
		return errors.Newf(errors.ErrCodeInvalidParameter, "unknown signal type: %s", signal)
	}

	if submitErr != nil {
		e.log.Warn("order submission failed, reconciling against broker state",
			zap.String("signal", string(signal)),
			zap.Error(submitErr),
		)
	}

	if err := e.reconcile(ctx, price); err != nil {
		return err
	}

	return submitErr
}

func (e *Executor) submitBuy(ctx context.Context, price float64) error {
	equity, err := e.provider.GetAccountEquity(ctx)
	if err != nil {
		return err
	}

	quantity, err := utils.PositionSize(equity, e.equityFraction, price)
	if err != nil {
		return err
	}

	return e.submit(ctx, types.PurchaseTypeBuy, quantity, price)
}

func (e *Executor) submitSell(ctx context.Context, price float64) error {
	positions, err := e.provider.GetOpenPositions(ctx)
	if err != nil {
		return err
	}

	quantity := 0.0

	for _, pos := range positions {
		if pos.Symbol == e.tracker.Symbol() {
			quantity += pos.Quantity
		}
	}

	if quantity <= 0 {
		e.log.Warn("close requested but broker reports no position",
			zap.String("symbol", e.tracker.Symbol()),
		)

		return nil
	}

	return e.submit(ctx, types.PurchaseTypeSell, quantity, price)
}

func (e *Executor) submit(ctx context.Context, side types.PurchaseType, quantity float64, price float64) error {
	order := types.ExecuteOrder{
		ID:           uuid.New().String(),
		Symbol:       e.tracker.Symbol(),
		Side:         side,
		OrderType:    types.OrderTypeMarket,
		Reason:       types.OrderReasonStrategy,
		Price:        price,
		Quantity:     quantity,
		StrategyName: e.strategyName,
	}

	result, err := e.provider.SubmitMarketOrder(ctx, order)
	if err != nil {
		return err
	}

	e.log.Info("order submitted",
		zap.String("order_id", result.OrderID),
		zap.String("side", string(side)),
		zap.Float64("quantity", result.Quantity),
		zap.Float64("price", result.Price),
		zap.String("status", string(result.Status)),
	)

	return nil
}

// reconcile overwrites the local position machine with the broker's view.
// When the broker does not report an entry price, levels are derived from
// the current price; levels already set locally are kept, so repeated
// reconciliations of the same position do not move the stop.
func (e *Executor) reconcile(ctx context.Context, currentPrice float64) error {
	positions, err := e.provider.GetOpenPositions(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTransport, "position query failed, keeping local state", err)
	}

	for _, pos := range positions {
		if pos.Symbol != e.tracker.Symbol() {
			continue
		}

		entry := pos.AvgEntryPrice
		if entry <= 0 {
			entry = currentPrice
		}

		if pos.Side == types.PositionTypeLong {
			e.tracker.SyncOpenLong(entry)
		} else {
			e.tracker.SyncOpen(pos.Side, entry)
		}

		return nil
	}

	e.tracker.SyncFlat()

	return nil
}
