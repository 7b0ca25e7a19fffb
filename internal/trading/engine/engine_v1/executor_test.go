package engine_v1

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kestrel-trading/kestrel/internal/logger"
	"github.com/kestrel-trading/kestrel/internal/position"
	"github.com/kestrel-trading/kestrel/internal/types"
	"github.com/kestrel-trading/kestrel/pkg/errors"
)

// stubTradingProvider scripts broker behavior for one test.
type stubTradingProvider struct {
	submitted []types.ExecuteOrder
	submitErr error

	positions    []types.BrokerPosition
	positionsErr error
	queries      int

	equity    float64
	equityErr error
}

func (s *stubTradingProvider) SubmitMarketOrder(ctx context.Context, order types.ExecuteOrder) (types.Order, error) {
	s.submitted = append(s.submitted, order)

	if s.submitErr != nil {
		return types.Order{}, s.submitErr
	}

	return types.Order{
		OrderID:  "1",
		Symbol:   order.Symbol,
		Side:     order.Side,
		Quantity: order.Quantity,
		Price:    order.Price,
		Status:   types.OrderStatusFilled,
	}, nil
}

func (s *stubTradingProvider) GetOpenPositions(ctx context.Context) ([]types.BrokerPosition, error) {
	s.queries++

	if s.positionsErr != nil {
		return nil, s.positionsErr
	}

	return s.positions, nil
}

func (s *stubTradingProvider) GetAccountEquity(ctx context.Context) (float64, error) {
	if s.equityErr != nil {
		return 0, s.equityErr
	}

	return s.equity, nil
}

func longPosition(symbol string, quantity, avgEntry float64) types.BrokerPosition {
	return types.BrokerPosition{
		Symbol:        symbol,
		Side:          types.PositionTypeLong,
		Quantity:      quantity,
		AvgEntryPrice: avgEntry,
	}
}

type ExecutorTestSuite struct {
	suite.Suite
	provider *stubTradingProvider
	tracker  *position.Tracker
	executor *Executor
}

func TestExecutorSuite(t *testing.T) {
	suite.Run(t, new(ExecutorTestSuite))
}

func (suite *ExecutorTestSuite) SetupTest() {
	suite.provider = &stubTradingProvider{equity: 10000}
	suite.tracker = position.NewTracker("BTCUSDT")

	executor, err := NewExecutor(suite.provider, suite.tracker, logger.NewNopLogger(), 0.02, "EmaRsiMeanReversion")
	suite.Require().NoError(err)
	suite.executor = executor
}

func (suite *ExecutorTestSuite) TestNewExecutorRejectsBadFraction() {
	_, err := NewExecutor(suite.provider, suite.tracker, logger.NewNopLogger(), 0, "x")
	suite.Error(err)

	_, err = NewExecutor(suite.provider, suite.tracker, logger.NewNopLogger(), 1.5, "x")
	suite.Error(err)
}

func (suite *ExecutorTestSuite) TestHoldDoesNothing() {
	err := suite.executor.Execute(context.Background(), types.SignalTypeHold, 50)
	suite.NoError(err)
	suite.Empty(suite.provider.submitted)
	suite.Zero(suite.provider.queries)
}

func (suite *ExecutorTestSuite) TestInvalidPriceRejectedBeforeSubmission() {
	err := suite.executor.Execute(context.Background(), types.SignalTypeOpenLong, 0)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPrice))
	suite.Empty(suite.provider.submitted)
}

func (suite *ExecutorTestSuite) TestOpenLongSizesAndReconciles() {
	suite.provider.positions = []types.BrokerPosition{longPosition("BTCUSDT", 4, 50)}

	err := suite.executor.Execute(context.Background(), types.SignalTypeOpenLong, 50)
	suite.Require().NoError(err)

	// 10000 * 0.02 / 50 = 4
	suite.Require().Len(suite.provider.submitted, 1)
	order := suite.provider.submitted[0]
	suite.Equal(types.PurchaseTypeBuy, order.Side)
	suite.InDelta(4.0, order.Quantity, 1e-9)
	suite.Equal("BTCUSDT", order.Symbol)

	suite.True(suite.tracker.IsLong())
	suite.InDelta(50.0, suite.tracker.EntryPrice().TakeOr(0), 1e-9)
	suite.InDelta(47.5, suite.tracker.StopLoss().TakeOr(0), 1e-9)
	suite.InDelta(55.0, suite.tracker.TakeProfit().TakeOr(0), 1e-9)
}

func (suite *ExecutorTestSuite) TestOpenLongDerivesLevelsFromCurrentPriceWhenBrokerOmitsEntry() {
	suite.provider.positions = []types.BrokerPosition{longPosition("BTCUSDT", 4, 0)}

	err := suite.executor.Execute(context.Background(), types.SignalTypeOpenLong, 60)
	suite.Require().NoError(err)

	suite.True(suite.tracker.IsLong())
	suite.InDelta(60.0, suite.tracker.EntryPrice().TakeOr(0), 1e-9)
	suite.InDelta(57.0, suite.tracker.StopLoss().TakeOr(0), 1e-9)
	suite.InDelta(66.0, suite.tracker.TakeProfit().TakeOr(0), 1e-9)
}

func (suite *ExecutorTestSuite) TestRepeatedReconciliationKeepsLevels() {
	suite.provider.positions = []types.BrokerPosition{longPosition("BTCUSDT", 4, 0)}

	suite.Require().NoError(suite.executor.Execute(context.Background(), types.SignalTypeOpenLong, 50))

	firstStop := suite.tracker.StopLoss().TakeOr(0)
	firstTakeProfit := suite.tracker.TakeProfit().TakeOr(0)

	// Next cycle the price has moved but the broker still reports the same
	// open position. The levels must not move with the price.
	suite.provider.submitErr = errors.New(errors.ErrCodeTransport, "connection reset")
	err := suite.executor.Execute(context.Background(), types.SignalTypeClosePosition, 60)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeTransport))

	suite.True(suite.tracker.IsLong())
	suite.InDelta(firstStop, suite.tracker.StopLoss().TakeOr(0), 1e-9)
	suite.InDelta(firstTakeProfit, suite.tracker.TakeProfit().TakeOr(0), 1e-9)
}

func (suite *ExecutorTestSuite) TestSubmitFailsButBrokerReportsPosition() {
	// The submission times out after the broker accepted it. The position
	// query is authoritative: the tracker must end the cycle long.
	suite.provider.submitErr = errors.New(errors.ErrCodeTransport, "timeout")
	suite.provider.positions = []types.BrokerPosition{longPosition("BTCUSDT", 4, 50)}

	err := suite.executor.Execute(context.Background(), types.SignalTypeOpenLong, 50)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeTransport))

	suite.True(suite.tracker.IsLong())
	suite.InDelta(50.0, suite.tracker.EntryPrice().TakeOr(0), 1e-9)
}

func (suite *ExecutorTestSuite) TestFailedQueryKeepsLocalState() {
	suite.provider.positions = []types.BrokerPosition{longPosition("BTCUSDT", 4, 50)}
	suite.Require().NoError(suite.executor.Execute(context.Background(), types.SignalTypeOpenLong, 50))
	suite.Require().True(suite.tracker.IsLong())

	// Unknown broker state is not flat: the tracker stays long.
	suite.provider.positionsErr = errors.New(errors.ErrCodeTransport, "timeout")
	err := suite.executor.Execute(context.Background(), types.SignalTypeClosePosition, 55)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeTransport))
	suite.True(suite.tracker.IsLong())
}

func (suite *ExecutorTestSuite) TestCloseSellsHeldQuantityAndSyncsFlat() {
	suite.provider.positions = []types.BrokerPosition{longPosition("BTCUSDT", 4, 50)}
	suite.Require().NoError(suite.executor.Execute(context.Background(), types.SignalTypeOpenLong, 50))

	suite.provider.positions = nil
	err := suite.executor.Execute(context.Background(), types.SignalTypeClosePosition, 55)
	suite.Require().NoError(err)

	suite.Require().Len(suite.provider.submitted, 2)
	sell := suite.provider.submitted[1]
	suite.Equal(types.PurchaseTypeSell, sell.Side)
	suite.InDelta(4.0, sell.Quantity, 1e-9)

	suite.False(suite.tracker.IsOpen())
}

func (suite *ExecutorTestSuite) TestCloseWithoutBrokerPositionSyncsFlat() {
	suite.Require().NoError(suite.tracker.OpenLong(50))

	err := suite.executor.Execute(context.Background(), types.SignalTypeClosePosition, 55)
	suite.Require().NoError(err)

	// Nothing to sell, but the broker view still wins.
	suite.Empty(suite.provider.submitted)
	suite.False(suite.tracker.IsOpen())
}

func (suite *ExecutorTestSuite) TestShortPositionSyncedAsAnomalous() {
	suite.provider.positions = []types.BrokerPosition{{
		Symbol:   "BTCUSDT",
		Side:     types.PositionTypeShort,
		Quantity: 4,
	}}

	err := suite.executor.Execute(context.Background(), types.SignalTypeOpenLong, 50)
	suite.Require().NoError(err)

	suite.True(suite.tracker.IsOpen())
	suite.False(suite.tracker.IsLong())
}

func (suite *ExecutorTestSuite) TestUnknownSignalRejected() {
	err := suite.executor.Execute(context.Background(), types.SignalType("go_sideways"), 50)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}
