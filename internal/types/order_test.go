package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/kestrel-trading/kestrel/pkg/errors"
)

type OrderTestSuite struct {
	suite.Suite
}

func TestOrderSuite(t *testing.T) {
	suite.Run(t, new(OrderTestSuite))
}

func validOrder() ExecuteOrder {
	return ExecuteOrder{
		ID:           uuid.New().String(),
		Symbol:       "BCHUSD",
		Side:         PurchaseTypeBuy,
		OrderType:    OrderTypeMarket,
		Reason:       OrderReasonStrategy,
		Price:        245.8,
		Quantity:     0.5,
		StrategyName: "ema_rsi_mean_reversion",
	}
}

func (suite *OrderTestSuite) TestValidateOK() {
	order := validOrder()
	suite.NoError(order.Validate())
}

func (suite *OrderTestSuite) TestValidateRejectsNonPositivePrice() {
	order := validOrder()
	order.Price = 0

	err := order.Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidOrder))
}

func (suite *OrderTestSuite) TestValidateRejectsBadSide() {
	order := validOrder()
	order.Side = "SHORT_SELL"
	suite.Error(order.Validate())
}

func (suite *OrderTestSuite) TestValidateRequiresUUID() {
	order := validOrder()
	order.ID = "not-a-uuid"
	suite.Error(order.Validate())
}
