package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kestrel-trading/kestrel/pkg/errors"
)

type PurchaseType string

type OrderType string

type OrderStatus string

type PositionType string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusFilled    OrderStatus = "FILLED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusRejected  OrderStatus = "REJECTED"
	OrderStatusFailed    OrderStatus = "FAILED"
)

const (
	PositionTypeLong  PositionType = "LONG"
	PositionTypeShort PositionType = "SHORT"
)

const (
	PurchaseTypeBuy  PurchaseType = "BUY"
	PurchaseTypeSell PurchaseType = "SELL"
)

const (
	// OrderTypeMarket is the only order type the engine submits:
	// immediate-execution market orders.
	OrderTypeMarket OrderType = "MARKET"
)

const (
	OrderReasonStopLoss   string = "stop_loss"
	OrderReasonTakeProfit string = "take_profit"
	OrderReasonStrategy   string = "strategy"
	OrderReasonAnomaly    string = "anomalous_position"
)

// ExecuteOrder is an order the engine intends to submit to the broker.
type ExecuteOrder struct {
	ID           string       `yaml:"id" json:"id" validate:"required,uuid"`
	Symbol       string       `yaml:"symbol" json:"symbol" validate:"required"`
	Side         PurchaseType `yaml:"side" json:"side" validate:"required,oneof=BUY SELL"`
	OrderType    OrderType    `yaml:"order_type" json:"order_type" validate:"required,oneof=MARKET"`
	Reason       string       `yaml:"reason" json:"reason" validate:"required"`
	Price        float64      `yaml:"price" json:"price" validate:"required,gt=0"`
	Quantity     float64      `yaml:"quantity" json:"quantity" validate:"required,gt=0"`
	StrategyName string       `yaml:"strategy_name" json:"strategy_name" validate:"required"`
}

// Order is the broker's record of a submitted order.
type Order struct {
	OrderID   string       `yaml:"order_id" json:"order_id"`
	Symbol    string       `yaml:"symbol" json:"symbol" validate:"required"`
	Side      PurchaseType `yaml:"side" json:"side" validate:"required,oneof=BUY SELL"`
	Quantity  float64      `yaml:"quantity" json:"quantity" validate:"required,gt=0"`
	Price     float64      `yaml:"price" json:"price" validate:"gte=0"`
	Timestamp time.Time    `yaml:"timestamp" json:"timestamp"`
	Status    OrderStatus  `yaml:"status" json:"status"`
	Fee       float64      `yaml:"fee" json:"fee" validate:"gte=0"`
}

// Validate validates the ExecuteOrder struct.
func (eo *ExecuteOrder) Validate() error {
	validate := validator.New()
	if err := validate.Struct(eo); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrder, "invalid execute order", err)
	}

	return nil
}
