package tradingprovider

import (
	"context"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"

	"github.com/kestrel-trading/kestrel/internal/types"
	"github.com/kestrel-trading/kestrel/internal/utils"
	"github.com/kestrel-trading/kestrel/pkg/errors"
)

const (
	// BinanceDecimalPrecision is a default quantity precision. 8 decimals is
	// satoshi-level; production systems should use the symbol's LOT_SIZE
	// filter from exchange info.
	BinanceDecimalPrecision = 8
)

// Service interfaces for mocking the Binance API.

// CreateOrderService interface for creating orders.
type CreateOrderService interface {
	Symbol(symbol string) CreateOrderService
	Side(side binance.SideType) CreateOrderService
	Type(orderType binance.OrderType) CreateOrderService
	Quantity(quantity string) CreateOrderService
	Do(ctx context.Context) (*binance.CreateOrderResponse, error)
}

// GetAccountService interface for getting account info.
type GetAccountService interface {
	Do(ctx context.Context) (*binance.Account, error)
}

// BinanceClient interface abstracts the Binance client for testing.
type BinanceClient interface {
	NewCreateOrderService() CreateOrderService
	NewGetAccountService() GetAccountService
}

// realBinanceClient wraps the actual binance.Client.
type realBinanceClient struct {
	client *binance.Client
}

func (r *realBinanceClient) NewCreateOrderService() CreateOrderService {
	return &realCreateOrderService{service: r.client.NewCreateOrderService()}
}

func (r *realBinanceClient) NewGetAccountService() GetAccountService {
	return &realGetAccountService{service: r.client.NewGetAccountService()}
}

type realCreateOrderService struct {
	service *binance.CreateOrderService
}

func (s *realCreateOrderService) Symbol(symbol string) CreateOrderService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realCreateOrderService) Side(side binance.SideType) CreateOrderService {
	s.service = s.service.Side(side)

	return s
}

func (s *realCreateOrderService) Type(orderType binance.OrderType) CreateOrderService {
	s.service = s.service.Type(orderType)

	return s
}

func (s *realCreateOrderService) Quantity(quantity string) CreateOrderService {
	s.service = s.service.Quantity(quantity)

	return s
}

func (s *realCreateOrderService) Do(ctx context.Context) (*binance.CreateOrderResponse, error) {
	return s.service.Do(ctx)
}

type realGetAccountService struct {
	service *binance.GetAccountService
}

func (s *realGetAccountService) Do(ctx context.Context) (*binance.Account, error) {
	return s.service.Do(ctx)
}

// BinanceTradingProvider implements TradingProvider against the Binance spot
// API. It is stateless: every call fetches fresh data from the API.
type BinanceTradingProvider struct {
	client           BinanceClient
	config           BinanceProviderConfig
	decimalPrecision int32
}

var _ TradingProvider = (*BinanceTradingProvider)(nil)

// NewBinanceTradingProvider creates a Binance spot trading provider. With
// useTestnet it connects to the Binance testnet; a config BaseURL takes
// precedence over useTestnet.
func NewBinanceTradingProvider(config BinanceProviderConfig, useTestnet bool) (*BinanceTradingProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if useTestnet {
		binance.UseTestnet = true
	}

	client := binance.NewClient(config.ApiKey, config.SecretKey)
	if config.BaseURL != "" {
		client.BaseURL = config.BaseURL
	}

	return &BinanceTradingProvider{
		client:           &realBinanceClient{client: client},
		config:           config,
		decimalPrecision: BinanceDecimalPrecision,
	}, nil
}

// newBinanceTradingProviderWithClient injects a custom client for tests.
func newBinanceTradingProviderWithClient(client BinanceClient, config BinanceProviderConfig) *BinanceTradingProvider {
	return &BinanceTradingProvider{
		client:           client,
		config:           config,
		decimalPrecision: BinanceDecimalPrecision,
	}
}

// SubmitMarketOrder implements TradingProvider.
func (b *BinanceTradingProvider) SubmitMarketOrder(ctx context.Context, order types.ExecuteOrder) (types.Order, error) {
	if err := order.Validate(); err != nil {
		return types.Order{}, err
	}

	var side binance.SideType

	switch order.Side {
	case types.PurchaseTypeBuy:
		side = binance.SideTypeBuy
	case types.PurchaseTypeSell:
		side = binance.SideTypeSell
	default:
		return types.Order{}, errors.Newf(errors.ErrCodeInvalidOrder, "unsupported order side: %s", order.Side)
	}

	quantity := utils.FormatQuantity(order.Quantity, b.decimalPrecision)
	if quantity == "0" {
		return types.Order{}, errors.Newf(errors.ErrCodeInvalidQuantity,
			"order quantity %.10f rounds to zero at %d decimals", order.Quantity, b.decimalPrecision)
	}

	resp, err := b.client.NewCreateOrderService().
		Symbol(order.Symbol).
		Side(side).
		Type(binance.OrderTypeMarket).
		Quantity(quantity).
		Do(ctx)
	if err != nil {
		if common.IsAPIError(err) {
			return types.Order{}, errors.Wrap(errors.ErrCodeOrderRejected, "binance rejected the order", err)
		}

		return types.Order{}, errors.Wrap(errors.ErrCodeTransport, "cannot reach binance order endpoint", err)
	}

	return orderFromResponse(resp, order.Side), nil
}

// GetOpenPositions implements TradingProvider. Spot positions are derived
// from the base-asset balance: any holding above the dust threshold is one
// long position. The average entry price is not recoverable from balances
// and is reported as zero.
func (b *BinanceTradingProvider) GetOpenPositions(ctx context.Context) ([]types.BrokerPosition, error) {
	account, err := b.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransport, "cannot fetch binance account", err)
	}

	baseAsset := b.config.BaseAsset()
	positions := make([]types.BrokerPosition, 0, 1)

	for _, balance := range account.Balances {
		if balance.Asset != baseAsset {
			continue
		}

		free, _ := strconv.ParseFloat(balance.Free, 64)
		locked, _ := strconv.ParseFloat(balance.Locked, 64)
		total := free + locked

		if total > b.config.DustThreshold {
			positions = append(positions, types.BrokerPosition{
				Symbol:        b.config.Symbol,
				Side:          types.PositionTypeLong,
				Quantity:      total,
				AvgEntryPrice: 0,
			})
		}
	}

	return positions, nil
}

// GetAccountEquity implements TradingProvider. Equity is the free plus
// locked quote-asset balance.
func (b *BinanceTradingProvider) GetAccountEquity(ctx context.Context) (float64, error) {
	account, err := b.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeTransport, "cannot fetch binance account", err)
	}

	for _, balance := range account.Balances {
		if balance.Asset != b.config.QuoteAsset {
			continue
		}

		free, _ := strconv.ParseFloat(balance.Free, 64)
		locked, _ := strconv.ParseFloat(balance.Locked, 64)

		return free + locked, nil
	}

	return 0, nil
}

func orderFromResponse(resp *binance.CreateOrderResponse, side types.PurchaseType) types.Order {
	executedQty, _ := strconv.ParseFloat(resp.ExecutedQuantity, 64)
	quoteQty, _ := strconv.ParseFloat(resp.CummulativeQuoteQuantity, 64)

	avgPrice := 0.0
	if executedQty > 0 {
		avgPrice = quoteQty / executedQty
	}

	fee := 0.0
	for _, fill := range resp.Fills {
		commission, _ := strconv.ParseFloat(fill.Commission, 64)
		fee += commission
	}

	return types.Order{
		OrderID:   strconv.FormatInt(resp.OrderID, 10),
		Symbol:    resp.Symbol,
		Side:      side,
		Quantity:  executedQty,
		Price:     avgPrice,
		Timestamp: time.UnixMilli(resp.TransactTime),
		Status:    orderStatusFromBinance(resp.Status),
		Fee:       fee,
	}
}

func orderStatusFromBinance(status binance.OrderStatusType) types.OrderStatus {
	switch status {
	case binance.OrderStatusTypeFilled:
		return types.OrderStatusFilled
	case binance.OrderStatusTypeNew, binance.OrderStatusTypePartiallyFilled:
		return types.OrderStatusPending
	case binance.OrderStatusTypeRejected:
		return types.OrderStatusRejected
	case binance.OrderStatusTypeCanceled:
		return types.OrderStatusCancelled
	default:
		return types.OrderStatusFailed
	}
}
