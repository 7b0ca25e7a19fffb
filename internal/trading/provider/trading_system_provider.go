// Package tradingprovider abstracts the broker the live engine trades
// against: order submission, position queries, and account equity.
package tradingprovider

import (
	"context"

	"github.com/kestrel-trading/kestrel/internal/types"
	"github.com/kestrel-trading/kestrel/pkg/errors"
)

// TradingProvider is the broker surface the execution reconciler needs.
// All operations hit the broker's API and are fallible; callers must treat a
// failed position query as unknown state, not as flat.
type TradingProvider interface {
	// SubmitMarketOrder submits an immediate-execution market order and
	// returns the broker's record of it.
	SubmitMarketOrder(ctx context.Context, order types.ExecuteOrder) (types.Order, error)
	// GetOpenPositions returns the currently held positions for the
	// provider's symbol.
	GetOpenPositions(ctx context.Context) ([]types.BrokerPosition, error)
	// GetAccountEquity returns the account equity in quote currency.
	GetAccountEquity(ctx context.Context) (float64, error)
}

type ProviderType string

const (
	ProviderBinancePaper ProviderType = "binance-paper"
	ProviderBinanceLive  ProviderType = "binance-live"
)

type ProviderInfo struct {
	Name           string `yaml:"name"`
	DisplayName    string `yaml:"display_name"`
	Description    string `yaml:"description"`
	IsPaperTrading bool   `yaml:"is_paper_trading"`
}

var providerRegistry = map[ProviderType]ProviderInfo{
	ProviderBinancePaper: {
		Name:           string(ProviderBinancePaper),
		DisplayName:    "Binance Testnet",
		Description:    "Binance testnet for paper trading without real funds",
		IsPaperTrading: true,
	},
	ProviderBinanceLive: {
		Name:           string(ProviderBinanceLive),
		DisplayName:    "Binance Live",
		Description:    "Binance live environment for real-funds trading",
		IsPaperTrading: false,
	},
}

func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	return providers
}

// GetProviderInfo returns metadata for a specific trading provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported trading provider: %s", providerName)
	}

	return info, nil
}

// NewTradingProvider creates a trading provider of the given type.
func NewTradingProvider(providerType ProviderType, config BinanceProviderConfig) (TradingProvider, error) {
	switch providerType {
	case ProviderBinancePaper:
		return NewBinanceTradingProvider(config, true)
	case ProviderBinanceLive:
		return NewBinanceTradingProvider(config, false)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported trading provider: %s", providerType)
	}
}
