package tradingprovider

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kestrel-trading/kestrel/pkg/errors"
)

// BinanceProviderConfig configures the Binance trading provider. API
// credentials come from the config file or environment, never from
// process-wide globals.
type BinanceProviderConfig struct {
	ApiKey    string `yaml:"api_key" validate:"required"`
	SecretKey string `yaml:"secret_key" validate:"required"`
	// Symbol is the traded pair, e.g. BTCUSDT.
	Symbol string `yaml:"symbol" validate:"required"`
	// QuoteAsset is the pair's quote currency; equity is reported in it.
	QuoteAsset string `yaml:"quote_asset" validate:"required"`
	// BaseURL overrides the API endpoint; takes precedence over testnet.
	BaseURL string `yaml:"base_url"`
	// DustThreshold is the base-asset quantity below which a balance is not
	// treated as an open position.
	DustThreshold float64 `yaml:"dust_threshold" validate:"gte=0"`
}

// Validate validates the BinanceProviderConfig struct.
func (c *BinanceProviderConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid binance provider config", err)
	}

	if !strings.HasSuffix(c.Symbol, c.QuoteAsset) {
		return errors.Newf(errors.ErrCodeInvalidConfiguration,
			"symbol %s does not end with quote asset %s", c.Symbol, c.QuoteAsset)
	}

	return nil
}

// BaseAsset derives the pair's base currency from the symbol.
func (c *BinanceProviderConfig) BaseAsset() string {
	return strings.TrimSuffix(c.Symbol, c.QuoteAsset)
}
