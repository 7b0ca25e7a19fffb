package tradingprovider

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kestrel-trading/kestrel/pkg/errors"
)

type BinanceConfigTestSuite struct {
	suite.Suite
}

func TestBinanceConfigSuite(t *testing.T) {
	suite.Run(t, new(BinanceConfigTestSuite))
}

func (suite *BinanceConfigTestSuite) TestValidConfig() {
	config := testProviderConfig()
	suite.NoError(config.Validate())
}

func (suite *BinanceConfigTestSuite) TestMissingCredentials() {
	config := testProviderConfig()
	config.ApiKey = ""

	err := config.Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *BinanceConfigTestSuite) TestSymbolQuoteMismatch() {
	config := testProviderConfig()
	config.QuoteAsset = "EUR"

	err := config.Validate()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *BinanceConfigTestSuite) TestBaseAsset() {
	config := testProviderConfig()
	suite.Equal("BTC", config.BaseAsset())
}
