package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kestrel-trading/kestrel/pkg/errors"
)

type FactoryTestSuite struct {
	suite.Suite
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactoryTestSuite))
}

func (suite *FactoryTestSuite) TestAllNamesConstruct() {
	for _, name := range Names() {
		strat, err := New(name, nil)
		suite.NoError(err, name)
		suite.Equal(name, strat.Name())
	}
}

func (suite *FactoryTestSuite) TestUnknownName() {
	_, err := New("GridMartingale", nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedStrategy))
}

func (suite *FactoryTestSuite) TestDefaultsApply() {
	strat, err := New(EmaRsiMeanReversionName, nil)
	suite.Require().NoError(err)

	emaRsi, ok := strat.(*EmaRsiMeanReversion)
	suite.Require().True(ok)
	suite.Equal(DefaultEmaRsiParams(), emaRsi.Params())
}

func (suite *FactoryTestSuite) TestYamlOverridesDefaults() {
	raw := []byte("rsi_window: 8\nlower_rsi_band: 25\n")

	strat, err := New(EmaRsiMeanReversionName, raw)
	suite.Require().NoError(err)

	emaRsi := strat.(*EmaRsiMeanReversion)
	suite.Equal(8, emaRsi.Params().RsiWindow)
	suite.InDelta(25.0, emaRsi.Params().LowerRsiBand, 1e-12)
	// Untouched fields keep their defaults.
	suite.Equal(70, emaRsi.Params().EmaWindow)
	suite.InDelta(80.0, emaRsi.Params().UpperRsiBand, 1e-12)
}

func (suite *FactoryTestSuite) TestInvalidOverrideRejected() {
	raw := []byte("upper_rsi_band: 10\n")

	_, err := New(EmaRsiMeanReversionName, raw)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))
}

func (suite *FactoryTestSuite) TestMalformedYamlRejected() {
	_, err := New(MacdAdxTrendFollowingName, []byte("{not yaml"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))
}
