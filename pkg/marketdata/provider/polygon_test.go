package provider

import (
	"context"
	"testing"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/stretchr/testify/suite"

	kerrors "github.com/kestrel-trading/kestrel/pkg/errors"
)

type PolygonProviderTestSuite struct {
	suite.Suite
}

func TestPolygonProviderSuite(t *testing.T) {
	suite.Run(t, new(PolygonProviderTestSuite))
}

func (suite *PolygonProviderTestSuite) TestNewPolygonProviderRequiresKey() {
	_, err := NewPolygonProvider("")
	suite.Error(err)
	suite.True(kerrors.HasCode(err, kerrors.ErrCodeInvalidConfiguration))
}

func (suite *PolygonProviderTestSuite) TestPolygonTimespan() {
	tests := []struct {
		interval   string
		multiplier int
		timespan   models.Timespan
	}{
		{"1m", 1, models.Minute},
		{"15m", 15, models.Minute},
		{"4h", 4, models.Hour},
		{"1d", 1, models.Day},
	}

	for _, test := range tests {
		multiplier, timespan, err := polygonTimespan(test.interval)
		suite.NoError(err, test.interval)
		suite.Equal(test.multiplier, multiplier, test.interval)
		suite.Equal(test.timespan, timespan, test.interval)
	}
}

func (suite *PolygonProviderTestSuite) TestPolygonTimespanUnsupported() {
	_, _, err := polygonTimespan("2w")
	suite.Error(err)
	suite.True(kerrors.HasCode(err, kerrors.ErrCodeInvalidInterval))
}

func (suite *PolygonProviderTestSuite) TestDownloadRequiresWriter() {
	provider, err := NewPolygonProvider("test-key")
	suite.Require().NoError(err)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err = provider.Download(context.Background(), "AAPL", "1d", start, start.Add(24*time.Hour), nil)
	suite.Error(err)
	suite.True(kerrors.HasCode(err, kerrors.ErrCodeInvalidConfiguration))
}
