package mocks

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataGeneratorGenerate(t *testing.T) {
	gen := NewDataGenerator(42)
	config := DefaultGeneratorConfig()
	config.Count = 100

	bars := gen.Generate(config)
	require.Len(t, bars, 100)

	for i, bar := range bars {
		require.Equal(t, config.Symbol, bar.Symbol)
		require.Greater(t, bar.Open, 0.0, "index %d", i)
		require.Greater(t, bar.Low, 0.0, "index %d", i)
		require.GreaterOrEqual(t, bar.High, bar.Low, "index %d", i)
		require.GreaterOrEqual(t, bar.High, bar.Close, "index %d", i)
		require.LessOrEqual(t, bar.Low, bar.Close, "index %d", i)
		require.Positive(t, bar.Volume, "index %d", i)

		if i > 0 {
			require.Equal(t, config.Interval, bar.Time.Sub(bars[i-1].Time), "index %d", i)
		}
	}
}

func TestDataGeneratorReproducibility(t *testing.T) {
	config := DefaultGeneratorConfig()
	config.Count = 50

	first := NewDataGenerator(7).Generate(config)
	second := NewDataGenerator(7).Generate(config)

	require.Equal(t, first, second)
}

func TestDataGeneratorTrend(t *testing.T) {
	config := DefaultGeneratorConfig()
	config.Count = 5000
	config.Volatility = 0.0005
	config.Trend = 2.0

	bars := NewDataGenerator(1).Generate(config)

	require.Greater(t, bars[len(bars)-1].Close, bars[0].Open)
}
