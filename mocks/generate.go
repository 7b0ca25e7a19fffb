// Package mocks holds generated interface mocks and a synthetic market data
// generator for tests and benchmarks.
package mocks

//go:generate mockgen -destination=./mock_trading_provider.go -package=mocks github.com/kestrel-trading/kestrel/internal/trading/provider TradingProvider
//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/kestrel-trading/kestrel/internal/backtest/engine/engine_v1/datasource DataSource
