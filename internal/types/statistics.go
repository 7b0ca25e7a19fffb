package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// BacktestStats is the per-run summary the backtest engine produces and the
// optimizer scores.
type BacktestStats struct {
	// Symbol of the traded pair.
	Symbol string `yaml:"symbol"`
	// StrategyName is the strategy variant that produced these stats.
	StrategyName string `yaml:"strategy_name"`
	// Params is a human-readable description of the parameter set used.
	Params string `yaml:"params"`
	// StartTime and EndTime bound the simulated period.
	StartTime time.Time `yaml:"start_time"`
	EndTime   time.Time `yaml:"end_time"`
	// TotalReturnPct is the total return over the run, in percent.
	TotalReturnPct float64 `yaml:"total_return_pct"`
	// AnnualizedReturnPct is the compounded return scaled to one year.
	AnnualizedReturnPct float64 `yaml:"annualized_return_pct"`
	// AnnualizedVolatilityPct is the per-bar return volatility scaled to one year.
	AnnualizedVolatilityPct float64 `yaml:"annualized_volatility_pct"`
	// MaxDrawdownPct is the largest peak-to-trough equity decline, in percent
	// (reported as a negative number).
	MaxDrawdownPct float64 `yaml:"max_drawdown_pct"`
	// ReturnToDrawdownRatio is |TotalReturnPct / MaxDrawdownPct|. NaN when
	// either term is zero.
	ReturnToDrawdownRatio float64 `yaml:"return_to_drawdown_ratio"`
	// WinRatePct is the share of closed trades with positive PnL. NaN when
	// no trades closed.
	WinRatePct float64 `yaml:"win_rate_pct"`
	// NumTrades counts completed round trips.
	NumTrades int `yaml:"num_trades"`
	// TotalFees is the total commission paid.
	TotalFees float64 `yaml:"total_fees"`
	// FinalEquity is the account value at the end of the run.
	FinalEquity float64 `yaml:"final_equity"`
}

// WriteBacktestStats writes a set of run summaries to a YAML file.
func WriteBacktestStats(path string, stats []BacktestStats) error {
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal backtest stats to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backtest stats to file: %w", err)
	}

	return nil
}
