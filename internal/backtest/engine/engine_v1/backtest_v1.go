// Package engine_v1 is the sequential backtest engine: one pass over a fixed
// bar series with full indicator precomputation, immediate market fills at
// bar close, and a commission model.
package engine_v1

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kestrel-trading/kestrel/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/kestrel-trading/kestrel/internal/logger"
	"github.com/kestrel-trading/kestrel/internal/position"
	"github.com/kestrel-trading/kestrel/internal/strategy"
	"github.com/kestrel-trading/kestrel/internal/types"
	"github.com/kestrel-trading/kestrel/internal/utils"
	"github.com/kestrel-trading/kestrel/pkg/errors"
)

// BacktestConfig configures one backtest run.
type BacktestConfig struct {
	// InitialCapital is the starting account value in quote currency.
	InitialCapital float64 `yaml:"initial_capital" validate:"required,gt=0"`
	// EquityFraction is the share of equity committed per entry.
	EquityFraction float64 `yaml:"equity_fraction" validate:"required,gt=0,lte=1"`
	// CommissionModel selects the fee model applied to every fill.
	CommissionModel commission_fee.Model `yaml:"commission_model"`
}

// DefaultBacktestConfig mirrors the live engine's sizing default.
func DefaultBacktestConfig() BacktestConfig {
	return BacktestConfig{
		InitialCapital:  10000,
		EquityFraction:  0.02,
		CommissionModel: commission_fee.ModelZero,
	}
}

type BacktestV1 struct {
	config     BacktestConfig
	commission commission_fee.CommissionFee
	logger     *logger.Logger
}

func NewBacktestV1(config BacktestConfig, log *logger.Logger) (*BacktestV1, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBacktestConfigError, "invalid backtest config", err)
	}

	return &BacktestV1{
		config:     config,
		commission: commission_fee.GetCommissionFeeHandler(config.CommissionModel),
		logger:     log,
	}, nil
}

// Run simulates the strategy over the bar series and returns the run
// summary. Bars must be time ordered and duplicate-free.
func (b *BacktestV1) Run(strat strategy.Strategy, bars []types.MarketData) (types.BacktestStats, error) {
	if len(bars) <= strat.WarmupBars() {
		return types.BacktestStats{}, errors.Newf(errors.ErrCodeBacktestNoData,
			"need more than %d bars for %s, got %d", strat.WarmupBars(), strat.Name(), len(bars))
	}

	set, err := strat.ComputeIndicators(bars)
	if err != nil {
		return types.BacktestStats{}, errors.Wrap(errors.ErrCodeBacktestInitFailed, "indicator computation failed", err)
	}

	tracker := position.NewTracker(bars[0].Symbol)

	cash := b.config.InitialCapital
	quantity := 0.0
	entryNotional := 0.0
	entryFees := 0.0
	totalFees := 0.0
	trades := 0
	wins := 0

	equity := make([]float64, 0, len(bars))

	for i := range bars {
		price := bars[i].Close

		if i >= strat.WarmupBars() {
			switch strat.Evaluate(set, bars, i, tracker) {
			case types.SignalTypeOpenLong:
				qty, sizeErr := utils.PositionSize(cash+quantity*price, b.config.EquityFraction, price)
				if sizeErr != nil {
					return types.BacktestStats{}, sizeErr
				}

				notional := qty * price
				fee := b.commission.Calculate(notional)

				cash -= notional + fee
				quantity = qty
				entryNotional = notional
				entryFees = fee
				totalFees += fee

				if openErr := tracker.OpenLong(price); openErr != nil {
					return types.BacktestStats{}, openErr
				}

				b.logger.Debug("opened long",
					zap.Time("time", bars[i].Time),
					zap.Float64("price", price),
					zap.Float64("quantity", qty))

			case types.SignalTypeClosePosition:
				if tracker.IsOpen() && quantity > 0 {
					notional := quantity * price
					fee := b.commission.Calculate(notional)

					cash += notional - fee
					totalFees += fee

					pnl := notional - fee - entryNotional - entryFees
					trades++
					if pnl > 0 {
						wins++
					}

					b.logger.Debug("closed position",
						zap.Time("time", bars[i].Time),
						zap.Float64("price", price),
						zap.Float64("pnl", pnl))

					quantity = 0
					entryNotional = 0
					entryFees = 0
				}

				tracker.Close()
			}
		}

		equity = append(equity, cash+quantity*price)
	}

	return b.buildStats(strat, bars, equity, trades, wins, totalFees), nil
}

func (b *BacktestV1) buildStats(strat strategy.Strategy, bars []types.MarketData, equity []float64, trades, wins int, totalFees float64) types.BacktestStats {
	times := barTimestamps(bars)
	barsPerYear := annualizationFactor(times)

	totalReturn := totalReturnPct(equity)
	maxDrawdown := maxDrawdownPct(equity)

	return types.BacktestStats{
		Symbol:                  bars[0].Symbol,
		StrategyName:            strat.Name(),
		Params:                  strategy.Describe(strat),
		StartTime:               bars[0].Time,
		EndTime:                 bars[len(bars)-1].Time,
		TotalReturnPct:          totalReturn,
		AnnualizedReturnPct:     annualizedReturnPct(equity, barsPerYear),
		AnnualizedVolatilityPct: annualizedVolatilityPct(equity, barsPerYear),
		MaxDrawdownPct:          maxDrawdown,
		ReturnToDrawdownRatio:   returnToDrawdown(totalReturn, maxDrawdown),
		WinRatePct:              winRatePct(wins, trades),
		NumTrades:               trades,
		TotalFees:               totalFees,
		FinalEquity:             equity[len(equity)-1],
	}
}
