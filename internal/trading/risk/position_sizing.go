package risk

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Alias1177/Breakout/models"
)

// quantityPlaces is the precision position sizes are truncated to
const quantityPlaces = 8

var ErrInvalidLevels = errors.New("stop loss must be below a positive entry price")

// StopLossPercent is the distance from entry down to the stop, in percent
func StopLossPercent(entry, stop float64) float64 {
	if entry <= 0 {
		return 0
	}
	return (entry - stop) / entry * 100
}

// RiskRewardRatio is reward over risk for a long position; 0 when risk is not positive
func RiskRewardRatio(entry, stop, target float64) float64 {
	risk := entry - stop
	if risk <= 0 {
		return 0
	}
	return (target - entry) / risk
}

// CalculatePositionSize determines the position so that hitting the stop costs
// riskPerTrade (a fraction) of accountSize
func CalculatePositionSize(entry, stop, target, accountSize, riskPerTrade float64) (*models.PositionSizingResult, error) {
	if entry <= 0 || stop >= entry {
		return nil, fmt.Errorf("%w: entry %.8f, stop %.8f", ErrInvalidLevels, entry, stop)
	}
	if accountSize <= 0 || riskPerTrade <= 0 || riskPerTrade > 1 {
		return nil, fmt.Errorf("invalid account size %.2f or risk per trade %.4f", accountSize, riskPerTrade)
	}

	riskAmount := decimal.NewFromFloat(accountSize).Mul(decimal.NewFromFloat(riskPerTrade))
	distance := decimal.NewFromFloat(entry).Sub(decimal.NewFromFloat(stop))
	size := riskAmount.Div(distance).Truncate(quantityPlaces)

	// Никогда не покупаем больше, чем позволяет счёт
	maxSize := decimal.NewFromFloat(accountSize).Div(decimal.NewFromFloat(entry)).Truncate(quantityPlaces)
	if size.GreaterThan(maxSize) {
		size = maxSize
	}

	return &models.PositionSizingResult{
		PositionSize:    size.InexactFloat64(),
		PositionValue:   size.Mul(decimal.NewFromFloat(entry)).Round(2).InexactFloat64(),
		StopLoss:        stop,
		TakeProfit:      target,
		RiskRewardRatio: RiskRewardRatio(entry, stop, target),
		AccountRisk:     riskPerTrade,
	}, nil
}

// AdjustForRiskLevel shrinks a position for riskier setups
func AdjustForRiskLevel(size float64, riskLevel string) float64 {
	return size * riskFactor(riskLevel)
}

func riskFactor(riskLevel string) float64 {
	switch riskLevel {
	case models.TierVeryHigh:
		return 0.5
	case models.TierHigh:
		return 0.75
	}
	return 1
}

// ForSignal sizes a signal's entry and scales it by the signal's risk level
func ForSignal(sig models.Signal, accountSize, riskPerTrade float64) (*models.PositionSizingResult, error) {
	res, err := CalculatePositionSize(sig.EntryPrice, sig.StopLoss, sig.TakeProfit, accountSize, riskPerTrade)
	if err != nil {
		return nil, fmt.Errorf("sizing %s: %w", sig.Symbol, err)
	}

	if f := riskFactor(sig.RiskLevel); f < 1 {
		size := decimal.NewFromFloat(AdjustForRiskLevel(res.PositionSize, sig.RiskLevel)).Truncate(quantityPlaces)
		res.PositionSize = size.InexactFloat64()
		res.PositionValue = size.Mul(decimal.NewFromFloat(sig.EntryPrice)).Round(2).InexactFloat64()
		res.AccountRisk = riskPerTrade * f
	}
	return res, nil
}
