package backtest

import "github.com/Alias1177/Breakout/models"

// summarize aggregates closed trades. A trade wins when its PnL is positive.
func summarize(trades []models.Trade, initialBalance float64) *models.BacktestResult {
	r := &models.BacktestResult{
		TotalTrades: len(trades),
		Trades:      trades,
	}

	var totalProfit, totalLoss float64
	consecutiveWins, consecutiveLosses := 0, 0
	for _, t := range trades {
		if t.PnLPercent > 0 {
			r.WinningTrades++
			totalProfit += t.PnLPercent
			consecutiveWins++
			consecutiveLosses = 0
		} else {
			r.LosingTrades++
			totalLoss -= t.PnLPercent
			consecutiveLosses++
			consecutiveWins = 0
		}
		r.MaxConsecutive.Wins = max(r.MaxConsecutive.Wins, consecutiveWins)
		r.MaxConsecutive.Loses = max(r.MaxConsecutive.Loses, consecutiveLosses)
	}

	if r.TotalTrades > 0 {
		r.WinRate = float64(r.WinningTrades) / float64(r.TotalTrades) * 100
	}
	if r.WinningTrades > 0 {
		r.AverageProfit = totalProfit / float64(r.WinningTrades)
	}
	if r.LosingTrades > 0 {
		r.AverageLoss = totalLoss / float64(r.LosingTrades)
	}

	if r.AverageLoss > 0 {
		r.ProfitFactor = r.AverageProfit / r.AverageLoss
	} else {
		r.ProfitFactor = r.AverageProfit // If no losses
	}

	winShare := r.WinRate / 100
	r.Expectancy = winShare*r.AverageProfit - (1-winShare)*r.AverageLoss

	r.EquityCurve, r.MaxDrawdown = compound(returnsOf(trades), initialBalance)
	if last := r.EquityCurve[len(r.EquityCurve)-1]; initialBalance > 0 {
		r.TotalReturnPercent = (last - initialBalance) / initialBalance * 100
	}

	return r
}

func returnsOf(trades []models.Trade) []float64 {
	out := make([]float64, len(trades))
	for i, t := range trades {
		out[i] = t.PnLPercent
	}
	return out
}

// compound applies percentage returns to balance in order and returns the
// equity curve (starting balance first) and its max drawdown in percent
func compound(returns []float64, balance float64) ([]float64, float64) {
	equity := make([]float64, 0, len(returns)+1)
	equity = append(equity, balance)

	peak, maxDrawdown := balance, 0.0
	for _, pct := range returns {
		balance *= 1 + pct/100
		equity = append(equity, balance)

		if balance > peak {
			peak = balance
		} else if peak > 0 {
			maxDrawdown = max(maxDrawdown, (peak-balance)/peak*100)
		}
	}
	return equity, maxDrawdown
}
