package backtest

import (
	"fmt"
	"strings"

	"github.com/Alias1177/Breakout/models"
)

// FormatResults creates a human-readable summary of backtest results
func FormatResults(r *models.BacktestResult) string {
	if r == nil {
		return "No backtest results available"
	}

	var b strings.Builder
	b.WriteString("\n===== BACKTEST RESULTS =====\n")
	fmt.Fprintf(&b, "Total trades: %d\n", r.TotalTrades)
	fmt.Fprintf(&b, "Winning trades: %d (%.2f%%)\n", r.WinningTrades, r.WinRate)
	fmt.Fprintf(&b, "Losing trades: %d\n", r.LosingTrades)
	fmt.Fprintf(&b, "Average profit: %.2f%%\n", r.AverageProfit)
	fmt.Fprintf(&b, "Average loss: %.2f%%\n", r.AverageLoss)
	fmt.Fprintf(&b, "Profit factor: %.2f\n", r.ProfitFactor)
	fmt.Fprintf(&b, "Expectancy: %.2f%%\n", r.Expectancy)
	fmt.Fprintf(&b, "Total return: %.2f%%\n", r.TotalReturnPercent)
	fmt.Fprintf(&b, "Maximum drawdown: %.2f%%\n", r.MaxDrawdown)
	fmt.Fprintf(&b, "Max consecutive wins: %d\n", r.MaxConsecutive.Wins)
	fmt.Fprintf(&b, "Max consecutive losses: %d\n", r.MaxConsecutive.Loses)

	exits := map[models.ExitType]int{}
	for _, t := range r.Trades {
		exits[t.ExitType]++
	}
	if len(exits) > 0 {
		b.WriteString("\nExits:\n")
		for _, et := range []models.ExitType{models.ExitTakeProfit, models.ExitStopLoss, models.ExitTime} {
			if n := exits[et]; n > 0 {
				fmt.Fprintf(&b, "- %s: %d\n", et, n)
			}
		}
	}

	b.WriteString("============================\n")
	return b.String()
}

// FormatMonteCarlo summarises a Monte Carlo run
func FormatMonteCarlo(mc *models.MonteCarloResults) string {
	if mc == nil {
		return "No Monte Carlo results available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n===== MONTE CARLO (%d runs) =====\n", mc.Simulations)
	fmt.Fprintf(&b, "Return worst/p10/median/p90/best: %.2f%% / %.2f%% / %.2f%% / %.2f%% / %.2f%%\n",
		mc.Returns.Worst, mc.Returns.P10, mc.Returns.Median, mc.Returns.P90, mc.Returns.Best)
	fmt.Fprintf(&b, "Average drawdown: %.2f%%\n", mc.AverageDrawdown)
	fmt.Fprintf(&b, "Worst drawdown: %.2f%%\n", mc.WorstDrawdown)
	fmt.Fprintf(&b, "Probability of profit: %.2f%%\n", mc.ProbabilityOfProfit)
	return b.String()
}
