package backtest

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/Alias1177/Breakout/models"
)

const (
	MinMonteCarloTrades = 10
	maxStoredCurves     = 10
)

var ErrTooFewTrades = errors.New("not enough trades for a Monte Carlo simulation")

// MonteCarloSimulation resamples the trade returns with replacement and
// compounds each path from the engine's initial balance
func (e *Engine) MonteCarloSimulation(trades []models.Trade, simulations int, rng *rand.Rand) (*models.MonteCarloResults, error) {
	if len(trades) < MinMonteCarloTrades {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrTooFewTrades, len(trades), MinMonteCarloTrades)
	}
	if simulations <= 0 {
		return nil, fmt.Errorf("simulations must be positive, got %d", simulations)
	}

	returns := returnsOf(trades)
	results := make([]models.SimulationResult, simulations)

	for sim := range results {
		path := make([]float64, len(returns))
		for i := range path {
			path[i] = returns[rng.Intn(len(returns))]
		}

		equity, drawdown := compound(path, e.initialBalance)
		final := equity[len(equity)-1]

		// Сохраняем кривую капитала только для ограниченного числа симуляций
		if sim >= maxStoredCurves {
			equity = nil
		}

		results[sim] = models.SimulationResult{
			FinalBalance: final,
			TotalReturn:  (final - e.initialBalance) / e.initialBalance * 100,
			MaxDrawdown:  drawdown,
			EquityCurve:  equity,
		}
	}

	var sumDrawdown, worstDrawdown float64
	profitable := 0
	for _, r := range results {
		sumDrawdown += r.MaxDrawdown
		worstDrawdown = max(worstDrawdown, r.MaxDrawdown)
		if r.TotalReturn > 0 {
			profitable++
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].TotalReturn < results[j].TotalReturn
	})

	return &models.MonteCarloResults{
		Simulations: simulations,
		Returns: models.MonteCarloPercentiles{
			Worst:  results[0].TotalReturn,
			P10:    results[simulations/10].TotalReturn,
			P25:    results[simulations/4].TotalReturn,
			Median: results[simulations/2].TotalReturn,
			P75:    results[simulations*3/4].TotalReturn,
			P90:    results[simulations*9/10].TotalReturn,
			Best:   results[simulations-1].TotalReturn,
		},
		AverageDrawdown:     sumDrawdown / float64(simulations),
		WorstDrawdown:       worstDrawdown,
		ProbabilityOfProfit: float64(profitable) / float64(simulations) * 100,
	}, nil
}
