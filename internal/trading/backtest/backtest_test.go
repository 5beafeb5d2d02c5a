package backtest

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/Breakout/models"
)

func flatDaily(n int) []models.Candle {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, n)
	for i := range candles {
		candles[i] = models.Candle{
			Time:   start.AddDate(0, 0, i),
			Open:   100,
			High:   100.5,
			Low:    99.5,
			Close:  100,
			Volume: 1000,
		}
	}
	return candles
}

func ptr(v float64) *float64 { return &v }

// stubAnalyzer flags a candidate only when the prefix ends right before one
// of the given bars
func stubAnalyzer(events map[int]bool, stop, target float64) Analyzer {
	return func(candles []models.Candle, _ models.BreakoutConfig) models.AnalysisResult {
		if !events[len(candles)] {
			return models.AnalysisResult{}
		}
		return models.AnalysisResult{
			IsBreakoutCandidate: true,
			BreakoutScore:       100,
			SuggestedStopLoss:   ptr(stop),
			SuggestedTakeProfit: ptr(target),
		}
	}
}

func TestRun_InsufficientHistory(t *testing.T) {
	res, err := NewEngine().Run(context.Background(), flatDaily(MinBars-1), models.DefaultBreakoutConfig())
	assert.ErrorIs(t, err, ErrInsufficientHistory)
	assert.Nil(t, res)
}

func TestRun_FiveBreakoutsAllHitTarget(t *testing.T) {
	candles := flatDaily(300)
	events := map[int]bool{210: true, 225: true, 240: true, 255: true, 270: true}
	for bar := range events {
		candles[bar+3].High = 106
	}

	engine := NewEngine(WithAnalyzer(stubAnalyzer(events, 95, 104)))
	res, err := engine.Run(context.Background(), candles, models.DefaultBreakoutConfig())
	require.NoError(t, err)

	assert.Equal(t, 5, res.TotalTrades)
	assert.Equal(t, 5, res.WinningTrades)
	assert.Equal(t, 0, res.LosingTrades)
	assert.Equal(t, 100.0, res.WinRate)
	assert.InDelta(t, 4, res.AverageProfit, 1e-9)
	assert.Equal(t, 0.0, res.AverageLoss)
	assert.InDelta(t, 4, res.ProfitFactor, 1e-9)
	assert.InDelta(t, 4, res.Expectancy, 1e-9)
	assert.Equal(t, 5, res.MaxConsecutive.Wins)
	assert.Equal(t, 0.0, res.MaxDrawdown)
	assert.InDelta(t, (math.Pow(1.04, 5)-1)*100, res.TotalReturnPercent, 1e-9)
	assert.Len(t, res.EquityCurve, 6)

	for i, trade := range res.Trades {
		assert.Equal(t, 210+15*i, trade.EntryBar)
		assert.Equal(t, models.ExitTakeProfit, trade.ExitType)
		assert.Equal(t, 3, trade.BarsHeld)
		assert.Equal(t, 104.0, trade.ExitPrice)
		assert.Equal(t, candles[trade.EntryBar].Time, trade.Date)
	}
}

// breakoutHistory is a flat 100 market with a five percent breakout on
// doubled volume at each of the given bars. The next bar holds at 105, the
// one after wicks up to 115 and closes at 104, then price falls back to 100.
func breakoutHistory(n int, bars ...int) []models.Candle {
	candles := flatDaily(n)
	set := func(i int, o, h, l, c, v float64) {
		candles[i].Open, candles[i].High, candles[i].Low, candles[i].Close, candles[i].Volume = o, h, l, c, v
	}
	for _, b := range bars {
		set(b, 100, 105.5, 100, 105, 2000)
		set(b+1, 105, 105.5, 104.5, 105, 2000)
		set(b+2, 105, 115, 104, 104, 2000)
		set(b+3, 104, 104, 99.5, 100, 1000)
	}
	return candles
}

func TestRun_DefaultAnalyzerTradesBreakouts(t *testing.T) {
	candles := breakoutHistory(300, 205, 220, 235, 250, 265)

	res, err := NewEngine().Run(context.Background(), candles, models.DefaultBreakoutConfig())
	require.NoError(t, err)

	assert.Equal(t, 5, res.TotalTrades)
	assert.Equal(t, 5, res.WinningTrades)
	assert.Equal(t, 0, res.LosingTrades)
	assert.Equal(t, 100.0, res.WinRate)
	assert.Equal(t, 5, res.MaxConsecutive.Wins)

	for i, trade := range res.Trades {
		// Entry is the close after the breakout bar
		assert.Equal(t, 206+15*i, trade.EntryBar)
		assert.Equal(t, 105.0, trade.EntryPrice)
		assert.Equal(t, models.ExitTakeProfit, trade.ExitType)
		assert.Equal(t, 1, trade.BarsHeld)
		assert.Less(t, trade.StopLoss, 104.0)
		assert.Greater(t, trade.PnLPercent, 0.0)
	}

	// ATR of 1 before the breakout, 18.5/14 after it
	first := res.Trades[0]
	assert.InDelta(t, 103.6786, first.StopLoss, 1e-9)
	assert.InDelta(t, 108.9642, first.TakeProfit, 1e-9)
}

func TestRun_StopCheckedBeforeTarget(t *testing.T) {
	candles := flatDaily(260)
	candles[212].Low = 90
	candles[212].High = 110

	engine := NewEngine(WithAnalyzer(stubAnalyzer(map[int]bool{210: true}, 95, 104)))
	res, err := engine.Run(context.Background(), candles, models.DefaultBreakoutConfig())
	require.NoError(t, err)

	require.Len(t, res.Trades, 1)
	trade := res.Trades[0]
	assert.Equal(t, models.ExitStopLoss, trade.ExitType)
	assert.Equal(t, 95.0, trade.ExitPrice)
	assert.Equal(t, 2, trade.BarsHeld)
	assert.InDelta(t, -5, trade.PnLPercent, 1e-9)

	assert.Equal(t, 0.0, res.WinRate)
	assert.InDelta(t, 5, res.AverageLoss, 1e-9)
	assert.Equal(t, 0.0, res.ProfitFactor)
	assert.InDelta(t, -5, res.Expectancy, 1e-9)
	assert.InDelta(t, 5, res.MaxDrawdown, 1e-9)
	assert.Equal(t, 1, res.MaxConsecutive.Loses)
}

func TestRun_TimeExit(t *testing.T) {
	candles := flatDaily(260)
	candles[210+MaxHoldBars].Close = 101

	engine := NewEngine(WithAnalyzer(stubAnalyzer(map[int]bool{210: true}, 95, 104)))
	res, err := engine.Run(context.Background(), candles, models.DefaultBreakoutConfig())
	require.NoError(t, err)

	require.Len(t, res.Trades, 1)
	assert.Equal(t, models.ExitTime, res.Trades[0].ExitType)
	assert.Equal(t, MaxHoldBars, res.Trades[0].BarsHeld)
	assert.Equal(t, 101.0, res.Trades[0].ExitPrice)
	assert.InDelta(t, 1, res.Trades[0].PnLPercent, 1e-9)
}

func TestRun_TradesNeverOverlap(t *testing.T) {
	candles := flatDaily(400)
	for i := range candles {
		if i%7 == 0 {
			candles[i].High = 110
		}
	}
	always := func(c []models.Candle, _ models.BreakoutConfig) models.AnalysisResult {
		return models.AnalysisResult{IsBreakoutCandidate: true, SuggestedStopLoss: ptr(90), SuggestedTakeProfit: ptr(105)}
	}

	res, err := NewEngine(WithAnalyzer(always)).Run(context.Background(), candles, models.DefaultBreakoutConfig())
	require.NoError(t, err)
	require.Greater(t, len(res.Trades), 10)

	for i := 1; i < len(res.Trades); i++ {
		prev, cur := res.Trades[i-1], res.Trades[i]
		assert.GreaterOrEqual(t, cur.EntryBar, prev.EntryBar+prev.BarsHeld)
	}
	last := res.Trades[len(res.Trades)-1]
	assert.Less(t, last.EntryBar, len(candles)-tailBars)
}

func TestRun_NoLookahead(t *testing.T) {
	candles := flatDaily(260)
	var seen []int
	spy := func(c []models.Candle, _ models.BreakoutConfig) models.AnalysisResult {
		seen = append(seen, len(c))
		return models.AnalysisResult{}
	}

	res, err := NewEngine(WithAnalyzer(spy)).Run(context.Background(), candles, models.DefaultBreakoutConfig())
	require.NoError(t, err)
	assert.Zero(t, res.TotalTrades)
	assert.NotNil(t, res.Trades)

	require.Len(t, seen, len(candles)-tailBars-WarmupBars)
	for k, n := range seen {
		assert.Equal(t, WarmupBars+k, n)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().Run(ctx, flatDaily(300), models.DefaultBreakoutConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_DefaultAnalyzerOnFlatHistory(t *testing.T) {
	res, err := NewEngine().Run(context.Background(), flatDaily(260), models.DefaultBreakoutConfig())
	require.NoError(t, err)
	assert.Zero(t, res.TotalTrades)
	assert.Equal(t, []float64{defaultInitialBalance}, res.EquityCurve)
}

func TestSummarize(t *testing.T) {
	trades := []models.Trade{
		{PnLPercent: 6},
		{PnLPercent: 6},
		{PnLPercent: -2},
		{PnLPercent: -2},
		{PnLPercent: -2},
		{PnLPercent: 3},
	}

	r := summarize(trades, 1000)
	assert.Equal(t, 6, r.TotalTrades)
	assert.Equal(t, 3, r.WinningTrades)
	assert.Equal(t, 50.0, r.WinRate)
	assert.InDelta(t, 5, r.AverageProfit, 1e-9)
	assert.InDelta(t, 2, r.AverageLoss, 1e-9)
	assert.InDelta(t, 2.5, r.ProfitFactor, 1e-9)
	assert.InDelta(t, 1.5, r.Expectancy, 1e-9)
	assert.Equal(t, 2, r.MaxConsecutive.Wins)
	assert.Equal(t, 3, r.MaxConsecutive.Loses)
	// Peak after two wins, then three 2% losses
	assert.InDelta(t, (1-math.Pow(0.98, 3))*100, r.MaxDrawdown, 1e-9)
}

func TestMonteCarloSimulation(t *testing.T) {
	trades := make([]models.Trade, 20)
	for i := range trades {
		trades[i].PnLPercent = 4
		if i%4 == 0 {
			trades[i].PnLPercent = -2
		}
	}

	engine := NewEngine()
	mc, err := engine.MonteCarloSimulation(trades, 200, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	assert.Equal(t, 200, mc.Simulations)
	assert.LessOrEqual(t, mc.Returns.Worst, mc.Returns.P10)
	assert.LessOrEqual(t, mc.Returns.P10, mc.Returns.Median)
	assert.LessOrEqual(t, mc.Returns.Median, mc.Returns.P90)
	assert.LessOrEqual(t, mc.Returns.P90, mc.Returns.Best)
	assert.LessOrEqual(t, mc.AverageDrawdown, mc.WorstDrawdown)
	assert.GreaterOrEqual(t, mc.ProbabilityOfProfit, 0.0)
	assert.LessOrEqual(t, mc.ProbabilityOfProfit, 100.0)

	again, err := engine.MonteCarloSimulation(trades, 200, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, mc, again)
}

func TestMonteCarloSimulation_Errors(t *testing.T) {
	engine := NewEngine()
	_, err := engine.MonteCarloSimulation(make([]models.Trade, 3), 100, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrTooFewTrades)

	_, err = engine.MonteCarloSimulation(make([]models.Trade, 12), 0, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestFormatResults(t *testing.T) {
	assert.Equal(t, "No backtest results available", FormatResults(nil))

	out := FormatResults(summarize([]models.Trade{
		{PnLPercent: 4, ExitType: models.ExitTakeProfit},
		{PnLPercent: -3, ExitType: models.ExitStopLoss},
	}, 10000))
	assert.Contains(t, out, "Total trades: 2")
	assert.Contains(t, out, "Winning trades: 1 (50.00%)")
	assert.Contains(t, out, "- Take Profit: 1")
	assert.Contains(t, out, "- Stop Loss: 1")
	assert.NotContains(t, out, "Time Exit")
}
