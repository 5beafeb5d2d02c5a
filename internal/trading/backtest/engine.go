// Package backtest replays the breakout analyzer over daily history without
// lookahead and simulates one long position at a time.
package backtest

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Alias1177/Breakout/internal/analyze"
	"github.com/Alias1177/Breakout/models"
)

const (
	// MinBars is the shortest daily history a backtest accepts
	MinBars = 250
	// WarmupBars are skipped so the EMA200 has history before the first entry
	WarmupBars = 200
	// MaxHoldBars is how long a position stays open before a time exit
	MaxHoldBars = 19

	tailBars              = MaxHoldBars + 1
	defaultInitialBalance = 10000.0
)

var ErrInsufficientHistory = errors.New("insufficient historical data for backtesting")

// Analyzer scores a candle prefix; analyze.AnalyzeBreakout by default
type Analyzer func(candles []models.Candle, cfg models.BreakoutConfig) models.AnalysisResult

// Engine handles backtesting operations
type Engine struct {
	analyze        Analyzer
	initialBalance float64
	log            zerolog.Logger
}

type Option func(*Engine)

func WithAnalyzer(a Analyzer) Option {
	return func(e *Engine) { e.analyze = a }
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l.With().Str("component", "backtest").Logger() }
}

// WithInitialBalance sets the starting equity of the compounded curve
func WithInitialBalance(v float64) Option {
	return func(e *Engine) {
		if v > 0 {
			e.initialBalance = v
		}
	}
}

// NewEngine creates a new backtesting engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		analyze:        analyze.AnalyzeBreakout,
		initialBalance: defaultInitialBalance,
		log:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run walks the daily candles from WarmupBars on. At every bar i the analyzer
// only sees daily[:i]; a candidate opens a long at the close of bar i and the
// walk resumes after the bar the trade closed on.
func (e *Engine) Run(ctx context.Context, daily []models.Candle, cfg models.BreakoutConfig) (*models.BacktestResult, error) {
	if len(daily) < MinBars {
		return nil, fmt.Errorf("%w: got %d candles, need %d", ErrInsufficientHistory, len(daily), MinBars)
	}

	trades := make([]models.Trade, 0)
	for i := WarmupBars; i < len(daily)-tailBars; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("backtest interrupted at bar %d: %w", i, err)
		}

		res := e.analyze(daily[:i], cfg)
		if !res.IsBreakoutCandidate || res.SuggestedStopLoss == nil || res.SuggestedTakeProfit == nil {
			continue
		}

		trade := simulateTrade(daily, i, *res.SuggestedStopLoss, *res.SuggestedTakeProfit)
		trades = append(trades, trade)
		e.log.Debug().
			Int("bar", i).
			Time("date", trade.Date).
			Str("exit", string(trade.ExitType)).
			Float64("pnl", trade.PnLPercent).
			Msg("Trade closed")

		i += trade.BarsHeld
	}

	result := summarize(trades, e.initialBalance)
	e.log.Info().
		Int("bars", len(daily)).
		Int("trades", result.TotalTrades).
		Float64("win_rate", result.WinRate).
		Float64("profit_factor", result.ProfitFactor).
		Msg("Backtest completed")

	return result, nil
}

// simulateTrade opens at the close of bar entry and scans forward. The stop is
// checked before the target on each bar.
func simulateTrade(candles []models.Candle, entry int, stop, target float64) models.Trade {
	t := models.Trade{
		EntryBar:   entry,
		EntryPrice: candles[entry].Close,
		StopLoss:   stop,
		TakeProfit: target,
		Date:       candles[entry].Time,
	}

	for j := 1; j <= MaxHoldBars; j++ {
		bar := candles[entry+j]
		switch {
		case bar.Low <= stop:
			t.ExitPrice, t.ExitType = stop, models.ExitStopLoss
		case bar.High >= target:
			t.ExitPrice, t.ExitType = target, models.ExitTakeProfit
		default:
			continue
		}
		t.BarsHeld = j
		break
	}

	if t.ExitType == "" {
		t.ExitPrice = candles[entry+MaxHoldBars].Close
		t.ExitType = models.ExitTime
		t.BarsHeld = MaxHoldBars
	}

	if t.EntryPrice > 0 {
		t.PnLPercent = (t.ExitPrice - t.EntryPrice) / t.EntryPrice * 100
	}
	return t
}
