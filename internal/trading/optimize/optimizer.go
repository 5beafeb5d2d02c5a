// Package optimize tunes the breakout parameters by hill climbing on
// backtest results.
package optimize

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/Alias1177/Breakout/models"
)

const (
	DefaultCandidates = 10

	// MinTrades below which a parameter set scores zero
	MinTrades = 10

	perturbFraction  = 0.1
	maxCountedTrades = 100
)

// Backtester is satisfied by *backtest.Engine
type Backtester interface {
	Run(ctx context.Context, daily []models.Candle, cfg models.BreakoutConfig) (*models.BacktestResult, error)
}

// Result is the best parameter set found
type Result struct {
	Parameters  models.BreakoutConfig `json:"parameters"`
	Score       float64               `json:"score"`
	WinRate     float64               `json:"win_rate"`
	Evaluations int                   `json:"evaluations"`
}

type Optimizer struct {
	backtester Backtester
	rng        *rand.Rand
	candidates int
	log        zerolog.Logger
}

type Option func(*Optimizer)

// WithRand makes runs reproducible
func WithRand(rng *rand.Rand) Option {
	return func(o *Optimizer) { o.rng = rng }
}

func WithCandidates(n int) Option {
	return func(o *Optimizer) {
		if n > 0 {
			o.candidates = n
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *Optimizer) { o.log = l.With().Str("component", "optimizer").Logger() }
}

func New(bt Backtester, opts ...Option) *Optimizer {
	o := &Optimizer{
		backtester: bt,
		rng:        rand.New(rand.NewSource(rand.Int63())),
		candidates: DefaultCandidates,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type evaluation struct {
	cfg     models.BreakoutConfig
	score   float64
	winRate float64
}

// Optimize evaluates initial, then for each generation perturbs the best set
// seen so far into candidates and keeps the best of them if it scores higher
func (o *Optimizer) Optimize(ctx context.Context, daily []models.Candle, initial models.BreakoutConfig, generations int) (*Result, error) {
	if generations < 0 {
		return nil, fmt.Errorf("generations must not be negative, got %d", generations)
	}
	if err := initial.Validate(); err != nil {
		return nil, err
	}

	best := o.evaluate(ctx, daily, initial)
	evaluations := 1

	for g := 0; g < generations; g++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("optimization interrupted at generation %d: %w", g, err)
		}

		candidates := make([]evaluation, o.candidates)
		for k := range candidates {
			candidates[k] = o.evaluate(ctx, daily, perturb(best.cfg, o.rng))
		}
		evaluations += len(candidates)

		best = step(best, candidates)
		o.log.Debug().
			Int("generation", g+1).
			Float64("score", best.score).
			Float64("win_rate", best.winRate).
			Msg("Generation done")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("optimization interrupted: %w", err)
	}

	o.log.Info().
		Int("generations", generations).
		Int("evaluations", evaluations).
		Float64("score", best.score).
		Msg("Optimization finished")

	return &Result{
		Parameters:  best.cfg,
		Score:       best.score,
		WinRate:     best.winRate,
		Evaluations: evaluations,
	}, nil
}

func (o *Optimizer) evaluate(ctx context.Context, daily []models.Candle, cfg models.BreakoutConfig) evaluation {
	res, err := o.backtester.Run(ctx, daily, cfg)
	if err != nil {
		o.log.Debug().Err(err).Msg("Backtest failed, scoring zero")
		return evaluation{cfg: cfg}
	}
	return evaluation{cfg: cfg, score: Score(res), winRate: res.WinRate}
}

// step keeps the running best unless a candidate scores strictly higher
func step(best evaluation, candidates []evaluation) evaluation {
	for _, c := range candidates {
		if c.score > best.score {
			best = c
		}
	}
	return best
}

// Score rates a backtest: win rate dominates, profit factor is capped at 30
// points and trade count at 10
func Score(res *models.BacktestResult) float64 {
	if res == nil || res.TotalTrades < MinTrades {
		return 0
	}
	return 0.6*res.WinRate +
		math.Min(10*res.ProfitFactor, 30) +
		float64(min(res.TotalTrades, maxCountedTrades))/10
}
