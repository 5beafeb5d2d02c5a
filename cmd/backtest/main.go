package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Breakout/internal/config"
	"github.com/Alias1177/Breakout/internal/marketdata"
	"github.com/Alias1177/Breakout/internal/trading/backtest"
	"github.com/Alias1177/Breakout/internal/trading/optimize"
	"github.com/Alias1177/Breakout/models"
)

func main() {
	symbol := flag.String("symbol", "", "symbol to backtest, defaults to the first configured one")
	candlesFile := flag.String("candles", "", "JSON file with daily candles instead of the market data provider")
	generations := flag.Int("optimize", 0, "hill-climbing generations, 0 skips optimization")
	seed := flag.Int64("seed", 0, "random seed for optimization and Monte Carlo, 0 uses the clock")
	simulations := flag.Int("montecarlo", 0, "Monte Carlo simulations, 0 skips the simulation")
	saveTo := flag.String("save", "", "write the optimized parameters to this YAML file")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandling(cancel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogging(cfg.LogLevel)

	params, err := config.LoadParams(cfg.ParamsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load strategy parameters")
	}

	if *symbol == "" && len(cfg.Symbols) > 0 {
		*symbol = cfg.Symbols[0]
	}

	daily, err := loadDaily(ctx, cfg, *symbol, *candlesFile)
	if err != nil {
		log.Fatal().Err(err).Str("symbol", *symbol).Msg("Failed to load daily candles")
	}
	log.Info().Str("symbol", *symbol).Int("candles", len(daily)).Msg("History loaded")

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	engine := backtest.NewEngine(
		backtest.WithLogger(log.Logger),
		backtest.WithInitialBalance(cfg.AccountSize),
	)

	if *generations > 0 {
		opt := optimize.New(engine, optimize.WithRand(rng), optimize.WithLogger(log.Logger))
		best, err := opt.Optimize(ctx, daily, params, *generations)
		if err != nil {
			log.Fatal().Err(err).Msg("Optimization failed")
		}
		log.Info().
			Float64("score", best.Score).
			Float64("win_rate", best.WinRate).
			Int("evaluations", best.Evaluations).
			Msg("Optimization finished")
		params = best.Parameters

		if *saveTo != "" {
			if err := config.SaveParams(*saveTo, params); err != nil {
				log.Fatal().Err(err).Str("path", *saveTo).Msg("Failed to save parameters")
			}
			log.Info().Str("path", *saveTo).Msg("Parameters saved")
		}
	}

	result, err := engine.Run(ctx, daily, params)
	if err != nil {
		log.Fatal().Err(err).Msg("Backtest failed")
	}
	fmt.Println(backtest.FormatResults(result))

	if *simulations > 0 {
		mc, err := engine.MonteCarloSimulation(result.Trades, *simulations, rng)
		if err != nil {
			log.Warn().Err(err).Msg("Monte Carlo skipped")
			return
		}
		fmt.Println(backtest.FormatMonteCarlo(mc))
	}
}

// loadDaily reads candles from path when given, otherwise asks the provider
// for BacktestDays worth of daily bars
func loadDaily(ctx context.Context, cfg *config.Config, symbol, path string) ([]models.Candle, error) {
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var candles []models.Candle
		if err := json.Unmarshal(raw, &candles); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return candles, nil
	}

	if symbol == "" {
		return nil, fmt.Errorf("no symbol configured")
	}
	client, err := marketdata.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	count := max(models.CalculateCandlesForDays(models.Daily, cfg.BacktestDays), backtest.MinBars)
	return client.GetCandles(ctx, symbol, models.Daily, count)
}

func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, exiting...")
		cancel()
	}()
}

func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}
