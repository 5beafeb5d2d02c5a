package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Breakout/internal/config"
	"github.com/Alias1177/Breakout/internal/marketdata"
	"github.com/Alias1177/Breakout/internal/notify"
	sig "github.com/Alias1177/Breakout/internal/signal"
	"github.com/Alias1177/Breakout/internal/trading/risk"
	"github.com/Alias1177/Breakout/models"
)

func main() {
	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	setupSignalHandling(cancel)

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// 2. Configure logging
	setupLogging(cfg.LogLevel)
	log.Info().Msg("Starting breakout screener")

	params, err := config.LoadParams(cfg.ParamsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load strategy parameters")
	}
	printConfig(cfg, params)

	// 3. Setup clients
	client, err := marketdata.NewClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create market data client")
	}

	var tg *notify.Telegram
	if cfg.TelegramEnabled() {
		if tg, err = notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID); err != nil {
			log.Fatal().Err(err).Msg("Failed to create Telegram notifier")
		}
	}

	s := &screener{cfg: cfg, params: params, client: client, notifier: tg}

	// 4. Scan once or on every tick
	s.scan(ctx)
	if cfg.ScanInterval <= 0 {
		return
	}

	ticker := time.NewTicker(cfg.ScanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.scan(ctx)
		}
	}
}

type screener struct {
	cfg      *config.Config
	params   models.BreakoutConfig
	client   models.CandleClient
	notifier *notify.Telegram
}

// scan evaluates every configured symbol in turn
func (s *screener) scan(ctx context.Context) {
	started := time.Now()
	var accepted []models.Signal

	for _, symbol := range s.cfg.Symbols {
		if ctx.Err() != nil {
			return
		}
		logger := log.With().Str("symbol", symbol).Logger()

		coin, err := marketdata.FetchTimeframes(ctx, s.client, symbol, s.cfg.Exchange, marketdata.DefaultCounts())
		if err != nil {
			logger.Error().Err(err).Msg("Failed to fetch candles")
			continue
		}

		if marketdata.IsStale(coin.HourlyData, models.Hourly, time.Now()) {
			logger.Warn().Msg("Hourly candles look stale")
		}

		res := sig.Generate(coin, s.params)
		if !res.Success {
			logger.Info().
				Str("reason", string(res.Reason)).
				Interface("details", res.Details).
				Msg(res.Message)
			continue
		}
		accepted = append(accepted, *res.Signal)
	}

	if s.cfg.HighAccuracyOnly {
		accepted = sig.FilterHighAccuracy(accepted, models.DefaultFilterConfig())
	}

	for _, found := range accepted {
		s.publish(found)
	}

	log.Info().
		Int("symbols", len(s.cfg.Symbols)).
		Int("signals", len(accepted)).
		Dur("took", time.Since(started)).
		Msg("Scan finished")
}

func (s *screener) publish(found models.Signal) {
	logger := log.With().Str("symbol", found.Symbol).Logger()

	size, err := risk.ForSignal(found, s.cfg.AccountSize, s.cfg.RiskPerTrade)
	if err != nil {
		logger.Warn().Err(err).Msg("Position sizing failed")
	}

	out, err := json.MarshalIndent(struct {
		Signal   models.Signal                `json:"signal"`
		Position *models.PositionSizingResult `json:"position,omitempty"`
	}{found, size}, "", "  ")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to encode signal")
		return
	}
	fmt.Println(string(out))

	if s.notifier != nil {
		if err := s.notifier.NotifySignal(found, size); err != nil {
			logger.Error().Err(err).Msg("Failed to notify")
		}
	}
}

// setupSignalHandling configures signal handling for graceful shutdown
func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, exiting...")
		cancel()
	}()
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	// Set log level from config
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}

func printConfig(cfg *config.Config, params models.BreakoutConfig) {
	log.Info().
		Str("Provider", cfg.DataProvider).
		Strs("Symbols", cfg.Symbols).
		Dur("ScanInterval", cfg.ScanInterval).
		Bool("HighAccuracyOnly", cfg.HighAccuracyOnly).
		Bool("Telegram", cfg.TelegramEnabled()).
		Int("MinMTFScore", params.MinMTFScore).
		Int("MinAlignmentScore", params.MinAlignmentScore).
		Float64("MaxPrice", params.MaxPrice).
		Float64("MaxStopLossPercent", params.MaxStopLossPercent).
		Msg("Configuration loaded")
}
