package binance

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/Alias1177/Breakout/models"
)

// maxLimit is the largest page the klines endpoint serves
const maxLimit = 1000

// Client fetches spot klines from Binance
type Client struct {
	spot    *binance.Client
	limiter *rate.Limiter
	logger  zerolog.Logger
}

type ClientOptions struct {
	APIKey         string
	APISecret      string
	BaseURL        string
	Testnet        bool
	RequestsPerSec int
}

func NewClient(opts ClientOptions) *Client {
	spot := binance.NewClient(opts.APIKey, opts.APISecret)
	switch {
	case opts.BaseURL != "":
		spot.BaseURL = opts.BaseURL
	case opts.Testnet:
		spot.BaseURL = "https://testnet.binance.vision"
	}

	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 10
	}

	return &Client{
		spot:    spot,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSec), opts.RequestsPerSec),
		logger:  log.With().Str("component", "binance_client").Logger(),
	}
}

// Interval maps a timeframe to the Binance kline interval
func Interval(tf models.Timeframe) (string, error) {
	switch tf {
	case models.Hourly:
		return "1h", nil
	case models.FourHour:
		return "4h", nil
	case models.Daily:
		return "1d", nil
	}
	return "", fmt.Errorf("unsupported timeframe %q", tf)
}

// Symbol turns "DOGE/USDT" into the exchange's "DOGEUSDT"
func Symbol(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, "/", ""))
}

// GetCandles returns up to count klines, oldest first
func (c *Client) GetCandles(ctx context.Context, symbol string, tf models.Timeframe, count int) ([]models.Candle, error) {
	interval, err := Interval(tf)
	if err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	c.logger.Debug().Str("symbol", symbol).Str("interval", interval).Int("count", count).Msg("Fetching klines")

	klines, err := c.spot.NewKlinesService().
		Symbol(Symbol(symbol)).
		Interval(interval).
		Limit(min(count, maxLimit)).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s %s klines: %w", symbol, interval, err)
	}

	candles := make([]models.Candle, 0, len(klines))
	for _, k := range klines {
		candle, err := toCandle(k)
		if err != nil {
			return nil, fmt.Errorf("parsing kline %d: %w", k.OpenTime, err)
		}
		candles = append(candles, candle)
	}

	c.logger.Debug().Int("count", len(candles)).Msg("Fetched klines")
	return candles, nil
}

func toCandle(k *binance.Kline) (models.Candle, error) {
	c := models.Candle{Time: time.UnixMilli(k.OpenTime).UTC()}

	var err error
	for _, f := range []struct {
		raw string
		dst *float64
	}{
		{k.Open, &c.Open},
		{k.High, &c.High},
		{k.Low, &c.Low},
		{k.Close, &c.Close},
		{k.Volume, &c.Volume},
	} {
		if *f.dst, err = strconv.ParseFloat(f.raw, 64); err != nil {
			return models.Candle{}, err
		}
	}
	return c, nil
}
