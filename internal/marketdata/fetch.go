// Package marketdata assembles the three candle sets a breakout signal needs.
package marketdata

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Alias1177/Breakout/models"
)

// Counts is how many candles to request per timeframe
type Counts struct {
	Hourly   int
	FourHour int
	Daily    int
}

// DefaultCounts cover the EMA200 warm-up on every timeframe
func DefaultCounts() Counts {
	return Counts{Hourly: 300, FourHour: 300, Daily: 300}
}

// FetchTimeframes loads the hourly, four-hour and daily candles of symbol
// concurrently. The first failure cancels the other requests.
func FetchTimeframes(ctx context.Context, client models.CandleClient, symbol, exchange string, counts Counts) (models.CoinData, error) {
	coin := models.CoinData{Symbol: symbol, Exchange: exchange}

	g, ctx := errgroup.WithContext(ctx)
	for _, job := range []struct {
		tf    models.Timeframe
		count int
		dst   *[]models.Candle
	}{
		{models.Hourly, counts.Hourly, &coin.HourlyData},
		{models.FourHour, counts.FourHour, &coin.FourHourData},
		{models.Daily, counts.Daily, &coin.DailyData},
	} {
		job := job
		g.Go(func() error {
			candles, err := client.GetCandles(ctx, symbol, job.tf, job.count)
			if err != nil {
				return fmt.Errorf("%s %s: %w", symbol, job.tf, err)
			}
			*job.dst = candles
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return models.CoinData{}, err
	}
	return coin, nil
}

// IsStale reports whether the newest candle opened more than two candle
// lengths before now. An empty set is stale.
func IsStale(candles []models.Candle, tf models.Timeframe, now time.Time) bool {
	if len(candles) == 0 {
		return true
	}
	return now.Sub(candles[len(candles)-1].Time) > 2*tf.Duration()
}
