// Package signal turns a multi-timeframe breakout analysis into a trade
// signal, or a structured rejection naming the gate that failed.
package signal

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Alias1177/Breakout/internal/analyze"
	"github.com/Alias1177/Breakout/models"
)

// DirectionLong is the only direction a breakout signal takes.
const DirectionLong = "LONG"

// SignalTTL is how long an emitted signal stays valid after it is generated.
const SignalTTL = 24 * time.Hour

const (
	resistanceBars     = 20
	minResistanceGap   = 3.0 // % below the trailing high
	maxTrailingRange   = 0.5
	strongMTFForMedium = 85
)

// Generate runs the gates in order against the coin's three candle sets
func Generate(coin models.CoinData, cfg models.BreakoutConfig) models.SignalResult {
	return generate(coin, cfg, time.Now().UTC())
}

func generate(coin models.CoinData, cfg models.BreakoutConfig, now time.Time) models.SignalResult {
	if len(coin.HourlyData) == 0 || len(coin.FourHourData) == 0 || len(coin.DailyData) == 0 {
		return reject(models.RejectMissingData, "missing timeframe data", map[string]float64{
			"hourly_candles":    float64(len(coin.HourlyData)),
			"four_hour_candles": float64(len(coin.FourHourData)),
			"daily_candles":     float64(len(coin.DailyData)),
		})
	}

	price := coin.HourlyData[len(coin.HourlyData)-1].Close
	if price > cfg.MaxPrice {
		return reject(models.RejectPriceTooHigh, fmt.Sprintf("price %.6f above max %.6f", price, cfg.MaxPrice), map[string]float64{
			"price":     price,
			"max_price": cfg.MaxPrice,
		})
	}

	mtf := analyze.MultiTimeframeAnalysis(coin.HourlyData, coin.FourHourData, coin.DailyData, cfg)
	if !strongSetup(mtf, cfg) {
		return reject(models.RejectWeakSetup, "breakout setup below thresholds", map[string]float64{
			"mtf_score":        float64(mtf.MTFScore),
			"alignment_score":  float64(mtf.AlignmentScore),
			"daily_score":      float64(mtf.TimeframeScores.Daily),
			"profit_potential": float64(models.TierRank(mtf.ProfitPotential)),
		})
	}

	if mtf.SuggestedStopLoss == nil || mtf.SuggestedTakeProfit == nil || *mtf.SuggestedStopLoss >= price {
		return reject(models.RejectNoStopLoss, "no stop loss below the entry price", map[string]float64{"price": price})
	}
	stop, target := *mtf.SuggestedStopLoss, *mtf.SuggestedTakeProfit

	stopPercent := (price - stop) / price * 100
	if stopPercent > cfg.MaxStopLossPercent {
		return reject(models.RejectStopTooWide, fmt.Sprintf("stop loss %.2f%% wider than %.2f%%", stopPercent, cfg.MaxStopLossPercent), map[string]float64{
			"stop_loss_percent":     stopPercent,
			"max_stop_loss_percent": cfg.MaxStopLossPercent,
		})
	}

	high, low := trailingRange(coin.DailyData, resistanceBars)
	if high <= 0 {
		return reject(models.RejectNearResistance, fmt.Sprintf("no positive %d-day high", resistanceBars), map[string]float64{
			"price":         price,
			"trailing_high": high,
		})
	}
	gap := (high - price) / high * 100
	if gap < minResistanceGap {
		return reject(models.RejectNearResistance, fmt.Sprintf("price only %.2f%% below the %d-day high", gap, resistanceBars), map[string]float64{
			"price":         price,
			"trailing_high": high,
			"gap_percent":   gap,
		})
	}

	if low <= 0 || (high-low)/low > maxTrailingRange {
		return reject(models.RejectTooVolatile, fmt.Sprintf("%d-day range too wide", resistanceBars), map[string]float64{
			"trailing_high": high,
			"trailing_low":  low,
		})
	}

	sig := &models.Signal{
		ID:                 uuid.NewString(),
		Symbol:             coin.Symbol,
		Exchange:           coin.Exchange,
		Direction:          DirectionLong,
		EntryPrice:         price,
		StopLoss:           stop,
		TakeProfit:         target,
		StopLossPercent:    round2(stopPercent),
		TakeProfitPercent:  round2((target - price) / price * 100),
		RiskRewardRatio:    round2((target - price) / (price - stop)),
		Confidence:         confidence(mtf),
		SuccessProbability: successProbability(mtf, stopPercent),
		ProfitPotential:    mtf.ProfitPotential,
		RiskLevel:          mtf.RiskLevel,
		MTFScore:           mtf.MTFScore,
		AlignmentScore:     mtf.AlignmentScore,
		TimeframeScores:    mtf.TimeframeScores,
		Signals:            mtf.CombinedSignals,
		GeneratedAt:        now,
		ExpiresAt:          now.Add(SignalTTL),
	}

	return models.SignalResult{Success: true, Signal: sig}
}

func strongSetup(mtf models.MTFResult, cfg models.BreakoutConfig) bool {
	if mtf.MTFScore < cfg.MinMTFScore || mtf.AlignmentScore < cfg.MinAlignmentScore || mtf.TimeframeScores.Daily < cfg.MinDailyScore {
		return false
	}
	if models.TierRank(mtf.ProfitPotential) >= models.TierRank(cfg.MinProfitPotential) {
		return true
	}
	return mtf.ProfitPotential == models.TierMedium && mtf.MTFScore > strongMTFForMedium
}

// confidence is scored 1-10
func confidence(mtf models.MTFResult) float64 {
	c := float64(mtf.MTFScore) / 10

	switch {
	case mtf.AlignmentScore >= 6:
		c += 1
	case mtf.AlignmentScore >= 4:
		c += 0.5
	}

	switch mtf.ProfitPotential {
	case models.TierVeryHigh:
		c += 1
	case models.TierHigh:
		c += 0.5
	}

	return round1(clamp(c, 1, 10))
}

// successProbability is a percentage within 60-95
func successProbability(mtf models.MTFResult, stopPercent float64) float64 {
	p := float64(mtf.MTFScore) * 0.8

	switch {
	case mtf.AlignmentScore >= 6:
		p += 10
	case mtf.AlignmentScore >= 4:
		p += 5
	}

	switch mtf.ProfitPotential {
	case models.TierVeryHigh:
		p += 5
	case models.TierHigh:
		p += 3
	}

	// Stops that are too tight get shaken out, too wide ones bleed
	if stopPercent < 2 || stopPercent > 4 {
		p -= 5
	}

	return round1(clamp(p, 60, 95))
}

// trailingRange returns the highest high and lowest low of the last n candles
func trailingRange(candles []models.Candle, n int) (float64, float64) {
	window := candles[max(0, len(candles)-n):]
	high, low := window[0].High, window[0].Low
	for _, c := range window[1:] {
		high = max(high, c.High)
		low = min(low, c.Low)
	}
	return high, low
}

func reject(reason models.RejectReason, msg string, details map[string]float64) models.SignalResult {
	return models.SignalResult{Reason: reason, Message: msg, Details: details}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
