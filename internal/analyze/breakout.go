package analyze

import (
	"github.com/shopspring/decimal"

	"github.com/Alias1177/Breakout/internal/indicators"
	"github.com/Alias1177/Breakout/models"
)

const (
	// CandidateScore is the score from which a series counts as a breakout candidate
	CandidateScore = 70
	maxScore       = 100

	// Targets are always placed at 1:3 risk to reward
	rewardMultiple = 3

	minCandlesForTiers = 20
)

// AnalyzeBreakout scores one candle series. It never fails: short input
// simply leaves indicators null and lowers the score.
func AnalyzeBreakout(candles []models.Candle, cfg models.BreakoutConfig) models.AnalysisResult {
	s := newSnapshot(candles, cfg)

	total, signals := evaluate(s, breakoutRules)
	score := min(maxScore, total)

	price := s.price()
	atr := s.atr.Last()

	result := models.AnalysisResult{
		IsBreakoutCandidate: score >= CandidateScore,
		BreakoutScore:       score,
		Signals:             signals,
		Metrics:             s.metrics(),
	}
	result.ProfitPotential, result.RiskLevel = assessTiers(len(candles), price, atr, score)

	if result.IsBreakoutCandidate && atr.Valid {
		stop, target := suggestLevels(price, atr.Value)
		result.SuggestedStopLoss = &stop
		result.SuggestedTakeProfit = &target
	}

	return result
}

func (s *snapshot) metrics() models.AnalysisMetrics {
	band := s.lastBand()
	m := models.AnalysisMetrics{
		CurrentPrice:  s.price(),
		RSI:           s.rsi.Last().Ptr(),
		EMA200:        s.ema.Last().Ptr(),
		ATR:           s.atr.Last().Ptr(),
		OBV:           s.obv.Last().Ptr(),
		MACDHistogram: s.hist.Last().Ptr(),
		PriceChange:   s.priceChange().Ptr(),
		VolumeChange:  indicators.VolumeChange(s.volumes).Ptr(),
	}
	if band.Valid {
		m.BollingerUpper = indicators.Some(band.Upper).Ptr()
		m.BollingerWidth = indicators.Some(band.Width).Ptr()
	}
	if atr := s.atr.Last(); atr.Valid && m.CurrentPrice > 0 {
		m.ATRPercent = indicators.Some(atr.Value / m.CurrentPrice * 100).Ptr()
	}
	return m
}

// suggestLevels places the stop one ATR below price and the target three
// times that distance above it
func suggestLevels(price, atr float64) (float64, float64) {
	stop := round4(price - atr)
	target := round4(price + rewardMultiple*(price-stop))
	return stop, target
}

// assessTiers grades profit potential from ATR% and score, and risk from ATR% alone
func assessTiers(n int, price float64, atr indicators.Float, score int) (string, string) {
	if n < minCandlesForTiers || !atr.Valid || price <= 0 {
		return models.TierUnknown, models.TierUnknown
	}
	atrPercent := atr.Value / price * 100

	profit := models.TierLow
	switch {
	case atrPercent > 5 && score > 85:
		profit = models.TierVeryHigh
	case atrPercent > 3 && score > 75:
		profit = models.TierHigh
	case atrPercent > 2 && score > 65:
		profit = models.TierMedium
	}

	risk := models.TierLow
	switch {
	case atrPercent > 8:
		risk = models.TierVeryHigh
	case atrPercent > 5:
		risk = models.TierHigh
	case atrPercent > 3:
		risk = models.TierMedium
	}

	return profit, risk
}

func round4(v float64) float64 {
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}
