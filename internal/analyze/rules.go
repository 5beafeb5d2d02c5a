package analyze

import (
	"fmt"

	"github.com/Alias1177/Breakout/internal/indicators"
	"github.com/Alias1177/Breakout/models"
)

// Fixed indicator settings of the breakout analyzer
const (
	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9

	maxBollingerWidth = 1.0
	obvBars           = 5
	obvMinRise        = 0.05
)

// snapshot carries everything the rules look at for one candle series
type snapshot struct {
	cfg     models.BreakoutConfig
	closes  []float64
	volumes []float64
	rsi     indicators.Series
	bands   []indicators.BollingerPoint
	ema     indicators.Series
	atr     indicators.Series
	obv     indicators.Series
	hist    indicators.Series
}

func newSnapshot(candles []models.Candle, cfg models.BreakoutConfig) *snapshot {
	n := len(candles)
	closes := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	volumes := make([]float64, n)
	for i, c := range candles {
		closes[i] = c.Close
		highs[i] = c.High
		lows[i] = c.Low
		volumes[i] = c.Volume
	}

	return &snapshot{
		cfg:     cfg,
		closes:  closes,
		volumes: volumes,
		rsi:     indicators.RSI(closes, cfg.RSIPeriod),
		bands:   indicators.Bollinger(closes, cfg.BollingerPeriod, cfg.BollingerStdDev),
		ema:     indicators.EMA(closes, cfg.EMATrendPeriod),
		atr:     indicators.ATR(highs, lows, closes, cfg.ATRPeriod),
		obv:     indicators.OBV(closes, volumes),
		hist:    indicators.Histogram(indicators.MACD(closes, macdFast, macdSlow, macdSignal)),
	}
}

func (s *snapshot) price() float64 {
	if len(s.closes) == 0 {
		return 0
	}
	return s.closes[len(s.closes)-1]
}

func (s *snapshot) lastBand() indicators.BollingerPoint {
	if len(s.bands) == 0 {
		return indicators.BollingerPoint{}
	}
	return s.bands[len(s.bands)-1]
}

// priceChange is the fractional change of the last close over the previous one
func (s *snapshot) priceChange() indicators.Float {
	n := len(s.closes)
	if n < 2 || s.closes[n-2] <= 0 {
		return indicators.Float{}
	}
	return indicators.Some((s.closes[n-1] - s.closes[n-2]) / s.closes[n-2])
}

// obvChange is the fractional OBV change over the last obvBars bars
func (s *snapshot) obvChange() indicators.Float {
	n := len(s.obv)
	base, cur := s.obv.At(n-1-obvBars), s.obv.At(n-1)
	if !base.Valid || !cur.Valid || base.Value == 0 {
		return indicators.Float{}
	}
	return indicators.Some((cur.Value - base.Value) / abs(base.Value))
}

// rule is one weighted breakout condition. check returns whether it holds
// and the label recorded in the signal list.
type rule struct {
	name   string
	weight int
	check  func(s *snapshot) (bool, string)
}

// breakoutRules is evaluated in order; the order only shapes the signal list
var breakoutRules = []rule{
	{name: "consolidation", weight: 20, check: func(s *snapshot) (bool, string) {
		ok := indicators.IsConsolidating(s.closes, s.cfg.ConsolidationPeriod, s.cfg.ConsolidationThreshold)
		return ok, fmt.Sprintf("Consolidation over %d periods", s.cfg.ConsolidationPeriod)
	}},
	{name: "rsi_range", weight: 15, check: func(s *snapshot) (bool, string) {
		rsi := s.rsi.Last()
		ok := rsi.Valid && rsi.Value >= s.cfg.RSILowerThreshold && rsi.Value <= s.cfg.RSIUpperThreshold
		return ok, fmt.Sprintf("RSI in breakout zone (%.2f)", rsi.Value)
	}},
	{name: "bollinger_squeeze", weight: 15, check: func(s *snapshot) (bool, string) {
		band := s.lastBand()
		return band.Valid && band.Width <= maxBollingerWidth, fmt.Sprintf("Bollinger Bands narrow (width %.4f)", band.Width)
	}},
	{name: "bollinger_breakout", weight: 20, check: func(s *snapshot) (bool, string) {
		return indicators.IsBollingerBreakout(s.closes, s.bands, s.cfg.BreakoutWindow), "Price broke above upper Bollinger Band"
	}},
	{name: "ema_trend", weight: 10, check: func(s *snapshot) (bool, string) {
		if !s.cfg.EMA200Required {
			return true, "EMA trend filter disabled"
		}
		ema := s.ema.Last()
		return ema.Valid && s.price() > ema.Value, fmt.Sprintf("Price above EMA%d", s.cfg.EMATrendPeriod)
	}},
	{name: "volume_increase", weight: 15, check: func(s *snapshot) (bool, string) {
		change := indicators.VolumeChange(s.volumes)
		ok := indicators.IsVolumeIncreasing(s.volumes, s.cfg.VolumeIncreaseThreshold)
		return ok, fmt.Sprintf("Volume up %.2f%%", change.Value*100)
	}},
	{name: "rsi_divergence", weight: 15, check: func(s *snapshot) (bool, string) {
		return indicators.HasPositiveRSIDivergence(s.closes, s.rsi, s.cfg.LookbackPeriod), "Positive RSI divergence"
	}},
	{name: "macd_cross", weight: 15, check: func(s *snapshot) (bool, string) {
		n := len(s.hist)
		prev, cur := s.hist.At(n-2), s.hist.At(n-1)
		ok := prev.Valid && cur.Valid && prev.Value <= 0 && cur.Value > 0
		return ok, "MACD histogram turned positive"
	}},
	{name: "obv_rise", weight: 10, check: func(s *snapshot) (bool, string) {
		change := s.obvChange()
		return change.Valid && change.Value > obvMinRise, fmt.Sprintf("OBV up %.2f%% over %d bars", change.Value*100, obvBars)
	}},
	{name: "price_breakout", weight: 15, check: func(s *snapshot) (bool, string) {
		change := s.priceChange()
		ok := change.Valid && change.Value >= s.cfg.MinBreakoutPercent && change.Value <= s.cfg.MaxBreakoutPercent
		return ok, fmt.Sprintf("Price up %.2f%% on the last bar", change.Value*100)
	}},
}

// evaluate folds the rules into a total score and the labels of the rules
// that held
func evaluate(s *snapshot, rules []rule) (int, []string) {
	total := 0
	signals := make([]string, 0, len(rules))
	for _, r := range rules {
		if ok, label := r.check(s); ok {
			total += r.weight
			signals = append(signals, label)
		}
	}
	return total, signals
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
