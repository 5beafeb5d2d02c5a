package optimize

import (
	"math"
	"math/rand"

	"github.com/Alias1177/Breakout/models"
)

// param is one tunable field with its search range
type param struct {
	name     string
	min, max float64
	field    func(c *models.BreakoutConfig) any
}

var params = []param{
	{name: "consolidation_period", min: 3, max: 20, field: func(c *models.BreakoutConfig) any { return &c.ConsolidationPeriod }},
	{name: "consolidation_threshold", min: 0.05, max: 0.30, field: func(c *models.BreakoutConfig) any { return &c.ConsolidationThreshold }},
	{name: "rsi_lower_threshold", min: 40, max: 60, field: func(c *models.BreakoutConfig) any { return &c.RSILowerThreshold }},
	{name: "rsi_upper_threshold", min: 70, max: 85, field: func(c *models.BreakoutConfig) any { return &c.RSIUpperThreshold }},
	{name: "volume_increase_threshold", min: 0.05, max: 0.30, field: func(c *models.BreakoutConfig) any { return &c.VolumeIncreaseThreshold }},
	{name: "min_breakout_percent", min: 0.005, max: 0.05, field: func(c *models.BreakoutConfig) any { return &c.MinBreakoutPercent }},
	{name: "max_breakout_percent", min: 0.10, max: 0.40, field: func(c *models.BreakoutConfig) any { return &c.MaxBreakoutPercent }},
	{name: "min_mtf_score", min: 60, max: 90, field: func(c *models.BreakoutConfig) any { return &c.MinMTFScore }},
	{name: "min_alignment_score", min: 3, max: 6, field: func(c *models.BreakoutConfig) any { return &c.MinAlignmentScore }},
	{name: "risk_reward_ratio", min: 2, max: 5, field: func(c *models.BreakoutConfig) any { return &c.RiskRewardRatio }},
	{name: "max_stop_loss_percent", min: 3, max: 8, field: func(c *models.BreakoutConfig) any { return &c.MaxStopLossPercent }},
}

// perturb moves every tunable field by a uniform delta of up to 10% of its
// range and clamps it back into the range. cfg is not modified.
func perturb(cfg models.BreakoutConfig, rng *rand.Rand) models.BreakoutConfig {
	out := cfg
	for _, p := range params {
		delta := (rng.Float64()*2 - 1) * perturbFraction * (p.max - p.min)
		switch v := p.field(&out).(type) {
		case *int:
			*v = int(p.clamp(math.Round(float64(*v) + delta)))
		case *float64:
			*v = p.clamp(*v + delta)
		}
	}
	return out
}

func (p param) clamp(v float64) float64 {
	return math.Max(p.min, math.Min(p.max, v))
}
