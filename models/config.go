package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// BreakoutConfig holds every tunable of the breakout analyzer, the signal gates
// and the backtest. Defaults live in DefaultBreakoutConfig only.
type BreakoutConfig struct {
	// Breakout analyzer
	ConsolidationPeriod     int     `yaml:"consolidation_period" json:"consolidation_period" validate:"min=2"`
	ConsolidationThreshold  float64 `yaml:"consolidation_threshold" json:"consolidation_threshold" validate:"gt=0,lte=1"`
	RSIPeriod               int     `yaml:"rsi_period" json:"rsi_period" validate:"min=2"`
	RSILowerThreshold       float64 `yaml:"rsi_lower_threshold" json:"rsi_lower_threshold" validate:"gte=0,lte=100"`
	RSIUpperThreshold       float64 `yaml:"rsi_upper_threshold" json:"rsi_upper_threshold" validate:"gte=0,lte=100,gtefield=RSILowerThreshold"`
	VolumeIncreaseThreshold float64 `yaml:"volume_increase_threshold" json:"volume_increase_threshold" validate:"gte=0"`
	MinBreakoutPercent      float64 `yaml:"min_breakout_percent" json:"min_breakout_percent" validate:"gte=0"`
	MaxBreakoutPercent      float64 `yaml:"max_breakout_percent" json:"max_breakout_percent" validate:"gtefield=MinBreakoutPercent"`
	BollingerPeriod         int     `yaml:"bollinger_period" json:"bollinger_period" validate:"min=2"`
	BollingerStdDev         float64 `yaml:"bollinger_std_dev" json:"bollinger_std_dev" validate:"gt=0"`
	BreakoutWindow          int     `yaml:"breakout_window" json:"breakout_window" validate:"min=1"`
	ATRPeriod               int     `yaml:"atr_period" json:"atr_period" validate:"min=1"`
	LookbackPeriod          int     `yaml:"lookback_period" json:"lookback_period" validate:"min=2"`
	EMATrendPeriod          int     `yaml:"ema_trend_period" json:"ema_trend_period" validate:"min=1"`
	EMA200Required          bool    `yaml:"ema200_required" json:"ema200_required"`

	// Signal gates
	MinMTFScore        int     `yaml:"min_mtf_score" json:"min_mtf_score" validate:"gte=0,lte=100"`
	MinAlignmentScore  int     `yaml:"min_alignment_score" json:"min_alignment_score" validate:"gte=0,lte=6"`
	MinDailyScore      int     `yaml:"min_daily_score" json:"min_daily_score" validate:"gte=0,lte=100"`
	MaxPrice           float64 `yaml:"max_price" json:"max_price" validate:"gt=0"`
	RiskRewardRatio    float64 `yaml:"risk_reward_ratio" json:"risk_reward_ratio" validate:"gt=0"` // informational: targets stay at 1:3
	MaxStopLossPercent float64 `yaml:"max_stop_loss_percent" json:"max_stop_loss_percent" validate:"gt=0"`
	MinProfitPotential string  `yaml:"min_profit_potential" json:"min_profit_potential" validate:"oneof=Low Medium High 'Very High'"`
}

// DefaultBreakoutConfig returns the stock parameter set
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		ConsolidationPeriod:     6,
		ConsolidationThreshold:  0.15,
		RSIPeriod:               14,
		RSILowerThreshold:       50,
		RSIUpperThreshold:       75,
		VolumeIncreaseThreshold: 0.10,
		MinBreakoutPercent:      0.01,
		MaxBreakoutPercent:      0.20,
		BollingerPeriod:         20,
		BollingerStdDev:         2,
		BreakoutWindow:          1,
		ATRPeriod:               14,
		LookbackPeriod:          20,
		EMATrendPeriod:          200,
		EMA200Required:          true,

		MinMTFScore:        75,
		MinAlignmentScore:  4,
		MinDailyScore:      70,
		MaxPrice:           1.0,
		RiskRewardRatio:    3.0,
		MaxStopLossPercent: 5,
		MinProfitPotential: TierHigh,
	}
}

// Validate checks field ranges; it does not clamp.
func (c BreakoutConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid breakout config: %w", err)
	}
	return nil
}

// FilterConfig holds the thresholds of the high-accuracy signal filter
type FilterConfig struct {
	MinConfidence         float64 `yaml:"min_confidence" json:"min_confidence"`
	MinSuccessProbability float64 `yaml:"min_success_probability" json:"min_success_probability"`
	MinRiskRewardRatio    float64 `yaml:"min_risk_reward_ratio" json:"min_risk_reward_ratio"`
	MinMTFScore           int     `yaml:"min_mtf_score" json:"min_mtf_score"`
	MinAlignmentScore     int     `yaml:"min_alignment_score" json:"min_alignment_score"`
	HighRiskMinConfidence float64 `yaml:"high_risk_min_confidence" json:"high_risk_min_confidence"`
}

// DefaultFilterConfig returns the high-accuracy thresholds
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinConfidence:         7.5,
		MinSuccessProbability: 80,
		MinRiskRewardRatio:    2.5,
		MinMTFScore:           75,
		MinAlignmentScore:     4,
		HighRiskMinConfidence: 8.5,
	}
}
