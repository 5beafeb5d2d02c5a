package models

import (
	"time"
)

// Candle represents a single price candle
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Timeframe is the candle granularity used by the multi-timeframe analysis
type Timeframe string

const (
	Hourly   Timeframe = "1H"
	FourHour Timeframe = "4H"
	Daily    Timeframe = "1D"
)

// Tier levels shared by profit potential and risk level
const (
	TierUnknown  = "Unknown"
	TierLow      = "Low"
	TierMedium   = "Medium"
	TierHigh     = "High"
	TierVeryHigh = "Very High"
)

// TierRank orders tiers from Low to Very High; unknown tiers rank 0.
func TierRank(tier string) int {
	switch tier {
	case TierLow:
		return 1
	case TierMedium:
		return 2
	case TierHigh:
		return 3
	case TierVeryHigh:
		return 4
	}
	return 0
}

// AnalysisMetrics holds the latest indicator readings behind a score.
// A nil field means the indicator had not warmed up yet.
type AnalysisMetrics struct {
	CurrentPrice   float64  `json:"current_price"`
	RSI            *float64 `json:"rsi"`
	BollingerUpper *float64 `json:"bollinger_upper"`
	BollingerWidth *float64 `json:"bollinger_width"`
	EMA200         *float64 `json:"ema200"`
	ATR            *float64 `json:"atr"`
	ATRPercent     *float64 `json:"atr_percent"`
	OBV            *float64 `json:"obv"`
	MACDHistogram  *float64 `json:"macd_histogram"`
	PriceChange    *float64 `json:"price_change"`
	VolumeChange   *float64 `json:"volume_change"`
}

// AnalysisResult is the outcome of scoring one candle series
type AnalysisResult struct {
	IsBreakoutCandidate bool            `json:"is_breakout_candidate"`
	BreakoutScore       int             `json:"breakout_score"`
	Signals             []string        `json:"signals"`
	Metrics             AnalysisMetrics `json:"metrics"`
	ProfitPotential     string          `json:"profit_potential"`
	RiskLevel           string          `json:"risk_level"`
	SuggestedStopLoss   *float64        `json:"suggested_stop_loss,omitempty"`
	SuggestedTakeProfit *float64        `json:"suggested_take_profit,omitempty"`
}

// TimeframeScores are the per-timeframe breakout scores
type TimeframeScores struct {
	Hourly   int `json:"hourly"`
	FourHour int `json:"four_hour"`
	Daily    int `json:"daily"`
}

// MTFResult combines the analysis of the hourly, four-hour and daily series
type MTFResult struct {
	MTFScore            int                          `json:"mtf_score"`
	AlignmentScore      int                          `json:"alignment_score"`
	TimeframeScores     TimeframeScores              `json:"timeframe_scores"`
	IsConfirmedBreakout bool                         `json:"is_confirmed_breakout"`
	CombinedSignals     []string                     `json:"combined_signals"`
	ProfitPotential     string                       `json:"profit_potential"`
	RiskLevel           string                       `json:"risk_level"`
	SuggestedStopLoss   *float64                     `json:"suggested_stop_loss,omitempty"`
	SuggestedTakeProfit *float64                     `json:"suggested_take_profit,omitempty"`
	Analyses            map[Timeframe]AnalysisResult `json:"analyses,omitempty"`
}

// CoinData bundles the three candle sets of one symbol
type CoinData struct {
	Symbol       string   `json:"symbol"`
	Exchange     string   `json:"exchange,omitempty"`
	HourlyData   []Candle `json:"hourly_data"`
	FourHourData []Candle `json:"four_hour_data"`
	DailyData    []Candle `json:"daily_data"`
}

// Signal is an accepted breakout setup
type Signal struct {
	ID                 string          `json:"id"`
	Symbol             string          `json:"symbol"`
	Exchange           string          `json:"exchange,omitempty"`
	Direction          string          `json:"direction"`
	EntryPrice         float64         `json:"entry_price"`
	StopLoss           float64         `json:"stop_loss"`
	TakeProfit         float64         `json:"take_profit"`
	StopLossPercent    float64         `json:"stop_loss_percent"`
	TakeProfitPercent  float64         `json:"take_profit_percent"`
	RiskRewardRatio    float64         `json:"risk_reward_ratio"`
	Confidence         float64         `json:"confidence"`          // 1-10
	SuccessProbability float64         `json:"success_probability"` // 60-95
	ProfitPotential    string          `json:"profit_potential"`
	RiskLevel          string          `json:"risk_level"`
	MTFScore           int             `json:"mtf_score"`
	AlignmentScore     int             `json:"alignment_score"`
	TimeframeScores    TimeframeScores `json:"timeframe_scores"`
	Signals            []string        `json:"signals"`
	GeneratedAt        time.Time       `json:"generated_at"`
	ExpiresAt          time.Time       `json:"expires_at"`
}

// RejectReason identifies the gate that refused a setup
type RejectReason string

const (
	RejectMissingData    RejectReason = "MISSING_DATA"
	RejectPriceTooHigh   RejectReason = "PRICE_TOO_HIGH"
	RejectWeakSetup      RejectReason = "WEAK_SETUP"
	RejectNoStopLoss     RejectReason = "NO_STOP_LOSS"
	RejectStopTooWide    RejectReason = "STOP_TOO_WIDE"
	RejectNearResistance RejectReason = "NEAR_RESISTANCE"
	RejectTooVolatile    RejectReason = "TOO_VOLATILE"
)

// SignalResult is either an accepted Signal or a rejection with its diagnostics
type SignalResult struct {
	Success bool               `json:"success"`
	Signal  *Signal            `json:"signal,omitempty"`
	Reason  RejectReason       `json:"reason,omitempty"`
	Message string             `json:"message,omitempty"`
	Details map[string]float64 `json:"details,omitempty"`
}

// ExitType tells how a simulated trade was closed
type ExitType string

const (
	ExitStopLoss   ExitType = "Stop Loss"
	ExitTakeProfit ExitType = "Take Profit"
	ExitTime       ExitType = "Time Exit"
)

// Trade is one simulated position of the backtest
type Trade struct {
	EntryBar   int       `json:"entry_bar"`
	EntryPrice float64   `json:"entry_price"`
	StopLoss   float64   `json:"stop_loss"`
	TakeProfit float64   `json:"take_profit"`
	ExitPrice  float64   `json:"exit_price"`
	ExitType   ExitType  `json:"exit_type"`
	BarsHeld   int       `json:"bars_held"`
	PnLPercent float64   `json:"pnl_percent"`
	Date       time.Time `json:"date"`
}

// BacktestResult stores backtesting results
type BacktestResult struct {
	TotalTrades    int     `json:"total_trades"`
	WinningTrades  int     `json:"winning_trades"`
	LosingTrades   int     `json:"losing_trades"`
	WinRate        float64 `json:"win_rate"`
	AverageProfit  float64 `json:"average_profit"`
	AverageLoss    float64 `json:"average_loss"`
	ProfitFactor   float64 `json:"profit_factor"`
	Expectancy     float64 `json:"expectancy"`
	MaxConsecutive struct {
		Wins  int `json:"wins"`
		Loses int `json:"loses"`
	} `json:"max_consecutive"`
	MaxDrawdown        float64   `json:"max_drawdown"`         // Peak-to-trough of the compounded equity, %
	TotalReturnPercent float64   `json:"total_return_percent"` // Compounded over all trades
	EquityCurve        []float64 `json:"equity_curve,omitempty"`
	Trades             []Trade   `json:"trades"`
}

// PositionSizingResult describes how much to buy for a signal
type PositionSizingResult struct {
	PositionSize    float64 `json:"position_size"`
	PositionValue   float64 `json:"position_value"`
	StopLoss        float64 `json:"stop_loss"`
	TakeProfit      float64 `json:"take_profit"`
	RiskRewardRatio float64 `json:"risk_reward_ratio"`
	AccountRisk     float64 `json:"account_risk"`
}

// SimulationResult представляет результат одной симуляции Монте-Карло
type SimulationResult struct {
	FinalBalance float64   `json:"final_balance"`
	TotalReturn  float64   `json:"total_return"`
	MaxDrawdown  float64   `json:"max_drawdown"`
	EquityCurve  []float64 `json:"equity_curve,omitempty"`
}

// MonteCarloPercentiles представляет процентили результатов симуляций
type MonteCarloPercentiles struct {
	Worst  float64 `json:"worst"`
	P10    float64 `json:"p10"`
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
	Best   float64 `json:"best"`
}

// MonteCarloResults представляет общие результаты симуляции Монте-Карло
type MonteCarloResults struct {
	Simulations         int                   `json:"simulations"`
	Returns             MonteCarloPercentiles `json:"returns"`
	AverageDrawdown     float64               `json:"average_drawdown"`
	WorstDrawdown       float64               `json:"worst_drawdown"`
	ProbabilityOfProfit float64               `json:"probability_of_profit"`
}
