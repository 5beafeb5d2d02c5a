package analyze

import (
	"math"

	"github.com/Alias1177/Breakout/models"
)

const (
	confirmedAlignment = 4
	confirmedScore     = 75
)

// timeframeWeights drive both the alignment (integer) and the weighted score
var timeframeWeights = []struct {
	tf        models.Timeframe
	alignment int
	weight    float64
}{
	{models.Hourly, 1, 0.2},
	{models.FourHour, 2, 0.3},
	{models.Daily, 3, 0.5},
}

// MultiTimeframeAnalysis runs the breakout analysis on each timeframe with the
// same config and combines the results
func MultiTimeframeAnalysis(hourly, fourHour, daily []models.Candle, cfg models.BreakoutConfig) models.MTFResult {
	analyses := map[models.Timeframe]models.AnalysisResult{
		models.Hourly:   AnalyzeBreakout(hourly, cfg),
		models.FourHour: AnalyzeBreakout(fourHour, cfg),
		models.Daily:    AnalyzeBreakout(daily, cfg),
	}

	alignment := 0
	weighted := 0.0
	combined := make([]string, 0)
	for _, w := range timeframeWeights {
		a := analyses[w.tf]
		if a.IsBreakoutCandidate {
			alignment += w.alignment
		}
		weighted += w.weight * float64(a.BreakoutScore)
		for _, s := range a.Signals {
			combined = append(combined, "["+string(w.tf)+"] "+s)
		}
	}
	score := int(math.Round(weighted))

	result := models.MTFResult{
		MTFScore:       score,
		AlignmentScore: alignment,
		TimeframeScores: models.TimeframeScores{
			Hourly:   analyses[models.Hourly].BreakoutScore,
			FourHour: analyses[models.FourHour].BreakoutScore,
			Daily:    analyses[models.Daily].BreakoutScore,
		},
		IsConfirmedBreakout: alignment >= confirmedAlignment && score >= confirmedScore,
		CombinedSignals:     combined,
		Analyses:            analyses,
	}

	// Levels and tiers come from the slowest timeframe that has them
	for _, tf := range []models.Timeframe{models.Daily, models.FourHour, models.Hourly} {
		a := analyses[tf]
		if result.ProfitPotential == "" {
			result.ProfitPotential = a.ProfitPotential
		}
		if result.RiskLevel == "" {
			result.RiskLevel = a.RiskLevel
		}
		if result.SuggestedStopLoss == nil && a.SuggestedStopLoss != nil {
			result.SuggestedStopLoss = a.SuggestedStopLoss
			result.SuggestedTakeProfit = a.SuggestedTakeProfit
		}
	}

	return result
}
