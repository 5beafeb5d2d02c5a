package signal

import "github.com/Alias1177/Breakout/models"

// FilterHighAccuracy keeps the signals that pass every threshold of fc.
// The input slice is not modified.
func FilterHighAccuracy(signals []models.Signal, fc models.FilterConfig) []models.Signal {
	out := make([]models.Signal, 0, len(signals))
	for _, s := range signals {
		if passes(s, fc) {
			out = append(out, s)
		}
	}
	return out
}

func passes(s models.Signal, fc models.FilterConfig) bool {
	if s.Confidence < fc.MinConfidence ||
		s.SuccessProbability < fc.MinSuccessProbability ||
		s.RiskRewardRatio < fc.MinRiskRewardRatio ||
		s.MTFScore < fc.MinMTFScore ||
		s.AlignmentScore < fc.MinAlignmentScore {
		return false
	}

	switch s.RiskLevel {
	case models.TierLow, models.TierMedium:
		return true
	case models.TierHigh:
		return s.Confidence > fc.HighRiskMinConfidence
	}
	return false
}
