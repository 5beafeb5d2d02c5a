package indicators

import "math"

// ATR is the Wilder-smoothed average true range. The first value is the
// simple mean of the first period true ranges, placed at index period-1.
// Inputs of differing lengths yield an all-null series.
func ATR(high, low, close []float64, period int) Series {
	n := len(close)
	if len(high) != n || len(low) != n {
		return NullSeries(max(len(high), len(low), n))
	}
	out := NullSeries(n)
	if period <= 0 || n < period {
		return out
	}

	tr := TrueRange(high, low, close)

	var sum float64
	for i := 0; i < period; i++ {
		sum += tr[i]
	}
	atr := sum / float64(period)
	out[period-1] = Some(atr)

	for i := period; i < n; i++ {
		atr = (atr*float64(period-1) + tr[i]) / float64(period)
		out[i] = Some(atr)
	}
	return out
}

// TrueRange returns the per-bar true range; the first bar uses high-low only
func TrueRange(high, low, close []float64) []float64 {
	tr := make([]float64, len(close))
	for i := range close {
		if i == 0 {
			tr[i] = high[i] - low[i]
			continue
		}
		tr[i] = math.Max(high[i]-low[i], math.Max(
			math.Abs(high[i]-close[i-1]),
			math.Abs(low[i]-close[i-1]),
		))
	}
	return tr
}
