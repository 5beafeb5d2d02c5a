package indicators

// MACDPoint is one index of the MACD; Valid is set once the signal line exists
type MACDPoint struct {
	MACD      Float
	Signal    Float
	Histogram Float
}

// MACD computes EMA(fast)-EMA(slow), its EMA(signal) over the non-null tail,
// and the histogram
func MACD(data []float64, fast, slow, signal int) []MACDPoint {
	out := make([]MACDPoint, len(data))
	fastEMA := EMA(data, fast)
	slowEMA := EMA(data, slow)

	start := -1
	line := make([]float64, 0, len(data))
	for i := range data {
		if !fastEMA[i].Valid || !slowEMA[i].Valid {
			continue
		}
		if start < 0 {
			start = i
		}
		v := fastEMA[i].Value - slowEMA[i].Value
		out[i].MACD = Some(v)
		line = append(line, v)
	}
	if start < 0 {
		return out
	}

	signalLine := EMA(line, signal)
	for k, s := range signalLine {
		if !s.Valid {
			continue
		}
		i := start + k
		out[i].Signal = s
		out[i].Histogram = Some(out[i].MACD.Value - s.Value)
	}
	return out
}

// Histogram extracts the histogram column
func Histogram(points []MACDPoint) Series {
	out := NullSeries(len(points))
	for i, p := range points {
		out[i] = p.Histogram
	}
	return out
}
