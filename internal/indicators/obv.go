package indicators

// OBV accumulates volume by the direction of the close, starting at the first
// volume. Inputs of differing lengths yield an all-null series.
func OBV(close, volume []float64) Series {
	if len(close) != len(volume) {
		return NullSeries(max(len(close), len(volume)))
	}
	out := NullSeries(len(close))
	if len(close) == 0 {
		return out
	}

	obv := volume[0]
	out[0] = Some(obv)
	for i := 1; i < len(close); i++ {
		if close[i] > close[i-1] {
			obv += volume[i]
		} else if close[i] < close[i-1] {
			obv -= volume[i]
		}
		out[i] = Some(obv)
	}
	return out
}
