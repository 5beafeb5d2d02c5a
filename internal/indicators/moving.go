package indicators

// SMA is the arithmetic mean of the trailing period values
func SMA(data []float64, period int) Series {
	out := NullSeries(len(data))
	if period <= 0 || len(data) < period {
		return out
	}

	var sum float64
	for i, v := range data {
		sum += v
		if i >= period {
			sum -= data[i-period]
		}
		if i >= period-1 {
			out[i] = Some(sum / float64(period))
		}
	}
	return out
}

// EMA seeds with the SMA of the first period values and then applies the
// 2/(period+1) multiplier
func EMA(data []float64, period int) Series {
	out := NullSeries(len(data))
	if period <= 0 || len(data) < period {
		return out
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += data[i]
	}
	ema := sum / float64(period)
	out[period-1] = Some(ema)

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(data); i++ {
		ema = (data[i]-ema)*multiplier + ema
		out[i] = Some(ema)
	}
	return out
}
