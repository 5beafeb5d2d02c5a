package indicators

// minAvgLoss replaces a zero average loss so RS stays finite
const minAvgLoss = 0.001

// RSI uses Wilder smoothing. The first value sits at index period.
func RSI(data []float64, period int) Series {
	out := NullSeries(len(data))
	if period <= 0 || len(data) < period+1 {
		return out
	}

	var gains, losses float64
	for i := 1; i <= period; i++ {
		change := data[i] - data[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	out[period] = Some(rsiValue(avgGain, avgLoss))

	for i := period + 1; i < len(data); i++ {
		gain, loss := 0.0, 0.0
		if change := data[i] - data[i-1]; change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = Some(rsiValue(avgGain, avgLoss))
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		avgLoss = minAvgLoss
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
