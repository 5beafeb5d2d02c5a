package indicators

// swingStrength is how many bars on each side a local low must undercut
const swingStrength = 5

// IsConsolidating reports whether the last period closes stay within
// threshold of their maximum
func IsConsolidating(closes []float64, period int, threshold float64) bool {
	if period <= 0 || len(closes) < period {
		return false
	}

	window := closes[len(closes)-period:]
	highest, lowest := window[0], window[0]
	for _, c := range window[1:] {
		highest = max(highest, c)
		lowest = min(lowest, c)
	}
	if highest <= 0 {
		return false
	}
	return (highest-lowest)/highest <= threshold
}

// VolumeChange is the fractional change of the last volume over the previous
// one; null when there is no positive previous volume
func VolumeChange(volumes []float64) Float {
	if len(volumes) < 2 {
		return Float{}
	}
	prev := volumes[len(volumes)-2]
	if prev <= 0 {
		return Float{}
	}
	return Some((volumes[len(volumes)-1] - prev) / prev)
}

// IsVolumeIncreasing reports whether the last volume grew by more than
// threshold over the previous bar
func IsVolumeIncreasing(volumes []float64, threshold float64) bool {
	change := VolumeChange(volumes)
	return change.Valid && change.Value > threshold
}

// IsBollingerBreakout reports whether the close crossed from at-or-below the
// upper band to above it on any of the last window bars
func IsBollingerBreakout(closes []float64, bands []BollingerPoint, window int) bool {
	n := len(closes)
	if len(bands) != n || n < 2 || window <= 0 {
		return false
	}

	for i := max(1, n-window); i < n; i++ {
		prev, cur := bands[i-1], bands[i]
		if !prev.Valid || !cur.Valid {
			continue
		}
		if closes[i-1] <= prev.Upper && closes[i] > cur.Upper {
			return true
		}
	}
	return false
}

// HasPositiveRSIDivergence looks for a lower price low paired with a higher
// RSI low within the last lookback bars. Only the first two swing lows of the
// window are compared.
func HasPositiveRSIDivergence(closes []float64, rsi Series, lookback int) bool {
	n := len(closes)
	if len(rsi) != n || lookback <= 0 {
		return false
	}

	var lows []int
	for i := max(swingStrength, n-lookback); i < n-swingStrength; i++ {
		if !rsi[i].Valid || !isSwingLow(closes, i) {
			continue
		}
		lows = append(lows, i)
		if len(lows) == 2 {
			break
		}
	}
	if len(lows) < 2 {
		return false
	}

	first, second := lows[0], lows[1]
	return closes[second] < closes[first] && rsi[second].Value > rsi[first].Value
}

func isSwingLow(closes []float64, i int) bool {
	for j := i - swingStrength; j <= i+swingStrength; j++ {
		if j != i && closes[j] <= closes[i] {
			return false
		}
	}
	return true
}
