package indicators

import "math"

// BollingerPoint is one index of the Bollinger Bands; all fields are
// meaningful only when Valid is set
type BollingerPoint struct {
	Upper   float64
	Middle  float64
	Lower   float64
	Width   float64 // (upper-lower)/middle
	Percent float64 // (close-lower)/(upper-lower)
	Valid   bool
}

// Bollinger computes the bands around the SMA using the population standard
// deviation of the same window
func Bollinger(data []float64, period int, multiplier float64) []BollingerPoint {
	out := make([]BollingerPoint, len(data))
	middle := SMA(data, period)

	for i, m := range middle {
		if !m.Valid {
			continue
		}

		var variance float64
		for j := i - period + 1; j <= i; j++ {
			d := data[j] - m.Value
			variance += d * d
		}
		sd := math.Sqrt(variance / float64(period))

		p := BollingerPoint{
			Upper:  m.Value + multiplier*sd,
			Middle: m.Value,
			Lower:  m.Value - multiplier*sd,
			Valid:  true,
		}
		if p.Middle != 0 {
			p.Width = (p.Upper - p.Lower) / p.Middle
		}
		// A flat window puts the close on the middle line
		p.Percent = 0.5
		if p.Upper != p.Lower {
			p.Percent = (data[i] - p.Lower) / (p.Upper - p.Lower)
		}
		out[i] = p
	}
	return out
}
