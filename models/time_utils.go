package models

import "time"

// Duration returns the length of one candle of the timeframe
func (tf Timeframe) Duration() time.Duration {
	switch tf {
	case Hourly:
		return time.Hour
	case FourHour:
		return 4 * time.Hour
	case Daily:
		return 24 * time.Hour
	}
	return 0
}

// CalculateCandlesForDays estimates how many candles cover the given number of
// days, with a 10% buffer
func CalculateCandlesForDays(tf Timeframe, days int) int {
	candlesPerDay := 0

	switch tf {
	case Hourly:
		candlesPerDay = 24
	case FourHour:
		candlesPerDay = 6
	case Daily:
		candlesPerDay = 1
	}

	return int(float64(candlesPerDay) * float64(days) * 1.1)
}
