package models

import "context"

// CandleClient is the market-data collaborator: it returns count candles of
// the given timeframe, oldest first.
type CandleClient interface {
	GetCandles(ctx context.Context, symbol string, timeframe Timeframe, count int) ([]Candle, error)
}
