package marketdata

import (
	"fmt"

	"github.com/Alias1177/Breakout/internal/api/binance"
	"github.com/Alias1177/Breakout/internal/api/twelvedata"
	"github.com/Alias1177/Breakout/internal/config"
	"github.com/Alias1177/Breakout/models"
)

// NewClient builds the candle client selected by DATA_PROVIDER
func NewClient(cfg *config.Config) (models.CandleClient, error) {
	switch cfg.DataProvider {
	case config.ProviderTwelveData:
		return twelvedata.NewClient(twelvedata.ClientOptions{
			APIKey:         cfg.TwelveAPIKey,
			RequestTimeout: cfg.RequestTimeout,
			RequestsPerSec: cfg.RequestsPerSec,
		}), nil
	case config.ProviderBinance:
		return binance.NewClient(binance.ClientOptions{
			APIKey:         cfg.BinanceAPIKey,
			APISecret:      cfg.BinanceSecret,
			RequestsPerSec: cfg.RequestsPerSec,
		}), nil
	}
	return nil, fmt.Errorf("unknown data provider %q", cfg.DataProvider)
}
