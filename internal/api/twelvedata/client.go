package twelvedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpClient "github.com/Alias1177/Breakout/internal/platform/http"
	"github.com/Alias1177/Breakout/models"
)

const defaultBaseURL = "https://api.twelvedata.com"

var ErrEmptyData = errors.New("empty data returned")

// Client is the TwelveData API client
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *httpClient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new TwelveData client
type ClientOptions struct {
	APIKey          string
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetries      int
	MaxRetryTimeout time.Duration
}

// timeSeriesResponse is the /time_series payload; numbers arrive as strings
type timeSeriesResponse struct {
	Meta struct {
		Symbol   string `json:"symbol"`
		Interval string `json:"interval"`
	} `json:"meta"`
	Values []struct {
		Datetime string `json:"datetime"`
		Open     string `json:"open"`
		High     string `json:"high"`
		Low      string `json:"low"`
		Close    string `json:"close"`
		Volume   string `json:"volume"`
	} `json:"values"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewClient creates a new TwelveData API client
func NewClient(options ClientOptions) *Client {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		apiKey:  options.APIKey,
		baseURL: baseURL,
		httpClient: httpClient.NewClient(httpClient.ClientOptions{
			Timeout:         options.RequestTimeout,
			RequestsPerSec:  options.RequestsPerSec,
			MaxRetries:      options.MaxRetries,
			MaxRetryTimeout: options.MaxRetryTimeout,
		}),
		logger: log.With().Str("component", "twelvedata_client").Logger(),
	}
}

// Interval maps a timeframe to the TwelveData interval name
func Interval(tf models.Timeframe) (string, error) {
	switch tf {
	case models.Hourly:
		return "1h", nil
	case models.FourHour:
		return "4h", nil
	case models.Daily:
		return "1day", nil
	}
	return "", fmt.Errorf("unsupported timeframe %q", tf)
}

// GetCandles fetches candle data from Twelve Data API, oldest first
func (c *Client) GetCandles(ctx context.Context, symbol string, tf models.Timeframe, count int) ([]models.Candle, error) {
	interval, err := Interval(tf)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("outputsize", strconv.Itoa(count))
	q.Set("timezone", "UTC")
	q.Set("apikey", c.apiKey)

	c.logger.Debug().Str("symbol", symbol).Str("interval", interval).Int("count", count).Msg("Fetching candles")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/time_series?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var data timeSeriesResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Str("response", string(body)).Msg("Error parsing JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	if data.Status == "error" {
		c.logger.Error().Int("code", data.Code).Str("message", data.Message).Msg("Twelve Data API error")
		return nil, fmt.Errorf("twelve data API error %d: %s", data.Code, data.Message)
	}

	if len(data.Values) == 0 {
		c.logger.Warn().Str("symbol", symbol).Msg("No candles in response")
		return nil, fmt.Errorf("%s %s: %w", symbol, interval, ErrEmptyData)
	}

	candles := make([]models.Candle, 0, len(data.Values))
	for _, v := range data.Values {
		candle, err := parseCandle(v.Datetime, v.Open, v.High, v.Low, v.Close, v.Volume)
		if err != nil {
			return nil, fmt.Errorf("parsing candle %s: %w", v.Datetime, err)
		}
		candles = append(candles, candle)
	}

	// Sort candles by datetime (oldest first for proper calculations)
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Time.Before(candles[j].Time)
	})

	c.logger.Debug().Int("count", len(candles)).Msg("Fetched candles")
	return candles, nil
}

// GetHistoricalCandles fetches enough candles to cover days
func (c *Client) GetHistoricalCandles(ctx context.Context, symbol string, tf models.Timeframe, days int) ([]models.Candle, error) {
	return c.GetCandles(ctx, symbol, tf, models.CalculateCandlesForDays(tf, days))
}

func parseCandle(datetime, open, high, low, close, volume string) (models.Candle, error) {
	ts, err := parseTime(datetime)
	if err != nil {
		return models.Candle{}, err
	}

	var c models.Candle
	c.Time = ts
	for _, f := range []struct {
		raw string
		dst *float64
	}{
		{open, &c.Open},
		{high, &c.High},
		{low, &c.Low},
		{close, &c.Close},
	} {
		if *f.dst, err = strconv.ParseFloat(f.raw, 64); err != nil {
			return models.Candle{}, err
		}
	}

	// Some crypto pairs come without volume
	if volume != "" {
		if c.Volume, err = strconv.ParseFloat(volume, 64); err != nil {
			return models.Candle{}, err
		}
	}
	return c, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{time.DateTime, time.DateOnly} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown datetime format %q", s)
}
