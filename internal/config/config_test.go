package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/Breakout/models"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATA_PROVIDER", "SYMBOLS", "REQUEST_TIMEOUT", "SCAN_INTERVAL", "RISK_PER_TRADE", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderBinance, cfg.DataProvider)
	assert.Equal(t, []string{"DOGE/USDT", "XRP/USDT", "ADA/USDT"}, cfg.Symbols)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Zero(t, cfg.ScanInterval)
	assert.Equal(t, 0.01, cfg.RiskPerTrade)
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATA_PROVIDER", "TwelveData")
	t.Setenv("TWELVE_API_KEY", "secret")
	t.Setenv("SYMBOLS", " SHIB/USD , ,PEPE/USD")
	t.Setenv("SCAN_INTERVAL", "15")
	t.Setenv("HIGH_ACCURACY_ONLY", "yes")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")
	t.Setenv("RISK_PER_TRADE", "0.02")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderTwelveData, cfg.DataProvider)
	assert.Equal(t, []string{"SHIB/USD", "PEPE/USD"}, cfg.Symbols)
	assert.Equal(t, 15*time.Minute, cfg.ScanInterval)
	assert.True(t, cfg.HighAccuracyOnly)
	assert.Equal(t, int64(-100123), cfg.TelegramChatID)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, 0.02, cfg.RiskPerTrade)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown provider", env: map[string]string{"DATA_PROVIDER": "kraken"}},
		{name: "twelvedata without key", env: map[string]string{"DATA_PROVIDER": "twelvedata", "TWELVE_API_KEY": ""}},
		{name: "risk too large", env: map[string]string{"DATA_PROVIDER": "binance", "RISK_PER_TRADE": "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParamsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")

	cfg := models.DefaultBreakoutConfig()
	cfg.ConsolidationPeriod = 9
	cfg.RSILowerThreshold = 55.5
	cfg.MinProfitPotential = models.TierVeryHigh
	require.NoError(t, SaveParams(path, cfg))

	loaded, err := LoadParams(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadParamsOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("consolidation_period: 12\nmin_mtf_score: 80\n"), 0o644))

	cfg, err := LoadParams(path)
	require.NoError(t, err)

	want := models.DefaultBreakoutConfig()
	want.ConsolidationPeriod = 12
	want.MinMTFScore = 80
	assert.Equal(t, want, cfg)
}

func TestLoadParamsErrors(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadParams("")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultBreakoutConfig(), cfg)

	_, err = LoadParams(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("rsi_lower_threshold: 90\nrsi_upper_threshold: 80\n"), 0o644))
	_, err = LoadParams(invalid)
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("consolidation_period: [\n"), 0o644))
	_, err = LoadParams(broken)
	assert.Error(t, err)

	assert.Error(t, SaveParams("", models.DefaultBreakoutConfig()))
}
