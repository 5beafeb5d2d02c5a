package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	ProviderTwelveData = "twelvedata"
	ProviderBinance    = "binance"
)

// Config holds all application configuration
type Config struct {
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	DataProvider     string        `env:"DATA_PROVIDER" envDefault:"binance"`
	TwelveAPIKey     string        `env:"TWELVE_API_KEY"`
	BinanceAPIKey    string        `env:"BINANCE_API_KEY"`
	BinanceSecret    string        `env:"BINANCE_API_SECRET"`
	Symbols          []string      `env:"SYMBOLS" envDefault:"DOGE/USDT,XRP/USDT,ADA/USDT"`
	Exchange         string        `env:"EXCHANGE" envDefault:"Binance"`
	ParamsFile       string        `env:"PARAMS_FILE"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30"` // seconds
	RequestsPerSec   int           `env:"REQUESTS_PER_SEC" envDefault:"5"`
	ScanInterval     time.Duration `env:"SCAN_INTERVAL" envDefault:"0"` // minutes, 0 scans once
	HighAccuracyOnly bool          `env:"HIGH_ACCURACY_ONLY" envDefault:"false"`
	TelegramToken    string        `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64         `env:"TELEGRAM_CHAT_ID"`
	AccountSize      float64       `env:"ACCOUNT_SIZE" envDefault:"1000"`
	RiskPerTrade     float64       `env:"RISK_PER_TRADE" envDefault:"0.01"`
	BacktestDays     int           `env:"BACKTEST_DAYS" envDefault:"365"`
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.DataProvider = strings.ToLower(getEnvWithDefault("DATA_PROVIDER", ProviderBinance))
	cfg.TwelveAPIKey = os.Getenv("TWELVE_API_KEY")
	cfg.BinanceAPIKey = os.Getenv("BINANCE_API_KEY")
	cfg.BinanceSecret = os.Getenv("BINANCE_API_SECRET")
	cfg.Symbols = getEnvListWithDefault("SYMBOLS", []string{"DOGE/USDT", "XRP/USDT", "ADA/USDT"})
	cfg.Exchange = getEnvWithDefault("EXCHANGE", "Binance")
	cfg.ParamsFile = os.Getenv("PARAMS_FILE")
	cfg.RequestTimeout = time.Duration(getEnvIntWithDefault("REQUEST_TIMEOUT", 30)) * time.Second
	cfg.RequestsPerSec = getEnvIntWithDefault("REQUESTS_PER_SEC", 5)
	cfg.ScanInterval = time.Duration(getEnvIntWithDefault("SCAN_INTERVAL", 0)) * time.Minute
	cfg.HighAccuracyOnly = getEnvBoolWithDefault("HIGH_ACCURACY_ONLY", false)
	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = int64(getEnvIntWithDefault("TELEGRAM_CHAT_ID", 0))
	cfg.AccountSize = getEnvFloatWithDefault("ACCOUNT_SIZE", 1000)
	cfg.RiskPerTrade = getEnvFloatWithDefault("RISK_PER_TRADE", 0.01)
	cfg.BacktestDays = getEnvIntWithDefault("BACKTEST_DAYS", 365)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DataProvider {
	case ProviderBinance:
	case ProviderTwelveData:
		if c.TwelveAPIKey == "" {
			return fmt.Errorf("TWELVE_API_KEY is required for the %s provider", ProviderTwelveData)
		}
	default:
		return fmt.Errorf("unknown DATA_PROVIDER %q", c.DataProvider)
	}

	if len(c.Symbols) == 0 {
		return fmt.Errorf("SYMBOLS must name at least one symbol")
	}
	if c.RiskPerTrade <= 0 || c.RiskPerTrade > 1 {
		return fmt.Errorf("RISK_PER_TRADE must be in (0, 1], got %v", c.RiskPerTrade)
	}
	return nil
}

// TelegramEnabled reports whether both bot token and chat are set
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvListWithDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
