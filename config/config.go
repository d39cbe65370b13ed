package config

import (
	"os"
	"strconv"
	"time"

	"github.com/capitalsuccesshub-maker/property-scout/pkg/errors"
)

// Renderer and sink kinds accepted by the configuration
const (
	RendererChrome = "chrome"
	RendererStatic = "static"

	SinkBase44 = "base44"
	SinkRedis  = "redis"
)

// defaultUserAgent is the fixed desktop user agent presented to the site
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Config represents the application configuration
type Config struct {
	// Base44 delivery configuration
	Base44APIKey    string
	Base44AppID     string
	Base44BaseURL   string
	DeliveryTimeout time.Duration

	// Target site configuration
	SiteBaseURL string
	UserAgent   string

	// Fetch behaviour
	Renderer    string
	NavTimeout  time.Duration
	SettleDelay time.Duration
	BlockTime   time.Duration

	// Record sink selection
	Sink                 string
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int

	// Memcache configuration (empty address disables the fetch guard)
	MemcacheAddr string

	// Normalization
	AnnualYieldRate float64

	// Environment
	Environment string
	LogLevel    string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamMaxLength, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	navTimeout, _ := strconv.Atoi(getEnv("NAV_TIMEOUT_SECONDS", "60"))
	settleDelay, _ := strconv.Atoi(getEnv("SETTLE_DELAY_SECONDS", "3"))
	deliveryTimeout, _ := strconv.Atoi(getEnv("DELIVERY_TIMEOUT_SECONDS", "30"))
	blockTime, _ := strconv.Atoi(getEnv("BLOCK_TIME_SECONDS", "300"))
	yieldRate, _ := strconv.ParseFloat(getEnv("ANNUAL_YIELD_RATE", "0.04"), 64)

	return &Config{
		Base44APIKey:         getEnv("BASE44_API_KEY", ""),
		Base44AppID:          getEnv("BASE44_APP_ID", ""),
		Base44BaseURL:        getEnv("BASE44_BASE_URL", "https://app.base44.com"),
		DeliveryTimeout:      time.Duration(deliveryTimeout) * time.Second,
		SiteBaseURL:          getEnv("SITE_BASE_URL", "https://www.idealista.com"),
		UserAgent:            getEnv("USER_AGENT", defaultUserAgent),
		Renderer:             getEnv("RENDERER", RendererChrome),
		NavTimeout:           time.Duration(navTimeout) * time.Second,
		SettleDelay:          time.Duration(settleDelay) * time.Second,
		BlockTime:            time.Duration(blockTime) * time.Second,
		Sink:                 getEnv("SINK", SinkBase44),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "properties"),
		RedisStreamMaxLength: streamMaxLength,
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", ""),
		AnnualYieldRate:      yieldRate,
		Environment:          getEnv("SCOUT_ENVIRONMENT", "development"),
		LogLevel:             getEnv("LOG_LEVEL", ""),
	}
}

// Validate checks that the configuration is usable. Missing delivery
// credentials are reported here, before any network activity.
func (c *Config) Validate() error {
	switch c.Sink {
	case SinkBase44:
		if c.Base44APIKey == "" {
			return errors.NewConfiguration("BASE44_API_KEY is not set", nil)
		}
		if c.Base44AppID == "" {
			return errors.NewConfiguration("BASE44_APP_ID is not set", nil)
		}
	case SinkRedis:
		if c.RedisAddr == "" {
			return errors.NewConfiguration("REDIS_ADDR is not set", nil)
		}
	default:
		return errors.NewConfiguration("SINK must be base44 or redis", nil)
	}

	if c.Renderer != RendererChrome && c.Renderer != RendererStatic {
		return errors.NewConfiguration("RENDERER must be chrome or static", nil)
	}

	if c.AnnualYieldRate <= 0 {
		return errors.NewConfiguration("ANNUAL_YIELD_RATE must be positive", nil)
	}

	// Malformed numeric env values load as zero and are caught here
	if c.NavTimeout <= 0 {
		return errors.NewConfiguration("NAV_TIMEOUT_SECONDS must be positive", nil)
	}
	if c.DeliveryTimeout <= 0 {
		return errors.NewConfiguration("DELIVERY_TIMEOUT_SECONDS must be positive", nil)
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
