package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

const (
	// DefaultMaxPage is the last listing page the directory serves
	DefaultMaxPage = 60
	// MaxPhasePages is the largest page span one phase may cover (end-start < 30)
	MaxPhasePages = 30
)

// Config represents the application configuration
type Config struct {
	// Directory site
	BaseURL string
	MaxPage int

	// Crawl pacing
	RequestDelay   time.Duration
	RequestTimeout time.Duration
	BlockTime      time.Duration
	PhaseLimit     int

	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Memcache configuration
	MemcacheAddr string

	// Output
	OutputDir    string
	ErrorLogFile string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	maxPage := getEnvInt("MAX_PAGE", DefaultMaxPage)
	phaseLimit := getEnvInt("PHASE_LIMIT", MaxPhasePages)
	delayMs := getEnvInt("REQUEST_DELAY_MS", 1000)
	timeoutSec := getEnvInt("REQUEST_TIMEOUT_SECONDS", 30)
	blockSec := getEnvInt("RATE_LIMIT_BLOCK_SECONDS", 300)
	redisDB := getEnvInt("REDIS_DB", 0)
	streamCount := getEnvInt("REDIS_STREAM_COUNT", 1)
	streamMaxLength := getEnvInt("REDIS_STREAM_MAX_LENGTH", 10000)

	return &Config{
		BaseURL:              getEnv("BASE_URL", "https://tabelog.com"),
		MaxPage:              maxPage,
		RequestDelay:         time.Duration(delayMs) * time.Millisecond,
		RequestTimeout:       time.Duration(timeoutSec) * time.Second,
		BlockTime:            time.Duration(blockSec) * time.Second,
		PhaseLimit:           phaseLimit,
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "stores"),
		RedisStreamCount:     streamCount,
		RedisStreamMaxLength: streamMaxLength,
		MemcacheAddr:         os.Getenv("MEMCACHE_ADDR"),
		OutputDir:            getEnv("OUTPUT_DIR", "."),
		ErrorLogFile:         getEnv("ERROR_LOG_FILE", "logs/error.log"),
		Environment:          getEnv("STORECRAWLER_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration can drive a crawl
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid BASE_URL %q", c.BaseURL)
	}
	if c.MaxPage < 1 {
		return fmt.Errorf("MAX_PAGE must be positive, got %d", c.MaxPage)
	}
	if c.PhaseLimit < 1 || c.PhaseLimit > MaxPhasePages {
		return fmt.Errorf("PHASE_LIMIT must be between 1 and %d, got %d", MaxPhasePages, c.PhaseLimit)
	}
	if c.RequestDelay < 0 {
		return fmt.Errorf("REQUEST_DELAY_MS must not be negative")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	if c.RedisAddr != "" && c.RedisStreamCount < 1 {
		return fmt.Errorf("REDIS_STREAM_COUNT must be positive, got %d", c.RedisStreamCount)
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

// getEnvInt parses an integer variable, keeping the default when it is unset or malformed
func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
