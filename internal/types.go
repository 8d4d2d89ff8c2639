package internal

import (
	"context"

	"sjsage522/storecrawler/config"
	"sjsage522/storecrawler/logger"
	"sjsage522/storecrawler/services/cache"
	"sjsage522/storecrawler/services/publisher"
)

// Dependencies holds all service dependencies. Either field may be nil
// when the service is not configured.
type Dependencies struct {
	Cache     cache.CacheService
	Publisher publisher.Publisher
}

// NewDependencies connects the optional services named in cfg. An unreachable
// memcache only disables the shared rate-limit marker; a configured Redis that
// cannot be reached is an error.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	deps := &Dependencies{}

	if cfg.MemcacheAddr != "" {
		memcache := cache.NewMemcacheService(cfg.MemcacheAddr, "storecrawler:")
		if err := memcache.Ping(); err != nil {
			logger.Warn("Memcache at %s unavailable, rate limit marker disabled", cfg.MemcacheAddr)
		} else {
			deps.Cache = memcache
			logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
		}
	}

	if cfg.RedisAddr != "" {
		redisPublisher, err := publisher.NewRedisPublisher(ctx, publisher.RedisConfig{
			Addr:            cfg.RedisAddr,
			DB:              cfg.RedisDB,
			StreamPrefix:    cfg.RedisStream,
			StreamCount:     cfg.RedisStreamCount,
			StreamMaxLength: cfg.RedisStreamMaxLength,
		})
		if err != nil {
			return nil, err
		}
		deps.Publisher = redisPublisher
		logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)", cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	return deps, nil
}

// Close releases every connected service
func (d *Dependencies) Close() {
	if d.Publisher != nil {
		d.Publisher.Close()
	}
}
