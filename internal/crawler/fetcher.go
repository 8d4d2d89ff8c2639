package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"sjsage522/storecrawler/helpers"
	"sjsage522/storecrawler/logger"
	apperrors "sjsage522/storecrawler/pkg/errors"
	"sjsage522/storecrawler/services/cache"

	"github.com/PuerkitoBio/goquery"
)

// PageFetcher performs one throttled GET per page and parses the body.
// Every expected failure comes back as a *apperrors.CrawlerError.
type PageFetcher struct {
	Provider  string
	Client    *http.Client
	Delay     time.Duration
	CacheKey  string
	CacheSvc  cache.CacheService
	BlockTime time.Duration
}

// FetcherConfig contains configuration for a page fetcher
type FetcherConfig struct {
	Provider  string
	Delay     time.Duration
	Timeout   time.Duration
	CacheKey  string
	BlockTime time.Duration
}

// NewPageFetcher creates a page fetcher; cacheSvc may be nil
func NewPageFetcher(config FetcherConfig, cacheSvc cache.CacheService) *PageFetcher {
	return &PageFetcher{
		Provider:  config.Provider,
		Client:    helpers.NewClient(config.Timeout),
		Delay:     config.Delay,
		CacheKey:  config.CacheKey,
		CacheSvc:  cacheSvc,
		BlockTime: config.BlockTime,
	}
}

// Fetch waits the fixed delay, then fetches url. Context cancellation is
// returned as-is; everything else is a skippable CrawlerError.
func (f *PageFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	log := logger.ForCrawler(f.Provider)

	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	if f.blocked() {
		err := apperrors.NewRateLimit(f.Provider, f.BlockTime)
		log.Warn().Str("url", url).Err(err).Msg("Request blocked")
		return nil, err
	}

	body, err := helpers.Fetch(ctx, f.Client, url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, helpers.ErrRateLimited) {
			f.block()
			log.Warn().Str("url", url).Err(err).Msg("Rate limited")
			return nil, apperrors.NewRateLimit(f.Provider, f.BlockTime)
		}
		log.Error().Str("url", url).Err(err).Msg("Error fetching page")
		return nil, apperrors.NewNetwork(f.Provider, "failed to fetch "+url, err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		log.Error().Str("url", url).Err(err).Msg("Error parsing page")
		return nil, apperrors.NewParsing(f.Provider, "failed to parse "+url, err)
	}
	return doc, nil
}

// wait sleeps the fixed politeness delay unless ctx is done first
func (f *PageFetcher) wait(ctx context.Context) error {
	if f.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(f.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (f *PageFetcher) blocked() bool {
	if f.CacheSvc == nil || f.CacheKey == "" {
		return false
	}
	_, err := f.CacheSvc.Get(f.CacheKey)
	return err == nil
}

func (f *PageFetcher) block() {
	if f.CacheSvc == nil || f.CacheKey == "" || f.BlockTime <= 0 {
		return
	}
	value := []byte(fmt.Sprintf("%d", int(f.BlockTime/time.Second)))
	if err := f.CacheSvc.Set(f.CacheKey, value, f.BlockTime); err != nil {
		logger.ForCache().Warn().Err(err).Str("key", f.CacheKey).Msg("Failed to set rate limit marker")
	}
}
