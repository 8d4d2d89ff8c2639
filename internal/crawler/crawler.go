package crawler

import (
	"fmt"
	"net/url"

	"sjsage522/storecrawler/internal/codes"
	"sjsage522/storecrawler/logger"
)

// StoreCrawler walks listing pages of the directory and visits every store on them
type StoreCrawler struct {
	name      string
	provider  string
	baseURL   *url.URL
	maxPage   int
	selectors Selectors
	fetcher   Fetcher
	log       *logger.Logger
}

var _ Crawler = (*StoreCrawler)(nil)

// NewStoreCrawler creates a crawler that fetches pages through fetcher
func NewStoreCrawler(config CrawlerConfig, fetcher Fetcher) (*StoreCrawler, error) {
	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", config.BaseURL, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", config.BaseURL)
	}
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if config.MaxPage < 1 {
		return nil, fmt.Errorf("max page must be positive, got %d", config.MaxPage)
	}

	name := config.Name
	if name == "" {
		name = config.Provider + "Crawler"
	}

	return &StoreCrawler{
		name:      name,
		provider:  config.Provider,
		baseURL:   baseURL,
		maxPage:   config.MaxPage,
		selectors: config.Selectors,
		fetcher:   fetcher,
		log:       logger.ForCrawler(name),
	}, nil
}

// GetName returns the crawler name
func (c *StoreCrawler) GetName() string {
	return c.name
}

// GetProvider returns the provider name
func (c *StoreCrawler) GetProvider() string {
	return c.provider
}

// MaxPage returns the last listing page the crawler will request
func (c *StoreCrawler) MaxPage() int {
	return c.maxPage
}

// ScrapeMaxPages crawls from page 1 up to maxPages (capped at the max page)
func (c *StoreCrawler) ScrapeMaxPages(region, category string, maxPages int) *StoreIterator {
	return c.ScrapeRange(region, category, 1, maxPages)
}

// ScrapeRange crawls pages startPage..endPage. Unknown labels and empty
// ranges produce an iterator that yields nothing and never touches the network.
func (c *StoreCrawler) ScrapeRange(region, category string, startPage, endPage int) *StoreIterator {
	regionToken := codes.RegionToken(region)
	if regionToken == "" {
		c.log.Warn().Str("region", region).Msg("Unknown region")
		return emptyIterator()
	}

	categoryToken := codes.CategoryToken(category)
	if category != "" && categoryToken == "" {
		c.log.Warn().Str("category", category).Msg("Unknown category")
		return emptyIterator()
	}

	start := max(1, startPage)
	end := min(c.maxPage, endPage)
	if end < start {
		c.log.Warn().Int("start", startPage).Int("end", endPage).Msg("Invalid page range")
		return emptyIterator()
	}

	c.log.Info().
		Str("region", region).
		Str("category", category).
		Int("start", start).
		Int("end", end).
		Msg("Starting crawl")

	return &StoreIterator{
		crawler:       c,
		region:        region,
		regionToken:   regionToken,
		categoryToken: categoryToken,
		nextPage:      start,
		endPage:       end,
	}
}

// searchURL builds the listing URL for page
func (c *StoreCrawler) searchURL(regionToken, categoryToken string, page int) string {
	return BuildSearchURL(c.baseURL.String(), regionToken, categoryToken, page)
}
