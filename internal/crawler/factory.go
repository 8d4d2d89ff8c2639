package crawler

import (
	"sjsage522/storecrawler/config"
	"sjsage522/storecrawler/services/cache"
)

const tabelogProvider = "Tabelog"

// TabelogLabels are the row headings of tabelog's store data table
var TabelogLabels = FieldLabels{
	Name:        "店名",
	Genre:       "ジャンル",
	Address:     "住所",
	Phone:       "電話番号",
	Reservation: "予約・お問い合わせ",
	Homepage:    "ホームページ",
	Seats:       "席数",
}

// TabelogSelectors returns the selectors for tabelog listing and store pages
func TabelogSelectors() Selectors {
	return Selectors{
		Listing: ListingSelectors{
			// ranking and ad panels sit outside this column
			Container: "div.rstlist-info",
			StoreLink: "a.list-rst__rst-name-target",
		},
		Detail: DetailSelectors{
			Table:  "#contents-rstdata",
			Labels: TabelogLabels,
		},
	}
}

// CreateCrawler creates the tabelog crawler based on the configuration
func CreateCrawler(cfg *config.Config, cacheSvc cache.CacheService) (*StoreCrawler, error) {
	fetcher := NewPageFetcher(FetcherConfig{
		Provider:  tabelogProvider,
		Delay:     cfg.RequestDelay,
		Timeout:   cfg.RequestTimeout,
		CacheKey:  "tabelog_rate_limited",
		BlockTime: cfg.BlockTime,
	}, cacheSvc)

	c, err := NewStoreCrawler(CrawlerConfig{
		Name:      "TabelogCrawler",
		Provider:  tabelogProvider,
		BaseURL:   cfg.BaseURL,
		MaxPage:   cfg.MaxPage,
		Selectors: TabelogSelectors(),
	}, fetcher)
	if err != nil {
		return nil, err
	}

	c.log.Debug().
		Str("base_url", cfg.BaseURL).
		Dur("delay", cfg.RequestDelay).
		Dur("timeout", cfg.RequestTimeout).
		Msg("Created crawler")

	return c, nil
}
