package crawler

import (
	"context"
	"errors"
	"iter"
	"strings"

	apperrors "sjsage522/storecrawler/pkg/errors"
)

// ErrDone is returned by StoreIterator.Next when no records remain
var ErrDone = errors.New("no more store records")

// IteratorStats counts what an iterator did so far
type IteratorStats struct {
	PagesFetched  int
	PagesFailed   int
	StoresEmitted int
	StoresSkipped int
	// LastPage is the last listing page that was loaded or skipped; 0 before any
	LastPage int
	// EndOfResults is set when a listing page had no store links
	EndOfResults bool
}

// StoreIterator pulls validated store records one at a time, fetching pages
// lazily. A call to Next blocks for as many fetches as it takes to reach the
// next valid store. It is not safe for concurrent use.
type StoreIterator struct {
	crawler       *StoreCrawler
	region        string
	regionToken   string
	categoryToken string

	nextPage int
	endPage  int
	links    []string
	linkIdx  int
	done     bool

	stats IteratorStats
}

func emptyIterator() *StoreIterator {
	return &StoreIterator{done: true}
}

// Stats returns the counters accumulated so far
func (it *StoreIterator) Stats() IteratorStats {
	return it.stats
}

// Next returns the next valid record, ErrDone when the crawl is finished, or
// any error outside the skip taxonomy (context cancellation included), after
// which the iterator is finished.
func (it *StoreIterator) Next(ctx context.Context) (StoreRecord, error) {
	for !it.done {
		if err := ctx.Err(); err != nil {
			return it.fail(err)
		}

		if it.linkIdx < len(it.links) {
			link := it.links[it.linkIdx]
			it.linkIdx++

			record, err := it.visitStore(ctx, link)
			if err == nil {
				it.stats.StoresEmitted++
				return record, nil
			}
			if !apperrors.IsSkippable(err) {
				return it.fail(err)
			}
			it.stats.StoresSkipped++
			it.crawler.log.Warn().Str("url", link).Err(err).Msg("Skipping store")
			continue
		}

		if it.nextPage > it.endPage {
			it.done = true
			break
		}

		page := it.nextPage
		it.nextPage++

		links, err := it.loadPage(ctx, page)
		if err != nil {
			if !apperrors.IsSkippable(err) {
				return it.fail(err)
			}
			it.stats.PagesFailed++
			it.stats.LastPage = page
			it.crawler.log.Warn().Int("page", page).Err(err).Msg("Failed to get listing page, skipping")
			continue
		}
		it.stats.PagesFetched++
		it.stats.LastPage = page

		if len(links) == 0 {
			it.crawler.log.Info().Int("page", page).Msg("No store URLs found, assuming end of search results")
			it.stats.EndOfResults = true
			it.done = true
			break
		}
		it.links = links
		it.linkIdx = 0
	}
	return StoreRecord{}, ErrDone
}

// All adapts the iterator to a range-over-func sequence. The sequence stops
// after yielding a non-nil error.
func (it *StoreIterator) All(ctx context.Context) iter.Seq2[StoreRecord, error] {
	return func(yield func(StoreRecord, error) bool) {
		for {
			record, err := it.Next(ctx)
			if errors.Is(err, ErrDone) {
				return
			}
			if !yield(record, err) || err != nil {
				return
			}
		}
	}
}

func (it *StoreIterator) fail(err error) (StoreRecord, error) {
	it.done = true
	it.links = nil
	return StoreRecord{}, err
}

// loadPage fetches one listing page and extracts its store links
func (it *StoreIterator) loadPage(ctx context.Context, page int) ([]string, error) {
	c := it.crawler
	searchURL := c.searchURL(it.regionToken, it.categoryToken, page)
	c.log.Info().Int("page", page).Str("url", searchURL).Msg("Scraping page")

	doc, err := c.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, err
	}
	return ExtractLinks(doc, c.baseURL, it.regionToken, c.selectors.Listing), nil
}

// visitStore fetches one detail page and validates the record against the region
func (it *StoreIterator) visitStore(ctx context.Context, link string) (StoreRecord, error) {
	c := it.crawler
	c.log.Debug().Str("url", link).Msg("Scraping store page")

	doc, err := c.fetcher.Fetch(ctx, link)
	if err != nil {
		return StoreRecord{}, err
	}

	record, err := ExtractDetail(doc, c.selectors.Detail)
	if err != nil {
		return StoreRecord{}, apperrors.NewParsing(c.provider, "rejected "+link, err)
	}

	if !strings.Contains(record.Address, it.region) {
		return StoreRecord{}, apperrors.NewRegionMismatch(c.provider, it.region, record.Address)
	}
	return record, nil
}
