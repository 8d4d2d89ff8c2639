package crawler

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Placeholder fills record fields the detail page does not provide
const Placeholder = "-"

// StoreRecord represents one scraped store. Every field is always present.
type StoreRecord struct {
	Name        string `json:"name"`
	Genre       string `json:"genre"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Reservation string `json:"reservation"`
	Homepage    string `json:"homepage"`
	Seats       string `json:"seats"`
}

// Values returns the fields in column order
func (r StoreRecord) Values() []string {
	return []string{r.Name, r.Genre, r.Address, r.Phone, r.Reservation, r.Homepage, r.Seats}
}

// newPlaceholderRecord returns a record with every field set to Placeholder
func newPlaceholderRecord() StoreRecord {
	return StoreRecord{
		Name:        Placeholder,
		Genre:       Placeholder,
		Address:     Placeholder,
		Phone:       Placeholder,
		Reservation: Placeholder,
		Homepage:    Placeholder,
		Seats:       Placeholder,
	}
}

// Crawler interface defines the contract for store crawler implementations
type Crawler interface {
	// ScrapeMaxPages crawls listing pages 1..maxPages
	ScrapeMaxPages(region, category string, maxPages int) *StoreIterator

	// ScrapeRange crawls listing pages startPage..endPage inclusive
	ScrapeRange(region, category string, startPage, endPage int) *StoreIterator

	// GetName returns the crawler's name for logging and identification
	GetName() string

	// GetProvider returns the provider name for the crawler
	GetProvider() string
}

// Fetcher retrieves one page and parses it into a document
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// FieldLabels holds the row headings of the detail table, one per record field
type FieldLabels struct {
	Name        string
	Genre       string
	Address     string
	Phone       string
	Reservation string // compared with whitespace removed
	Homepage    string
	Seats       string
}

// Columns returns the labels in record column order
func (l FieldLabels) Columns() []string {
	return []string{l.Name, l.Genre, l.Address, l.Phone, l.Reservation, l.Homepage, l.Seats}
}

// ListingSelectors locate store links on a search results page
type ListingSelectors struct {
	// Container scopes the search to the main results column; optional
	Container string
	StoreLink string
}

// DetailSelectors locate the data table on a store page
type DetailSelectors struct {
	Table  string
	Labels FieldLabels
}

// Selectors contains CSS selectors for listing and detail pages
type Selectors struct {
	Listing ListingSelectors
	Detail  DetailSelectors
}

// CrawlerConfig contains configuration for a crawler
type CrawlerConfig struct {
	Name      string
	Provider  string
	BaseURL   string
	MaxPage   int
	Selectors Selectors
}
