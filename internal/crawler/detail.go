package crawler

import (
	"errors"
	"strings"

	"sjsage522/storecrawler/helpers"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrNoDetailTable means the page is not a store page
	ErrNoDetailTable = errors.New("detail table not found")
	// ErrNoStoreName means the detail table carries no usable store name
	ErrNoStoreName = errors.New("store name not found")
)

// placeholderCutset is trimmed from a store name before the emptiness check
const placeholderCutset = " -\u3000\t\r\n"

// ExtractDetail reads the store's data table into a record.
// It has no side effects: the same document always yields the same result.
func ExtractDetail(doc *goquery.Document, sel DetailSelectors) (StoreRecord, error) {
	table := doc.Find(sel.Table).First()
	if table.Length() == 0 {
		return StoreRecord{}, ErrNoDetailTable
	}

	record := newPlaceholderRecord()
	reservationLabel := helpers.StripSpaces(sel.Labels.Reservation)

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		th := row.ChildrenFiltered("th").First()
		td := row.ChildrenFiltered("td").First()
		if th.Length() == 0 || td.Length() == 0 {
			return
		}

		label := strings.TrimSpace(th.Text())
		value := strings.TrimSpace(td.Text())

		switch {
		case label == sel.Labels.Name:
			record.Name = orPlaceholder(value)
		case label == sel.Labels.Genre:
			record.Genre = orPlaceholder(value)
		case label == sel.Labels.Address:
			record.Address = orPlaceholder(helpers.FirstLine(helpers.NormalizeSpaces(value)))
		case label == sel.Labels.Phone:
			record.Phone = orPlaceholder(value)
		case helpers.StripSpaces(label) == reservationLabel:
			record.Reservation = orPlaceholder(value)
		case label == sel.Labels.Homepage:
			record.Homepage = orPlaceholder(value)
		case label == sel.Labels.Seats:
			record.Seats = orPlaceholder(seatCount(td, value))
		}
	})

	if strings.Trim(record.Name, placeholderCutset) == "" {
		return StoreRecord{}, ErrNoStoreName
	}
	return record, nil
}

// seatCount prefers the first paragraph; seat cells append notes on later lines
func seatCount(td *goquery.Selection, text string) string {
	if p := td.Find("p").First(); p.Length() > 0 {
		return strings.TrimSpace(p.Text())
	}
	return helpers.FirstLine(text)
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
