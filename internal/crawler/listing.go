package crawler

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BuildSearchURL builds the listing page URL; an empty categoryToken drops the category segment
func BuildSearchURL(baseURL, regionToken, categoryToken string, page int) string {
	base := strings.TrimRight(baseURL, "/")
	if categoryToken != "" {
		return fmt.Sprintf("%s/%s/rstLst/%s/%d/", base, regionToken, categoryToken, page)
	}
	return fmt.Sprintf("%s/%s/rstLst/%d/", base, regionToken, page)
}

// regionPrefix is the path every store URL of the region starts with
func regionPrefix(baseURL *url.URL, regionToken string) string {
	return strings.TrimRight(baseURL.String(), "/") + "/" + regionToken + "/"
}

// ExtractLinks returns the absolute store detail URLs on a listing page,
// deduplicated in first-seen order and limited to the region's path.
func ExtractLinks(doc *goquery.Document, baseURL *url.URL, regionToken string, sel ListingSelectors) []string {
	scope := doc.Selection
	if sel.Container != "" {
		if container := doc.Find(sel.Container); container.Length() > 0 {
			scope = container
		}
	}

	prefix := regionPrefix(baseURL, regionToken)
	seen := make(map[string]struct{})
	var links []string

	scope.Find(sel.StoreLink).Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		href = strings.TrimSpace(href)
		if !exists || href == "" {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		link := baseURL.ResolveReference(ref).String()

		if !strings.HasPrefix(link, prefix) {
			return
		}
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})

	return links
}
