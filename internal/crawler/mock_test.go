package crawler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	apperrors "sjsage522/storecrawler/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

const testBaseURL = "https://tabelog.com"

// MockCacheService implements a simple in-memory cache for testing
type MockCacheService struct {
	mu    sync.Mutex
	cache map[string][]byte
}

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{
		cache: make(map[string][]byte),
	}
}

func (m *MockCacheService) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if val, ok := m.cache[key]; ok {
		return val, nil
	}
	return nil, &mockError{message: "cache miss"}
}

func (m *MockCacheService) Set(key string, value []byte, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache[key] = value
	return nil
}

func (m *MockCacheService) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cache, key)
	return nil
}

type mockError struct {
	message string
}

func (e *mockError) Error() string {
	return e.message
}

// MockFetcher serves canned HTML per URL and records every call
type MockFetcher struct {
	pages map[string]string
	errs  map[string]error
	calls []string
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		pages: make(map[string]string),
		errs:  make(map[string]error),
	}
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	m.calls = append(m.calls, url)
	if err, ok := m.errs[url]; ok {
		return nil, err
	}
	html, ok := m.pages[url]
	if !ok {
		return nil, apperrors.NewNetwork("Test", "no page for "+url, nil)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func (m *MockFetcher) listing(region, category string, page int, links ...string) {
	m.pages[BuildSearchURL(testBaseURL, region, category, page)] = listingHTML(links...)
}

func (m *MockFetcher) store(link, name, address string) {
	m.pages[link] = detailHTML(name, address)
}

func newTestCrawler(fetcher Fetcher) *StoreCrawler {
	c, err := NewStoreCrawler(CrawlerConfig{
		Provider:  "Test",
		BaseURL:   testBaseURL,
		MaxPage:   60,
		Selectors: TabelogSelectors(),
	}, fetcher)
	if err != nil {
		panic(err)
	}
	return c
}

func storeURL(region string, id int) string {
	return fmt.Sprintf("%s/%s/A1301/A130101/%08d/", testBaseURL, region, id)
}

// collect drains an iterator, failing on unexpected errors
func collect(ctx context.Context, it *StoreIterator) ([]StoreRecord, error) {
	var records []StoreRecord
	for record, err := range it.All(ctx) {
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
	return records, nil
}

func listingHTML(links ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="rstlist-info">`)
	for i, link := range links {
		fmt.Fprintf(&b, `<div class="list-rst"><h3><a class="list-rst__rst-name-target" href="%s">店舗%d</a></h3></div>`, link, i)
	}
	b.WriteString(`</div>`)
	// ranking panel outside the results column
	fmt.Fprintf(&b, `<div class="rank-panel"><a class="list-rst__rst-name-target" href="%s">ランキング</a></div>`, storeURL("tokyo", 99999999))
	b.WriteString(`</body></html>`)
	return b.String()
}

func detailHTML(name, address string) string {
	return fmt.Sprintf(`<html><body>
<div id="contents-rstdata">
  <table class="c-table rstinfo-table__table">
    <tr><th>店名</th><td><div><span>%s</span></div></td></tr>
    <tr><th>ジャンル</th><td><span>ラーメン、つけ麺</span></td></tr>
    <tr><th>予約・<br>
        お問い合わせ</th><td><p>03-1234-5678</p></td></tr>
    <tr><th>住所</th><td><p>%s</p>
        <div>大きな地図を見る</div></td></tr>
    <tr><th>電話番号</th><td>050-0000-0000</td></tr>
    <tr><th>席数</th><td><p>12席</p><p>（カウンターのみ）</p></td></tr>
    <tr><th>ホームページ</th><td><a href="https://example.jp/">https://example.jp/</a></td></tr>
    <tr><th>営業時間</th><td>11:00 - 22:00</td></tr>
  </table>
</div>
</body></html>`, name, address)
}
