package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"sjsage522/storecrawler/helpers"
	"sjsage522/storecrawler/internal/crawler"
	apperrors "sjsage522/storecrawler/pkg/errors"
	"sjsage522/storecrawler/services/publisher"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://tabelog.com"

// MockFetcher serves a fake directory: pages maps listing page number to store names
type MockFetcher struct {
	mu     sync.Mutex
	region string
	pages  map[int][]string
	calls  []string
}

var _ crawler.Fetcher = (*MockFetcher)(nil)

func NewMockFetcher(region string, pages map[int][]string) *MockFetcher {
	return &MockFetcher{region: region, pages: pages}
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	m.mu.Lock()
	m.calls = append(m.calls, url)
	m.mu.Unlock()

	for page, names := range m.pages {
		if url == crawler.BuildSearchURL(testBaseURL, "tokyo", "", page) {
			var b strings.Builder
			b.WriteString(`<div class="rstlist-info">`)
			for _, name := range names {
				fmt.Fprintf(&b, `<a class="list-rst__rst-name-target" href="%s">%s</a>`, storeLink(name), name)
			}
			b.WriteString(`</div>`)
			return goquery.NewDocumentFromReader(strings.NewReader(b.String()))
		}
		for _, name := range names {
			if url == storeLink(name) {
				html := fmt.Sprintf(`<div id="contents-rstdata"><table>
					<tr><th>店名</th><td>%s</td></tr>
					<tr><th>住所</th><td>%s千代田区1-1</td></tr>
				</table></div>`, name, m.region)
				return goquery.NewDocumentFromReader(strings.NewReader(html))
			}
		}
	}
	return nil, apperrors.NewNetwork("Test", "not found "+url, nil)
}

func (m *MockFetcher) listingCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, call := range m.calls {
		if strings.Contains(call, "/rstLst/") {
			n++
		}
	}
	return n
}

func storeLink(name string) string {
	return fmt.Sprintf("%s/tokyo/A1301/A130101/%s/", testBaseURL, name)
}

// MockPublisher implements the publisher.Publisher interface for testing
type MockPublisher struct {
	mu         sync.Mutex
	messages   map[string][][]byte
	publishErr error
	trimmed    int
}

// Ensure MockPublisher implements publisher.Publisher
var _ publisher.Publisher = (*MockPublisher)(nil)

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		messages: make(map[string][][]byte),
	}
}

func (m *MockPublisher) Publish(key string, message []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishErr != nil {
		return m.publishErr
	}

	// Copy the message to ensure thread safety
	messageCopy := make([]byte, len(message))
	copy(messageCopy, message)

	m.messages[key] = append(m.messages[key], messageCopy)
	return nil
}

func (m *MockPublisher) TrimStreams() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trimmed++
	return nil
}

func (m *MockPublisher) Close() error {
	return nil
}

// MockLogger implements the helpers.LoggerInterface for testing
type MockLogger struct {
	mu     sync.Mutex
	errors []string
	infos  []string
}

// Ensure MockLogger implements helpers.LoggerInterface
var _ helpers.LoggerInterface = (*MockLogger)(nil)

func NewMockLogger() *MockLogger {
	return &MockLogger{
		errors: make([]string, 0),
		infos:  make([]string, 0),
	}
}

func (m *MockLogger) LogError(component string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, component+": "+err.Error())
}

func (m *MockLogger) LogInfo(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, fmt.Sprintf(format, args...))
}

func newTestWorker(t *testing.T, fetcher crawler.Fetcher, pub publisher.Publisher, logger helpers.LoggerInterface) *Worker {
	t.Helper()
	c, err := crawler.NewStoreCrawler(crawler.CrawlerConfig{
		Name:      "TestCrawler",
		Provider:  "Test",
		BaseURL:   testBaseURL,
		MaxPage:   60,
		Selectors: crawler.TabelogSelectors(),
	}, fetcher)
	require.NoError(t, err)
	return NewWorker(c, pub, logger, 60)
}

func names(records []crawler.StoreRecord) []string {
	var out []string
	for _, record := range records {
		out = append(out, record.Name)
	}
	return out
}

func TestWorkerRunsAllPhases(t *testing.T) {
	fetcher := NewMockFetcher("東京都", map[int][]string{
		1: {"s1", "s2"},
		2: {"s3"},
		3: {"s4"},
	})
	pub := NewMockPublisher()
	log := NewMockLogger()
	w := newTestWorker(t, fetcher, pub, log)

	var progress []int
	w.OnProgress(func(found, estimated int) {
		progress = append(progress, found)
		assert.Equal(t, 60, estimated)
	})

	state, err := w.Run(context.Background(), Request{Region: "東京都", StartPage: 1, EndPage: 3}, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"s1", "s2", "s3", "s4"}, names(state.Records))
	assert.Equal(t, 4, state.NextStartPage)
	assert.True(t, state.Done())
	assert.False(t, state.EndOfResults)
	assert.Equal(t, []int{1, 2, 3, 4}, progress)

	assert.Len(t, pub.messages["b64_stores_tokyo"], 4)
	assert.Contains(t, string(pub.messages["b64_stores_tokyo"][0]), `"name":"s1"`)
	assert.Equal(t, 1, pub.trimmed)
	assert.Empty(t, log.errors)
}

func TestWorkerStopsAtEndOfResults(t *testing.T) {
	fetcher := NewMockFetcher("東京都", map[int][]string{
		1: {"s1"},
		2: {},
		3: {"never"},
	})
	w := newTestWorker(t, fetcher, nil, NewMockLogger())

	state, err := w.Run(context.Background(), Request{Region: "東京都", StartPage: 1, EndPage: 5}, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"s1"}, names(state.Records))
	assert.True(t, state.EndOfResults)
	assert.True(t, state.Done())
	assert.Equal(t, 2, fetcher.listingCalls(), "no phase after the empty page")
}

func TestWorkerSinglePhaseThenResume(t *testing.T) {
	fetcher := NewMockFetcher("東京都", map[int][]string{
		1: {"s1"},
		2: {"s2"},
		3: {"s3"},
	})
	w := newTestWorker(t, fetcher, nil, NewMockLogger())

	state, err := w.NewState(Request{Region: "東京都", StartPage: 1, EndPage: 3}, 2)
	require.NoError(t, err)

	result, err := w.RunPhase(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, 1, result.StartPage)
	assert.Equal(t, 2, result.EndPage)
	assert.Equal(t, 2, result.Records)
	assert.Equal(t, 3, state.NextStartPage)
	assert.False(t, state.Done())

	// a fresh worker picks the state up where it was left
	resumed := &CrawlState{
		Region:              state.Region,
		TotalPagesRequested: state.TotalPagesRequested,
		StartPage:           state.StartPage,
		PhaseLimit:          state.PhaseLimit,
		NextStartPage:       state.NextStartPage,
		Records:             state.Records,
	}
	require.NoError(t, newTestWorker(t, fetcher, nil, NewMockLogger()).Resume(context.Background(), resumed))
	assert.Equal(t, []string{"s1", "s2", "s3"}, names(resumed.Records))

	result, err = w.RunPhase(context.Background(), resumed)
	require.NoError(t, err)
	assert.Zero(t, result.Records, "finished state runs nothing")
}

func TestWorkerValidation(t *testing.T) {
	tests := []struct {
		name       string
		req        Request
		phaseLimit int
	}{
		{"missing region", Request{StartPage: 1, EndPage: 1}, 30},
		{"unknown region", Request{Region: "ムー大陸", StartPage: 1, EndPage: 1}, 30},
		{"unknown category", Request{Region: "東京都", Category: "宇宙食", StartPage: 1, EndPage: 1}, 30},
		{"start below one", Request{Region: "東京都", StartPage: 0, EndPage: 1}, 30},
		{"end beyond max", Request{Region: "東京都", StartPage: 1, EndPage: 61}, 30},
		{"end before start", Request{Region: "東京都", StartPage: 5, EndPage: 4}, 30},
		{"phase too wide", Request{Region: "東京都", StartPage: 1, EndPage: 60}, 31},
		{"phase empty", Request{Region: "東京都", StartPage: 1, EndPage: 60}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := NewMockFetcher("東京都", nil)
			w := newTestWorker(t, fetcher, nil, NewMockLogger())

			state, err := w.Run(context.Background(), tt.req, tt.phaseLimit)
			assert.Nil(t, state)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), "got %v", err)
			assert.Empty(t, fetcher.calls)
		})
	}
}

func TestWorkerFullRangeUsesTwoPhases(t *testing.T) {
	fetcher := NewMockFetcher("東京都", map[int][]string{})
	for page := 1; page <= 60; page++ {
		fetcher.pages[page] = []string{fmt.Sprintf("p%02d", page)}
	}
	log := NewMockLogger()
	w := newTestWorker(t, fetcher, nil, log)

	state, err := w.Run(context.Background(), Request{Region: "東京都", StartPage: 1, EndPage: 60}, 30)
	require.NoError(t, err)
	assert.Len(t, state.Records, 60)
	assert.Contains(t, log.infos, "Phase pages 1-30 of 60")
	assert.Contains(t, log.infos, "Phase pages 31-60 of 60")
}

func TestWorkerPublishErrorIsLogged(t *testing.T) {
	fetcher := NewMockFetcher("東京都", map[int][]string{1: {"s1"}, 2: {}})
	pub := NewMockPublisher()
	pub.publishErr = errors.New("redis down")
	log := NewMockLogger()
	w := newTestWorker(t, fetcher, pub, log)

	state, err := w.Run(context.Background(), Request{Region: "東京都", StartPage: 1, EndPage: 2}, 30)
	require.NoError(t, err)
	assert.Len(t, state.Records, 1, "records are kept when publishing fails")
	require.NotEmpty(t, log.errors)
	assert.Contains(t, log.errors[0], "TestCrawler")
	assert.Contains(t, log.errors[0], "redis down")
}

func TestWorkerCancelledKeepsRecords(t *testing.T) {
	fetcher := NewMockFetcher("東京都", map[int][]string{1: {"s1", "s2"}})
	w := newTestWorker(t, fetcher, nil, NewMockLogger())

	ctx, cancel := context.WithCancel(context.Background())
	w.OnProgress(func(found, estimated int) {
		cancel()
	})

	state, err := w.Run(ctx, Request{Region: "東京都", StartPage: 1, EndPage: 1}, 30)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, state)
	assert.Equal(t, []string{"s1"}, names(state.Records))
	assert.Equal(t, 1, state.NextStartPage, "interrupted phase is not marked done")
	assert.Equal(t, 1, state.LastPage)
}

func TestWorkerCancelledCoversLoadedPagesOnly(t *testing.T) {
	fetcher := NewMockFetcher("東京都", map[int][]string{
		1: {"s1"},
		2: {"s2"},
		3: {"s3"},
	})
	w := newTestWorker(t, fetcher, nil, NewMockLogger())

	ctx, cancel := context.WithCancel(context.Background())
	w.OnProgress(func(found, estimated int) {
		cancel()
	})

	state, err := w.Run(ctx, Request{Region: "東京都", StartPage: 1, EndPage: 5}, 30)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"s1"}, names(state.Records))
	assert.False(t, state.Done())

	first, last := state.CoveredPages()
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, last, "pages after the interruption are not covered")
}

func TestCrawlStateCoveredPages(t *testing.T) {
	tests := []struct {
		name  string
		state CrawlState
		first int
		last  int
	}{
		{"not started", CrawlState{StartPage: 3, NextStartPage: 3, TotalPagesRequested: 9}, 3, 3},
		{"partway", CrawlState{StartPage: 3, NextStartPage: 6, TotalPagesRequested: 9, LastPage: 5}, 3, 5},
		{"finished", CrawlState{StartPage: 3, NextStartPage: 10, TotalPagesRequested: 9, LastPage: 9}, 3, 9},
		{"ran out of results", CrawlState{StartPage: 1, NextStartPage: 3, TotalPagesRequested: 9, LastPage: 2, EndOfResults: true}, 1, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := tt.state.CoveredPages()
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}
