package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"sjsage522/storecrawler/config"
	"sjsage522/storecrawler/helpers"
	"sjsage522/storecrawler/internal/codes"
	"sjsage522/storecrawler/internal/crawler"
	apperrors "sjsage522/storecrawler/pkg/errors"
	"sjsage522/storecrawler/services/publisher"
)

// StoresPerPage is the number of stores a full listing page holds
const StoresPerPage = 20

// Request describes one crawl as entered by the user
type Request struct {
	Region    string
	Category  string
	StartPage int
	EndPage   int
}

// CrawlState carries a multi-phase crawl between phases. It can be resumed
// from another process as long as the same fields are supplied.
type CrawlState struct {
	Region              string
	Category            string
	TotalPagesRequested int
	StartPage           int
	PhaseLimit          int
	NextStartPage       int
	Records             []crawler.StoreRecord
	// LastPage is the last listing page covered so far, 0 before any
	LastPage int
	// EndOfResults is set once a listing page came back empty
	EndOfResults bool
}

// Done reports whether no phase is left to run
func (s *CrawlState) Done() bool {
	return s.EndOfResults || s.NextStartPage > s.TotalPagesRequested
}

// CoveredPages returns the page range the accumulated records come from. A
// finished crawl covers the whole request; an unfinished one stops at the
// last listing page it got through.
func (s *CrawlState) CoveredPages() (int, int) {
	if s.Done() {
		return s.StartPage, s.TotalPagesRequested
	}
	return s.StartPage, max(s.StartPage, s.LastPage)
}

// PhaseEnd returns the last page the next phase will request
func (s *CrawlState) PhaseEnd() int {
	return min(s.NextStartPage+s.PhaseLimit-1, s.TotalPagesRequested)
}

// PhaseResult summarizes one phase
type PhaseResult struct {
	StartPage int
	EndPage   int
	Records   int
	Stats     crawler.IteratorStats
}

// ProgressFunc is called after every accepted record with the running count
// and an estimate of the total (pages × StoresPerPage)
type ProgressFunc func(found, estimated int)

// Worker runs crawl phases and forwards accepted records
type Worker struct {
	crawler   crawler.Crawler
	publisher publisher.Publisher
	logger    helpers.LoggerInterface
	maxPage   int
	progress  ProgressFunc
}

// NewWorker creates a new worker; pub may be nil
func NewWorker(c crawler.Crawler, pub publisher.Publisher, logger helpers.LoggerInterface, maxPage int) *Worker {
	if maxPage < 1 {
		maxPage = config.DefaultMaxPage
	}
	return &Worker{
		crawler:   c,
		publisher: pub,
		logger:    logger,
		maxPage:   maxPage,
	}
}

// OnProgress registers a progress callback
func (w *Worker) OnProgress(fn ProgressFunc) {
	w.progress = fn
}

// Validate checks a request before anything is fetched
func (w *Worker) Validate(req Request, phaseLimit int) error {
	provider := w.crawler.GetProvider()
	switch {
	case req.Region == "":
		return apperrors.NewValidation(provider, "region is required")
	case codes.RegionToken(req.Region) == "":
		return apperrors.NewValidation(provider, fmt.Sprintf("unknown region %q", req.Region))
	case req.Category != "" && codes.CategoryToken(req.Category) == "":
		return apperrors.NewValidation(provider, fmt.Sprintf("unknown category %q", req.Category))
	case req.StartPage < 1 || req.EndPage > w.maxPage || req.StartPage > req.EndPage:
		return apperrors.NewValidation(provider,
			fmt.Sprintf("page range must satisfy 1 <= start <= end <= %d, got %d-%d", w.maxPage, req.StartPage, req.EndPage))
	case phaseLimit < 1 || phaseLimit > config.MaxPhasePages:
		return apperrors.NewValidation(provider,
			fmt.Sprintf("phase limit must be between 1 and %d, got %d", config.MaxPhasePages, phaseLimit))
	}
	return nil
}

// NewState validates req and returns the state of a crawl that has not started
func (w *Worker) NewState(req Request, phaseLimit int) (*CrawlState, error) {
	if err := w.Validate(req, phaseLimit); err != nil {
		return nil, err
	}
	return &CrawlState{
		Region:              req.Region,
		Category:            req.Category,
		TotalPagesRequested: req.EndPage,
		StartPage:           req.StartPage,
		PhaseLimit:          phaseLimit,
		NextStartPage:       req.StartPage,
	}, nil
}

// RunPhase crawls the next bounded range of state and appends what it finds.
// Records gathered before an error stay in state.
func (w *Worker) RunPhase(ctx context.Context, state *CrawlState) (PhaseResult, error) {
	if state.Done() {
		return PhaseResult{}, nil
	}

	result := PhaseResult{StartPage: state.NextStartPage, EndPage: state.PhaseEnd()}
	estimated := (state.TotalPagesRequested - state.StartPage + 1) * StoresPerPage
	w.logger.LogInfo("Phase pages %d-%d of %d", result.StartPage, result.EndPage, state.TotalPagesRequested)

	it := w.crawler.ScrapeRange(state.Region, state.Category, result.StartPage, result.EndPage)
	for {
		record, err := it.Next(ctx)
		if errors.Is(err, crawler.ErrDone) {
			break
		}
		if err != nil {
			result.Stats = it.Stats()
			state.LastPage = max(state.LastPage, result.Stats.LastPage)
			return result, err
		}

		state.Records = append(state.Records, record)
		result.Records++
		w.publish(state.Region, record, result.Records == 1 && len(state.Records) == 1)

		if w.progress != nil {
			w.progress(len(state.Records), max(estimated, len(state.Records)))
		}
	}

	result.Stats = it.Stats()
	state.LastPage = max(state.LastPage, result.Stats.LastPage)
	state.NextStartPage = result.EndPage + 1
	state.EndOfResults = result.Stats.EndOfResults
	w.logger.LogInfo("Phase pages %d-%d done: %d records, %d skipped, %d pages failed",
		result.StartPage, result.EndPage, result.Records, result.Stats.StoresSkipped, result.Stats.PagesFailed)
	return result, nil
}

// Run validates req and runs phases until the range is exhausted or the
// directory runs out of results
func (w *Worker) Run(ctx context.Context, req Request, phaseLimit int) (*CrawlState, error) {
	state, err := w.NewState(req, phaseLimit)
	if err != nil {
		return nil, err
	}
	return state, w.Resume(ctx, state)
}

// Resume runs the remaining phases of state
func (w *Worker) Resume(ctx context.Context, state *CrawlState) error {
	defer w.trim()
	for !state.Done() {
		if _, err := w.RunPhase(ctx, state); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) publish(region string, record crawler.StoreRecord, first bool) {
	data, err := json.Marshal(record)
	if err != nil {
		w.logger.LogError(w.crawler.GetName(), err)
		return
	}

	if first && os.Getenv("STORECRAWLER_ENVIRONMENT") != "production" {
		w.logger.LogInfo("First record: %s", string(data))
	}

	if w.publisher == nil {
		return
	}
	if err := w.publisher.Publish("b64_stores_"+codes.RegionToken(region), data); err != nil {
		w.logger.LogError(w.crawler.GetName(), err)
	}
}

func (w *Worker) trim() {
	if w.publisher == nil {
		return
	}
	if err := w.publisher.TrimStreams(); err != nil {
		w.logger.LogError("StreamTrimming", err)
	}
}
