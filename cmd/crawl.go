package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sjsage522/storecrawler/config"
	"sjsage522/storecrawler/helpers"
	"sjsage522/storecrawler/internal"
	"sjsage522/storecrawler/internal/codes"
	"sjsage522/storecrawler/internal/crawler"
	"sjsage522/storecrawler/logger"
	apperrors "sjsage522/storecrawler/pkg/errors"
	"sjsage522/storecrawler/services/export"
	"sjsage522/storecrawler/services/worker"
)

// PreviewLimit is the default number of rows shown after a crawl
const PreviewLimit = 1000

type crawlOptions struct {
	region      string
	category    string
	startPage   int
	endPage     int
	maxPages    int
	phaseLimit  int
	singlePhase bool
	outputDir   string
	preview     int
	delay       time.Duration
}

func newCrawlCmd() *cobra.Command {
	opts := &crawlOptions{}

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Collects store details for a prefecture and genre",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runCrawl(ctx, cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.region, "region", "r", "", "prefecture label or token, e.g. 東京都 or tokyo (required)")
	flags.StringVarP(&opts.category, "category", "c", "", "genre label or token; empty means all genres")
	flags.IntVar(&opts.startPage, "start", 1, "first listing page (1-60)")
	flags.IntVar(&opts.endPage, "end", 1, "last listing page (1-60)")
	flags.IntVar(&opts.maxPages, "max-pages", 0, "crawl pages 1..N instead of --start/--end")
	flags.IntVar(&opts.phaseLimit, "phase-limit", 0, "pages per phase (1-30); defaults to PHASE_LIMIT")
	flags.BoolVar(&opts.singlePhase, "single-phase", false, "run one phase and print the command that resumes the rest")
	flags.StringVarP(&opts.outputDir, "output", "o", "", "directory for the CSV file; defaults to OUTPUT_DIR")
	flags.IntVar(&opts.preview, "preview", PreviewLimit, "rows to print after the crawl, 0 to disable")
	flags.DurationVar(&opts.delay, "delay", -1, "delay before each request; defaults to REQUEST_DELAY_MS")
	cmd.MarkFlagsMutuallyExclusive("max-pages", "start")
	cmd.MarkFlagsMutuallyExclusive("max-pages", "end")

	return cmd
}

func runCrawl(ctx context.Context, cmd *cobra.Command, opts *crawlOptions) error {
	out := cmd.OutOrStdout()
	log := logger.ForWorker()

	cfg := config.LoadConfig()
	if opts.phaseLimit != 0 {
		cfg.PhaseLimit = opts.phaseLimit
	}
	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}
	if opts.delay >= 0 {
		cfg.RequestDelay = opts.delay
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	req := worker.Request{
		Region:    resolve(codes.ResolveRegion, opts.region),
		Category:  resolve(codes.ResolveCategory, opts.category),
		StartPage: opts.startPage,
		EndPage:   opts.endPage,
	}
	if cmd.Flags().Changed("max-pages") {
		if opts.maxPages < 1 {
			return apperrors.NewValidation("storecrawler", fmt.Sprintf("--max-pages must be positive, got %d", opts.maxPages))
		}
		req.StartPage = 1
		req.EndPage = min(opts.maxPages, cfg.MaxPage)
	}

	deps, err := internal.NewDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	c, err := crawler.CreateCrawler(cfg, deps.Cache)
	if err != nil {
		return err
	}

	errorLog := helpers.NewLogger(cfg.ErrorLogFile)
	defer errorLog.Close()

	w := worker.NewWorker(c, deps.Publisher, errorLog, cfg.MaxPage)
	state, err := w.NewState(req, cfg.PhaseLimit)
	if err != nil {
		return err
	}

	genre := req.Category
	if genre == "" {
		genre = "all genres"
	}
	bar := newProgressBar(cmd.ErrOrStderr(), (req.EndPage-req.StartPage+1)*worker.StoresPerPage,
		fmt.Sprintf("%s / %s", req.Region, genre))
	w.OnProgress(func(found, estimated int) {
		bar.ChangeMax(estimated)
		if err := bar.Set(found); err != nil {
			log.Debug().Err(err).Msg("Failed to render progress")
		}
	})

	started := time.Now()
	if opts.singlePhase {
		_, err = w.RunPhase(ctx, state)
	} else {
		err = w.Resume(ctx, state)
	}
	if finishErr := bar.Finish(); finishErr != nil {
		log.Debug().Err(finishErr).Msg("Failed to render progress")
	}

	log.Info().
		Int("records", len(state.Records)).
		Int("next_page", state.NextStartPage).
		Bool("end_of_results", state.EndOfResults).
		Dur("elapsed", time.Since(started)).
		Msg("Crawl finished")

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if len(state.Records) == 0 {
		fmt.Fprintln(out, "no records found")
	} else {
		first, last := state.CoveredPages()
		name := export.Filename(codes.RegionToken(req.Region), codes.CategoryToken(req.Category),
			export.RangeLabel(first, last))
		path, saveErr := export.SaveCSV(cfg.OutputDir, name, state.Records)
		if saveErr != nil {
			return saveErr
		}

		fmt.Fprintf(out, "%d records found\n", len(state.Records))
		renderPreview(out, state.Records, opts.preview)
		fmt.Fprintf(out, "saved %s\n", path)
	}

	if !state.Done() && state.NextStartPage > state.StartPage {
		fmt.Fprintf(out, "resume with: %s\n", resumeCommand(state))
	}
	return err
}

// resolve maps a label or token to its label, keeping unknown input as typed
func resolve(lookup func(string) (string, bool), input string) string {
	label, _ := lookup(strings.TrimSpace(input))
	return label
}

func resumeCommand(state *worker.CrawlState) string {
	parts := []string{"storecrawler", "crawl", "--region", codes.RegionToken(state.Region)}
	if token := codes.CategoryToken(state.Category); token != "" {
		parts = append(parts, "--category", token)
	}
	parts = append(parts,
		"--start", fmt.Sprint(state.NextStartPage),
		"--end", fmt.Sprint(state.TotalPagesRequested),
		"--phase-limit", fmt.Sprint(state.PhaseLimit),
		"--single-phase",
	)
	return strings.Join(parts, " ")
}
