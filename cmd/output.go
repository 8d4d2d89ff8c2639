package cmd

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/schollz/progressbar/v3"

	"sjsage522/storecrawler/internal/crawler"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func newProgressBar(out io.Writer, max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// renderPreview prints at most limit records with a 1-based row number
func renderPreview(out io.Writer, records []crawler.StoreRecord, limit int) {
	if limit <= 0 || len(records) == 0 {
		return
	}

	t := newTable(out)
	header := table.Row{"#"}
	for _, column := range crawler.TabelogLabels.Columns() {
		header = append(header, column)
	}
	t.AppendHeader(header)

	for i, record := range records[:min(limit, len(records))] {
		row := table.Row{i + 1}
		for _, value := range record.Values() {
			row = append(row, value)
		}
		t.AppendRow(row)
	}
	if len(records) > limit {
		t.AppendFooter(table.Row{"", "showing first rows only, the CSV has all of them"})
	}
	t.Render()
}
