package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"sjsage522/storecrawler/internal/crawler"
)

// RangeLabel names an export by the pages it covers
func RangeLabel(startPage, endPage int) string {
	return fmt.Sprintf("range_%d-%dpages", startPage, endPage)
}

// Filename returns tabelog_{region}_{category}_{label}.csv. An empty
// category token leaves its slot empty.
func Filename(regionToken, categoryToken, label string) string {
	return fmt.Sprintf("tabelog_%s_%s_%s.csv", regionToken, categoryToken, label)
}

// WriteCSV writes a header of the data table labels followed by one row per record
func WriteCSV(w io.Writer, records []crawler.StoreRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(crawler.TabelogLabels.Columns()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, record := range records {
		if err := cw.Write(record.Values()); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes records to dir/name, creating dir if needed, and returns the path
func SaveCSV(dir, name string, records []crawler.StoreRecord) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, records); err != nil {
		return "", err
	}
	return path, f.Close()
}
