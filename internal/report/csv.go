// Package report renders tally results as CSV audit files, Markdown
// summaries and console output.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

// Header is the CSV column order for source rows.
var Header = []string{
	"published_utc",
	"domain",
	"url",
	"result_title",
	"page_title",
	"snippet",
	"winner",
	"winner_method",
	"match_phrase",
}

// WriteCSV writes the header and one record per row. An empty slice still
// produces the header line.
func WriteCSV(w io.Writer, rows []predictions.SourceRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Published,
			r.Domain,
			r.URL,
			r.ResultTitle,
			r.PageTitle,
			r.Snippet,
			string(r.Winner),
			string(r.Method),
			r.Phrase,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadCSV parses rows written by WriteCSV. Columns are located by header name,
// so files with extra or reordered columns still load; missing columns read as "".
func ReadCSV(r io.Reader) ([]predictions.SourceRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	if _, ok := index["winner"]; !ok {
		return nil, errors.New("csv has no winner column")
	}

	var rows []predictions.SourceRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row %d: %w", len(rows)+1, err)
		}
		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}
		rows = append(rows, predictions.SourceRow{
			Published:   get("published_utc"),
			Domain:      get("domain"),
			URL:         get("url"),
			ResultTitle: get("result_title"),
			PageTitle:   get("page_title"),
			Snippet:     get("snippet"),
			Winner:      predictions.Side(get("winner")),
			Method:      predictions.Method(get("winner_method")),
			Phrase:      get("match_phrase"),
		})
	}
	return rows, nil
}

// TallyRows recounts votes from the winner column of audit rows.
// Values other than A and B count as ambiguous.
func TallyRows(rows []predictions.SourceRow) predictions.Tally {
	var t predictions.Tally
	for _, r := range rows {
		t.Add(predictions.Verdict{Side: r.Winner})
	}
	return t
}
