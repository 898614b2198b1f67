package scraper

import (
	"bytes"
	"log/slog"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ukpolling/models"
	"ukpolling/parser"
)

// ParsePolls extracts normalized poll records from raw page markup.
// It is the pure core of the scrape pipeline: no I/O, deterministic for a
// given input, and it never fails on malformed content. Structural
// problems (no suitable table, no header row) log a warning and yield an
// empty result, leaving the fallback decision to the caller. Records come
// back sorted by fieldwork end date, newest first, with undated records
// at the bottom.
func ParsePolls(markup []byte, sourceURL string) []models.PollRecord {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		slog.Warn("markup could not be parsed", slog.Any("error", err))
		return nil
	}

	table := FindPollingTable(doc)
	if table == nil {
		slog.Warn("no suitable polling table on page", slog.String("url", sourceURL))
		return nil
	}

	grid := ExpandTable(table)
	if len(grid) < 3 {
		slog.Warn("polling table too small", slog.Int("rows", len(grid)))
		return nil
	}

	headerIdx, cols, ok := DetectHeader(grid)
	if !ok {
		slog.Warn("no header row found in polling table")
		return nil
	}
	slog.Debug("located header row",
		slog.Int("row", headerIdx),
		slog.Int("columns", len(cols)),
	)

	polls := make([]models.PollRecord, 0, len(grid)-headerIdx-1)
	for _, row := range grid[headerIdx+1:] {
		if record, ok := mapRow(row, cols, sourceURL); ok {
			polls = append(polls, record)
		}
	}

	models.SortByFieldworkEnd(polls)
	slog.Info("scraped polls", slog.Int("count", len(polls)), slog.String("url", sourceURL))
	return polls
}

// mapRow assembles one candidate record from a grid row. Rows with fewer
// than three non-empty cells are sub-headers or dividers and are dropped,
// as are rows lacking a pollster or any party value.
func mapRow(row []string, cols parser.ColumnMap, sourceURL string) (models.PollRecord, bool) {
	nonEmpty := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			nonEmpty++
		}
	}
	if nonEmpty < 3 {
		return models.PollRecord{}, false
	}

	record := models.PollRecord{SourceURL: sourceURL}
	for _, colIdx := range sortedColumns(cols) {
		if colIdx >= len(row) {
			continue
		}
		cell := row[colIdx]

		switch field := cols[colIdx]; field {
		case parser.FieldFieldwork:
			record.FieldworkStart, record.FieldworkEnd = parser.ParseDateRange(cell)
		case parser.FieldPollster:
			record.Pollster = strings.TrimSpace(cell)
		case parser.FieldClient:
			record.Client = strings.TrimSpace(cell)
		case parser.FieldSampleSize:
			record.SampleSize = parser.ParseSampleSize(cell)
		case parser.FieldLead, parser.FieldArea:
			// The published lead is never trusted; it is recomputed below.
		default:
			if party, ok := parser.PartyField(field); ok {
				record.SetShare(party, parser.ParsePercentage(cell))
			}
		}
	}

	if record.Pollster == "" || !record.HasAnyShare() {
		return models.PollRecord{}, false
	}
	record.ComputeLead()
	return record, true
}

// sortedColumns returns the column indices in ascending order so that a
// duplicated field name is resolved by its right-most column.
func sortedColumns(cols parser.ColumnMap) []int {
	indices := make([]int, 0, len(cols))
	for i := range cols {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}
