// Package export writes a batch of poll records to disk for one-shot
// scrape dumps.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ukpolling/models"
)

var csvHeader = []string{
	"pollster", "client", "fieldwork_start", "fieldwork_end", "sample_size",
	"con", "lab", "lib_dem", "reform", "green", "snp", "other",
	"lead_party", "lead_pct", "source_url",
}

// Write dumps polls to path, choosing the format from the file
// extension: .json gets a JSON array, anything else CSV.
func Write(path string, polls []models.PollRecord) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return WriteJSON(path, polls)
	}
	return WriteCSV(path, polls)
}

// WriteCSV writes polls as CSV with a header row. Missing values become
// empty fields.
func WriteCSV(path string, polls []models.PollRecord) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range polls {
		if err := writer.Write(csvRow(&polls[i])); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv records: %w", err)
	}
	return nil
}

// WriteJSON writes polls as an indented JSON array.
func WriteJSON(path string, polls []models.PollRecord) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(polls); err != nil {
		return fmt.Errorf("encode json records: %w", err)
	}
	return nil
}

func csvRow(p *models.PollRecord) []string {
	return []string{
		p.Pollster,
		p.Client,
		formatDate(p.FieldworkStart),
		formatDate(p.FieldworkEnd),
		formatInt(p.SampleSize),
		formatFloat(p.Con),
		formatFloat(p.Lab),
		formatFloat(p.LibDem),
		formatFloat(p.Reform),
		formatFloat(p.Green),
		formatFloat(p.SNP),
		formatFloat(p.Other),
		p.LeadParty,
		formatFloat(p.LeadPct),
		p.SourceURL,
	}
}

func formatDate(d *models.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
