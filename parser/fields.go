// Package parser turns raw table-cell text into typed values. Every
// function here is best-effort: unparseable input yields a missing value,
// never an error, so a single bad cell cannot sink a whole row.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"ukpolling/models"
)

var (
	numberPattern   = regexp.MustCompile(`\d+\.?\d*`)
	samplePattern   = regexp.MustCompile(`\d{3,}`)
	yearPattern     = regexp.MustCompile(`20\d{2}`)
	dayMonthPattern = regexp.MustCompile(`(\d{1,2})\s+([A-Za-z]+)`)
	dayPattern      = regexp.MustCompile(`\d{1,2}`)
	rangeSeparator  = regexp.MustCompile(`[–—\-−]`)
)

var monthsByName = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September,
	"october": time.October, "november": time.November,
	"december": time.December,
}

// ParsePercentage extracts a numeric percentage from cell text.
// Dash glyphs used by the source to mean "not asked" are stripped before
// matching; empty and "N/A" cells are missing.
func ParsePercentage(text string) *float64 {
	text = strings.TrimSpace(text)
	for _, dash := range []string{"–", "—", "−"} {
		text = strings.ReplaceAll(text, dash, "")
	}
	if text == "" || text == "N/A" {
		return nil
	}
	match := numberPattern.FindString(text)
	if match == "" {
		return nil
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}
	return &value
}

// ParseSampleSize extracts a respondent count, tolerating thousands
// separators. Runs shorter than three digits are rejected so stray
// day-of-month fragments never pass as sample sizes.
func ParseSampleSize(text string) *int {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	text = strings.ReplaceAll(text, " ", "")
	match := samplePattern.FindString(text)
	if match == "" {
		return nil
	}
	value, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &value
}

// ParseDate parses a single day like "3 Feb 2026" or "15 January".
// fallbackYear supplies the year when the text has no 4-digit year of its
// own; pass 0 to fall back to an in-text year and then the current year.
// Invalid calendar dates (day 31 in February) are missing, not errors.
func ParseDate(text string, fallbackYear int) *models.Date {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	year := fallbackYear
	if year == 0 {
		if match := yearPattern.FindString(text); match != "" {
			year, _ = strconv.Atoi(match)
		} else {
			year = time.Now().Year()
		}
	}

	match := dayMonthPattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	day, _ := strconv.Atoi(match[1])
	month, ok := monthsByName[strings.ToLower(match[2])]
	if !ok || day < 1 || day > 31 {
		return nil
	}
	return makeValidDate(year, month, day)
}

// ParseDateRange parses a fieldwork span like "1-3 Feb 2026" or
// "28 Jan – 1 Feb 2026", returning (start, end). A single date yields the
// same date for both sides. When the start side is a bare day number the
// month is inherited from the end date; that heuristic deliberately does
// not reach across year boundaries. Either side may independently come
// back missing.
func ParseDateRange(text string) (*models.Date, *models.Date) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	year := time.Now().Year()
	if match := yearPattern.FindString(text); match != "" {
		year, _ = strconv.Atoi(match)
	}

	loc := rangeSeparator.FindStringIndex(text)
	if loc == nil {
		d := ParseDate(text, year)
		return d, d
	}

	startText := strings.TrimSpace(text[:loc[0]])
	endText := strings.TrimSpace(text[loc[1]:])

	end := ParseDate(endText, year)
	start := ParseDate(startText, year)
	if start == nil && end != nil {
		// "1-3 Feb": the start side carries only the day.
		if dayText := dayPattern.FindString(startText); dayText != "" {
			day, _ := strconv.Atoi(dayText)
			start = makeValidDate(year, end.Month(), day)
		}
	}
	return start, end
}

// makeValidDate rejects day/month combinations that time.Date would
// silently normalize into a different day.
func makeValidDate(year int, month time.Month, day int) *models.Date {
	d := models.NewDate(year, month, day)
	if d.Day() != day || d.Month() != month {
		return nil
	}
	return &d
}
