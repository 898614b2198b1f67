package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ukpolling/models"
	"ukpolling/parser"
)

// requiredTableTokens must all appear in a table's text for it to be
// considered the main voting-intention table.
var requiredTableTokens = []string{"con", "lab", "reform", "green"}

// headerParties is the subset of party columns that qualifies a row as a
// header. SNP and Other are often missing from smaller tables, so they
// do not count towards the threshold.
var headerParties = map[models.Party]bool{
	models.PartyCon:    true,
	models.PartyLab:    true,
	models.PartyLibDem: true,
	models.PartyReform: true,
	models.PartyGreen:  true,
}

// minHeaderParties is how many distinct party columns a row needs before
// it is accepted as the header.
const minHeaderParties = 3

// headerScanRows caps how deep into the table the header scan looks.
const headerScanRows = 4

// FindPollingTable selects the first data table on the page that covers
// all the major parties. Returns nil when no table qualifies.
func FindPollingTable(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("table.wikitable").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		text := strings.ToLower(table.Text())
		for _, token := range requiredTableTokens {
			if !strings.Contains(text, token) {
				return true
			}
		}
		found = table
		return false
	})
	return found
}

// DetectHeader scans the first few grid rows for one that identifies as
// a column header, meaning at least minHeaderParties distinct party
// columns. Returns the header row index and its column map.
func DetectHeader(grid [][]string) (int, parser.ColumnMap, bool) {
	limit := headerScanRows
	if len(grid) < limit {
		limit = len(grid)
	}
	for i := 0; i < limit; i++ {
		cols := parser.IdentifyColumns(grid[i])
		distinct := make(map[models.Party]bool)
		for _, field := range cols {
			if party, ok := parser.PartyField(field); ok && headerParties[party] {
				distinct[party] = true
			}
		}
		if len(distinct) >= minHeaderParties {
			return i, cols, true
		}
	}
	return 0, nil, false
}
