package scraper

import (
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func tableFixture(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		t.Fatalf("fixture has no table")
	}
	return table
}

func TestExpandTableSimple(t *testing.T) {
	table := tableFixture(t, `<table>
		<tr><th>A</th><th>B</th></tr>
		<tr><td>1</td><td>2</td></tr>
	</table>`)

	got := ExpandTable(table)
	want := [][]string{{"A", "B"}, {"1", "2"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandTable = %v, want %v", got, want)
	}
}

func TestExpandTableRowspan(t *testing.T) {
	table := tableFixture(t, `<table>
		<tr><td rowspan="2">span</td><td>r1c2</td></tr>
		<tr><td>r2c2</td></tr>
	</table>`)

	got := ExpandTable(table)
	want := [][]string{{"span", "r1c2"}, {"span", "r2c2"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandTable = %v, want %v", got, want)
	}
}

func TestExpandTableColspan(t *testing.T) {
	table := tableFixture(t, `<table>
		<tr><td colspan="2">wide</td><td>c3</td></tr>
		<tr><td>1</td><td>2</td><td>3</td></tr>
	</table>`)

	got := ExpandTable(table)
	want := [][]string{{"wide", "wide", "c3"}, {"1", "2", "3"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandTable = %v, want %v", got, want)
	}
}

func TestExpandTableRaggedRowsPadded(t *testing.T) {
	table := tableFixture(t, `<table>
		<tr><td>a</td><td>b</td><td>c</td></tr>
		<tr><td>only</td></tr>
	</table>`)

	got := ExpandTable(table)
	want := [][]string{{"a", "b", "c"}, {"only", "", ""}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandTable = %v, want %v", got, want)
	}
}

func TestExpandTableCombinedSpans(t *testing.T) {
	// The rowspan cell occupies column 0 of row 2, pushing that row's
	// own cells right.
	table := tableFixture(t, `<table>
		<tr><td rowspan="2" colspan="2">block</td><td>r1c3</td></tr>
		<tr><td>r2c3</td></tr>
		<tr><td>x</td><td>y</td><td>z</td></tr>
	</table>`)

	got := ExpandTable(table)
	want := [][]string{
		{"block", "block", "r1c3"},
		{"block", "block", "r2c3"},
		{"x", "y", "z"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandTable = %v, want %v", got, want)
	}
}

func TestExpandTableMalformedSpanDefaultsToOne(t *testing.T) {
	table := tableFixture(t, `<table>
		<tr><td colspan="abc">a</td><td rowspan="-2">b</td></tr>
		<tr><td>c</td><td>d</td></tr>
	</table>`)

	got := ExpandTable(table)
	want := [][]string{{"a", "b"}, {"c", "d"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandTable = %v, want %v", got, want)
	}
}

func TestExpandTableEmpty(t *testing.T) {
	if got := ExpandTable(tableFixture(t, `<table></table>`)); got != nil {
		t.Errorf("ExpandTable on empty table = %v, want nil", got)
	}
}
