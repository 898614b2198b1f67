package parser

import (
	"strings"

	"ukpolling/models"
)

// Semantic field names assigned to recognized header columns. Party
// columns use the party code itself as the field name.
const (
	FieldFieldwork  = "fieldwork"
	FieldPollster   = "pollster"
	FieldClient     = "client"
	FieldSampleSize = "sample_size"
	FieldArea       = "area"
	FieldLead       = "lead"
)

// ColumnMap maps zero-based column indices to semantic field names.
type ColumnMap map[int]string

// IdentifyColumns classifies a header row's cell texts. Party names match
// exactly (after lowercasing and trimming); the remaining fields match on
// substrings, so "Dates conducted" and "Fieldwork dates" both resolve to
// the fieldwork column. Unrecognized headers are simply omitted.
func IdentifyColumns(headers []string) ColumnMap {
	cols := make(ColumnMap)
	for i, header := range headers {
		h := strings.ToLower(strings.TrimSpace(header))
		if h == "" {
			continue
		}
		if party, ok := models.ResolveParty(h); ok {
			cols[i] = string(party)
			continue
		}
		switch {
		case strings.Contains(h, "date") || strings.Contains(h, "fieldwork"):
			cols[i] = FieldFieldwork
		case strings.Contains(h, "polling") || strings.Contains(h, "pollster") || strings.Contains(h, "organisation"):
			cols[i] = FieldPollster
		case strings.Contains(h, "client") || strings.Contains(h, "commissioner"):
			cols[i] = FieldClient
		case strings.Contains(h, "sample") || strings.Contains(h, "size"):
			cols[i] = FieldSampleSize
		case strings.Contains(h, "area"):
			cols[i] = FieldArea
		case strings.Contains(h, "lead"):
			cols[i] = FieldLead
		}
	}
	return cols
}

// PartyField reports whether a column-map field name is a party code.
func PartyField(field string) (models.Party, bool) {
	for _, p := range models.PartyOrder {
		if field == string(p) {
			return p, true
		}
	}
	return "", false
}
