package models

import "strings"

// Party is the short lowercase code for a tracked political party.
type Party string

const (
	PartyCon    Party = "con"
	PartyLab    Party = "lab"
	PartyLibDem Party = "lib_dem"
	PartyReform Party = "reform"
	PartyGreen  Party = "green"
	PartySNP    Party = "snp"
	PartyOther  Party = "other"
)

// PartyOrder is the canonical enumeration order. Lead tie-breaks and
// aggregate output follow this order, so it must stay stable.
var PartyOrder = []Party{
	PartyCon,
	PartyLab,
	PartyLibDem,
	PartyReform,
	PartyGreen,
	PartySNP,
	PartyOther,
}

var partyDisplayNames = map[Party]string{
	PartyCon:    "Conservative",
	PartyLab:    "Labour",
	PartyLibDem: "Liberal Democrats",
	PartyReform: "Reform UK",
	PartyGreen:  "Green",
	PartySNP:    "SNP",
	PartyOther:  "Other",
}

// partySynonyms accepts common header and query spellings beyond the
// codes and display names.
var partySynonyms = map[string]Party{
	"conservative":      PartyCon,
	"labour":            PartyLab,
	"lib dem":           PartyLibDem,
	"libdem":            PartyLibDem,
	"ld":                PartyLibDem,
	"liberal democrats": PartyLibDem,
	"reform uk":         PartyReform,
	"ref":               PartyReform,
	"greens":            PartyGreen,
	"others":            PartyOther,
}

// DisplayName returns the full party name, or the raw code if unknown.
func (p Party) DisplayName() string {
	if name, ok := partyDisplayNames[p]; ok {
		return name
	}
	return string(p)
}

// ResolveParty maps a free-text party name to its code. Accepts codes,
// display names, and common synonyms, case-insensitively.
func ResolveParty(name string) (Party, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return "", false
	}
	for code, display := range partyDisplayNames {
		if normalized == string(code) || normalized == strings.ToLower(display) {
			return code, true
		}
	}
	if code, ok := partySynonyms[normalized]; ok {
		return code, true
	}
	if code, ok := partySynonyms[strings.ReplaceAll(normalized, "_", " ")]; ok {
		return code, true
	}
	return "", false
}
