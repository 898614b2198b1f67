package models

import "testing"

func TestResolveParty(t *testing.T) {
	tests := []struct {
		input string
		want  Party
		ok    bool
	}{
		{input: "con", want: PartyCon, ok: true},
		{input: "Conservative", want: PartyCon, ok: true},
		{input: "LABOUR", want: PartyLab, ok: true},
		{input: "lib_dem", want: PartyLibDem, ok: true},
		{input: "Lib Dem", want: PartyLibDem, ok: true},
		{input: "LD", want: PartyLibDem, ok: true},
		{input: "Liberal Democrats", want: PartyLibDem, ok: true},
		{input: "Reform UK", want: PartyReform, ok: true},
		{input: "reform_uk", want: PartyReform, ok: true},
		{input: "Greens", want: PartyGreen, ok: true},
		{input: "SNP", want: PartySNP, ok: true},
		{input: "Others", want: PartyOther, ok: true},
		{input: "  lab  ", want: PartyLab, ok: true},
		{input: "", ok: false},
		{input: "plaid cymru", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ResolveParty(tt.input)
			if ok != tt.ok {
				t.Fatalf("ResolveParty(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ResolveParty(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	if got := PartyLibDem.DisplayName(); got != "Liberal Democrats" {
		t.Errorf("DisplayName = %q, want Liberal Democrats", got)
	}
	if got := Party("monster").DisplayName(); got != "monster" {
		t.Errorf("unknown party DisplayName = %q, want the raw code", got)
	}
}

func TestPartyOrderCoversDisplayNames(t *testing.T) {
	if len(PartyOrder) != len(partyDisplayNames) {
		t.Fatalf("PartyOrder has %d entries, display names %d", len(PartyOrder), len(partyDisplayNames))
	}
	for _, p := range PartyOrder {
		if _, ok := partyDisplayNames[p]; !ok {
			t.Errorf("party %q has no display name", p)
		}
	}
}
