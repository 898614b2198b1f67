package models

import (
	"testing"
	"time"
)

func ptr(v float64) *float64 { return &v }

func TestComputeLead(t *testing.T) {
	tests := []struct {
		name       string
		record     PollRecord
		wantParty  string
		wantMargin *float64
	}{
		{
			name:       "clear leader",
			record:     PollRecord{Con: ptr(18), Lab: ptr(21), Reform: ptr(27)},
			wantParty:  "Reform UK",
			wantMargin: ptr(6),
		},
		{
			name:       "tie goes to canonical order",
			record:     PollRecord{Con: ptr(25), Lab: ptr(25), Reform: ptr(20)},
			wantParty:  "Conservative",
			wantMargin: ptr(0),
		},
		{
			name:       "margin rounded to one decimal",
			record:     PollRecord{Lab: ptr(22.25), Reform: ptr(27.9)},
			wantParty:  "Reform UK",
			wantMargin: ptr(5.7),
		},
		{
			name:       "single value has no margin",
			record:     PollRecord{Lab: ptr(40)},
			wantParty:  "Labour",
			wantMargin: nil,
		},
		{
			name:       "no values clears both fields",
			record:     PollRecord{},
			wantParty:  "",
			wantMargin: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.record.ComputeLead()
			if tt.record.LeadParty != tt.wantParty {
				t.Errorf("lead party = %q, want %q", tt.record.LeadParty, tt.wantParty)
			}
			if tt.wantMargin == nil {
				if tt.record.LeadPct != nil {
					t.Errorf("lead pct = %v, want nil", *tt.record.LeadPct)
				}
				return
			}
			if tt.record.LeadPct == nil {
				t.Fatalf("lead pct = nil, want %v", *tt.wantMargin)
			}
			if *tt.record.LeadPct != *tt.wantMargin {
				t.Errorf("lead pct = %v, want %v", *tt.record.LeadPct, *tt.wantMargin)
			}
		})
	}
}

func TestComputeLeadOverwritesStaleValues(t *testing.T) {
	record := PollRecord{Lab: ptr(30), Reform: ptr(25), LeadParty: "Green", LeadPct: ptr(99)}
	record.ComputeLead()
	if record.LeadParty != "Labour" {
		t.Errorf("lead party = %q, want Labour", record.LeadParty)
	}
	if *record.LeadPct != 5 {
		t.Errorf("lead pct = %v, want 5", *record.LeadPct)
	}
}

func TestSortByFieldworkEnd(t *testing.T) {
	d := func(day int) *Date {
		v := NewDate(2026, time.August, day)
		return &v
	}
	polls := []PollRecord{
		{Pollster: "oldest", FieldworkEnd: d(1)},
		{Pollster: "undated"},
		{Pollster: "newest", FieldworkEnd: d(20)},
		{Pollster: "middle", FieldworkEnd: d(10)},
	}

	SortByFieldworkEnd(polls)

	wantOrder := []string{"newest", "middle", "oldest", "undated"}
	for i, want := range wantOrder {
		if polls[i].Pollster != want {
			t.Errorf("position %d = %q, want %q", i, polls[i].Pollster, want)
		}
	}
}

func TestSortByFieldworkEndStable(t *testing.T) {
	d := NewDate(2026, time.August, 10)
	polls := []PollRecord{
		{Pollster: "first", FieldworkEnd: &d},
		{Pollster: "second", FieldworkEnd: &d},
	}
	SortByFieldworkEnd(polls)
	if polls[0].Pollster != "first" || polls[1].Pollster != "second" {
		t.Errorf("equal dates reordered: %q, %q", polls[0].Pollster, polls[1].Pollster)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 5.649999, want: 5.6},
		{in: 5.65, want: 5.7},
		{in: -0.05, want: -0.1},
		{in: 3, want: 3},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHasAnyShare(t *testing.T) {
	empty := PollRecord{Pollster: "x"}
	if empty.HasAnyShare() {
		t.Errorf("record with no shares reported a share")
	}
	one := PollRecord{SNP: ptr(3)}
	if !one.HasAnyShare() {
		t.Errorf("record with an SNP share reported none")
	}
}
