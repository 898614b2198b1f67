// Package models defines the data structures shared across the polling
// pipeline, store, and API.
package models

import (
	"math"
	"sort"
	"time"
)

// PollRecord is a single normalized opinion poll. Party shares are
// percentages of voting intention; nil means the source table had no
// usable value for that party. Records are immutable once the mapper
// has finished with them.
type PollRecord struct {
	Pollster       string   `json:"pollster" csv:"pollster"`
	Client         string   `json:"client,omitempty" csv:"client"`
	FieldworkStart *Date    `json:"fieldwork_start" csv:"fieldwork_start"`
	FieldworkEnd   *Date    `json:"fieldwork_end" csv:"fieldwork_end"`
	SampleSize     *int     `json:"sample_size" csv:"sample_size"`
	Con            *float64 `json:"con" csv:"con"`
	Lab            *float64 `json:"lab" csv:"lab"`
	LibDem         *float64 `json:"lib_dem" csv:"lib_dem"`
	Reform         *float64 `json:"reform" csv:"reform"`
	Green          *float64 `json:"green" csv:"green"`
	SNP            *float64 `json:"snp" csv:"snp"`
	Other          *float64 `json:"other" csv:"other"`
	LeadParty      string   `json:"lead_party,omitempty" csv:"lead_party"`
	LeadPct        *float64 `json:"lead_pct" csv:"lead_pct"`
	SourceURL      string   `json:"source_url,omitempty" csv:"source_url"`
}

// Share returns the stored percentage for a party code.
func (r *PollRecord) Share(p Party) *float64 {
	switch p {
	case PartyCon:
		return r.Con
	case PartyLab:
		return r.Lab
	case PartyLibDem:
		return r.LibDem
	case PartyReform:
		return r.Reform
	case PartyGreen:
		return r.Green
	case PartySNP:
		return r.SNP
	case PartyOther:
		return r.Other
	}
	return nil
}

// SetShare stores a percentage for a party code. Unknown codes are ignored.
func (r *PollRecord) SetShare(p Party, v *float64) {
	switch p {
	case PartyCon:
		r.Con = v
	case PartyLab:
		r.Lab = v
	case PartyLibDem:
		r.LibDem = v
	case PartyReform:
		r.Reform = v
	case PartyGreen:
		r.Green = v
	case PartySNP:
		r.SNP = v
	case PartyOther:
		r.Other = v
	}
}

// HasAnyShare reports whether at least one party has a value.
func (r *PollRecord) HasAnyShare() bool {
	for _, p := range PartyOrder {
		if r.Share(p) != nil {
			return true
		}
	}
	return false
}

// ComputeLead derives LeadParty and LeadPct from the party shares.
// The leader is the party with the highest share; ties go to the party
// appearing first in PartyOrder. The margin is the gap to the best of
// the remaining parties, rounded to one decimal, and stays nil when no
// second value exists. With no values at all both fields are cleared.
func (r *PollRecord) ComputeLead() {
	var leader Party
	best := -1.0
	for _, p := range PartyOrder {
		if v := r.Share(p); v != nil && *v > best {
			best = *v
			leader = p
		}
	}
	if leader == "" {
		r.LeadParty = ""
		r.LeadPct = nil
		return
	}

	second := -1.0
	for _, p := range PartyOrder {
		if p == leader {
			continue
		}
		if v := r.Share(p); v != nil && *v > second {
			second = *v
		}
	}

	r.LeadParty = leader.DisplayName()
	if second >= 0 {
		margin := Round1(best - second)
		r.LeadPct = &margin
	} else {
		r.LeadPct = nil
	}
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// SortByFieldworkEnd orders polls newest first. Records without an end
// date sort as the earliest possible date, sinking to the bottom.
func SortByFieldworkEnd(polls []PollRecord) {
	sort.SliceStable(polls, func(i, j int) bool {
		return endOrZero(polls[i]).After(endOrZero(polls[j]))
	})
}

func endOrZero(p PollRecord) Date {
	if p.FieldworkEnd == nil {
		return Date{}
	}
	return *p.FieldworkEnd
}

// Summary is an aggregate view over the most recent polls. Averages are
// keyed by party display name; nil means no poll in the window carried a
// value for that party.
type Summary struct {
	PeriodStart Date                `json:"period_start"`
	PeriodEnd   Date                `json:"period_end"`
	PollCount   int                 `json:"poll_count"`
	Averages    map[string]*float64 `json:"averages"`
	Leader      string              `json:"leader"`
	LeadMargin  float64             `json:"lead_margin"`
}

// PartyDataPoint is a single poll's value for one party.
type PartyDataPoint struct {
	Date     *Date   `json:"date"`
	Value    float64 `json:"value"`
	Pollster string  `json:"pollster"`
}

// TrendPoint is one step in a party's time series.
type TrendPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// PartyTrend is the full time series for one party.
type PartyTrend struct {
	Party      string       `json:"party"`
	DataPoints []TrendPoint `json:"data_points"`
}

// StoreStatus describes the current state of the polling store.
type StoreStatus struct {
	TotalPolls     int        `json:"total_polls"`
	LatestPollDate *Date      `json:"latest_poll_date"`
	OldestPollDate *Date      `json:"oldest_poll_date"`
	LastRefreshed  *time.Time `json:"last_refreshed"`
	Source         string     `json:"source"`
}
