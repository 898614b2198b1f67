package store

import (
	"time"

	"ukpolling/models"
)

// SeedPolls returns the static fallback dataset used when live scraping
// has never succeeded. Figures are hand-copied from published polls and
// are intentionally a small, stale sample.
func SeedPolls() []models.PollRecord {
	polls := []models.PollRecord{
		seedPoll("YouGov", "The Times", date(2026, time.August, 17), date(2026, time.August, 18), 2211,
			shares{con: 17, lab: 20, libDem: 15, reform: 28, green: 11, snp: 3, other: 6}),
		seedPoll("Opinium", "The Observer", date(2026, time.August, 13), date(2026, time.August, 15), 2050,
			shares{con: 18, lab: 21, libDem: 14, reform: 27, green: 10, snp: 3, other: 7}),
		seedPoll("Techne", "", date(2026, time.August, 12), date(2026, time.August, 14), 1642,
			shares{con: 17, lab: 22, libDem: 13, reform: 28, green: 9, snp: 3, other: 8}),
		seedPoll("Find Out Now", "", date(2026, time.August, 11), date(2026, time.August, 12), 2440,
			shares{con: 15, lab: 19, libDem: 14, reform: 30, green: 12, snp: 2, other: 8}),
		seedPoll("More in Common", "The Sunday Times", date(2026, time.August, 7), date(2026, time.August, 10), 2089,
			shares{con: 18, lab: 21, libDem: 14, reform: 27, green: 10, snp: 3, other: 7}),
		seedPoll("Survation", "", date(2026, time.August, 4), date(2026, time.August, 6), 1021,
			shares{con: 17, lab: 23, libDem: 13, reform: 26, green: 9, snp: 3, other: 9}),
		seedPoll("BMG Research", "The i Paper", date(2026, time.July, 29), date(2026, time.July, 31), 1508,
			shares{con: 18, lab: 20, libDem: 14, reform: 28, green: 10, snp: 3, other: 7}),
		seedPoll("Deltapoll", "The Mail on Sunday", date(2026, time.July, 24), date(2026, time.July, 27), 1553,
			shares{con: 16, lab: 22, libDem: 13, reform: 29, green: 10, snp: 2, other: 8}),
		seedPoll("YouGov", "Sky News", date(2026, time.July, 21), date(2026, time.July, 22), 2103,
			shares{con: 17, lab: 21, libDem: 15, reform: 27, green: 11, snp: 3, other: 6}),
		seedPoll("Whitestone Insight", "", date(2026, time.July, 16), date(2026, time.July, 18), 2012,
			shares{con: 18, lab: 20, libDem: 13, reform: 28, green: 10, snp: 3, other: 8}),
		seedPoll("Opinium", "The Observer", date(2026, time.July, 9), date(2026, time.July, 11), 2076,
			shares{con: 17, lab: 22, libDem: 14, reform: 27, green: 10, snp: 3, other: 7}),
		seedPoll("Lord Ashcroft Polls", "", date(2026, time.July, 3), date(2026, time.July, 7), 5127,
			shares{con: 16, lab: 21, libDem: 14, reform: 28, green: 11, snp: 2, other: 8}),
	}
	models.SortByFieldworkEnd(polls)
	return polls
}

type shares struct {
	con, lab, libDem, reform, green, snp, other float64
}

func seedPoll(pollster, client string, start, end models.Date, sampleSize int, s shares) models.PollRecord {
	record := models.PollRecord{
		Pollster:       pollster,
		Client:         client,
		FieldworkStart: &start,
		FieldworkEnd:   &end,
		SampleSize:     &sampleSize,
		Con:            &s.con,
		Lab:            &s.lab,
		LibDem:         &s.libDem,
		Reform:         &s.reform,
		Green:          &s.green,
		SNP:            &s.snp,
		Other:          &s.other,
	}
	record.ComputeLead()
	return record
}

func date(year int, month time.Month, day int) models.Date {
	return models.NewDate(year, month, day)
}
