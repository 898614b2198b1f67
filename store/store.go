// Package store keeps the current batch of poll records in memory and
// answers the query side of the API. Each refresh replaces the whole
// collection atomically; there are no record-level updates.
package store

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"ukpolling/models"
)

// Store is a thread-safe in-memory store for polling data.
type Store struct {
	mu            sync.RWMutex
	polls         []models.PollRecord
	lastRefreshed *time.Time
	source        string

	// partyCache memoizes per-party data-point queries between loads.
	partyCache *lru.Cache[models.Party, []models.PartyDataPoint]
}

// New returns an empty store.
func New() *Store {
	cache, _ := lru.New[models.Party, []models.PartyDataPoint](len(models.PartyOrder))
	return &Store{
		source:     "none",
		partyCache: cache,
	}
}

// Load replaces all stored polls with a new batch, sorted newest first.
// Returns the number of records loaded.
func (s *Store) Load(polls []models.PollRecord, source string) int {
	sorted := make([]models.PollRecord, len(polls))
	copy(sorted, polls)
	models.SortByFieldworkEnd(sorted)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls = sorted
	now := time.Now().UTC()
	s.lastRefreshed = &now
	s.source = source
	s.partyCache.Purge()

	slog.Info("loaded polls into store",
		slog.Int("count", len(sorted)),
		slog.String("source", source),
	)
	return len(sorted)
}

// All returns every stored poll, newest first.
func (s *Store) All() []models.PollRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.PollRecord, len(s.polls))
	copy(out, s.polls)
	return out
}

// Latest returns the n most recent polls.
func (s *Store) Latest(n int) []models.PollRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.polls) {
		n = len(s.polls)
	}
	if n < 0 {
		n = 0
	}
	out := make([]models.PollRecord, n)
	copy(out, s.polls[:n])
	return out
}

// ByPollster returns polls whose pollster name contains the given text,
// case-insensitively.
func (s *Store) ByPollster(name string) []models.PollRecord {
	needle := strings.ToLower(name)

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.PollRecord
	for _, p := range s.polls {
		if strings.Contains(strings.ToLower(p.Pollster), needle) {
			out = append(out, p)
		}
	}
	return out
}

// ByParty returns all data points for a party, resolving codes, display
// names, and synonyms. Unknown parties return nil.
func (s *Store) ByParty(name string) []models.PartyDataPoint {
	party, ok := models.ResolveParty(name)
	if !ok {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.partyPointsLocked(party)
}

// partyPointsLocked serves per-party points through the LRU cache.
// Callers must hold at least the read lock; Load purges the cache under
// the write lock, so cached entries can never outlive their batch.
func (s *Store) partyPointsLocked(party models.Party) []models.PartyDataPoint {
	if cached, ok := s.partyCache.Get(party); ok {
		return cached
	}

	var points []models.PartyDataPoint
	for _, p := range s.polls {
		value := p.Share(party)
		if value == nil {
			continue
		}
		date := p.FieldworkEnd
		if date == nil {
			date = p.FieldworkStart
		}
		points = append(points, models.PartyDataPoint{
			Date:     date,
			Value:    *value,
			Pollster: p.Pollster,
		})
	}
	s.partyCache.Add(party, points)
	return points
}

// DateRange returns polls whose fieldwork ended within [start, end].
func (s *Store) DateRange(start, end models.Date) []models.PollRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.PollRecord
	for _, p := range s.polls {
		if p.FieldworkEnd == nil {
			continue
		}
		if p.FieldworkEnd.Before(start) || p.FieldworkEnd.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Summary averages the last n polls. Returns nil when the store is empty.
func (s *Store) Summary(n int) *models.Summary {
	recent := s.Latest(n)
	if len(recent) == 0 {
		return nil
	}

	averages := make(map[string]*float64, len(models.PartyOrder))
	for _, party := range models.PartyOrder {
		var sum float64
		var count int
		for i := range recent {
			if v := recent[i].Share(party); v != nil {
				sum += *v
				count++
			}
		}
		if count > 0 {
			avg := models.Round1(sum / float64(count))
			averages[party.DisplayName()] = &avg
		} else {
			averages[party.DisplayName()] = nil
		}
	}

	leader := models.PartyOrder[0]
	best := -1.0
	for _, party := range models.PartyOrder {
		if v := averages[party.DisplayName()]; v != nil && *v > best {
			best = *v
			leader = party
		}
	}
	leaderVal := 0.0
	if v := averages[leader.DisplayName()]; v != nil {
		leaderVal = *v
	}
	second := 0.0
	for _, party := range models.PartyOrder {
		if party == leader {
			continue
		}
		if v := averages[party.DisplayName()]; v != nil && *v > second {
			second = *v
		}
	}

	var dates []models.Date
	for i := range recent {
		if recent[i].FieldworkEnd != nil {
			dates = append(dates, *recent[i].FieldworkEnd)
		}
	}
	periodStart, periodEnd := dateBounds(dates)

	return &models.Summary{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		PollCount:   len(recent),
		Averages:    averages,
		Leader:      leader.DisplayName(),
		LeadMargin:  models.Round1(leaderVal - second),
	}
}

// Trends returns the full time series for every party with data.
func (s *Store) Trends() []models.PartyTrend {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var trends []models.PartyTrend
	for _, party := range models.PartyOrder {
		points := s.partyPointsLocked(party)
		if len(points) == 0 {
			continue
		}
		series := make([]models.TrendPoint, 0, len(points))
		for _, dp := range points {
			date := ""
			if dp.Date != nil {
				date = dp.Date.String()
			}
			series = append(series, models.TrendPoint{Date: date, Value: dp.Value})
		}
		trends = append(trends, models.PartyTrend{
			Party:      party.DisplayName(),
			DataPoints: series,
		})
	}
	return trends
}

// Status reports metadata about the stored batch.
func (s *Store) Status() models.StoreStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := models.StoreStatus{
		TotalPolls: len(s.polls),
		Source:     s.source,
	}
	if s.lastRefreshed != nil {
		refreshed := *s.lastRefreshed
		status.LastRefreshed = &refreshed
	}
	for i := range s.polls {
		end := s.polls[i].FieldworkEnd
		if end == nil {
			continue
		}
		if status.LatestPollDate == nil || end.After(*status.LatestPollDate) {
			d := *end
			status.LatestPollDate = &d
		}
		if status.OldestPollDate == nil || end.Before(*status.OldestPollDate) {
			d := *end
			status.OldestPollDate = &d
		}
	}
	return status
}

func dateBounds(dates []models.Date) (models.Date, models.Date) {
	if len(dates) == 0 {
		now := time.Now().UTC()
		today := models.NewDate(now.Year(), now.Month(), now.Day())
		return today, today
	}
	min, max := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	return min, max
}
