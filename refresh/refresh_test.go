package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"ukpolling/models"
	"ukpolling/store"
)

type stubScraper struct {
	records []models.PollRecord
	err     error
	calls   int
}

func (s *stubScraper) Scrape(ctx context.Context) ([]models.PollRecord, error) {
	s.calls++
	return s.records, s.err
}

func testPoll(pollster string, end models.Date) models.PollRecord {
	con, lab, reform := 20.0, 22.0, 27.0
	p := models.PollRecord{
		Pollster:     pollster,
		FieldworkEnd: &end,
		Con:          &con,
		Lab:          &lab,
		Reform:       &reform,
	}
	p.ComputeLead()
	return p
}

func TestRefreshLoadsScrapedRecords(t *testing.T) {
	st := store.New()
	scraper := &stubScraper{records: []models.PollRecord{
		testPoll("YouGov", models.NewDate(2026, time.August, 20)),
		testPoll("Opinium", models.NewDate(2026, time.August, 18)),
	}}
	r := New(scraper, st, time.Hour, "wikipedia")

	if n := r.Refresh(context.Background()); n != 2 {
		t.Fatalf("Refresh returned %d, want 2", n)
	}
	if status := st.Status(); status.Source != "wikipedia" || status.TotalPolls != 2 {
		t.Errorf("status = %+v, want 2 polls from wikipedia", status)
	}
}

func TestRefreshSeedsEmptyStoreOnFailure(t *testing.T) {
	st := store.New()
	r := New(&stubScraper{err: errors.New("network down")}, st, time.Hour, "wikipedia")

	n := r.Refresh(context.Background())
	if n == 0 {
		t.Fatalf("Refresh returned 0, want the seed batch")
	}
	status := st.Status()
	if status.Source != "seed_data" {
		t.Errorf("source = %q, want seed_data", status.Source)
	}
	if status.TotalPolls != n {
		t.Errorf("store holds %d polls, Refresh reported %d", status.TotalPolls, n)
	}
}

func TestRefreshSeedsEmptyStoreOnEmptyScrape(t *testing.T) {
	st := store.New()
	r := New(&stubScraper{}, st, time.Hour, "wikipedia")

	if n := r.Refresh(context.Background()); n == 0 {
		t.Fatalf("Refresh returned 0, want the seed batch")
	}
	if status := st.Status(); status.Source != "seed_data" {
		t.Errorf("source = %q, want seed_data", status.Source)
	}
}

func TestRefreshKeepsExistingDataOnFailure(t *testing.T) {
	st := store.New()
	st.Load([]models.PollRecord{
		testPoll("Survation", models.NewDate(2026, time.August, 10)),
	}, "wikipedia")

	r := New(&stubScraper{err: errors.New("network down")}, st, time.Hour, "wikipedia")
	if n := r.Refresh(context.Background()); n != 0 {
		t.Fatalf("Refresh returned %d, want 0 when keeping old data", n)
	}
	status := st.Status()
	if status.TotalPolls != 1 || status.Source != "wikipedia" {
		t.Errorf("status = %+v, want the previous batch untouched", status)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	st := store.New()
	scraper := &stubScraper{records: []models.PollRecord{
		testPoll("YouGov", models.NewDate(2026, time.August, 20)),
	}}
	r := New(scraper, st, time.Hour, "wikipedia")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
	if scraper.calls == 0 {
		t.Errorf("Run never performed the initial refresh")
	}
}
