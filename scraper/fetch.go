// Package scraper implements the poll scrape pipeline: fetching the
// source page and normalizing its voting-intention table into records.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"

	"ukpolling/config"
	"ukpolling/models"
)

// Scraper fetches the source page and runs the parse pipeline over it.
type Scraper struct {
	cfg       *config.Config
	host      string
	transport http.RoundTripper
	Metrics   *Metrics
}

// New builds a scraper configured from cfg.
func New(cfg *config.Config) (*Scraper, error) {
	parsed, err := url.Parse(cfg.SourceURL)
	if err != nil {
		return nil, fmt.Errorf("parse source url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("source url must include a host")
	}

	return &Scraper{
		cfg:  cfg,
		host: parsed.Host,
		transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   cfg.Timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		Metrics: NewMetrics(),
	}, nil
}

// SetTransport swaps the HTTP transport. Tests use this to avoid the
// network.
func (s *Scraper) SetTransport(rt http.RoundTripper) {
	s.transport = rt
}

// Scrape fetches the source page and returns the normalized poll
// records. Transport failures surface as errors; malformed page content
// does not, it just yields an empty batch.
func (s *Scraper) Scrape(ctx context.Context) ([]models.PollRecord, error) {
	body, err := s.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.cfg.SourceURL, err)
	}
	records := ParsePolls(body, s.cfg.SourceURL)
	s.Metrics.AddPolls(len(records))
	return records, nil
}

// Fetch performs the HTTP GET with retry and exponential backoff.
func (s *Scraper) Fetch(ctx context.Context) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var lastErr error
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			s.Metrics.IncRetries()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.backoff(attempt)):
			}
		}

		body, err := s.fetchOnce()
		if err == nil {
			s.Metrics.IncFetch("success")
			return body, nil
		}
		lastErr = err
		s.Metrics.IncFetch("error")
		s.Metrics.IncError(errorTypeLabel(err))
		slog.Warn("fetch attempt failed",
			slog.Int("attempt", attempt+1),
			slog.String("url", s.cfg.SourceURL),
			slog.Any("error", err),
		)
	}
	return nil, lastErr
}

func (s *Scraper) fetchOnce() ([]byte, error) {
	collector := colly.NewCollector(
		colly.AllowedDomains(s.host),
		colly.UserAgent(s.cfg.UserAgent),
		colly.AllowURLRevisit(),
	)
	collector.SetRequestTimeout(s.cfg.Timeout)
	collector.WithTransport(s.transport)

	var body []byte
	var reqErr error
	collector.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(r *colly.Response, err error) {
		statusCode := 0
		if r != nil {
			statusCode = r.StatusCode
		}
		reqErr = classifyError(err, statusCode)
	})

	start := time.Now()
	visitErr := collector.Visit(s.cfg.SourceURL)
	collector.Wait()
	s.Metrics.ObserveDuration(time.Since(start))

	if reqErr != nil {
		return nil, reqErr
	}
	if visitErr != nil {
		return nil, classifyError(visitErr, 0)
	}
	if body == nil {
		return nil, fmt.Errorf("empty response from %s", s.cfg.SourceURL)
	}
	return body, nil
}

func (s *Scraper) backoff(attempt int) time.Duration {
	if attempt <= 0 {
		attempt = 1
	}

	base := s.cfg.RetryBackoff
	if base <= 0 {
		base = 100 * time.Millisecond
	}

	delay := base * time.Duration(1<<(attempt-1))
	if max := s.cfg.RetryBackoffMax; max > 0 && delay > max {
		delay = max
	}
	return delay
}
