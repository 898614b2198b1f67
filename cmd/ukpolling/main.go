package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"ukpolling/api"
	"ukpolling/config"
	"ukpolling/export"
	"ukpolling/refresh"
	"ukpolling/scraper"
	"ukpolling/store"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	addr := flag.String("addr", "", "HTTP listen address (e.g. :8000)")
	sourceURL := flag.String("source-url", "", "Polling source page URL")
	refreshInterval := flag.Duration("refresh-interval", 0, "Interval between automatic refreshes")
	timeout := flag.Duration("timeout", 0, "HTTP fetch timeout")
	maxRetries := flag.Int("max-retries", -1, "Maximum fetch retry attempts")
	dumpFile := flag.String("dump", "", "Scrape once and write records to this file (.csv or .json) instead of serving")
	verbose := flag.Bool("v", false, "Enable verbose logging")
	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg, err := buildConfig(*configPath)
	if err != nil {
		slog.Error("loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Explicit flags override file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.ListenAddr = *addr
		case "source-url":
			cfg.SourceURL = *sourceURL
		case "refresh-interval":
			cfg.RefreshInterval = *refreshInterval
		case "timeout":
			cfg.Timeout = *timeout
		case "max-retries":
			cfg.MaxRetries = *maxRetries
		case "v":
			cfg.Verbose = *verbose
		}
	})

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	s, err := scraper.New(cfg)
	if err != nil {
		slog.Error("initialising scraper", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *dumpFile != "" {
		if err := runDump(ctx, s, *dumpFile); err != nil {
			slog.Error("dump failed", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	runServer(ctx, cfg, s)
}

func runDump(ctx context.Context, s *scraper.Scraper, path string) error {
	records, err := s.Scrape(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("scrape produced no records")
	}
	if err := export.Write(path, records); err != nil {
		return err
	}
	slog.Info("wrote scrape dump", slog.Int("records", len(records)), slog.String("file", path))
	return nil
}

func runServer(ctx context.Context, cfg *config.Config, s *scraper.Scraper) {
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	st := store.New()
	refresher := refresh.New(s, st, cfg.RefreshInterval, sourceLabel(cfg.SourceURL))
	go refresher.Run(ctx)

	srv := api.NewServer(st, refresher, s.Metrics.Registry)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Handler(),
	}

	go func() {
		slog.Info("serving polling API",
			slog.String("addr", cfg.ListenAddr),
			slog.String("source", cfg.SourceURL),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", slog.Any("error", err))
	}
}

// buildConfig layers defaults, the optional config file, and environment
// variables, in that order.
func buildConfig(configPath string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configPath != "" {
		if err := cfg.LoadFile(configPath); err != nil {
			return nil, err
		}
	}

	if value, ok := config.EnvString("POLLING_SOURCE_URL"); ok {
		cfg.SourceURL = value
	}
	if value, ok := config.EnvString("POLLING_ADDR"); ok {
		cfg.ListenAddr = value
	}
	if value, ok, err := config.EnvDuration("POLLING_REFRESH_INTERVAL"); err != nil {
		return nil, err
	} else if ok {
		cfg.RefreshInterval = value
	}
	if value, ok, err := config.EnvDuration("POLLING_TIMEOUT"); err != nil {
		return nil, err
	} else if ok {
		cfg.Timeout = value
	}
	if value, ok, err := config.EnvInt("POLLING_MAX_RETRIES"); err != nil {
		return nil, err
	} else if ok {
		cfg.MaxRetries = value
	}

	return cfg, nil
}

// sourceLabel names the data origin recorded in store status, e.g.
// "en.wikipedia.org".
func sourceLabel(sourceURL string) string {
	parsed, err := url.Parse(sourceURL)
	if err != nil || parsed.Host == "" {
		return "live"
	}
	return parsed.Host
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
