package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/capitalsuccesshub-maker/property-scout/config"
	"github.com/capitalsuccesshub-maker/property-scout/helpers"
	"github.com/capitalsuccesshub-maker/property-scout/internal/scraper"
	"github.com/capitalsuccesshub-maker/property-scout/logger"
	"github.com/capitalsuccesshub-maker/property-scout/services/cache"
	"github.com/capitalsuccesshub-maker/property-scout/services/delivery"
	"github.com/capitalsuccesshub-maker/property-scout/services/worker"
)

func main() {
	// Load environment variables
	godotenv.Load()

	city := flag.String("city", "madrid", "City to scrape")
	operation := flag.String("operation", "sale", "Listing operation: sale or rental")
	pages := flag.Int("pages", 2, "Number of listing pages to scrape")
	dryRun := flag.Bool("dry-run", false, "Preview records without delivering them")
	flag.Parse()

	// Load and validate configuration
	cfg := config.LoadConfig()

	log := logger.New(cfg.Environment, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	op, err := scraper.ParseOperation(*operation)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid operation")
	}

	if *pages < 1 {
		log.Fatal().Int("pages", *pages).Msg("Pages must be at least 1")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("city", *city).
		Str("operation", string(op)).
		Int("pages", *pages).
		Bool("dry_run", *dryRun).
		Msg("Starting property scout")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	fetcher, err := newFetcher(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start fetcher")
	}
	defer fetcher.Close()

	sink := newSink(ctx, cfg, log)

	w := worker.NewWorker(
		scraper.NewIdealista(cfg, fetcher, log),
		sink,
		helpers.NewRunLogger(log),
		os.Stdout,
	)

	done := make(chan worker.Report, 1)
	go func() {
		done <- w.Run(worker.RunParams{
			City:      *city,
			Operation: op,
			Pages:     *pages,
			DryRun:    *dryRun,
		})
	}()

	// Wait for completion or a shutdown signal
	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		fetcher.Close()
		sink.Close()
		os.Exit(1)
	case report := <-done:
		logReport(log, report)
		if err := sink.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close sink")
		}
	}
}

// newFetcher picks the page renderer. Chrome is the default; the
// static fetcher serves markup that needs no client-side rendering.
func newFetcher(cfg *config.Config, log *logger.Logger) (scraper.Fetcher, error) {
	if cfg.Renderer == config.RendererStatic {
		var cacheSvc cache.CacheService
		if cfg.MemcacheAddr != "" {
			cacheSvc = cache.NewMemcacheService(cfg.MemcacheAddr)
			log.Info().Str("addr", cfg.MemcacheAddr).Msg("Connected to Memcache")
		}
		return scraper.NewStaticFetcher(cfg, cacheSvc, log), nil
	}

	return scraper.NewBrowserFetcher(cfg, log)
}

// newSink picks where records go
func newSink(ctx context.Context, cfg *config.Config, log *logger.Logger) delivery.Sink {
	if cfg.Sink == config.SinkRedis {
		log.Info().
			Str("addr", cfg.RedisAddr).
			Str("stream", cfg.RedisStream).
			Msg("Delivering to Redis")
		return delivery.NewRedisSink(ctx, cfg, log)
	}

	return delivery.NewBase44Sink(cfg, log)
}

// logReport logs the final run summary
func logReport(log *logger.Logger, report worker.Report) {
	event := log.Info().
		Str("outcome", string(report.Outcome)).
		Int("records", len(report.Scrape.Records)).
		Int("pages_fetched", report.Scrape.PagesFetched).
		Int("pages_skipped", report.Scrape.PagesSkipped).
		Int("cards_seen", report.Scrape.CardsSeen)

	if report.Outcome == worker.OutcomeDelivered {
		event = event.
			Int("delivered", report.Delivery.Success).
			Int("failed", report.Delivery.Failed)
	}

	event.Msg("Run finished")
}
