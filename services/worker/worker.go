package worker

import (
	"fmt"
	"io"

	"github.com/capitalsuccesshub-maker/property-scout/helpers"
	"github.com/capitalsuccesshub-maker/property-scout/internal/scraper"
	"github.com/capitalsuccesshub-maker/property-scout/services/delivery"
)

// previewLimit caps the number of records shown in a dry run
const previewLimit = 5

// Scraper abstracts the scrape phase for the worker
type Scraper interface {
	Scrape(city string, op scraper.Operation, pages int) *scraper.ScrapeResult
}

// Outcome names how a run ended
type Outcome string

const (
	// OutcomeDelivered means records were submitted to the sink
	OutcomeDelivered Outcome = "delivered"
	// OutcomeDryRun means records were previewed without delivery
	OutcomeDryRun Outcome = "dry_run"
	// OutcomeNoProperties means no records were produced, so the sink
	// was never called
	OutcomeNoProperties Outcome = "no_properties"
)

// RunParams selects what a single run scrapes
type RunParams struct {
	City      string
	Operation scraper.Operation
	Pages     int
	DryRun    bool
}

// Report summarizes one run
type Report struct {
	Outcome  Outcome
	Scrape   *scraper.ScrapeResult
	Delivery delivery.Result
}

// Worker drives one scrape-and-deliver run
type Worker struct {
	scraper Scraper
	sink    delivery.Sink
	logger  helpers.LoggerInterface
	out     io.Writer
}

// NewWorker creates a new worker
func NewWorker(s Scraper, sink delivery.Sink, logger helpers.LoggerInterface, out io.Writer) *Worker {
	return &Worker{
		scraper: s,
		sink:    sink,
		logger:  logger,
		out:     out,
	}
}

// Run scrapes the requested pages and either previews or delivers the
// records. With zero records the sink is never called and the run ends
// with the no-properties outcome.
func (w *Worker) Run(params RunParams) Report {
	result := w.scraper.Scrape(params.City, params.Operation, params.Pages)

	w.logger.LogInfo("Scraped %d properties from %d/%d pages",
		len(result.Records), result.PagesFetched, result.PagesRequested)

	report := Report{Scrape: result}

	if len(result.Records) == 0 {
		report.Outcome = OutcomeNoProperties
		w.logger.LogInfo("No properties found")
		return report
	}

	if params.DryRun {
		report.Outcome = OutcomeDryRun
		w.printPreview(result.Records)
		return report
	}

	report.Delivery = delivery.DeliverAll(w.sink, result.Records, w.logger)
	report.Outcome = OutcomeDelivered

	w.logger.LogInfo("Delivered %d properties, %d failed",
		report.Delivery.Success, report.Delivery.Failed)

	return report
}

// printPreview writes the first few records as numbered lines
func (w *Worker) printPreview(records []scraper.PropertyRecord) {
	fmt.Fprintf(w.out, "DRY RUN: %d properties found\n", len(records))

	limit := len(records)
	if limit > previewLimit {
		limit = previewLimit
	}

	for i, record := range records[:limit] {
		fmt.Fprintf(w.out, "%d. %s - €%d\n", i+1, record.Title, record.Price)
	}
}
