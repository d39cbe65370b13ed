package delivery

import (
	"github.com/capitalsuccesshub-maker/property-scout/helpers"
	"github.com/capitalsuccesshub-maker/property-scout/internal/scraper"
)

// Sink receives normalized property records
type Sink interface {
	// Deliver submits a single record
	Deliver(record scraper.PropertyRecord) error

	// Close closes the sink connection
	Close() error
}

// Result aggregates per-record delivery outcomes
type Result struct {
	Success int
	Failed  int
}

// DeliverAll submits every record in order, one round-trip at a time.
// A failed record is logged and counted; the remaining records are
// still submitted.
func DeliverAll(sink Sink, records []scraper.PropertyRecord, log helpers.LoggerInterface) Result {
	var result Result

	for _, record := range records {
		if err := sink.Deliver(record); err != nil {
			result.Failed++
			log.LogError("delivery", err)
			continue
		}
		result.Success++
	}

	return result
}
