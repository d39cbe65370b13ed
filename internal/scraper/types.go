package scraper

import (
	"fmt"
	"time"
)

// Operation identifies the listing category being scraped
type Operation string

const (
	OperationSale   Operation = "sale"
	OperationRental Operation = "rental"
)

// ParseOperation validates an operation value from the command line
func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case OperationSale, OperationRental:
		return Operation(s), nil
	}
	return "", fmt.Errorf("unknown operation %q (want sale or rental)", s)
}

// PathSegment returns the site's URL segment for the operation
func (o Operation) PathSegment() string {
	if o == OperationRental {
		return "alquiler"
	}
	return "venta"
}

// PropertyRecord represents one normalized listing. The JSON tags are
// the delivery wire names and must not change independently of the
// remote schema.
type PropertyRecord struct {
	Title               string    `json:"title"`
	Price               int       `json:"price"`
	SurfaceM2           int       `json:"surfaceM2"`
	Rooms               int       `json:"rooms"`
	Bathrooms           int       `json:"bathrooms"`
	Address             string    `json:"address"`
	Description         string    `json:"description"`
	URL                 string    `json:"url"`
	Source              string    `json:"source"`
	AddedAt             time.Time `json:"addedAt"`
	RentalYieldEstimate float64   `json:"rentalYieldEstimate"`
	InterestScore       float64   `json:"interestScore"`
}

// CardFragments holds the raw text pulled from one listing card before
// normalization
type CardFragments struct {
	Title       string
	Href        string
	PriceText   string
	Details     []string
	Description string
}

// SkipReason explains why a card produced no record
type SkipReason string

const (
	// SkipNoTitle marks a card without a resolvable title or link
	SkipNoTitle SkipReason = "no_title"
	// SkipParseError marks a card that failed unexpectedly during normalization
	SkipParseError SkipReason = "parse_error"
)

// CardResult is the outcome of normalizing a single card: either a
// record or a skip reason, never both
type CardResult struct {
	Record *PropertyRecord
	Skip   SkipReason
}

// ScrapeResult aggregates the records and counters of one run
type ScrapeResult struct {
	City           string
	Operation      Operation
	PagesRequested int

	Records []PropertyRecord

	PagesFetched int
	PagesSkipped int
	CardsSeen    int
	CardsSkipped map[SkipReason]int
}

// Fetcher renders one listing index page into HTML
type Fetcher interface {
	// Fetch returns the rendered HTML of the page at url
	Fetch(url string) (string, error)

	// Close releases any resources held by the fetcher
	Close() error
}

// Selectors contains the CSS selectors locating listing cards and their
// fields. Swapping the value swaps the markup heuristic in one place.
type Selectors struct {
	Card        string
	TitleLink   string
	Price       string
	Detail      string
	Description string
}
