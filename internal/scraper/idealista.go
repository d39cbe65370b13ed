package scraper

import (
	"fmt"
	"strings"

	"github.com/capitalsuccesshub-maker/property-scout/config"
	"github.com/capitalsuccesshub-maker/property-scout/logger"
)

// SourceIdealista is the source label stamped on every record
const SourceIdealista = "Idealista"

// IdealistaSelectors returns the selectors matching the current listing
// markup. The site changes its markup without notice, so this is the
// single place to adjust when cards stop being detected.
func IdealistaSelectors() Selectors {
	return Selectors{
		Card:        "article.item",
		TitleLink:   "a.item-link",
		Price:       "span.item-price",
		Detail:      "span.item-detail",
		Description: "div.item-description",
	}
}

// ListingURL builds the listing index URL for a city, operation and
// page number. Page 1 is the bare listing path, later pages carry a
// page segment.
func ListingURL(baseURL, city string, op Operation, page int) string {
	url := fmt.Sprintf("%s/en/%s-viviendas/%s-%s/",
		strings.TrimSuffix(baseURL, "/"), op.PathSegment(), city, city)
	if page > 1 {
		url += fmt.Sprintf("pagina-%d.htm", page)
	}
	return url
}

// NewIdealista wires a scraper for the Idealista listing index
func NewIdealista(cfg *config.Config, fetcher Fetcher, log *logger.Logger) *Scraper {
	return NewScraper(ScraperConfig{
		Source:          SourceIdealista,
		BaseURL:         cfg.SiteBaseURL,
		Selectors:       IdealistaSelectors(),
		AnnualYieldRate: cfg.AnnualYieldRate,
	}, fetcher, log)
}
