package scraper

import (
	"github.com/capitalsuccesshub-maker/property-scout/logger"
)

// ScraperConfig configures a Scraper for one listing site
type ScraperConfig struct {
	Source          string
	BaseURL         string
	Selectors       Selectors
	AnnualYieldRate float64
}

// Scraper drives fetching, extraction and normalization for one site.
// Pages are visited one at a time; a page that cannot be fetched or
// parsed is skipped without aborting the run.
type Scraper struct {
	fetcher    Fetcher
	extractor  *Extractor
	normalizer *Normalizer
	baseURL    string
	log        *logger.Logger
}

// NewScraper creates a scraper from a site configuration
func NewScraper(cfg ScraperConfig, fetcher Fetcher, log *logger.Logger) *Scraper {
	return &Scraper{
		fetcher:    fetcher,
		extractor:  NewExtractor(cfg.Selectors),
		normalizer: NewNormalizer(cfg.Source, cfg.BaseURL, cfg.AnnualYieldRate),
		baseURL:    cfg.BaseURL,
		log:        log.ForComponent("scraper"),
	}
}

// Scrape walks page numbers 1..pages in order and accumulates every
// normalized record into one result
func (s *Scraper) Scrape(city string, op Operation, pages int) *ScrapeResult {
	result := &ScrapeResult{
		City:           city,
		Operation:      op,
		PagesRequested: pages,
		CardsSkipped:   make(map[SkipReason]int),
	}

	for page := 1; page <= pages; page++ {
		url := ListingURL(s.baseURL, city, op, page)
		pageLog := s.log.WithFields(logger.Fields{
			"page": page,
			"url":  url,
		})
		pageLog.Debug().Msg("Fetching listing page")

		html, err := s.fetcher.Fetch(url)
		if err != nil {
			result.PagesSkipped++
			pageLog.WithError(err).Error().Msg("Failed to fetch listing page")
			continue
		}

		cards, err := s.extractor.Cards(html)
		if err != nil {
			result.PagesSkipped++
			pageLog.WithError(err).Error().Msg("Failed to parse listing page")
			continue
		}

		result.PagesFetched++
		result.CardsSeen += len(cards)

		found := 0
		for _, card := range cards {
			res := s.normalizeCard(card)
			if res.Record != nil {
				result.Records = append(result.Records, *res.Record)
				found++
				continue
			}
			result.CardsSkipped[res.Skip]++
		}

		pageLog.Info().
			Int("cards", len(cards)).
			Int("records", found).
			Msg("Processed listing page")
	}

	return result
}

// normalizeCard shields the page loop from a panic raised while
// normalizing a single card
func (s *Scraper) normalizeCard(card CardFragments) (res CardResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Interface("panic", r).
				Str("title", card.Title).
				Msg("Recovered from card normalization failure")
			res = CardResult{Skip: SkipParseError}
		}
	}()

	return s.normalizer.Normalize(card)
}
