package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/capitalsuccesshub-maker/property-scout/pkg/errors"
)

// Extractor locates listing cards in rendered HTML and pulls out their
// raw text fragments. It does no interpretation; that belongs to the
// Normalizer.
type Extractor struct {
	selectors Selectors
}

// NewExtractor creates an extractor for the given selectors
func NewExtractor(selectors Selectors) *Extractor {
	return &Extractor{selectors: selectors}
}

// Cards returns the raw fragments of every card found in the page, in
// document order
func (e *Extractor) Cards(html string) ([]CardFragments, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.NewParsing("extract", "failed to parse listing page", err)
	}

	var cards []CardFragments
	doc.Find(e.selectors.Card).Each(func(_ int, s *goquery.Selection) {
		cards = append(cards, e.fragments(s))
	})

	return cards, nil
}

// fragments pulls the text fragments of one card
func (e *Extractor) fragments(s *goquery.Selection) CardFragments {
	var card CardFragments

	link := s.Find(e.selectors.TitleLink).First()
	card.Title = strings.TrimSpace(link.Text())
	if href, exists := link.Attr("href"); exists {
		card.Href = strings.TrimSpace(href)
	}

	card.PriceText = strings.TrimSpace(s.Find(e.selectors.Price).First().Text())

	s.Find(e.selectors.Detail).Each(func(_ int, d *goquery.Selection) {
		if text := strings.TrimSpace(d.Text()); text != "" {
			card.Details = append(card.Details, text)
		}
	})

	card.Description = strings.TrimSpace(s.Find(e.selectors.Description).First().Text())

	return card
}
