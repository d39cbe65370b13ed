package scraper

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/capitalsuccesshub-maker/property-scout/helpers"
)

// descriptionLimit caps the stored description length in runes
const descriptionLimit = 500

// addressSeparator splits a card title into place segments; the last
// segment is the most specific locality
const addressSeparator = " - "

var (
	nonDigits = regexp.MustCompile(`\D`)
	digitRun  = regexp.MustCompile(`\d+`)
)

// Detail fragment keywords, matched case-insensitively against the
// whole fragment. A fragment matching none, or carrying no digits, is
// ignored; when several valued fragments match the same category the
// last one wins.
var (
	roomTokens    = []string{"hab", "ch."}
	surfaceTokens = []string{"m²", "m2"}
	bathTokens    = []string{"ba"}
)

// Normalizer turns raw card fragments into property records
type Normalizer struct {
	source    string
	baseURL   string
	yieldRate float64
}

// NewNormalizer creates a normalizer stamping records with the given
// source label and using yieldRate for the monthly rent estimate
func NewNormalizer(source, baseURL string, yieldRate float64) *Normalizer {
	return &Normalizer{
		source:    source,
		baseURL:   baseURL,
		yieldRate: yieldRate,
	}
}

// Normalize produces a record from one card, or a skip outcome when
// the card has no resolvable title
func (n *Normalizer) Normalize(card CardFragments) CardResult {
	if card.Title == "" {
		return CardResult{Skip: SkipNoTitle}
	}

	record := &PropertyRecord{
		Title:       card.Title,
		Price:       ParsePrice(card.PriceText),
		Address:     helpers.LastSplitPart(card.Title, addressSeparator),
		Description: helpers.TruncateRunes(card.Description, descriptionLimit),
		URL:         n.ResolveURL(card.Href),
		Source:      n.source,
		AddedAt:     time.Now().UTC(),
	}

	record.SurfaceM2, record.Rooms, record.Bathrooms = ClassifyDetails(card.Details)
	record.RentalYieldEstimate = round2(float64(record.Price) * n.yieldRate / 12)
	record.InterestScore = InterestScore(record.Price, record.SurfaceM2, record.Rooms)

	return CardResult{Record: record}
}

// ResolveURL resolves a card link against the site base URL. Absolute
// links pass through, protocol-relative links get https.
func (n *Normalizer) ResolveURL(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return strings.TrimSuffix(n.baseURL, "/") + href
}

// ParsePrice strips everything but digits from a price fragment and
// parses the remainder. A fragment without digits yields 0.
func ParsePrice(text string) int {
	digits := nonDigits.ReplaceAllString(text, "")
	if digits == "" {
		return 0
	}

	price, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return price
}

// FirstNumber returns the first run of digits in the fragment, or 0
// when there is none
func FirstNumber(text string) int {
	match := digitRun.FindString(text)
	if match == "" {
		return 0
	}

	value, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return value
}

// ClassifyDetails sorts detail fragments into surface, rooms and
// bathrooms. Room tokens are checked before the bathroom token so that
// "hab" fragments never land in bathrooms. A fragment without a digit
// run never assigns: "Bajo exterior" hits the bathroom token but
// carries no count and must not reset one parsed earlier.
func ClassifyDetails(details []string) (surface, rooms, bathrooms int) {
	for _, detail := range details {
		if !digitRun.MatchString(detail) {
			continue
		}
		lower := strings.ToLower(detail)
		switch {
		case containsAny(lower, roomTokens):
			rooms = FirstNumber(detail)
		case containsAny(lower, surfaceTokens):
			surface = FirstNumber(detail)
		case containsAny(lower, bathTokens):
			bathrooms = FirstNumber(detail)
		}
	}
	return surface, rooms, bathrooms
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}

// InterestScore rates a listing from 0 to 10 with one decimal of
// precision. The score starts at 5.0 and moves with price per square
// meter, surface and room count.
func InterestScore(price, surface, rooms int) float64 {
	score := 5.0

	if surface > 0 {
		perM2 := float64(price) / float64(surface)
		switch {
		case perM2 < 3000:
			score += 2.0
		case perM2 < 4000:
			score += 1.0
		case perM2 > 6000:
			score -= 1.0
		}
	}

	if surface >= 80 {
		score += 1.0
	}
	if rooms >= 3 {
		score += 1.0
	}

	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}

	return math.Round(score*10) / 10
}

// round2 rounds to two decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
