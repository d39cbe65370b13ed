package scraper

import (
	"time"

	"github.com/capitalsuccesshub-maker/property-scout/config"
	"github.com/capitalsuccesshub-maker/property-scout/helpers"
	"github.com/capitalsuccesshub-maker/property-scout/logger"
	"github.com/capitalsuccesshub-maker/property-scout/pkg/errors"
	"github.com/capitalsuccesshub-maker/property-scout/services/cache"
)

// fetchGuardKey marks the site as rate limited in the cache. While the
// key exists no further requests are sent.
const fetchGuardKey = "idealista_rate_limited"

var _ Fetcher = (*StaticFetcher)(nil)

// StaticFetcher downloads pages with plain HTTP requests. It renders
// nothing, so it only sees markup already present in the response
// body. The browser fetcher is the default against the live site;
// this one serves fixture servers and markup that needs no scripting.
type StaticFetcher struct {
	userAgent string
	cacheSvc  cache.CacheService
	blockTime time.Duration
	log       *logger.Logger
}

// NewStaticFetcher creates a static fetcher. A nil cache service
// disables the rate-limit guard.
func NewStaticFetcher(cfg *config.Config, cacheSvc cache.CacheService, log *logger.Logger) *StaticFetcher {
	return &StaticFetcher{
		userAgent: cfg.UserAgent,
		cacheSvc:  cacheSvc,
		blockTime: cfg.BlockTime,
		log:       log.ForComponent("static"),
	}
}

// Fetch downloads one page. After a rate-limited response the guard
// key blocks every further fetch for the block duration.
func (f *StaticFetcher) Fetch(url string) (string, error) {
	if f.cacheSvc != nil {
		if _, err := f.cacheSvc.Get(fetchGuardKey); err == nil {
			return "", errors.NewRateLimit("fetch", f.blockTime)
		}
	}

	body, err := helpers.FetchPage(url, f.userAgent)
	if err != nil {
		if f.cacheSvc != nil && helpers.IsRateLimited(err) {
			if guardErr := f.setGuard(); guardErr != nil {
				f.log.WithError(guardErr).Warn().Msg("Fetch guard not set")
			}
		}
		return "", err
	}

	return string(body), nil
}

// setGuard marks the site as rate limited for the block window. A
// guard that cannot be written only costs the local block; the fetch
// error itself still propagates.
func (f *StaticFetcher) setGuard() error {
	if err := f.cacheSvc.Set(fetchGuardKey, cache.BlockValue(f.blockTime), f.blockTime); err != nil {
		return errors.NewCache("guard", "failed to set fetch guard", err)
	}
	return nil
}

// Close is a no-op; the fetcher holds no resources
func (f *StaticFetcher) Close() error {
	return nil
}
