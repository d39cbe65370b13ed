package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/capitalsuccesshub-maker/property-scout/config"
	"github.com/capitalsuccesshub-maker/property-scout/logger"
	"github.com/capitalsuccesshub-maker/property-scout/pkg/errors"
)

var _ Fetcher = (*BrowserFetcher)(nil)

// BrowserFetcher renders pages in one headless Chrome instance shared
// across the whole run. Each Fetch navigates the same tab, so calls
// must stay sequential.
type BrowserFetcher struct {
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc

	navTimeout  time.Duration
	settleDelay time.Duration
	log         *logger.Logger
}

// NewBrowserFetcher launches headless Chrome with the configured user
// agent. The caller owns the returned fetcher and must Close it on
// every exit path.
func NewBrowserFetcher(cfg *config.Config, log *logger.Logger) (*BrowserFetcher, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1440, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// Silence chromedp's internal logging; failures surface as errors
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))

	// Start the browser eagerly so a missing Chrome binary fails the
	// run before any page work begins
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, errors.NewNavigation("startup", "failed to start headless browser", err)
	}

	return &BrowserFetcher{
		browserCtx:    browserCtx,
		cancelBrowser: cancelBrowser,
		cancelAlloc:   cancelAlloc,
		navTimeout:    cfg.NavTimeout,
		settleDelay:   cfg.SettleDelay,
		log:           log.ForComponent("browser"),
	}, nil
}

// Fetch navigates to url, waits for the settle delay and returns the
// rendered document. The timeout budget covers navigation plus the
// settle delay.
func (f *BrowserFetcher) Fetch(url string) (string, error) {
	ctx, cancel := context.WithTimeout(f.browserCtx, f.navTimeout+f.settleDelay)
	defer cancel()

	f.log.Debug().Str("url", url).Msg("Navigating")

	var html string
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.Sleep(f.settleDelay),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", errors.NewNavigation("fetch", fmt.Sprintf("failed to render %s", url), err)
	}

	return html, nil
}

// Close shuts the browser down
func (f *BrowserFetcher) Close() error {
	f.cancelBrowser()
	f.cancelAlloc()
	return nil
}
