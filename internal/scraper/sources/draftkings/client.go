package draftkings

import (
	"context"
	"errors"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/hputnam/oddsboard/internal/scraper/sources"
)

const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

// Client renders DraftKings pages with a headless browser. The sportsbook is
// a JavaScript app; the odds markup only exists after hydration, so a plain
// HTTP GET is useless here.
type Client struct {
	headful       bool
	renderTimeout time.Duration
	renderWait    time.Duration
}

func NewClient(headful bool, renderTimeout, renderWait time.Duration) *Client {
	if renderTimeout <= 0 {
		renderTimeout = 60 * time.Second
	}
	if renderWait <= 0 {
		renderWait = 3 * time.Second
	}
	return &Client{headful: headful, renderTimeout: renderTimeout, renderWait: renderWait}
}

// FetchRendered navigates to the URL in a scoped browser session and returns
// the post-hydration HTML. The session is created per fetch and torn down on
// every path, including failure.
func (c *Client) FetchRendered(ctx context.Context, url string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !c.headful),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(browserUserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, c.renderTimeout)
	defer cancelRun()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Odds components hydrate after the document is ready.
		chromedp.Sleep(c.renderWait),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		kind := sources.FetchNetwork
		if errors.Is(err, context.DeadlineExceeded) {
			kind = sources.FetchRenderTimeout
		}
		return nil, &sources.FetchError{Source: SourceName, Kind: kind, Err: err}
	}
	return []byte(html), nil
}
