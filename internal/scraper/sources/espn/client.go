package espn

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/hputnam/oddsboard/internal/pkg/retry"
	"github.com/hputnam/oddsboard/internal/scraper/sources"
)

// Client fetches ESPN betting-story pages. ESPN pages are static HTML, so a
// plain HTTP client is enough; transient failures are retried with linear
// backoff through the shared retry wrapper.
type Client struct {
	http  *resty.Client
	retry retry.Config
}

func NewClient(userAgent string, timeout time.Duration, retryCfg retry.Config) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	http := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)
	return &Client{http: http, retry: retryCfg}
}

// buildURL expands a season URL pattern with its week and story ID.
func buildURL(pattern, storyID string, week int) string {
	url := strings.ReplaceAll(pattern, "{story_id}", storyID)
	url = strings.ReplaceAll(url, "{week}", fmt.Sprintf("%d", week))
	return url
}

// Get fetches a page body, classifying failures into the fetch taxonomy.
// 4xx fails immediately; timeouts, network errors and 5xx are retried.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := retry.Do(ctx, c.retry, sources.RetryableFetch, func(ctx context.Context) error {
		resp, err := c.http.R().SetContext(ctx).Get(url)
		if err != nil {
			return sources.ClassifyFetchErr(SourceName, err)
		}
		if resp.StatusCode() >= 400 {
			return &sources.FetchError{
				Source: SourceName,
				Kind:   sources.FetchHTTPStatus,
				Status: resp.StatusCode(),
				Err:    fmt.Errorf("GET %s", url),
			}
		}
		body = resp.Body()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}
