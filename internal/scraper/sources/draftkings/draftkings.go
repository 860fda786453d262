// Package draftkings scrapes NFL game lines from the DraftKings sportsbook.
// The page is JavaScript-rendered, so fetching goes through a scoped
// headless-browser session rather than a plain HTTP client.
package draftkings

import (
	"context"
	"log/slog"
	"time"

	"github.com/hputnam/oddsboard/internal/pkg/config"
	"github.com/hputnam/oddsboard/internal/pkg/models"
	"github.com/hputnam/oddsboard/internal/pkg/retry"
	"github.com/hputnam/oddsboard/internal/scraper/sources"
)

const SourceName = "draftkings"

func init() {
	sources.Register(SourceName, func(cfg *config.Config) sources.Source {
		return NewSource(cfg)
	})
}

type Source struct {
	client *Client
	url    string
	retry  retry.Config
}

func NewSource(cfg *config.Config) *Source {
	dk := cfg.Scraper.DraftKings
	return &Source{
		client: NewClient(dk.Headful, dk.RenderTimeout, dk.RenderWait),
		url:    dk.URL,
		retry: retry.Config{
			Attempts: cfg.Scraper.RetryAttempts,
			Delay:    cfg.Scraper.RetryDelay,
		},
	}
}

func (s *Source) Name() string { return SourceName }

// Fetch renders the NFL game-lines page. DraftKings always shows the current
// slate, so season and week only tag the captured page; rendering timeouts
// are transient and retried like any other timeout.
func (s *Source) Fetch(ctx context.Context, season string, week int) (*sources.RawPage, error) {
	slog.Info("Fetching DraftKings page", "season", season, "week", week, "url", s.url)

	var body []byte
	err := retry.Do(ctx, s.retry, sources.RetryableFetch, func(ctx context.Context) error {
		var err error
		body, err = s.client.FetchRendered(ctx, s.url)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &sources.RawPage{
		Source:    SourceName,
		Season:    season,
		Week:      week,
		URL:       s.url,
		Body:      body,
		FetchedAt: time.Now().UTC(),
	}, nil
}

func (s *Source) Parse(page *sources.RawPage) ([]models.GameRecord, error) {
	records, err := parsePage(page)
	if err != nil {
		return nil, err
	}
	slog.Info("Parsed DraftKings page", "week", page.Week, "games", len(records))
	return records, nil
}
