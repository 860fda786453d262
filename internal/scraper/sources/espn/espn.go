// Package espn scrapes NFL moneylines and FPI picks from ESPN's weekly
// betting stories.
package espn

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hputnam/oddsboard/internal/pkg/config"
	"github.com/hputnam/oddsboard/internal/pkg/models"
	"github.com/hputnam/oddsboard/internal/pkg/retry"
	"github.com/hputnam/oddsboard/internal/scraper/sources"
)

const SourceName = "espn"

func init() {
	sources.Register(SourceName, func(cfg *config.Config) sources.Source {
		return NewSource(cfg)
	})
}

type Source struct {
	client   *Client
	patterns map[string]string
	storyIDs map[string]map[int]string
}

func NewSource(cfg *config.Config) *Source {
	sc := cfg.Scraper
	return &Source{
		client: NewClient(sc.UserAgent, sc.Timeout, retry.Config{
			Attempts: sc.RetryAttempts,
			Delay:    sc.RetryDelay,
		}),
		patterns: sc.ESPN.URLPatterns,
		storyIDs: sc.ESPN.StoryIDs,
	}
}

func (s *Source) Name() string { return SourceName }

// Fetch retrieves the betting story for a week. The URL shape and story ID
// are season-specific and come from config; a week with no configured story
// ID cannot be fetched.
func (s *Source) Fetch(ctx context.Context, season string, week int) (*sources.RawPage, error) {
	pattern, ok := s.patterns[season]
	if !ok {
		return nil, &sources.FetchError{
			Source: SourceName,
			Kind:   sources.FetchBadConfig,
			Err:    fmt.Errorf("no URL pattern configured for season %s", season),
		}
	}
	storyID, ok := s.storyIDs[season][week]
	if !ok {
		return nil, &sources.FetchError{
			Source: SourceName,
			Kind:   sources.FetchBadConfig,
			Err:    fmt.Errorf("no story ID configured for season %s week %d", season, week),
		}
	}

	url := buildURL(pattern, storyID, week)
	slog.Info("Fetching ESPN story", "season", season, "week", week, "url", url)

	body, err := s.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return &sources.RawPage{
		Source:    SourceName,
		Season:    season,
		Week:      week,
		URL:       url,
		Body:      body,
		FetchedAt: time.Now().UTC(),
	}, nil
}

func (s *Source) Parse(page *sources.RawPage) ([]models.GameRecord, error) {
	records, err := parsePage(page)
	if err != nil {
		return nil, err
	}
	slog.Info("Parsed ESPN story", "week", page.Week, "games", len(records))
	return records, nil
}
