// Package pipeline runs one scrape end to end: fetch every selected source,
// parse, normalize, merge, and hand the unified result to the sinks. Sources
// are isolated from each other; one source failing never aborts the rest.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/hputnam/oddsboard/internal/pkg/cache"
	"github.com/hputnam/oddsboard/internal/pkg/models"
	"github.com/hputnam/oddsboard/internal/pkg/storage"
	"github.com/hputnam/oddsboard/internal/scraper/merge"
	"github.com/hputnam/oddsboard/internal/scraper/normalize"
	"github.com/hputnam/oddsboard/internal/scraper/sources"
)

// ErrAllSourcesFailed is returned when no source yielded any records for the
// requested week. Per-source failures are recorded in the result summary.
var ErrAllSourcesFailed = errors.New("pipeline: all sources failed")

type Pipeline struct {
	sources []sources.Source
	store   *storage.Store
	cache   *cache.ResultCache
	// now is swapped in tests to freeze the scrape timestamp.
	now func() time.Time
}

// New builds a pipeline over the given sources. store and cache sinks are
// each optional; a nil sink is skipped.
func New(srcs []sources.Source, store *storage.Store, resultCache *cache.ResultCache) *Pipeline {
	return &Pipeline{
		sources: srcs,
		store:   store,
		cache:   resultCache,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

type sourceOutcome struct {
	name    string
	records []models.GameRecord
	err     error
}

// Run executes one scrape for (season, week). Fetches are dispatched
// concurrently since sources share no state; results are assembled only
// after every fetch has completed or failed. Cancelling ctx abandons
// in-flight fetches; anything already written stays written.
func (p *Pipeline) Run(ctx context.Context, season string, week int) (*models.ScrapeResult, error) {
	outcomes := p.collect(ctx, season, week)

	recordsBySource := make(map[string][]models.GameRecord)
	sourceErrors := make(map[string]string)
	var withData []string

	for _, out := range outcomes {
		if out.err != nil {
			slog.Warn("Source failed, continuing without it",
				"source", out.name, "season", season, "week", week, "error", out.err)
			sourceErrors[out.name] = out.err.Error()
			continue
		}
		recordsBySource[out.name] = normalize.Records(out.records)
		if len(out.records) > 0 {
			withData = append(withData, out.name)
		}
	}
	sort.Strings(withData)

	games := merge.Games(recordsBySource)

	result := &models.ScrapeResult{
		Season:     season,
		Week:       week,
		ScrapedAt:  p.now(),
		Sources:    p.sourceNames(),
		Games:      games,
		TotalGames: len(games),
		Summary: models.Summary{
			TotalSources:    len(p.sources),
			SourcesWithData: withData,
			TotalGames:      len(games),
			GameCounts:      gameCounts(recordsBySource),
		},
	}
	if len(sourceErrors) > 0 {
		result.Summary.SourceErrors = sourceErrors
	}
	if withData == nil {
		result.Summary.SourcesWithData = []string{}
	}

	if len(recordsBySource) == 0 {
		return result, ErrAllSourcesFailed
	}

	if err := p.sink(result); err != nil {
		return result, err
	}
	return result, nil
}

// collect fetches and parses every source concurrently. Fetch and parse
// errors surface as per-source outcomes, never as a shared failure.
func (p *Pipeline) collect(ctx context.Context, season string, week int) []sourceOutcome {
	outcomes := make([]sourceOutcome, len(p.sources))
	var wg sync.WaitGroup

	for i, src := range p.sources {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()
			outcomes[i] = sourceOutcome{name: src.Name()}

			page, err := src.Fetch(ctx, season, week)
			if err != nil {
				outcomes[i].err = err
				return
			}
			records, err := src.Parse(page)
			if err != nil {
				// Parse failure degrades to an empty contribution.
				outcomes[i].err = err
				return
			}
			outcomes[i].records = records
		}(i, src)
	}

	wg.Wait()
	return outcomes
}

func (p *Pipeline) sink(result *models.ScrapeResult) error {
	if p.store != nil {
		if _, err := p.store.WriteResult(result); err != nil {
			return err
		}
	}
	if p.cache != nil {
		key := storage.ResultKey(result.Season, result.Week, result.Sources)
		p.cache.Put(key, result)
	}
	return nil
}

func (p *Pipeline) sourceNames() []string {
	names := make([]string, len(p.sources))
	for i, src := range p.sources {
		names[i] = src.Name()
	}
	sort.Strings(names)
	return names
}

func gameCounts(recordsBySource map[string][]models.GameRecord) map[string]int {
	counts := make(map[string]int, len(recordsBySource))
	for name, recs := range recordsBySource {
		counts[name] = len(recs)
	}
	return counts
}
