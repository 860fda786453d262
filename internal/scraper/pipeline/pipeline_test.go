package pipeline

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hputnam/oddsboard/internal/pkg/cache"
	"github.com/hputnam/oddsboard/internal/pkg/models"
	"github.com/hputnam/oddsboard/internal/pkg/storage"
	"github.com/hputnam/oddsboard/internal/scraper/sources"
)

// fakeSource serves canned records or a canned error, standing in for a
// frozen upstream page.
type fakeSource struct {
	name     string
	records  []models.GameRecord
	fetchErr error
	parseErr error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(ctx context.Context, season string, week int) (*sources.RawPage, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return &sources.RawPage{Source: f.name, Season: season, Week: week, FetchedAt: time.Unix(0, 0).UTC()}, nil
}

func (f *fakeSource) Parse(page *sources.RawPage) ([]models.GameRecord, error) {
	if f.parseErr != nil {
		return nil, f.parseErr
	}
	return f.records, nil
}

func bufMia(source string, mlHome, mlAway float64) models.GameRecord {
	return models.GameRecord{
		Source: source, Season: "2025", Week: 3,
		HomeTeam: "Buffalo Bills", AwayTeam: "Miami Dolphins",
		MoneylineHome: models.NewLine(mlHome),
		MoneylineAway: models.NewLine(mlAway),
		CapturedAt:    time.Unix(0, 0).UTC(),
	}
}

func newTestPipeline(t *testing.T, srcs ...sources.Source) *Pipeline {
	t.Helper()
	p := New(srcs, storage.New(t.TempDir()), cache.New(8, time.Minute))
	p.now = func() time.Time { return time.Unix(0, 0).UTC() }
	return p
}

func TestRunMergesSources(t *testing.T) {
	p := newTestPipeline(t,
		&fakeSource{name: "espn", records: []models.GameRecord{bufMia("espn", -210, 180)}},
		&fakeSource{name: "draftkings", records: []models.GameRecord{bufMia("draftkings", -205, 175)}},
	)

	result, err := p.Run(context.Background(), "2025", 3)
	require.NoError(t, err)

	assert.Equal(t, "2025", result.Season)
	assert.Equal(t, 3, result.Week)
	assert.Equal(t, []string{"draftkings", "espn"}, result.Sources)
	require.Equal(t, 1, result.TotalGames)

	game := result.Games[0]
	assert.Equal(t, "2025|3|BUF|MIA", game.Key.String())
	assert.Equal(t, models.TeamID("BUF"), game.Favorite)
	assert.Len(t, game.Records, 2)

	assert.Equal(t, 2, result.Summary.TotalSources)
	assert.ElementsMatch(t, []string{"espn", "draftkings"}, result.Summary.SourcesWithData)
	assert.Equal(t, map[string]int{"espn": 1, "draftkings": 1}, result.Summary.GameCounts)
}

func TestRunSourceIsolation(t *testing.T) {
	failing := &fakeSource{
		name:     "draftkings",
		fetchErr: &sources.FetchError{Source: "draftkings", Kind: sources.FetchRenderTimeout},
	}
	p := newTestPipeline(t,
		&fakeSource{name: "espn", records: []models.GameRecord{bufMia("espn", -210, 180)}},
		failing,
	)

	result, err := p.Run(context.Background(), "2025", 3)
	require.NoError(t, err)

	// Surviving source still produces games.
	require.Equal(t, 1, result.TotalGames)
	game := result.Games[0]
	assert.Contains(t, game.Records, "espn")

	// The failed source is explicitly absent, not defaulted.
	_, present := game.Records["draftkings"]
	assert.False(t, present)
	assert.Contains(t, result.Summary.SourceErrors, "draftkings")
	assert.Equal(t, []string{"espn"}, result.Summary.SourcesWithData)
}

func TestRunParseFailureDegradesToEmpty(t *testing.T) {
	p := newTestPipeline(t,
		&fakeSource{name: "espn", records: []models.GameRecord{bufMia("espn", -210, 180)}},
		&fakeSource{
			name:     "draftkings",
			parseErr: &sources.ParseError{Source: "draftkings", Kind: sources.ParseSchemaMismatch},
		},
	)

	result, err := p.Run(context.Background(), "2025", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalGames)
	assert.Contains(t, result.Summary.SourceErrors, "draftkings")
}

func TestRunAllSourcesFailed(t *testing.T) {
	p := newTestPipeline(t,
		&fakeSource{name: "espn", fetchErr: &sources.FetchError{Source: "espn", Kind: sources.FetchTimeout}},
		&fakeSource{name: "draftkings", fetchErr: &sources.FetchError{Source: "draftkings", Kind: sources.FetchNetwork}},
	)

	result, err := p.Run(context.Background(), "2025", 3)
	require.ErrorIs(t, err, ErrAllSourcesFailed)

	// The artifact still distinguishes "all failed" from "bye week".
	assert.Zero(t, result.TotalGames)
	assert.Len(t, result.Summary.SourceErrors, 2)
	assert.Empty(t, result.Summary.SourcesWithData)
}

func TestRunDeterminism(t *testing.T) {
	build := func() *Pipeline {
		return newTestPipeline(t,
			&fakeSource{name: "espn", records: []models.GameRecord{
				bufMia("espn", -210, 180),
				{
					Source: "espn", Season: "2025", Week: 3,
					HomeTeam: "Dallas Cowboys", AwayTeam: "New York Giants",
					MoneylineHome: models.NewLine(-150), MoneylineAway: models.NewLine(130),
					CapturedAt: time.Unix(0, 0).UTC(),
				},
			}},
			&fakeSource{name: "draftkings", records: []models.GameRecord{bufMia("draftkings", -205, 175)}},
		)
	}

	first, err := build().Run(context.Background(), "2025", 3)
	require.NoError(t, err)
	second, err := build().Run(context.Background(), "2025", 3)
	require.NoError(t, err)

	// Frozen inputs must yield byte-identical JSON (timestamps frozen too).
	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestRunWritesSinks(t *testing.T) {
	dir := t.TempDir()
	store := storage.New(dir)
	resultCache := cache.New(8, time.Minute)

	p := New([]sources.Source{
		&fakeSource{name: "espn", records: []models.GameRecord{bufMia("espn", -210, 180)}},
	}, store, resultCache)
	p.now = func() time.Time { return time.Unix(0, 0).UTC() }

	result, err := p.Run(context.Background(), "2025", 3)
	require.NoError(t, err)

	key := storage.ResultKey("2025", 3, result.Sources)
	stored, err := store.ReadResult(key)
	require.NoError(t, err)
	assert.Equal(t, result.TotalGames, stored.TotalGames)

	cached, ok := resultCache.Get(key)
	require.True(t, ok)
	assert.Same(t, result, cached)
}
