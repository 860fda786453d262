// Package storage persists ScrapeResults as flat JSON documents, one per
// (season, week, source set). Writes are atomic at the file level so a
// concurrent reader never observes a partially-written document.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hputnam/oddsboard/internal/pkg/models"
)

// ErrNotFound is returned when no document exists for the requested key.
var ErrNotFound = errors.New("storage: result not found")

// ResultKey derives the deterministic document name for a scrape:
// "odds_<season>_week<W>_<sorted-source-set>". The same key addresses the
// in-process cache, so cache and disk always agree on identity.
func ResultKey(season string, week int, sources []string) string {
	set := append([]string(nil), sources...)
	sort.Strings(set)
	return fmt.Sprintf("odds_%s_week%d_%s", season, week, strings.Join(set, "-"))
}

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the on-disk location for a result key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// WriteResult serializes the result to its derived path. The document is
// written to a temp file in the same directory and renamed into place.
func (s *Store) WriteResult(res *models.ScrapeResult) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}

	key := ResultKey(res.Season, res.Week, res.Sources)
	path := s.Path(key)

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("rename into place: %w", err)
	}

	slog.Info("Saved scrape result", "path", path, "games", res.TotalGames)
	return path, nil
}

// ReadResult loads one document by key.
func (s *Store) ReadResult(key string) (*models.ScrapeResult, error) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read result: %w", err)
	}

	var res models.ScrapeResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", key, err)
	}
	// Winners are entered by hand in the stored files; derived fields are
	// recomputed on every load rather than trusted from disk.
	res.Settle()
	return &res, nil
}

// ListSeason loads every stored week for a season, sorted by week, across
// all source sets. When a week was scraped with several source sets the
// variants are all returned.
func (s *Store) ListSeason(season string) ([]*models.ScrapeResult, error) {
	pattern := filepath.Join(s.dir, fmt.Sprintf("odds_%s_week*.json", season))
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob season files: %w", err)
	}

	var results []*models.ScrapeResult
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			slog.Warn("Skipping unreadable result file", "path", p, "error", err)
			continue
		}
		var res models.ScrapeResult
		if err := json.Unmarshal(data, &res); err != nil {
			slog.Warn("Skipping malformed result file", "path", p, "error", err)
			continue
		}
		res.Settle()
		results = append(results, &res)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Week != results[j].Week {
			return results[i].Week < results[j].Week
		}
		return len(results[i].Sources) > len(results[j].Sources)
	})
	return results, nil
}
