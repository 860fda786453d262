// Package sources defines the data-source contract and the registry the
// pipeline selects sources from. Each source lives in its own subpackage and
// registers a factory in init.
package sources

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hputnam/oddsboard/internal/pkg/config"
	"github.com/hputnam/oddsboard/internal/pkg/models"
)

// RawPage is the raw content fetched for one (source, season, week).
// It is immutable once fetched and owned by the Parse call that consumes it.
type RawPage struct {
	Source    string
	Season    string
	Week      int
	URL       string
	Body      []byte
	FetchedAt time.Time
}

// Source is one odds provider. Fetch retrieves raw page content; Parse
// extracts game records from it. Parse failures are non-fatal to the
// pipeline: the source just contributes zero records for the week.
type Source interface {
	Name() string
	Fetch(ctx context.Context, season string, week int) (*RawPage, error)
	Parse(page *RawPage) ([]models.GameRecord, error)
}

type Factory func(cfg *config.Config) Source

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register adds a source factory under a case-insensitive name. Called from
// source package init; duplicate or empty registrations are programmer
// errors and panic.
func Register(name string, f Factory) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		panic("sources: empty name in Register")
	}
	if f == nil {
		panic("sources: nil factory in Register for " + n)
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[n]; exists {
		panic("sources: duplicate registration for " + n)
	}
	registry[n] = f
}

func FactoryByName(name string) (Factory, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[n]
	return f, ok
}

func AvailableNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Select instantiates the named sources, failing on unknown names.
func Select(cfg *config.Config, names []string) ([]Source, error) {
	out := make([]Source, 0, len(names))
	for _, name := range names {
		f, ok := FactoryByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown source %q (available: %v)", name, AvailableNames())
		}
		out = append(out, f(cfg))
	}
	return out, nil
}
