// Package web serves the stored odds documents to the browser frontend. It
// is a read-only consumer of the pipeline's output: every response comes
// from the data directory through the result cache.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/hputnam/oddsboard/internal/pkg/cache"
	"github.com/hputnam/oddsboard/internal/pkg/config"
	"github.com/hputnam/oddsboard/internal/pkg/storage"
)

type Server struct {
	cfg   *config.Config
	r     *mux.Router
	cors  *cors.Cors
	store *storage.Store
	cache *cache.ResultCache
}

func New(cfg *config.Config, store *storage.Store, resultCache *cache.ResultCache) *Server {
	s := &Server{
		cfg:   cfg,
		store: store,
		cache: resultCache,
		cors: cors.New(cors.Options{
			AllowedOrigins: cfg.Web.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}),
	}
	s.init()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.cors.Handler(s.r).ServeHTTP(w, r)
}

func (s *Server) init() {
	s.r = mux.NewRouter()
	s.r.HandleFunc("/healthz", s.healthHandler).Methods("GET")
	s.r.HandleFunc("/api/seasons", s.seasonsHandler).Methods("GET")
	s.r.HandleFunc("/api/season/{season}", s.seasonHandler).Methods("GET")
	s.r.HandleFunc("/api/odds/{season}/{week}", s.oddsHandler).Methods("GET")
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) seasonsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"seasons": s.cfg.Web.Seasons})
}

// seasonHandler returns every stored week for a season.
func (s *Server) seasonHandler(w http.ResponseWriter, r *http.Request) {
	season := mux.Vars(r)["season"]
	if !s.knownSeason(season) {
		writeError(w, http.StatusNotFound, "season "+season+" not supported")
		return
	}

	results, err := s.store.ListSeason(season)
	if err != nil {
		slog.Error("Failed to list season", "season", season, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"season": season,
		"weeks":  results,
	})
}

// oddsHandler returns one week's ScrapeResult for the configured source set,
// reading through the cache.
func (s *Server) oddsHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	season := vars["season"]
	week, err := strconv.Atoi(vars["week"])
	if err != nil || week <= 0 {
		writeError(w, http.StatusBadRequest, "invalid week number")
		return
	}
	if !s.knownSeason(season) {
		writeError(w, http.StatusNotFound, "season "+season+" not supported")
		return
	}

	key := storage.ResultKey(season, week, s.cfg.Scraper.EnabledSources)
	if res, ok := s.cache.Get(key); ok {
		writeJSON(w, http.StatusOK, res)
		return
	}

	res, err := s.store.ReadResult(key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no odds stored for this week")
			return
		}
		slog.Error("Failed to read result", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.cache.Put(key, res)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) knownSeason(season string) bool {
	if len(s.cfg.Web.Seasons) == 0 {
		return true
	}
	for _, known := range s.cfg.Web.Seasons {
		if season == known {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
