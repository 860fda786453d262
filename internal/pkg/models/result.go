package models

import "time"

// UnifiedGame is one matchup merged across sources. Per-source records are
// kept verbatim: when sources disagree, both values survive and the
// disagreement is flagged rather than collapsed to a "winning" value.
type UnifiedGame struct {
	Key     MatchupKey            `json:"key"`
	Matchup string                `json:"matchup"`
	Records map[string]GameRecord `json:"records"`

	// Favorite is the consensus favorite, set only when every contributing
	// source names the same team. On disagreement it stays empty and
	// MergeAmbiguity is set.
	Favorite         TeamID            `json:"favorite,omitempty"`
	FavoriteBySource map[string]TeamID `json:"favorite_by_source,omitempty"`
	MergeAmbiguity   bool              `json:"merge_ambiguity,omitempty"`

	// Winner is filled in after the fact (manual entry in the stored files);
	// FavoriteWon is derived from it and only meaningful when Winner is set.
	Winner      TeamID `json:"winner,omitempty"`
	FavoriteWon bool   `json:"favorite_won"`
}

// SettleFavorite recomputes FavoriteWon from the manually-entered Winner.
// With no winner, or no consensus favorite to judge, it is false.
func (g *UnifiedGame) SettleFavorite() {
	g.FavoriteWon = g.Winner != "" && g.Favorite != "" && g.Winner == g.Favorite
}

// Summary describes what each source contributed to a scrape, including
// per-source failures, so a consumer can tell a bye week (zero games, no
// errors) from a total scrape failure.
type Summary struct {
	TotalSources    int               `json:"total_sources"`
	SourcesWithData []string          `json:"sources_with_data"`
	TotalGames      int               `json:"total_games"`
	GameCounts      map[string]int    `json:"game_counts"`
	SourceErrors    map[string]string `json:"source_errors,omitempty"`
}

// ScrapeResult is the top-level artifact of one pipeline run. It is created
// fresh per invocation and never mutated once written; a later scrape of the
// same week supersedes it.
type ScrapeResult struct {
	Season     string        `json:"season"`
	Week       int           `json:"week"`
	ScrapedAt  time.Time     `json:"scraped_at"`
	Sources    []string      `json:"sources"`
	Games      []UnifiedGame `json:"games"`
	TotalGames int           `json:"total_games"`
	Summary    Summary       `json:"summary"`
}

// Settle recomputes every game's derived fields. Called after loading a
// stored document, so hand-edited winners take effect on the next read.
func (r *ScrapeResult) Settle() {
	for i := range r.Games {
		r.Games[i].SettleFavorite()
	}
}
