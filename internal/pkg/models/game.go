package models

import (
	"fmt"
	"strings"
	"time"
)

// Record flags. A flag degrades a record instead of dropping it: anomalies
// stay visible in the output artifact.
const (
	FlagUnresolvedTeam = "unresolved-team"
	FlagPartialOdds    = "partial-odds"
)

// GameRecord holds one game's facts as reported by a single source.
type GameRecord struct {
	Source string `json:"source"`
	Season string `json:"season"`
	Week   int    `json:"week"`

	// Raw team names as they appeared on the page.
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`

	// Canonical franchise IDs, set by the normalizer. Empty when the raw
	// name could not be resolved (the record is then flagged, not dropped).
	HomeTeamID TeamID `json:"home_team_id,omitempty"`
	AwayTeamID TeamID `json:"away_team_id,omitempty"`

	MoneylineHome Line `json:"moneyline_home"`
	MoneylineAway Line `json:"moneyline_away"`
	SpreadHome    Line `json:"spread_home"`
	TotalPoints   Line `json:"total_points"`

	// FPIPercent is the favorite's model win probability, when the source
	// publishes one (ESPN does, sportsbooks don't).
	FPIPercent Line `json:"fpi_percentage"`

	// Favorite as stated by the source itself, raw and resolved.
	Favorite   string `json:"favorite,omitempty"`
	FavoriteID TeamID `json:"favorite_id,omitempty"`

	// OddsDelta is the sign-normalized moneyline gap, set by the normalizer.
	OddsDelta int `json:"odds_difference"`

	CapturedAt time.Time `json:"captured_at"`
	Flags      []string  `json:"flags,omitempty"`
}

// AddFlag appends a flag once.
func (r *GameRecord) AddFlag(flag string) {
	for _, f := range r.Flags {
		if f == flag {
			return
		}
	}
	r.Flags = append(r.Flags, flag)
}

// HasFlag reports whether the record carries the given flag.
func (r *GameRecord) HasFlag(flag string) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Matchup renders the conventional "away @ home" string.
func (r *GameRecord) Matchup() string {
	return fmt.Sprintf("%s @ %s", r.AwayTeam, r.HomeTeam)
}

// MatchupKey identifies one game across sources.
type MatchupKey struct {
	Season string `json:"season"`
	Week   int    `json:"week"`
	Home   string `json:"home"`
	Away   string `json:"away"`
}

// KeyFor builds the matchup key for a record. Canonical IDs are preferred;
// unresolved names fall back to a normalized form of the raw string so the
// record still groups with an identically-spelled counterpart.
func KeyFor(r GameRecord) MatchupKey {
	home := string(r.HomeTeamID)
	if home == "" {
		home = normalizeKeyPart(r.HomeTeam)
	}
	away := string(r.AwayTeamID)
	if away == "" {
		away = normalizeKeyPart(r.AwayTeam)
	}
	return MatchupKey{Season: r.Season, Week: r.Week, Home: home, Away: away}
}

// String renders a stable "season|week|home|away" form used for grouping
// and as the cache key component.
func (k MatchupKey) String() string {
	return fmt.Sprintf("%s|%d|%s|%s", k.Season, k.Week, k.Home, k.Away)
}

func normalizeKeyPart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "|", " ")
	return strings.Join(strings.Fields(s), " ")
}
