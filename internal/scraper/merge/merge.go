// Package merge combines per-source record sequences into unified games.
// Grouping is exact on the matchup key, with a string-similarity fallback
// for records whose team names resolved differently across sources. No
// source is authoritative: disagreeing values are kept side by side.
package merge

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/hputnam/oddsboard/internal/pkg/models"
)

// fuzzyThreshold is the Jaro-Winkler similarity both team names of a pair
// must clear before an inexact record joins an existing group.
const fuzzyThreshold = 0.9

type group struct {
	key     models.MatchupKey
	records []models.GameRecord
}

// Games merges normalized records from any number of sources for one
// (season, week). The output is sorted by matchup key and independent of the
// order sources are supplied in: source names are iterated sorted, and group
// identity comes from record content only.
func Games(recordsBySource map[string][]models.GameRecord) []models.UnifiedGame {
	names := make([]string, 0, len(recordsBySource))
	for name := range recordsBySource {
		names = append(names, name)
	}
	sort.Strings(names)

	var groups []*group
	byKey := make(map[string]*group)

	for _, name := range names {
		for _, rec := range recordsBySource[name] {
			key := models.KeyFor(rec)
			g, ok := byKey[key.String()]
			if !ok {
				g = fuzzyMatch(groups, rec)
			}
			if g == nil {
				g = &group{key: key}
				groups = append(groups, g)
				byKey[key.String()] = g
			}
			g.records = append(g.records, rec)
		}
	}

	games := make([]models.UnifiedGame, 0, len(groups))
	for _, g := range groups {
		games = append(games, unify(g))
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].Key.String() < games[j].Key.String()
	})
	return games
}

// fuzzyMatch finds an existing group whose team-name pair is close enough to
// the record's. Used only when the exact key missed, which happens when one
// source's spelling failed to resolve.
func fuzzyMatch(groups []*group, rec models.GameRecord) *group {
	for _, g := range groups {
		if g.key.Season != rec.Season || g.key.Week != rec.Week {
			continue
		}
		other := g.records[0]
		if similar(rec.HomeTeam, other.HomeTeam) && similar(rec.AwayTeam, other.AwayTeam) {
			return g
		}
	}
	return nil
}

func similar(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return matchr.JaroWinkler(a, b, false) >= fuzzyThreshold
}

// unify folds a group's records into one UnifiedGame, keeping one record per
// source and deriving the consensus favorite. Sources that disagree on the
// favorite leave the consensus empty and mark the game ambiguous.
func unify(g *group) models.UnifiedGame {
	game := models.UnifiedGame{
		Key:              g.key,
		Matchup:          g.records[0].Matchup(),
		Records:          make(map[string]models.GameRecord, len(g.records)),
		FavoriteBySource: make(map[string]models.TeamID),
	}

	for _, rec := range g.records {
		game.Records[rec.Source] = rec
		if rec.FavoriteID != "" {
			game.FavoriteBySource[rec.Source] = rec.FavoriteID
		}
	}

	var consensus models.TeamID
	agreed := true
	for _, fav := range game.FavoriteBySource {
		if consensus == "" {
			consensus = fav
			continue
		}
		if fav != consensus {
			agreed = false
			break
		}
	}
	if agreed {
		game.Favorite = consensus
	} else {
		game.MergeAmbiguity = true
	}

	if len(game.FavoriteBySource) == 0 {
		game.FavoriteBySource = nil
	}
	return game
}
