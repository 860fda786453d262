// Package normalize reconciles team-name spelling variants and computes the
// derived per-record fields. It is pure: anomalies degrade to flags on the
// record, never to errors, and no record is ever dropped.
package normalize

import (
	"github.com/hputnam/oddsboard/internal/pkg/models"
)

// Record returns a normalized copy of rec. Team names are mapped through the
// alias table; names outside the known franchise set pass through verbatim
// and flag the record unresolved. The favorite and the sign-normalized odds
// delta are derived from whichever fields the source yielded.
func Record(rec models.GameRecord) models.GameRecord {
	if rec.HomeTeam != "" {
		if id, ok := models.ResolveTeam(rec.HomeTeam); ok {
			rec.HomeTeamID = id
		} else {
			rec.AddFlag(models.FlagUnresolvedTeam)
		}
	}
	if rec.AwayTeam != "" {
		if id, ok := models.ResolveTeam(rec.AwayTeam); ok {
			rec.AwayTeamID = id
		} else {
			rec.AddFlag(models.FlagUnresolvedTeam)
		}
	}

	if rec.Favorite != "" {
		if id, ok := models.ResolveTeam(rec.Favorite); ok {
			rec.FavoriteID = id
		}
	}
	if rec.FavoriteID == "" {
		rec.FavoriteID = favoriteFromMoneyline(rec)
	}

	rec.OddsDelta = models.OddsDelta(rec.MoneylineHome, rec.MoneylineAway)
	return rec
}

// Records normalizes a batch, preserving order.
func Records(recs []models.GameRecord) []models.GameRecord {
	out := make([]models.GameRecord, len(recs))
	for i, rec := range recs {
		out[i] = Record(rec)
	}
	return out
}

// favoriteFromMoneyline infers the favorite from the moneyline signs: the
// more negative line is the favorite. A pick'em (equal lines) has none.
func favoriteFromMoneyline(rec models.GameRecord) models.TeamID {
	if !rec.MoneylineHome.OK || !rec.MoneylineAway.OK {
		return ""
	}
	switch {
	case rec.MoneylineHome.Value < rec.MoneylineAway.Value:
		return rec.HomeTeamID
	case rec.MoneylineAway.Value < rec.MoneylineHome.Value:
		return rec.AwayTeamID
	}
	return ""
}
