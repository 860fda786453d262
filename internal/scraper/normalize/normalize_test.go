package normalize

import (
	"testing"

	"github.com/hputnam/oddsboard/internal/pkg/models"
)

func TestRecordResolvesTeams(t *testing.T) {
	rec := Record(models.GameRecord{
		Source: "espn", Season: "2025", Week: 3,
		HomeTeam: "Buffalo Bills", AwayTeam: "miami",
	})
	if rec.HomeTeamID != "BUF" {
		t.Errorf("home id = %q, want BUF", rec.HomeTeamID)
	}
	if rec.AwayTeamID != "MIA" {
		t.Errorf("away id = %q, want MIA", rec.AwayTeamID)
	}
	if rec.HasFlag(models.FlagUnresolvedTeam) {
		t.Error("fully resolved record should not be flagged")
	}
}

func TestRecordKeepsUnresolvedTeam(t *testing.T) {
	rec := Record(models.GameRecord{
		Source: "espn", Season: "2025", Week: 3,
		HomeTeam: "London Monarchs", AwayTeam: "Miami Dolphins",
	})
	if rec.HomeTeam != "London Monarchs" {
		t.Errorf("raw name must pass through verbatim, got %q", rec.HomeTeam)
	}
	if rec.HomeTeamID != "" {
		t.Errorf("unknown team resolved to %q", rec.HomeTeamID)
	}
	if !rec.HasFlag(models.FlagUnresolvedTeam) {
		t.Error("expected unresolved-team flag")
	}
}

func TestRecordOddsDelta(t *testing.T) {
	tests := []struct {
		name       string
		home, away models.Line
		want       int
	}{
		{"home favorite", models.NewLine(-210), models.NewLine(180), 390},
		{"away favorite", models.NewLine(180), models.NewLine(-210), 390},
		{"missing line", models.Line{}, models.NewLine(180), 0},
	}
	for _, tt := range tests {
		rec := Record(models.GameRecord{
			HomeTeam: "Buffalo Bills", AwayTeam: "Miami Dolphins",
			MoneylineHome: tt.home, MoneylineAway: tt.away,
		})
		if rec.OddsDelta != tt.want {
			t.Errorf("%s: delta = %d, want %d", tt.name, rec.OddsDelta, tt.want)
		}
	}
}

func TestRecordFavoriteFromMoneyline(t *testing.T) {
	rec := Record(models.GameRecord{
		HomeTeam: "Buffalo Bills", AwayTeam: "Miami Dolphins",
		MoneylineHome: models.NewLine(-210), MoneylineAway: models.NewLine(180),
	})
	if rec.FavoriteID != "BUF" {
		t.Errorf("favorite = %q, want BUF", rec.FavoriteID)
	}

	// Source-stated favorite takes precedence over inference.
	rec = Record(models.GameRecord{
		HomeTeam: "Buffalo Bills", AwayTeam: "Miami Dolphins",
		Favorite:      "Miami Dolphins",
		MoneylineHome: models.NewLine(-210), MoneylineAway: models.NewLine(180),
	})
	if rec.FavoriteID != "MIA" {
		t.Errorf("favorite = %q, want MIA (source-stated)", rec.FavoriteID)
	}

	// Pick'em has no favorite.
	rec = Record(models.GameRecord{
		HomeTeam: "Buffalo Bills", AwayTeam: "Miami Dolphins",
		MoneylineHome: models.NewLine(-110), MoneylineAway: models.NewLine(-110),
	})
	if rec.FavoriteID != "" {
		t.Errorf("pick'em favorite = %q, want empty", rec.FavoriteID)
	}
}

func TestRecordIsPure(t *testing.T) {
	in := models.GameRecord{
		HomeTeam: "Buffalo Bills", AwayTeam: "London Monarchs",
		MoneylineHome: models.NewLine(-210), MoneylineAway: models.NewLine(180),
	}
	_ = Record(in)
	if in.HomeTeamID != "" || len(in.Flags) != 0 || in.OddsDelta != 0 {
		t.Error("normalize must not mutate its input")
	}
}
