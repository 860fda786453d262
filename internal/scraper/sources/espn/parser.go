package espn

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hputnam/oddsboard/internal/pkg/models"
	"github.com/hputnam/oddsboard/internal/scraper/sources"
)

// ESPN betting stories carry one paragraph per game. A game paragraph holds
// both a "Money Line" section with "Team (+odds)" pairs and an
// "FPI favorite:" line; everything else is editorial copy. This layout is
// brittle by nature, so extraction tolerates partially-populated paragraphs.
var (
	moneylineRe = regexp.MustCompile(`([A-Za-z\d\s']{2,})\s+\(([-+]\d+)\)`)
	favoriteRe  = regexp.MustCompile(`FPI favorite:\s*([A-Za-z\d\s']+)`)
	favoriteBy  = regexp.MustCompile(`^(.*?)\s+by\b`)
	fpiPctRe    = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)
)

// fpiAbbrev maps the single-letter shorthand ESPN uses in FPI favorite lines
// to full franchise names. The letters are not unique across the league;
// this table reflects the teams ESPN actually abbreviates.
var fpiAbbrev = map[string]string{
	"A": "Atlanta Falcons",
	"B": "Baltimore Ravens",
	"C": "Cincinnati Bengals",
	"D": "Dallas Cowboys",
	"E": "Philadelphia Eagles",
	"H": "Houston Texans",
	"J": "Jacksonville Jaguars",
	"K": "Kansas City Chiefs",
	"L": "Los Angeles Chargers",
	"M": "Minnesota Vikings",
	"N": "New Orleans Saints",
	"P": "New England Patriots",
	"R": "Las Vegas Raiders",
	"S": "San Francisco 49ers",
	"V": "Minnesota Vikings",
	"W": "Washington Commanders",
	"4": "San Francisco 49ers",
}

// parsePage extracts game records from a story page. Paragraphs with odds
// but no favorite (or vice versa) still yield a record, flagged partial.
func parsePage(page *sources.RawPage) ([]models.GameRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return nil, &sources.ParseError{Source: SourceName, Kind: sources.ParseSchemaMismatch, Err: err}
	}

	var records []models.GameRecord
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		if !strings.Contains(text, "Money Line") {
			return
		}
		if rec, ok := extractGame(text, page); ok {
			records = append(records, rec)
		}
	})

	if len(records) == 0 {
		return nil, &sources.ParseError{Source: SourceName, Kind: sources.ParseNoData}
	}
	return records, nil
}

// extractGame pulls one game out of a paragraph's text.
func extractGame(text string, page *sources.RawPage) (models.GameRecord, bool) {
	rec := models.GameRecord{
		Source:     SourceName,
		Season:     page.Season,
		Week:       page.Week,
		CapturedAt: page.FetchedAt,
	}

	pairs := moneylineRe.FindAllStringSubmatch(text, -1)
	if len(pairs) >= 2 {
		// ESPN lists the road team first: "away (+180), home (-210)".
		rec.AwayTeam = strings.TrimSpace(pairs[0][1])
		rec.HomeTeam = strings.TrimSpace(pairs[1][1])
		if line, err := models.ParseAmerican(pairs[0][2]); err == nil {
			rec.MoneylineAway = line
		}
		if line, err := models.ParseAmerican(pairs[1][2]); err == nil {
			rec.MoneylineHome = line
		}
	}

	if m := favoriteRe.FindStringSubmatch(text); m != nil {
		rec.Favorite = extractFavoriteName(m[1])
	}
	if m := fpiPctRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			rec.FPIPercent = models.NewLine(v)
		}
	}

	// Nothing usable in this paragraph at all.
	if rec.HomeTeam == "" && rec.AwayTeam == "" && rec.Favorite == "" {
		return models.GameRecord{}, false
	}
	if !rec.MoneylineHome.OK || !rec.MoneylineAway.OK || rec.Favorite == "" {
		rec.AddFlag(models.FlagPartialOdds)
	}
	return rec, true
}

// extractFavoriteName reduces an "X by N" favorite phrase to the team name,
// expanding ESPN's single-letter shorthand.
func extractFavoriteName(s string) string {
	s = strings.TrimSpace(s)
	if m := favoriteBy.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}
	if full, ok := fpiAbbrev[s]; ok {
		return full
	}
	return s
}
