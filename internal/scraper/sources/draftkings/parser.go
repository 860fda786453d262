package draftkings

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/hputnam/oddsboard/internal/pkg/models"
	"github.com/hputnam/oddsboard/internal/scraper/sources"
)

// The rendered page embeds the sportsbook state as a single JS assignment.
var initialStateRe = regexp.MustCompile(`(?s)window\.__INITIAL_STATE__\s*=\s*(\{.*?\});`)

var teamSeparators = []string{" @ ", " vs ", " vs. ", " - "}

// parsePage extracts game records from a rendered DraftKings page.
func parsePage(page *sources.RawPage) ([]models.GameRecord, error) {
	state, err := extractState(page.Body)
	if err != nil {
		return nil, err
	}

	events := collectEvents(state)
	if len(events) == 0 {
		return nil, &sources.ParseError{Source: SourceName, Kind: sources.ParseNoData}
	}
	offers := offersByEvent(state)

	// Event IDs sorted for deterministic record order on frozen input.
	ids := make([]string, 0, len(events))
	for id := range events {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var records []models.GameRecord
	for _, id := range ids {
		if rec, ok := buildRecord(events[id], offers[id], page); ok {
			records = append(records, rec)
		}
	}
	if len(records) == 0 {
		return nil, &sources.ParseError{Source: SourceName, Kind: sources.ParseNoData}
	}
	return records, nil
}

func extractState(body []byte) (*initialState, error) {
	m := initialStateRe.FindSubmatch(body)
	if m == nil {
		return nil, &sources.ParseError{
			Source: SourceName,
			Kind:   sources.ParseSchemaMismatch,
			Err:    fmt.Errorf("window.__INITIAL_STATE__ not found in page"),
		}
	}
	var state initialState
	if err := json.Unmarshal(m[1], &state); err != nil {
		return nil, &sources.ParseError{Source: SourceName, Kind: sources.ParseSchemaMismatch, Err: err}
	}
	return &state, nil
}

// collectEvents gathers events from whichever shape the state object uses.
func collectEvents(state *initialState) map[string]dkEvent {
	events := make(map[string]dkEvent)
	for _, group := range state.EventGroups {
		for id, ev := range group.Events {
			events[id] = ev
		}
	}
	for id, ev := range state.Events {
		if _, seen := events[id]; !seen {
			events[id] = ev
		}
	}
	return events
}

// offersByEvent groups market offers by event ID, skipping entries that
// don't decode; a single malformed offer must not sink the page.
func offersByEvent(state *initialState) map[string][]dkOffer {
	out := make(map[string][]dkOffer)
	for _, raw := range state.Offers {
		var offer dkOffer
		if err := json.Unmarshal(raw, &offer); err != nil {
			continue
		}
		id := offer.EventID.String()
		if id == "" {
			continue
		}
		out[id] = append(out[id], offer)
	}
	return out
}

func buildRecord(ev dkEvent, offers []dkOffer, page *sources.RawPage) (models.GameRecord, bool) {
	away, home := eventTeams(ev)
	if away == "" || home == "" {
		return models.GameRecord{}, false
	}

	rec := models.GameRecord{
		Source:     SourceName,
		Season:     page.Season,
		Week:       page.Week,
		HomeTeam:   home,
		AwayTeam:   away,
		CapturedAt: page.FetchedAt,
	}

	for _, offer := range offers {
		applyOffer(&rec, offer)
	}
	if !rec.MoneylineHome.OK || !rec.MoneylineAway.OK {
		rec.AddFlag(models.FlagPartialOdds)
	}
	return rec, true
}

// eventTeams resolves the away/home pair from the event. teamName1/teamName2
// ("away at home" order) are most reliable; participants and the event name
// are fallbacks.
func eventTeams(ev dkEvent) (away, home string) {
	if ev.TeamName1 != "" && ev.TeamName2 != "" {
		return ev.TeamName1, ev.TeamName2
	}
	if len(ev.Participants) >= 2 {
		return ev.Participants[0].Name, ev.Participants[1].Name
	}
	name := strings.TrimSpace(ev.Name)
	for _, sep := range teamSeparators {
		if parts := strings.SplitN(name, sep, 2); len(parts) == 2 {
			a, h := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
			if a != "" && h != "" {
				return a, h
			}
		}
	}
	return "", ""
}

// applyOffer folds one market offer into the record.
func applyOffer(rec *models.GameRecord, offer dkOffer) {
	label := strings.ToLower(offer.Label)
	switch {
	case strings.Contains(label, "moneyline") || strings.Contains(label, "money line"):
		for _, out := range offer.Outcomes {
			line, err := models.ParseAmerican(out.OddsAmerican)
			if err != nil {
				continue
			}
			switch {
			case sameTeam(out.Label, rec.HomeTeam):
				rec.MoneylineHome = line
			case sameTeam(out.Label, rec.AwayTeam):
				rec.MoneylineAway = line
			}
		}
	case strings.Contains(label, "spread"):
		for _, out := range offer.Outcomes {
			if out.Line != nil && sameTeam(out.Label, rec.HomeTeam) {
				rec.SpreadHome = models.NewLine(*out.Line)
			}
		}
	case strings.Contains(label, "total") || strings.Contains(label, "over/under"):
		for _, out := range offer.Outcomes {
			if out.Line != nil {
				rec.TotalPoints = models.NewLine(*out.Line)
				break
			}
		}
	}
}

// sameTeam matches an outcome label against a team name, tolerating the
// abbreviated forms sportsbook outcome labels use.
func sameTeam(label, team string) bool {
	l := strings.ToLower(strings.TrimSpace(label))
	t := strings.ToLower(strings.TrimSpace(team))
	if l == "" || t == "" {
		return false
	}
	if l == t || strings.Contains(t, l) || strings.Contains(l, t) {
		return true
	}
	lid, lok := resolveLoose(label)
	tid, tok := resolveLoose(team)
	return lok && tok && lid == tid
}

// resolveLoose resolves a sportsbook label to a franchise, falling back to
// the nickname token for "BUF Bills"-style outcome labels.
func resolveLoose(name string) (models.TeamID, bool) {
	if id, ok := models.ResolveTeam(name); ok {
		return id, true
	}
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return "", false
	}
	return models.ResolveTeam(fields[len(fields)-1])
}
