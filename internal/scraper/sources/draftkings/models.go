package draftkings

import "encoding/json"

// Shapes inside window.__INITIAL_STATE__. DraftKings reshuffles this state
// object periodically; the parser probes eventGroups, then the flat events
// map, then reconstructs games from offers, and tolerates whichever subset
// of fields is populated.
type initialState struct {
	EventGroups map[string]eventGroup      `json:"eventGroups"`
	Events      map[string]dkEvent         `json:"events"`
	Offers      map[string]json.RawMessage `json:"offers"`
}

type eventGroup struct {
	Name   string             `json:"name"`
	Events map[string]dkEvent `json:"events"`
}

type dkEvent struct {
	Name         string          `json:"name"`
	StartDate    string          `json:"startDate"`
	TeamName1    string          `json:"teamName1"` // away
	TeamName2    string          `json:"teamName2"` // home
	Participants []dkParticipant `json:"participants"`
}

type dkParticipant struct {
	Name string `json:"name"`
}

type dkOffer struct {
	EventID  json.Number `json:"eventId"`
	Label    string      `json:"label"`
	Outcomes []dkOutcome `json:"outcomes"`
}

type dkOutcome struct {
	Label        string   `json:"label"`
	OddsAmerican string   `json:"oddsAmerican"`
	Line         *float64 `json:"line"`
}
