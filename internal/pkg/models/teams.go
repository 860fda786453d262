package models

import "strings"

// TeamID is a canonical NFL franchise identifier ("BUF", "MIA", ...).
// The set of franchises is closed; anything that doesn't resolve to it is an
// unresolved team, carried verbatim.
type TeamID string

type franchise struct {
	ID   TeamID
	Name string
}

var franchises = []franchise{
	{"ARI", "Arizona Cardinals"},
	{"ATL", "Atlanta Falcons"},
	{"BAL", "Baltimore Ravens"},
	{"BUF", "Buffalo Bills"},
	{"CAR", "Carolina Panthers"},
	{"CHI", "Chicago Bears"},
	{"CIN", "Cincinnati Bengals"},
	{"CLE", "Cleveland Browns"},
	{"DAL", "Dallas Cowboys"},
	{"DEN", "Denver Broncos"},
	{"DET", "Detroit Lions"},
	{"GB", "Green Bay Packers"},
	{"HOU", "Houston Texans"},
	{"IND", "Indianapolis Colts"},
	{"JAX", "Jacksonville Jaguars"},
	{"KC", "Kansas City Chiefs"},
	{"LAC", "Los Angeles Chargers"},
	{"LAR", "Los Angeles Rams"},
	{"LV", "Las Vegas Raiders"},
	{"MIA", "Miami Dolphins"},
	{"MIN", "Minnesota Vikings"},
	{"NE", "New England Patriots"},
	{"NO", "New Orleans Saints"},
	{"NYG", "New York Giants"},
	{"NYJ", "New York Jets"},
	{"PHI", "Philadelphia Eagles"},
	{"PIT", "Pittsburgh Steelers"},
	{"SEA", "Seattle Seahawks"},
	{"SF", "San Francisco 49ers"},
	{"TB", "Tampa Bay Buccaneers"},
	{"TEN", "Tennessee Titans"},
	{"WAS", "Washington Commanders"},
}

// teamAliases maps spelling variants seen across sources to franchise IDs:
// sportsbook abbreviations ("buf", "no"), nicknames ("niners"), city-only
// forms ("new england") and a few house styles ("ny giants", "la rams").
var teamAliases = map[string]TeamID{
	"ari": "ARI", "cardinals": "ARI", "arizona": "ARI",
	"atl": "ATL", "falcons": "ATL", "atlanta": "ATL",
	"bal": "BAL", "ravens": "BAL", "baltimore": "BAL",
	"buf": "BUF", "bills": "BUF", "buffalo": "BUF",
	"car": "CAR", "panthers": "CAR", "carolina": "CAR",
	"chi": "CHI", "bears": "CHI", "chicago": "CHI",
	"cin": "CIN", "bengals": "CIN", "cincinnati": "CIN",
	"cle": "CLE", "browns": "CLE", "cleveland": "CLE",
	"dal": "DAL", "cowboys": "DAL", "dallas": "DAL",
	"den": "DEN", "broncos": "DEN", "denver": "DEN",
	"det": "DET", "lions": "DET", "detroit": "DET",
	"gb": "GB", "packers": "GB", "green bay": "GB",
	"hou": "HOU", "texans": "HOU", "houston": "HOU",
	"ind": "IND", "colts": "IND", "indianapolis": "IND",
	"jax": "JAX", "jac": "JAX", "jaguars": "JAX", "jacksonville": "JAX",
	"kc": "KC", "chiefs": "KC", "kansas city": "KC", "kc chiefs": "KC",
	"lac": "LAC", "chargers": "LAC", "la chargers": "LAC",
	"lar": "LAR", "rams": "LAR", "la rams": "LAR",
	"lv": "LV", "raiders": "LV", "las vegas": "LV", "oakland raiders": "LV",
	"mia": "MIA", "dolphins": "MIA", "miami": "MIA",
	"min": "MIN", "vikings": "MIN", "minnesota": "MIN",
	"ne": "NE", "patriots": "NE", "new england": "NE",
	"no": "NO", "saints": "NO", "new orleans": "NO",
	"nyg": "NYG", "giants": "NYG", "ny giants": "NYG",
	"nyj": "NYJ", "jets": "NYJ", "ny jets": "NYJ",
	"phi": "PHI", "eagles": "PHI", "philadelphia": "PHI",
	"pit": "PIT", "steelers": "PIT", "pittsburgh": "PIT",
	"sea": "SEA", "seahawks": "SEA", "seattle": "SEA",
	"sf": "SF", "49ers": "SF", "niners": "SF", "san francisco": "SF",
	"tb": "TB", "buccaneers": "TB", "bucs": "TB", "tampa bay": "TB",
	"ten": "TEN", "titans": "TEN", "tennessee": "TEN",
	"was": "WAS", "wsh": "WAS", "commanders": "WAS", "washington": "WAS",
}

var teamsByName map[string]TeamID

var teamNames map[TeamID]string

func init() {
	teamsByName = make(map[string]TeamID, len(franchises))
	teamNames = make(map[TeamID]string, len(franchises))
	for _, f := range franchises {
		teamsByName[strings.ToLower(f.Name)] = f.ID
		teamNames[f.ID] = f.Name
	}
}

// ResolveTeam maps a raw team name to a canonical franchise ID. The match is
// case-insensitive and tolerates possessives and extra whitespace. Returns
// false when the name is not a known variant.
func ResolveTeam(name string) (TeamID, bool) {
	n := cleanTeamName(name)
	if n == "" {
		return "", false
	}
	if id, ok := teamsByName[n]; ok {
		return id, true
	}
	if id, ok := teamAliases[n]; ok {
		return id, true
	}
	return "", false
}

// TeamName returns the full franchise name for a canonical ID.
func TeamName(id TeamID) string {
	return teamNames[id]
}

func cleanTeamName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "'", "")
	s = strings.TrimSuffix(s, ".")
	return strings.Join(strings.Fields(s), " ")
}
