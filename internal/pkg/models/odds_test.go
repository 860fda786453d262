package models

import (
	"encoding/json"
	"testing"
)

func TestOddsDelta(t *testing.T) {
	tests := []struct {
		name string
		a, b Line
		want int
	}{
		{"favorite negative", NewLine(-210), NewLine(180), 390},
		{"flipped sign convention", NewLine(180), NewLine(-210), 390},
		{"both negative", NewLine(-110), NewLine(-110), 220},
		{"one absent", NewLine(-210), Line{}, 0},
		{"both absent", Line{}, Line{}, 0},
	}

	for _, tt := range tests {
		if got := OddsDelta(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: OddsDelta = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestLineJSON(t *testing.T) {
	type wrapper struct {
		ML Line `json:"ml"`
	}

	data, err := json.Marshal(wrapper{ML: NewLine(-210)})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"ml":-210}` {
		t.Errorf("present line encoded as %s", data)
	}

	data, err = json.Marshal(wrapper{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"ml":null}` {
		t.Errorf("absent line encoded as %s, want null", data)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"ml":null}`), &w); err != nil {
		t.Fatal(err)
	}
	if w.ML.OK {
		t.Error("null should decode as absent")
	}
	if err := json.Unmarshal([]byte(`{"ml":180}`), &w); err != nil {
		t.Fatal(err)
	}
	if !w.ML.OK || w.ML.Value != 180 {
		t.Errorf("decoded %+v, want present 180", w.ML)
	}
}

func TestParseAmerican(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"-210", -210, true},
		{"+180", 180, true},
		{" +180 ", 180, true},
		{"180", 180, true},
		{"even", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		line, err := ParseAmerican(tt.input)
		if tt.ok && (err != nil || line.Value != tt.want) {
			t.Errorf("ParseAmerican(%q) = (%v, %v), want %v", tt.input, line.Value, err, tt.want)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseAmerican(%q) expected error", tt.input)
		}
	}
}

func TestKeyFor(t *testing.T) {
	rec := GameRecord{
		Season: "2025", Week: 3,
		HomeTeam: "Buffalo Bills", AwayTeam: "Miami Dolphins",
		HomeTeamID: "BUF", AwayTeamID: "MIA",
	}
	key := KeyFor(rec)
	if key.String() != "2025|3|BUF|MIA" {
		t.Errorf("key = %s", key.String())
	}

	// Unresolved teams fall back to normalized raw names.
	rec.HomeTeamID = ""
	rec.HomeTeam = "  Buffalo  BILLS "
	key = KeyFor(rec)
	if key.Home != "buffalo bills" {
		t.Errorf("fallback home = %q", key.Home)
	}
}
