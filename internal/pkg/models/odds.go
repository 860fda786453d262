package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Line is an odds figure that may be absent. A market missing from a source's
// page is represented explicitly instead of defaulting to zero, so downstream
// code can never confuse "no line offered" with "even odds".
type Line struct {
	Value float64
	OK    bool
}

// NewLine returns a present Line.
func NewLine(v float64) Line {
	return Line{Value: v, OK: true}
}

// ParseAmerican parses an American-format odds string ("-210", "+180").
func ParseAmerican(s string) (Line, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Line{}, err
	}
	return NewLine(v), nil
}

// MarshalJSON encodes an absent Line as null.
func (l Line) MarshalJSON() ([]byte, error) {
	if !l.OK {
		return []byte("null"), nil
	}
	return json.Marshal(l.Value)
}

// UnmarshalJSON decodes null as an absent Line.
func (l *Line) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = Line{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = NewLine(v)
	return nil
}

// OddsDelta computes the sign-normalized moneyline gap between the two sides
// of a game: |home| + |away|. -210/+180 gives 390 regardless of which side
// carries which sign. Returns 0 when either line is absent.
func OddsDelta(a, b Line) int {
	if !a.OK || !b.OK {
		return 0
	}
	return int(math.Abs(a.Value) + math.Abs(b.Value))
}
