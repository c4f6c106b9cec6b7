// journal/journal.go
package journal

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Side is the direction of a trade.
type Side string

const (
	Long  Side = "long"
	Short Side = "short"
)

// ParseSide accepts long/buy and short/sell in any case.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long", "buy":
		return Long, nil
	case "short", "sell":
		return Short, nil
	}
	return "", fmt.Errorf("unknown trade type %q", s)
}

func (s *Side) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if p, err := ParseSide(raw); err == nil {
		*s = p
		return nil
	}
	*s = Side(strings.ToLower(raw))
	return nil
}

// Session is the trading-hours window a trade was taken in.
type Session string

const (
	London  Session = "london"
	NewYork Session = "newyork"
	Tokyo   Session = "tokyo"
	Sydney  Session = "sydney"
)

var Sessions = []Session{London, NewYork, Tokyo, Sydney}

func ParseSession(s string) (Session, error) {
	k := strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s))
	if k == "ny" {
		k = "newyork"
	}
	for _, v := range Sessions {
		if string(v) == k {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown session %q", s)
}

// Mood is how the trader felt about the trade.
type Mood string

const (
	Excellent Mood = "Excellent"
	Good      Mood = "Good"
	Neutral   Mood = "Neutral"
	Poor      Mood = "Poor"
	VeryPoor  Mood = "Very Poor"
)

var Moods = []Mood{Excellent, Good, Neutral, Poor, VeryPoor}

func ParseMood(s string) (Mood, error) {
	k := strings.Join(strings.Fields(s), " ")
	for _, v := range Moods {
		if strings.EqualFold(string(v), k) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown mood %q", s)
}

// Amount is a price or profit figure. Anything that is not a finite number
// reads as 0 so sums never turn into NaN.
type Amount float64

// ParseAmount coerces user input to an Amount; non-numeric input is 0.
func ParseAmount(s string) Amount {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return Amount(f).clean()
}

func (a Amount) clean() Amount {
	f := float64(a)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return a
}

func (a Amount) Float() float64 {
	return float64(a.clean())
}

func (a Amount) String() string {
	return strconv.FormatFloat(a.Float(), 'f', -1, 64)
}

// MarshalJSON writes the coerced value, so NaN and infinities are stored as 0.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Float())
}

// UnmarshalJSON accepts numbers and numeric strings, as written by the
// browser forms, and never fails.
func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = ParseAmount(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*a = Amount(f).clean()
		return nil
	}
	*a = 0
	return nil
}

type TradeRecord struct {
	ID         string  `json:"id"`
	Pair       string  `json:"pair"`
	TradeType  Side    `json:"tradeType"`
	EntryPrice Amount  `json:"entryPrice"`
	ExitPrice  Amount  `json:"exitPrice"`
	Profit     Amount  `json:"profit"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Notes      string  `json:"notes"`
	Mood       Mood    `json:"mood,omitempty"`
	Session    Session `json:"session,omitempty"`
	// Screenshot is the path or URL of a chart image for the trade.
	Screenshot string `json:"screenshot,omitempty"`
}

// Day returns the record's calendar date at midnight in loc.
func (r TradeRecord) Day(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, r.Date, loc)
}

// Won reports whether the trade closed with a positive profit.
func (r TradeRecord) Won() bool {
	return r.Profit.Float() > 0
}
