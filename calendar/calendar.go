// Package calendar is the economic-calendar lookup. It serves a fixed set of
// events; there is no upstream feed.
package calendar

import (
	"context"
	"slices"
	"strings"
	"time"
)

type Event struct {
	ID       int    `json:"id" yaml:"id"`
	Date     string `json:"date" yaml:"date"`
	Time     string `json:"time" yaml:"time"`
	Currency string `json:"currency" yaml:"currency"`
	Event    string `json:"event" yaml:"event"`
	Impact   string `json:"impact" yaml:"impact"`
	Forecast string `json:"forecast" yaml:"forecast"`
	Previous string `json:"previous" yaml:"previous"`
	Actual   string `json:"actual" yaml:"actual"`
}

// Query narrows a lookup. Zero fields do not filter. The date range only
// applies when both Start and End are set; both ends are inclusive.
type Query struct {
	Start      string
	End        string
	Currencies []string
	Impact     string
	Search     string
}

type Calendar struct {
	events  []Event
	latency time.Duration
}

type Option func(*Calendar)

// WithLatency makes every Lookup wait d first, to mimic a remote service.
func WithLatency(d time.Duration) Option {
	return func(c *Calendar) { c.latency = d }
}

// WithEvents replaces the built-in events.
func WithEvents(evs []Event) Option {
	return func(c *Calendar) { c.events = slices.Clone(evs) }
}

func New(opts ...Option) *Calendar {
	c := &Calendar{events: slices.Clone(sampleEvents)}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Lookup returns matching events in calendar order.
func (c *Calendar) Lookup(ctx context.Context, q Query) ([]Event, error) {
	if c.latency > 0 {
		t := time.NewTimer(c.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return Filter(c.events, q), nil
}

func Filter(evs []Event, q Query) []Event {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	var out []Event
	for _, e := range evs {
		if q.Start != "" && q.End != "" && (e.Date < q.Start || e.Date > q.End) {
			continue
		}
		if len(q.Currencies) > 0 && !slices.ContainsFunc(q.Currencies, func(c string) bool {
			return strings.EqualFold(c, e.Currency)
		}) {
			continue
		}
		if q.Impact != "" && !strings.EqualFold(q.Impact, e.Impact) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Event), search) &&
			!strings.Contains(strings.ToLower(e.Currency), search) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Currencies lists the currency codes the calendar can be filtered by.
func Currencies() []string {
	return []string{"USD", "EUR", "GBP", "JPY", "AUD", "CAD", "NZD", "CHF", "CNY", "INR", "BRL", "ZAR"}
}

func ImpactLevels() []string {
	return []string{"High", "Medium", "Low"}
}
