// Package stats derives journal metrics from a slice of trade records. All
// functions are pure; windowed helpers take an explicit "now".
package stats

import (
	"math"
	"sort"
	"time"

	mstats "github.com/montanaflynn/stats"
	"github.com/rustyeddy/fxjournal/journal"
)

// TotalPL sums the signed profit of every record.
func TotalPL(recs []journal.TradeRecord) float64 {
	var sum float64
	for _, r := range recs {
		sum += r.Profit.Float()
	}
	return sum
}

// Wins counts records with a positive profit.
func Wins(recs []journal.TradeRecord) int {
	n := 0
	for _, r := range recs {
		if r.Won() {
			n++
		}
	}
	return n
}

// Losses counts records with a negative profit. Break-even trades are
// neither wins nor losses.
func Losses(recs []journal.TradeRecord) int {
	n := 0
	for _, r := range recs {
		if r.Profit.Float() < 0 {
			n++
		}
	}
	return n
}

// WinRate is the percentage of winning records, 0 for none.
func WinRate(recs []journal.TradeRecord) float64 {
	if len(recs) == 0 {
		return 0
	}
	return float64(Wins(recs)) / float64(len(recs)) * 100
}

// AverageProfit is TotalPL per record, 0 for none.
func AverageProfit(recs []journal.TradeRecord) float64 {
	if len(recs) == 0 {
		return 0
	}
	return TotalPL(recs) / float64(len(recs))
}

// ProfitFactor is gross profit over gross loss. It is 0 when there are no
// losing trades.
func ProfitFactor(recs []journal.TradeRecord) float64 {
	var gross, loss float64
	for _, r := range recs {
		p := r.Profit.Float()
		if p > 0 {
			gross += p
		} else {
			loss -= p
		}
	}
	if loss == 0 {
		return 0
	}
	return gross / loss
}

type Summary struct {
	Trades        int     `json:"trades"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	TotalPL       float64 `json:"totalPL"`
	WinRate       float64 `json:"winRate"`
	AverageProfit float64 `json:"averageProfit"`
	ProfitFactor  float64 `json:"profitFactor"`
	Best          float64 `json:"best"`
	Worst         float64 `json:"worst"`
	Median        float64 `json:"median"`
	StdDev        float64 `json:"stdDev"`
}

func Summarize(recs []journal.TradeRecord) Summary {
	s := Summary{
		Trades:        len(recs),
		Wins:          Wins(recs),
		Losses:        Losses(recs),
		TotalPL:       TotalPL(recs),
		WinRate:       WinRate(recs),
		AverageProfit: AverageProfit(recs),
		ProfitFactor:  ProfitFactor(recs),
	}
	for i, r := range recs {
		p := r.Profit.Float()
		if i == 0 || p > s.Best {
			s.Best = p
		}
		if i == 0 || p < s.Worst {
			s.Worst = p
		}
	}
	if len(recs) > 0 {
		data := profits(recs)
		s.Median, _ = mstats.Median(data)
		s.StdDev, _ = mstats.StandardDeviation(data)
	}
	return s
}

func profits(recs []journal.TradeRecord) mstats.Float64Data {
	out := make(mstats.Float64Data, len(recs))
	for i, r := range recs {
		out[i] = r.Profit.Float()
	}
	return out
}

// Window is an inclusive range of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Day is the window holding only the calendar day of t.
func Day(t time.Time) Window {
	d := midnight(t)
	return Window{Start: d, End: d}
}

// Today is the calendar day of now, in now's location.
func Today(now time.Time) Window {
	return Day(now)
}

// ThisWeek is the rolling week ending today: today and the six days before.
func ThisWeek(now time.Time) Window {
	d := midnight(now)
	return Window{Start: d.AddDate(0, 0, -6), End: d}
}

// CalendarWeek is the week containing now that starts on weekStart.
func CalendarWeek(now time.Time, weekStart time.Weekday) Window {
	d := midnight(now)
	back := (int(d.Weekday()) - int(weekStart) + 7) % 7
	start := d.AddDate(0, 0, -back)
	return Window{Start: start, End: start.AddDate(0, 0, 6)}
}

// Contains reports whether the calendar day of t lies in the window.
func (w Window) Contains(t time.Time) bool {
	d := midnight(t.In(w.Start.Location()))
	return !d.Before(midnight(w.Start)) && !d.After(midnight(w.End))
}

// Filter keeps the records dated inside w. Records whose date does not
// parse are dropped.
func Filter(recs []journal.TradeRecord, w Window) []journal.TradeRecord {
	loc := w.Start.Location()
	var out []journal.TradeRecord
	for _, r := range recs {
		d, err := r.Day(loc)
		if err != nil {
			continue
		}
		if w.Contains(d) {
			out = append(out, r)
		}
	}
	return out
}

// Group is the count and total profit of one partition.
type Group struct {
	Count   int     `json:"count"`
	TotalPL float64 `json:"totalPL"`
}

type Groups map[string]Group

// Keys returns the partition keys, sorted.
func (g Groups) Keys() []string {
	out := make([]string, 0, len(g))
	for k := range g {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// GroupBy partitions recs by key. Records with an empty key are grouped
// under "".
func GroupBy(recs []journal.TradeRecord, key func(journal.TradeRecord) string) Groups {
	out := Groups{}
	for _, r := range recs {
		k := key(r)
		g := out[k]
		g.Count++
		g.TotalPL += r.Profit.Float()
		out[k] = g
	}
	return out
}

func GroupBySession(recs []journal.TradeRecord) Groups {
	return GroupBy(recs, func(r journal.TradeRecord) string { return string(r.Session) })
}

func GroupByMood(recs []journal.TradeRecord) Groups {
	return GroupBy(recs, func(r journal.TradeRecord) string { return string(r.Mood) })
}

func GroupByPair(recs []journal.TradeRecord) Groups {
	return GroupBy(recs, func(r journal.TradeRecord) string { return r.Pair })
}

// Board is the figure set of the trading insights card.
type Board struct {
	TodayPips    float64 `json:"todayPips"`
	TodayTrades  int     `json:"todayTrades"`
	WeeklyPips   float64 `json:"weeklyPips"`
	WeeklyTrades int     `json:"weeklyTrades"`
	WinRate      int     `json:"winRate"`
}

// Dashboard computes the insights card for now. The win rate is over the
// week's trades, rounded to a whole percent.
func Dashboard(recs []journal.TradeRecord, now time.Time) Board {
	return DashboardFor(recs, Today(now), ThisWeek(now))
}

// DashboardFor is Dashboard with explicit windows.
func DashboardFor(recs []journal.TradeRecord, today, week Window) Board {
	t := Filter(recs, today)
	w := Filter(recs, week)
	return Board{
		TodayPips:    TotalPL(t),
		TodayTrades:  len(t),
		WeeklyPips:   TotalPL(w),
		WeeklyTrades: len(w),
		WinRate:      int(math.Round(WinRate(w))),
	}
}
