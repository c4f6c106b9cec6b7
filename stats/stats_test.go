package stats

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/rustyeddy/fxjournal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(date string, profit journal.Amount) journal.TradeRecord {
	return journal.TradeRecord{Pair: "EURUSD", TradeType: journal.Long, Date: date, Profit: profit}
}

func TestWinRate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, WinRate(nil))
	assert.Equal(t, 0.0, WinRate([]journal.TradeRecord{}))
	assert.InDelta(t, 50.0, WinRate([]journal.TradeRecord{rec("2024-01-01", 1), rec("2024-01-01", -1)}), 1e-12)
	assert.InDelta(t, 100.0/3, WinRate([]journal.TradeRecord{rec("", 1), rec("", 0), rec("", -2)}), 1e-12)
}

func TestTotalPLCoercesStrings(t *testing.T) {
	t.Parallel()

	var recs []journal.TradeRecord
	require.NoError(t, json.Unmarshal([]byte(`[{"profit":"10"},{"profit":-3},{"profit":"oops"}]`), &recs))

	assert.InDelta(t, 7.0, TotalPL(recs), 1e-12)
	assert.Equal(t, 0.0, TotalPL(nil))
}

func TestAverageProfit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, AverageProfit(nil))
	assert.InDelta(t, 2.0, AverageProfit([]journal.TradeRecord{rec("", 5), rec("", -1)}), 1e-12)
}

func TestProfitFactor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, ProfitFactor(nil))
	assert.Equal(t, 0.0, ProfitFactor([]journal.TradeRecord{rec("", 5)}))
	assert.InDelta(t, 2.5, ProfitFactor([]journal.TradeRecord{rec("", 10), rec("", -4), rec("", 0)}), 1e-12)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize([]journal.TradeRecord{rec("", 10), rec("", -4), rec("", 0), rec("", 6)})
	assert.Equal(t, 4, s.Trades)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.InDelta(t, 12.0, s.TotalPL, 1e-12)
	assert.InDelta(t, 50.0, s.WinRate, 1e-12)
	assert.InDelta(t, 3.0, s.AverageProfit, 1e-12)
	assert.InDelta(t, 4.0, s.ProfitFactor, 1e-12)
	assert.InDelta(t, 10.0, s.Best, 1e-12)
	assert.InDelta(t, -4.0, s.Worst, 1e-12)
	assert.InDelta(t, 3.0, s.Median, 1e-12)
	assert.InDelta(t, math.Sqrt(29), s.StdDev, 1e-9)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestWindows(t *testing.T) {
	t.Parallel()

	// Wednesday
	now := time.Date(2024, 3, 20, 15, 4, 5, 0, time.UTC)

	today := Today(now)
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), today.Start)
	assert.Equal(t, today.Start, today.End)

	week := ThisWeek(now)
	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), week.Start)
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), week.End)

	cal := CalendarWeek(now, time.Monday)
	assert.Equal(t, time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC), cal.Start)
	assert.Equal(t, time.Date(2024, 3, 24, 0, 0, 0, 0, time.UTC), cal.End)

	sun := CalendarWeek(now, time.Sunday)
	assert.Equal(t, time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC), sun.Start)

	// a week starting today
	wed := CalendarWeek(now, time.Wednesday)
	assert.Equal(t, today.Start, wed.Start)
}

func TestFilterToday(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 20, 23, 59, 0, 0, time.UTC)
	recs := []journal.TradeRecord{
		rec("2024-03-20", 5),
		rec(now.AddDate(0, 0, -10).Format(journal.DateLayout), 7),
	}

	got := Filter(recs, Today(now))
	require.Len(t, got, 1)
	assert.Equal(t, "2024-03-20", got[0].Date)

	assert.Len(t, Filter(recs, ThisWeek(now)), 1)
}

func TestFilterWindowBounds(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 20, 8, 0, 0, 0, time.UTC)
	recs := []journal.TradeRecord{
		rec("2024-03-13", 1), // eight days back, outside
		rec("2024-03-14", 2), // first day of the window
		rec("2024-03-20", 3), // today
		rec("2024-03-21", 4), // tomorrow
		rec("not a date", 5),
	}

	got := Filter(recs, ThisWeek(now))
	require.Len(t, got, 2)
	assert.Equal(t, "2024-03-14", got[0].Date)
	assert.Equal(t, "2024-03-20", got[1].Date)
}

func TestFilterUsesWindowLocation(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*3600)
	// 2024-03-20 23:30 UTC is already the 21st in Tokyo.
	now := time.Date(2024, 3, 20, 23, 30, 0, 0, time.UTC).In(tokyo)

	got := Filter([]journal.TradeRecord{rec("2024-03-20", 1), rec("2024-03-21", 2)}, Today(now))
	require.Len(t, got, 1)
	assert.Equal(t, "2024-03-21", got[0].Date)
}

func TestGroupBySession(t *testing.T) {
	t.Parallel()

	recs := []journal.TradeRecord{
		{Session: journal.London, Profit: 10},
		{Session: journal.London, Profit: -4},
		{Session: journal.Tokyo, Profit: 3},
		{Profit: 1},
	}

	g := GroupBySession(recs)
	assert.Equal(t, []string{"", "london", "tokyo"}, g.Keys())
	assert.Equal(t, Group{Count: 2, TotalPL: 6}, g["london"])
	assert.Equal(t, Group{Count: 1, TotalPL: 3}, g["tokyo"])
	assert.Equal(t, Group{Count: 1, TotalPL: 1}, g[""])

	assert.Empty(t, GroupBySession(nil))
}

func TestGroupByMoodAndPair(t *testing.T) {
	t.Parallel()

	recs := []journal.TradeRecord{
		{Pair: "EURUSD", Mood: journal.Good, Profit: 2},
		{Pair: "GBPUSD", Mood: journal.Good, Profit: 3},
		{Pair: "EURUSD", Mood: journal.VeryPoor, Profit: -8},
	}

	m := GroupByMood(recs)
	assert.Equal(t, Group{Count: 2, TotalPL: 5}, m["Good"])
	assert.Equal(t, Group{Count: 1, TotalPL: -8}, m["Very Poor"])

	p := GroupByPair(recs)
	assert.Equal(t, []string{"EURUSD", "GBPUSD"}, p.Keys())
	assert.Equal(t, Group{Count: 2, TotalPL: -6}, p["EURUSD"])
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	recs := []journal.TradeRecord{
		rec("2024-03-20", 15),
		rec("2024-03-20", -5),
		rec("2024-03-18", 20),
		rec("2024-03-01", 100),
	}

	b := Dashboard(recs, now)
	assert.Equal(t, Board{
		TodayPips:    10,
		TodayTrades:  2,
		WeeklyPips:   30,
		WeeklyTrades: 3,
		WinRate:      67,
	}, b)

	assert.Equal(t, Board{}, Dashboard(nil, now))
}
