package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/fxjournal/pkg/id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	trade := TradeRecord{
		ID:         "01HS6Z3K9V0000000000ABCDEFGH",
		Pair:       "EURUSD",
		TradeType:  Long,
		EntryPrice: 1.08500,
		ExitPrice:  1.08750,
		Profit:     25,
		Date:       "2024-03-15",
		Time:       "10:30",
		Notes:      "clean break of the Asian range",
		Mood:       Good,
		Session:    London,
	}

	result := FormatTradeOrg(trade)

	assert.Contains(t, result, "** Trade: EURUSD LONG (ABCDEFGH)")
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":ID: 01HS6Z3K9V0000000000ABCDEFGH")
	assert.Contains(t, result, ":PAIR: EURUSD")
	assert.Contains(t, result, ":TRADE_TYPE: long")
	assert.Contains(t, result, ":ENTRY_PRICE: 1.08500")
	assert.Contains(t, result, ":EXIT_PRICE: 1.08750")
	assert.Contains(t, result, ":PROFIT: 25.00")
	assert.Contains(t, result, ":DATE: 2024-03-15")
	assert.Contains(t, result, ":TIME: 10:30")
	assert.Contains(t, result, ":SESSION: london")
	assert.Contains(t, result, ":MOOD: Good")
	assert.Contains(t, result, ":END:")
	assert.Contains(t, result, "clean break of the Asian range")
	assert.Contains(t, result, "*** Review")
	assert.NotContains(t, result, ":SCREENSHOT:")
}

func TestFormatTradeOrgCreated(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	result := FormatTradeOrg(TradeRecord{ID: id.NewAt(at), Pair: "EURUSD", TradeType: Long, Date: "2024-03-15"})
	assert.Contains(t, result, ":CREATED: 2024-03-15T10:30:00Z")
}

func TestFormatTradeOrgScreenshot(t *testing.T) {
	t.Parallel()

	result := FormatTradeOrg(TradeRecord{ID: "x", Pair: "EURUSD", TradeType: Long, Date: "2024-03-15", Screenshot: "charts/eurusd-0315.png"})

	assert.Contains(t, result, ":SCREENSHOT: charts/eurusd-0315.png")
	// not a ULID, so no creation time
	assert.NotContains(t, result, ":CREATED:")
}

func TestFormatTradeOrgOptionalFields(t *testing.T) {
	t.Parallel()

	result := FormatTradeOrg(TradeRecord{ID: "short", Pair: "USDJPY", TradeType: Short, Profit: -12.5, Date: "2024-03-15"})

	assert.Contains(t, result, "** Trade: USDJPY SHORT (short)")
	assert.Contains(t, result, ":PROFIT: -12.50")
	assert.NotContains(t, result, ":TIME:")
	assert.NotContains(t, result, ":SESSION:")
	assert.NotContains(t, result, ":MOOD:")
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	trades := []TradeRecord{
		{ID: "trade-001", Pair: "EURUSD", TradeType: Long, Profit: 20, Date: "2024-01-10"},
		{ID: "trade-002", Pair: "GBPUSD", TradeType: Short, Profit: -10, Date: "2024-01-11"},
	}

	result := FormatTradesOrg(trades)
	assert.Contains(t, result, "EURUSD")
	assert.Contains(t, result, "GBPUSD")

	parts := strings.Split(result, "\n\n\n")
	assert.Len(t, parts, 2, "Expected two trades separated by blank lines")

	assert.Empty(t, FormatTradesOrg(nil))
	assert.NotContains(t, FormatTradesOrg(trades[:1]), "\n\n\n")
}

func TestShortID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"long ID keeps the tail", "01HS6Z3K9V0000000000ABCDEFGH", "ABCDEFGH"},
		{"exactly 8 characters", "12345678", "12345678"},
		{"less than 8 characters", "short", "short"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shortID(tt.input))
		})
	}
}

func TestFormatTradeOrgStructure(t *testing.T) {
	t.Parallel()

	lines := strings.Split(FormatTradeOrg(TradeRecord{ID: "s", Pair: "AUDUSD", TradeType: Long, Date: "2024-01-01"}), "\n")
	require.Greater(t, len(lines), 8)
	assert.True(t, strings.HasPrefix(lines[0], "** Trade:"))

	propsEnd, notesIdx, reviewIdx := -1, -1, -1
	for i, line := range lines {
		switch {
		case line == ":END:" && propsEnd < 0:
			propsEnd = i
		case line == "*** Notes":
			notesIdx = i
		case line == "*** Review":
			reviewIdx = i
		}
	}
	assert.Greater(t, notesIdx, propsEnd)
	assert.Greater(t, reviewIdx, notesIdx)
}
