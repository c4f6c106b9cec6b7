package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/fxjournal/pkg/id"
)

// FormatTradeOrg renders a TradeRecord as an Org-mode block for pasting into
// a written journal. Facts go in the PROPERTIES drawer; the headings below it
// are left for the trader's own review.
func FormatTradeOrg(t TradeRecord) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", t.Pair, strings.ToUpper(string(t.TradeType)), shortID(t.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":PAIR: %s\n", t.Pair))
	b.WriteString(fmt.Sprintf(":TRADE_TYPE: %s\n", t.TradeType))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %.5f\n", t.EntryPrice.Float()))
	b.WriteString(fmt.Sprintf(":EXIT_PRICE: %.5f\n", t.ExitPrice.Float()))
	b.WriteString(fmt.Sprintf(":PROFIT: %.2f\n", t.Profit.Float()))
	b.WriteString(fmt.Sprintf(":DATE: %s\n", t.Date))
	if t.Time != "" {
		b.WriteString(fmt.Sprintf(":TIME: %s\n", t.Time))
	}
	if t.Session != "" {
		b.WriteString(fmt.Sprintf(":SESSION: %s\n", t.Session))
	}
	if t.Mood != "" {
		b.WriteString(fmt.Sprintf(":MOOD: %s\n", t.Mood))
	}
	if t.Screenshot != "" {
		b.WriteString(fmt.Sprintf(":SCREENSHOT: %s\n", t.Screenshot))
	}
	if created, err := id.Time(t.ID); err == nil {
		b.WriteString(fmt.Sprintf(":CREATED: %s\n", created.Format(time.RFC3339)))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Notes\n")
	if t.Notes != "" {
		b.WriteString(t.Notes)
		b.WriteString("\n\n")
	} else {
		b.WriteString("- \n\n")
	}
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []TradeRecord) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
