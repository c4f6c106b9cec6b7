// market/instruments.go
package market

import (
	"sort"
	"strings"
)

type InstrumentMeta struct {
	Name          string
	BaseCurrency  string
	QuoteCurrency string
	PipLocation   int
}

// Instruments lists the pairs the journal offers in its pickers. Pairs not in
// this table can still be journaled; they fall back to DefaultPipLocation.
var Instruments = map[string]InstrumentMeta{
	"EURUSD": {Name: "EURUSD", BaseCurrency: "EUR", QuoteCurrency: "USD", PipLocation: -4},
	"GBPUSD": {Name: "GBPUSD", BaseCurrency: "GBP", QuoteCurrency: "USD", PipLocation: -4},
	"AUDUSD": {Name: "AUDUSD", BaseCurrency: "AUD", QuoteCurrency: "USD", PipLocation: -4},
	"NZDUSD": {Name: "NZDUSD", BaseCurrency: "NZD", QuoteCurrency: "USD", PipLocation: -4},
	"USDCAD": {Name: "USDCAD", BaseCurrency: "USD", QuoteCurrency: "CAD", PipLocation: -4},
	"USDCHF": {Name: "USDCHF", BaseCurrency: "USD", QuoteCurrency: "CHF", PipLocation: -4},
	"EURGBP": {Name: "EURGBP", BaseCurrency: "EUR", QuoteCurrency: "GBP", PipLocation: -4},
	"USDJPY": {Name: "USDJPY", BaseCurrency: "USD", QuoteCurrency: "JPY", PipLocation: -2},
	"EURJPY": {Name: "EURJPY", BaseCurrency: "EUR", QuoteCurrency: "JPY", PipLocation: -2},
	"GBPJPY": {Name: "GBPJPY", BaseCurrency: "GBP", QuoteCurrency: "JPY", PipLocation: -2},
	"XAUUSD": {Name: "XAUUSD", BaseCurrency: "XAU", QuoteCurrency: "USD", PipLocation: -1},
}

const DefaultPipLocation = -4

// Normalize upper-cases a pair and strips the separators people type:
// "eur/usd", "EUR_USD" and "EUR-USD" all become "EURUSD".
func Normalize(pair string) string {
	r := strings.NewReplacer("/", "", "_", "", "-", "", " ", "")
	return strings.ToUpper(r.Replace(strings.TrimSpace(pair)))
}

// Lookup returns the instrument metadata for pair in any spelling.
func Lookup(pair string) (InstrumentMeta, bool) {
	m, ok := Instruments[Normalize(pair)]
	return m, ok
}

// Pairs returns the known pair names, sorted.
func Pairs() []string {
	out := make([]string, 0, len(Instruments))
	for k := range Instruments {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
