package cmd

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/rustyeddy/fxjournal/journal"
	"github.com/rustyeddy/fxjournal/market"
	"github.com/rustyeddy/fxjournal/pkg/id"
	"github.com/rustyeddy/fxjournal/stats"
	"github.com/spf13/cobra"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Record and manage journal trades",
	Long: `Add, edit, delete and list the trades in your journal.

Subcommands:
  add    - Record a new trade
  edit   - Change fields of an existing trade
  delete - Remove a trade
  list   - List trades
  show   - Print one trade as an Org-mode block

Examples:
  fxjournal trade add -p EURUSD -t long --entry 1.0850 --exit 1.0875
  fxjournal trade edit 01HV... --notes "moved stop to break-even"
  fxjournal trade list --week`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new trade",
	Long: `Record a new trade. The date defaults to today. When --profit is left
out but both prices are given, the profit is the pip move of the trade.`,
	Args: cobra.NoArgs,
	RunE: runTradeAdd,
}

var tradeEditCmd = &cobra.Command{
	Use:   "edit <trade-id>",
	Short: "Change fields of an existing trade",
	Long:  `Only the flags you pass are changed; every other field keeps its value.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeEdit,
}

var tradeDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Remove a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeDelete,
}

var tradeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades",
	Args:  cobra.NoArgs,
	RunE:  runTradeList,
}

var tradeShowCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Print one trade as an Org-mode block",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeShow,
}

var (
	tradeIn journal.TradeForm

	listToday  bool
	listWeek   bool
	listPair   string
	listNewest bool
)

// tradeFlags binds the form fields to c. add and edit share tradeIn; only
// one command runs per invocation.
func tradeFlags(c *cobra.Command) {
	c.Flags().StringVarP(&tradeIn.Pair, "pair", "p", "", "currency pair, e.g. EURUSD")
	c.Flags().StringVarP(&tradeIn.TradeType, "type", "t", "", "trade direction: long or short")
	c.Flags().StringVar(&tradeIn.EntryPrice, "entry", "", "entry price")
	c.Flags().StringVar(&tradeIn.ExitPrice, "exit", "", "exit price")
	c.Flags().StringVar(&tradeIn.Profit, "profit", "", "profit or loss in pips")
	c.Flags().StringVar(&tradeIn.Date, "date", "", "trade date YYYY-MM-DD (default today)")
	c.Flags().StringVar(&tradeIn.Time, "time", "", "trade time HH:MM")
	c.Flags().StringVar(&tradeIn.Notes, "notes", "", "free-form notes")
	c.Flags().StringVar(&tradeIn.Mood, "mood", "", "Excellent, Good, Neutral, Poor or Very Poor")
	c.Flags().StringVar(&tradeIn.Session, "session", "", "london, newyork, tokyo or sydney")
	c.Flags().StringVar(&tradeIn.Screenshot, "screenshot", "", "path or URL of a chart screenshot")
}

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd)
	tradeCmd.AddCommand(tradeEditCmd)
	tradeCmd.AddCommand(tradeDeleteCmd)
	tradeCmd.AddCommand(tradeListCmd)
	tradeCmd.AddCommand(tradeShowCmd)

	tradeFlags(tradeAddCmd)
	tradeFlags(tradeEditCmd)

	tradeListCmd.Flags().BoolVar(&listToday, "today", false, "only trades dated today")
	tradeListCmd.Flags().BoolVar(&listWeek, "week", false, "only trades dated this week")
	tradeListCmd.Flags().StringVar(&listPair, "pair", "", "only trades on this pair")
	tradeListCmd.Flags().BoolVar(&listNewest, "newest", false, "newest trades first")
	tradeListCmd.MarkFlagsMutuallyExclusive("today", "week")
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	f := tradeIn
	if f.Date == "" {
		f.Date = a.Today().Start.Format(journal.DateLayout)
	}

	rec, err := a.AddTrade(f)
	if err != nil {
		return formError("trade", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Recorded trade %s: %s %s %s pips\n", rec.ID, rec.Pair, rec.TradeType, rec.Profit)
	return nil
}

func runTradeEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tradeID := args[0]
	w := cmd.OutOrStdout()
	rec, ok := a.Trades.Get(tradeID)
	if !ok {
		fmt.Fprintf(w, "No trade with id %s%s\n", tradeID, idHint(tradeID))
		return nil
	}

	f := journal.FormOf(rec)
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("pair", &f.Pair, tradeIn.Pair)
	set("type", &f.TradeType, tradeIn.TradeType)
	set("entry", &f.EntryPrice, tradeIn.EntryPrice)
	set("exit", &f.ExitPrice, tradeIn.ExitPrice)
	set("profit", &f.Profit, tradeIn.Profit)
	set("date", &f.Date, tradeIn.Date)
	set("time", &f.Time, tradeIn.Time)
	set("notes", &f.Notes, tradeIn.Notes)
	set("mood", &f.Mood, tradeIn.Mood)
	set("session", &f.Session, tradeIn.Session)
	set("screenshot", &f.Screenshot, tradeIn.Screenshot)

	// New prices without a new profit: derive it again from the prices.
	if (cmd.Flags().Changed("entry") || cmd.Flags().Changed("exit")) && !cmd.Flags().Changed("profit") {
		f.Profit = ""
	}

	if _, err := a.EditTrade(tradeID, f); err != nil {
		return formError("trade", err)
	}
	fmt.Fprintf(w, "✓ Updated trade %s\n", tradeID)
	return nil
}

func runTradeDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ok, err := a.DeleteTrade(args[0])
	if err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "No trade with id %s\n", args[0])
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted trade %s\n", args[0])
	return nil
}

func runTradeList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	recs := a.Trades.List()
	switch {
	case listToday:
		recs = stats.Filter(recs, a.Today())
	case listWeek:
		recs = stats.Filter(recs, a.Week())
	}
	if listPair != "" {
		pair := market.Normalize(listPair)
		recs = slices.DeleteFunc(recs, func(r journal.TradeRecord) bool { return r.Pair != pair })
	}
	if listNewest {
		recs = journal.NewestFirst(recs)
	}

	w := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintln(w, "No trades")
		return nil
	}
	printTrades(w, recs)
	fmt.Fprintf(w, "\n%d trades, total %.1f pips\n", len(recs), stats.TotalPL(recs))
	return nil
}

func printTrades(out io.Writer, recs []journal.TradeRecord) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tPAIR\tSIDE\tENTRY\tEXIT\tPIPS\tSESSION\tMOOD")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Date, r.Time, r.Pair, r.TradeType,
			r.EntryPrice, r.ExitPrice, r.Profit, r.Session, r.Mood)
	}
	tw.Flush()
}

func runTradeShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	rec, ok := a.Trades.Get(args[0])
	if !ok {
		return fmt.Errorf("no trade with id %s%s", args[0], idHint(args[0]))
	}
	fmt.Fprint(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
	return nil
}

// idHint flags ids that could never have been generated by the journal.
func idHint(s string) string {
	if id.Valid(s) {
		return ""
	}
	return " (not a trade id)"
}
