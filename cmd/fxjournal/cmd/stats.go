package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rustyeddy/fxjournal/journal"
	"github.com/rustyeddy/fxjournal/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show trading statistics",
	Long: `Summarize the journal: total P/L, win rate, average profit and profit
factor, optionally broken down by session, mood or pair.

Examples:
  fxjournal stats
  fxjournal stats --window week --by session
  fxjournal stats dashboard`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var statsDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show today's and this week's figures",
	Args:  cobra.NoArgs,
	RunE:  runStatsDashboard,
}

var (
	statsWindow string
	statsBy     string
	statsJSON   bool
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsDashboardCmd)

	statsCmd.Flags().StringVarP(&statsWindow, "window", "w", "all", "all, today or week")
	statsCmd.Flags().StringVar(&statsBy, "by", "", "break down by session, mood or pair")
	statsCmd.PersistentFlags().BoolVar(&statsJSON, "json", false, "print JSON")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	recs := a.Trades.List()
	switch statsWindow {
	case "all":
	case "today":
		recs = stats.Filter(recs, a.Today())
	case "week":
		recs = stats.Filter(recs, a.Week())
	default:
		return fmt.Errorf("unknown window %q (want all, today or week)", statsWindow)
	}

	var group func([]journal.TradeRecord) stats.Groups
	switch statsBy {
	case "":
	case "session":
		group = stats.GroupBySession
	case "mood":
		group = stats.GroupByMood
	case "pair":
		group = stats.GroupByPair
	default:
		return fmt.Errorf("unknown breakdown %q (want session, mood or pair)", statsBy)
	}

	w := cmd.OutOrStdout()
	if group != nil {
		g := group(recs)
		if statsJSON {
			return printJSON(w, g)
		}
		printGroups(w, statsBy, g)
		return nil
	}

	s := stats.Summarize(recs)
	if statsJSON {
		return printJSON(w, s)
	}
	fmt.Fprintf(w, "Trades:        %d (%d won, %d lost)\n", s.Trades, s.Wins, s.Losses)
	fmt.Fprintf(w, "Total P/L:     %.1f pips\n", s.TotalPL)
	fmt.Fprintf(w, "Win rate:      %.1f%%\n", s.WinRate)
	fmt.Fprintf(w, "Average:       %.2f pips\n", s.AverageProfit)
	fmt.Fprintf(w, "Median:        %.2f pips\n", s.Median)
	fmt.Fprintf(w, "Std dev:       %.2f pips\n", s.StdDev)
	fmt.Fprintf(w, "Profit factor: %.2f\n", s.ProfitFactor)
	fmt.Fprintf(w, "Best / worst:  %.1f / %.1f pips\n", s.Best, s.Worst)
	return nil
}

func printGroups(out io.Writer, by string, g stats.Groups) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tTRADES\tPIPS\n", by)
	for _, k := range g.Keys() {
		name := k
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(tw, "%s\t%d\t%.1f\n", name, g[k].Count, g[k].TotalPL)
	}
	tw.Flush()
}

func runStatsDashboard(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	b := a.Dashboard()
	w := cmd.OutOrStdout()
	if statsJSON {
		return printJSON(w, b)
	}
	fmt.Fprintf(w, "Today:     %+.1f pips over %d trades\n", b.TodayPips, b.TodayTrades)
	fmt.Fprintf(w, "This week: %+.1f pips over %d trades\n", b.WeeklyPips, b.WeeklyTrades)
	fmt.Fprintf(w, "Win rate:  %d%%\n", b.WinRate)
	return nil
}
