package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rustyeddy/fxjournal/calendar"
	"github.com/spf13/cobra"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the economic calendar",
	Long: `List economic releases, filtered by date range, currency, impact and a
free-text search over the event name and currency.

Examples:
  fxjournal calendar --from 2024-01-15 --to 2024-01-19
  fxjournal calendar --currency USD,EUR --impact High
  fxjournal calendar --search cpi`,
	Args: cobra.NoArgs,
	RunE: runCalendar,
}

var calendarCurrenciesCmd = &cobra.Command{
	Use:   "currencies",
	Short: "List the currencies the calendar can filter by",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(calendar.Currencies(), " "))
	},
}

var calendarImpactsCmd = &cobra.Command{
	Use:   "impacts",
	Short: "List the impact levels",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(calendar.ImpactLevels(), " "))
	},
}

var (
	calFrom       string
	calTo         string
	calCurrencies []string
	calImpact     string
	calSearch     string
	calTimeout    time.Duration
)

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.AddCommand(calendarCurrenciesCmd)
	calendarCmd.AddCommand(calendarImpactsCmd)

	calendarCmd.Flags().StringVar(&calFrom, "from", "", "first date YYYY-MM-DD")
	calendarCmd.Flags().StringVar(&calTo, "to", "", "last date YYYY-MM-DD")
	calendarCmd.Flags().StringSliceVar(&calCurrencies, "currency", nil, "currency codes, e.g. USD,EUR")
	calendarCmd.Flags().StringVar(&calImpact, "impact", "", "High, Medium or Low")
	calendarCmd.Flags().StringVarP(&calSearch, "search", "s", "", "search event names and currencies")
	calendarCmd.Flags().DurationVar(&calTimeout, "timeout", 10*time.Second, "give up after this long")
	calendarCmd.MarkFlagsRequiredTogether("from", "to")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), calTimeout)
	defer cancel()

	evs, err := a.Calendar.Lookup(ctx, calendar.Query{
		Start:      calFrom,
		End:        calTo,
		Currencies: calCurrencies,
		Impact:     calImpact,
		Search:     calSearch,
	})
	if err != nil {
		return fmt.Errorf("calendar lookup: %w", err)
	}

	w := cmd.OutOrStdout()
	if len(evs) == 0 {
		fmt.Fprintln(w, "No events")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTIME\tCCY\tIMPACT\tEVENT\tFORECAST\tPREVIOUS\tACTUAL")
	for _, e := range evs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Date, e.Time, e.Currency, e.Impact, e.Event, e.Forecast, e.Previous, e.Actual)
	}
	return tw.Flush()
}
