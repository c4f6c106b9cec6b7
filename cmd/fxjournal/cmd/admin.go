package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/rustyeddy/fxjournal/admin"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administer journal users",
	Long: `Browse the user directory. Requires a logged in admin.

Examples:
  fxjournal admin users --search smith --page 2
  fxjournal admin stats`,
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users, one page at a time",
	Args:  cobra.NoArgs,
	RunE:  runAdminUsers,
}

var adminUsersDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Remove a user from the directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminUsersDelete,
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show headline user figures",
	Args:  cobra.NoArgs,
	RunE:  runAdminStats,
}

var (
	adminSearch  string
	adminPage    int
	adminPerPage int
)

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminUsersCmd)
	adminCmd.AddCommand(adminStatsCmd)
	adminUsersCmd.AddCommand(adminUsersDeleteCmd)

	adminUsersCmd.Flags().StringVarP(&adminSearch, "search", "s", "", "match name or email")
	adminUsersCmd.Flags().IntVar(&adminPage, "page", 1, "page number, starting at 1")
	adminUsersCmd.Flags().IntVar(&adminPerPage, "per-page", 10, "users per page")
}

func runAdminUsers(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.RequireAdmin(); err != nil {
		return err
	}

	users := a.Directory.Search(adminSearch)
	page := admin.Page(users, adminPage-1, adminPerPage)

	w := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tSTATUS\tJOINED\tTRADES\tPROFIT")
	for _, u := range page {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%.2f\n",
			u.ID, u.Name, u.Email, u.Role, u.Status, u.JoinDate, u.Trades, u.Profit)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nPage %d of %d (%d users)\n", adminPage, admin.Pages(len(users), adminPerPage), len(users))
	return nil
}

func runAdminUsersDelete(cmd *cobra.Command, args []string) error {
	userID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("user id must be a number: %q", args[0])
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ok, err := a.DeleteUser(userID)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "No user with id %d\n", userID)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted user %d\n", userID)
	return nil
}

func runAdminStats(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.RequireAdmin(); err != nil {
		return err
	}

	s := admin.Summarize(a.Directory.Users())
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Users:          %d (%d active)\n", s.TotalUsers, s.ActiveUsers)
	fmt.Fprintf(w, "Trades:         %d\n", s.TotalTrades)
	fmt.Fprintf(w, "Average profit: %.2f\n", s.AverageProfit)
	return nil
}
