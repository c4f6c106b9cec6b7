package cmd

import (
	"fmt"

	"github.com/rustyeddy/fxjournal/auth"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the journal",
	Long: `Log in with an email and password. With the default stub verifier any
non-empty pair is accepted; with the bcrypt verifier the account must have
been registered first.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var (
	loginEmail    string
	loginPassword string
	registerIn    auth.RegisterForm
)

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")

	registerCmd.Flags().StringVarP(&registerIn.Name, "name", "n", "", "full name")
	registerCmd.Flags().StringVarP(&registerIn.Email, "email", "e", "", "account email")
	registerCmd.Flags().StringVar(&registerIn.Password, "password", "", "password")
	registerCmd.Flags().StringVar(&registerIn.ConfirmPassword, "confirm", "", "password again")
	registerCmd.Flags().BoolVar(&registerIn.AgreeTerms, "agree-terms", false, "accept the terms of service")
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.Session.Login(loginEmail, loginPassword)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged in as %s <%s> (%s)\n", u.Name, u.Email, u.Role)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.Session.Register(registerIn)
	if err != nil {
		return formError("registration", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Registered and logged in as %s <%s>\n", u.Name, u.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Session.Logout(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, ok := a.Session.Current()
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", u.Name, u.Email, u.Role)
	return nil
}
