package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove every stored session key",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := a.auth.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect the stored session",
}

var sessionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show who is logged in and which tokens are stored",
	RunE:  runSessionStatus,
}

var sessionAdminTokenCmd = &cobra.Command{
	Use:   "admin-token [token]",
	Short: "Store the elevated token used for admin-only actions (empty clears it)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := ""
		if len(args) == 1 {
			token = strings.TrimSpace(args[0])
		}
		if err := a.session.SetAdminToken(cmd.Context(), token); err != nil {
			return err
		}
		if token == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Admin token cleared.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Admin token stored.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, sessionCmd)
	sessionCmd.AddCommand(sessionStatusCmd, sessionAdminTokenCmd)

	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password", "", "Account password (read from stdin when omitted)")
}

func runLogin(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	in := bufio.NewReader(cmd.InOrStdin())
	if email == "" {
		fmt.Fprint(cmd.ErrOrStderr(), "Email: ")
		line, _ := in.ReadString('\n')
		email = strings.TrimSpace(line)
	}
	if password == "" {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		line, _ := in.ReadString('\n')
		password = strings.TrimRight(line, "\r\n")
	}

	user, err := a.auth.Login(cmd.Context(), email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Email, user.Role)
	return nil
}

func runSessionStatus(cmd *cobra.Command, _ []string) error {
	st, err := a.session.Status(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd, st)
	}

	w := newTable(cmd)
	fmt.Fprintf(w, "Backend:\t%s\n", a.client.BaseURL())
	fmt.Fprintf(w, "Location:\t%s\n", orDash(st.Location))
	if st.User != nil {
		fmt.Fprintf(w, "User:\t%s <%s>\n", st.User.Name, st.User.Email)
	} else {
		fmt.Fprintf(w, "User:\t-\n")
	}
	fmt.Fprintf(w, "Role:\t%s\n", orDash(st.Role))
	fmt.Fprintf(w, "Token:\t%t\n", st.HasToken)
	fmt.Fprintf(w, "Admin token:\t%t\n", st.HasAdminToken)
	if c := st.Claims; c != nil && c.ExpiresAt != nil {
		state := "valid"
		if c.Expired(timeNow()) {
			state = "expired"
		}
		fmt.Fprintf(w, "Expires:\t%s (%s)\n", c.ExpiresAt.Local().Format("2006-01-02 15:04"), state)
	}
	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
