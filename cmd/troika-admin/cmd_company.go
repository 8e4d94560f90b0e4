package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/scheduler"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/forms"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/services"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/shared/utils"
)

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage companies",
}

var companyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List companies with their credit balances",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rows, err := a.overview.Companies(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, rows)
		}
		return printCompanies(cmd, rows)
	},
}

var companyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a company",
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := cmd.Flags()
		form := &forms.AddCompany{}
		form.Name, _ = f.GetString("name")
		form.URL, _ = f.GetString("url")
		form.Email, _ = f.GetString("email")
		form.Password, _ = f.GetString("password")
		form.ConfirmPassword, _ = f.GetString("confirm-password")
		form.ManagedByName, _ = f.GetString("managed-by")

		company, err := a.companies.Create(cmd.Context(), form)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Company %s created (%s)\n", company.Name, company.ID)
		return nil
	},
}

var companyUpdateCmd = &cobra.Command{
	Use:   "update <company-id>",
	Short: "Update company details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		form := &forms.EditCompany{}
		form.Name, _ = f.GetString("name")
		form.URL, _ = f.GetString("url")
		form.Email, _ = f.GetString("email")
		form.ManagedByName, _ = f.GetString("managed-by")

		company, err := a.companies.Update(cmd.Context(), args[0], form)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Company %s updated\n", company.Name)
		return nil
	},
}

var companyPasswordCmd = &cobra.Command{
	Use:   "reset-password <company-id>",
	Short: "Set a new login password for a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		form := &forms.ResetPassword{}
		form.Password, _ = cmd.Flags().GetString("password")
		form.ConfirmPassword, _ = cmd.Flags().GetString("confirm-password")
		if err := a.companies.ResetPassword(cmd.Context(), args[0], form); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Password updated.")
		return nil
	},
}

var companyDeleteCmd = &cobra.Command{
	Use:   "delete <company-id>",
	Short: "Delete a company (requires the admin token)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := a.companies.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Company deleted.")
		return nil
	},
}

var creditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Inspect and adjust company credits",
}

var creditsShowCmd = &cobra.Command{
	Use:   "show <company-id>",
	Short: "Show the credit balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		balance, err := a.credits.Balance(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, balance)
		}
		w := newTable(cmd)
		fmt.Fprintf(w, "Total:\t%d\nUsed:\t%d\nRemaining:\t%d\n", balance.TotalCredits, balance.UsedCredits, balance.RemainingCredits)
		return w.Flush()
	},
}

var creditsHistoryCmd = &cobra.Command{
	Use:   "history <company-id>",
	Short: "Show the credit ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := a.credits.History(cmd.Context(), args[0], page, limit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, entries)
		}
		w := newTable(cmd)
		fmt.Fprintln(w, "DATE\tOPERATION\tDELTA\tREMAINING\tADMIN\tREASON")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%+d\t%d\t%s\t%s\n",
				formatDate(e.CreatedAt), e.Operation, e.Delta, e.RemainingCredits, orDash(e.AdminName), e.Reason)
		}
		return w.Flush()
	},
}

var creditsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically report companies running low on credits",
	RunE:  runCreditsWatch,
}

func adjustCmd(op models.CreditOperation, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(op) + " <company-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := &forms.CreditAdjustment{Operation: op}
			form.Amount, _ = cmd.Flags().GetInt("amount")
			form.Reason, _ = cmd.Flags().GetString("reason")

			balance, err := a.credits.Adjust(cmd.Context(), args[0], form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Remaining credits: %d of %d\n", balance.RemainingCredits, balance.TotalCredits)
			return nil
		},
	}
	cmd.Flags().Int("amount", 0, "Number of credits")
	cmd.Flags().String("reason", "", "Reason recorded in the ledger")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func init() {
	rootCmd.AddCommand(companyCmd, creditsCmd)
	companyCmd.AddCommand(companyListCmd, companyCreateCmd, companyUpdateCmd, companyPasswordCmd, companyDeleteCmd)
	creditsCmd.AddCommand(
		creditsShowCmd,
		creditsHistoryCmd,
		creditsWatchCmd,
		adjustCmd(models.CreditAssign, "Set the total credit allocation"),
		adjustCmd(models.CreditAdd, "Add credits"),
		adjustCmd(models.CreditRemove, "Remove unused credits"),
	)

	for _, c := range []*cobra.Command{companyCreateCmd, companyUpdateCmd} {
		c.Flags().String("name", "", "Company name")
		c.Flags().String("url", "", "Company website")
		c.Flags().String("email", "", "Login email")
		c.Flags().String("managed-by", "", "Account manager name")
	}
	for _, c := range []*cobra.Command{companyCreateCmd, companyPasswordCmd} {
		c.Flags().String("password", "", "Login password")
		c.Flags().String("confirm-password", "", "Repeat the password")
	}

	creditsHistoryCmd.Flags().Int("page", 1, "Page number")
	creditsHistoryCmd.Flags().Int("limit", 20, "Entries per page")

	creditsWatchCmd.Flags().String("schedule", "", "Cron spec (defaults to CREDIT_WATCH_SCHEDULE)")
	creditsWatchCmd.Flags().Int("threshold", -1, "Report companies below this many credits (defaults to CREDIT_WATCH_THRESHOLD)")
}

func printCompanies(cmd *cobra.Command, rows []services.CompanyRow) error {
	w := newTable(cmd)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tMANAGED BY\tREMAINING\tTOTAL")
	for _, r := range rows {
		remaining, total := "?", "?"
		if r.Credits != nil {
			remaining = fmt.Sprint(r.Credits.RemainingCredits)
			total = fmt.Sprint(r.Credits.TotalCredits)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Company.ID, r.Company.Name, r.Company.Email, orDash(r.Company.ManagedByName), remaining, total)
	}
	return w.Flush()
}

func runCreditsWatch(cmd *cobra.Command, _ []string) error {
	spec, _ := cmd.Flags().GetString("schedule")
	if spec == "" {
		spec = a.cfg.CreditWatchSchedule
	}
	threshold, _ := cmd.Flags().GetInt("threshold")
	if threshold < 0 {
		threshold = a.cfg.CreditWatchThreshold
	}

	watcher := services.NewCreditWatcher(a.overview, threshold, utils.Component("credit-watch"))
	watcher.OnLow = func(rows []services.CompanyRow) {
		if len(rows) == 0 {
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d companies below %d credits\n", timeNow().Format("15:04"), len(rows), threshold)
		_ = printCompanies(cmd, rows)
	}

	sched := scheduler.New(utils.Component("scheduler"))
	if err := watcher.Register(sched, spec); err != nil {
		return err
	}

	// first report right away
	if _, err := watcher.Check(cmd.Context()); err != nil {
		return err
	}

	sched.Start()
	<-cmd.Context().Done()
	<-sched.Stop().Done()
	return nil
}
