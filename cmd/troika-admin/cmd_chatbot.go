package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/forms"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

var chatbotCmd = &cobra.Command{
	Use:   "chatbot",
	Short: "Manage chatbots and their subscriptions",
}

var chatbotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List chatbots with plan and expiry",
	RunE: func(cmd *cobra.Command, _ []string) error {
		companyID, _ := cmd.Flags().GetString("company")
		rows, err := a.overview.Chatbots(cmd.Context(), companyID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, rows)
		}
		w := newTable(cmd)
		fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tSTATUS\tPLAN\tEXPIRES\tDAYS LEFT")
		for _, r := range rows {
			days := "-"
			if r.Subscription != nil {
				days = fmt.Sprint(r.DaysLeft)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				r.Chatbot.ID, r.Chatbot.Name, orDash(r.Chatbot.CompanyName), orDash(r.Chatbot.Status),
				orDash(r.PlanName), formatDate(r.ExpiresAt), days)
		}
		return w.Flush()
	},
}

var chatbotCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a chatbot for a company",
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := cmd.Flags()
		form := &forms.ChatbotForm{}
		form.Name, _ = f.GetString("name")
		form.CompanyID, _ = f.GetString("company")
		form.PlanID, _ = f.GetString("plan")
		form.Months, _ = f.GetInt("months")

		bot, err := a.chatbots.Create(cmd.Context(), form)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Chatbot %s created (%s)\n", bot.Name, bot.ID)
		return nil
	},
}

var chatbotRenameCmd = &cobra.Command{
	Use:   "rename <chatbot-id> <name>",
	Short: "Rename a chatbot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bot, err := a.chatbots.Rename(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Chatbot renamed to %s\n", bot.Name)
		return nil
	},
}

var chatbotDeleteCmd = &cobra.Command{
	Use:   "delete <chatbot-id>",
	Short: "Delete a chatbot (requires the admin token)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := a.chatbots.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Chatbot deleted.")
		return nil
	},
}

var chatbotRenewCmd = &cobra.Command{
	Use:   "renew <chatbot-id>",
	Short: "Extend the chatbot subscription",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		form := &forms.RenewForm{}
		form.PlanID, _ = cmd.Flags().GetString("plan")
		form.Months, _ = cmd.Flags().GetInt("months")
		if err := a.chatbots.Renew(cmd.Context(), args[0], form); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Subscription renewed for %d months.\n", form.Months)
		return nil
	},
}

var chatbotStatusCmd = &cobra.Command{
	Use:       "status <chatbot-id> <active|inactive>",
	Short:     "Activate or deactivate a chatbot",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{models.ChatbotActive, models.ChatbotInactive},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := a.chatbots.SetStatus(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Chatbot is now %s.\n", args[1])
		return nil
	},
}

var chatbotPersonaCmd = &cobra.Command{
	Use:   "persona <chatbot-id>",
	Short: "Show the persona, or replace it with --file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			persona, err := a.chatbots.Persona(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, persona)
		}

		raw, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		var persona models.Persona
		if err := json.Unmarshal(raw, &persona); err != nil {
			return fmt.Errorf("invalid persona file: %w", err)
		}
		if err := a.chatbots.UpdatePersona(cmd.Context(), args[0], persona); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Persona updated.")
		return nil
	},
}

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List subscription plans",
	RunE: func(cmd *cobra.Command, _ []string) error {
		resp, err := a.api.ListPlans(cmd.Context())
		if err != nil {
			return err
		}
		var plans []models.Plan
		if err := resp.DecodeData(&plans); err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, plans)
		}
		w := newTable(cmd)
		fmt.Fprintln(w, "ID\tNAME\tPRICE\tDAYS\tCREDITS")
		for _, p := range plans {
			fmt.Fprintf(w, "%s\t%s\t%.2f %s\t%d\t%d\n", p.ID, p.Name, p.Price, p.Currency, p.DurationDays, p.Credits)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(chatbotCmd)
	chatbotCmd.AddCommand(chatbotListCmd, chatbotCreateCmd, chatbotRenameCmd, chatbotDeleteCmd,
		chatbotRenewCmd, chatbotStatusCmd, chatbotPersonaCmd, plansCmd)

	chatbotListCmd.Flags().String("company", "", "Only chatbots of this company")

	chatbotCreateCmd.Flags().String("name", "", "Chatbot name")
	chatbotCreateCmd.Flags().String("company", "", "Owning company id")
	chatbotCreateCmd.Flags().String("plan", "", "Plan id")
	chatbotCreateCmd.Flags().Int("months", 0, "Initial subscription length")

	chatbotRenewCmd.Flags().String("plan", "", "Plan id")
	chatbotRenewCmd.Flags().Int("months", 1, "Months to add")

	chatbotPersonaCmd.Flags().String("file", "", "JSON file with the new persona")
}
