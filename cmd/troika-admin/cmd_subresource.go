package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

var subCmd = &cobra.Command{
	Use:   "sub",
	Short: "Manage email-templates, whatsapp-proposals, social-links and custom-nav-items",
}

var subListCmd = &cobra.Command{
	Use:   "list <chatbot-id> <kind>",
	Short: "List items",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[1])
		if err != nil {
			return err
		}
		items, err := a.subs.List(cmd.Context(), args[0], kind)
		if err != nil {
			return err
		}
		return printJSON(cmd, items)
	},
}

var subCreateCmd = &cobra.Command{
	Use:   "create <chatbot-id> <kind>",
	Short: "Create an item from JSON (--file or stdin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[1])
		if err != nil {
			return err
		}
		raw, err := readInput(cmd)
		if err != nil {
			return err
		}
		item, err := a.subs.Create(cmd.Context(), args[0], kind, raw)
		if err != nil {
			return err
		}
		return printJSON(cmd, item)
	},
}

var subUpdateCmd = &cobra.Command{
	Use:   "update <chatbot-id> <kind> <item-id>",
	Short: "Replace an item with JSON (--file or stdin)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[1])
		if err != nil {
			return err
		}
		raw, err := readInput(cmd)
		if err != nil {
			return err
		}
		item, err := a.subs.Update(cmd.Context(), args[0], kind, args[2], raw)
		if err != nil {
			return err
		}
		return printJSON(cmd, item)
	},
}

var subDeleteCmd = &cobra.Command{
	Use:   "delete <chatbot-id> <kind> <item-id>",
	Short: "Delete an item",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[1])
		if err != nil {
			return err
		}
		if err := a.subs.Delete(cmd.Context(), args[0], kind, args[2]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(subCmd)
	subCmd.AddCommand(subListCmd, subCreateCmd, subUpdateCmd, subDeleteCmd)
	for _, c := range []*cobra.Command{subCreateCmd, subUpdateCmd} {
		c.Flags().StringP("file", "f", "", "JSON file (stdin when omitted)")
	}
}

func parseKind(s string) (models.SubResourceKind, error) {
	k := models.SubResourceKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown kind %q", s)
	}
	return k, nil
}
