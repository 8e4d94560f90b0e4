package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write chatbot feature configs (ui, sidebar, auth, intent, transcript, zoho)",
}

var configGetCmd = &cobra.Command{
	Use:   "get <chatbot-id> <feature>",
	Short: "Print a feature config",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		feature, err := parseFeature(args[1])
		if err != nil {
			return err
		}
		public, _ := cmd.Flags().GetBool("public")
		raw, err := a.configs.Get(cmd.Context(), args[0], feature, public)
		if err != nil {
			return err
		}
		return printJSON(cmd, raw)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <chatbot-id> <feature>",
	Short: "Replace a feature config with JSON from --file or stdin",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		feature, err := parseFeature(args[1])
		if err != nil {
			return err
		}
		raw, err := readInput(cmd)
		if err != nil {
			return err
		}
		if err := a.configs.Set(cmd.Context(), args[0], feature, raw); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s config saved.\n", feature)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd, configSetCmd)
	configGetCmd.Flags().Bool("public", false, "Show the end-user view")
	configSetCmd.Flags().StringP("file", "f", "", "JSON file (stdin when omitted)")
}

func parseFeature(s string) (models.Feature, error) {
	f := models.Feature(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown feature %q (use one of %v)", s, models.Features)
	}
	return f, nil
}

// readInput returns --file contents, or stdin when no file is given
func readInput(cmd *cobra.Command) ([]byte, error) {
	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		return os.ReadFile(file)
	}
	return io.ReadAll(cmd.InOrStdin())
}
