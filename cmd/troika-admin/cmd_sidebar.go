package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/qr"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/models"
)

var whatsappQRCmd = &cobra.Command{
	Use:   "whatsapp-qr <chatbot-id>",
	Short: "Render the sidebar WhatsApp click-to-chat link as a QR code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := a.configs.Get(cmd.Context(), args[0], models.FeatureSidebar, false)
		if err != nil {
			return err
		}
		var sidebar models.SidebarConfig
		if err := json.Unmarshal(raw, &sidebar); err != nil {
			return fmt.Errorf("failed to decode sidebar config: %w", err)
		}
		if !sidebar.WhatsApp.Enabled || sidebar.WhatsApp.Value == "" {
			return fmt.Errorf("the WhatsApp sidebar channel is not configured for this chatbot")
		}

		link, err := qr.WhatsAppLink(sidebar.WhatsApp.Value, sidebar.WhatsApp.Message)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		if out != "" {
			size, _ := cmd.Flags().GetInt("size")
			png, err := qr.PNG(link, size)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, png, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\nSaved %s\n", link, out)
			return nil
		}

		art, err := qr.Terminal(link)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s", link, art)
		return nil
	},
}

func init() {
	configCmd.AddCommand(whatsappQRCmd)
	whatsappQRCmd.Flags().StringP("output", "o", "", "Write a PNG instead of printing")
	whatsappQRCmd.Flags().Int("size", 256, "PNG size in pixels")
}
