package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/oauth"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/forms"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/shared/utils"
)

var zohoCmd = &cobra.Command{
	Use:   "zoho",
	Short: "Link and test the Zoho CRM integration",
}

var zohoLinkCmd = &cobra.Command{
	Use:   "link <chatbot-id>",
	Short: "Authorize Zoho in the browser and obtain a refresh token",
	Long: `Opens the Zoho consent page and waits up to five minutes for the
redirect to reach the local callback server. The stored config is loaded
first and only the flags given here change it. The refresh token is printed
and only saved when --save is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runZohoLink,
}

var zohoTestCmd = &cobra.Command{
	Use:   "test <chatbot-id>",
	Short: "Check the stored Zoho credentials",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := a.zoho.TestConnection(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(zohoCmd)
	zohoCmd.AddCommand(zohoLinkCmd, zohoTestCmd)

	f := zohoLinkCmd.Flags()
	f.String("client-id", "", "Zoho client id")
	f.String("client-secret", "", "Zoho client secret")
	f.String("domain", defaultZohoDomain, "Zoho data center domain")
	f.String("module", defaultZohoModule, "CRM module leads are written to")
	f.Bool("enable", false, "Enable or disable the integration when saving (default: keep the stored setting)")
	f.Bool("save", false, "Save the config with the new refresh token")
	f.Duration("timeout", oauth.DefaultTimeout, "How long to wait for the authorization")
}

const (
	defaultZohoDomain = "zoho.com"
	defaultZohoModule = "Leads"
)

func runZohoLink(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	form, err := a.zoho.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := applyZohoFlags(cmd, form); err != nil {
		return err
	}
	save, _ := f.GetBool("save")
	timeout, _ := f.GetDuration("timeout")

	logger := utils.Component("zoho-oauth")
	server := oauth.NewCallbackServer(a.cfg.ZohoCallbackAddr, a.cfg.ZohoCallbackPath, logger)
	if err := server.Start(); err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}()

	redirect := server.RedirectURI()
	flow := oauth.NewFlow(oauth.NewBrowserPopup(server.Done()), server.Messages(),
		a.zoho.Exchanger(args[0], form, redirect), logger)
	flow.Timeout = timeout

	fmt.Fprintf(cmd.ErrOrStderr(), "Waiting for Zoho authorization (redirect URI %s)...\n", redirect)
	if err = a.zoho.Link(cmd.Context(), form, flow, redirect); err != nil {
		return err
	}

	if !save {
		fmt.Fprintf(cmd.OutOrStdout(), "Refresh token: %s\nRun again with --save, or store it with `config set %s zoho`.\n", form.RefreshToken, args[0])
		return nil
	}
	if err := a.zoho.Save(cmd.Context(), args[0], form); err != nil {
		return err
	}
	if form.Enabled {
		fmt.Fprintln(cmd.OutOrStdout(), "Zoho linked and saved.")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Zoho linked and saved (integration disabled; pass --enable to turn it on).")
	}
	return nil
}

// applyZohoFlags overrides the stored config with the flags that were set.
// Unset flags only fill fields that are empty in the stored config.
func applyZohoFlags(cmd *cobra.Command, form *forms.ZohoConfigForm) error {
	f := cmd.Flags()
	for name, dst := range map[string]*string{
		"client-id":     &form.ClientID,
		"client-secret": &form.ClientSecret,
		"domain":        &form.Domain,
		"module":        &form.Module,
	} {
		if !f.Changed(name) && *dst != "" {
			continue
		}
		v, err := f.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}
	if f.Changed("enable") {
		enabled, err := f.GetBool("enable")
		if err != nil {
			return err
		}
		form.Enabled = enabled
	}
	return nil
}
