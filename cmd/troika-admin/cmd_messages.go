package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/analytics"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/export"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/services"
)

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Browse and export chatbot message history",
}

var messagesListCmd = &cobra.Command{
	Use:   "list <chatbot-id>",
	Short: "Show one page of messages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := messageFilter(cmd)
		if err != nil {
			return err
		}
		page, _ := cmd.Flags().GetInt("page")
		result, err := a.messages.Page(cmd.Context(), args[0], filter, page)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, result)
		}

		w := newTable(cmd)
		fmt.Fprintln(w, "TIME\tSENDER\tSESSION\tUSER\tCONTENT")
		for _, m := range result.Messages {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				m.Timestamp.Local().Format(export.TimestampLayout), m.Sender, orDash(m.SessionID),
				export.UserType(m), truncate(m.Content, 80))
		}
		fmt.Fprintf(w, "\nPage %d of %d (%d messages)\n", result.Page, result.TotalPages, result.Total)
		return w.Flush()
	},
}

var messagesExportCmd = &cobra.Command{
	Use:   "export <chatbot-id>",
	Short: "Export paired user/bot turns as csv, xlsx or pdf",
	Args:  cobra.ExactArgs(1),
	RunE:  runMessagesExport,
}

var messagesDownloadCmd = &cobra.Command{
	Use:   "download <chatbot-id>",
	Short: "Download the backend-rendered export or --report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := messageFilter(cmd)
		if err != nil {
			return err
		}
		report, _ := cmd.Flags().GetBool("report")
		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			return fmt.Errorf("--output is required")
		}

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()

		contentType, err := a.messages.Download(cmd.Context(), args[0], report, filter, f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s)\n", out, contentType)
		return nil
	},
}

var messagesStatsCmd = &cobra.Command{
	Use:   "stats <chatbot-id>",
	Short: "Summarise message activity for a period",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := messageFilter(cmd)
		if err != nil {
			return err
		}
		messages, err := a.messages.History(cmd.Context(), args[0], filter)
		if err != nil {
			return err
		}
		activity := analytics.Summarize(messages, time.Local)
		activity.FillDays(analytics.DateRange{Start: filter.Start, End: filter.End})
		if jsonOutput {
			return printJSON(cmd, activity)
		}

		w := newTable(cmd)
		fmt.Fprintf(w, "Messages:\t%d (%d user, %d bot)\n", activity.Messages, activity.UserMessages, activity.BotMessages)
		fmt.Fprintf(w, "Sessions:\t%d (%d guest)\n", activity.Sessions, activity.GuestSessions)
		fmt.Fprintf(w, "Answered turns:\t%d\n", activity.Turns)
		for _, d := range activity.Daily {
			fmt.Fprintf(w, "  %s\t%d\n", d.Day.Format("2006-01-02"), d.Count)
		}
		return w.Flush()
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload <chatbot-id> <file>",
	Short: "Upload a knowledge file for a chatbot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		resp, err := a.api.UploadFile(cmd.Context(), args[0], filepath.Base(args[1]), f)
		if err != nil {
			return err
		}
		var out struct {
			Message string `json:"message"`
		}
		_ = resp.Decode(&out)
		fmt.Fprintln(cmd.OutOrStdout(), orDash(out.Message))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(messagesCmd, uploadCmd)
	messagesCmd.AddCommand(messagesListCmd, messagesExportCmd, messagesDownloadCmd, messagesStatsCmd)

	for _, c := range []*cobra.Command{messagesListCmd, messagesExportCmd, messagesDownloadCmd, messagesStatsCmd} {
		c.Flags().String("period", "", fmt.Sprintf("Named period %v", analytics.Periods))
		c.Flags().String("from", "", "Start date YYYY-MM-DD")
		c.Flags().String("to", "", "End date YYYY-MM-DD")
		c.Flags().String("email", "", "Only this user email")
		c.Flags().String("phone", "", "Only this user phone")
		c.Flags().String("session", "", "Only this session id")
		c.Flags().Bool("guest", false, "Only guest sessions")
	}
	for _, c := range []*cobra.Command{messagesExportCmd, messagesStatsCmd} {
		c.Flags().Int("max-pages", 0, "Stop after this many pages")
	}

	messagesListCmd.Flags().Int("page", 1, "Page number")
	messagesListCmd.Flags().Int("limit", 50, "Messages per page")

	messagesExportCmd.Flags().String("format", "csv", "csv, xlsx or pdf")
	messagesExportCmd.Flags().StringP("output", "o", "", "Output file (defaults to chat-history-<id>.<ext>, - for stdout)")

	messagesDownloadCmd.Flags().Bool("report", false, "Download the PDF report instead of the data export")
	messagesDownloadCmd.Flags().StringP("output", "o", "", "Output file")
}

func messageFilter(cmd *cobra.Command) (services.MessageFilter, error) {
	f := cmd.Flags()
	var filter services.MessageFilter

	period, _ := f.GetString("period")
	from, _ := f.GetString("from")
	to, _ := f.GetString("to")

	var r analytics.DateRange
	var err error
	if period != "" {
		r, err = analytics.Period(period, timeNow())
	} else {
		r, err = analytics.CustomRange(from, to, time.Local)
	}
	if err != nil {
		return filter, err
	}
	filter.Start, filter.End = r.Start, r.End

	filter.Email, _ = f.GetString("email")
	filter.Phone, _ = f.GetString("phone")
	filter.SessionID, _ = f.GetString("session")
	filter.GuestOnly, _ = f.GetBool("guest")
	if f.Lookup("limit") != nil {
		filter.PageSize, _ = f.GetInt("limit")
	}
	if f.Lookup("max-pages") != nil {
		filter.MaxPages, _ = f.GetInt("max-pages")
	}
	return filter, nil
}

func runMessagesExport(cmd *cobra.Command, args []string) error {
	filter, err := messageFilter(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("format")
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		out = fmt.Sprintf("chat-history-%s%s", args[0], export.NewService().FileExtension(format))
	}

	var w io.Writer = cmd.OutOrStdout()
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	n, err := a.messages.Export(cmd.Context(), args[0], filter, format, w)
	if err != nil {
		return err
	}
	if out != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d conversations to %s\n", n, out)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
