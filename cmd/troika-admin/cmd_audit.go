package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/analytics"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/audit"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Local log of changes made from this machine",
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded changes, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := cmd.Flags()
		filter := audit.Filter{}
		filter.Actor, _ = f.GetString("actor")
		filter.Action, _ = f.GetString("action")
		filter.Entity, _ = f.GetString("entity")
		filter.EntityID, _ = f.GetString("id")
		filter.Page, _ = f.GetInt("page")
		filter.PageSize, _ = f.GetInt("limit")

		from, _ := f.GetString("from")
		to, _ := f.GetString("to")
		r, err := analytics.CustomRange(from, to, time.Local)
		if err != nil {
			return err
		}
		if !r.Start.IsZero() {
			filter.StartDate = &r.Start
		}
		if !r.End.IsZero() {
			filter.EndDate = &r.End
		}

		page, err := a.audit.List(cmd.Context(), filter)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, page)
		}

		w := newTable(cmd)
		fmt.Fprintln(w, "TIME\tACTOR\tACTION\tENTITY\tID\tSTATUS\tDESCRIPTION")
		for _, l := range page.Logs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
				l.CreatedAt.Local().Format("2006-01-02 15:04"), orDash(l.Actor), l.Action, l.Entity,
				orDash(l.EntityID), l.Status, l.Description)
		}
		fmt.Fprintf(w, "\nPage %d of %d (%d entries)\n", page.Page, page.TotalPages, page.TotalCount)
		return w.Flush()
	},
}

var auditPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete entries older than --days",
	RunE: func(cmd *cobra.Command, _ []string) error {
		days, _ := cmd.Flags().GetInt("days")
		n, err := a.audit.Prune(cmd.Context(), days)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries.\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditListCmd, auditPruneCmd)

	f := auditListCmd.Flags()
	f.String("actor", "", "Filter by operator email")
	f.String("action", "", "create, update, delete, login or logout")
	f.String("entity", "", "Filter by entity")
	f.String("id", "", "Filter by entity id")
	f.String("from", "", "Start date YYYY-MM-DD")
	f.String("to", "", "End date YYYY-MM-DD")
	f.Int("page", 1, "Page number")
	f.Int("limit", 20, "Entries per page")

	auditPruneCmd.Flags().Int("days", 90, "Keep this many days")
}
