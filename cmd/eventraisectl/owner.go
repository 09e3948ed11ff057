package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/pkg/engagement"
	"github.com/raoc-coder/eventraisehub/pkg/fundraising"
	"github.com/spf13/cobra"
)

func newRegistrationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "registrations", Short: "Owner registrations panel"}
	cmd.AddCommand(newRegListCmd(a), newRegBulkCmd(a), newRegExportCmd(a), newAnalyticsCmd(a))
	return cmd
}

func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return &t, nil
}

func newRegListCmd(a *app) *cobra.Command {
	var kind, from, to string
	var page int
	cmd := &cobra.Command{
		Use:   "list EVENT_ID",
		Short: "List registrations, twenty per page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := eventArg(args)
			if err != nil {
				return err
			}
			fromT, err := parseDay(from)
			if err != nil {
				return err
			}
			toT, err := parseDay(to)
			if err != nil {
				return err
			}
			panel := engagement.NewRegistrationsPanel(a.client(), id)
			panel.SetFilter(kind, fromT, toT)
			panel.Filter.Page = page
			if err := panel.Load(cmd.Context()); err != nil {
				return userError(cmd, err, "Failed to load registrations")
			}

			w := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tTYPE\tQTY\tSTATUS\tCREATED")
			for _, r := range panel.Rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n", r.ID, r.Name, r.Email, r.Type, r.Quantity, r.Status, r.CreatedAt.Format(time.DateOnly))
			}
			tw.Flush()
			fmt.Fprintf(w, "Page %d of %d (%d total)\n", panel.Filter.Page, panel.Pages(), panel.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "type", "all", "rsvp, ticket or all")
	cmd.Flags().StringVar(&from, "from", "", "created on or after YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "created on or before YYYY-MM-DD")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func newRegBulkCmd(a *app) *cobra.Command {
	var status string
	var ids []string
	var all bool
	cmd := &cobra.Command{
		Use:   "set-status EVENT_ID",
		Short: "Confirm or cancel registrations on the first page in one request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := eventArg(args)
			if err != nil {
				return err
			}
			panel := engagement.NewRegistrationsPanel(a.client(), id)
			if err := panel.Load(cmd.Context()); err != nil {
				return userError(cmd, err, "Failed to load registrations")
			}
			panel.SelectAll(all)
			for _, s := range ids {
				rid, err := uuid.Parse(s)
				if err != nil {
					return fmt.Errorf("invalid registration id %q", s)
				}
				panel.Toggle(rid)
			}
			n, err := panel.BulkUpdate(cmd.Context(), status)
			if err != nil {
				return userError(cmd, err, "Failed to update registrations")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d registration(s)\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "confirmed or cancelled")
	cmd.Flags().StringSliceVar(&ids, "id", nil, "registration id to toggle (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "start with every row on the page selected")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

func newRegExportCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export EVENT_ID",
		Short: "Download the registrations CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := eventArg(args)
			if err != nil {
				return err
			}
			api := a.client()
			page, err := engagement.NewLoader(api, engagement.WithSettleDelay(0)).Load(cmd.Context(), id)
			if err != nil {
				return userError(cmd, err, "Event not found")
			}
			path, err := engagement.ExportCSV(cmd.Context(), api, page.Event, dir, time.Now())
			if err != nil {
				return userError(cmd, err, engagement.ErrExportFailed.Error())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "output directory")
	return cmd
}

func newAnalyticsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics EVENT_ID",
		Short: "Show registration and revenue totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := eventArg(args)
			if err != nil {
				return err
			}
			s, err := engagement.LoadAnalytics(cmd.Context(), a.client(), id)
			if err != nil {
				return userError(cmd, err, "Failed to load analytics")
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Registrations: %d (%d RSVP, %d ticket), %d attendees\n",
				s.Registrations.Total, s.Registrations.RSVP, s.Registrations.Ticket, s.Registrations.Attendees)
			fmt.Fprintf(w, "Confirmed %d, pending %d, cancelled %d\n",
				s.Registrations.Confirmed, s.Registrations.Pending, s.Registrations.Cancelled)
			fmt.Fprintf(w, "Revenue: %s gross, %s fees, %s net\n",
				fundraising.FormatUSD(s.Revenue.Gross.InexactFloat64()),
				fundraising.FormatUSD(s.Revenue.Fees.InexactFloat64()),
				fundraising.FormatUSD(s.Revenue.Net.InexactFloat64()))
			return nil
		},
	}
}

func newPayoutsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "payouts", Short: "Admin payout management"}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List payouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payouts, err := a.client().ListPayouts(cmd.Context(), status)
			if err != nil {
				return userError(cmd, err, "Failed to load payouts")
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tEVENT\tDONATIONS\tGROSS\tNET\tSTATUS")
			for _, p := range payouts {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n", p.ID, p.EventID, p.DonationCount,
					fundraising.FormatUSD(p.Gross.InexactFloat64()), fundraising.FormatUSD(p.Net.InexactFloat64()), p.Status)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&status, "status", "", "filter by status")

	create := &cobra.Command{
		Use:   "create EVENT_ID",
		Short: "Pay out an event's settled donations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := eventArg(args)
			if err != nil {
				return err
			}
			p, err := a.client().CreatePayout(cmd.Context(), id)
			if err != nil {
				return userError(cmd, err, "Failed to create payout")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Payout %s for %s net is %s\n", p.ID, fundraising.FormatUSD(p.Net.InexactFloat64()), p.Status)
			return nil
		},
	}

	var notes string
	setStatus := &cobra.Command{
		Use:   "set-status PAYOUT_ID STATUS",
		Short: "Move a payout to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid payout id %q", args[0])
			}
			p, err := a.client().UpdatePayoutStatus(cmd.Context(), id, args[1], notes)
			if err != nil {
				return userError(cmd, err, "Failed to update payout")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Payout %s is %s\n", p.ID, p.Status)
			return nil
		},
	}
	setStatus.Flags().StringVar(&notes, "notes", "", "notes stored with the payout")

	cmd.AddCommand(list, create, setStatus)
	return cmd
}
