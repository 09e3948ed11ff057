package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/pkg/engagement"
	"github.com/raoc-coder/eventraisehub/pkg/fundraising"
	"github.com/spf13/cobra"
)

func newEventCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "event", Short: "Show and edit events"}
	cmd.AddCommand(newEventShowCmd(a), newEventEditCmd(a), newQuickAskCmd(a))
	return cmd
}

func newEventShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show EVENT_ID",
		Short: "Render an event page with progress, tickets and volunteer shifts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := eventArg(args)
			if err != nil {
				return err
			}
			page, err := a.loader().Load(cmd.Context(), id)
			if err != nil {
				return userError(cmd, err, "Event not found")
			}
			printPage(cmd.OutOrStdout(), page)

			if fees, err := a.client().PlatformFees(cmd.Context()); err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), engagement.FeeDisclosure(&fees.FeePercent))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), engagement.FeeDisclosure(nil))
			}
			return nil
		},
	}
}

func printPage(w io.Writer, page *engagement.Page) {
	e := page.Event
	fmt.Fprintln(w, e.Title)
	if e.Location != "" {
		fmt.Fprintln(w, e.Location)
	}
	if e.Description != "" {
		fmt.Fprintln(w, e.Description)
	}
	if page.Progress.Visible {
		fmt.Fprintf(w, "%s of %s\n", page.Progress.Label, fundraising.FormatUSD(e.Goal))
	}

	if tickets := page.TicketList(); len(tickets) > 0 {
		fmt.Fprintln(w, "\nTickets")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, t := range tickets {
			left := "unlimited"
			if t.Remaining != nil {
				left = fmt.Sprintf("%d left", *t.Remaining)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, fundraising.FormatUSD(float64(t.PriceCents)/100), t.AvailabilityAt(time.Now()), left)
		}
		tw.Flush()
	}

	if shifts := page.ShiftList(); len(shifts) > 0 {
		fmt.Fprintln(w, "\nVolunteer shifts")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, s := range shifts {
			spots := fundraising.SpotsLeft(s.MaxVolunteers, s.CurrentVolunteers)
			fmt.Fprintf(tw, "%s\t%s\t%d spots left\n", s.ID, s.Title, spots)
		}
		tw.Flush()
	}
}

func newEventEditCmd(a *app) *cobra.Command {
	var title, description, location string
	cmd := &cobra.Command{
		Use:   "edit EVENT_ID",
		Short: "Update an event's title, description or location",
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
			flags := cmd.Flags()
			if flags.Changed("title") {
				page.Draft.Title = title
			}
			if flags.Changed("description") {
				page.Draft.Description = description
			}
			if flags.Changed("location") {
				page.Draft.Location = location
			}
			if err := engagement.SaveDraft(cmd.Context(), api, page); err != nil {
				return userError(cmd, err, "Failed to update event")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", page.Event.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&location, "location", "", "new location")
	return cmd
}

func newQuickAskCmd(a *app) *cobra.Command {
	var user, title string
	cmd := &cobra.Command{
		Use:   "ask-volunteers EVENT_ID",
		Short: "Open a volunteer shift with just a title (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := eventArg(args)
			if err != nil {
				return err
			}
			userID, err := uuid.Parse(user)
			if err != nil {
				return fmt.Errorf("invalid --user %q", user)
			}
			api := a.client()
			page, err := engagement.NewLoader(api, engagement.WithSettleDelay(0)).Load(cmd.Context(), id)
			if err != nil {
				return userError(cmd, err, "Event not found")
			}
			shift, err := engagement.NewController(api, page, nil).QuickAsk(cmd.Context(), userID, title)
			if err != nil {
				return userError(cmd, err, "Failed to create volunteer shift")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created shift %s (%s)\n", shift.Title, shift.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "your user id")
	cmd.Flags().StringVar(&title, "title", "", "shift title")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
