package main

import (
	"fmt"
	"strconv"

	"github.com/raoc-coder/eventraisehub/pkg/engagement"
	"github.com/spf13/cobra"
)

type contact struct {
	name  string
	email string
}

func (c *contact) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.name, "name", "", "your name")
	cmd.Flags().StringVar(&c.email, "email", "", "your email")
}

func (c contact) fill(ctrl *engagement.Controller) {
	ctrl.Set(engagement.FieldName, c.name)
	ctrl.Set(engagement.FieldEmail, c.email)
}

// openForm loads the event page and opens the form of kind on it.
func (a *app) openForm(cmd *cobra.Command, args []string, kind engagement.ModalKind) (*engagement.Controller, error) {
	id, err := eventArg(args)
	if err != nil {
		return nil, err
	}
	api := a.client()
	page, err := engagement.NewLoader(api, engagement.WithSettleDelay(a.settle)).Load(cmd.Context(), id)
	if err != nil {
		return nil, userError(cmd, err, "Event not found")
	}
	ctrl := engagement.NewController(api, page, nil)
	ctrl.Open(kind)
	return ctrl, nil
}

func newRSVPCmd(a *app) *cobra.Command {
	var who contact
	var quantity int
	cmd := &cobra.Command{
		Use:   "rsvp EVENT_ID",
		Short: "RSVP to an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := a.openForm(cmd, args, engagement.ModalRSVP)
			if err != nil {
				return err
			}
			who.fill(ctrl)
			ctrl.Set(engagement.FieldQuantity, strconv.Itoa(quantity))
			reg, err := ctrl.SubmitRSVP(cmd.Context())
			if err != nil {
				return userError(cmd, err, "Failed to register")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %d attendee(s), status %s\n", reg.Quantity, reg.Status)
			return nil
		},
	}
	who.bind(cmd)
	cmd.Flags().IntVar(&quantity, "quantity", 1, "number of attendees")
	return cmd
}

func newTicketCmd(a *app) *cobra.Command {
	var who contact
	var ticket string
	var quantity int
	cmd := &cobra.Command{
		Use:   "buy-ticket EVENT_ID",
		Short: "Reserve tickets; priced tickets print a checkout link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := a.openForm(cmd, args, engagement.ModalTicket)
			if err != nil {
				return err
			}
			ctrl.Set(engagement.FieldTicket, ticket)
			ctrl.Set(engagement.FieldQuantity, strconv.Itoa(quantity))
			who.fill(ctrl)
			res, err := ctrl.SubmitTicketPurchase(cmd.Context())
			if err != nil {
				return userError(cmd, err, "Failed to purchase tickets")
			}
			if res.URL != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Complete payment at %s\n", res.URL)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tickets confirmed, status %s\n", res.Registration.Status)
			return nil
		},
	}
	who.bind(cmd)
	cmd.Flags().StringVar(&ticket, "ticket", "", "ticket type id")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "number of tickets")
	return cmd
}

func newVolunteerCmd(a *app) *cobra.Command {
	var who contact
	var shift, phone, skills string
	cmd := &cobra.Command{
		Use:   "volunteer EVENT_ID",
		Short: "Sign up for a volunteer shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := a.openForm(cmd, args, engagement.ModalVolunteer)
			if err != nil {
				return err
			}
			ctrl.Set(engagement.FieldShift, shift)
			ctrl.Set(engagement.FieldPhone, phone)
			ctrl.Set(engagement.FieldSkills, skills)
			who.fill(ctrl)
			signup, err := ctrl.SubmitVolunteerSignup(cmd.Context())
			if err != nil {
				return userError(cmd, err, "Failed to sign up")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed up for shift %s\n", signup.ShiftID)
			return nil
		},
	}
	who.bind(cmd)
	cmd.Flags().StringVar(&shift, "shift", "", "volunteer shift id")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&skills, "skills", "", "comma separated skills")
	return cmd
}

func newDonateCmd(a *app) *cobra.Command {
	var who contact
	var amount, message, paypalOrder string
	cmd := &cobra.Command{
		Use:   "donate EVENT_ID",
		Short: "Donate to an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := a.openForm(cmd, args, engagement.ModalDonation)
			if err != nil {
				return err
			}
			ctrl.Set(engagement.FieldCustomAmount, amount)
			ctrl.Set(engagement.FieldMessage, message)
			who.fill(ctrl)

			if paypalOrder != "" {
				d, err := ctrl.CompletePayPal(cmd.Context(), paypalOrder)
				if err != nil {
					return userError(cmd, err, engagement.ErrDonationFailed.Error())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded PayPal donation %s, status %s\n", d.ID, d.Status)
				return nil
			}
			url, err := ctrl.SubmitDonation(cmd.Context())
			if err != nil {
				return userError(cmd, err, engagement.ErrDonationFailed.Error())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Complete your donation at %s\n", url)
			return nil
		},
	}
	who.bind(cmd)
	cmd.Flags().StringVar(&amount, "amount", "", "whole dollar amount")
	cmd.Flags().StringVar(&message, "message", "", "optional message")
	cmd.Flags().StringVar(&paypalOrder, "paypal-order", "", "record an already captured PayPal order instead of starting checkout")
	return cmd
}
