package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/raoc-coder/eventraisehub/pkg/client"
	"github.com/raoc-coder/eventraisehub/pkg/engagement"
	"github.com/spf13/cobra"
)

type app struct {
	apiURL string
	token  string
	settle time.Duration
}

func (a *app) client() *client.Client {
	var opts []client.Option
	if a.token != "" {
		opts = append(opts, client.WithToken(a.token))
	}
	return client.New(a.apiURL, opts...)
}

func (a *app) loader() *engagement.Loader {
	return engagement.NewLoader(a.client(), engagement.WithSettleDelay(a.settle))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "eventraisectl",
		Short:         "Work with EventraiseHub events from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api", getEnv("EVENTRAISE_API_URL", "http://localhost:8080"), "API base URL")
	root.PersistentFlags().StringVar(&a.token, "token", os.Getenv("EVENTRAISE_TOKEN"), "bearer token")
	root.PersistentFlags().DurationVar(&a.settle, "settle", engagement.DefaultSettleDelay, "delay before loading event details")

	root.AddCommand(
		newEventCmd(a),
		newRSVPCmd(a),
		newDonateCmd(a),
		newVolunteerCmd(a),
		newTicketCmd(a),
		newRegistrationsCmd(a),
		newPayoutsCmd(a),
	)
	return root
}

// eventArg parses the leading event id argument.
func eventArg(args []string) (uuid.UUID, error) {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid event id %q", args[0])
	}
	return id, nil
}

// userError prints the user-facing message for err and returns it so the
// command exits non-zero.
func userError(cmd *cobra.Command, err error, fallback string) error {
	msg := engagement.UserMessage(err, fallback)
	fmt.Fprintln(cmd.ErrOrStderr(), "Error:", msg)
	return err
}
