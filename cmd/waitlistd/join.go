package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"landingwaitlist/internal/adapters/waitlistapi"
	"landingwaitlist/internal/submission"
)

var (
	serverURL   string
	joinTimeout time.Duration
)

func init() {
	joinCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "waitlist server URL")
	joinCmd.Flags().DurationVar(&joinTimeout, "timeout", submission.DefaultTimeout, "submission timeout")
}

var joinCmd = &cobra.Command{
	Use:   "join <email>",
	Short: "Add an email to a running server's waitlist",
	Long: `Submit an email through the same lifecycle as the signup form and print
the resulting message.

Examples:
  waitlistd join test@example.com
  waitlistd join --server https://waitlist.example.com test@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runJoin,
}

func runJoin(cmd *cobra.Command, args []string) error {
	client := waitlistapi.NewClient(serverURL, &http.Client{Timeout: joinTimeout + time.Second})
	out := cmd.OutOrStdout()
	ctrl := submission.NewController(client,
		submission.WithTimeout(joinTimeout),
		submission.WithObserver(func(s submission.State) {
			if s.Status == submission.StatusSubmitting {
				fmt.Fprintln(out, s.ButtonLabel())
			}
		}),
	)
	ctrl.UpdateEmail(args[0])
	state := ctrl.Submit(cmd.Context())
	fmt.Fprintln(out, state.Message())
	if state.Status == submission.StatusFailed {
		return errors.New(state.Failure.String())
	}
	return nil
}
