package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newTokenCmd(e *env) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "token <subject>",
		Short: "Issue a session token for the API and the TUI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if e.services.Verifier == nil {
				return errors.New("JWT_SECRET is not set")
			}

			token, err := e.services.Verifier.Issue(args[0], email)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email claim to embed in the token")

	return cmd
}
