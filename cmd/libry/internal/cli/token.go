package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MrJamesThe3rd/libry/internal/auth"
)

func newTokenCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "token [SUBJECT]",
		Short: "Mint a bearer token for the API",
		Long: "Mint a bearer token signed with AUTH_SECRET. When AUTH_SECRET is unset and stdin is a\n" +
			"terminal, the secret is read without echo.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject := "operator"
			if len(args) == 1 {
				subject = args[0]
			}

			secret := e.cfg.Auth.Secret
			if secret == "" {
				var err error
				if secret, err = promptSecret(cmd); err != nil {
					return err
				}
			}

			token, err := auth.NewTokens(secret, e.cfg.Auth.TokenTTL).Issue(subject)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)

			return nil
		},
	}
}

func promptSecret(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("AUTH_SECRET is not set")
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Signing secret: ")

	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())

	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}

	if len(secret) == 0 {
		return "", errors.New("empty secret")
	}

	return string(secret), nil
}
