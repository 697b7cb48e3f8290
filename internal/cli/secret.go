package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"jobtrack/internal/secrets"
)

func newSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage credentials in the system keyring",
	}
	cmd.AddCommand(newSecretSetCmd(), newSecretDeleteCmd())
	return cmd
}

func newSecretSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set {api-key|imap}",
		Short:     "Store a credential, prompting on stdin",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"api-key", "imap"},
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := promptSecret(args[0])
			if err != nil {
				return err
			}

			switch args[0] {
			case "api-key":
				return secrets.SetAPIKey(value)
			case "imap":
				cfg, err := loadConfig(resolveDataDir())
				if err != nil {
					return err
				}
				return secrets.SetIMAPPassword(secrets.IMAPKeyringAccount(cfg), value)
			default:
				return fmt.Errorf("unknown secret %q", args[0])
			}
		},
	}
}

func newSecretDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "delete {api-key|imap}",
		Short:     "Remove a credential from the keyring",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"api-key", "imap"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "api-key":
				return secrets.DeleteAPIKey()
			case "imap":
				cfg, err := loadConfig(resolveDataDir())
				if err != nil {
					return err
				}
				return secrets.DeleteIMAPPassword(secrets.IMAPKeyringAccount(cfg))
			default:
				return fmt.Errorf("unknown secret %q", args[0])
			}
		},
	}
}

func promptSecret(name string) (string, error) {
	fmt.Fprintf(os.Stderr, "enter %s: ", name)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	if len(b) == 0 {
		return "", errors.New("empty value")
	}
	return string(b), nil
}
