package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"jobtrack/internal/classify"
	"jobtrack/internal/config"
	"jobtrack/internal/extract"
	"jobtrack/internal/mailbox"
	"jobtrack/internal/secrets"
	"jobtrack/internal/store"
)

type extractFlags struct {
	since string
	until string
	days  int
	limit int
}

func (f extractFlags) options() (extract.Options, error) {
	var opts extract.Options

	if f.since != "" && f.days > 0 {
		return opts, errors.New("--since and --days are mutually exclusive")
	}
	if f.days > 0 {
		opts.Since = time.Now().AddDate(0, 0, -f.days)
	}
	if f.since != "" {
		t, err := time.Parse("2006-01-02", f.since)
		if err != nil {
			return opts, fmt.Errorf("bad --since: %w", err)
		}
		opts.Since = t
	}
	if f.until != "" {
		t, err := time.Parse("2006-01-02", f.until)
		if err != nil {
			return opts, fmt.Errorf("bad --until: %w", err)
		}
		opts.Until = t
	}
	opts.Limit = f.limit
	return opts, nil
}

func newExtractCmd() *cobra.Command {
	var flags extractFlags

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Pull application emails from the mailbox and classify them",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			cfg, err := loadConfig(resolveDataDir())
			if err != nil {
				return err
			}

			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			return runExtract(cmd.Context(), st, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&flags.since, "since", "", "only emails on/after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.until, "until", "", "only emails on/before this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&flags.days, "days", 0, "only emails from the last N days")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "stop after adding N records (0 = unlimited)")
	return cmd
}

// runExtract wires mailbox + classifier and runs the stage. Shared with
// the pipeline driver so `run` does not reopen the store.
func runExtract(ctx context.Context, st *store.Store, cfg config.Config, opts extract.Options) error {
	apiKey, err := secrets.GetAPIKey()
	if err != nil {
		return err
	}
	password, err := secrets.GetIMAPPassword(secrets.IMAPKeyringAccount(cfg))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Minute)
	defer cancel()

	addr := fmt.Sprintf("%s:%d", cfg.Mailbox.IMAPHost, cfg.Mailbox.IMAPPort)
	mb, err := mailbox.Dial(ctx, addr, cfg.Mailbox.Username, password, mailbox.GmailTLSConfig(cfg.Mailbox.IMAPHost))
	if err != nil {
		return err
	}
	defer mb.Logout()

	if err := mb.SelectMailbox(cfg.Mailbox.Mailbox); err != nil {
		return err
	}

	cl := classify.New(cfg, apiKey)

	_, err = extract.Run(ctx, st, cfg, mb, cl, opts)
	return err
}
