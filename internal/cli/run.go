package cli

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"jobtrack/internal/dedupe"
	"jobtrack/internal/export"
	"jobtrack/internal/pipeline"
	"jobtrack/internal/visualize"
)

func newRunCmd() *cobra.Command {
	var (
		flags extractFlags
		reset bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: extract, dedupe, export, stats, visualize",
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

			if reset {
				removed, err := st.Reset()
				if err != nil {
					return err
				}
				for _, p := range removed {
					log.Printf("[run] removed %s", p)
				}
			}

			stages := []pipeline.Stage{
				{Name: "extract", Code: 2, Run: func(ctx context.Context) error {
					return runExtract(ctx, st, cfg, opts)
				}},
				{Name: "dedupe", Code: 3, Run: func(ctx context.Context) error {
					_, _, err := dedupe.Run(st)
					return err
				}},
				{Name: "export", Code: 4, Run: func(ctx context.Context) error {
					_, err := export.Run(st, export.Options{})
					return err
				}},
				{Name: "stats", Code: 5, Run: func(ctx context.Context) error {
					return runStats(st)
				}},
				{Name: "visualize", Code: 6, Run: func(ctx context.Context) error {
					_, err := visualize.Run(st)
					return err
				}},
			}

			return pipeline.Run(cmd.Context(), stages)
		},
	}

	cmd.Flags().StringVar(&flags.since, "since", "", "only emails on/after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.until, "until", "", "only emails on/before this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&flags.days, "days", 0, "only emails from the last N days")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "stop after adding N records (0 = unlimited)")
	cmd.Flags().BoolVar(&reset, "reset", false, "delete stored records, processed ids and outputs before running")
	return cmd
}
