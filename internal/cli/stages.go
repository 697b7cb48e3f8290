package cli

import (
	"os"

	"github.com/spf13/cobra"

	"jobtrack/internal/dedupe"
	"jobtrack/internal/export"
	"jobtrack/internal/stats"
	"jobtrack/internal/store"
	"jobtrack/internal/visualize"
)

func newDedupeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dedupe",
		Short: "Merge records that describe the same application",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			_, _, err = dedupe.Run(st)
			return err
		},
	}
}

func newExportCmd() *cobra.Command {
	var opts export.Options

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the record store to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			_, err = export.Run(st, opts)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.Output, "output", "", "output path (default data/job_applications.csv)")
	cmd.Flags().StringSliceVar(&opts.Statuses, "status", nil, "filter by status, e.g. --status applied,interview")
	cmd.Flags().StringVar(&opts.Since, "since", "", "only records on/after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Until, "until", "", "only records on/before this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "limit rows after sorting by date desc (0 = all)")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print aggregate statistics for the record store",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			return runStats(st)
		},
	}
}

func runStats(st *store.Store) error {
	records, err := st.LoadRecords()
	if err != nil {
		return err
	}
	stats.WriteReport(os.Stdout, stats.Compute(records))
	return nil
}

func newVisualizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "visualize",
		Short: "Render HTML charts from the record store",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			_, err = visualize.Run(st)
			return err
		},
	}
}
