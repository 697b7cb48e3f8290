// Package cli wires the stage commands. Each stage is independently
// invocable; `run` chains all five.
package cli

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"jobtrack/internal/config"
	"jobtrack/internal/store"
)

var dataDirFlag string

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jobtrack",
		Short:         "Track job applications extracted from your mailbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// optional; same location the original tooling used
			_ = godotenv.Load(filepath.Join("config", ".env"))
		},
	}

	root.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default $JOBTRACK_DATA_DIR or .)")

	root.AddCommand(
		newExtractCmd(),
		newDedupeCmd(),
		newExportCmd(),
		newStatsCmd(),
		newVisualizeCmd(),
		newRunCmd(),
		newSecretCmd(),
	)
	return root
}

func resolveDataDir() string {
	if dataDirFlag != "" {
		return dataDirFlag
	}
	if v := os.Getenv("JOBTRACK_DATA_DIR"); v != "" {
		return v
	}
	return "."
}

// loadConfig bootstraps the user config under the data dir, then loads
// and validates it. Only the stages that talk to external services need
// it; the local stages work from the store alone.
func loadConfig(root string) (config.Config, error) {
	userPath, err := config.EnsureUserConfig(root, filepath.Join("config", "config.yml"))
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(userPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func openStore() (*store.Store, error) {
	return store.Open(resolveDataDir())
}
