package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/ismaspace-backend/internal/app"
	"github.com/yungbote/ismaspace-backend/internal/pkg/envutil"
	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "progressctl",
		Short:         "Operate the lesson catalog and learner progress store",
		SilenceUsage:  true,
	}
	root.PersistentFlags().String("db-driver", "", "Store driver: sqlite or postgres (overrides DB_DRIVER)")
	root.PersistentFlags().String("sqlite-path", "", "Path to the SQLite database file (overrides SQLITE_PATH)")

	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newLessonsCmd(),
		newProgressCmd(),
		newStatsCmd(),
		newToggleCmd(),
	)
	return root
}

// openCore loads config from the environment, applies flag overrides and
// opens the store. Seeding only happens through the seed command.
func openCore(cmd *cobra.Command) (*app.Core, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "test", nil))
	if err != nil {
		return nil, err
	}
	cfg := app.LoadConfig(log)
	if v, _ := cmd.Flags().GetString("db-driver"); v != "" {
		cfg.DB.Driver = v
	}
	if v, _ := cmd.Flags().GetString("sqlite-path"); v != "" {
		cfg.DB.SQLitePath = v
	}
	cfg.SeedOnStart = false
	return app.NewCore(log, cfg, nil, nil)
}

// withCore runs fn on an opened core and closes it afterwards.
func withCore(fn func(cmd *cobra.Command, core *app.Core) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		core, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer core.Close()
		return fn(cmd, core)
	}
}
