package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/itchan-dev/msgboard/backend/internal/storage/pg"
	"github.com/itchan-dev/msgboard/shared/config"
	"github.com/itchan-dev/msgboard/shared/logger"
)

// NewMigrateCommand creates the migrate command. It applies the postgres
// schema and exits; running it twice is harmless.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "migrate",
		Short:         "Apply the postgres schema",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoad(rootOpts.ConfigFolder)
			logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)
			if cfg.Public.Storage != config.StoragePostgres {
				return fmt.Errorf("migrate needs postgres storage, configured %q", cfg.Public.Storage)
			}

			storage, err := pg.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer storage.Cleanup()

			if err := storage.Migrate(cmd.Context()); err != nil {
				return err
			}
			logger.Log.Info("schema applied")
			return nil
		},
	}
}
