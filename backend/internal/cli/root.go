// Package cli holds the msgboard-api commands.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFolder string
}

// NewRootCommand creates the msgboard-api root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "msgboard-api",
		Short: "Anonymous message board API",
		Long:  "Anonymous message board with threads, replies and password protected deletion.",
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFolder, "config_folder", "backend/config", "path to folder with configs")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}
