package faunad

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the faunad root command. Running it without a
// subcommand starts the server.
func NewRootCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:           "faunad",
		Short:         "Species catalogue API with a live request monitor",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
	addServeFlags(cmd, opts)

	cmd.AddCommand(
		ServeCmd(),
		ConfigCmd(),
		VersionCmd(),
	)

	return cmd
}
