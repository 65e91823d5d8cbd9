package faunad

import (
	"fmt"

	"github.com/faunadata/fauna/internal/constants"
	"github.com/spf13/cobra"
)

func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the faunad version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "faunad %s\n", constants.Version)
		},
	}
}
