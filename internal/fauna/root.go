package fauna

import (
	"os"

	"github.com/faunadata/fauna/internal/apiclient"
	"github.com/faunadata/fauna/internal/constants"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the fauna operator CLI.
func NewRootCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:           "fauna",
		Short:         "Query a faunad server and follow its request log",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	defaultServer := constants.DefaultServerURL
	if env := os.Getenv(constants.EnvVarServerURL); env != "" {
		defaultServer = env
	}
	cmd.PersistentFlags().StringVarP(&serverURL, "server", "s", defaultServer, "faunad base URL (env "+constants.EnvVarServerURL+")")

	newClient := func() *apiclient.APIClient {
		return apiclient.New(serverURL)
	}

	cmd.AddCommand(
		WatchCmd(newClient),
		SpeciesCmd(newClient),
		StatusCmd(newClient),
		VersionCmd(newClient),
	)

	return cmd
}
