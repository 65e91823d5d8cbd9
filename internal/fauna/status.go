package fauna

import (
	"context"
	"fmt"

	"github.com/faunadata/fauna/internal/apiclient"
	"github.com/faunadata/fauna/internal/constants"
	"github.com/faunadata/fauna/internal/ui"
	"github.com/spf13/cobra"
)

func StatusCmd(newClient func() *apiclient.APIClient) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check server health and connected monitor viewers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), defaultContextTimeout)
			defer cancel()

			client := newClient()
			health, err := client.HealthCheck(ctx)
			if err != nil {
				return err
			}
			status, err := client.MonitorStatus(ctx)
			if err != nil {
				return fmt.Errorf("failed to get monitor status: %w", err)
			}

			queue := "unbounded"
			if status.QueueLimit > 0 {
				queue = fmt.Sprintf("%d events", status.QueueLimit)
			}
			ui.Section(client.BaseURL(), []string{
				fmt.Sprintf("status:  %s", health.Status),
				fmt.Sprintf("service: %s %s", health.Service, health.Version),
				fmt.Sprintf("viewers: %d", status.Viewers),
				fmt.Sprintf("queue:   %s", queue),
			})
			return nil
		},
	}
}

func VersionCmd(newClient func() *apiclient.APIClient) *cobra.Command {
	var clientOnly bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the client and server versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "fauna %s\n", constants.Version)
			if clientOnly {
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), defaultContextTimeout)
			defer cancel()
			version, err := newClient().Version(ctx)
			if err != nil {
				ui.Warn("Could not reach server: %v", err)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "faunad %s\n", version.Version)
			return nil
		},
	}
	cmd.Flags().BoolVar(&clientOnly, "client", false, "Only print the client version")
	return cmd
}
