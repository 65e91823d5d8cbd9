package fauna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/faunadata/fauna/internal/apiclient"
	"github.com/spf13/cobra"
)

const defaultContextTimeout = 10 * time.Second

func SpeciesCmd(newClient func() *apiclient.APIClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "species",
		Aliases: []string{"especies"},
		Short:   "Query the species catalogue",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every species with its habitat",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx, cancel := context.WithTimeout(cmd.Context(), defaultContextTimeout)
				defer cancel()
				list, err := newClient().ListSpecies(ctx)
				if err != nil {
					return err
				}
				for _, s := range list {
					fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-40s %s\n", s.ID, s.Name, s.Habitat)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one species record",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				ctx, cancel := context.WithTimeout(cmd.Context(), defaultContextTimeout)
				defer cancel()
				record, err := newClient().GetSpecies(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), record)
			},
		},
		&cobra.Command{
			Use:   "habitat <habitat>",
			Short: "List species living in a habitat (case-insensitive)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := context.WithTimeout(cmd.Context(), defaultContextTimeout)
				defer cancel()
				records, err := newClient().SpeciesByHabitat(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), records)
			},
		},
		&cobra.Command{
			Use:   "habitat-of <id>",
			Short: "Show the habitat of one species",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				ctx, cancel := context.WithTimeout(cmd.Context(), defaultContextTimeout)
				defer cancel()
				resp, err := newClient().HabitatOf(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.Habitat)
				return nil
			},
		},
		&cobra.Command{
			Use:   "locations",
			Short: "List every species with its coordinates",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx, cancel := context.WithTimeout(cmd.Context(), defaultContextTimeout)
				defer cancel()
				records, err := newClient().SpeciesWithCoordinates(ctx)
				if err != nil {
					return err
				}
				for _, s := range records {
					fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-40s %9.4f %9.4f\n", s.ID, s.Name, s.Coordinates.Lat, s.Coordinates.Lng)
				}
				return nil
			},
		},
	)
	return cmd
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("species id must be an integer, got %q", arg)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
