package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"pet-care-dashboard/internal/domain/pets"
)

func newPetsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "pets",
		Short: "List your pets",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(g)
			if err != nil {
				return err
			}
			owner, err := a.ownerID(cmd.Context())
			if err != nil {
				return err
			}
			list, err := pets.NewService(a.api).ListByOwner(cmd.Context(), owner)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No pets yet.")
				return nil
			}
			now := time.Now().In(a.loc)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSPECIES\tBREED\tAGE")
			for _, p := range list {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Species, p.Breed, p.AgeYears(now))
			}
			return tw.Flush()
		},
	}
}
