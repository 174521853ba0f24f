package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pet-care-dashboard/internal/domain/records"
)

func newRecordsCmd(g *globalFlags) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "records <pet-id>",
		Short: "Show a pet's medical records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			petID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || petID <= 0 {
				return fmt.Errorf("invalid pet id %q", args[0])
			}
			a, err := newApp(g)
			if err != nil {
				return err
			}

			v := records.NewViewer(a.api, a.cfg.RecordsPageSize, a.log)
			if err := v.Show(cmd.Context(), petID); err != nil {
				return err
			}
			if page > 1 {
				if err := v.Page(page); errors.Is(err, records.ErrPageOutOfRange) {
					return fmt.Errorf("page %d does not exist", page)
				}
			}

			view := v.View()
			out := cmd.OutOrStdout()
			if view.Total == 0 {
				fmt.Fprintln(out, "No medical records.")
				return nil
			}
			fmt.Fprintf(out, "Page %d of %d (%d records)\n", view.Page, view.Pages, view.Total)
			for _, r := range view.Records {
				fmt.Fprintf(out, "\n%s  %s\n", r.CreatedAt.In(a.loc).Format("2006-01-02"), r.Diagnosis)
				if r.Notes != "" {
					fmt.Fprintf(out, "  notes: %s\n", r.Notes)
				}
				for _, t := range r.Treatments {
					fmt.Fprintf(out, "  treatment: %s\n", t.Name)
				}
				for _, m := range r.Medications {
					fmt.Fprintf(out, "  medication: %s %s\n", m.Name, m.Dosage)
				}
				for _, vac := range r.Vaccinations {
					fmt.Fprintf(out, "  vaccination: %s\n", vac.Name)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}
