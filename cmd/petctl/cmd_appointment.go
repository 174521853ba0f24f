package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"pet-care-dashboard/internal/domain/appointments"
)

func newAppointmentCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointment",
		Aliases: []string{"appt"},
		Short:   "List, show, annotate or cancel appointments",
	}
	cmd.AddCommand(
		newAppointmentListCmd(g),
		newAppointmentShowCmd(g),
		newAppointmentNotesCmd(g),
		newAppointmentCancelCmd(g),
	)
	return cmd
}

// openDetail carga el detalle; en la CLI no hay auto-cierre diferido.
func openDetail(cmd *cobra.Command, g *globalFlags, raw string) (*app, *appointments.Detail, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, nil, fmt.Errorf("invalid appointment id %q", raw)
	}
	a, err := newApp(g)
	if err != nil {
		return nil, nil, err
	}
	d := appointments.NewDetail(a.api, id, appointments.DetailOptions{
		Location: a.loc,
		Log:      a.log,
		After:    func(time.Duration, func()) {},
	})
	if err := d.Open(cmd.Context()); err != nil {
		if msg := d.View().Error; msg != "" {
			return nil, nil, errors.New(msg)
		}
		return nil, nil, err
	}
	return a, d, nil
}

// Sin --pet lista todas las citas de la cuenta.
func newAppointmentListCmd(g *globalFlags) *cobra.Command {
	var petID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments, optionally for one pet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(g)
			if err != nil {
				return err
			}
			var list []appointments.Appointment
			if petID > 0 {
				list, err = a.api.ListAppointments(cmd.Context(), petID)
			} else {
				list, err = a.api.ListAllAppointments(cmd.Context())
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No appointments.")
				return nil
			}
			sort.SliceStable(list, func(i, j int) bool { return list[i].StartTime.Before(list[j].StartTime) })

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tWHEN\tSTATUS\tPET")
			for _, ap := range list {
				pet := strconv.FormatInt(ap.PetID, 10)
				if ap.Pet != nil && ap.Pet.Name != "" {
					pet = ap.Pet.Name
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
					ap.ID, ap.StartTime.In(a.loc).Format("2006-01-02 15:04"), ap.Status, pet)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Int64Var(&petID, "pet", 0, "only appointments of this pet")
	return cmd
}

func newAppointmentShowCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show appointment details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, d, err := openDetail(cmd, g, args[0])
			if err != nil {
				return err
			}
			printDetail(cmd.OutOrStdout(), d.View(), a.loc)
			return nil
		},
	}
}

func newAppointmentNotesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "notes <id> <text>",
		Short: "Replace the appointment notes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, d, err := openDetail(cmd, g, args[0])
			if err != nil {
				return err
			}
			if err := d.BeginEdit(); err != nil {
				return err
			}
			if err := d.SetNotesDraft(args[1]); err != nil {
				return err
			}
			if err := d.SaveNotes(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Notes saved.")
			return nil
		},
	}
}

func newAppointmentCancelCmd(g *globalFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a pending appointment",
		Long: `Cancel a pending appointment scheduled for today or later.

Cancellation needs explicit confirmation with --yes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, d, err := openDetail(cmd, g, args[0])
			if err != nil {
				return err
			}
			if err := d.RequestCancel(); err != nil {
				return err
			}
			if !yes {
				d.AbortCancel()
				fmt.Fprintln(cmd.OutOrStdout(), "Appointment can be cancelled; re-run with --yes to confirm.")
				return nil
			}
			if err := d.ConfirmCancel(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Appointment cancelled.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the cancellation")
	return cmd
}

func printDetail(w io.Writer, v appointments.DetailView, loc *time.Location) {
	ap := v.Appointment
	if ap == nil {
		return
	}
	fmt.Fprintf(w, "Appointment %d (%s)\n", ap.ID, ap.Status)
	fmt.Fprintf(w, "  When:   %s - %s\n",
		ap.StartTime.In(loc).Format("2006-01-02 15:04"), ap.EndTime.In(loc).Format("15:04"))
	if ap.Pet != nil {
		fmt.Fprintf(w, "  Pet:    %s\n", ap.Pet.Name)
	}
	if ap.Veterinarian != nil {
		fmt.Fprintf(w, "  Vet:    %s\n", ap.Veterinarian.DisplayName())
	}
	if c := ap.Clinic(); c != nil {
		fmt.Fprintf(w, "  Clinic: %s, %s\n", c.Name, c.FullAddress())
	}
	if ap.Notes != "" {
		fmt.Fprintf(w, "  Notes:  %s\n", ap.Notes)
	}
	if v.CanCancel {
		fmt.Fprintln(w, "  This appointment can be cancelled.")
	}
}
