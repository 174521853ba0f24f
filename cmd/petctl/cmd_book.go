package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"pet-care-dashboard/internal/domain/booking"
)

type bookFlags struct {
	clinic int64
	vet    int64
	pet    int64
	date   string
	slot   string
	notes  string
}

func newBookCmd(g *globalFlags) *cobra.Command {
	var f bookFlags

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment",
		Long: `Book an appointment with the same rules as the dashboard form.

Without --slot it lists the available slots for the chosen date and exits.
Clinic, veterinarian and pet default to the first of each list.`,
		Example: `  petctl book --date 2025-03-10
  petctl book --clinic 1 --vet 3 --pet 5 --date 2025-03-10 --slot 09:30 --notes "annual checkup"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(f.date) == "" {
				return errors.New("--date is required (YYYY-MM-DD)")
			}
			a, err := newApp(g)
			if err != nil {
				return err
			}
			owner, err := a.ownerID(cmd.Context())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			c := booking.NewController(a.api, booking.Options{OwnerID: owner, Location: a.loc, Log: a.log})
			defer c.Close()

			if err := c.Open(ctx); err != nil {
				return formErr(c, err)
			}
			if f.clinic > 0 {
				if err := c.SelectClinic(ctx, f.clinic); err != nil {
					return formErr(c, err)
				}
			}
			if f.vet > 0 {
				if err := c.SelectVet(f.vet); err != nil {
					return formErr(c, err)
				}
			}
			if f.pet > 0 {
				if err := c.SelectPet(f.pet); err != nil {
					return formErr(c, err)
				}
			}
			if err := c.SelectDate(ctx, f.date); err != nil {
				return formErr(c, err)
			}

			out := cmd.OutOrStdout()
			v := c.View()
			if f.slot == "" {
				if v.NoSlots {
					fmt.Fprintln(out, "No available slots for that date.")
					return nil
				}
				fmt.Fprintln(out, "Available slots:")
				for _, s := range v.State.Clinic.Vet.Date.Slots {
					fmt.Fprintf(out, "  %s\n", s)
				}
				return nil
			}

			if err := c.SelectSlot(f.slot); err != nil {
				return formErr(c, err)
			}
			if err := c.SetNotes(f.notes); err != nil {
				return err
			}
			created, err := c.Submit(ctx)
			if err != nil {
				return formErr(c, err)
			}
			fmt.Fprintf(out, "Appointment %d booked for %s (%s)\n",
				created.ID, created.StartTime.In(a.loc).Format("2006-01-02 15:04"), created.Status)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.Int64Var(&f.clinic, "clinic", 0, "clinic id")
	fl.Int64Var(&f.vet, "vet", 0, "veterinarian id")
	fl.Int64Var(&f.pet, "pet", 0, "pet id")
	fl.StringVar(&f.date, "date", "", "date (YYYY-MM-DD)")
	fl.StringVar(&f.slot, "slot", "", "slot as listed by the backend")
	fl.StringVar(&f.notes, "notes", "", "notes for the vet")
	return cmd
}

// formErr junta en un solo error los mensajes que el formulario mostraría.
func formErr(c *booking.Controller, err error) error {
	v := c.View()
	var lines []string
	for field, msg := range v.FieldErrors {
		lines = append(lines, field+": "+msg)
	}
	sort.Strings(lines)
	lines = append(lines, v.SubmitErrors...)
	if v.FormError != "" {
		lines = append(lines, v.FormError)
	}
	if len(lines) == 0 {
		return err
	}
	return fmt.Errorf("%w\n  %s", err, strings.Join(lines, "\n  "))
}
