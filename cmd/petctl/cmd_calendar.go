package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"pet-care-dashboard/internal/domain/calendar"
	"pet-care-dashboard/internal/domain/pets"
	"pet-care-dashboard/internal/ports/backend"
)

func newCalendarCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar",
		Short: "Show upcoming and past appointments for all your pets",
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

			res := calendar.NewLoader(a.api, a.log).Load(cmd.Context(), list)
			cal := calendar.Build(res.Appointments, time.Now())

			out := cmd.OutOrStdout()
			for _, f := range res.Failed {
				fmt.Fprintf(out, "! could not load appointments for %s: %s\n", f.PetName, backend.UserMessage(f.Err))
			}
			printBucket(out, "Upcoming", cal.Timeline.Upcoming, a.loc)
			printBucket(out, "Pending", cal.Timeline.Pending, a.loc)
			printBucket(out, "Confirmed", cal.Timeline.Confirmed, a.loc)
			printBucket(out, "Completed", cal.Timeline.Completed, a.loc)
			printBucket(out, "Cancelled", cal.Timeline.Cancelled, a.loc)
			return nil
		},
	}
}

func printBucket(w io.Writer, title string, entries []calendar.Entry, loc *time.Location) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, e := range entries {
		fmt.Fprintf(w, "  #%d  %s  %s  [%s]\n", e.ID, e.Start.In(loc).Format("2006-01-02 15:04"), e.Title, e.Category)
	}
}
