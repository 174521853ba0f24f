// Package calendar arma eventos de calendario y la línea de tiempo a partir de
// los turnos de todas las mascotas del usuario. Es de solo lectura.
package calendar

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"pet-care-dashboard/internal/domain/appointments"
	"pet-care-dashboard/internal/domain/pets"
	"pet-care-dashboard/internal/platform/logger"
)

type Category string

const (
	CategoryCompleted Category = "completed"
	CategoryConfirmed Category = "confirmed"
	CategoryCancelled Category = "cancelled"
	CategoryPending   Category = "pending"
)

var categories = map[string]Category{
	"completed": CategoryCompleted,
	"confirmed": CategoryConfirmed,
	"cancelled": CategoryCancelled,
	"canceled":  CategoryCancelled,
	"pending":   CategoryPending,
}

var colors = map[Category]string{
	CategoryCompleted: "#10B981",
	CategoryConfirmed: "#3B82F6",
	CategoryCancelled: "#EF4444",
	CategoryPending:   "#F59E0B",
}

// Categorize mapea el status del backend; desconocido o vacío => pending.
func Categorize(status appointments.Status) Category {
	if c, ok := categories[strings.ToLower(strings.TrimSpace(string(status)))]; ok {
		return c
	}
	return CategoryPending
}

func ColorOf(c Category) string {
	if col, ok := colors[c]; ok {
		return col
	}
	return colors[CategoryPending]
}

// Gateway lista turnos de una mascota.
type Gateway interface {
	ListAppointments(ctx context.Context, petID int64) ([]appointments.Appointment, error)
}

// PetFailure registra una mascota cuyo fetch falló.
type PetFailure struct {
	PetID   int64  `json:"pet_id"`
	PetName string `json:"pet_name"`
	Err     error  `json:"-"`
}

type LoadResult struct {
	Appointments []appointments.Appointment
	Failed       []PetFailure
}

type Loader struct {
	gw  Gateway
	log logger.Logger

	// MaxConcurrency <= 0 no limita.
	MaxConcurrency int
}

func NewLoader(gw Gateway, log logger.Logger) *Loader {
	if log == nil {
		log = logger.NewNop()
	}
	return &Loader{gw: gw, log: log}
}

// Load pide los turnos de cada mascota en paralelo y aplana. Una mascota que
// falla no borra los turnos de las demás; queda listada en Failed.
// Los turnos sin Pet anidado reciben la mascota consultada.
func (l *Loader) Load(ctx context.Context, list []pets.Pet) LoadResult {
	var (
		mu     sync.Mutex
		out    []appointments.Appointment
		failed []PetFailure
	)

	var g errgroup.Group
	if l.MaxConcurrency > 0 {
		g.SetLimit(l.MaxConcurrency)
	}

	for i := range list {
		p := list[i]
		g.Go(func() error {
			appts, err := l.gw.ListAppointments(ctx, p.ID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = append(failed, PetFailure{PetID: p.ID, PetName: p.Name, Err: err})
				l.log.Warn("appointments fetch failed", map[string]any{"pet_id": p.ID, "err": err})
				return nil
			}
			for _, a := range appts {
				if a.Pet == nil {
					pc := p
					a.Pet = &pc
				}
				out = append(out, a)
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	sort.Slice(failed, func(i, j int) bool { return failed[i].PetID < failed[j].PetID })

	if out == nil {
		out = []appointments.Appointment{}
	}
	return LoadResult{Appointments: out, Failed: failed}
}

type Event struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Category Category  `json:"category"`
	Color    string    `json:"color"`
}

type Entry struct {
	Event
	PetName string `json:"pet_name,omitempty"`
	VetName string `json:"vet_name,omitempty"`
	Clinic  string `json:"clinic,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Timeline: Upcoming son los que empiezan estrictamente después de now;
// el resto va al bucket de su categoría.
type Timeline struct {
	Upcoming  []Entry `json:"upcoming"`
	Completed []Entry `json:"completed"`
	Confirmed []Entry `json:"confirmed"`
	Cancelled []Entry `json:"cancelled"`
	Pending   []Entry `json:"pending"`
}

type Calendar struct {
	Events   []Event  `json:"events"`
	Timeline Timeline `json:"timeline"`
}

func Build(appts []appointments.Appointment, now time.Time) Calendar {
	cal := Calendar{
		Events: make([]Event, 0, len(appts)),
		Timeline: Timeline{
			Upcoming:  []Entry{},
			Completed: []Entry{},
			Confirmed: []Entry{},
			Cancelled: []Entry{},
			Pending:   []Entry{},
		},
	}

	for _, a := range appts {
		e := toEntry(a)
		cal.Events = append(cal.Events, e.Event)

		if a.StartTime.After(now) {
			cal.Timeline.Upcoming = append(cal.Timeline.Upcoming, e)
			continue
		}
		switch e.Category {
		case CategoryCompleted:
			cal.Timeline.Completed = append(cal.Timeline.Completed, e)
		case CategoryConfirmed:
			cal.Timeline.Confirmed = append(cal.Timeline.Confirmed, e)
		case CategoryCancelled:
			cal.Timeline.Cancelled = append(cal.Timeline.Cancelled, e)
		default:
			cal.Timeline.Pending = append(cal.Timeline.Pending, e)
		}
	}

	sort.SliceStable(cal.Timeline.Upcoming, func(i, j int) bool {
		return cal.Timeline.Upcoming[i].Start.Before(cal.Timeline.Upcoming[j].Start)
	})
	// historial: más reciente primero
	for _, b := range [][]Entry{cal.Timeline.Completed, cal.Timeline.Confirmed, cal.Timeline.Cancelled, cal.Timeline.Pending} {
		sort.SliceStable(b, func(i, j int) bool { return b[i].Start.After(b[j].Start) })
	}
	return cal
}

func toEntry(a appointments.Appointment) Entry {
	cat := Categorize(a.Status)
	e := Entry{
		Event: Event{
			ID:       a.ID,
			Start:    a.StartTime,
			End:      a.EndTime,
			Category: cat,
			Color:    ColorOf(cat),
		},
		Notes: a.Notes,
	}
	if a.Pet != nil {
		e.PetName = a.Pet.Name
	}
	if a.Veterinarian != nil {
		e.VetName = a.Veterinarian.DisplayName()
	}
	if c := a.Clinic(); c != nil {
		e.Clinic = c.Name
	}
	e.Title = title(e.PetName, e.VetName)
	return e
}

func title(pet, vet string) string {
	switch {
	case pet != "" && vet != "":
		return pet + " with " + vet
	case pet != "":
		return pet
	case vet != "":
		return "Appointment with " + vet
	default:
		return "Appointment"
	}
}
