package workspace

import (
	"net/http"

	"pet-care-dashboard/internal/domain/appointments"
	"pet-care-dashboard/internal/domain/booking"
	"pet-care-dashboard/internal/domain/calendar"
	"pet-care-dashboard/internal/domain/clinics"
	"pet-care-dashboard/internal/domain/identity"
	"pet-care-dashboard/internal/domain/pets"
	"pet-care-dashboard/internal/domain/records"
	"pet-care-dashboard/internal/ports/backend"
)

// Resolver adapta el Manager a los Resolver de cada módulo HTTP.
type Resolver struct {
	m *Manager
}

func NewResolver(m *Manager) *Resolver {
	return &Resolver{m: m}
}

var (
	_ identity.Resolver     = (*Resolver)(nil)
	_ pets.Resolver         = (*Resolver)(nil)
	_ clinics.Resolver      = (*Resolver)(nil)
	_ booking.Resolver      = (*Resolver)(nil)
	_ appointments.Resolver = (*Resolver)(nil)
	_ calendar.Resolver     = (*Resolver)(nil)
	_ records.Resolver      = (*Resolver)(nil)
)

func (res *Resolver) Identity(r *http.Request) (*identity.Service, error) {
	ws, err := res.m.ForRequest(r)
	if err != nil {
		return nil, err
	}
	return ws.Identity, nil
}

func (res *Resolver) Pets(r *http.Request) (*pets.Service, int64, error) {
	ws, err := res.m.ForRequest(r)
	if err != nil {
		return nil, 0, err
	}
	owner, err := ws.OwnerID(r.Context())
	if err != nil {
		return nil, 0, err
	}
	return ws.Pets, owner, nil
}

func (res *Resolver) Clinics(r *http.Request) (clinics.Source, error) {
	ws, err := res.m.ForRequest(r)
	if err != nil {
		return nil, err
	}
	return ws.API(), nil
}

func (res *Resolver) OpenBooking(r *http.Request) (*booking.Controller, error) {
	ws, err := res.m.ForRequest(r)
	if err != nil {
		return nil, err
	}
	return ws.OpenBooking(r.Context())
}

func (res *Resolver) Booking(r *http.Request, id string) (*booking.Controller, error) {
	ws, err := res.m.ForRequest(r)
	if err != nil {
		return nil, err
	}
	c, err := ws.Booking(id)
	return c, notFound(err)
}

func (res *Resolver) CloseBooking(r *http.Request, id string) error {
	ws, err := res.m.ForRequest(r)
	if err != nil {
		return err
	}
	return notFound(ws.CloseBooking(id))
}

func (res *Resolver) OpenDetail(r *http.Request, id int64) (*appointments.Detail, error) {
	ws, err := res.m.ForRequest(r)
	if err != nil {
		return nil, err
	}
	// sin sesión válida ni lo intentamos
	if _, err := ws.OwnerID(r.Context()); err != nil {
		return nil, err
	}
	return ws.OpenDetail(r.Context(), id)
}

func (res *Resolver) Detail(r *http.Request, id int64) (*appointments.Detail, error) {
	ws, err := res.m.ForRequest(r)
	if err != nil {
		return nil, err
	}
	d, err := ws.Detail(id)
	return d, notFound(err)
}

func (res *Resolver) CloseDetail(r *http.Request, id int64) error {
	ws, err := res.m.ForRequest(r)
	if err != nil {
		return err
	}
	return notFound(ws.CloseDetail(id))
}

func (res *Resolver) Calendar(r *http.Request) (calendar.Source, error) {
	ws, err := res.m.ForRequest(r)
	if err != nil {
		return calendar.Source{}, err
	}
	list, err := ws.OwnerPets(r.Context())
	if err != nil {
		return calendar.Source{}, err
	}
	return calendar.Source{Loader: ws.Loader, Pets: list, Version: ws.Version()}, nil
}

func (res *Resolver) Records(r *http.Request) (*records.Viewer, error) {
	ws, err := res.m.ForRequest(r)
	if err != nil {
		return nil, err
	}
	return ws.Records, nil
}

// notFound traduce los ids desconocidos del registro a 404.
func notFound(err error) error {
	if err == ErrUnknownForm || err == ErrUnknownDetail {
		return &backend.NotFoundError{Message: err.Error()}
	}
	return err
}
