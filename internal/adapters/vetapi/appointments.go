package vetapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"pet-care-dashboard/internal/domain/appointments"
	"pet-care-dashboard/internal/domain/clinics"
	"pet-care-dashboard/internal/domain/pets"
)

// wireAppointment: el backend puede mandar "2025-03-10 12:00:00" en vez de RFC3339.
type wireAppointment struct {
	ID             int64                 `json:"id"`
	PetID          int64                 `json:"pet_id"`
	VeterinarianID int64                 `json:"veterinarian_id"`
	StartTime      string                `json:"start_time"`
	EndTime        string                `json:"end_time"`
	Status         appointments.Status   `json:"status"`
	Notes          *string               `json:"notes"`
	Pet            *pets.Pet             `json:"pet"`
	Veterinarian   *clinics.Veterinarian `json:"veterinarian"`
}

func (w wireAppointment) toDomain() (appointments.Appointment, error) {
	start, err := parseInstant(w.StartTime)
	if err != nil {
		return appointments.Appointment{}, err
	}
	end, err := parseInstant(w.EndTime)
	if err != nil {
		return appointments.Appointment{}, err
	}
	a := appointments.Appointment{
		ID:             w.ID,
		PetID:          w.PetID,
		VeterinarianID: w.VeterinarianID,
		StartTime:      start,
		EndTime:        end,
		Status:         w.Status,
		Pet:            w.Pet,
		Veterinarian:   w.Veterinarian,
	}
	if w.Notes != nil {
		a.Notes = *w.Notes
	}
	return a, nil
}

func (c *Client) ListAppointments(ctx context.Context, petID int64) ([]appointments.Appointment, error) {
	q := url.Values{}
	q.Set("pet_id", strconv.FormatInt(petID, 10))
	return c.listAppointments(ctx, "/appointments?"+q.Encode())
}

func (c *Client) ListAllAppointments(ctx context.Context) ([]appointments.Appointment, error) {
	return c.listAppointments(ctx, "/appointments")
}

func (c *Client) listAppointments(ctx context.Context, path string) ([]appointments.Appointment, error) {
	raw, err := c.send(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}
	wires, err := decodeList[wireAppointment](raw)
	if err != nil {
		return nil, err
	}
	out := make([]appointments.Appointment, 0, len(wires))
	for _, w := range wires {
		a, err := w.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (c *Client) GetAppointment(ctx context.Context, id int64) (appointments.Appointment, error) {
	return c.appointmentCall(ctx, http.MethodGet, fmt.Sprintf("/appointments/%d", id), nil)
}

func (c *Client) CreateAppointment(ctx context.Context, in appointments.CreateInput) (appointments.Appointment, error) {
	return c.appointmentCall(ctx, http.MethodPost, "/appointments", in)
}

func (c *Client) UpdateAppointment(ctx context.Context, id int64, in appointments.UpdateInput) (appointments.Appointment, error) {
	return c.appointmentCall(ctx, http.MethodPut, fmt.Sprintf("/appointments/%d", id), in)
}

// CancelAppointment usa DELETE; el backend lo interpreta como cancelación.
func (c *Client) CancelAppointment(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/appointments/%d", id), nil, nil, true)
}

func (c *Client) appointmentCall(ctx context.Context, method, path string, in any) (appointments.Appointment, error) {
	var w wireAppointment
	if err := c.call(ctx, method, path, in, &w, true); err != nil {
		return appointments.Appointment{}, err
	}
	return w.toDomain()
}
