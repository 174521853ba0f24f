package appointments

import (
	"time"

	"pet-care-dashboard/internal/domain/clinics"
	"pet-care-dashboard/internal/domain/pets"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// SlotDuration es la duración fija de un turno.
const SlotDuration = 30 * time.Minute

// Appointment referencia una mascota y un veterinario. StartTime/EndTime son instantes UTC.
type Appointment struct {
	ID             int64     `json:"id"`
	PetID          int64     `json:"pet_id"`
	VeterinarianID int64     `json:"veterinarian_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Status         Status    `json:"status"`
	Notes          string    `json:"notes"`

	Pet          *pets.Pet             `json:"pet,omitempty"`
	Veterinarian *clinics.Veterinarian `json:"veterinarian,omitempty"`
}

// Clinic devuelve la clínica anidada en el veterinario, si vino.
func (a Appointment) Clinic() *clinics.Clinic {
	if a.Veterinarian == nil {
		return nil
	}
	return a.Veterinarian.Clinic
}

// CreateInput es el cuerpo de POST /appointments.
// VeterinarianID es el user_id del veterinario, no el id del registro vet.
type CreateInput struct {
	PetID          int64  `json:"pet_id"`
	VeterinarianID int64  `json:"veterinarian_id"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Status         Status `json:"status"`
	Notes          string `json:"notes"`
}

// UpdateInput es el cuerpo de PUT /appointments/:id. Campos nil no se envían.
type UpdateInput struct {
	Notes  *string `json:"notes,omitempty"`
	Status *Status `json:"status,omitempty"`
}

// FormatInstant serializa un instante como ISO-8601 UTC con segundos.
func FormatInstant(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}
