package records

import (
	"time"

	"pet-care-dashboard/internal/domain/clinics"
)

// MedicalRecord agrupa lo registrado en una consulta. Solo lectura.
type MedicalRecord struct {
	ID             int64     `json:"id"`
	PetID          int64     `json:"pet_id"`
	AppointmentID  int64     `json:"appointment_id"`
	VeterinarianID int64     `json:"veterinarian_id"`
	Diagnosis      string    `json:"diagnosis"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`

	Veterinarian *clinics.Veterinarian `json:"veterinarian,omitempty"`

	Treatments   []Treatment   `json:"treatments"`
	Medications  []Medication  `json:"medications"`
	Vaccinations []Vaccination `json:"vaccinations"`
}

type Treatment struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type Medication struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

type Vaccination struct {
	ID           int64  `json:"id"`
	Name         string `json:"vaccine_name"`
	DateGiven    string `json:"date_administered"`
	NextDueDate  string `json:"next_due_date"`
	BatchNumber  string `json:"batch_number"`
	Manufacturer string `json:"manufacturer"`
}

// Flattened: vistas planas por tipo, cada ítem con la fecha de su registro.
type Flattened struct {
	Treatments   []RecordItem[Treatment]   `json:"treatments"`
	Medications  []RecordItem[Medication]  `json:"medications"`
	Vaccinations []RecordItem[Vaccination] `json:"vaccinations"`
}

type RecordItem[T any] struct {
	RecordID   int64     `json:"record_id"`
	RecordedAt time.Time `json:"recorded_at"`
	Item       T         `json:"item"`
}

func Flatten(list []MedicalRecord) Flattened {
	f := Flattened{
		Treatments:   []RecordItem[Treatment]{},
		Medications:  []RecordItem[Medication]{},
		Vaccinations: []RecordItem[Vaccination]{},
	}
	for _, r := range list {
		for _, t := range r.Treatments {
			f.Treatments = append(f.Treatments, RecordItem[Treatment]{RecordID: r.ID, RecordedAt: r.CreatedAt, Item: t})
		}
		for _, m := range r.Medications {
			f.Medications = append(f.Medications, RecordItem[Medication]{RecordID: r.ID, RecordedAt: r.CreatedAt, Item: m})
		}
		for _, v := range r.Vaccinations {
			f.Vaccinations = append(f.Vaccinations, RecordItem[Vaccination]{RecordID: r.ID, RecordedAt: r.CreatedAt, Item: v})
		}
	}
	return f
}
