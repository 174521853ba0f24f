package clinics

import "strings"

// Clinic es de solo lectura para el dashboard; se pide fresca en cada apertura del formulario.
type Clinic struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip_code"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// FullAddress une los campos de dirección no vacíos (lo que se manda a geocodificar).
func (c Clinic) FullAddress() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{c.Address, c.City, c.State, c.Zip} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// VetUser es el usuario dueño del registro de veterinario.
type VetUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Veterinarian pertenece a exactamente una clínica.
// Ojo: ID (registro vet) y UserID (usuario dueño) son identificadores distintos;
// la API de turnos espera UserID.
type Veterinarian struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"user_id"`
	ClinicID      int64   `json:"clinic_id"`
	Specialty     string  `json:"specialty"`
	LicenseNumber string  `json:"license_number"`
	Phone         string  `json:"phone"`
	User          VetUser `json:"user"`
	Clinic        *Clinic `json:"clinic,omitempty"`
}

func (v Veterinarian) DisplayName() string {
	if n := strings.TrimSpace(v.User.Name); n != "" {
		return n
	}
	return "Veterinarian"
}

// VetsAtClinic filtra la lista completa de vets por clínica, preservando el orden.
func VetsAtClinic(vets []Veterinarian, clinicID int64) []Veterinarian {
	out := make([]Veterinarian, 0)
	for _, v := range vets {
		if v.ClinicID == clinicID {
			out = append(out, v)
		}
	}
	return out
}
