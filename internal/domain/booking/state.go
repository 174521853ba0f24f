package booking

import (
	"time"

	"pet-care-dashboard/internal/domain/clinics"
)

type Stage string

const (
	StageClinicSelection Stage = "clinic_selection"
	StageVetSelection    Stage = "vet_selection"
	StageDateSelection   Stage = "date_selection"
	StageSlotSelection   Stage = "slot_selection"
	StageSubmittable     Stage = "submittable"
)

// State anida cada selección dentro de la anterior: no puede existir un slot sin fecha,
// ni una fecha sin veterinario, ni un veterinario sin clínica.
type State struct {
	Clinic *ClinicChoice `json:"clinic,omitempty"`
}

type ClinicChoice struct {
	Clinic      clinics.Clinic         `json:"clinic"`
	Vets        []clinics.Veterinarian `json:"vets"`
	VetsLoading bool                   `json:"vets_loading"`
	Vet         *VetChoice             `json:"vet,omitempty"`
}

type VetChoice struct {
	Vet  clinics.Veterinarian `json:"vet"`
	Date *DateChoice          `json:"date,omitempty"`
}

type DateChoice struct {
	Day          time.Time   `json:"day"`
	Slots        []string    `json:"slots"`
	SlotsLoading bool        `json:"slots_loading"`
	Slot         *SlotChoice `json:"slot,omitempty"`
}

// SlotChoice guarda inicio y fin en hora local; se pasan a UTC recién al enviar.
type SlotChoice struct {
	Raw   string    `json:"raw"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (s State) Stage() Stage {
	switch {
	case s.Clinic == nil:
		return StageClinicSelection
	case s.Clinic.Vet == nil:
		return StageVetSelection
	case s.Clinic.Vet.Date == nil:
		return StageDateSelection
	case s.Clinic.Vet.Date.Slot == nil:
		return StageSlotSelection
	default:
		return StageSubmittable
	}
}

func (s State) vet() *clinics.Veterinarian {
	if s.Clinic == nil || s.Clinic.Vet == nil {
		return nil
	}
	return &s.Clinic.Vet.Vet
}

func (s State) date() *DateChoice {
	if s.Clinic == nil || s.Clinic.Vet == nil {
		return nil
	}
	return s.Clinic.Vet.Date
}

func (s State) slot() *SlotChoice {
	if d := s.date(); d != nil {
		return d.Slot
	}
	return nil
}

func (s State) clone() State {
	if s.Clinic == nil {
		return State{}
	}
	cc := *s.Clinic
	cc.Vets = append([]clinics.Veterinarian(nil), s.Clinic.Vets...)
	if s.Clinic.Vet != nil {
		vc := *s.Clinic.Vet
		if vc.Date != nil {
			dc := *vc.Date
			dc.Slots = append([]string(nil), vc.Date.Slots...)
			if dc.Slot != nil {
				sc := *dc.Slot
				dc.Slot = &sc
			}
			vc.Date = &dc
		}
		cc.Vet = &vc
	}
	return State{Clinic: &cc}
}
