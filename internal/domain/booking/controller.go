package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"pet-care-dashboard/internal/domain/appointments"
	"pet-care-dashboard/internal/domain/clinics"
	"pet-care-dashboard/internal/domain/pets"
	"pet-care-dashboard/internal/platform/logger"
	"pet-care-dashboard/internal/platform/notice"
	"pet-care-dashboard/internal/platform/timezone"
	"pet-care-dashboard/internal/ports/backend"
)

var (
	ErrClosed               = errors.New("booking form closed")
	ErrBusy                 = errors.New("submission in progress")
	ErrUnknownClinic        = errors.New("unknown clinic")
	ErrUnknownVet           = errors.New("unknown veterinarian")
	ErrUnknownPet           = errors.New("unknown pet")
	ErrUnknownSlot          = errors.New("slot is not available")
	ErrVetRequired          = errors.New("veterinarian required")
	ErrDateRequired         = errors.New("date required")
	ErrInvalidDate          = errors.New("invalid date")
	ErrIncomplete           = errors.New("booking form incomplete")
	ErrOutsideBusinessHours = errors.New("outside business hours")

	// ErrFetchFailed envuelve fallas de carga; ya quedaron reportadas como notice.
	ErrFetchFailed = errors.New("fetch failed")
)

// Gateway es lo que el formulario necesita del backend.
type Gateway interface {
	ListPets(ctx context.Context, userID int64) ([]pets.Pet, error)
	ListClinics(ctx context.Context) ([]clinics.Clinic, error)
	ListVets(ctx context.Context) ([]clinics.Veterinarian, error)
	AvailableSlots(ctx context.Context, vetID int64, date string) ([]string, error)
	CreateAppointment(ctx context.Context, in appointments.CreateInput) (appointments.Appointment, error)
}

type Options struct {
	OwnerID  int64
	Location *time.Location
	Now      func() time.Time

	// OnCreated avisa al padre (refresco de calendario/lista).
	OnCreated func(appointments.Appointment)

	Log logger.Logger
}

// Controller gobierna clínica → veterinario → fecha → slot → envío.
type Controller struct {
	mu sync.Mutex

	id   string
	gw   Gateway
	opts Options

	clinics []clinics.Clinic
	pets    []pets.Pet

	clinicsLoading bool
	petsLoading    bool

	state State
	petID int64
	notes string

	submitting  bool
	fieldErrors map[string]string
	submitLines []string
	formError   string
	created     *appointments.Appointment
	closed      bool
	authExpired bool

	// secuencias para descartar respuestas viejas
	vetsSeq  uint64
	slotsSeq uint64

	notices *notice.Board
}

func NewController(gw Gateway, opts Options) *Controller {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Log == nil {
		opts.Log = logger.NewNop()
	}
	return &Controller{
		id:          uuid.NewString(),
		gw:          gw,
		opts:        opts,
		fieldErrors: map[string]string{},
		notices:     notice.NewBoard(),
	}
}

func (c *Controller) ID() string { return c.id }

// Open carga mascotas y clínicas en paralelo; una falla no impide usar la otra lista.
// Preselecciona la primera mascota y la primera clínica (y dispara la carga de vets).
func (c *Controller) Open(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.clinicsLoading, c.petsLoading = true, true
	c.mu.Unlock()

	var (
		petList    []pets.Pet
		clinicList []clinics.Clinic
		petsErr    error
		clinicsErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		petList, petsErr = c.gw.ListPets(ctx, c.opts.OwnerID)
		return nil
	})
	g.Go(func() error {
		clinicList, clinicsErr = c.gw.ListClinics(ctx)
		return nil
	})
	_ = g.Wait()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.clinicsLoading, c.petsLoading = false, false

	if petsErr != nil {
		c.fetchFailedLocked("pets", "Could not load your pets.", petsErr)
	} else {
		c.pets = petList
		if c.petID == 0 && len(petList) > 0 {
			c.petID = petList[0].ID
		}
	}

	var first *clinics.Clinic
	if clinicsErr != nil {
		c.fetchFailedLocked("clinics", "Could not load clinics.", clinicsErr)
	} else {
		c.clinics = clinicList
		if c.state.Clinic == nil && len(clinicList) > 0 {
			first = &clinicList[0]
		}
	}
	c.mu.Unlock()

	var errs []error
	if petsErr != nil {
		errs = append(errs, petsErr)
	}
	if clinicsErr != nil {
		errs = append(errs, clinicsErr)
	}

	if first != nil {
		if err := c.SelectClinic(ctx, first.ID); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrFetchFailed, errors.Join(errs...))
	}
	return nil
}

// SelectClinic limpia vet, fecha y slot; trae los vets de la clínica y preselecciona el primero.
func (c *Controller) SelectClinic(ctx context.Context, clinicID int64) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	clinic, ok := c.findClinicLocked(clinicID)
	if !ok {
		c.mu.Unlock()
		return ErrUnknownClinic
	}
	c.state.Clinic = &ClinicChoice{Clinic: clinic, VetsLoading: true}
	c.vetsSeq++
	c.slotsSeq++
	seq := c.vetsSeq
	c.clearSubmitErrorsLocked()
	c.mu.Unlock()

	all, err := c.gw.ListVets(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || seq != c.vetsSeq || c.state.Clinic == nil || c.state.Clinic.Clinic.ID != clinicID {
		return nil
	}
	c.state.Clinic.VetsLoading = false

	if err != nil {
		c.state.Clinic.Vets = []clinics.Veterinarian{}
		c.fetchFailedLocked("vets", "Could not load veterinarians.", err)
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	vets := clinics.VetsAtClinic(all, clinicID)
	c.state.Clinic.Vets = vets
	if len(vets) > 0 {
		c.state.Clinic.Vet = &VetChoice{Vet: vets[0]}
	}
	return nil
}

// SelectVet limpia fecha y slot, conserva la clínica.
func (c *Controller) SelectVet(vetID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.state.Clinic == nil {
		return ErrUnknownVet
	}
	for _, v := range c.state.Clinic.Vets {
		if v.ID == vetID {
			c.state.Clinic.Vet = &VetChoice{Vet: v}
			c.slotsSeq++
			c.clearSubmitErrorsLocked()
			return nil
		}
	}
	return ErrUnknownVet
}

// SelectDate exige veterinario; trae slots para (vet, fecha) y limpia el slot elegido.
func (c *Controller) SelectDate(ctx context.Context, date string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	vet := c.state.vet()
	if vet == nil {
		c.fieldErrors["veterinarian_id"] = "Please select a veterinarian first."
		c.notices.Error("Please select a veterinarian first.")
		c.mu.Unlock()
		return ErrVetRequired
	}

	day, err := timezone.ParseDate(c.opts.Location, strings.TrimSpace(date))
	if err != nil {
		c.fieldErrors["date"] = "Please enter a valid date (YYYY-MM-DD)."
		c.mu.Unlock()
		return ErrInvalidDate
	}
	if !timezone.SameDayOrAfter(day, c.opts.Now(), c.opts.Location) {
		c.fieldErrors["date"] = "Please choose today or a future date."
		c.mu.Unlock()
		return ErrInvalidDate
	}

	c.state.Clinic.Vet.Date = &DateChoice{Day: day, Slots: []string{}, SlotsLoading: true}
	c.slotsSeq++
	seq := c.slotsSeq
	vetID := vet.ID
	c.clearSubmitErrorsLocked()
	c.mu.Unlock()

	slots, err := c.gw.AvailableSlots(ctx, vetID, day.Format("2006-01-02"))

	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.state.date()
	if c.closed || seq != c.slotsSeq || d == nil || !d.Day.Equal(day) {
		return nil
	}
	d.SlotsLoading = false

	if err != nil {
		c.fetchFailedLocked("slots", "Could not load available slots.", err)
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	if slots == nil {
		slots = []string{}
	}
	d.Slots = slots
	return nil
}

// SelectSlot fija inicio = fecha elegida a la hora del slot, fin = inicio + 30 min (hora local).
func (c *Controller) SelectSlot(raw string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	d := c.state.date()
	if d == nil {
		return ErrDateRequired
	}

	found := false
	for _, s := range d.Slots {
		if s == raw {
			found = true
			break
		}
	}
	if !found {
		return ErrUnknownSlot
	}

	h, m, err := SlotTimeOfDay(raw, c.opts.Location)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownSlot, err)
	}

	start := time.Date(d.Day.Year(), d.Day.Month(), d.Day.Day(), h, m, 0, 0, c.opts.Location)
	d.Slot = &SlotChoice{
		Raw:   raw,
		Start: start,
		End:   start.Add(appointments.SlotDuration),
	}
	c.clearSubmitErrorsLocked()
	return nil
}

func (c *Controller) SelectPet(petID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	for _, p := range c.pets {
		if p.ID == petID {
			c.petID = petID
			delete(c.fieldErrors, "pet_id")
			return nil
		}
	}
	return ErrUnknownPet
}

func (c *Controller) SetNotes(notes string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	c.notes = notes
	return nil
}

// Submit valida en cliente (campos + horario) y crea el turno. Ante error del backend
// el formulario queda abierto con los mensajes para corregir y reenviar.
func (c *Controller) Submit(ctx context.Context) (appointments.Appointment, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return appointments.Appointment{}, ErrClosed
	}
	if c.submitting {
		c.mu.Unlock()
		return appointments.Appointment{}, ErrBusy
	}
	c.clearSubmitErrorsLocked()

	vet := c.state.vet()
	slot := c.state.slot()
	if c.petID == 0 {
		c.fieldErrors["pet_id"] = "Please select a pet."
	}
	if vet == nil {
		c.fieldErrors["veterinarian_id"] = "Please select a veterinarian."
	}
	if slot == nil {
		c.fieldErrors["start_time"] = "Please select a date and an available time slot."
	}
	if len(c.fieldErrors) > 0 {
		c.mu.Unlock()
		return appointments.Appointment{}, ErrIncomplete
	}

	if !WithinBusinessHours(slot.Start, c.opts.Location) {
		c.formError = OutsideHoursMessage(slot.Start, c.opts.Location)
		c.notices.Error(c.formError)
		c.mu.Unlock()
		return appointments.Appointment{}, ErrOutsideBusinessHours
	}

	in := appointments.CreateInput{
		PetID:          c.petID,
		VeterinarianID: vet.UserID,
		StartTime:      appointments.FormatInstant(slot.Start),
		EndTime:        appointments.FormatInstant(slot.End),
		Status:         appointments.StatusPending,
		Notes:          strings.TrimSpace(c.notes),
	}
	c.submitting = true
	c.mu.Unlock()

	created, err := c.gw.CreateAppointment(ctx, in)

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		var ve *backend.ValidationError
		if errors.As(err, &ve) && len(ve.Fields) > 0 {
			c.submitLines = ve.Lines()
		} else {
			c.formError = backend.UserMessage(err)
		}
		if backend.Classify(err) == backend.KindAuth {
			c.authExpired = true
		}
		c.notices.Error("Could not book the appointment.")
		c.opts.Log.Warn("appointment create failed", map[string]any{"err": err, "pet_id": in.PetID})
		c.mu.Unlock()
		return appointments.Appointment{}, err
	}

	c.created = &created
	c.closed = true
	onCreated := c.opts.OnCreated
	c.mu.Unlock()

	if onCreated != nil {
		onCreated(created)
	}
	return created, nil
}

func (c *Controller) DismissNotice(id string) bool {
	return c.notices.Dismiss(id)
}

// Close descarta cualquier respuesta que llegue después.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.vetsSeq++
	c.slotsSeq++
}

func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Controller) findClinicLocked(id int64) (clinics.Clinic, bool) {
	for _, cl := range c.clinics {
		if cl.ID == id {
			return cl, true
		}
	}
	return clinics.Clinic{}, false
}

func (c *Controller) clearSubmitErrorsLocked() {
	c.fieldErrors = map[string]string{}
	c.submitLines = nil
	c.formError = ""
}

func (c *Controller) fetchFailedLocked(what, msg string, err error) {
	if backend.Classify(err) == backend.KindAuth {
		c.authExpired = true
	}
	c.notices.Error(msg)
	c.opts.Log.Warn("booking fetch failed", map[string]any{"what": what, "err": err})
}

type View struct {
	ID    string `json:"id"`
	Stage Stage  `json:"stage"`
	State State  `json:"state"`

	Clinics        []clinics.Clinic `json:"clinics"`
	Pets           []pets.Pet       `json:"pets"`
	ClinicsLoading bool             `json:"clinics_loading"`
	PetsLoading    bool             `json:"pets_loading"`
	PetID          int64            `json:"pet_id,omitempty"`
	Notes          string           `json:"notes"`

	// NoSlots: hay fecha elegida, la carga terminó y no hay turnos.
	NoSlots bool `json:"no_slots"`

	Submitting   bool                      `json:"submitting"`
	FieldErrors  map[string]string         `json:"field_errors,omitempty"`
	SubmitErrors []string                  `json:"submit_errors,omitempty"`
	FormError    string                    `json:"form_error,omitempty"`
	Created      *appointments.Appointment `json:"created,omitempty"`
	Closed       bool                      `json:"closed"`
	AuthRequired bool                      `json:"auth_required"`
	Notices      []notice.Notice           `json:"notices"`
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		ID:             c.id,
		Stage:          c.state.Stage(),
		State:          c.state.clone(),
		Clinics:        append([]clinics.Clinic{}, c.clinics...),
		Pets:           append([]pets.Pet{}, c.pets...),
		ClinicsLoading: c.clinicsLoading,
		PetsLoading:    c.petsLoading,
		PetID:          c.petID,
		Notes:          c.notes,
		Submitting:     c.submitting,
		SubmitErrors:   append([]string(nil), c.submitLines...),
		FormError:      c.formError,
		Created:        c.created,
		Closed:         c.closed,
		AuthRequired:   c.authExpired,
		Notices:        c.notices.List(),
	}
	if d := c.state.date(); d != nil && !d.SlotsLoading && len(d.Slots) == 0 {
		v.NoSlots = true
	}
	if len(c.fieldErrors) > 0 {
		v.FieldErrors = make(map[string]string, len(c.fieldErrors))
		for k, msg := range c.fieldErrors {
			v.FieldErrors[k] = msg
		}
	}
	return v
}
