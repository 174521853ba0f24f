package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"pet-care-dashboard/internal/domain/appointments"
	"pet-care-dashboard/internal/domain/clinics"
	"pet-care-dashboard/internal/domain/pets"
	"pet-care-dashboard/internal/ports/backend"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// -------------------------
// Fake gateway
// -------------------------

type fakeGateway struct {
	mu sync.Mutex

	pets    []pets.Pet
	clinics []clinics.Clinic
	vets    []clinics.Veterinarian
	slots   map[string][]string

	petsErr    error
	clinicsErr error
	slotsErr   error
	createErr  error

	// VetsFunc, si existe, reemplaza la lista fija.
	VetsFunc func(ctx context.Context) ([]clinics.Veterinarian, error)

	slotCalls []string
	created   []appointments.CreateInput
}

func (f *fakeGateway) ListPets(ctx context.Context, userID int64) ([]pets.Pet, error) {
	return f.pets, f.petsErr
}

func (f *fakeGateway) ListClinics(ctx context.Context) ([]clinics.Clinic, error) {
	return f.clinics, f.clinicsErr
}

func (f *fakeGateway) ListVets(ctx context.Context) ([]clinics.Veterinarian, error) {
	if f.VetsFunc != nil {
		return f.VetsFunc(ctx)
	}
	return f.vets, nil
}

func (f *fakeGateway) AvailableSlots(ctx context.Context, vetID int64, date string) ([]string, error) {
	f.mu.Lock()
	f.slotCalls = append(f.slotCalls, date)
	f.mu.Unlock()
	if f.slotsErr != nil {
		return nil, f.slotsErr
	}
	return f.slots[date], nil
}

func (f *fakeGateway) CreateAppointment(ctx context.Context, in appointments.CreateInput) (appointments.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	if f.createErr != nil {
		return appointments.Appointment{}, f.createErr
	}
	return appointments.Appointment{ID: 99, PetID: in.PetID, Status: in.Status}, nil
}

var (
	minus3 = time.FixedZone("UTC-3", -3*60*60)
	today  = time.Date(2025, 3, 9, 12, 0, 0, 0, minus3)
)

func newGateway() *fakeGateway {
	return &fakeGateway{
		pets: []pets.Pet{{ID: 5, UserID: 3, Name: "Fido"}},
		clinics: []clinics.Clinic{
			{ID: 1, Name: "Clinic1"},
			{ID: 2, Name: "Clinic2"},
		},
		vets: []clinics.Veterinarian{
			{ID: 7, UserID: 42, ClinicID: 1, User: clinics.VetUser{Name: "Dr. Lee"}},
			{ID: 8, UserID: 43, ClinicID: 1, User: clinics.VetUser{Name: "Dr. Kim"}},
			{ID: 9, UserID: 44, ClinicID: 2, User: clinics.VetUser{Name: "Dr. Ruiz"}},
		},
		slots: map[string][]string{
			"2025-03-10": {"2025-03-10T09:00", "2025-03-10T09:30", "2025-03-10T12:30"},
		},
	}
}

func newController(gw Gateway, created *[]appointments.Appointment) *Controller {
	return NewController(gw, Options{
		OwnerID:  3,
		Location: minus3,
		Now:      func() time.Time { return today },
		OnCreated: func(a appointments.Appointment) {
			if created != nil {
				*created = append(*created, a)
			}
		},
	})
}

// -------------------------
// Tests
// -------------------------

func TestController_BookEndToEnd(t *testing.T) {
	gw := newGateway()
	var created []appointments.Appointment
	c := newController(gw, &created)
	ctx := context.Background()

	if err := c.Open(ctx); err != nil {
		t.Fatalf("Open: %v", err)
	}
	v := c.View()
	if v.PetID != 5 || v.State.Clinic == nil || v.State.Clinic.Clinic.ID != 1 {
		t.Fatalf("expected first pet and clinic preselected: %#v", v)
	}
	if v.Stage != StageDateSelection || v.State.Clinic.Vet.Vet.ID != 7 || len(v.State.Clinic.Vets) != 2 {
		t.Fatalf("expected first vet of clinic 1 preselected: %#v", v.State.Clinic)
	}

	if err := c.SelectDate(ctx, "2025-03-10"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if got := c.View().State.Clinic.Vet.Date.Slots; len(got) != 3 {
		t.Fatalf("expected slots loaded, got %v", got)
	}
	if err := c.SelectSlot("2025-03-10T09:00"); err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}
	if err := c.SetNotes(" annual checkup "); err != nil {
		t.Fatalf("SetNotes: %v", err)
	}
	if c.View().Stage != StageSubmittable {
		t.Fatalf("expected submittable")
	}

	a, err := c.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if a.ID != 99 || len(created) != 1 || !c.Closed() {
		t.Fatalf("expected parent notified and form closed")
	}

	in := gw.created[0]
	want := appointments.CreateInput{
		PetID:          5,
		VeterinarianID: 42,
		StartTime:      "2025-03-10T12:00:00Z",
		EndTime:        "2025-03-10T12:30:00Z",
		Status:         appointments.StatusPending,
		Notes:          "annual checkup",
	}
	if in != want {
		t.Fatalf("unexpected payload:\n got %#v\nwant %#v", in, want)
	}
}

func TestController_SubmitOutsideBusinessHours(t *testing.T) {
	gw := newGateway()
	c := newController(gw, nil)
	ctx := context.Background()

	_ = c.Open(ctx)
	_ = c.SelectDate(ctx, "2025-03-10")
	if err := c.SelectSlot("2025-03-10T12:30"); err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}

	if _, err := c.Submit(ctx); !errors.Is(err, ErrOutsideBusinessHours) {
		t.Fatalf("expected ErrOutsideBusinessHours, got %v", err)
	}
	if len(gw.created) != 0 {
		t.Fatalf("gateway must not be called")
	}
	v := c.View()
	wantMsg := "The selected time 12:30 is outside business hours. Appointments must start between 09:00-12:00 or 13:00-16:00."
	if v.FormError != wantMsg || v.Closed {
		t.Fatalf("unexpected view: %q closed=%v", v.FormError, v.Closed)
	}
}

func TestWithinBusinessHours_Boundaries(t *testing.T) {
	cases := []struct {
		hhmm string
		want bool
	}{
		{"08:59", false},
		{"09:00", true},
		{"12:00", true},
		{"12:01", false},
		{"12:30", false},
		{"13:00", true},
		{"16:00", true},
		{"16:01", false},
	}
	for _, c := range cases {
		tm, err := time.ParseInLocation("2006-01-02 15:04", "2025-03-10 "+c.hhmm, minus3)
		if err != nil {
			t.Fatalf("parse %s: %v", c.hhmm, err)
		}
		if got := WithinBusinessHours(tm, minus3); got != c.want {
			t.Fatalf("%s: got %v want %v", c.hhmm, got, c.want)
		}
	}
}

func TestController_ChangingClinicClearsDownstream(t *testing.T) {
	gw := newGateway()
	c := newController(gw, nil)
	ctx := context.Background()

	_ = c.Open(ctx)
	_ = c.SelectDate(ctx, "2025-03-10")
	_ = c.SelectSlot("2025-03-10T09:30")

	if err := c.SelectVet(8); err != nil {
		t.Fatalf("SelectVet: %v", err)
	}
	v := c.View()
	if v.State.Clinic.Clinic.ID != 1 || v.State.Clinic.Vet.Vet.ID != 8 || v.State.Clinic.Vet.Date != nil {
		t.Fatalf("changing vet must keep clinic and clear date: %#v", v.State.Clinic)
	}

	_ = c.SelectDate(ctx, "2025-03-10")
	if err := c.SelectClinic(ctx, 2); err != nil {
		t.Fatalf("SelectClinic: %v", err)
	}
	v = c.View()
	if v.State.Clinic.Clinic.ID != 2 || v.State.Clinic.Vet.Vet.ID != 9 || v.State.Clinic.Vet.Date != nil {
		t.Fatalf("changing clinic must reset vet and below: %#v", v.State.Clinic)
	}

	if err := c.SelectVet(7); !errors.Is(err, ErrUnknownVet) {
		t.Fatalf("vet from other clinic must be rejected, got %v", err)
	}
}

func TestController_SlotFailureDegradesToEmpty(t *testing.T) {
	gw := newGateway()
	gw.slotsErr = &backend.ServerError{StatusCode: 500}
	c := newController(gw, nil)
	ctx := context.Background()

	_ = c.Open(ctx)
	if err := c.SelectDate(ctx, "2025-03-10"); !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	v := c.View()
	d := v.State.Clinic.Vet.Date
	if d == nil || d.SlotsLoading || len(d.Slots) != 0 || !v.NoSlots {
		t.Fatalf("expected empty slot list: %#v", d)
	}
	if len(v.Notices) != 1 || v.Closed {
		t.Fatalf("expected a notice and the form to stay open")
	}

	// el formulario sigue usable
	gw.slotsErr = nil
	if err := c.SelectDate(ctx, "2025-03-10"); err != nil {
		t.Fatalf("retry SelectDate: %v", err)
	}
	if len(c.View().State.Clinic.Vet.Date.Slots) != 3 {
		t.Fatalf("expected slots after retry")
	}
}

func TestController_DateRules(t *testing.T) {
	gw := newGateway()
	gw.clinics = []clinics.Clinic{{ID: 3, Name: "Empty"}}
	c := newController(gw, nil)
	ctx := context.Background()
	_ = c.Open(ctx)

	if err := c.SelectDate(ctx, "2025-03-10"); !errors.Is(err, ErrVetRequired) {
		t.Fatalf("expected ErrVetRequired, got %v", err)
	}
	if c.View().FieldErrors["veterinarian_id"] == "" {
		t.Fatalf("expected veterinarian field error")
	}

	gw = newGateway()
	c = newController(gw, nil)
	_ = c.Open(ctx)
	if err := c.SelectDate(ctx, "2025-03-08"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("past date must be rejected, got %v", err)
	}
	if err := c.SelectDate(ctx, "10/03/2025"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("bad format must be rejected, got %v", err)
	}
	if len(gw.slotCalls) != 0 {
		t.Fatalf("slots must not be fetched for rejected dates")
	}
}

func TestController_SubmitIncompleteAndBackendValidation(t *testing.T) {
	gw := newGateway()
	gw.createErr = &backend.ValidationError{
		Message: "The given data was invalid.",
		Fields:  map[string][]string{"start_time": {"The start time is taken."}},
	}
	c := newController(gw, nil)
	ctx := context.Background()
	_ = c.Open(ctx)

	if _, err := c.Submit(ctx); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if c.View().FieldErrors["start_time"] == "" {
		t.Fatalf("expected start_time field error")
	}

	_ = c.SelectDate(ctx, "2025-03-10")
	_ = c.SelectSlot("2025-03-10T09:30")
	if _, err := c.Submit(ctx); err == nil {
		t.Fatalf("expected backend validation error")
	}
	v := c.View()
	if v.Closed || len(v.SubmitErrors) != 1 || v.SubmitErrors[0] != "start_time: The start time is taken." {
		t.Fatalf("unexpected view after rejected submit: %#v", v)
	}
}

func TestController_OpenPartialFailure(t *testing.T) {
	gw := newGateway()
	gw.petsErr = &backend.NetworkError{Err: errors.New("offline")}
	c := newController(gw, nil)

	err := c.Open(context.Background())
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	v := c.View()
	if len(v.Pets) != 0 || len(v.Clinics) != 2 || v.State.Clinic == nil {
		t.Fatalf("clinics must load even if pets fail: %#v", v)
	}
	if len(v.Notices) != 1 {
		t.Fatalf("expected one notice, got %d", len(v.Notices))
	}
}

func TestController_StaleVetFetchIsDiscarded(t *testing.T) {
	gw := newGateway()
	c := newController(gw, nil)
	ctx := context.Background()
	_ = c.Open(ctx)

	started := make(chan struct{})
	release := make(chan struct{})
	slow := true
	var mu sync.Mutex
	gw.VetsFunc = func(ctx context.Context) ([]clinics.Veterinarian, error) {
		mu.Lock()
		first := slow
		slow = false
		mu.Unlock()
		if first {
			close(started)
			<-release
		}
		return gw.vets, nil
	}

	done := make(chan error)
	go func() { done <- c.SelectClinic(ctx, 1) }()
	<-started

	if err := c.SelectClinic(ctx, 2); err != nil {
		t.Fatalf("SelectClinic: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("stale SelectClinic: %v", err)
	}

	v := c.View()
	if v.State.Clinic.Clinic.ID != 2 || v.State.Clinic.Vet.Vet.ID != 9 {
		t.Fatalf("stale vets result overwrote newer selection: %#v", v.State.Clinic)
	}
}

func TestSlotTimeOfDay(t *testing.T) {
	cases := []struct {
		raw  string
		h, m int
	}{
		{"2025-03-10T09:30", 9, 30},
		{"2025-03-10 13:00:00", 13, 0},
		{"14:30", 14, 30},
		{"2025-03-10T12:00:00Z", 9, 0},
	}
	for _, c := range cases {
		h, m, err := SlotTimeOfDay(c.raw, minus3)
		if err != nil || h != c.h || m != c.m {
			t.Fatalf("%s: got %d:%d err=%v", c.raw, h, m, err)
		}
	}
	if _, _, err := SlotTimeOfDay("soon", minus3); err == nil {
		t.Fatalf("expected error for garbage slot")
	}
}
