package appointments

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"pet-care-dashboard/internal/ports/backend"
)

// -------------------------
// Fake gateway (func fields)
// -------------------------

type fakeGateway struct {
	GetFunc    func(ctx context.Context, id int64) (Appointment, error)
	UpdateFunc func(ctx context.Context, id int64, in UpdateInput) (Appointment, error)
	CancelFunc func(ctx context.Context, id int64) error

	cancelCalls int32
}

func (f *fakeGateway) GetAppointment(ctx context.Context, id int64) (Appointment, error) {
	return f.GetFunc(ctx, id)
}

func (f *fakeGateway) UpdateAppointment(ctx context.Context, id int64, in UpdateInput) (Appointment, error) {
	if f.UpdateFunc == nil {
		return Appointment{}, errors.New("UpdateFunc not implemented")
	}
	return f.UpdateFunc(ctx, id, in)
}

func (f *fakeGateway) CancelAppointment(ctx context.Context, id int64) error {
	atomic.AddInt32(&f.cancelCalls, 1)
	if f.CancelFunc == nil {
		return nil
	}
	return f.CancelFunc(ctx, id)
}

var now = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func returning(a Appointment) func(context.Context, int64) (Appointment, error) {
	return func(context.Context, int64) (Appointment, error) { return a, nil }
}

type capturedAfter struct {
	delay time.Duration
	fn    func()
}

func newDetail(gw Gateway, after *capturedAfter, changed *int) *Detail {
	return NewDetail(gw, 1, DetailOptions{
		Location: time.UTC,
		Now:      func() time.Time { return now },
		After: func(d time.Duration, f func()) {
			after.delay = d
			after.fn = f
		},
		OnChanged: func() { *changed++ },
	})
}

// -------------------------
// Tests
// -------------------------

func TestDetail_Open_ErrorKinds(t *testing.T) {
	cases := []struct {
		err  error
		kind backend.Kind
		msg  string
	}{
		{&backend.NotFoundError{}, backend.KindNotFound, "Appointment not found."},
		{&backend.ForbiddenError{}, backend.KindForbidden, "You do not have permission to view this appointment."},
		{&backend.ServerError{StatusCode: 500}, backend.KindServer, "Something went wrong, please try again."},
	}
	for _, c := range cases {
		gw := &fakeGateway{GetFunc: func(context.Context, int64) (Appointment, error) { return Appointment{}, c.err }}
		d := NewDetail(gw, 1, DetailOptions{})
		_ = d.Open(context.Background())

		v := d.View()
		if v.Phase != PhaseError || v.ErrorKind != c.kind || v.Error != c.msg {
			t.Fatalf("unexpected view for %v: %#v", c.err, v)
		}
		if len(v.Notices) != 1 {
			t.Fatalf("expected a dismissible notice")
		}
		if !d.DismissNotice(v.Notices[0].ID) {
			t.Fatalf("notice should be dismissible")
		}
	}
}

func TestDetail_CancelRules(t *testing.T) {
	cases := []struct {
		name   string
		status Status
		start  time.Time
		want   bool
	}{
		{"pending future", StatusPending, now.Add(48 * time.Hour), true},
		{"pending earlier today", StatusPending, now.Add(-2 * time.Hour), true},
		{"pending yesterday", StatusPending, now.Add(-24 * time.Hour), false},
		{"confirmed future", StatusConfirmed, now.Add(48 * time.Hour), false},
		{"cancelled future", StatusCancelled, now.Add(48 * time.Hour), false},
	}
	for _, c := range cases {
		gw := &fakeGateway{GetFunc: returning(Appointment{ID: 1, Status: c.status, StartTime: c.start})}
		var after capturedAfter
		changed := 0
		d := newDetail(gw, &after, &changed)
		if err := d.Open(context.Background()); err != nil {
			t.Fatalf("%s: Open: %v", c.name, err)
		}
		if got := d.CanCancel(); got != c.want {
			t.Fatalf("%s: CanCancel = %v want %v", c.name, got, c.want)
		}
		if !c.want {
			if err := d.RequestCancel(); !errors.Is(err, ErrNotCancellable) {
				t.Fatalf("%s: expected ErrNotCancellable, got %v", c.name, err)
			}
		}
	}
}

func TestDetail_ConfirmCancel_Flow(t *testing.T) {
	gw := &fakeGateway{GetFunc: returning(Appointment{ID: 1, Status: StatusPending, StartTime: now.Add(24 * time.Hour)})}
	var after capturedAfter
	changed := 0
	closed := 0
	d := NewDetail(gw, 1, DetailOptions{
		Location:   time.UTC,
		Now:        func() time.Time { return now },
		CloseDelay: 1500 * time.Millisecond,
		After:      func(dl time.Duration, f func()) { after.delay, after.fn = dl, f },
		OnChanged:  func() { changed++ },
		OnClose:    func() { closed++ },
	})
	if err := d.Open(context.Background()); err != nil {
		t.Fatalf("Open: %v", err)
	}

	// sin confirmación no se llama al backend
	if err := d.ConfirmCancel(context.Background()); !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if atomic.LoadInt32(&gw.cancelCalls) != 0 {
		t.Fatalf("backend must not be called before confirmation")
	}

	if err := d.RequestCancel(); err != nil {
		t.Fatalf("RequestCancel: %v", err)
	}
	if err := d.ConfirmCancel(context.Background()); err != nil {
		t.Fatalf("ConfirmCancel: %v", err)
	}

	v := d.View()
	if v.Appointment.Status != StatusCancelled || v.CanCancel || v.CloseAt == nil {
		t.Fatalf("unexpected view after cancel: %#v", v)
	}
	if changed != 1 {
		t.Fatalf("expected parent refresh, got %d", changed)
	}
	if after.delay != 1500*time.Millisecond || after.fn == nil {
		t.Fatalf("expected auto-close scheduled, got %#v", after)
	}

	after.fn()
	if d.View().Phase != PhaseClosed || closed != 1 {
		t.Fatalf("expected closed after delay")
	}
	d.Close()
	if closed != 1 {
		t.Fatalf("OnClose must fire once, got %d", closed)
	}
}

func TestDetail_ConfirmCancel_FailureKeepsModalOpen(t *testing.T) {
	gw := &fakeGateway{
		GetFunc:    returning(Appointment{ID: 1, Status: StatusPending, StartTime: now.Add(time.Hour)}),
		CancelFunc: func(context.Context, int64) error { return &backend.NetworkError{Err: errors.New("offline")} },
	}
	var after capturedAfter
	changed := 0
	d := newDetail(gw, &after, &changed)
	_ = d.Open(context.Background())
	_ = d.RequestCancel()

	if err := d.ConfirmCancel(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	v := d.View()
	if v.Phase != PhaseReady || v.Appointment.Status != StatusPending || after.fn != nil || changed != 0 {
		t.Fatalf("modal must stay open and untouched: %#v", v)
	}
	if len(v.Notices) != 1 {
		t.Fatalf("expected error notice")
	}
}

func TestDetail_SaveNotes(t *testing.T) {
	var sent string
	gw := &fakeGateway{
		GetFunc: returning(Appointment{ID: 1, Status: StatusPending, Notes: "old", StartTime: now}),
		UpdateFunc: func(ctx context.Context, id int64, in UpdateInput) (Appointment, error) {
			sent = *in.Notes
			if in.Status != nil {
				t.Errorf("only notes must be sent")
			}
			return Appointment{ID: id, Notes: *in.Notes}, nil
		},
	}
	d := NewDetail(gw, 1, DetailOptions{})
	_ = d.Open(context.Background())

	if err := d.SaveNotes(context.Background()); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing, got %v", err)
	}
	_ = d.BeginEdit()
	if d.View().NotesDraft != "old" {
		t.Fatalf("draft should start from current notes")
	}
	_ = d.SetNotesDraft("  limping on left leg ")
	if err := d.SaveNotes(context.Background()); err != nil {
		t.Fatalf("SaveNotes: %v", err)
	}
	if sent != "limping on left leg" || d.View().Appointment.Notes != sent || d.View().Editing {
		t.Fatalf("unexpected state after save: sent=%q view=%#v", sent, d.View())
	}
}

func TestDetail_ResultAfterCloseIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	gw := &fakeGateway{GetFunc: func(ctx context.Context, id int64) (Appointment, error) {
		close(started)
		<-release
		return Appointment{ID: id, Status: StatusPending}, nil
	}}
	d := NewDetail(gw, 1, DetailOptions{})

	done := make(chan error)
	go func() { done <- d.Open(context.Background()) }()

	<-started
	d.Close()
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Open: %v", err)
	}
	if v := d.View(); v.Phase != PhaseClosed || v.Appointment != nil {
		t.Fatalf("stale result applied after close: %#v", v)
	}
}
