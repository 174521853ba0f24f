package appointments

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"pet-care-dashboard/internal/platform/logger"
	"pet-care-dashboard/internal/platform/notice"
	"pet-care-dashboard/internal/platform/timezone"
	"pet-care-dashboard/internal/ports/backend"
)

var (
	ErrNotReady             = errors.New("appointment not loaded")
	ErrNotCancellable       = errors.New("appointment cannot be cancelled")
	ErrConfirmationRequired = errors.New("cancellation must be confirmed")
	ErrNotEditing           = errors.New("notes are not being edited")
	ErrClosed               = errors.New("view closed")
)

const DefaultCloseDelay = 2 * time.Second

// Gateway es lo que el detalle necesita del backend.
type Gateway interface {
	GetAppointment(ctx context.Context, id int64) (Appointment, error)
	UpdateAppointment(ctx context.Context, id int64, in UpdateInput) (Appointment, error)
	CancelAppointment(ctx context.Context, id int64) error
}

type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
	PhaseClosed  Phase = "closed"
)

type DetailOptions struct {
	Location   *time.Location
	CloseDelay time.Duration

	// OnChanged avisa al padre que refresque su lista.
	OnChanged func()
	// OnClose se llama una vez al cerrar (manual o auto-cierre).
	OnClose func()

	Now   func() time.Time
	After func(d time.Duration, f func())
	Log   logger.Logger
}

// Detail controla el modal de detalle: carga, edición de notas y cancelación confirmada.
type Detail struct {
	mu sync.Mutex

	gw   Gateway
	id   int64
	opts DetailOptions

	phase   Phase
	appt    *Appointment
	errKind backend.Kind
	errMsg  string

	editing    bool
	notesDraft string
	saving     bool

	confirming    bool
	cancelling    bool
	closeAt       *time.Time
	closeNotified bool

	// gen se incrementa en cada Open/Close; resultados de generaciones viejas se descartan.
	gen uint64

	notices *notice.Board
}

func NewDetail(gw Gateway, id int64, opts DetailOptions) *Detail {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.CloseDelay <= 0 {
		opts.CloseDelay = DefaultCloseDelay
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.After == nil {
		opts.After = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	if opts.Log == nil {
		opts.Log = logger.NewNop()
	}
	return &Detail{
		gw:      gw,
		id:      id,
		opts:    opts,
		phase:   PhaseLoading,
		notices: notice.NewBoard(),
	}
}

// Open (re)carga el turno con pet, veterinario y clínica anidados.
func (d *Detail) Open(ctx context.Context) error {
	d.mu.Lock()
	if d.phase == PhaseClosed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.gen++
	gen := d.gen
	d.phase = PhaseLoading
	d.errKind, d.errMsg = "", ""
	d.mu.Unlock()

	a, err := d.gw.GetAppointment(ctx, d.id)

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen || d.phase == PhaseClosed {
		return nil
	}

	if err != nil {
		d.phase = PhaseError
		d.errKind = backend.Classify(err)
		d.errMsg = loadErrorMessage(err)
		d.notices.Error(d.errMsg)
		d.opts.Log.Warn("appointment fetch failed", map[string]any{"appointment_id": d.id, "err": err})
		return err
	}

	d.appt = &a
	d.phase = PhaseReady
	return nil
}

func loadErrorMessage(err error) string {
	switch backend.Classify(err) {
	case backend.KindNotFound:
		return "Appointment not found."
	case backend.KindForbidden:
		return "You do not have permission to view this appointment."
	default:
		return backend.UserMessage(err)
	}
}

func (d *Detail) BeginEdit() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.phase != PhaseReady {
		return ErrNotReady
	}
	d.editing = true
	d.notesDraft = d.appt.Notes
	return nil
}

func (d *Detail) SetNotesDraft(notes string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.editing {
		return ErrNotEditing
	}
	d.notesDraft = notes
	return nil
}

func (d *Detail) CancelEdit() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editing = false
	d.notesDraft = ""
}

// SaveNotes guarda solo las notas; ante error conserva el borrador.
func (d *Detail) SaveNotes(ctx context.Context) error {
	d.mu.Lock()
	if d.phase != PhaseReady {
		d.mu.Unlock()
		return ErrNotReady
	}
	if !d.editing {
		d.mu.Unlock()
		return ErrNotEditing
	}
	d.saving = true
	gen := d.gen
	notes := strings.TrimSpace(d.notesDraft)
	d.mu.Unlock()

	_, err := d.gw.UpdateAppointment(ctx, d.id, UpdateInput{Notes: &notes})

	d.mu.Lock()
	defer d.mu.Unlock()
	d.saving = false
	if gen != d.gen || d.phase == PhaseClosed {
		return nil
	}

	if err != nil {
		d.notices.Error("Could not save notes: " + backend.UserMessage(err))
		return err
	}

	d.appt.Notes = notes
	d.editing = false
	d.notesDraft = ""
	d.notices.Push(notice.LevelSuccess, "Notes saved.")
	return nil
}

// CanCancel: solo pendientes y con fecha hoy o futura (en la zona local).
func (d *Detail) CanCancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.canCancelLocked()
}

func (d *Detail) canCancelLocked() bool {
	if d.phase != PhaseReady || d.appt == nil || d.cancelling || d.closeAt != nil {
		return false
	}
	return IsCancellable(*d.appt, d.opts.Now(), d.opts.Location)
}

// IsCancellable aplica la regla de cancelación sobre un turno.
func IsCancellable(a Appointment, now time.Time, loc *time.Location) bool {
	if a.Status != StatusPending {
		return false
	}
	return timezone.SameDayOrAfter(a.StartTime, now, loc)
}

// RequestCancel abre el paso de confirmación.
func (d *Detail) RequestCancel() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.canCancelLocked() {
		return ErrNotCancellable
	}
	d.confirming = true
	return nil
}

func (d *Detail) AbortCancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.confirming = false
}

// ConfirmCancel cancela en el backend; en éxito marca "cancelled" localmente,
// avisa al padre y programa el auto-cierre.
func (d *Detail) ConfirmCancel(ctx context.Context) error {
	d.mu.Lock()
	if !d.confirming {
		d.mu.Unlock()
		return ErrConfirmationRequired
	}
	if !d.canCancelLocked() {
		d.confirming = false
		d.mu.Unlock()
		return ErrNotCancellable
	}
	d.cancelling = true
	gen := d.gen
	d.mu.Unlock()

	err := d.gw.CancelAppointment(ctx, d.id)

	d.mu.Lock()
	d.cancelling = false
	if gen != d.gen || d.phase == PhaseClosed {
		d.mu.Unlock()
		return nil
	}
	if err != nil {
		d.confirming = false
		d.notices.Error("Could not cancel the appointment: " + backend.UserMessage(err))
		d.mu.Unlock()
		return err
	}

	d.appt.Status = StatusCancelled
	d.confirming = false
	at := d.opts.Now().Add(d.opts.CloseDelay)
	d.closeAt = &at
	d.notices.Push(notice.LevelSuccess, "Appointment cancelled.")
	onChanged := d.opts.OnChanged
	d.mu.Unlock()

	if onChanged != nil {
		onChanged()
	}
	d.opts.After(d.opts.CloseDelay, d.Close)
	return nil
}

func (d *Detail) DismissNotice(id string) bool {
	return d.notices.Dismiss(id)
}

// Close invalida fetches en vuelo y notifica al padre una sola vez.
func (d *Detail) Close() {
	d.mu.Lock()
	d.gen++
	d.phase = PhaseClosed
	notify := !d.closeNotified
	d.closeNotified = true
	onClose := d.opts.OnClose
	d.mu.Unlock()

	if notify && onClose != nil {
		onClose()
	}
}

type DetailView struct {
	Phase       Phase           `json:"phase"`
	Appointment *Appointment    `json:"appointment,omitempty"`
	ErrorKind   backend.Kind    `json:"error_kind,omitempty"`
	Error       string          `json:"error,omitempty"`
	Editing     bool            `json:"editing"`
	NotesDraft  string          `json:"notes_draft,omitempty"`
	Saving      bool            `json:"saving"`
	Confirming  bool            `json:"confirming_cancel"`
	Cancelling  bool            `json:"cancelling"`
	CanCancel   bool            `json:"can_cancel"`
	CloseAt     *time.Time      `json:"close_at,omitempty"`
	Notices     []notice.Notice `json:"notices"`
}

func (d *Detail) View() DetailView {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := DetailView{
		Phase:      d.phase,
		ErrorKind:  d.errKind,
		Error:      d.errMsg,
		Editing:    d.editing,
		NotesDraft: d.notesDraft,
		Saving:     d.saving,
		Confirming: d.confirming,
		Cancelling: d.cancelling,
		CanCancel:  d.canCancelLocked(),
		CloseAt:    d.closeAt,
		Notices:    d.notices.List(),
	}
	if d.appt != nil {
		cp := *d.appt
		v.Appointment = &cp
	}
	return v
}
