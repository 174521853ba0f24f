// Package workspace mantiene, por cada sesión del dashboard, el gateway ligado a esa
// sesión y los controladores abiertos (formularios de turno, detalles de turno y el
// visor de historial). Es el equivalente server-side del estado de la SPA.
package workspace

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"pet-care-dashboard/internal/adapters/vetapi"
	"pet-care-dashboard/internal/domain/appointments"
	"pet-care-dashboard/internal/domain/booking"
	"pet-care-dashboard/internal/domain/calendar"
	"pet-care-dashboard/internal/domain/clinics"
	"pet-care-dashboard/internal/domain/identity"
	"pet-care-dashboard/internal/domain/pets"
	"pet-care-dashboard/internal/domain/records"
	"pet-care-dashboard/internal/middleware"
	"pet-care-dashboard/internal/platform/logger"
	"pet-care-dashboard/internal/ports/auth"
)

var (
	ErrNoSession     = errors.New("no dashboard session")
	ErrUnknownForm   = errors.New("booking form not found")
	ErrUnknownDetail = errors.New("appointment view not open")
)

const DefaultIdleTTL = 30 * time.Minute

type Config struct {
	API     *vetapi.Client
	Store   auth.Store
	Locator *clinics.Locator

	Location   *time.Location
	PageSize   int
	CloseDelay time.Duration
	IdleTTL    time.Duration

	Log logger.Logger
}

// Manager indexa workspaces por id de sesión (cookie petcare_session).
type Manager struct {
	cfg Config
	log logger.Logger
	now func() time.Time

	mu     sync.Mutex
	spaces map[string]*Workspace
}

func NewManager(cfg Config) *Manager {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultIdleTTL
	}
	if cfg.Log == nil {
		cfg.Log = logger.NewNop()
	}
	return &Manager{
		cfg:    cfg,
		log:    cfg.Log.With(map[string]any{"component": "workspace"}),
		now:    time.Now,
		spaces: map[string]*Workspace{},
	}
}

func (m *Manager) Get(sessionID string) (*Workspace, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if ws, ok := m.spaces[sessionID]; ok {
		ws.lastSeen = m.now()
		return ws, nil
	}

	ws, err := m.newWorkspace(sessionID)
	if err != nil {
		return nil, err
	}
	ws.lastSeen = m.now()
	m.spaces[sessionID] = ws
	return ws, nil
}

// ForRequest resuelve el workspace de la sesión que dejó el middleware.
func (m *Manager) ForRequest(r *http.Request) (*Workspace, error) {
	id, ok := middleware.SessionID(r.Context())
	if !ok {
		return nil, ErrNoSession
	}
	return m.Get(id)
}

// Sweep cierra los workspaces sin actividad. El token sigue en el store; la próxima
// request de esa sesión arma un workspace nuevo.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.cfg.IdleTTL)

	m.mu.Lock()
	var idle []*Workspace
	for id, ws := range m.spaces {
		if ws.lastSeen.Before(cutoff) {
			idle = append(idle, ws)
			delete(m.spaces, id)
		}
	}
	m.mu.Unlock()

	for _, ws := range idle {
		ws.closeAll()
	}
	return len(idle)
}

func (m *Manager) Run(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := m.Sweep(); n > 0 {
				m.log.Debug("idle workspaces dropped", map[string]any{"count": n})
			}
		}
	}
}

func (m *Manager) Locator() *clinics.Locator { return m.cfg.Locator }

func (m *Manager) Location() *time.Location { return m.cfg.Location }

func (m *Manager) newWorkspace(id string) (*Workspace, error) {
	sess := identity.NewStoreSession(m.cfg.Store, id)
	api, err := m.cfg.API.WithSession(sess)
	if err != nil {
		return nil, err
	}
	log := m.log.With(map[string]any{"session": shortID(id)})

	return &Workspace{
		id:       id,
		cfg:      m.cfg,
		log:      log,
		api:      api,
		Identity: identity.NewService(api, sess, log),
		Pets:     pets.NewService(api),
		Loader:   calendar.NewLoader(api, log),
		Records:  records.NewViewer(api, m.cfg.PageSize, log),
		bookings: map[string]*booking.Controller{},
		details:  map[int64]*appointments.Detail{},
	}, nil
}

// Workspace es el estado de UI de una sesión.
type Workspace struct {
	id  string
	cfg Config
	log logger.Logger
	api *vetapi.Client

	Identity *identity.Service
	Pets     *pets.Service
	Loader   *calendar.Loader
	Records  *records.Viewer

	mu       sync.Mutex
	bookings map[string]*booking.Controller
	details  map[int64]*appointments.Detail
	lastSeen time.Time

	// version sube con cada alta/edición/cancelación; el calendario la expone
	// para que el cliente sepa cuándo refrescar.
	version atomic.Uint64
}

func (w *Workspace) API() *vetapi.Client { return w.api }

func (w *Workspace) Version() uint64 { return w.version.Load() }

// OwnerID es el id del usuario logueado; AuthError si no hay sesión válida.
func (w *Workspace) OwnerID(ctx context.Context) (int64, error) {
	u, err := w.Identity.Current(ctx)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

// OwnerPets lista las mascotas del usuario logueado.
func (w *Workspace) OwnerPets(ctx context.Context) ([]pets.Pet, error) {
	owner, err := w.OwnerID(ctx)
	if err != nil {
		return nil, err
	}
	return w.Pets.ListByOwner(ctx, owner)
}

// OpenBooking crea un formulario nuevo, lo carga y lo registra.
// Aunque la carga falle parcialmente el formulario queda abierto con sus avisos.
func (w *Workspace) OpenBooking(ctx context.Context) (*booking.Controller, error) {
	owner, err := w.OwnerID(ctx)
	if err != nil {
		return nil, err
	}

	var c *booking.Controller
	c = booking.NewController(w.api, booking.Options{
		OwnerID:  owner,
		Location: w.cfg.Location,
		Log:      w.log,
		// el formulario enviado ya está cerrado; se saca del mapa
		OnCreated: func(a appointments.Appointment) {
			w.mu.Lock()
			delete(w.bookings, c.ID())
			w.mu.Unlock()
			w.version.Add(1)
			w.log.Info("appointment created", map[string]any{"appointment_id": a.ID})
		},
	})

	w.mu.Lock()
	w.bookings[c.ID()] = c
	w.mu.Unlock()

	if err := c.Open(ctx); err != nil {
		w.log.Warn("booking form opened with errors", map[string]any{"form": c.ID(), "err": err})
	}
	return c, nil
}

func (w *Workspace) Booking(id string) (*booking.Controller, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	c, ok := w.bookings[id]
	if !ok {
		return nil, ErrUnknownForm
	}
	return c, nil
}

func (w *Workspace) CloseBooking(id string) error {
	w.mu.Lock()
	c, ok := w.bookings[id]
	delete(w.bookings, id)
	w.mu.Unlock()

	if !ok {
		return ErrUnknownForm
	}
	c.Close()
	return nil
}

// OpenDetail abre (o recarga) la vista de detalle de un turno.
func (w *Workspace) OpenDetail(ctx context.Context, id int64) (*appointments.Detail, error) {
	w.mu.Lock()
	d, ok := w.details[id]
	if !ok {
		d = w.newDetail(id)
		w.details[id] = d
	}
	w.mu.Unlock()

	return d, d.Open(ctx)
}

func (w *Workspace) Detail(id int64) (*appointments.Detail, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	d, ok := w.details[id]
	if !ok {
		return nil, ErrUnknownDetail
	}
	return d, nil
}

func (w *Workspace) CloseDetail(id int64) error {
	d, err := w.Detail(id)
	if err != nil {
		return err
	}
	d.Close()
	return nil
}

func (w *Workspace) newDetail(id int64) *appointments.Detail {
	var d *appointments.Detail
	d = appointments.NewDetail(w.api, id, appointments.DetailOptions{
		Location:   w.cfg.Location,
		CloseDelay: w.cfg.CloseDelay,
		Log:        w.log,
		OnChanged:  func() { w.version.Add(1) },
		OnClose: func() {
			w.mu.Lock()
			if w.details[id] == d {
				delete(w.details, id)
			}
			w.mu.Unlock()
		},
	})
	return d
}

func (w *Workspace) closeAll() {
	w.mu.Lock()
	forms := make([]*booking.Controller, 0, len(w.bookings))
	for _, c := range w.bookings {
		forms = append(forms, c)
	}
	views := make([]*appointments.Detail, 0, len(w.details))
	for _, d := range w.details {
		views = append(views, d)
	}
	w.bookings = map[string]*booking.Controller{}
	w.mu.Unlock()

	for _, c := range forms {
		c.Close()
	}
	for _, d := range views {
		d.Close()
	}
	w.Records.Reset()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
