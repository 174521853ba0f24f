package records

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pet-care-dashboard/internal/platform/logger"
	"pet-care-dashboard/internal/platform/notice"
	"pet-care-dashboard/internal/ports/backend"
)

const DefaultPageSize = 5

var (
	ErrNoPet          = errors.New("no pet selected")
	ErrPageOutOfRange = errors.New("page out of range")
)

type Gateway interface {
	ListMedicalRecords(ctx context.Context, petID int64) ([]MedicalRecord, error)
}

// Viewer muestra el historial clínico de una mascota, paginado.
// Si el usuario cambia de mascota con un fetch en vuelo, el resultado viejo se descarta.
type Viewer struct {
	mu sync.Mutex

	gw       Gateway
	log      logger.Logger
	pageSize int

	petID   int64
	gen     uint64
	loading bool
	records []MedicalRecord
	page    int
	errMsg  string
	errKind backend.Kind

	notices *notice.Board
}

func NewViewer(gw Gateway, pageSize int, log logger.Logger) *Viewer {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Viewer{gw: gw, log: log, pageSize: pageSize, page: 1, notices: notice.NewBoard()}
}

func (v *Viewer) Show(ctx context.Context, petID int64) error {
	if petID <= 0 {
		return ErrNoPet
	}

	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.petID = petID
	v.loading = true
	v.records = nil
	v.page = 1
	v.errMsg, v.errKind = "", ""
	v.mu.Unlock()

	list, err := v.gw.ListMedicalRecords(ctx, petID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen || v.petID != petID {
		return nil
	}
	v.loading = false

	if err != nil {
		v.errKind = backend.Classify(err)
		v.errMsg = backend.UserMessage(err)
		v.notices.Error("Could not load medical records: " + v.errMsg)
		v.log.Warn("medical records fetch failed", map[string]any{"pet_id": petID, "err": err})
		return err
	}

	// más reciente primero
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if list == nil {
		list = []MedicalRecord{}
	}
	v.records = list
	return nil
}

// Page cambia de página (base 1).
func (v *Viewer) Page(n int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if n < 1 || n > v.pagesLocked() {
		return ErrPageOutOfRange
	}
	v.page = n
	return nil
}

// Reset invalida cualquier fetch en vuelo.
func (v *Viewer) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	v.petID = 0
	v.records = nil
	v.loading = false
	v.page = 1
}

func (v *Viewer) DismissNotice(id string) bool {
	return v.notices.Dismiss(id)
}

func (v *Viewer) pagesLocked() int {
	if len(v.records) == 0 {
		return 1
	}
	return (len(v.records) + v.pageSize - 1) / v.pageSize
}

type View struct {
	PetID     int64           `json:"pet_id"`
	Loading   bool            `json:"loading"`
	Records   []MedicalRecord `json:"records"`
	Page      int             `json:"page"`
	Pages     int             `json:"pages"`
	Total     int             `json:"total"`
	Flattened Flattened       `json:"flattened"`
	ErrorKind backend.Kind    `json:"error_kind,omitempty"`
	Error     string          `json:"error,omitempty"`
	Notices   []notice.Notice `json:"notices"`
}

func (v *Viewer) View() View {
	v.mu.Lock()
	defer v.mu.Unlock()

	from := (v.page - 1) * v.pageSize
	to := from + v.pageSize
	if from > len(v.records) {
		from = len(v.records)
	}
	if to > len(v.records) {
		to = len(v.records)
	}
	pageItems := append([]MedicalRecord{}, v.records[from:to]...)

	return View{
		PetID:     v.petID,
		Loading:   v.loading,
		Records:   pageItems,
		Page:      v.page,
		Pages:     v.pagesLocked(),
		Total:     len(v.records),
		Flattened: Flatten(v.records),
		ErrorKind: v.errKind,
		Error:     v.errMsg,
		Notices:   v.notices.List(),
	}
}
