package records

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

type fixedResolver struct{ v *Viewer }

func (f fixedResolver) Records(r *http.Request) (*Viewer, error) { return f.v, nil }

func newRecordsServer(v *Viewer) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, fixedResolver{v: v})
	return r
}

func TestShowHandler_SupersededRequestDoesNotPageOtherPet(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	gw := &fakeGateway{ListFunc: func(ctx context.Context, petID int64) ([]MedicalRecord, error) {
		if petID == 1 {
			close(started)
			<-release
		}
		return recordsFor(petID, 7), nil
	}}
	v := NewViewer(gw, 3, nil)
	h := newRecordsServer(v)

	first := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/pets/1/records?page=2", nil))
	}()
	<-started

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/pets/2/records", nil))
	if second.Code != http.StatusOK {
		t.Fatalf("pet 2: expected 200, got %d", second.Code)
	}

	close(release)
	<-done

	if first.Code != http.StatusConflict {
		t.Fatalf("superseded request: expected 409, got %d body=%s", first.Code, first.Body.String())
	}
	var got View
	if err := json.Unmarshal(first.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.PetID != 2 || got.Page != 1 {
		t.Fatalf("pet 2 view must stay on page 1, got pet=%d page=%d", got.PetID, got.Page)
	}
	if view := v.View(); view.Page != 1 {
		t.Fatalf("viewer paged by a stale request: page=%d", view.Page)
	}
}

func TestShowHandler_PageOutOfRange(t *testing.T) {
	gw := &fakeGateway{ListFunc: func(ctx context.Context, petID int64) ([]MedicalRecord, error) {
		return recordsFor(petID, 2), nil
	}}
	h := newRecordsServer(NewViewer(gw, 3, nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets/1/records?page=5", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
