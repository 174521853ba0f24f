package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"

	"pet-care-dashboard/internal/ports/backend"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeGateway struct {
	ListFunc func(ctx context.Context, petID int64) ([]MedicalRecord, error)
}

func (f *fakeGateway) ListMedicalRecords(ctx context.Context, petID int64) ([]MedicalRecord, error) {
	return f.ListFunc(ctx, petID)
}

func recordsFor(petID int64, n int) []MedicalRecord {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]MedicalRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, MedicalRecord{
			ID:         petID*100 + int64(i),
			PetID:      petID,
			CreatedAt:  base.AddDate(0, 0, i),
			Treatments: []Treatment{{ID: int64(i), Name: "rest"}},
		})
	}
	return out
}

func TestViewer_ShowAndPaginate(t *testing.T) {
	gw := &fakeGateway{ListFunc: func(ctx context.Context, petID int64) ([]MedicalRecord, error) {
		return recordsFor(petID, 7), nil
	}}
	v := NewViewer(gw, 3, nil)

	if err := v.Show(context.Background(), 1); err != nil {
		t.Fatalf("Show: %v", err)
	}
	view := v.View()
	if view.Total != 7 || view.Pages != 3 || len(view.Records) != 3 {
		t.Fatalf("unexpected paging: total=%d pages=%d len=%d", view.Total, view.Pages, len(view.Records))
	}
	if view.Records[0].ID != 106 {
		t.Fatalf("expected newest first, got %d", view.Records[0].ID)
	}
	if len(view.Flattened.Treatments) != 7 {
		t.Fatalf("expected flattened treatments for all records")
	}

	if err := v.Page(3); err != nil {
		t.Fatalf("Page: %v", err)
	}
	if got := v.View().Records; len(got) != 1 || got[0].ID != 100 {
		t.Fatalf("unexpected last page: %#v", got)
	}
	if err := v.Page(4); !errors.Is(err, ErrPageOutOfRange) {
		t.Fatalf("expected ErrPageOutOfRange, got %v", err)
	}
}

func TestViewer_SwitchingPetDiscardsStaleResult(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	gw := &fakeGateway{ListFunc: func(ctx context.Context, petID int64) ([]MedicalRecord, error) {
		if petID == 1 {
			close(started)
			<-release
		}
		return recordsFor(petID, 2), nil
	}}
	v := NewViewer(gw, 0, nil)

	done := make(chan error)
	go func() { done <- v.Show(context.Background(), 1) }()
	<-started

	if err := v.Show(context.Background(), 2); err != nil {
		t.Fatalf("Show(2): %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Show(1): %v", err)
	}

	view := v.View()
	if view.PetID != 2 || view.Total != 2 || view.Records[0].PetID != 2 {
		t.Fatalf("records of pet A shown for pet B: %#v", view)
	}
}

func TestViewer_FailureSurfacesNotice(t *testing.T) {
	gw := &fakeGateway{ListFunc: func(ctx context.Context, petID int64) ([]MedicalRecord, error) {
		return nil, &backend.NetworkError{Err: errors.New("offline")}
	}}
	v := NewViewer(gw, 0, nil)

	if err := v.Show(context.Background(), 1); err == nil {
		t.Fatalf("expected error")
	}
	view := v.View()
	if view.ErrorKind != backend.KindNetwork || len(view.Notices) != 1 || view.Loading {
		t.Fatalf("unexpected view: %#v", view)
	}
	if err := v.Show(context.Background(), 0); !errors.Is(err, ErrNoPet) {
		t.Fatalf("expected ErrNoPet, got %v", err)
	}
}
