package timezone

import (
	"testing"
	"time"
)

func TestLocation_FallsBackToLocal(t *testing.T) {
	if Location("Not/AZone") != time.Local {
		t.Fatalf("expected fallback to time.Local")
	}
	if Location("") != time.Local {
		t.Fatalf("expected empty tz to be time.Local")
	}
	if loc := Location("America/Sao_Paulo"); loc.String() != "America/Sao_Paulo" {
		t.Fatalf("unexpected location %s", loc)
	}
}

func TestSameDayOrAfter(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, loc)

	if !SameDayOrAfter(time.Date(2025, 3, 10, 8, 0, 0, 0, loc), now, loc) {
		t.Fatalf("earlier today should count as today")
	}
	if SameDayOrAfter(time.Date(2025, 3, 9, 23, 59, 0, 0, loc), now, loc) {
		t.Fatalf("yesterday should not count")
	}
	// 02:00 UTC del día 11 = 23:00 del 10 en UTC-3
	if !SameDayOrAfter(time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC), now, loc) {
		t.Fatalf("expected same local day")
	}
}
