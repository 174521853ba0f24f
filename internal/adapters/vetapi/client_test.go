package vetapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pet-care-dashboard/internal/adapters/storage/memory"
	"pet-care-dashboard/internal/domain/appointments"
	"pet-care-dashboard/internal/domain/identity"
	"pet-care-dashboard/internal/domain/pets"
	"pet-care-dashboard/internal/ports/auth"
	"pet-care-dashboard/internal/ports/backend"
)

// -------------------------
// Fake backend
// -------------------------

type fakeBackend struct {
	*httptest.Server
	requests  int32
	csrfCalls int32
}

func newFakeBackend(t *testing.T, routes map[string]http.HandlerFunc) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	mux := http.NewServeMux()
	mux.HandleFunc("/sanctum/csrf-cookie", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fb.csrfCalls, 1)
		http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "abc%3D", Path: "/"})
		w.WriteHeader(http.StatusNoContent)
	})
	for pattern, h := range routes {
		mux.HandleFunc(pattern, h)
	}
	fb.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fb.requests, 1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(fb.Close)
	return fb
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newSessionClient(t *testing.T, baseURL string, slots ...string) (*Client, auth.Session) {
	t.Helper()
	base, err := NewClient(Config{BaseURL: baseURL + "/api", SlotEndpoints: slots})
	require.NoError(t, err)

	sess := identity.NewStoreSession(memory.NewSessionStore(0), "t")
	c, err := base.WithSession(sess)
	require.NoError(t, err)
	return c, sess
}

// -------------------------
// Tests
// -------------------------

func TestLogin_SendsCSRFAndStoresSession(t *testing.T) {
	fb := newFakeBackend(t, map[string]http.HandlerFunc{
		"/api/login": func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-XSRF-TOKEN") != "abc=" {
				writeJSON(w, 419, map[string]string{"message": "CSRF token mismatch."})
				return
			}
			if r.Header.Get("Authorization") != "" {
				t.Errorf("login must not carry a bearer token")
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"token": "1|secret",
				"user":  map[string]any{"id": 3, "name": "Ana", "email": "ana@example.com"},
			})
		},
		"/api/pets": func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer 1|secret" || r.URL.Query().Get("user_id") != "3" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{
				{"id": 5, "user_id": 3, "name": "Fido", "species": "dog", "gender": "Male", "sterilized": 1},
			}})
		},
	})
	c, sess := newSessionClient(t, fb.URL)
	ctx := context.Background()

	u, err := c.Login(ctx, auth.Credentials{Email: "ana@example.com", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, int64(3), u.ID)
	require.Equal(t, int32(1), atomic.LoadInt32(&fb.csrfCalls))

	tok, _ := sess.Token(ctx)
	require.Equal(t, "1|secret", tok)
	cached, _ := sess.User(ctx)
	require.NotNil(t, cached)
	require.Equal(t, "Ana", cached.Name)

	list, err := c.ListPets(ctx, 3)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Fido", list[0].Name)
	require.True(t, bool(list[0].Sterilized))
}

func TestErrors_MappedToTaxonomy(t *testing.T) {
	fb := newFakeBackend(t, map[string]http.HandlerFunc{
		"/api/pets/1": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "No query results"})
		},
		"/api/pets/2": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "This action is unauthorized."})
		},
		"/api/pets/3": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
		"/api/pets": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"message": "The given data was invalid.",
				"errors":  map[string][]string{"name": {"The name field is required."}},
			})
		},
		"/api/clinics": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
		},
	})
	c, sess := newSessionClient(t, fb.URL)
	ctx := context.Background()
	require.NoError(t, sess.SetToken(ctx, "1|secret"))

	_, err := c.GetPet(ctx, 1)
	require.Equal(t, backend.KindNotFound, backend.Classify(err))

	_, err = c.GetPet(ctx, 2)
	require.Equal(t, backend.KindForbidden, backend.Classify(err))

	_, err = c.GetPet(ctx, 3)
	var se *backend.ServerError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusBadGateway, se.StatusCode)

	_, err = c.CreatePet(ctx, pets.Payload{})
	var ve *backend.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, []string{"name: The name field is required."}, ve.Lines())

	_, err = c.ListClinics(ctx)
	require.Equal(t, backend.KindAuth, backend.Classify(err))
	tok, _ := sess.Token(ctx)
	require.Empty(t, tok, "401 must clear the stored token")
}

func TestAuthRequired_FailsBeforeNetwork(t *testing.T) {
	fb := newFakeBackend(t, nil)
	c, _ := newSessionClient(t, fb.URL)

	_, err := c.ListVets(context.Background())
	require.Equal(t, backend.KindAuth, backend.Classify(err))
	require.Equal(t, int32(0), atomic.LoadInt32(&fb.requests))
}

func TestNetworkError(t *testing.T) {
	fb := newFakeBackend(t, nil)
	url := fb.URL
	fb.Close()

	c, sess := newSessionClient(t, url)
	require.NoError(t, sess.SetToken(context.Background(), "1|secret"))

	_, err := c.ListClinics(context.Background())
	require.Equal(t, backend.KindNetwork, backend.Classify(err))
}

func TestLogout_ClearsSessionEvenOnFailure(t *testing.T) {
	fb := newFakeBackend(t, map[string]http.HandlerFunc{
		"/api/logout": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	})
	c, sess := newSessionClient(t, fb.URL)
	ctx := context.Background()
	require.NoError(t, sess.SetToken(ctx, "1|secret"))
	require.NoError(t, sess.SetUser(ctx, &auth.User{ID: 3}))

	require.Error(t, c.Logout(ctx))

	tok, _ := sess.Token(ctx)
	u, _ := sess.User(ctx)
	require.Empty(t, tok)
	require.Nil(t, u)
}

func TestAvailableSlots_FallbackAndShapes(t *testing.T) {
	fb := newFakeBackend(t, map[string]http.HandlerFunc{
		"/api/veterinarians/7/available-slots": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		},
		"/api/vets/7/available-slots": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("date") != "2025-03-10" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"slots": []any{
				map[string]string{"start_time": "2025-03-10T09:00"},
				"2025-03-10T09:30",
				map[string]string{"time": "10:00"},
				map[string]string{"other": "ignored"},
			}})
		},
	})
	c, sess := newSessionClient(t, fb.URL)
	ctx := context.Background()
	require.NoError(t, sess.SetToken(ctx, "1|secret"))

	slots, err := c.AvailableSlots(ctx, 7, "2025-03-10")
	require.NoError(t, err)
	require.Equal(t, []string{"2025-03-10T09:00", "2025-03-10T09:30", "10:00"}, slots)

	// todas las plantillas fallan: lista vacía, sin error
	slots, err = c.AvailableSlots(ctx, 8, "2025-03-10")
	require.NoError(t, err)
	require.Empty(t, slots)
	require.NotNil(t, slots)
}

func TestSlotPath(t *testing.T) {
	require.Equal(t, "/vets/7/slots?date=2025-03-10", slotPath("/vets/{vet}/slots", 7, "2025-03-10"))
	require.Equal(t,
		"/appointments/available-slots?veterinarian_id=7&date=2025-03-10",
		slotPath("/appointments/available-slots?veterinarian_id={vet}", 7, "2025-03-10"),
	)
}

func TestParseSlots_DataEnvelope(t *testing.T) {
	got, err := parseSlots([]byte(`{"data":["09:00","09:30"]}`))
	require.NoError(t, err)
	require.Equal(t, []string{"09:00", "09:30"}, got)

	_, err = parseSlots([]byte(`{"message":"nope"}`))
	require.Error(t, err)
}

func TestAppointments_CreateSendsUTCAndParsesBackendTimes(t *testing.T) {
	var got appointments.CreateInput
	fb := newFakeBackend(t, map[string]http.HandlerFunc{
		"/api/appointments": func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				_ = json.NewDecoder(r.Body).Decode(&got)
				writeJSON(w, http.StatusCreated, map[string]any{"data": map[string]any{
					"id": 99, "pet_id": 5, "veterinarian_id": 42,
					"start_time": "2025-03-10 12:00:00", "end_time": "2025-03-10 12:30:00",
					"status": "pending", "notes": nil,
				}})
			default:
				writeJSON(w, http.StatusOK, []map[string]any{
					{"id": 1, "start_time": "2025-03-10T12:00:00.000000Z", "status": "confirmed"},
				})
			}
		},
	})
	c, sess := newSessionClient(t, fb.URL)
	ctx := context.Background()
	require.NoError(t, sess.SetToken(ctx, "1|secret"))

	in := appointments.CreateInput{
		PetID:          5,
		VeterinarianID: 42,
		StartTime:      "2025-03-10T12:00:00Z",
		EndTime:        "2025-03-10T12:30:00Z",
		Status:         appointments.StatusPending,
	}
	a, err := c.CreateAppointment(ctx, in)
	require.NoError(t, err)
	require.Equal(t, in, got)
	require.Equal(t, int64(99), a.ID)
	require.True(t, a.StartTime.Equal(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)))
	require.Equal(t, "", a.Notes)

	list, err := c.ListAllAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, appointments.StatusConfirmed, list[0].Status)
}

func TestMedicalRecords_FillsEmptyCollections(t *testing.T) {
	fb := newFakeBackend(t, map[string]http.HandlerFunc{
		"/api/medical-records": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": 1, "pet_id": 5, "diagnosis": "otitis", "created_at": "2025-01-02T10:00:00.000000Z",
					"vaccinations": []map[string]any{{"id": 3, "vaccine_name": "Rabies"}}},
			})
		},
	})
	c, sess := newSessionClient(t, fb.URL)
	ctx := context.Background()
	require.NoError(t, sess.SetToken(ctx, "1|secret"))

	list, err := c.ListMedicalRecords(ctx, 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Treatments)
	require.Equal(t, "Rabies", list[0].Vaccinations[0].Name)
}

func TestAvailableSlots_AuthFailuresYieldEmptyList(t *testing.T) {
	unauthorized := func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
	}
	fb := newFakeBackend(t, map[string]http.HandlerFunc{
		"/api/a/7/slots": unauthorized,
		"/api/b/7/slots": unauthorized,
	})
	c, sess := newSessionClient(t, fb.URL, "/a/{vet}/slots", "/b/{vet}/slots")
	ctx := context.Background()

	// sin token no sale ninguna request
	slots, err := c.AvailableSlots(ctx, 7, "2025-03-10")
	require.NoError(t, err)
	require.NotNil(t, slots)
	require.Empty(t, slots)
	require.Zero(t, atomic.LoadInt32(&fb.requests))

	require.NoError(t, sess.SetToken(ctx, "1|secret"))
	slots, err = c.AvailableSlots(ctx, 7, "2025-03-10")
	require.NoError(t, err)
	require.NotNil(t, slots)
	require.Empty(t, slots)

	tok, _ := sess.Token(ctx)
	require.Empty(t, tok, "401 must clear the session")
}
