package calendar

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-care-dashboard/internal/domain/pets"
	"pet-care-dashboard/internal/platform/web"
	"pet-care-dashboard/internal/ports/backend"
)

// Source es lo que el calendario necesita de la sesión: el loader ligado a ella,
// las mascotas del dueño y la versión de cambios.
type Source struct {
	Loader  *Loader
	Pets    []pets.Pet
	Version uint64
}

type Resolver interface {
	Calendar(r *http.Request) (Source, error)
}

func RegisterRoutes(r chi.Router, res Resolver, now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	r.Get("/calendar", calendarHandler(res, now))
}

type failureResponse struct {
	PetID   int64        `json:"pet_id"`
	PetName string       `json:"pet_name"`
	Kind    backend.Kind `json:"kind"`
	Message string       `json:"message"`
}

type calendarResponse struct {
	Calendar
	Version uint64            `json:"version"`
	Failed  []failureResponse `json:"failed"`
}

// calendarHandler godoc
// @Summary  Calendario y timeline de turnos de todas las mascotas
// @Description Una mascota cuyo fetch falla queda en "failed"; las demás se muestran igual.
// @Tags     calendar
// @Produce  json
// @Success  200 {object} calendarResponse
// @Failure  401 {object} web.ErrorResponse
// @Router   /calendar [get]
func calendarHandler(res Resolver, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		src, err := res.Calendar(r)
		if err != nil {
			web.WriteError(w, err)
			return
		}

		result := src.Loader.Load(r.Context(), src.Pets)

		// si todas fallaron por sesión vencida, mandamos a login
		if len(result.Failed) > 0 && len(result.Failed) == len(src.Pets) {
			if err := result.Failed[0].Err; backend.Classify(err) == backend.KindAuth {
				web.WriteError(w, err)
				return
			}
		}

		resp := calendarResponse{
			Version:  src.Version,
			Calendar: Build(result.Appointments, now()),
			Failed:   make([]failureResponse, 0, len(result.Failed)),
		}
		for _, f := range result.Failed {
			resp.Failed = append(resp.Failed, failureResponse{
				PetID:   f.PetID,
				PetName: f.PetName,
				Kind:    backend.Classify(f.Err),
				Message: backend.UserMessage(f.Err),
			})
		}
		web.WriteJSON(w, http.StatusOK, resp)
	}
}
