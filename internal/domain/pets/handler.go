package pets

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-care-dashboard/internal/platform/web"
)

// Resolver da el servicio ligado a la sesión y el id del dueño logueado.
type Resolver interface {
	Pets(r *http.Request) (*Service, int64, error)
}

// Rutas planas: /pets/{petID}/records lo registra el módulo records.
func RegisterRoutes(r chi.Router, res Resolver, now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	r.Get("/pets", listPetsHandler(res, now))
	r.Post("/pets", createPetHandler(res, now))
	r.Post("/pets/photo", attachPhotoHandler())
	r.Get("/pets/{petID}", getPetHandler(res, now))
	r.Get("/pets/{petID}/edit", editDraftHandler(res))
	r.Put("/pets/{petID}", updatePetHandler(res, now))
	r.Delete("/pets/{petID}", deletePetHandler(res))
}

type petResponse struct {
	Pet
	AgeYears int `json:"age_years"`
}

type photoResponse struct {
	PendingPhoto string `json:"pending_photo"`
}

func toResponse(p Pet, now time.Time) petResponse {
	return petResponse{Pet: p, AgeYears: p.AgeYears(now)}
}

// listPetsHandler godoc
// @Summary  Mascotas del usuario logueado
// @Tags     pets
// @Produce  json
// @Success  200 {array} petResponse
// @Failure  401 {object} web.ErrorResponse
// @Router   /pets [get]
func listPetsHandler(res Resolver, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, owner, err := res.Pets(r)
		if err != nil {
			web.WriteError(w, err)
			return
		}
		list, err := svc.ListByOwner(r.Context(), owner)
		if err != nil {
			writeErr(w, err)
			return
		}
		t := now()
		out := make([]petResponse, 0, len(list))
		for _, p := range list {
			out = append(out, toResponse(p, t))
		}
		web.WriteJSON(w, http.StatusOK, out)
	}
}

// createPetHandler godoc
// @Summary  Alta de mascota
// @Tags     pets
// @Accept   json
// @Produce  json
// @Param    body body Draft true "Pet"
// @Success  201 {object} petResponse
// @Failure  422 {object} web.ErrorResponse
// @Router   /pets [post]
func createPetHandler(res Resolver, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, owner, err := res.Pets(r)
		if err != nil {
			web.WriteError(w, err)
			return
		}
		var d Draft
		if err := web.DecodeJSON(r, &d); err != nil {
			web.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		p, err := svc.Create(r.Context(), owner, d)
		if err != nil {
			writeErr(w, err)
			return
		}
		web.WriteJSON(w, http.StatusCreated, toResponse(p, now()))
	}
}

// attachPhotoHandler godoc
// @Summary  Valida una foto y la devuelve como data URI para el borrador
// @Tags     pets
// @Accept   octet-stream
// @Produce  json
// @Success  200 {object} photoResponse
// @Failure  413 {object} web.ErrorResponse
// @Failure  415 {object} web.ErrorResponse
// @Router   /pets/photo [post]
func attachPhotoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(io.LimitReader(r.Body, MaxPhotoBytes+1))
		if err != nil {
			web.Error(w, http.StatusBadRequest, "could not read photo")
			return
		}
		var d Draft
		if err := d.AttachPhoto(raw); err != nil {
			status := http.StatusUnsupportedMediaType
			if errors.Is(err, ErrPhotoTooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			web.Error(w, status, err.Error())
			return
		}
		web.WriteJSON(w, http.StatusOK, photoResponse{PendingPhoto: d.PendingPhoto})
	}
}

// getPetHandler godoc
// @Summary  Perfil de mascota
// @Tags     pets
// @Produce  json
// @Param    petID path int true "Pet ID"
// @Success  200 {object} petResponse
// @Failure  404 {object} web.ErrorResponse
// @Router   /pets/{petID} [get]
func getPetHandler(res Resolver, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := web.PathInt64(r, "petID")
		if err != nil {
			web.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		svc, _, err := res.Pets(r)
		if err != nil {
			web.WriteError(w, err)
			return
		}
		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toResponse(p, now()))
	}
}

// editDraftHandler godoc
// @Summary  Borrador de edición repoblado desde el servidor
// @Tags     pets
// @Produce  json
// @Param    petID path int true "Pet ID"
// @Success  200 {object} Draft
// @Router   /pets/{petID}/edit [get]
func editDraftHandler(res Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := web.PathInt64(r, "petID")
		if err != nil {
			web.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		svc, _, err := res.Pets(r)
		if err != nil {
			web.WriteError(w, err)
			return
		}
		d, err := svc.EditDraft(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, d)
	}
}

// updatePetHandler godoc
// @Summary  Actualiza la mascota (reemplazo completo del formulario)
// @Tags     pets
// @Accept   json
// @Produce  json
// @Param    petID path int true "Pet ID"
// @Param    body body Draft true "Pet"
// @Success  200 {object} petResponse
// @Failure  422 {object} web.ErrorResponse
// @Router   /pets/{petID} [put]
func updatePetHandler(res Resolver, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := web.PathInt64(r, "petID")
		if err != nil {
			web.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		svc, owner, err := res.Pets(r)
		if err != nil {
			web.WriteError(w, err)
			return
		}
		var d Draft
		if err := web.DecodeJSON(r, &d); err != nil {
			web.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		p, err := svc.Update(r.Context(), id, owner, d)
		if err != nil {
			writeErr(w, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toResponse(p, now()))
	}
}

// deletePetHandler godoc
// @Summary  Borra la mascota (requiere confirm=true)
// @Tags     pets
// @Param    petID   path  int  true "Pet ID"
// @Param    confirm query bool true "Confirmación explícita"
// @Success  204
// @Failure  409 {object} web.ErrorResponse
// @Router   /pets/{petID} [delete]
func deletePetHandler(res Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := web.PathInt64(r, "petID")
		if err != nil {
			web.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		svc, _, err := res.Pets(r)
		if err != nil {
			web.WriteError(w, err)
			return
		}
		confirmed := r.URL.Query().Get("confirm") == "true"
		if err := svc.Delete(r.Context(), id, confirmed); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		web.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrConfirmationRequired):
		web.Error(w, http.StatusConflict, err.Error())
	default:
		web.WriteError(w, err)
	}
}
