package appointments

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-care-dashboard/internal/platform/web"
	"pet-care-dashboard/internal/ports/backend"
)

// Resolver entrega las vistas de detalle abiertas de la sesión del request.
type Resolver interface {
	OpenDetail(r *http.Request, id int64) (*Detail, error)
	Detail(r *http.Request, id int64) (*Detail, error)
	CloseDetail(r *http.Request, id int64) error
}

func RegisterRoutes(r chi.Router, res Resolver) {
	r.Route("/appointments/{appointmentID}", func(ar chi.Router) {
		ar.Get("/", openHandler(res))
		ar.Delete("/", closeHandler(res))

		// Notas: editar -> guardar / descartar
		ar.Post("/notes/edit", beginEditHandler(res))
		ar.Delete("/notes/edit", cancelEditHandler(res))
		ar.Put("/notes", saveNotesHandler(res))

		// Cancelación en dos pasos
		ar.Post("/cancel", requestCancelHandler(res))
		ar.Post("/cancel/confirm", confirmCancelHandler(res))
		ar.Delete("/cancel", abortCancelHandler(res))

		ar.Delete("/notices/{noticeID}", dismissHandler(res))
	})
}

type notesRequest struct {
	Notes string `json:"notes"`
}

// openHandler godoc
// @Summary  Abre (o recarga) el detalle de un turno
// @Tags     appointments
// @Produce  json
// @Param    appointmentID path int true "Appointment ID"
// @Success  200 {object} DetailView
// @Failure  401 {object} web.ErrorResponse
// @Router   /appointments/{appointmentID} [get]
func openHandler(res Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := web.PathInt64(r, "appointmentID")
		if err != nil {
			web.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		d, err := res.OpenDetail(r, id)
		if d == nil || backend.Classify(err) == backend.KindAuth {
			web.WriteError(w, err)
			return
		}
		respond(w, d, err)
	}
}

// closeHandler godoc
// @Summary  Cierra la vista de detalle
// @Tags     appointments
// @Param    appointmentID path int true "Appointment ID"
// @Success  204
// @Router   /appointments/{appointmentID} [delete]
func closeHandler(res Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := web.PathInt64(r, "appointmentID")
		if err != nil {
			web.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := res.CloseDetail(r, id); err != nil {
			web.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// beginEditHandler godoc
// @Summary  Empieza a editar las notas
// @Tags     appointments
// @Produce  json
// @Param    appointmentID path int true "Appointment ID"
// @Success  200 {object} DetailView
// @Router   /appointments/{appointmentID}/notes/edit [post]
func beginEditHandler(res Resolver) http.HandlerFunc {
	return withDetail(res, func(w http.ResponseWriter, r *http.Request, d *Detail) {
		respond(w, d, d.BeginEdit())
	})
}

// cancelEditHandler godoc
// @Summary  Descarta el borrador de notas
// @Tags     appointments
// @Produce  json
// @Param    appointmentID path int true "Appointment ID"
// @Success  200 {object} DetailView
// @Router   /appointments/{appointmentID}/notes/edit [delete]
func cancelEditHandler(res Resolver) http.HandlerFunc {
	return withDetail(res, func(w http.ResponseWriter, r *http.Request, d *Detail) {
		d.CancelEdit()
		respond(w, d, nil)
	})
}

// saveNotesHandler godoc
// @Summary  Guarda las notas editadas
// @Tags     appointments
// @Accept   json
// @Produce  json
// @Param    appointmentID path int true "Appointment ID"
// @Param    body body notesRequest true "Notes"
// @Success  200 {object} DetailView
// @Router   /appointments/{appointmentID}/notes [put]
func saveNotesHandler(res Resolver) http.HandlerFunc {
	return withDetail(res, func(w http.ResponseWriter, r *http.Request, d *Detail) {
		var req notesRequest
		if err := web.DecodeJSON(r, &req); err != nil {
			web.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := d.SetNotesDraft(req.Notes); err != nil {
			respond(w, d, err)
			return
		}
		respond(w, d, d.SaveNotes(r.Context()))
	})
}

// requestCancelHandler godoc
// @Summary  Pide confirmación para cancelar
// @Tags     appointments
// @Produce  json
// @Param    appointmentID path int true "Appointment ID"
// @Success  200 {object} DetailView
// @Failure  409 {object} DetailView
// @Router   /appointments/{appointmentID}/cancel [post]
func requestCancelHandler(res Resolver) http.HandlerFunc {
	return withDetail(res, func(w http.ResponseWriter, r *http.Request, d *Detail) {
		respond(w, d, d.RequestCancel())
	})
}

// confirmCancelHandler godoc
// @Summary  Confirma la cancelación
// @Tags     appointments
// @Produce  json
// @Param    appointmentID path int true "Appointment ID"
// @Success  200 {object} DetailView
// @Failure  409 {object} DetailView
// @Router   /appointments/{appointmentID}/cancel/confirm [post]
func confirmCancelHandler(res Resolver) http.HandlerFunc {
	return withDetail(res, func(w http.ResponseWriter, r *http.Request, d *Detail) {
		respond(w, d, d.ConfirmCancel(r.Context()))
	})
}

// abortCancelHandler godoc
// @Summary  Vuelve atrás del paso de confirmación
// @Tags     appointments
// @Produce  json
// @Param    appointmentID path int true "Appointment ID"
// @Success  200 {object} DetailView
// @Router   /appointments/{appointmentID}/cancel [delete]
func abortCancelHandler(res Resolver) http.HandlerFunc {
	return withDetail(res, func(w http.ResponseWriter, r *http.Request, d *Detail) {
		d.AbortCancel()
		respond(w, d, nil)
	})
}

func dismissHandler(res Resolver) http.HandlerFunc {
	return withDetail(res, func(w http.ResponseWriter, r *http.Request, d *Detail) {
		d.DismissNotice(chi.URLParam(r, "noticeID"))
		respond(w, d, nil)
	})
}

func withDetail(res Resolver, next func(http.ResponseWriter, *http.Request, *Detail)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := web.PathInt64(r, "appointmentID")
		if err != nil {
			web.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		d, err := res.Detail(r, id)
		if err != nil {
			web.WriteError(w, err)
			return
		}
		next(w, r, d)
	}
}

func respond(w http.ResponseWriter, d *Detail, err error) {
	if err == nil {
		web.WriteJSON(w, http.StatusOK, d.View())
		return
	}
	if backend.Classify(err) == backend.KindAuth {
		web.WriteError(w, err)
		return
	}
	web.WriteJSON(w, statusFor(err), d.View())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotCancellable), errors.Is(err, ErrConfirmationRequired),
		errors.Is(err, ErrNotEditing), errors.Is(err, ErrNotReady), errors.Is(err, ErrClosed):
		return http.StatusConflict
	}
	switch backend.Classify(err) {
	case backend.KindValidation:
		return http.StatusUnprocessableEntity
	case backend.KindNotFound:
		return http.StatusNotFound
	case backend.KindForbidden:
		return http.StatusForbidden
	case backend.KindNetwork, backend.KindServer:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
