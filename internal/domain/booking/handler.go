package booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pet-care-dashboard/internal/platform/web"
	"pet-care-dashboard/internal/ports/backend"
)

// Resolver entrega los formularios abiertos de la sesión del request.
type Resolver interface {
	OpenBooking(r *http.Request) (*Controller, error)
	Booking(r *http.Request, id string) (*Controller, error)
	CloseBooking(r *http.Request, id string) error
}

func RegisterRoutes(r chi.Router, res Resolver) {
	r.Route("/bookings", func(br chi.Router) {
		br.Post("/", openHandler(res))

		br.Route("/{formID}", func(fr chi.Router) {
			fr.Get("/", viewHandler(res))
			fr.Post("/clinic", clinicHandler(res))
			fr.Post("/vet", vetHandler(res))
			fr.Post("/date", dateHandler(res))
			fr.Post("/slot", slotHandler(res))
			fr.Post("/pet", petHandler(res))
			fr.Post("/notes", notesHandler(res))
			fr.Post("/submit", submitHandler(res))
			fr.Delete("/notices/{noticeID}", dismissHandler(res))
			fr.Delete("/", closeHandler(res))
		})
	})
}

type selectRequest struct {
	ID int64 `json:"id"`
}

type dateRequest struct {
	Date string `json:"date"` // YYYY-MM-DD en la zona del dashboard
}

type slotRequest struct {
	Slot string `json:"slot"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

// openHandler godoc
// @Summary  Abre un formulario de turno
// @Tags     bookings
// @Produce  json
// @Success  201 {object} View
// @Failure  401 {object} web.ErrorResponse
// @Router   /bookings [post]
func openHandler(res Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := res.OpenBooking(r)
		if err != nil {
			web.WriteError(w, err)
			return
		}
		web.WriteJSON(w, http.StatusCreated, c.View())
	}
}

// viewHandler godoc
// @Summary  Estado actual del formulario
// @Tags     bookings
// @Produce  json
// @Param    formID path string true "Form ID"
// @Success  200 {object} View
// @Failure  404 {object} web.ErrorResponse
// @Router   /bookings/{formID} [get]
func viewHandler(res Resolver) http.HandlerFunc {
	return withForm(res, func(w http.ResponseWriter, r *http.Request, c *Controller) {
		web.WriteJSON(w, http.StatusOK, c.View())
	})
}

// clinicHandler godoc
// @Summary  Elige clínica (limpia vet, fecha y slot)
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    formID path string true "Form ID"
// @Param    body body selectRequest true "Clinic"
// @Success  200 {object} View
// @Router   /bookings/{formID}/clinic [post]
func clinicHandler(res Resolver) http.HandlerFunc {
	return withForm(res, func(w http.ResponseWriter, r *http.Request, c *Controller) {
		var req selectRequest
		if err := web.DecodeJSON(r, &req); err != nil {
			web.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		respond(w, c, c.SelectClinic(r.Context(), req.ID))
	})
}

// vetHandler godoc
// @Summary  Elige veterinario (limpia fecha y slot)
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    formID path string true "Form ID"
// @Param    body body selectRequest true "Veterinarian"
// @Success  200 {object} View
// @Router   /bookings/{formID}/vet [post]
func vetHandler(res Resolver) http.HandlerFunc {
	return withForm(res, func(w http.ResponseWriter, r *http.Request, c *Controller) {
		var req selectRequest
		if err := web.DecodeJSON(r, &req); err != nil {
			web.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		respond(w, c, c.SelectVet(req.ID))
	})
}

// dateHandler godoc
// @Summary  Elige fecha y trae los slots disponibles
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    formID path string true "Form ID"
// @Param    body body dateRequest true "Date"
// @Success  200 {object} View
// @Failure  422 {object} View
// @Router   /bookings/{formID}/date [post]
func dateHandler(res Resolver) http.HandlerFunc {
	return withForm(res, func(w http.ResponseWriter, r *http.Request, c *Controller) {
		var req dateRequest
		if err := web.DecodeJSON(r, &req); err != nil {
			web.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		respond(w, c, c.SelectDate(r.Context(), strings.TrimSpace(req.Date)))
	})
}

// slotHandler godoc
// @Summary  Elige un slot de la lista disponible
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    formID path string true "Form ID"
// @Param    body body slotRequest true "Slot"
// @Success  200 {object} View
// @Router   /bookings/{formID}/slot [post]
func slotHandler(res Resolver) http.HandlerFunc {
	return withForm(res, func(w http.ResponseWriter, r *http.Request, c *Controller) {
		var req slotRequest
		if err := web.DecodeJSON(r, &req); err != nil {
			web.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		respond(w, c, c.SelectSlot(req.Slot))
	})
}

// petHandler godoc
// @Summary  Elige la mascota
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    formID path string true "Form ID"
// @Param    body body selectRequest true "Pet"
// @Success  200 {object} View
// @Router   /bookings/{formID}/pet [post]
func petHandler(res Resolver) http.HandlerFunc {
	return withForm(res, func(w http.ResponseWriter, r *http.Request, c *Controller) {
		var req selectRequest
		if err := web.DecodeJSON(r, &req); err != nil {
			web.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		respond(w, c, c.SelectPet(req.ID))
	})
}

// notesHandler godoc
// @Summary  Actualiza las notas del turno
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    formID path string true "Form ID"
// @Param    body body notesRequest true "Notes"
// @Success  200 {object} View
// @Router   /bookings/{formID}/notes [post]
func notesHandler(res Resolver) http.HandlerFunc {
	return withForm(res, func(w http.ResponseWriter, r *http.Request, c *Controller) {
		var req notesRequest
		if err := web.DecodeJSON(r, &req); err != nil {
			web.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		respond(w, c, c.SetNotes(req.Notes))
	})
}

// submitHandler godoc
// @Summary  Envía el turno
// @Description Valida campos y horario de atención antes de llamar al backend.
// @Tags     bookings
// @Produce  json
// @Param    formID path string true "Form ID"
// @Success  201 {object} View
// @Failure  422 {object} View
// @Router   /bookings/{formID}/submit [post]
func submitHandler(res Resolver) http.HandlerFunc {
	return withForm(res, func(w http.ResponseWriter, r *http.Request, c *Controller) {
		if _, err := c.Submit(r.Context()); err != nil {
			respond(w, c, err)
			return
		}
		web.WriteJSON(w, http.StatusCreated, c.View())
	})
}

// dismissHandler godoc
// @Summary  Descarta un aviso del formulario
// @Tags     bookings
// @Produce  json
// @Param    formID path string true "Form ID"
// @Param    noticeID path string true "Notice ID"
// @Success  200 {object} View
// @Router   /bookings/{formID}/notices/{noticeID} [delete]
func dismissHandler(res Resolver) http.HandlerFunc {
	return withForm(res, func(w http.ResponseWriter, r *http.Request, c *Controller) {
		c.DismissNotice(chi.URLParam(r, "noticeID"))
		web.WriteJSON(w, http.StatusOK, c.View())
	})
}

// closeHandler godoc
// @Summary  Cierra el formulario sin enviar
// @Tags     bookings
// @Param    formID path string true "Form ID"
// @Success  204
// @Router   /bookings/{formID} [delete]
func closeHandler(res Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := res.CloseBooking(r, chi.URLParam(r, "formID")); err != nil {
			web.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func withForm(res Resolver, next func(http.ResponseWriter, *http.Request, *Controller)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := res.Booking(r, chi.URLParam(r, "formID"))
		if err != nil {
			web.WriteError(w, err)
			return
		}
		next(w, r, c)
	}
}

// respond devuelve siempre la vista; el status refleja el resultado de la acción.
// Los errores de sesión van sin vista para que el cliente mande a login.
func respond(w http.ResponseWriter, c *Controller, err error) {
	if err == nil {
		web.WriteJSON(w, http.StatusOK, c.View())
		return
	}
	if backend.Classify(err) == backend.KindAuth {
		web.WriteError(w, err)
		return
	}
	web.WriteJSON(w, statusFor(err), c.View())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrClosed), errors.Is(err, ErrBusy):
		return http.StatusConflict
	case errors.Is(err, ErrUnknownClinic), errors.Is(err, ErrUnknownVet),
		errors.Is(err, ErrUnknownPet), errors.Is(err, ErrUnknownSlot):
		return http.StatusBadRequest
	case errors.Is(err, ErrVetRequired), errors.Is(err, ErrDateRequired),
		errors.Is(err, ErrInvalidDate), errors.Is(err, ErrIncomplete),
		errors.Is(err, ErrOutsideBusinessHours):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrFetchFailed):
		return http.StatusBadGateway
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
