package clinics

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-care-dashboard/internal/platform/web"
)

// Source son las lecturas de clínicas/vets ligadas a la sesión.
type Source interface {
	ListClinics(ctx context.Context) ([]Clinic, error)
	ListVets(ctx context.Context) ([]Veterinarian, error)
}

type Resolver interface {
	Clinics(r *http.Request) (Source, error)
}

func RegisterRoutes(r chi.Router, res Resolver, loc *Locator) {
	r.Route("/clinics", func(cr chi.Router) {
		cr.Get("/", listClinicsHandler(res))
		cr.Get("/{clinicID}/vets", listVetsHandler(res))
		cr.Get("/{clinicID}/location", locationHandler(res, loc))
	})
}

type locationResponse struct {
	Clinic   Clinic   `json:"clinic"`
	Address  string   `json:"address"`
	Location Location `json:"location"`
}

// listClinicsHandler godoc
// @Summary  Lista de clínicas
// @Tags     clinics
// @Produce  json
// @Success  200 {array} Clinic
// @Failure  401 {object} web.ErrorResponse
// @Router   /clinics [get]
func listClinicsHandler(res Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		src, err := res.Clinics(r)
		if err != nil {
			web.WriteError(w, err)
			return
		}
		list, err := src.ListClinics(r.Context())
		if err != nil {
			web.WriteError(w, err)
			return
		}
		if list == nil {
			list = []Clinic{}
		}
		web.WriteJSON(w, http.StatusOK, list)
	}
}

// listVetsHandler godoc
// @Summary  Veterinarios de una clínica
// @Tags     clinics
// @Produce  json
// @Param    clinicID path int true "Clinic ID"
// @Success  200 {array} Veterinarian
// @Router   /clinics/{clinicID}/vets [get]
func listVetsHandler(res Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinicID, err := web.PathInt64(r, "clinicID")
		if err != nil {
			web.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		src, err := res.Clinics(r)
		if err != nil {
			web.WriteError(w, err)
			return
		}
		vets, err := src.ListVets(r.Context())
		if err != nil {
			web.WriteError(w, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, VetsAtClinic(vets, clinicID))
	}
}

// locationHandler godoc
// @Summary  Ubicación geocodificada de una clínica
// @Description Nunca falla por el geocoder: sin resultado devuelve available=false.
// @Tags     clinics
// @Produce  json
// @Param    clinicID path int true "Clinic ID"
// @Success  200 {object} locationResponse
// @Failure  404 {object} web.ErrorResponse
// @Router   /clinics/{clinicID}/location [get]
func locationHandler(res Resolver, loc *Locator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinicID, err := web.PathInt64(r, "clinicID")
		if err != nil {
			web.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		src, err := res.Clinics(r)
		if err != nil {
			web.WriteError(w, err)
			return
		}
		list, err := src.ListClinics(r.Context())
		if err != nil {
			web.WriteError(w, err)
			return
		}

		for _, c := range list {
			if c.ID != clinicID {
				continue
			}
			web.WriteJSON(w, http.StatusOK, locationResponse{
				Clinic:   c,
				Address:  c.FullAddress(),
				Location: loc.Locate(r.Context(), c),
			})
			return
		}
		web.Error(w, http.StatusNotFound, "clinic not found")
	}
}
