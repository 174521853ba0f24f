package records

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-care-dashboard/internal/platform/web"
	"pet-care-dashboard/internal/ports/backend"
)

type Resolver interface {
	Records(r *http.Request) (*Viewer, error)
}

func RegisterRoutes(r chi.Router, res Resolver) {
	r.Get("/pets/{petID}/records", showHandler(res))
	r.Delete("/records/notices/{noticeID}", dismissHandler(res))
}

// showHandler godoc
// @Summary  Historial médico de una mascota, paginado
// @Description Cambiar de mascota recarga; la misma mascota solo cambia de página salvo refresh=true.
// @Tags     records
// @Produce  json
// @Param    petID   path  int  true  "Pet ID"
// @Param    page    query int  false "Página (base 1)"
// @Param    refresh query bool false "Forzar recarga"
// @Success  200 {object} View
// @Failure  401 {object} web.ErrorResponse
// @Failure  409 {object} View
// @Router   /pets/{petID}/records [get]
func showHandler(res Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, err := web.PathInt64(r, "petID")
		if err != nil {
			web.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		v, err := res.Records(r)
		if err != nil {
			web.WriteError(w, err)
			return
		}

		cur := v.View()
		if cur.PetID != petID || cur.ErrorKind != "" || r.URL.Query().Get("refresh") == "true" {
			if err := v.Show(r.Context(), petID); err != nil {
				if backend.Classify(err) == backend.KindAuth {
					web.WriteError(w, err)
					return
				}
				web.WriteJSON(w, http.StatusBadGateway, v.View())
				return
			}
			// otra request cambió de mascota mientras se cargaba esta
			if cur := v.View(); cur.PetID != petID {
				web.WriteJSON(w, http.StatusConflict, cur)
				return
			}
		}

		if page := web.QueryInt(r, "page", 0); page > 0 {
			if err := v.Page(page); errors.Is(err, ErrPageOutOfRange) {
				web.WriteJSON(w, http.StatusBadRequest, v.View())
				return
			}
		}
		web.WriteJSON(w, http.StatusOK, v.View())
	}
}

func dismissHandler(res Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := res.Records(r)
		if err != nil {
			web.WriteError(w, err)
			return
		}
		v.DismissNotice(chi.URLParam(r, "noticeID"))
		web.WriteJSON(w, http.StatusOK, v.View())
	}
}
