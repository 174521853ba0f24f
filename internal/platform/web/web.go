// Package web tiene los helpers HTTP compartidos por los handlers de cada módulo.
package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"pet-care-dashboard/internal/ports/backend"
)

const maxBody = 4 << 20

var ErrBadID = errors.New("invalid id")

type ErrorResponse struct {
	Error  string              `json:"error"`
	Kind   backend.Kind        `json:"kind,omitempty"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error escribe un error con mensaje propio (400 de validación local, 409, etc).
func Error(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorResponse{Error: msg})
}

// WriteError traduce el conjunto cerrado de errores del backend a HTTP.
// Cualquier otro error es 500.
func WriteError(w http.ResponseWriter, err error) {
	kind := backend.Classify(err)
	resp := ErrorResponse{Error: backend.UserMessage(err), Kind: kind}

	status := http.StatusInternalServerError
	switch kind {
	case backend.KindAuth:
		status = http.StatusUnauthorized
	case backend.KindValidation:
		status = http.StatusUnprocessableEntity
		var ve *backend.ValidationError
		if errors.As(err, &ve) {
			resp.Errors = ve.Fields
		}
	case backend.KindNotFound:
		status = http.StatusNotFound
	case backend.KindForbidden:
		status = http.StatusForbidden
	case backend.KindNetwork, backend.KindServer:
		status = http.StatusBadGateway
	default:
		resp.Error = "internal error"
	}
	WriteJSON(w, status, resp)
}

// DecodeJSON lee un body JSON (limitado). Un body vacío deja dst sin tocar.
func DecodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func PathInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrBadID
	}
	return id, nil
}

func QueryInt(r *http.Request, name string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
