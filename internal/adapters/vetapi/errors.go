package vetapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"pet-care-dashboard/internal/ports/backend"
)

// errorBody es la forma de error de Laravel: {"message": "...", "errors": {"campo": ["..."]}}.
type errorBody struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Errors  map[string][]string `json:"errors"`
}

func errorFromResponse(status int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	msg := strings.TrimSpace(eb.Message)
	if msg == "" {
		msg = strings.TrimSpace(eb.Error)
	}

	switch status {
	case http.StatusUnauthorized:
		return &backend.AuthError{Message: msg}
	case http.StatusForbidden:
		return &backend.ForbiddenError{Message: msg}
	case http.StatusNotFound:
		return &backend.NotFoundError{Message: msg}
	case http.StatusUnprocessableEntity:
		fields := eb.Errors
		if fields == nil {
			fields = map[string][]string{}
		}
		return &backend.ValidationError{Message: msg, Fields: fields}
	default:
		if msg == "" && len(body) > 0 && len(body) < 512 && !json.Valid(body) {
			msg = strings.TrimSpace(string(body))
		}
		return &backend.ServerError{StatusCode: status, Message: msg}
	}
}
