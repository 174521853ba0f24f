package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-care-dashboard/internal/ports/backend"
)

func TestWriteError_StatusPerKind(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{&backend.AuthError{}, http.StatusUnauthorized},
		{&backend.ValidationError{Fields: map[string][]string{"name": {"required"}}}, http.StatusUnprocessableEntity},
		{&backend.NotFoundError{}, http.StatusNotFound},
		{&backend.ForbiddenError{}, http.StatusForbidden},
		{&backend.ServerError{StatusCode: 500}, http.StatusBadGateway},
		{&backend.NetworkError{Err: errors.New("x")}, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		WriteError(rec, c.err)
		if rec.Code != c.status {
			t.Fatalf("%T: got %d want %d", c.err, rec.Code, c.status)
		}
	}

	rec := httptest.NewRecorder()
	WriteError(rec, &backend.ValidationError{Fields: map[string][]string{"name": {"required"}}})
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Kind != backend.KindValidation || body.Errors["name"][0] != "required" {
		t.Fatalf("unexpected body %#v", body)
	}
}
