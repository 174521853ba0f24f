// Package backend define el conjunto cerrado de errores que devuelve el gateway
// hacia el backend veterinario. Los controladores clasifican con Classify en vez de
// inspeccionar status HTTP por su cuenta.
package backend

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Kind string

const (
	KindAuth       Kind = "auth"
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindForbidden  Kind = "forbidden"
	KindServer     Kind = "server"
	KindNetwork    Kind = "network"
	KindUnknown    Kind = "unknown"
)

// AuthError: token ausente, inválido o expirado. El caller debe mandar a login.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "unauthenticated"
	}
	return e.Message
}

// ValidationError: 422 con mensajes por campo.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// Lines devuelve una línea "campo: mensaje" por cada par, ordenado por campo.
func (e *ValidationError) Lines() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, msg := range e.Fields[k] {
			out = append(out, fmt.Sprintf("%s: %s", k, msg))
		}
	}
	return out
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return "not found"
	}
	return e.Message
}

type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	if e.Message == "" {
		return "forbidden"
	}
	return e.Message
}

// ServerError: 5xx o cualquier respuesta no reconocida.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("server error: status=%d: %s", e.StatusCode, e.Message)
}

// NetworkError: no hubo respuesta.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

func Classify(err error) Kind {
	if err == nil {
		return ""
	}
	var (
		ae *AuthError
		ve *ValidationError
		nf *NotFoundError
		fe *ForbiddenError
		se *ServerError
		ne *NetworkError
	)
	switch {
	case errors.As(err, &ae):
		return KindAuth
	case errors.As(err, &ve):
		return KindValidation
	case errors.As(err, &nf):
		return KindNotFound
	case errors.As(err, &fe):
		return KindForbidden
	case errors.As(err, &se):
		return KindServer
	case errors.As(err, &ne):
		return KindNetwork
	default:
		return KindUnknown
	}
}

// UserMessage es el texto que se le muestra al usuario para cada tipo.
func UserMessage(err error) string {
	switch Classify(err) {
	case "":
		return ""
	case KindAuth:
		return "Your session has expired, please log in again."
	case KindValidation:
		var ve *ValidationError
		errors.As(err, &ve)
		if lines := ve.Lines(); len(lines) > 0 {
			return strings.Join(lines, "\n")
		}
		return ve.Error()
	case KindNotFound:
		return "The requested item was not found."
	case KindForbidden:
		return "You do not have permission to access this item."
	case KindNetwork:
		return "Could not reach the server, please check your connection."
	default:
		return "Something went wrong, please try again."
	}
}
