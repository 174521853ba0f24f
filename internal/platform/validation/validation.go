// Package validation expone la instancia de validator compartida por los formularios.
package validation

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct valida s según sus tags `validate`; devuelve validator.ValidationErrors.
func Struct(s any) error {
	return validate.Struct(s)
}
