package session

import "github.com/go-playground/validator/v10"

// Validate checks the whole aggregate. Field formats only, no required
// fields: an untouched Session is valid.
func (s *Session) Validate(validate *validator.Validate) error {
	return validate.Struct(s)
}
