package service

import (
	"strings"

	"github.com/sangkips/retail-api/pkg/apperror"
)

// validator collects field errors so a request reports all of them at once
type validator struct {
	errs []apperror.FieldError
}

func (v *validator) check(ok bool, field, message string) {
	if !ok {
		v.errs = append(v.errs, apperror.FieldError{Field: field, Message: message})
	}
}

func (v *validator) required(value, field, message string) {
	v.check(strings.TrimSpace(value) != "", field, message)
}

func (v *validator) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperror.NewValidationError(v.errs)
}
