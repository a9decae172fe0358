// Cartolina - Postcard Exchange API
// Copyright 2026 M. Wielgat (mwielgat)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwielgat/cartolina

// Package validation provides struct validation using go-playground/validator
// v10 through a thread-safe singleton instance with domain-specific rules.
//
// Custom validators:
//   - username: lowercase letters, digits, underscore and dot, 3-32 chars
//
// Example:
//
//	type RegisterRequest struct {
//	    Username string `validate:"required,username"`
//	    Email    string `validate:"required,email"`
//	    Country  string `validate:"required,len=2,alpha"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondError(w, http.StatusBadRequest, verr.Error())
//	}
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// usernamePattern matches the store-enforced username constraint.
var usernamePattern = regexp.MustCompile(`^[a-z0-9_.]{3,32}$`)

// FieldError is a single field validation failure.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// RequestValidationError is a collection of field validation failures.
type RequestValidationError struct {
	fields []FieldError
}

// Fields returns the names of all failing fields.
func (ve *RequestValidationError) Fields() []string {
	names := make([]string, len(ve.fields))
	for i, fe := range ve.fields {
		names[i] = fe.Field
	}
	return names
}

// Error joins all field messages into one human-readable line.
func (ve *RequestValidationError) Error() string {
	if len(ve.fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.fields))
	for i, fe := range ve.fields {
		messages[i] = fe.Message
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Custom rule registration never fails for a non-empty tag, but
		// a panic here at init is preferable to silently skipping it.
		if err := validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	})
	return validate
}

// ValidateStruct validates a struct. Returns nil on success or a
// *RequestValidationError describing every failing field.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{fields: []FieldError{
			{Field: "unknown", Tag: "unknown", Message: err.Error()},
		}}
	}

	fields := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		fields[i] = FieldError{
			Field:   fieldPath(fe),
			Tag:     fe.Tag(),
			Message: translateError(fe),
		}
	}
	return &RequestValidationError{fields: fields}
}

// fieldPath renders the field as the API exposes it: lowercase with the
// top-level struct name stripped, e.g. "address.recipient".
func fieldPath(fe validator.FieldError) string {
	ns := strings.ToLower(fe.Namespace())
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func translateError(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "username":
		return fmt.Sprintf("%s must be 3-32 lowercase letters, digits, underscores or dots", field)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "alpha":
		return fmt.Sprintf("%s must contain only letters", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
