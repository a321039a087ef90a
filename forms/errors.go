package forms

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// TextCodeInvalid tags rich errors produced by rejected submissions.
const TextCodeInvalid = "FORM_INVALID"

// FieldErrors maps a submission field name to its error messages.
type FieldErrors map[string][]string

// Add appends a message for the field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Has reports whether the field has at least one error.
func (f FieldErrors) Has(field string) bool {
	return len(f[field]) > 0
}

// Fields returns the names of the failing fields in sorted order.
func (f FieldErrors) Fields() []string {
	out := make([]string, 0, len(f))
	for field := range f {
		out = append(out, field)
	}
	sort.Strings(out)
	return out
}

// Clone returns a detached copy.
func (f FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(f))
	for field, messages := range f {
		out[field] = append([]string(nil), messages...)
	}
	return out
}

// ValidationError rejects a whole submission and lists what failed per field.
type ValidationError struct {
	Form   string
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], " ")))
	}
	return fmt.Sprintf("go-phonebook: invalid %s submission: %s", e.Form, strings.Join(parts, "; "))
}

// AsFieldErrors extracts the field errors from err when it wraps a
// ValidationError.
func AsFieldErrors(err error) (FieldErrors, bool) {
	verr, ok := asValidationError(err)
	if !ok {
		return nil, false
	}
	return verr.Fields, true
}

// Wrap converts a rejected submission into a go-errors validation error that
// keeps the per-field messages as metadata. Other errors pass through.
func Wrap(err error) error {
	verr, ok := asValidationError(err)
	if !ok {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid "+verr.Form+" submission").
		WithCode(goerrors.CodeBadRequest).
		WithTextCode(TextCodeInvalid).
		WithMetadata(map[string]any{"fields": verr.Fields.Clone()})
}

func asValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if !errors.As(err, &verr) || verr == nil {
		return nil, false
	}
	return verr, true
}

func invalid(form string, fields FieldErrors) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Form: form, Fields: fields}
}
