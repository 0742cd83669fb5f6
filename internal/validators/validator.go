// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/go-playground/validator/v10"
)

// ModelValidator validates the request models of the notes API.
type ModelValidator struct {
	validate *validator.Validate
}

// NewModelValidator returns a Validator that reports JSON field names in
// its errors.
func NewModelValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &ModelValidator{validate: v}
}

func (m *ModelValidator) Validate(ctx context.Context, v any, fields ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := m.validateRules(v); err != nil {
		return err
	}

	var err error
	if len(fields) > 0 {
		err = m.validate.StructPartialCtx(ctx, v, fields...)
	} else {
		err = m.validate.StructCtx(ctx, v)
	}

	return wrapValidationError(err)
}

// validateRules covers what struct tags cannot express.
func (m *ModelValidator) validateRules(v any) error {
	switch value := v.(type) {
	case models.NotePatch:
		if value.IsEmpty() {
			return ErrNoFieldsToUpdate
		}
	case *models.NotePatch:
		return m.validateRules(deref(value))
	case models.LabelPatch:
		if value.IsEmpty() {
			return ErrNoFieldsToUpdate
		}
	case *models.LabelPatch:
		return m.validateRules(deref(value))
	case models.CollaborationRequest:
		if value.NoteID <= 0 {
			return ErrInvalidNoteID
		}
		if value.OwnerID <= 0 {
			return ErrInvalidUserID
		}
		if len(value.UserIDs) == 0 {
			return ErrEmptyTargets
		}
	case *models.CollaborationRequest:
		return m.validateRules(deref(value))
	}
	return nil
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}
