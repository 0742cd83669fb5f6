// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks inbound domain values before they reach the
// service layer.
//
// Struct rules are declared with `validate` tags on the models and evaluated
// by go-playground/validator; rules that tags cannot express (a patch that
// changes nothing, an empty collaborator set) are checked by hand.
package validators

import "context"

// Validator validates v. When fields are given, only those struct fields
// are checked.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
