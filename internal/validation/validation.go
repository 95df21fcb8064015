// Package validation binds and validates request payloads.
//
// Payload types carry `validate` tags for go-playground/validator and
// implement Validatable; failures are turned into field-level errors the
// client can act on.
package validation
