// Package model declares the rows of the project-management schema and the
// typed payloads used to create and partially update them.
//
// Relations are never live back-pointers: every entity carries plain foreign-key
// ids, and the *WithRelations views are filled by the repository layer on demand.
package model

import (
	"bytes"
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Status types accepted by Status.Type.
const (
	StatusTypeProject = "project"
	StatusTypeTask    = "task"
)

// Nullable is a partial-update slot for a nullable column.
//
// The zero value leaves the column untouched. Set marks it for update;
// Valid=false with Set=true writes SQL NULL. In JSON an absent key leaves
// the column alone and an explicit null clears it.
type Nullable[T any] struct {
	Value T
	Valid bool
	Set   bool
}

// NewNullable returns a slot that writes v.
func NewNullable[T any](v T) Nullable[T] {
	return Nullable[T]{Value: v, Valid: true, Set: true}
}

// Null returns a slot that writes SQL NULL.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// SQLValue is the value handed to the driver: nil for NULL.
func (n Nullable[T]) SQLValue() any {
	if !n.Valid {
		return nil
	}
	return n.Value
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		n.Value, n.Valid = zero, false
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
