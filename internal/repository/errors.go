// Package repository holds the sentinel errors shared by every store
// implementation. It imports nothing from the domain so stores and domain
// services can both depend on it.
package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
