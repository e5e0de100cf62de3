package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
	// ErrMissingName indicates the required project name is missing.
	ErrMissingName = errors.New("project name required")
	// ErrMissingClient indicates the required client name is missing.
	ErrMissingClient = errors.New("client name required")
	// ErrMissingStartDate indicates the required start date is missing.
	ErrMissingStartDate = errors.New("start date required")
	// ErrNegativeBudget indicates a budget below zero.
	ErrNegativeBudget = errors.New("budget must not be negative")
)
