package timesheet

import "errors"

var (
	// ErrMissingDescription indicates the required entry description is missing.
	ErrMissingDescription = errors.New("time entry description required")
)
