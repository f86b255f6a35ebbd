package models

import "errors"

var (
	// ErrMissingColumn is returned when an expected column is absent from a table.
	ErrMissingColumn = errors.New("missing column")
	// ErrInvalidRate is returned for a non-positive or non-finite exchange rate.
	ErrInvalidRate = errors.New("exchange rate must be a positive finite number")
)
