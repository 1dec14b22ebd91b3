package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, negative group size).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidRange means a trip's end date is before its start date.
var ErrInvalidRange = errors.New("end date is before start date")

// ErrInvalidDayIndex means a day index lies outside [0, N-1] for the trip.
var ErrInvalidDayIndex = errors.New("day index out of range")

// ErrEmptySelection means a stay was assigned to no days at all.
// The UI should ask the user to select dates first.
var ErrEmptySelection = errors.New("no days selected")

// ErrDuplicateItem means an item with the same ID is already in that day's list.
var ErrDuplicateItem = errors.New("item already on this day")

// ErrInvalidCategory means a category name is not one of the four known lists.
var ErrInvalidCategory = errors.New("invalid category")

// IsInvalidInput reports whether err is any of the caller-correctable errors
// above, as opposed to a storage or internal failure.
func IsInvalidInput(err error) bool {
	for _, target := range []error{
		ErrValidation, ErrInvalidRange, ErrInvalidDayIndex,
		ErrEmptySelection, ErrDuplicateItem, ErrInvalidCategory,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
