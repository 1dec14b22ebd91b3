package itinerary

import (
	"fmt"

	"github.com/pkordes/trip-planner/backend/internal/date"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// MaxTripDays is the longest range a stored trip may span. DaySequence itself
// has no limit; the cap keeps every view of a trip a bounded size.
const MaxTripDays = 366

// DayCount returns N, the number of calendar days from start to end inclusive.
func DayCount(start, end date.Date) (int, error) {
	if start.IsZero() || end.IsZero() {
		return 0, fmt.Errorf("%w: start and end dates are required", domain.ErrInvalidRange)
	}
	if end.Before(start) {
		return 0, fmt.Errorf("%w: %s is before %s", domain.ErrInvalidRange, end, start)
	}
	return start.DaysUntil(end) + 1, nil
}

// DaySequence returns every calendar day from start to end inclusive.
// A same-day trip yields one day. Calling it twice with the same inputs
// returns equal slices.
func DaySequence(start, end date.Date) ([]date.Date, error) {
	n, err := DayCount(start, end)
	if err != nil {
		return nil, err
	}
	days := make([]date.Date, n)
	for i := range days {
		days[i] = start.Add(i)
	}
	return days, nil
}
