package itinerary

import (
	"fmt"
	"time"

	"github.com/pkordes/trip-planner/backend/internal/date"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Status is a trip's lifecycle label. It is always derived, never stored.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusUpcoming Status = "upcoming"
	StatusActive   Status = "active"
	// StatusPast is what dates alone can say about a finished trip.
	// Completed and Expired need the storage side's completion record.
	StatusPast      Status = "past"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
)

// ParseStatus accepts any of the status names.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusDraft, StatusUpcoming, StatusActive, StatusPast, StatusCompleted, StatusExpired:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", domain.ErrValidation, s)
}

// Matches reports whether s satisfies a filter for want. Filtering by past
// matches completed and expired trips too.
func (s Status) Matches(want Status) bool {
	if want == StatusPast {
		return s == StatusPast || s == StatusCompleted || s == StatusExpired
	}
	return s == want
}

// StatusOn resolves a status from dates alone, as of the calendar day today.
// Both range ends are inclusive. A missing or inverted range is a draft.
// A trip that has ended is StatusPast; see Refine.
func StatusOn(start, end, today date.Date) Status {
	switch {
	case start.IsZero() || end.IsZero() || end.Before(start):
		return StatusDraft
	case today.Before(start):
		return StatusUpcoming
	case today.After(end):
		return StatusPast
	default:
		return StatusActive
	}
}

// Refine splits the past bucket using the completion record. A nil record
// leaves StatusPast as is; other statuses are never changed.
func Refine(s Status, completed *bool) Status {
	if s != StatusPast || completed == nil {
		return s
	}
	if *completed {
		return StatusCompleted
	}
	return StatusExpired
}

// StatusResolver resolves trip statuses against a clock.
type StatusResolver struct {
	loc   *time.Location
	nowFn func() time.Time
}

// NewStatusResolver returns a resolver that reads time.Now and judges calendar
// days in loc. A nil loc means UTC.
func NewStatusResolver(loc *time.Location) *StatusResolver {
	if loc == nil {
		loc = time.UTC
	}
	return &StatusResolver{loc: loc, nowFn: time.Now}
}

// WithClock returns a copy of r that reads the time from now.
func (r *StatusResolver) WithClock(now func() time.Time) *StatusResolver {
	return &StatusResolver{loc: r.loc, nowFn: now}
}

// Resolve returns the trip's status. The clock is read exactly once.
func (r *StatusResolver) Resolve(t domain.Trip) Status {
	return r.ResolveAt(t, r.nowFn())
}

// ResolveAt returns the trip's status as of now.
func (r *StatusResolver) ResolveAt(t domain.Trip, now time.Time) Status {
	today := date.In(now, r.loc)
	return Refine(StatusOn(t.StartDate, t.EndDate, today), t.Completed)
}
