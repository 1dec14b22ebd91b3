// Package domain contains the core data types for the trip planner.
// It is imported by every other internal package (itinerary, repo, service, handler)
// and imports nothing from them.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/backend/internal/date"
)

// Trip is the top-level aggregate; itinerary items belong to a trip.
// StartDate and EndDate are inclusive and either both set or both zero.
// A trip without dates is still a draft.
type Trip struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	StartDate    date.Date   `json:"start_date"`
	EndDate      date.Date   `json:"end_date"`
	Destinations []string    `json:"destinations,omitempty"`
	GroupSize    int         `json:"group_size"`
	FixedCosts   []FixedCost `json:"fixed_costs,omitempty"`
	// Completed is the completion record kept by trip storage.
	// nil means nobody has said whether a past trip was completed or let expire.
	Completed *bool     `json:"completed,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasDates reports whether both ends of the date range are set.
func (t Trip) HasDates() bool {
	return !t.StartDate.IsZero() && !t.EndDate.IsZero()
}

// FixedCost is an externally priced line item such as a driver or guide.
// It is added to the grand total as-is.
type FixedCost struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}
