package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Category tags which of a day's four lists an item lives in.
type Category string

const (
	CategoryActivities     Category = "activities"
	CategoryPlaces         Category = "places"
	CategoryFood           Category = "food"
	CategoryTransportation Category = "transportation"
)

// Categories lists every category in display order.
// Ties in the chronological merge are broken by this order.
var Categories = [...]Category{
	CategoryActivities,
	CategoryPlaces,
	CategoryFood,
	CategoryTransportation,
}

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryActivities, CategoryPlaces, CategoryFood, CategoryTransportation:
		return true
	}
	return false
}

// Index returns the position of c in Categories, or -1.
func (c Category) Index() int {
	for i, x := range Categories {
		if x == c {
			return i
		}
	}
	return -1
}

// Item is a single planned activity, lodging, meal or transfer.
// Items are values: the itinerary never edits an Item in place.
//
// Price is kept exactly as the user or booking service wrote it ("$120/night")
// so it can be shown verbatim; amounts are derived from it on demand.
// Time is "HH:MM" (24h, zero-padded) or empty.
type Item struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Location string    `json:"location,omitempty"`
	Price    string    `json:"price,omitempty"`
	Rating   *float64  `json:"rating,omitempty"`
	Time     string    `json:"time,omitempty"`

	// StayDates and IsLocation are only set on places items added as a stay.
	// StayDates is sorted ascending.
	StayDates  []int `json:"stay_dates,omitempty"`
	IsLocation bool  `json:"is_location,omitempty"`
}

// IsStay reports whether the item was assigned to days as a multi-day stay.
func (i Item) IsStay() bool { return i.IsLocation && len(i.StayDates) > 0 }

// ItemRecord is the flat, persisted form of an item on one day.
// A stay spanning K days is stored as K records sharing Item.ID.
type ItemRecord struct {
	TripID   uuid.UUID
	DayIndex int
	Category Category
	Position int
	Item     Item
}
