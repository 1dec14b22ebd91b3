// Package itinerary is the day-indexed trip model: it lays a trip's items out
// over its calendar days, orders each day chronologically, normalizes prices,
// totals costs and derives the trip's status.
//
// Nothing here does I/O. An Itinerary is an immutable snapshot; every
// mutating method returns a new snapshot and leaves the receiver as it was,
// so two readers of the same trip never see a half-applied change.
package itinerary

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/date"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// dayLists holds a day's four category lists, indexed by Category.Index.
type dayLists [len(domain.Categories)][]domain.Item

// Itinerary maps each day of a trip to its planned items.
// Days are stored in a slice sized to the trip length, so a day index outside
// [0, N-1] cannot exist. Dates are never stored: day i is start+i.
type Itinerary struct {
	start date.Date
	days  []dayLists
}

// New returns an empty itinerary covering start..end inclusive.
func New(start, end date.Date) (Itinerary, error) {
	n, err := DayCount(start, end)
	if err != nil {
		return Itinerary{}, fmt.Errorf("itinerary.New: %w", err)
	}
	return Itinerary{start: start, days: make([]dayLists, n)}, nil
}

// Len returns the number of days, N.
func (it Itinerary) Len() int { return len(it.days) }

// Start returns the date of day 0.
func (it Itinerary) Start() date.Date { return it.start }

// End returns the date of day N-1, or the zero date for an empty itinerary.
func (it Itinerary) End() date.Date {
	if len(it.days) == 0 {
		return date.Date{}
	}
	return it.start.Add(len(it.days) - 1)
}

// Day returns a read-only copy of day i.
func (it Itinerary) Day(i int) (Day, error) {
	if err := it.checkIndex(i); err != nil {
		return Day{}, err
	}
	return it.day(i), nil
}

// Days returns copies of every day in order.
func (it Itinerary) Days() []Day {
	out := make([]Day, len(it.days))
	for i := range it.days {
		out[i] = it.day(i)
	}
	return out
}

func (it Itinerary) day(i int) Day {
	d := Day{Index: i, Date: it.start.Add(i)}
	for c, list := range it.days[i] {
		d.lists[c] = make([]domain.Item, len(list))
		for j, item := range list {
			d.lists[c][j] = cloneItem(item)
		}
	}
	return d
}

// AddToDay appends item to the category list of day i.
// An item without an ID is given one. Adding an item whose ID is already in
// that list fails with ErrDuplicateItem; the same content under a new ID is
// fine. Stay fields are cleared: a single-day insert is not a stay.
func (it Itinerary) AddToDay(i int, c domain.Category, item domain.Item) (Itinerary, error) {
	if err := it.checkIndex(i); err != nil {
		return it, err
	}
	if !c.Valid() {
		return it, fmt.Errorf("itinerary.AddToDay: %w: %q", domain.ErrInvalidCategory, c)
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if indexOf(it.days[i][c.Index()], item.ID) >= 0 {
		return it, fmt.Errorf("itinerary.AddToDay: %w: %s on day %d", domain.ErrDuplicateItem, item.ID, i)
	}
	item.StayDates = nil
	item.IsLocation = false

	next := it.clone()
	next.appendItem(i, c, item)
	return next, nil
}

// AddStayAcrossDays puts a lodging item in the places list of every day in
// days. Each copy carries the full, sorted StayDates and IsLocation=true.
//
// If the item's ID is already a stay, the stay is extended: StayDates becomes
// the union of old and new days and every copy is refreshed in place.
// Fails with ErrEmptySelection for an empty set and ErrInvalidDayIndex if any
// index is out of range; on failure nothing is added anywhere.
func (it Itinerary) AddStayAcrossDays(days []int, item domain.Item) (Itinerary, error) {
	if len(days) == 0 {
		return it, fmt.Errorf("itinerary.AddStayAcrossDays: %w", domain.ErrEmptySelection)
	}
	for _, d := range days {
		if err := it.checkIndex(d); err != nil {
			return it, err
		}
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	stay := slices.Concat(days, it.stayDays(item.ID))
	slices.Sort(stay)
	stay = slices.Compact(stay)

	item.StayDates = stay
	item.IsLocation = true

	next := it.clone()
	places := domain.CategoryPlaces.Index()
	for _, d := range stay {
		list := next.days[d][places]
		if pos := indexOf(list, item.ID); pos >= 0 {
			list = slices.Clone(list)
			list[pos] = withStayDates(item, stay)
			next.days[d][places] = list
			continue
		}
		next.appendItem(d, domain.CategoryPlaces, withStayDates(item, stay))
	}
	return next, nil
}

// RemoveFromDay removes one item from one day's category list. It is a no-op
// when the item is not there. Only that day changes, except that the other
// copies of a stay have day i dropped from their StayDates.
func (it Itinerary) RemoveFromDay(i int, c domain.Category, id uuid.UUID) (Itinerary, error) {
	if err := it.checkIndex(i); err != nil {
		return it, err
	}
	if !c.Valid() {
		return it, fmt.Errorf("itinerary.RemoveFromDay: %w: %q", domain.ErrInvalidCategory, c)
	}
	pos := indexOf(it.days[i][c.Index()], id)
	if pos < 0 {
		return it, nil
	}
	removed := it.days[i][c.Index()][pos]

	next := it.clone()
	next.days[i][c.Index()] = slices.Delete(slices.Clone(it.days[i][c.Index()]), pos, pos+1)

	if c == domain.CategoryPlaces && removed.IsStay() {
		next.refreshStay(id, next.stayDays(id))
	}
	return next, nil
}

// RemoveStay removes a stay from every day it appears on. A no-op when the
// item is on no day.
func (it Itinerary) RemoveStay(id uuid.UUID) Itinerary {
	days := it.stayDays(id)
	if len(days) == 0 {
		return it
	}
	next := it.clone()
	places := domain.CategoryPlaces.Index()
	for _, d := range days {
		next.days[d][places] = slices.DeleteFunc(slices.Clone(next.days[d][places]), func(x domain.Item) bool {
			return x.ID == id
		})
	}
	return next
}

// stayDays returns the sorted day indices whose places list holds id.
// It scans the lists rather than trusting any copy's StayDates.
func (it Itinerary) stayDays(id uuid.UUID) []int {
	var days []int
	places := domain.CategoryPlaces.Index()
	for d := range it.days {
		if indexOf(it.days[d][places], id) >= 0 {
			days = append(days, d)
		}
	}
	return days
}

// refreshStay rewrites StayDates on every remaining copy of a stay.
// next must already be a clone.
func (it *Itinerary) refreshStay(id uuid.UUID, stay []int) {
	places := domain.CategoryPlaces.Index()
	for _, d := range stay {
		pos := indexOf(it.days[d][places], id)
		if pos < 0 {
			continue
		}
		list := slices.Clone(it.days[d][places])
		list[pos] = withStayDates(list[pos], stay)
		it.days[d][places] = list
	}
}

// clone copies the day array. Category slices are still shared with the
// receiver, so callers must replace a list, never write into it.
func (it Itinerary) clone() Itinerary {
	return Itinerary{start: it.start, days: slices.Clone(it.days)}
}

// appendItem adds item to a list without touching the shared backing array.
func (it *Itinerary) appendItem(i int, c domain.Category, item domain.Item) {
	it.days[i][c.Index()] = append(slices.Clip(it.days[i][c.Index()]), item)
}

func (it Itinerary) checkIndex(i int) error {
	if i < 0 || i >= len(it.days) {
		return fmt.Errorf("%w: %d not in [0, %d]", domain.ErrInvalidDayIndex, i, len(it.days)-1)
	}
	return nil
}

func indexOf(list []domain.Item, id uuid.UUID) int {
	return slices.IndexFunc(list, func(x domain.Item) bool { return x.ID == id })
}

// cloneItem returns a copy of item that shares no memory with it.
func cloneItem(item domain.Item) domain.Item {
	item.StayDates = slices.Clone(item.StayDates)
	if item.Rating != nil {
		r := *item.Rating
		item.Rating = &r
	}
	return item
}

// withStayDates returns item carrying its own copy of stay.
func withStayDates(item domain.Item, stay []int) domain.Item {
	item.StayDates = slices.Clone(stay)
	item.IsLocation = true
	return item
}

// Day is a read-only copy of one itinerary day.
type Day struct {
	Index int
	Date  date.Date
	lists dayLists
}

// Items returns the day's list for category c in insertion order.
// Unknown categories return nil.
func (d Day) Items(c domain.Category) []domain.Item {
	i := c.Index()
	if i < 0 {
		return nil
	}
	return slices.Clone(d.lists[i])
}

// Len returns the number of items on the day across all categories.
func (d Day) Len() int {
	n := 0
	for _, l := range d.lists {
		n += len(l)
	}
	return n
}
