package itinerary

import (
	"slices"
	"strings"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Entry is one item in a day's merged timeline.
type Entry struct {
	Category domain.Category
	Item     domain.Item
}

// untimed is where items with no time sort: the start of the day.
const untimed = "00:00"

// Chronological merges a day's four lists into one sequence ordered by
// Item.Time. "HH:MM" is zero-padded 24h, so string order is time order.
// Equal or missing times keep list order within a category, and categories
// follow domain.Categories. The day is not modified.
func Chronological(d Day) []Entry {
	entries := make([]Entry, 0, d.Len())
	for _, c := range domain.Categories {
		for _, item := range d.lists[c.Index()] {
			entries = append(entries, Entry{Category: c, Item: item})
		}
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return strings.Compare(sortTime(a.Item), sortTime(b.Item))
	})
	return entries
}

func sortTime(item domain.Item) string {
	if item.Time == "" {
		return untimed
	}
	return item.Time
}
