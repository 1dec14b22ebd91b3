package itinerary

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/date"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// FromRecords rebuilds an itinerary from stored rows. Rows are placed by
// (DayIndex, Category, Position). A stay's StayDates is recomputed from the
// days its rows actually sit on, so a stale value in storage cannot leak in.
//
// Rows whose DayIndex falls outside the trip's current range are left out and
// returned as skipped; they are what remains of a longer range and vanish on
// the next write.
func FromRecords(start, end date.Date, records []domain.ItemRecord) (it Itinerary, skipped []domain.ItemRecord, err error) {
	it, err = New(start, end)
	if err != nil {
		return Itinerary{}, nil, err
	}

	sorted := slices.DeleteFunc(slices.Clone(records), func(r domain.ItemRecord) bool {
		if it.checkIndex(r.DayIndex) != nil {
			skipped = append(skipped, r)
			return true
		}
		return false
	})
	slices.SortStableFunc(sorted, func(a, b domain.ItemRecord) int {
		return cmp.Or(
			cmp.Compare(a.DayIndex, b.DayIndex),
			cmp.Compare(a.Category.Index(), b.Category.Index()),
			cmp.Compare(a.Position, b.Position),
		)
	})

	stays := map[uuid.UUID][]int{}
	for _, r := range sorted {
		if !r.Category.Valid() {
			return Itinerary{}, nil, fmt.Errorf("itinerary.FromRecords: item %s: %w: %q", r.Item.ID, domain.ErrInvalidCategory, r.Category)
		}
		if r.Category == domain.CategoryPlaces && r.Item.IsLocation {
			stays[r.Item.ID] = append(stays[r.Item.ID], r.DayIndex)
		}
	}

	for _, r := range sorted {
		item := r.Item
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		if indexOf(it.days[r.DayIndex][r.Category.Index()], item.ID) >= 0 {
			return Itinerary{}, nil, fmt.Errorf("itinerary.FromRecords: %w: %s on day %d", domain.ErrDuplicateItem, item.ID, r.DayIndex)
		}
		if stay, ok := stays[item.ID]; ok && r.Category == domain.CategoryPlaces && item.IsLocation {
			item = withStayDates(item, stay)
		} else {
			item.StayDates = nil
			item.IsLocation = false
		}
		it.appendItem(r.DayIndex, r.Category, item)
	}
	return it, skipped, nil
}

// Records flattens the itinerary into one row per item per day, in day,
// category and list order. Position is the index within the day's list.
func (it Itinerary) Records(tripID uuid.UUID) []domain.ItemRecord {
	var out []domain.ItemRecord
	for d := range it.days {
		for _, c := range domain.Categories {
			for pos, item := range it.days[d][c.Index()] {
				item = cloneItem(item)
				out = append(out, domain.ItemRecord{
					TripID:   tripID,
					DayIndex: d,
					Category: c,
					Position: pos,
					Item:     item,
				})
			}
		}
	}
	return out
}
