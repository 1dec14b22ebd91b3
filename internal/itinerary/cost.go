package itinerary

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Breakdown is the derived cost summary of an itinerary. It is recomputed from
// the items every time it is needed and is never stored.
type Breakdown struct {
	Activities     decimal.Decimal
	Accommodation  decimal.Decimal
	Food           decimal.Decimal
	Transportation decimal.Decimal

	// FixedCosts are the externally priced extras, echoed back in input order.
	FixedCosts []domain.FixedCost
	Fixed      decimal.Decimal

	GrandTotal decimal.Decimal

	// Unparsed counts items whose price string could not be read.
	// They contribute zero to every total.
	Unparsed int
}

// ByCategory returns the total for c; places maps to Accommodation.
func (b Breakdown) ByCategory(c domain.Category) decimal.Decimal {
	switch c {
	case domain.CategoryActivities:
		return b.Activities
	case domain.CategoryPlaces:
		return b.Accommodation
	case domain.CategoryFood:
		return b.Food
	case domain.CategoryTransportation:
		return b.Transportation
	}
	return decimal.Zero
}

// PerPerson splits the grand total over groupSize people.
// ok is false when there is no group to split over.
func (b Breakdown) PerPerson(groupSize int) (amount decimal.Decimal, ok bool) {
	if groupSize <= 0 {
		return decimal.Zero, false
	}
	return b.GrandTotal.DivRound(decimal.NewFromInt(int64(groupSize)), 2), true
}

// CategoryTotal sums the normalized prices of every item in category c across
// all days. It reads only that category, so expanding one section of a cost
// view never requires the others.
//
// Places are counted once per item: a stay shown on K days adds its price
// once, not K times.
func CategoryTotal(it Itinerary, c domain.Category) decimal.Decimal {
	total, _ := categoryTotal(it, c)
	return total
}

func categoryTotal(it Itinerary, c domain.Category) (total decimal.Decimal, unparsed int) {
	idx := c.Index()
	if idx < 0 {
		return decimal.Zero, 0
	}
	total = decimal.Zero
	var seen map[uuid.UUID]struct{}
	if c == domain.CategoryPlaces {
		seen = map[uuid.UUID]struct{}{}
	}
	for d := range it.days {
		for _, item := range it.days[d][idx] {
			if seen != nil {
				if _, dup := seen[item.ID]; dup {
					continue
				}
				seen[item.ID] = struct{}{}
			}
			p := NormalizePrice(item.Price)
			if !p.WasParsed {
				unparsed++
			}
			total = total.Add(p.Amount)
		}
	}
	return total, unparsed
}

// Aggregate computes every category total plus the grand total. fixed is
// added to the grand total unchanged. An empty itinerary with no fixed costs
// totals zero.
func Aggregate(it Itinerary, fixed []domain.FixedCost) Breakdown {
	var b Breakdown
	totals := make([]decimal.Decimal, len(domain.Categories))
	for i, c := range domain.Categories {
		t, unparsed := categoryTotal(it, c)
		totals[i] = t
		b.Unparsed += unparsed
	}
	b.Activities = totals[domain.CategoryActivities.Index()]
	b.Accommodation = totals[domain.CategoryPlaces.Index()]
	b.Food = totals[domain.CategoryFood.Index()]
	b.Transportation = totals[domain.CategoryTransportation.Index()]

	b.Fixed = decimal.Zero
	for _, f := range fixed {
		b.Fixed = b.Fixed.Add(f.Amount)
	}
	b.FixedCosts = append([]domain.FixedCost(nil), fixed...)

	b.GrandTotal = decimal.Sum(b.Activities, b.Accommodation, b.Food, b.Transportation, b.Fixed)
	return b
}
