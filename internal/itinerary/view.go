package itinerary

import (
	"github.com/pkordes/trip-planner/backend/internal/date"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// View is the enriched snapshot handed to presentation: the trip, every day
// with its lists and merged timeline, the cost breakdown and the status.
type View struct {
	Trip   domain.Trip
	Status Status
	Days   []DayView
	Costs  Breakdown
}

// DayView is one day of a View.
type DayView struct {
	Index    int
	Date     date.Date
	Lists    map[domain.Category][]domain.Item
	Timeline []Entry
}

// BuildView assembles a View. A draft trip has no days; pass the zero
// Itinerary for it and the costs are just the fixed costs.
func BuildView(trip domain.Trip, it Itinerary, status Status) View {
	v := View{
		Trip:   trip,
		Status: status,
		Days:   make([]DayView, 0, it.Len()),
		Costs:  Aggregate(it, trip.FixedCosts),
	}
	for _, d := range it.Days() {
		dv := DayView{
			Index:    d.Index,
			Date:     d.Date,
			Lists:    make(map[domain.Category][]domain.Item, len(domain.Categories)),
			Timeline: Chronological(d),
		}
		for _, c := range domain.Categories {
			dv.Lists[c] = d.Items(c)
		}
		v.Days = append(v.Days, dv)
	}
	return v
}

// Export flattens a View into rows, one per timeline entry. Empty days still
// produce one row so the export covers every date of the trip.
func Export(v View) []domain.ExportRow {
	var rows []domain.ExportRow
	for _, d := range v.Days {
		if len(d.Timeline) == 0 {
			rows = append(rows, domain.ExportRow{DayIndex: d.Index, Date: d.Date.String()})
			continue
		}
		for _, e := range d.Timeline {
			p := NormalizePrice(e.Item.Price)
			rows = append(rows, domain.ExportRow{
				DayIndex: d.Index,
				Date:     d.Date.String(),
				Time:     e.Item.Time,
				Category: string(e.Category),
				Name:     e.Item.Name,
				Location: e.Item.Location,
				Price:    e.Item.Price,
				Amount:   p.Amount.StringFixed(2),
				Parsed:   p.WasParsed,
			})
		}
	}
	return rows
}
