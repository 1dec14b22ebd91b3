package domain

// ExportRow is a single row in an itinerary export.
// It is a flat, denormalized view: one row per item per day, in chronological
// order within each day. A stay covering three days yields three rows.
// Days with no items yield one row with empty item fields, so every day of the
// trip is present in the export.
type ExportRow struct {
	// Day fields, repeated for every item on the day.
	DayIndex int
	Date     string // "2006-01-02"

	// Item fields, zero values when the day is empty.
	Time     string
	Category string
	Name     string
	Location string
	Price    string // raw string as entered

	// Amount is the normalized price as a decimal string.
	// Parsed is false when Price could not be understood.
	Amount string
	Parsed bool
}
