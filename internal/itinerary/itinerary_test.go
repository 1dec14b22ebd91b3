package itinerary_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/date"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
)

// ---- helpers ---------------------------------------------------------------

// fiveDays returns an empty itinerary for 2024-02-15..2024-02-19.
func fiveDays(t *testing.T) itinerary.Itinerary {
	t.Helper()
	it, err := itinerary.New(date.MustParse("2024-02-15"), date.MustParse("2024-02-19"))
	require.NoError(t, err)
	return it
}

func item(name, price, at string) domain.Item {
	return domain.Item{ID: uuid.New(), Name: name, Price: price, Time: at}
}

func placesOn(t *testing.T, it itinerary.Itinerary, day int) []domain.Item {
	t.Helper()
	d, err := it.Day(day)
	require.NoError(t, err)
	return d.Items(domain.CategoryPlaces)
}

func ids(items []domain.Item) []uuid.UUID {
	out := make([]uuid.UUID, len(items))
	for i, x := range items {
		out[i] = x.ID
	}
	return out
}

// ---- New -------------------------------------------------------------------

func TestNew(t *testing.T) {
	it := fiveDays(t)

	assert.Equal(t, 5, it.Len())
	assert.Equal(t, "2024-02-15", it.Start().String())
	assert.Equal(t, "2024-02-19", it.End().String())

	days := it.Days()
	require.Len(t, days, 5)
	for i, d := range days {
		assert.Equal(t, i, d.Index)
		assert.Equal(t, it.Start().Add(i), d.Date)
		assert.Zero(t, d.Len())
	}
}

func TestNew_InvalidRange(t *testing.T) {
	_, err := itinerary.New(date.MustParse("2024-02-19"), date.MustParse("2024-02-15"))

	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestDay_OutOfRange(t *testing.T) {
	it := fiveDays(t)

	_, err := it.Day(5)
	assert.ErrorIs(t, err, domain.ErrInvalidDayIndex)

	_, err = it.Day(-1)
	assert.ErrorIs(t, err, domain.ErrInvalidDayIndex)
}

// ---- AddToDay --------------------------------------------------------------

func TestAddToDay_Appends(t *testing.T) {
	it := fiveDays(t)
	a, b := item("Museum", "$20", "10:00"), item("Hike", "Free", "")

	it, err := it.AddToDay(2, domain.CategoryActivities, a)
	require.NoError(t, err)
	it, err = it.AddToDay(2, domain.CategoryActivities, b)
	require.NoError(t, err)

	d, err := it.Day(2)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID}, ids(d.Items(domain.CategoryActivities)))
	assert.Empty(t, d.Items(domain.CategoryFood))
	for _, other := range []int{0, 1, 3, 4} {
		od, err := it.Day(other)
		require.NoError(t, err)
		assert.Zero(t, od.Len(), "day %d", other)
	}
}

func TestAddToDay_AssignsMissingID(t *testing.T) {
	it := fiveDays(t)

	it, err := it.AddToDay(0, domain.CategoryFood, domain.Item{Name: "Tacos"})
	require.NoError(t, err)

	d, _ := it.Day(0)
	food := d.Items(domain.CategoryFood)
	require.Len(t, food, 1)
	assert.NotEqual(t, uuid.Nil, food[0].ID)
}

func TestAddToDay_InvalidDayIndex(t *testing.T) {
	it := fiveDays(t)

	for _, i := range []int{-1, 5, 100} {
		_, err := it.AddToDay(i, domain.CategoryFood, item("Tacos", "$10", ""))
		assert.ErrorIs(t, err, domain.ErrInvalidDayIndex, "index %d", i)
	}
}

func TestAddToDay_InvalidCategory(t *testing.T) {
	_, err := fiveDays(t).AddToDay(0, domain.Category("souvenirs"), item("Mug", "$5", ""))

	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestAddToDay_DuplicateIdentityRejected(t *testing.T) {
	it := fiveDays(t)
	x := item("Tacos", "$10", "")

	it, err := it.AddToDay(0, domain.CategoryFood, x)
	require.NoError(t, err)

	_, err = it.AddToDay(0, domain.CategoryFood, x)
	assert.ErrorIs(t, err, domain.ErrDuplicateItem)
}

func TestAddToDay_DuplicateContentAllowed(t *testing.T) {
	it := fiveDays(t)

	it, err := it.AddToDay(0, domain.CategoryFood, item("Tacos", "$10", ""))
	require.NoError(t, err)
	it, err = it.AddToDay(0, domain.CategoryFood, item("Tacos", "$10", ""))
	require.NoError(t, err)

	d, _ := it.Day(0)
	assert.Len(t, d.Items(domain.CategoryFood), 2)
}

func TestAddToDay_ClearsStayFields(t *testing.T) {
	x := item("Hostel", "$30", "")
	x.StayDates = []int{0, 1}
	x.IsLocation = true

	it, err := fiveDays(t).AddToDay(3, domain.CategoryPlaces, x)
	require.NoError(t, err)

	places := placesOn(t, it, 3)
	require.Len(t, places, 1)
	assert.False(t, places[0].IsStay())
	assert.Empty(t, placesOn(t, it, 0))
}

func TestAddToDay_DoesNotMutateReceiver(t *testing.T) {
	before := fiveDays(t)
	before, err := before.AddToDay(1, domain.CategoryFood, item("Brunch", "$20", "09:00"))
	require.NoError(t, err)

	after, err := before.AddToDay(1, domain.CategoryFood, item("Dinner", "$40", "19:00"))
	require.NoError(t, err)

	b, _ := before.Day(1)
	a, _ := after.Day(1)
	assert.Len(t, b.Items(domain.CategoryFood), 1)
	assert.Len(t, a.Items(domain.CategoryFood), 2)
}

// Two snapshots branched from the same parent must not see each other's items,
// even when the parent's list has spare capacity.
func TestAddToDay_BranchesAreIndependent(t *testing.T) {
	base := fiveDays(t)
	var err error
	for i := 0; i < 3; i++ {
		base, err = base.AddToDay(0, domain.CategoryActivities, item("a", "$1", ""))
		require.NoError(t, err)
	}

	left, err := base.AddToDay(0, domain.CategoryActivities, item("left", "$1", ""))
	require.NoError(t, err)
	right, err := base.AddToDay(0, domain.CategoryActivities, item("right", "$1", ""))
	require.NoError(t, err)

	l, _ := left.Day(0)
	r, _ := right.Day(0)
	assert.Equal(t, "left", l.Items(domain.CategoryActivities)[3].Name)
	assert.Equal(t, "right", r.Items(domain.CategoryActivities)[3].Name)
}

func TestDayItems_AreCopies(t *testing.T) {
	it, err := fiveDays(t).AddStayAcrossDays([]int{0, 1}, item("Inn", "$90/night", ""))
	require.NoError(t, err)

	got := placesOn(t, it, 0)
	got[0].Name = "changed"
	got[0].StayDates[0] = 4

	again := placesOn(t, it, 0)
	assert.Equal(t, "Inn", again[0].Name)
	assert.Equal(t, []int{0, 1}, again[0].StayDates)
}

// ---- AddStayAcrossDays -----------------------------------------------------

func TestAddStayAcrossDays_OnlySelectedDays(t *testing.T) {
	hotel := item("Grand Hotel", "$200/night", "15:00")

	it, err := fiveDays(t).AddStayAcrossDays([]int{4, 1, 3}, hotel)
	require.NoError(t, err)

	for day := 0; day < it.Len(); day++ {
		places := placesOn(t, it, day)
		switch day {
		case 1, 3, 4:
			require.Len(t, places, 1, "day %d", day)
			assert.Equal(t, hotel.ID, places[0].ID)
			assert.Equal(t, []int{1, 3, 4}, places[0].StayDates)
			assert.True(t, places[0].IsLocation)
		default:
			assert.Empty(t, places, "day %d", day)
		}
	}
}

func TestAddStayAcrossDays_DuplicateIndicesCollapse(t *testing.T) {
	it, err := fiveDays(t).AddStayAcrossDays([]int{2, 2, 0}, item("Cabin", "$75", ""))
	require.NoError(t, err)

	assert.Len(t, placesOn(t, it, 2), 1)
	assert.Equal(t, []int{0, 2}, placesOn(t, it, 0)[0].StayDates)
}

func TestAddStayAcrossDays_EmptySelection(t *testing.T) {
	it := fiveDays(t)

	got, err := it.AddStayAcrossDays([]int{}, item("Grand Hotel", "$200/night", ""))

	assert.ErrorIs(t, err, domain.ErrEmptySelection)
	for _, d := range got.Days() {
		assert.Zero(t, d.Len())
	}

	_, err = it.AddStayAcrossDays(nil, item("Grand Hotel", "$200/night", ""))
	assert.ErrorIs(t, err, domain.ErrEmptySelection)
}

func TestAddStayAcrossDays_OutOfRangeAddsNothing(t *testing.T) {
	it := fiveDays(t)

	got, err := it.AddStayAcrossDays([]int{0, 1, 9}, item("Grand Hotel", "$200/night", ""))

	assert.ErrorIs(t, err, domain.ErrInvalidDayIndex)
	for _, d := range got.Days() {
		assert.Zero(t, d.Len())
	}
}

func TestAddStayAcrossDays_ExtendsExistingStay(t *testing.T) {
	hotel := item("Grand Hotel", "$200/night", "")

	it, err := fiveDays(t).AddStayAcrossDays([]int{0, 1}, hotel)
	require.NoError(t, err)
	it, err = it.AddStayAcrossDays([]int{2}, hotel)
	require.NoError(t, err)

	for _, day := range []int{0, 1, 2} {
		places := placesOn(t, it, day)
		require.Len(t, places, 1, "day %d", day)
		assert.Equal(t, []int{0, 1, 2}, places[0].StayDates)
	}
}

// ---- RemoveFromDay ---------------------------------------------------------

func TestRemoveFromDay(t *testing.T) {
	it := fiveDays(t)
	a, b := item("Brunch", "$20", ""), item("Dinner", "$40", "")
	it, _ = it.AddToDay(0, domain.CategoryFood, a)
	it, _ = it.AddToDay(0, domain.CategoryFood, b)

	it, err := it.RemoveFromDay(0, domain.CategoryFood, a.ID)

	require.NoError(t, err)
	d, _ := it.Day(0)
	assert.Equal(t, []uuid.UUID{b.ID}, ids(d.Items(domain.CategoryFood)))
}

func TestRemoveFromDay_AbsentIsNoop(t *testing.T) {
	it := fiveDays(t)
	a := item("Brunch", "$20", "")
	it, _ = it.AddToDay(0, domain.CategoryFood, a)

	got, err := it.RemoveFromDay(0, domain.CategoryFood, uuid.New())
	require.NoError(t, err)
	d, _ := got.Day(0)
	assert.Len(t, d.Items(domain.CategoryFood), 1)

	// Right ID, wrong category.
	got, err = it.RemoveFromDay(0, domain.CategoryActivities, a.ID)
	require.NoError(t, err)
	d, _ = got.Day(0)
	assert.Len(t, d.Items(domain.CategoryFood), 1)
}

func TestRemoveFromDay_InvalidDayIndex(t *testing.T) {
	_, err := fiveDays(t).RemoveFromDay(7, domain.CategoryFood, uuid.New())

	assert.ErrorIs(t, err, domain.ErrInvalidDayIndex)
}

func TestRemoveFromDay_StayStaysOnOtherDays(t *testing.T) {
	hotel := item("Grand Hotel", "$200/night", "")
	it, err := fiveDays(t).AddStayAcrossDays([]int{1, 3, 4}, hotel)
	require.NoError(t, err)

	it, err = it.RemoveFromDay(3, domain.CategoryPlaces, hotel.ID)
	require.NoError(t, err)

	assert.Empty(t, placesOn(t, it, 3))
	for _, day := range []int{1, 4} {
		places := placesOn(t, it, day)
		require.Len(t, places, 1, "day %d", day)
		assert.Equal(t, hotel.ID, places[0].ID)
		assert.Equal(t, []int{1, 4}, places[0].StayDates)
	}
}

// ---- RemoveStay ------------------------------------------------------------

func TestRemoveStay(t *testing.T) {
	hotel := item("Grand Hotel", "$200/night", "")
	other := item("Hostel", "$30", "")
	it, err := fiveDays(t).AddStayAcrossDays([]int{0, 2, 4}, hotel)
	require.NoError(t, err)
	it, err = it.AddToDay(2, domain.CategoryPlaces, other)
	require.NoError(t, err)

	it = it.RemoveStay(hotel.ID)

	for day := 0; day < it.Len(); day++ {
		for _, p := range placesOn(t, it, day) {
			assert.NotEqual(t, hotel.ID, p.ID, "day %d", day)
		}
	}
	assert.Equal(t, []uuid.UUID{other.ID}, ids(placesOn(t, it, 2)))
}

func TestRemoveStay_Unknown(t *testing.T) {
	it := fiveDays(t)

	got := it.RemoveStay(uuid.New())

	assert.Equal(t, it.Len(), got.Len())
}

// ---- records ---------------------------------------------------------------

func TestRecordsRoundTrip(t *testing.T) {
	tripID := uuid.New()
	hotel := item("Grand Hotel", "$200/night", "")
	it, err := fiveDays(t).AddStayAcrossDays([]int{0, 1}, hotel)
	require.NoError(t, err)
	it, err = it.AddToDay(0, domain.CategoryFood, item("Brunch", "$30-50", "09:30"))
	require.NoError(t, err)
	it, err = it.AddToDay(4, domain.CategoryActivities, item("Kayak", "$45", "11:00"))
	require.NoError(t, err)

	records := it.Records(tripID)
	require.Len(t, records, 4)
	for _, r := range records {
		assert.Equal(t, tripID, r.TripID)
	}

	back, skipped, err := itinerary.FromRecords(it.Start(), it.End(), records)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, it.Days(), back.Days())
}

func TestFromRecords_RecomputesStayDates(t *testing.T) {
	hotel := item("Grand Hotel", "$200/night", "")
	hotel.IsLocation = true
	hotel.StayDates = []int{0, 1, 2, 3} // stale: only two rows exist

	records := []domain.ItemRecord{
		{DayIndex: 2, Category: domain.CategoryPlaces, Item: hotel},
		{DayIndex: 0, Category: domain.CategoryPlaces, Item: hotel},
	}

	it, _, err := itinerary.FromRecords(date.MustParse("2024-02-15"), date.MustParse("2024-02-19"), records)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2}, placesOn(t, it, 0)[0].StayDates)
	assert.Equal(t, []int{0, 2}, placesOn(t, it, 2)[0].StayDates)
	assert.Empty(t, placesOn(t, it, 1))
}

func TestFromRecords_OrdersByPosition(t *testing.T) {
	a, b := item("first", "", ""), item("second", "", "")
	records := []domain.ItemRecord{
		{DayIndex: 0, Category: domain.CategoryFood, Position: 1, Item: b},
		{DayIndex: 0, Category: domain.CategoryFood, Position: 0, Item: a},
	}

	it, _, err := itinerary.FromRecords(date.MustParse("2024-02-15"), date.MustParse("2024-02-15"), records)
	require.NoError(t, err)

	d, _ := it.Day(0)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID}, ids(d.Items(domain.CategoryFood)))
}

func TestFromRecords_Rejects(t *testing.T) {
	start, end := date.MustParse("2024-02-15"), date.MustParse("2024-02-16")
	x := item("x", "", "")

	_, _, err := itinerary.FromRecords(start, end, []domain.ItemRecord{{DayIndex: 0, Category: "misc", Item: x}})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	_, _, err = itinerary.FromRecords(start, end, []domain.ItemRecord{
		{DayIndex: 0, Category: domain.CategoryFood, Item: x},
		{DayIndex: 0, Category: domain.CategoryFood, Position: 1, Item: x},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateItem)

	_, _, err = itinerary.FromRecords(end, start, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestFromRecords_SkipsRowsOutsideRange(t *testing.T) {
	// Rows left behind after the trip was shortened from five days to two.
	start, end := date.MustParse("2024-02-15"), date.MustParse("2024-02-16")
	lunch := item("Lunch", "$20", "12:00")
	kayak := item("Kayak", "$45", "")
	hotel := item("Grand Hotel", "$200/night", "")
	hotel.IsLocation = true

	records := []domain.ItemRecord{
		{DayIndex: 0, Category: domain.CategoryFood, Item: lunch},
		{DayIndex: 4, Category: domain.CategoryActivities, Item: kayak},
		{DayIndex: 1, Category: domain.CategoryPlaces, Item: hotel},
		{DayIndex: 2, Category: domain.CategoryPlaces, Item: hotel},
		{DayIndex: -1, Category: domain.CategoryFood, Item: item("Ghost", "", "")},
	}

	it, skipped, err := itinerary.FromRecords(start, end, records)

	require.NoError(t, err)
	assert.Len(t, skipped, 3)
	assert.Equal(t, 2, it.Len())

	d0, _ := it.Day(0)
	assert.Equal(t, []uuid.UUID{lunch.ID}, ids(d0.Items(domain.CategoryFood)))
	assert.Equal(t, []int{1}, placesOn(t, it, 1)[0].StayDates)
}
