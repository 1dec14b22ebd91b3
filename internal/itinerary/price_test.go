package itinerary_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
)

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		in     string
		amount string
		parsed bool
		unit   string
	}{
		{"Free", "0", true, ""},
		{"free", "0", true, ""},
		{"", "0", true, ""},
		{"   ", "0", true, ""},
		{"$0", "0", true, ""},
		{"$25", "25", true, ""},
		{"$12.50", "12.5", true, ""},
		{"25", "25", true, ""},
		{"$1,200", "1200", true, ""},
		{"$10-20", "15", true, ""},
		{"$30-50", "40", true, ""},
		{"$10 - $25", "17.5", true, ""},
		{"$120/night", "120", true, "night"},
		{"$80 / Day", "80", true, "day"},
		{"$100-150/night", "125", true, "night"},
		{"abc", "0", false, ""},
		{"Call for pricing", "0", false, ""},
		{"$", "0", false, ""},
		{"$-5", "0", false, ""},
		{"€20", "0", false, ""},
		{"$20 per person", "0", false, ""},
		{"$1,20", "0", false, ""},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got := itinerary.NormalizePrice(tc.in)

			assert.True(t, decimal.RequireFromString(tc.amount).Equal(got.Amount),
				"amount: want %s got %s", tc.amount, got.Amount)
			assert.Equal(t, tc.parsed, got.WasParsed)
			assert.Equal(t, tc.unit, got.Unit)
		})
	}
}

// Every range "$N-M" normalizes to its midpoint.
func TestNormalizePrice_RangeMidpoint(t *testing.T) {
	for n := 0; n <= 60; n += 7 {
		for m := n; m <= 120; m += 13 {
			got := itinerary.NormalizePrice("$" + decimal.NewFromInt(int64(n)).String() + "-" + decimal.NewFromInt(int64(m)).String())

			want := decimal.NewFromInt(int64(n + m)).Div(decimal.NewFromInt(2))
			assert.True(t, want.Equal(got.Amount), "$%d-%d: want %s got %s", n, m, want, got.Amount)
			assert.True(t, got.WasParsed)
		}
	}
}

func TestNormalizePrice_NeverPanics(t *testing.T) {
	inputs := []string{"\x00", "$$$", "$1e9", "$9999999999999999999999999", "-", "/night", "$.5", "１２"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { itinerary.NormalizePrice(in) }, in)
	}
}

func TestStayTotal(t *testing.T) {
	hotel := domain.Item{ID: uuid.New(), Price: "$120/night", StayDates: []int{0, 1, 2}, IsLocation: true}
	flat := domain.Item{ID: uuid.New(), Price: "$300", StayDates: []int{0, 1}, IsLocation: true}
	single := domain.Item{ID: uuid.New(), Price: "$120/night"}

	assert.True(t, decimal.NewFromInt(360).Equal(itinerary.StayTotal(hotel)))
	assert.True(t, decimal.NewFromInt(300).Equal(itinerary.StayTotal(flat)))
	assert.True(t, decimal.NewFromInt(120).Equal(itinerary.StayTotal(single)))
}
