package itinerary

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// NormalizedPrice is the numeric reading of a free-form price string.
//
// WasParsed separates a real "$0"/"Free" from a price nobody could read:
// both have a zero Amount, but only the latter should render as "price unknown".
// Unit holds the per-unit suffix ("night", "day") when the price had one;
// Amount is always the per-unit figure and is never multiplied here.
type NormalizedPrice struct {
	Amount    decimal.Decimal
	WasParsed bool
	Unit      string
}

var (
	two = decimal.NewFromInt(2)

	// $N, $N-M, $N/unit and $N-M/unit. The dollar sign is optional on both
	// ends of a range, thousands separators are allowed.
	pricePattern = regexp.MustCompile(
		`^\$?\s*(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?)` +
			`(?:\s*-\s*\$?\s*(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?))?` +
			`(?:\s*/\s*([A-Za-z]+))?$`,
	)
)

// NormalizePrice parses a price string. It never fails: anything it does not
// recognise comes back as {0, false}.
//
//	"Free", "", "  "  -> 0, parsed
//	"$25"             -> 25
//	"$10-20"          -> 15 (midpoint)
//	"$120/night"      -> 120, unit "night"
func NormalizePrice(s string) NormalizedPrice {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "free") {
		return NormalizedPrice{Amount: decimal.Zero, WasParsed: true}
	}

	m := pricePattern.FindStringSubmatch(s)
	if m == nil {
		return NormalizedPrice{Amount: decimal.Zero}
	}

	low, err := parseAmount(m[1])
	if err != nil {
		return NormalizedPrice{Amount: decimal.Zero}
	}
	amount := low
	if m[2] != "" {
		high, err := parseAmount(m[2])
		if err != nil {
			return NormalizedPrice{Amount: decimal.Zero}
		}
		amount = low.Add(high).Div(two)
	}

	return NormalizedPrice{
		Amount:    amount,
		WasParsed: true,
		Unit:      strings.ToLower(m[3]),
	}
}

func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}

// StayTotal returns what a stay costs over all of its nights: a per-unit price
// times the number of days the stay covers. Any other item costs its plain
// normalized amount.
//
// Aggregate never calls this; totals count the unit amount once. It exists for
// callers that want the "nights x rate" figure next to an item.
func StayTotal(item domain.Item) decimal.Decimal {
	p := NormalizePrice(item.Price)
	if p.Unit == "" || !item.IsStay() {
		return p.Amount
	}
	return p.Amount.Mul(decimal.NewFromInt(int64(len(item.StayDates))))
}
