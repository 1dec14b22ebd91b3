package handler

import (
	"time"

	"github.com/Rhymond/go-money"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/backend/internal/date"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
)

// ---- requests --------------------------------------------------------------

// TripRequest is the body of POST /trips and PUT /trips/{id}.
type TripRequest struct {
	Name         string              `json:"name"`
	StartDate    *openapi_types.Date `json:"start_date"`
	EndDate      *openapi_types.Date `json:"end_date"`
	Destinations []string            `json:"destinations"`
	GroupSize    int                 `json:"group_size"`
	FixedCosts   []FixedCostRequest  `json:"fixed_costs"`
	Notes        *string             `json:"notes"`
}

// FixedCostRequest accepts the amount as a JSON string or number.
type FixedCostRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// ItemRequest is an item as sent by the client. Id is optional; the server
// assigns one when it is missing.
type ItemRequest struct {
	Id       *openapi_types.UUID `json:"id"`
	Name     string              `json:"name"`
	Location string              `json:"location"`
	Price    string              `json:"price"`
	Rating   *float64            `json:"rating"`
	Time     string              `json:"time"`
}

// AddDayItemRequest is the body of POST /trips/{id}/days/{day}/items.
type AddDayItemRequest struct {
	Category string      `json:"category"`
	Item     ItemRequest `json:"item"`
}

// AddStayRequest is the body of POST /trips/{id}/stays.
type AddStayRequest struct {
	Days []int      `json:"days"`
	Item ItemRequest `json:"item"`
}

// ---- responses -------------------------------------------------------------

// Money is an amount as an exact decimal string plus a display form in the
// configured currency, e.g. {"amount":"1234.50","display":"$1,234.50"}.
type Money struct {
	Amount  string `json:"amount"`
	Display string `json:"display"`
}

// TripResponse is the JSON form of a trip.
type TripResponse struct {
	Id           openapi_types.UUID  `json:"id"`
	Name         string              `json:"name"`
	StartDate    *openapi_types.Date `json:"start_date"`
	EndDate      *openapi_types.Date `json:"end_date"`
	Destinations []string            `json:"destinations"`
	GroupSize    int                 `json:"group_size"`
	FixedCosts   []FixedCostResponse `json:"fixed_costs"`
	Status       string              `json:"status"`
	Completed    *bool               `json:"completed,omitempty"`
	Notes        *string             `json:"notes,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// FixedCostResponse is one fixed cost with a formatted amount.
type FixedCostResponse struct {
	Name   string `json:"name"`
	Amount Money  `json:"amount"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripListResponse is the body of GET /trips.
type TripListResponse struct {
	Data       []TripResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// ItemResponse is an item with its price read into numbers.
type ItemResponse struct {
	Id          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	Location    string             `json:"location,omitempty"`
	Price       string             `json:"price"`
	Amount      Money              `json:"amount"`
	PriceParsed bool               `json:"price_parsed"`
	Unit        string             `json:"unit,omitempty"`
	Rating      *float64           `json:"rating,omitempty"`
	Time        string             `json:"time,omitempty"`
	StayDates   []int              `json:"stay_dates,omitempty"`
	IsLocation  bool               `json:"is_location"`
	// StayTotal is the per-unit price times the nights covered; stays only.
	StayTotal *Money `json:"stay_total,omitempty"`
}

// TimelineEntry is one item of a day's chronological timeline.
type TimelineEntry struct {
	Category string       `json:"category"`
	Item     ItemResponse `json:"item"`
}

// DayResponse is one day of the itinerary.
type DayResponse struct {
	Index          int                `json:"index"`
	Date           openapi_types.Date `json:"date"`
	Activities     []ItemResponse     `json:"activities"`
	Places         []ItemResponse     `json:"places"`
	Food           []ItemResponse     `json:"food"`
	Transportation []ItemResponse     `json:"transportation"`
	Timeline       []TimelineEntry    `json:"timeline"`
}

// CostsResponse is the cost breakdown of a trip.
type CostsResponse struct {
	Currency       string              `json:"currency"`
	Activities     Money               `json:"activities"`
	Accommodation  Money               `json:"accommodation"`
	Food           Money               `json:"food"`
	Transportation Money               `json:"transportation"`
	FixedCosts     []FixedCostResponse `json:"fixed_costs"`
	Fixed          Money               `json:"fixed"`
	GrandTotal     Money               `json:"grand_total"`
	PerPerson      *Money              `json:"per_person,omitempty"`
	Unparsed       int                 `json:"unparsed_items"`
}

// CategoryTotalResponse is the body of GET /trips/{id}/costs?category=.
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Total    Money  `json:"total"`
}

// ItineraryResponse is the full view of a trip.
type ItineraryResponse struct {
	Trip   TripResponse  `json:"trip"`
	Status string        `json:"status"`
	Days   []DayResponse `json:"days"`
	Costs  CostsResponse `json:"costs"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// ---- mapping helpers -------------------------------------------------------

// requestToTrip converts a TripRequest into a domain.Trip. Validation is
// left to the service.
func requestToTrip(body TripRequest) domain.Trip {
	t := domain.Trip{
		Name:         body.Name,
		StartDate:    fromAPIDate(body.StartDate),
		EndDate:      fromAPIDate(body.EndDate),
		Destinations: body.Destinations,
		GroupSize:    body.GroupSize,
	}
	for _, c := range body.FixedCosts {
		t.FixedCosts = append(t.FixedCosts, domain.FixedCost{Name: c.Name, Amount: c.Amount})
	}
	if body.Notes != nil {
		t.Notes = *body.Notes
	}
	return t
}

func requestToItem(body ItemRequest) domain.Item {
	item := domain.Item{
		Name:     body.Name,
		Location: body.Location,
		Price:    body.Price,
		Rating:   body.Rating,
		Time:     body.Time,
	}
	if body.Id != nil {
		item.ID = *body.Id
	}
	return item
}

func (s *Server) tripToResponse(t domain.Trip, status itinerary.Status) TripResponse {
	resp := TripResponse{
		Id:           t.ID,
		Name:         t.Name,
		StartDate:    toAPIDate(t.StartDate),
		EndDate:      toAPIDate(t.EndDate),
		Destinations: t.Destinations,
		GroupSize:    t.GroupSize,
		FixedCosts:   s.fixedCostsToResponse(t.FixedCosts),
		Status:       string(status),
		Completed:    t.Completed,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if resp.Destinations == nil {
		resp.Destinations = []string{}
	}
	if t.Notes != "" {
		resp.Notes = &t.Notes
	}
	return resp
}

func (s *Server) fixedCostsToResponse(costs []domain.FixedCost) []FixedCostResponse {
	out := make([]FixedCostResponse, len(costs))
	for i, c := range costs {
		out[i] = FixedCostResponse{Name: c.Name, Amount: s.money(c.Amount)}
	}
	return out
}

func (s *Server) itemToResponse(item domain.Item) ItemResponse {
	p := itinerary.NormalizePrice(item.Price)
	resp := ItemResponse{
		Id:          item.ID,
		Name:        item.Name,
		Location:    item.Location,
		Price:       item.Price,
		Amount:      s.money(p.Amount),
		PriceParsed: p.WasParsed,
		Unit:        p.Unit,
		Rating:      item.Rating,
		Time:        item.Time,
		StayDates:   item.StayDates,
		IsLocation:  item.IsLocation,
	}
	if item.IsStay() {
		total := s.money(itinerary.StayTotal(item))
		resp.StayTotal = &total
	}
	return resp
}

func (s *Server) itemsToResponse(items []domain.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = s.itemToResponse(item)
	}
	return out
}

func (s *Server) costsToResponse(b itinerary.Breakdown, groupSize int) CostsResponse {
	resp := CostsResponse{
		Currency:       s.currency,
		Activities:     s.money(b.Activities),
		Accommodation:  s.money(b.Accommodation),
		Food:           s.money(b.Food),
		Transportation: s.money(b.Transportation),
		FixedCosts:     s.fixedCostsToResponse(b.FixedCosts),
		Fixed:          s.money(b.Fixed),
		GrandTotal:     s.money(b.GrandTotal),
		Unparsed:       b.Unparsed,
	}
	if pp, ok := b.PerPerson(groupSize); ok {
		m := s.money(pp)
		resp.PerPerson = &m
	}
	return resp
}

func (s *Server) viewToResponse(v itinerary.View) ItineraryResponse {
	resp := ItineraryResponse{
		Trip:   s.tripToResponse(v.Trip, v.Status),
		Status: string(v.Status),
		Days:   make([]DayResponse, len(v.Days)),
		Costs:  s.costsToResponse(v.Costs, v.Trip.GroupSize),
	}
	for i, d := range v.Days {
		day := DayResponse{
			Index:          d.Index,
			Date:           openapi_types.Date{Time: d.Date.Time()},
			Activities:     s.itemsToResponse(d.Lists[domain.CategoryActivities]),
			Places:         s.itemsToResponse(d.Lists[domain.CategoryPlaces]),
			Food:           s.itemsToResponse(d.Lists[domain.CategoryFood]),
			Transportation: s.itemsToResponse(d.Lists[domain.CategoryTransportation]),
			Timeline:       make([]TimelineEntry, len(d.Timeline)),
		}
		for j, e := range d.Timeline {
			day.Timeline[j] = TimelineEntry{Category: string(e.Category), Item: s.itemToResponse(e.Item)}
		}
		resp.Days[i] = day
	}
	return resp
}

// money formats an amount in the server's currency. Amounts are rounded to
// the currency's minor unit for display only; Amount keeps two places.
func (s *Server) money(amount decimal.Decimal) Money {
	m := Money{Amount: amount.StringFixed(2)}
	cur := money.GetCurrency(s.currency)
	if cur == nil {
		m.Display = m.Amount
		return m
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	m.Display = money.New(minor, cur.Code).Display()
	return m
}

func toAPIDate(d date.Date) *openapi_types.Date {
	if d.IsZero() {
		return nil
	}
	return &openapi_types.Date{Time: d.Time()}
}

func fromAPIDate(d *openapi_types.Date) date.Date {
	if d == nil {
		return date.Date{}
	}
	return date.Of(d.Time)
}
