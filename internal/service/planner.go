package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// PlannerService edits and reads a trip's itinerary. Every call loads the
// trip and its items, rebuilds the itinerary, applies at most one change,
// writes the new snapshot back and returns a fresh View.
type PlannerService struct {
	trips  repo.TripRepo
	items  repo.ItemRepo
	status *itinerary.StatusResolver
	log    *slog.Logger
}

// NewPlannerService constructs a PlannerService. A nil logger discards output.
func NewPlannerService(trips repo.TripRepo, items repo.ItemRepo, status *itinerary.StatusResolver, log *slog.Logger) *PlannerService {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &PlannerService{trips: trips, items: items, status: status, log: log}
}

// View returns the full itinerary view of a trip.
func (s *PlannerService) View(ctx context.Context, tripID uuid.UUID) (itinerary.View, error) {
	trip, it, err := s.load(ctx, tripID)
	if err != nil {
		return itinerary.View{}, fmt.Errorf("service.PlannerService.View: %w", err)
	}
	return itinerary.BuildView(trip, it, s.status.Resolve(trip)), nil
}

// AddToDay puts item into one category list of day n.
func (s *PlannerService) AddToDay(ctx context.Context, tripID uuid.UUID, n int, c domain.Category, item domain.Item) (itinerary.View, error) {
	item, err := normalizeItem(item)
	if err != nil {
		return itinerary.View{}, fmt.Errorf("service.PlannerService.AddToDay: %w", err)
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	v, err := s.mutate(ctx, tripID, "add_to_day", func(it itinerary.Itinerary) (itinerary.Itinerary, error) {
		return it.AddToDay(n, c, item)
	}, slog.Int("day", n), slog.String("category", string(c)), slog.String("item_id", item.ID.String()))
	if err != nil {
		return itinerary.View{}, fmt.Errorf("service.PlannerService.AddToDay: %w", err)
	}
	return v, nil
}

// AddStay assigns a lodging item to every day in days.
func (s *PlannerService) AddStay(ctx context.Context, tripID uuid.UUID, days []int, item domain.Item) (itinerary.View, error) {
	item, err := normalizeItem(item)
	if err != nil {
		return itinerary.View{}, fmt.Errorf("service.PlannerService.AddStay: %w", err)
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	v, err := s.mutate(ctx, tripID, "add_stay", func(it itinerary.Itinerary) (itinerary.Itinerary, error) {
		return it.AddStayAcrossDays(days, item)
	}, slog.Any("days", days), slog.String("item_id", item.ID.String()))
	if err != nil {
		return itinerary.View{}, fmt.Errorf("service.PlannerService.AddStay: %w", err)
	}
	return v, nil
}

// RemoveFromDay removes one item from one day. Removing an item that is not
// there succeeds and changes nothing.
func (s *PlannerService) RemoveFromDay(ctx context.Context, tripID uuid.UUID, n int, c domain.Category, itemID uuid.UUID) (itinerary.View, error) {
	v, err := s.mutate(ctx, tripID, "remove_from_day", func(it itinerary.Itinerary) (itinerary.Itinerary, error) {
		return it.RemoveFromDay(n, c, itemID)
	}, slog.Int("day", n), slog.String("category", string(c)), slog.String("item_id", itemID.String()))
	if err != nil {
		return itinerary.View{}, fmt.Errorf("service.PlannerService.RemoveFromDay: %w", err)
	}
	return v, nil
}

// RemoveStay removes a stay from every day it covers.
func (s *PlannerService) RemoveStay(ctx context.Context, tripID, itemID uuid.UUID) (itinerary.View, error) {
	v, err := s.mutate(ctx, tripID, "remove_stay", func(it itinerary.Itinerary) (itinerary.Itinerary, error) {
		return it.RemoveStay(itemID), nil
	}, slog.String("item_id", itemID.String()))
	if err != nil {
		return itinerary.View{}, fmt.Errorf("service.PlannerService.RemoveStay: %w", err)
	}
	return v, nil
}

// Costs returns the trip and its full cost breakdown.
func (s *PlannerService) Costs(ctx context.Context, tripID uuid.UUID) (domain.Trip, itinerary.Breakdown, error) {
	trip, it, err := s.load(ctx, tripID)
	if err != nil {
		return domain.Trip{}, itinerary.Breakdown{}, fmt.Errorf("service.PlannerService.Costs: %w", err)
	}
	return trip, itinerary.Aggregate(it, trip.FixedCosts), nil
}

// CategoryTotal returns the total of one category across all days.
func (s *PlannerService) CategoryTotal(ctx context.Context, tripID uuid.UUID, c domain.Category) (decimal.Decimal, error) {
	if !c.Valid() {
		return decimal.Zero, fmt.Errorf("service.PlannerService.CategoryTotal: %w: %q", domain.ErrInvalidCategory, c)
	}
	_, it, err := s.load(ctx, tripID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("service.PlannerService.CategoryTotal: %w", err)
	}
	return itinerary.CategoryTotal(it, c), nil
}

// ---- helpers ---------------------------------------------------------------

// load fetches the trip and its item rows in parallel and rebuilds the
// itinerary. A draft trip yields the zero Itinerary.
func (s *PlannerService) load(ctx context.Context, tripID uuid.UUID) (domain.Trip, itinerary.Itinerary, error) {
	var (
		trip    domain.Trip
		records []domain.ItemRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trip, err = s.trips.GetByID(gctx, tripID)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.items.ListByTripID(gctx, tripID)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Trip{}, itinerary.Itinerary{}, err
	}

	if !trip.HasDates() {
		return trip, itinerary.Itinerary{}, nil
	}
	it, skipped, err := itinerary.FromRecords(trip.StartDate, trip.EndDate, records)
	if err != nil {
		return domain.Trip{}, itinerary.Itinerary{}, fmt.Errorf("rebuild itinerary: %w", err)
	}
	if len(skipped) > 0 {
		s.log.LogAttrs(ctx, slog.LevelWarn, "items outside trip range ignored",
			slog.String("trip_id", tripID.String()),
			slog.Int("count", len(skipped)),
			slog.Int("days", it.Len()),
		)
	}
	return trip, it, nil
}

// mutate runs one itinerary change and persists the result. Nothing is
// written when op fails.
func (s *PlannerService) mutate(ctx context.Context, tripID uuid.UUID, name string, op func(itinerary.Itinerary) (itinerary.Itinerary, error), attrs ...slog.Attr) (itinerary.View, error) {
	trip, it, err := s.load(ctx, tripID)
	if err != nil {
		return itinerary.View{}, err
	}
	if !trip.HasDates() {
		return itinerary.View{}, fmt.Errorf("%w: trip has no dates yet", domain.ErrInvalidRange)
	}

	next, err := op(it)
	if err != nil {
		return itinerary.View{}, err
	}

	records := next.Records(trip.ID)
	if err := s.items.ReplaceForTrip(ctx, trip.ID, records); err != nil {
		return itinerary.View{}, fmt.Errorf("persist: %w", err)
	}
	attrs = append(attrs,
		slog.String("op", name),
		slog.String("trip_id", trip.ID.String()),
		slog.Int("items", len(records)),
	)
	s.log.LogAttrs(ctx, slog.LevelDebug, "itinerary updated", attrs...)
	return itinerary.BuildView(trip, next, s.status.Resolve(trip)), nil
}

var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// normalizeItem trims an incoming item and checks the fields the itinerary
// relies on.
func normalizeItem(item domain.Item) (domain.Item, error) {
	item.Name = strings.TrimSpace(item.Name)
	item.Location = strings.TrimSpace(item.Location)
	item.Price = strings.TrimSpace(item.Price)
	item.Time = strings.TrimSpace(item.Time)

	if item.Name == "" {
		return domain.Item{}, fmt.Errorf("%w: item name is required", domain.ErrValidation)
	}
	if item.Time != "" && !timePattern.MatchString(item.Time) {
		return domain.Item{}, fmt.Errorf("%w: time %q must be HH:MM", domain.ErrValidation, item.Time)
	}
	if item.Rating != nil && (*item.Rating < 0 || *item.Rating > 5) {
		return domain.Item{}, fmt.Errorf("%w: rating must be between 0 and 5", domain.ErrValidation)
	}
	return item, nil
}
