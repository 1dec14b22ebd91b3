// Package service contains the business logic for the trip planner API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo   repo.TripRepo
	items  repo.ItemRepo
	status *itinerary.StatusResolver
}

// NewTripService constructs a TripService. items is used to drop itinerary
// rows that fall outside a trip's new date range; status labels trips.
func NewTripService(r repo.TripRepo, items repo.ItemRepo, status *itinerary.StatusResolver) *TripService {
	return &TripService{repo: r, items: items, status: status}
}

// Create validates and persists a new trip. A new trip has no completion record.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip = normalizeTrip(trip)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	trip.Completed = nil

	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns one page of trips and the total count. A non-empty filter keeps
// only trips whose current status matches it; status is derived, so the
// filter is applied here rather than in SQL.
func (s *TripService) List(ctx context.Context, p domain.PaginationParams, filter itinerary.Status) ([]domain.Trip, int64, error) {
	if filter == "" {
		trips, total, err := s.repo.ListPaged(ctx, p)
		if err != nil {
			return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
		}
		return trips, total, nil
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	matched := slices.DeleteFunc(all, func(t domain.Trip) bool {
		return !s.status.Resolve(t).Matches(filter)
	})

	total := int64(len(matched))
	lo := min(p.Offset(), len(matched))
	hi := min(lo+p.Limit, len(matched))
	return matched[lo:hi], total, nil
}

// Status returns the trip's current lifecycle status.
func (s *TripService) Status(trip domain.Trip) itinerary.Status {
	return s.status.Resolve(trip)
}

// Update validates and updates an existing trip. When the date range changes,
// items on days past the new last day are removed; the remaining items keep
// their day index, so day 0 is always the new start date.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip = normalizeTrip(trip)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	updated, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	if updated.HasDates() {
		n, err := itinerary.DayCount(updated.StartDate, updated.EndDate)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
		}
		if err := s.items.DeleteFromDay(ctx, updated.ID, n); err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: trim items: %w", err)
		}
	}
	return updated, nil
}

// SetCompleted records whether the trip was completed or let expire.
// Drafts have no end date and cannot be closed out.
func (s *TripService) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.SetCompleted: %w", err)
	}
	if !trip.HasDates() {
		return domain.Trip{}, fmt.Errorf("service.TripService.SetCompleted: %w: trip has no dates", domain.ErrInvalidRange)
	}

	updated, err := s.repo.SetCompleted(ctx, id, completed)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.SetCompleted: %w", err)
	}
	return updated, nil
}

// Delete removes a trip by ID.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// ---- helpers ---------------------------------------------------------------

func normalizeTrip(t domain.Trip) domain.Trip {
	t.Name = strings.TrimSpace(t.Name)
	t.Notes = strings.TrimSpace(t.Notes)

	var dests []string
	for _, d := range t.Destinations {
		if d = strings.TrimSpace(d); d != "" {
			dests = append(dests, d)
		}
	}
	t.Destinations = dests

	costs := make([]domain.FixedCost, len(t.FixedCosts))
	for i, c := range t.FixedCosts {
		c.Name = strings.TrimSpace(c.Name)
		costs[i] = c
	}
	t.FixedCosts = costs
	return t
}

// validateTrip enforces the business rules shared by Create and Update.
func validateTrip(t domain.Trip) error {
	if t.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if t.StartDate.IsZero() != t.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date must be set together", domain.ErrValidation)
	}
	if t.HasDates() {
		n, err := itinerary.DayCount(t.StartDate, t.EndDate)
		if err != nil {
			return err
		}
		if n > itinerary.MaxTripDays {
			return fmt.Errorf("%w: trip spans %d days, at most %d allowed", domain.ErrInvalidRange, n, itinerary.MaxTripDays)
		}
	}
	if t.GroupSize < 0 {
		return fmt.Errorf("%w: group_size must not be negative", domain.ErrValidation)
	}
	for i, c := range t.FixedCosts {
		if c.Name == "" {
			return fmt.Errorf("%w: fixed_costs[%d]: name is required", domain.ErrValidation, i)
		}
		if c.Amount.IsNegative() {
			return fmt.Errorf("%w: fixed_costs[%d]: amount must not be negative", domain.ErrValidation, i)
		}
	}
	return nil
}
