package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
)

// Export returns the trip's itinerary as flat rows: one per item per day in
// chronological order, plus one empty row for every day with nothing planned.
// A draft trip exports no rows.
func (s *PlannerService) Export(ctx context.Context, tripID uuid.UUID) (domain.Trip, []domain.ExportRow, error) {
	trip, it, err := s.load(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.PlannerService.Export: %w", err)
	}
	v := itinerary.BuildView(trip, it, s.status.Resolve(trip))
	return trip, itinerary.Export(v), nil
}
