package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ItemRepo defines the persistence operations for itinerary items.
// Items are stored flat, one row per item per day; the itinerary package
// rebuilds the day-indexed structure from them.
type ItemRepo interface {
	// ListByTripID returns every item row of a trip ordered by day, category
	// and position. A trip with no items returns an empty slice, not an error.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.ItemRecord, error)

	// ReplaceForTrip swaps the full set of rows for a trip in one transaction.
	// Concurrent writers are last-write-wins.
	ReplaceForTrip(ctx context.Context, tripID uuid.UUID, records []domain.ItemRecord) error

	// DeleteFromDay removes every row on day n or later. It is used when a
	// trip's date range shrinks.
	DeleteFromDay(ctx context.Context, tripID uuid.UUID, n int) error
}

// pgItemRepo is the Postgres implementation of ItemRepo.
type pgItemRepo struct {
	db db
}

// NewItemRepo constructs an ItemRepo backed by the provided db connection.
func NewItemRepo(db db) ItemRepo {
	return &pgItemRepo{db: db}
}

var itemCopyColumns = []string{
	"trip_id", "day_index", "category", "position", "item_id",
	"name", "location", "price", "rating", "start_time", "is_location",
}

// ListByTripID returns all item rows for a trip.
func (r *pgItemRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.ItemRecord, error) {
	const q = `
		SELECT trip_id, day_index, category, position, item_id,
		       name, location, price, rating, start_time, is_location
		FROM itinerary_items
		WHERE trip_id = @trip_id
		ORDER BY day_index ASC, category ASC, position ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	records := []domain.ItemRecord{}
	for rows.Next() {
		rec, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ItemRepo.ListByTripID: scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByTripID: rows: %w", err)
	}
	return records, nil
}

// ReplaceForTrip deletes the trip's rows and bulk-inserts records with COPY,
// both inside a single transaction.
func (r *pgItemRepo) ReplaceForTrip(ctx context.Context, tripID uuid.UUID, records []domain.ItemRecord) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM itinerary_items WHERE trip_id = @trip_id`,
			pgx.NamedArgs{"trip_id": tripID}); err != nil {
			return fmt.Errorf("delete: %w", err)
		}
		if len(records) == 0 {
			return nil
		}

		_, err := tx.CopyFrom(ctx, pgx.Identifier{"itinerary_items"}, itemCopyColumns,
			pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
				rec := records[i]
				return []any{
					tripID, rec.DayIndex, string(rec.Category), rec.Position, rec.Item.ID,
					rec.Item.Name, rec.Item.Location, rec.Item.Price, rec.Item.Rating,
					rec.Item.Time, rec.Item.IsLocation,
				}, nil
			}))
		if err != nil {
			return fmt.Errorf("copy: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("repo.ItemRepo.ReplaceForTrip: %w", err)
	}
	return nil
}

// DeleteFromDay removes all rows with day_index >= n.
func (r *pgItemRepo) DeleteFromDay(ctx context.Context, tripID uuid.UUID, n int) error {
	const q = `DELETE FROM itinerary_items WHERE trip_id = @trip_id AND day_index >= @n`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "n": n}); err != nil {
		return fmt.Errorf("repo.ItemRepo.DeleteFromDay: %w", err)
	}
	return nil
}

// scanItem maps one itinerary_items row into a domain.ItemRecord.
// StayDates is left empty; it is derived from the rows when the
// itinerary is rebuilt.
func scanItem(s scanner) (domain.ItemRecord, error) {
	var (
		rec      domain.ItemRecord
		tripID   pgtype.UUID
		itemID   pgtype.UUID
		category string
		rating   pgtype.Float8
	)

	err := s.Scan(&tripID, &rec.DayIndex, &category, &rec.Position, &itemID,
		&rec.Item.Name, &rec.Item.Location, &rec.Item.Price, &rating,
		&rec.Item.Time, &rec.Item.IsLocation)
	if err != nil {
		return domain.ItemRecord{}, err
	}

	rec.TripID = uuid.UUID(tripID.Bytes)
	rec.Item.ID = uuid.UUID(itemID.Bytes)
	rec.Category = domain.Category(category)
	if rating.Valid {
		v := rating.Float64
		rec.Item.Rating = &v
	}
	return rec, nil
}
