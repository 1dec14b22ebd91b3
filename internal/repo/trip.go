// Package repo contains all database access logic for the trip planner.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/backend/internal/date"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup. Begin on a pgx.Tx opens a
// savepoint, so nested transactions work the same way under test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns all trips, soonest start first, undated trips last.
	List(ctx context.Context) ([]domain.Trip, error)

	// ListPaged returns one page of trips in List order and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the mutable fields of an existing trip and returns the
	// updated record. Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// SetCompleted records whether a finished trip was completed (true) or
	// let expire (false). Returns domain.ErrNotFound if the trip does not exist.
	SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (domain.Trip, error)

	// Delete removes a trip and its itinerary. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, name, start_date, end_date, destinations, group_size, fixed_costs, completed, notes, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (name, start_date, end_date, destinations, group_size, fixed_costs, completed, notes)
		VALUES (@name, @start_date, @end_date, @destinations, @group_size, @fixed_costs, @completed, @notes)
		RETURNING ` + tripColumns

	args, err := tripArgs(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips ordered by start_date, undated drafts last.
func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY start_date ASC NULLS LAST, created_at ASC`

	trips, err := r.queryTrips(ctx, q, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, nil
}

// ListPaged returns one page of trips and the total number of trips.
func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		ORDER BY start_date ASC NULLS LAST, created_at ASC
		LIMIT @limit OFFSET @offset`

	trips, err := r.queryTrips(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	return trips, total, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
// The completion record is not touched; use SetCompleted.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET name         = @name,
		    start_date   = @start_date,
		    end_date     = @end_date,
		    destinations = @destinations,
		    group_size   = @group_size,
		    fixed_costs  = @fixed_costs,
		    notes        = @notes,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args, err := tripArgs(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	args["id"] = trip.ID

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// SetCompleted stores the completion record of a trip.
func (r *pgTripRepo) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET completed = @completed, updated_at = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "completed": completed}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.SetCompleted: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key. Items go with it (ON DELETE CASCADE).
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) queryTrips(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Trip, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

// tripArgs maps the writable trip fields to named query arguments.
// Zero dates become NULL; fixed costs are stored as a JSON array.
func tripArgs(trip domain.Trip) (pgx.NamedArgs, error) {
	costs := trip.FixedCosts
	if costs == nil {
		costs = []domain.FixedCost{}
	}
	fixed, err := json.Marshal(costs)
	if err != nil {
		return nil, fmt.Errorf("encode fixed costs: %w", err)
	}
	destinations := trip.Destinations
	if destinations == nil {
		destinations = []string{}
	}
	return pgx.NamedArgs{
		"name":         trip.Name,
		"start_date":   dateArg(trip.StartDate),
		"end_date":     dateArg(trip.EndDate),
		"destinations": destinations,
		"group_size":   trip.GroupSize,
		"fixed_costs":  fixed,
		"completed":    trip.Completed, // nil becomes NULL
		"notes":        trip.Notes,
	}, nil
}

// dateArg returns nil for an unset date so it is stored as NULL.
func dateArg(d date.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.Time()
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID, nullable date, and JSON fixed-cost conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
		fixed     []byte
	)

	err := s.Scan(&id, &t.Name, &startDate, &endDate, &t.Destinations, &t.GroupSize,
		&fixed, &t.Completed, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	if startDate.Valid {
		t.StartDate = date.Of(startDate.Time)
	}
	if endDate.Valid {
		t.EndDate = date.Of(endDate.Time)
	}
	if len(fixed) > 0 {
		if err := json.Unmarshal(fixed, &t.FixedCosts); err != nil {
			return domain.Trip{}, fmt.Errorf("decode fixed costs: %w", err)
		}
	}
	return t, nil
}
