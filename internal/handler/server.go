// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server and are mounted on a chi router by Routes.
// Methods are split into resource-specific files (health.go, trip.go, etc.) but
// all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, p domain.PaginationParams, filter itinerary.Status) ([]domain.Trip, int64, error)
	Status(trip domain.Trip) itinerary.Status
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlannerServicer defines the itinerary operations the planner handlers depend on.
type PlannerServicer interface {
	View(ctx context.Context, tripID uuid.UUID) (itinerary.View, error)
	AddToDay(ctx context.Context, tripID uuid.UUID, n int, c domain.Category, item domain.Item) (itinerary.View, error)
	AddStay(ctx context.Context, tripID uuid.UUID, days []int, item domain.Item) (itinerary.View, error)
	RemoveFromDay(ctx context.Context, tripID uuid.UUID, n int, c domain.Category, itemID uuid.UUID) (itinerary.View, error)
	RemoveStay(ctx context.Context, tripID, itemID uuid.UUID) (itinerary.View, error)
	Costs(ctx context.Context, tripID uuid.UUID) (domain.Trip, itinerary.Breakdown, error)
	CategoryTotal(ctx context.Context, tripID uuid.UUID, c domain.Category) (decimal.Decimal, error)
	Export(ctx context.Context, tripID uuid.UUID) (domain.Trip, []domain.ExportRow, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips    TripServicer
	planner  PlannerServicer
	currency string
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// currency is the ISO-4217 code used to format amounts for display.
// A nil logger falls back to slog.Default.
func NewServer(trips TripServicer, planner PlannerServicer, currency string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{trips: trips, planner: planner, currency: currency, log: log}
}

// Routes returns a router with every API endpoint registered.
// Cross-cutting middleware is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Post("/complete", s.CompleteTrip)
			r.Post("/expire", s.ExpireTrip)

			r.Get("/itinerary", s.GetItinerary)
			r.Get("/itinerary/export", s.ExportItinerary)
			r.Get("/costs", s.GetCosts)

			r.Post("/days/{day}/items", s.AddDayItem)
			r.Delete("/days/{day}/items/{category}/{itemID}", s.RemoveDayItem)

			r.Post("/stays", s.AddStay)
			r.Delete("/stays/{itemID}", s.RemoveStay)
		})
	})
	return r
}

// ---- helpers ---------------------------------------------------------------

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck: the status line is already sent; nothing useful to do on failure.
	json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into dst. It writes the error response
// itself and returns false when the body cannot be used.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		writeJSON(w, http.StatusBadRequest, requestBody("request body is required"))
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if isTooLarge(err) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: ErrorDetail{
				Code: "body_too_large", Message: "request body too large",
			}})
			return false
		}
		writeJSON(w, http.StatusBadRequest, requestBody("invalid JSON body: "+err.Error()))
		return false
	}
	return true
}

// pathUUID parses a UUID URL parameter, writing a 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid "+name+": must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}
