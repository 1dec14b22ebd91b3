package handler

import (
	"net/http"
	"strconv"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/itinerary"
)

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body TripRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	created, err := s.trips.Create(r.Context(), requestToTrip(body))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusCreated, s.tripToResponse(created, s.trips.Status(created)))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100) and
// ?status= to keep only trips currently in that status.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, ok := queryInt(w, q.Get("page"), "page")
	if !ok {
		return
	}
	limit, ok := queryInt(w, q.Get("limit"), "limit")
	if !ok {
		return
	}

	var filter itinerary.Status
	if raw := q.Get("status"); raw != "" {
		st, err := itinerary.ParseStatus(raw)
		if err != nil {
			s.writeError(w, r, "trip", err)
			return
		}
		filter = st
	}

	params := domain.NewPaginationParams(page, limit)
	trips, total, err := s.trips.List(r.Context(), params, filter)
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}

	data := make([]TripResponse, len(trips))
	for i, t := range trips {
		data[i] = s.tripToResponse(t, s.trips.Status(t))
	}
	writeJSON(w, http.StatusOK, TripListResponse{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, s.tripToResponse(trip, s.trips.Status(trip)))
}

// UpdateTrip handles PUT /trips/{id}.
// Shrinking the date range drops items on days that no longer exist.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body TripRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	trip := requestToTrip(body)
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, s.tripToResponse(updated, s.trips.Status(updated)))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteTrip handles POST /trips/{id}/complete.
func (s *Server) CompleteTrip(w http.ResponseWriter, r *http.Request) {
	s.setCompleted(w, r, true)
}

// ExpireTrip handles POST /trips/{id}/expire.
func (s *Server) ExpireTrip(w http.ResponseWriter, r *http.Request) {
	s.setCompleted(w, r, false)
}

func (s *Server) setCompleted(w http.ResponseWriter, r *http.Request, completed bool) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	trip, err := s.trips.SetCompleted(r.Context(), id, completed)
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, s.tripToResponse(trip, s.trips.Status(trip)))
}

// queryInt parses an optional integer query parameter. An empty value is nil.
func queryInt(w http.ResponseWriter, raw, name string) (*int, bool) {
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(name+" must be an integer"))
		return nil, false
	}
	return &n, true
}
