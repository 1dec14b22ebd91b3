package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// GetItinerary handles GET /trips/{id}/itinerary.
// The response holds every day with its four lists and merged timeline,
// the cost breakdown and the trip's status.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	v, err := s.planner.View(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, s.viewToResponse(v))
}

// GetCosts handles GET /trips/{id}/costs.
// With ?category= only that category is totalled.
func (s *Server) GetCosts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if raw := r.URL.Query().Get("category"); raw != "" {
		c, err := domain.ParseCategory(raw)
		if err != nil {
			s.writeError(w, r, "trip", err)
			return
		}
		total, err := s.planner.CategoryTotal(r.Context(), id, c)
		if err != nil {
			s.writeError(w, r, "trip", err)
			return
		}
		writeJSON(w, http.StatusOK, CategoryTotalResponse{Category: string(c), Total: s.money(total)})
		return
	}

	trip, b, err := s.planner.Costs(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, s.costsToResponse(b, trip.GroupSize))
}

// AddDayItem handles POST /trips/{id}/days/{day}/items.
func (s *Server) AddDayItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	day, ok := pathDay(w, r)
	if !ok {
		return
	}
	var body AddDayItemRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	c, err := domain.ParseCategory(body.Category)
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}

	v, err := s.planner.AddToDay(r.Context(), id, day, c, requestToItem(body.Item))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusCreated, s.viewToResponse(v))
}

// RemoveDayItem handles DELETE /trips/{id}/days/{day}/items/{category}/{itemID}.
// Removing an item that is not on that day succeeds.
func (s *Server) RemoveDayItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	day, ok := pathDay(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}
	c, err := domain.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}

	v, err := s.planner.RemoveFromDay(r.Context(), id, day, c, itemID)
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, s.viewToResponse(v))
}

// AddStay handles POST /trips/{id}/stays.
func (s *Server) AddStay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body AddStayRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	v, err := s.planner.AddStay(r.Context(), id, body.Days, requestToItem(body.Item))
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusCreated, s.viewToResponse(v))
}

// RemoveStay handles DELETE /trips/{id}/stays/{itemID}.
func (s *Server) RemoveStay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	v, err := s.planner.RemoveStay(r.Context(), id, itemID)
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}
	writeJSON(w, http.StatusOK, s.viewToResponse(v))
}

// pathDay parses the {day} URL parameter. Range checks happen in the
// itinerary, which knows the trip length.
func pathDay(w http.ResponseWriter, r *http.Request) (int, bool) {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("day must be an integer"))
		return 0, false
	}
	return day, true
}
