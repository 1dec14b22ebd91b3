package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"day", "date", "time", "category", "name", "location", "price", "amount", "price_parsed",
}

// ExportRowResponse is one row of the JSON export.
type ExportRowResponse struct {
	Day         int    `json:"day"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Category    string `json:"category,omitempty"`
	Name        string `json:"name,omitempty"`
	Location    string `json:"location,omitempty"`
	Price       string `json:"price,omitempty"`
	Amount      string `json:"amount,omitempty"`
	PriceParsed bool   `json:"price_parsed"`
}

// ExportItinerary handles GET /trips/{id}/itinerary/export.
// Every day of the trip appears; items are in timeline order.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "csv" && format != "json" {
		writeJSON(w, http.StatusBadRequest, requestBody("format must be csv or json"))
		return
	}

	trip, rows, err := s.planner.Export(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "trip", err)
		return
	}

	if format == "csv" {
		writeCSV(w, exportFilename(trip.Name), rows)
		return
	}

	out := make([]ExportRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRowToResponse(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as a CSV attachment.
func writeCSV(w http.ResponseWriter, filename string, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck: bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}

// domainRowToResponse maps a domain.ExportRow to its JSON form.
// Placeholder rows for empty days carry only the day fields.
func domainRowToResponse(r domain.ExportRow) ExportRowResponse {
	return ExportRowResponse{
		Day:         r.DayIndex,
		Date:        r.Date,
		Time:        r.Time,
		Category:    r.Category,
		Name:        r.Name,
		Location:    r.Location,
		Price:       r.Price,
		Amount:      r.Amount,
		PriceParsed: r.Parsed,
	}
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Days are numbered from 1 in CSV, which is what people open it for.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	parsed := ""
	if r.Name != "" {
		parsed = strconv.FormatBool(r.Parsed)
	}
	return []string{
		strconv.Itoa(r.DayIndex),
		r.Date,
		r.Time,
		r.Category,
		r.Name,
		r.Location,
		r.Price,
		r.Amount,
		parsed,
	}
}

// exportFilename turns a trip name into a safe attachment name,
// e.g. "Rajasthan Loop!" becomes "rajasthan-loop-itinerary.csv".
func exportFilename(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if 'a' <= r && r <= 'z' || '0' <= r && r <= '9' {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "trip"
	}
	return slug + "-itinerary.csv"
}
