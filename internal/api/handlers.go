package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"roomly/internal/booking"
	"roomly/internal/export"
	"roomly/internal/metrics"
	"roomly/internal/models"
)

// conflictMessage is the exact wire message expected by existing clients.
const conflictMessage = "Room already booked at this time."

type createRoomRequest struct {
	Name         string   `json:"name"`
	Seats        int      `json:"seats"`
	Amenities    []string `json:"amenities"`
	PricePerHour float64  `json:"pricePerHour"`
}

type bookRoomRequest struct {
	CustomerName string `json:"customerName"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	RoomID       string `json:"roomId"`
}

func (s *HTTPServer) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("create-room")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	room, err := s.svc.CreateRoom(r.Context(), booking.RoomRequest{
		Name:         req.Name,
		Seats:        req.Seats,
		Amenities:    req.Amenities,
		PricePerHour: req.PricePerHour,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("create room")
		writeError(w, http.StatusInternalServerError, "failed to create room")
		return
	}

	writeJSON(w, http.StatusOK, room)
}

func (s *HTTPServer) handleBookRoom(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("book-room")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req bookRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if msg := validateBookRoom(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	b, err := s.svc.BookRoom(r.Context(), booking.Request{
		CustomerName: req.CustomerName,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		RoomID:       req.RoomID,
	})
	if errors.Is(err, booking.ErrRoomConflict) {
		writeError(w, http.StatusBadRequest, conflictMessage)
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("book room")
		writeError(w, http.StatusInternalServerError, "failed to book room")
		return
	}

	writeJSON(w, http.StatusOK, b)
}

// validateBookRoom rejects malformed input before it reaches the core.
// The conflict checker itself stays permissive about time bounds.
func validateBookRoom(req bookRoomRequest) string {
	missing := []string{}
	for _, f := range []struct{ name, value string }{
		{"customerName", req.CustomerName},
		{"date", req.Date},
		{"startTime", req.StartTime},
		{"endTime", req.EndTime},
		{"roomId", req.RoomID},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", "))
	}

	if req.StartTime >= req.EndTime {
		return "endTime must be after startTime"
	}
	return ""
}

func (s *HTTPServer) handleListRooms(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("list-rooms")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	statuses, err := s.svc.RoomsWithStatus(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list rooms")
		writeError(w, http.StatusInternalServerError, "failed to list rooms")
		return
	}

	writeJSON(w, http.StatusOK, statuses)
}

func (s *HTTPServer) handleListRoomsWithID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("list-rooms-with-id")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	refs, err := s.svc.RoomRefs(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list room refs")
		writeError(w, http.StatusInternalServerError, "failed to list rooms")
		return
	}

	writeJSON(w, http.StatusOK, refs)
}

func (s *HTTPServer) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("list-customers")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	customers, err := s.svc.CustomersWithBookings(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list customers")
		writeError(w, http.StatusInternalServerError, "failed to list customers")
		return
	}

	writeJSON(w, http.StatusOK, customers)
}

func (s *HTTPServer) handleCustomerBookingCount(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("customer-booking-count")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	const prefix = "/customer-booking-count/"
	name := strings.TrimPrefix(r.URL.Path, prefix)
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "customerName is required")
		return
	}

	bookings, err := s.svc.CustomerBookings(r.Context(), name)
	if err != nil {
		s.logger.Error().Err(err).Msg("customer bookings")
		writeError(w, http.StatusInternalServerError, "failed to list customer bookings")
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}

	// The endpoint name promises a count but has always returned the
	// records; callers take the length themselves.
	writeJSON(w, http.StatusOK, bookings)
}

func (s *HTTPServer) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("export-bookings")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rooms, bookings, err := s.svc.Snapshot(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("export snapshot")
		writeError(w, http.StatusInternalServerError, "failed to export bookings")
		return
	}

	f, err := export.Workbook(rooms, bookings)
	if err != nil {
		s.logger.Error().Err(err).Msg("build workbook")
		writeError(w, http.StatusInternalServerError, "failed to export bookings")
		return
	}
	defer f.Close()

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	if err := f.Write(w); err != nil {
		s.logger.Error().Err(err).Msg("write workbook")
	}
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
