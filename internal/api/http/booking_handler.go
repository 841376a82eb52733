package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"rentivo-backend/internal/domain"
	"rentivo-backend/internal/service"
)

// BookingHandler serves the booking lifecycle and availability endpoints.
type BookingHandler struct {
	bookings service.BookingService
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type createBookingRequest struct {
	ItemID    string `json:"itemid" validate:"required"`
	RenterID  string `json:"renterid"`
	StartDate string `json:"startdate" validate:"required"`
	EndDate   string `json:"enddate" validate:"required"`
}

type handoverRequest struct {
	Photo string `json:"handoverphoto"`
	Notes string `json:"handovernotes"`
}

type returnRequest struct {
	Photo string `json:"returnphoto"`
	Notes string `json:"returnnotes"`
}

type extendRequest struct {
	ExtendedUntil string `json:"extendeduntil" validate:"required"`
}

type availabilityRequest struct {
	StartDate string `json:"startdate" validate:"required"`
	EndDate   string `json:"enddate" validate:"required"`
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, domain.Errf(domain.CodeValidation, "%s must be a YYYY-MM-DD date", field)
	}
	return t, nil
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	// The renter defaults to the authenticated caller.
	renterID := req.RenterID
	if renterID == "" {
		renterID = ClaimsFrom(r.Context()).UserID
	}

	start, err := parseDate(req.StartDate, "startdate")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate(req.EndDate, "enddate")
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.Create(r.Context(), req.ItemID, renterID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookings.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.ListByRenter(r.Context(), ClaimsFrom(r.Context()).UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (h *BookingHandler) Handover(w http.ResponseWriter, r *http.Request) {
	var req handoverRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.RecordHandover(r.Context(), mux.Vars(r)["id"],
		ClaimsFrom(r.Context()).UserID, req.Photo, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
}

func (h *BookingHandler) Return(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.RecordReturn(r.Context(), mux.Vars(r)["id"],
		ClaimsFrom(r.Context()).UserID, req.Photo, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
}

func (h *BookingHandler) Extend(w http.ResponseWriter, r *http.Request) {
	var req extendRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	until, err := parseDate(req.ExtendedUntil, "extendeduntil")
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.Extend(r.Context(), mux.Vars(r)["id"],
		ClaimsFrom(r.Context()).UserID, until)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
}

func (h *BookingHandler) AddAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	start, err := parseDate(req.StartDate, "startdate")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate(req.EndDate, "enddate")
	if err != nil {
		writeError(w, err)
		return
	}

	window, err := h.bookings.AddAvailabilityWindow(r.Context(), mux.Vars(r)["id"], start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"availability": window})
}

func (h *BookingHandler) ListAvailability(w http.ResponseWriter, r *http.Request) {
	windows, err := h.bookings.ListAvailabilityWindows(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"availability": windows})
}
