package handler

import (
	"net/http"

	"gymbook/internal/bookings/service"
	"gymbook/internal/catalog"
	"gymbook/internal/display"
	apperrors "gymbook/pkg/errors"
	httputil "gymbook/pkg/http"
	"gymbook/pkg/identity"
	"gymbook/pkg/logger"
	"gymbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

type catalogResponse struct {
	TimeSlots      []string                `json:"timeSlots"`
	SessionTypes   []catalog.SessionType   `json:"sessionTypes"`
	SessionOptions []display.SessionOption `json:"sessionOptions"`
}

type myBookingsResponse struct {
	Bookings []*model.Booking     `json:"bookings"`
	Cards    []display.BookingCard `json:"cards"`
}

type availabilityCheckResponse struct {
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
	Available bool   `json:"available"`
}

type availabilityResponse struct {
	Date  string                   `json:"date"`
	Slots []model.SlotAvailability `json:"slots"`
}

func (h *BookingHandler) Catalog(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	resp := catalogResponse{
		TimeSlots:      catalog.TimeSlots(),
		SessionTypes:   catalog.SessionTypes(),
		SessionOptions: display.SessionOptions(),
	}
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Catalog", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Book", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Book(r.Context(), identity.FromContext(r.Context()), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Book", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Book", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, _, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListMine", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, err := h.service.List(r.Context(), identity.FromContext(r.Context()), limit)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListMine", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	resp := myBookingsResponse{
		Bookings: bookings,
		Cards:    display.BookingCards(bookings),
	}
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "ListMine", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Cancel(r.Context(), identity.FromContext(r.Context()), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cancel", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, total, err := h.service.ListAll(r.Context(), identity.FromContext(r.Context()), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if identity.FromContext(r.Context()) == nil {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Sign in to view availability")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Availability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	date := r.URL.Query().Get("date")
	slots, err := h.service.Availability(r.Context(), date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Availability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, availabilityResponse{Date: date, Slots: slots}); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if identity.FromContext(r.Context()) == nil {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Sign in to view availability")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	query := r.URL.Query()
	date, timeSlot := query.Get("date"), query.Get("timeSlot")
	if date == "" || timeSlot == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Both 'date' and 'timeSlot' query parameters are required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	resp := availabilityCheckResponse{
		Date:      date,
		TimeSlot:  timeSlot,
		Available: h.service.CheckAvailability(r.Context(), date, timeSlot),
	}
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckAvailability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/catalog", h.Catalog)
	router.GET("/api/v1/availability", h.Availability)
	router.GET("/api/v1/availability/check", h.CheckAvailability)
	router.POST("/api/v1/bookings", h.Book)
	router.GET("/api/v1/bookings/me", h.ListMine)
	router.POST("/api/v1/bookings/id/:id/cancel", h.Cancel)
	router.GET("/api/v1/admin/bookings", h.ListAll)
}
