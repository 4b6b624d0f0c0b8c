package handler

import (
	"net/http"

	"gymbook/internal/display"
	"gymbook/internal/hours/service"
	httputil "gymbook/pkg/http"
	"gymbook/pkg/identity"
	"gymbook/pkg/logger"
	"gymbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type HoursHandler struct {
	service service.HoursService
	log     *logger.Logger
}

func NewHoursHandler(service service.HoursService, log *logger.Logger) *HoursHandler {
	return &HoursHandler{
		service: service,
		log:     log,
	}
}

type statusResponse struct {
	State    string `json:"state"`
	Boundary string `json:"boundary,omitempty"`
	Banner   string `json:"banner"`
}

type hoursResponse struct {
	Schedule *model.OperatingHours `json:"schedule"`
	Rows     []display.HoursRow    `json:"rows"`
	Status   statusResponse        `json:"status"`
}

func newStatusResponse(snap *service.Snapshot) statusResponse {
	return statusResponse{
		State:    snap.Status.State,
		Boundary: snap.Status.Boundary,
		Banner:   display.StatusBanner(snap.Status, snap.Today()),
	}
}

func (h *HoursHandler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	snap, err := h.service.Status(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Get", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	resp := hoursResponse{
		Schedule: snap.Schedule,
		Rows:     display.HoursRows(snap.Schedule, snap.Now.Weekday()),
		Status:   newStatusResponse(snap),
	}
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HoursHandler) Status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	snap, err := h.service.Status(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Status", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, newStatusResponse(snap)); err != nil {
		h.log.Error("failed to write success response", "handler", "Status", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HoursHandler) Update(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var hours model.OperatingHours
	if err := httputil.DecodeJSON(r, &hours); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	updated, err := h.service.UpdateSchedule(r.Context(), identity.FromContext(r.Context()), &hours)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, updated); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HoursHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/hours", h.Get)
	router.GET("/api/v1/hours/status", h.Status)
	router.PUT("/api/v1/hours", h.Update)
}
