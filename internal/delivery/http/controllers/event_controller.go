package controllers

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"eventactivities/internal/delivery/http/helpers"
	"eventactivities/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name               string    `json:"name" validate:"required"`
	StartDate          time.Time `json:"start_date" validate:"required"`
	EndDate            time.Time `json:"end_date" validate:"required"`
	RegistryStartDate  time.Time `json:"registry_start_date" validate:"required"`
	RegistryEndDate    time.Time `json:"registry_end_date" validate:"required"`
	StatusVisible      bool      `json:"status_visible"`
	StatusActive       bool      `json:"status_active"`
	ResponsibleUserIDs []string  `json:"responsible_user_ids"`
}

// Validate implements helpers.Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.EndDate.Before(c.StartDate) {
		errs = append(errs, "end_date must not be before start_date")
	}
	if c.RegistryEndDate.Before(c.RegistryStartDate) {
		errs = append(errs, "registry_end_date must not be before registry_start_date")
	}
	return errs
}

// EventSuccessResponse is the success response envelope carrying one event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event. The authenticated user is always one of its responsible users.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	responsibles := req.ResponsibleUserIDs
	if !slices.Contains(responsibles, userID) {
		responsibles = append([]string{userID}, responsibles...)
	}
	event := domain.NewEvent(req.Name, req.StartDate, req.EndDate, req.RegistryStartDate, req.RegistryEndDate, responsibles, time.Time{}, time.Time{})
	event.StatusVisible = req.StatusVisible
	event.StatusActive = req.StatusActive
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathValue(w, r, "eventID")
	if !ok {
		return
	}
	if _, ok := callerID(w, r); !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. Omitted fields are unchanged.
type UpdateEventRequest struct {
	Name              *string    `json:"name" validate:"omitempty,min=1"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	RegistryStartDate *time.Time `json:"registry_start_date"`
	RegistryEndDate   *time.Time `json:"registry_end_date"`
	StatusVisible     *bool      `json:"status_visible"`
	StatusActive      *bool      `json:"status_active"`
}

// UpdateEvent godoc
// @Summary Update event details
// @Description Only a responsible user of the event can update it. Dates are re-normalised before saving.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathValue(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, userID, domain.EventPatch{
		Name:              req.Name,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		RegistryStartDate: req.RegistryStartDate,
		RegistryEndDate:   req.RegistryEndDate,
		StatusVisible:     req.StatusVisible,
		StatusActive:      req.StatusActive,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
