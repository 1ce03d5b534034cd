package controllers

import (
	"log/slog"
	"net/http"

	"eventactivities/internal/delivery/http/helpers"
	"eventactivities/internal/domain"
)

// RegistrySuccessResponse is the success response envelope carrying one registry.
type RegistrySuccessResponse struct {
	Data  *domain.Registry  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// RegistryListSuccessResponse is the success response envelope for GET /me/registries.
type RegistryListSuccessResponse struct {
	Data  []*domain.RegistryWithActivity `json:"data"`
	Error *helpers.APIError              `json:"error"`
}

type RegistryController struct {
	Logger  *slog.Logger
	Service domain.RegistryService
}

func NewRegistryController(logger *slog.Logger, svc domain.RegistryService) *RegistryController {
	return &RegistryController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register the authenticated user in an activity
// @Tags registries
// @Produce json
// @Security BearerAuth
// @Param activityID path string true "Activity ID"
// @Success 201 {object} controllers.RegistrySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: a business rule code"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.ConflictResponse "the user has another activity at the same time"
// @Router /activities/{activityID}/registries [post]
func (c *RegistryController) Register(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathValue(w, r, "activityID")
	if !ok {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	reg, err := c.Service.Register(r.Context(), activityID, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// RegisterUser godoc
// @Summary Register another user in an activity
// @Description Organizer tool. Skips the registry window, the vacancy limit and the responsible exclusion.
// @Tags registries
// @Produce json
// @Security BearerAuth
// @Param activityID path string true "Activity ID"
// @Param userID path string true "User to register"
// @Success 201 {object} controllers.RegistrySuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.ConflictResponse "the user has another activity at the same time"
// @Router /activities/{activityID}/registries/{userID} [post]
func (c *RegistryController) RegisterUser(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathValue(w, r, "activityID")
	if !ok {
		return
	}
	targetID, ok := pathValue(w, r, "userID")
	if !ok {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	reg, err := c.Service.RegisterByResponsible(r.Context(), activityID, targetID, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// Unregister godoc
// @Summary Remove the authenticated user from an activity
// @Tags registries
// @Security BearerAuth
// @Param activityID path string true "Activity ID"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: archived_event or invisible_event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /activities/{activityID}/registries [delete]
func (c *RegistryController) Unregister(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathValue(w, r, "activityID")
	if !ok {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), activityID, userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RateRequest is the request body for PUT /activities/{activityID}/registries/rating.
type RateRequest struct {
	Rating int `json:"rating" validate:"min=1,max=5"`
}

// Rate godoc
// @Summary Rate an activity the user is registered in
// @Tags registries
// @Accept json
// @Security BearerAuth
// @Param activityID path string true "Activity ID"
// @Param body body RateRequest true "Rating from 1 to 5"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /activities/{activityID}/registries/rating [put]
func (c *RegistryController) Rate(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathValue(w, r, "activityID")
	if !ok {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req RateRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.Rate(r.Context(), activityID, userID, req.Rating); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PresenceRequest is the request body for PATCH /registries/{registryID}/presences/{scheduleID}.
type PresenceRequest struct {
	IsPresent *bool `json:"is_present" validate:"required"`
}

// SetPresence godoc
// @Summary Mark a registered user present or absent in one schedule
// @Tags registries
// @Accept json
// @Security BearerAuth
// @Param registryID path string true "Registry ID"
// @Param scheduleID path string true "Schedule ID"
// @Param body body PresenceRequest true "Presence flag"
// @Success 204 "No Content"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /registries/{registryID}/presences/{scheduleID} [patch]
func (c *RegistryController) SetPresence(w http.ResponseWriter, r *http.Request) {
	registryID, ok := pathValue(w, r, "registryID")
	if !ok {
		return
	}
	scheduleID, ok := pathValue(w, r, "scheduleID")
	if !ok {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req PresenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.SetPresence(r.Context(), registryID, scheduleID, *req.IsPresent, userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetRegistryReady godoc
// @Summary Flag a registry as ready for certificate emission
// @Tags registries
// @Accept json
// @Security BearerAuth
// @Param registryID path string true "Registry ID"
// @Param body body ReadyRequest true "Readiness flag"
// @Success 204 "No Content"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /registries/{registryID}/certificate-ready [patch]
func (c *RegistryController) SetRegistryReady(w http.ResponseWriter, r *http.Request) {
	registryID, ok := pathValue(w, r, "registryID")
	if !ok {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req ReadyRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.SetReadyForCertificate(r.Context(), registryID, *req.Ready, userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMyRegistries godoc
// @Summary List the registrations of the authenticated user
// @Tags registries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.RegistryListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /me/registries [get]
func (c *RegistryController) ListMyRegistries(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	regs, err := c.Service.ListByUser(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}
