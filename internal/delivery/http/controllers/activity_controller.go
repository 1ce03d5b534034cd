package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventactivities/internal/delivery/http/helpers"
	"eventactivities/internal/domain"
)

// ScheduleRequest is one slot of an activity. Exactly one of room_id and url must be set.
type ScheduleRequest struct {
	ID                string    `json:"id"`
	StartDate         time.Time `json:"start_date" validate:"required"`
	DurationInMinutes int       `json:"duration_in_minutes"`
	RoomID            *string   `json:"room_id"`
	URL               *string   `json:"url"`
}

// ActivityRequest is the request body for creating and editing an activity.
// Shape rules are enforced by the service so that every violation is reported at once.
type ActivityRequest struct {
	CategoryID         string            `json:"category_id"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	TotalVacancy       int               `json:"total_vacancy"`
	WorkloadInMinutes  int               `json:"workload_in_minutes"`
	Schedules          []ScheduleRequest `json:"schedules" validate:"dive"`
	ResponsibleUserIDs []string          `json:"responsible_user_ids"`
	TeachingUserIDs    []string          `json:"teaching_user_ids"`
}

func (a ActivityRequest) toDomain(id, eventID string) *domain.Activity {
	schedules := make([]*domain.Schedule, 0, len(a.Schedules))
	for _, s := range a.Schedules {
		schedules = append(schedules, &domain.Schedule{
			ID:                s.ID,
			ActivityID:        id,
			StartDate:         s.StartDate,
			DurationInMinutes: s.DurationInMinutes,
			RoomID:            s.RoomID,
			URL:               s.URL,
		})
	}
	return &domain.Activity{
		ID:                 id,
		EventID:            eventID,
		CategoryID:         a.CategoryID,
		Title:              a.Title,
		Description:        a.Description,
		TotalVacancy:       a.TotalVacancy,
		WorkloadInMinutes:  a.WorkloadInMinutes,
		Schedules:          schedules,
		ResponsibleUserIDs: a.ResponsibleUserIDs,
		TeachingUserIDs:    a.TeachingUserIDs,
	}
}

// ActivitySuccessResponse is the success response envelope carrying one activity.
type ActivitySuccessResponse struct {
	Data  *domain.Activity  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ActivityListSuccessResponse is the success response envelope for activity lists.
type ActivityListSuccessResponse struct {
	Data  []*domain.Activity `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type ActivityController struct {
	Logger  *slog.Logger
	Service domain.ActivityService
}

func NewActivityController(logger *slog.Logger, svc domain.ActivityService) *ActivityController {
	return &ActivityController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateActivity godoc
// @Summary Create an activity
// @Description Creates an activity in the event after checking schedule, teacher and room conflicts.
// @Description The activity receives the next index of its category.
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param activity body ActivityRequest true "Activity data"
// @Success 201 {object} controllers.ActivitySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or a business rule code"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.ConflictResponse "overlapping schedules"
// @Router /events/{eventID}/activities [post]
func (c *ActivityController) CreateActivity(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathValue(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req ActivityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	activity := req.toDomain("", eventID)
	if err := c.Service.Create(r.Context(), activity, userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, activity)
}

// ListActivities godoc
// @Summary List the activities of an event
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.ActivityListSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/activities [get]
func (c *ActivityController) ListActivities(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathValue(w, r, "eventID")
	if !ok {
		return
	}
	if _, ok := callerID(w, r); !ok {
		return
	}
	activities, err := c.Service.ListByEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, activities)
}

// GetActivity godoc
// @Summary Get an activity by ID
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param activityID path string true "Activity ID"
// @Success 200 {object} controllers.ActivitySuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /activities/{activityID} [get]
func (c *ActivityController) GetActivity(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathValue(w, r, "activityID")
	if !ok {
		return
	}
	if _, ok := callerID(w, r); !ok {
		return
	}
	activity, err := c.Service.Get(r.Context(), activityID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, activity)
}

// UpdateActivity godoc
// @Summary Edit an activity
// @Description Replaces the activity. Changing any schedule interval removes every registration.
// @Description Schedules keep their id when it is sent back.
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param activityID path string true "Activity ID"
// @Param activity body ActivityRequest true "Activity data"
// @Success 200 {object} controllers.ActivitySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or a business rule code"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.ConflictResponse "overlapping schedules"
// @Router /activities/{activityID} [put]
func (c *ActivityController) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathValue(w, r, "activityID")
	if !ok {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req ActivityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	activity := req.toDomain(activityID, "")
	if err := c.Service.Update(r.Context(), activity, userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, activity)
}

// DeleteActivity godoc
// @Summary Delete an activity
// @Description Fails when users are registered or the event is ongoing. Later activities of the category move up one index.
// @Tags activities
// @Security BearerAuth
// @Param activityID path string true "Activity ID"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: activity_has_registries or event_change_restriction"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /activities/{activityID} [delete]
func (c *ActivityController) DeleteActivity(w http.ResponseWriter, r *http.Request) {
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

// ReadyRequest toggles the certificate readiness flag.
type ReadyRequest struct {
	Ready *bool `json:"ready" validate:"required"`
}

// SetActivityReady godoc
// @Summary Flag an activity as ready for certificate emission
// @Tags activities
// @Accept json
// @Security BearerAuth
// @Param activityID path string true "Activity ID"
// @Param body body ReadyRequest true "Readiness flag"
// @Success 204 "No Content"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /activities/{activityID}/certificate-ready [patch]
func (c *ActivityController) SetActivityReady(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathValue(w, r, "activityID")
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
	if err := c.Service.SetReadyForCertificate(r.Context(), activityID, *req.Ready, userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
