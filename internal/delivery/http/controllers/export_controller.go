package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"eventactivities/internal/delivery/http/helpers"
	"eventactivities/internal/domain"
)

const (
	contentTypeCalendar = "text/calendar; charset=utf-8"
	contentTypeXLSX     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ExportController struct {
	Logger  *slog.Logger
	Service domain.ExportService
}

func NewExportController(logger *slog.Logger, svc domain.ExportService) *ExportController {
	return &ExportController{
		Logger:  logger,
		Service: svc,
	}
}

// MyAgenda godoc
// @Summary iCalendar agenda of the authenticated user
// @Tags exports
// @Produce text/calendar
// @Security BearerAuth
// @Success 200 {file} file "agenda.ics"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /me/agenda.ics [get]
func (c *ExportController) MyAgenda(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	body, err := c.Service.UserAgenda(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	writeFile(w, contentTypeCalendar, "agenda.ics", body)
}

// PresenceSheet godoc
// @Summary Presence sheet of an activity
// @Description One row per registered user and one column per schedule. Only responsible users can export it.
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param activityID path string true "Activity ID"
// @Success 200 {file} file "presences.xlsx"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /activities/{activityID}/presences.xlsx [get]
func (c *ExportController) PresenceSheet(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathValue(w, r, "activityID")
	if !ok {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	body, err := c.Service.PresenceSheet(r.Context(), activityID, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	writeFile(w, contentTypeXLSX, "presences-"+activityID+".xlsx", body)
}

func writeFile(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
