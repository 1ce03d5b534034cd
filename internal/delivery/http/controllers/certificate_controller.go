package controllers

import (
	"log/slog"
	"net/http"

	"eventactivities/internal/delivery/http/helpers"
	"eventactivities/internal/domain"
)

// ReadinessSuccessResponse is the success response envelope for the readiness endpoint.
type ReadinessSuccessResponse struct {
	Data  domain.CertificateReadiness `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// EmissionResult summarises a certificate emission batch.
type EmissionResult struct {
	Sent   int      `json:"sent"`
	Failed []string `json:"failed"`
}

// EmissionSuccessResponse is the success response envelope for the emission endpoint.
type EmissionSuccessResponse struct {
	Data  EmissionResult    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type CertificateController struct {
	Logger  *slog.Logger
	Service domain.CertificateService
}

func NewCertificateController(logger *slog.Logger, svc domain.CertificateService) *CertificateController {
	return &CertificateController{
		Logger:  logger,
		Service: svc,
	}
}

// GetReadiness godoc
// @Summary Certificate readiness of an event
// @Description ready is true when every activity of the event is ready. emails lists the users eligible for a certificate.
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.ReadinessSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/certificates/readiness [get]
func (c *CertificateController) GetReadiness(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathValue(w, r, "eventID")
	if !ok {
		return
	}
	if _, ok := callerID(w, r); !ok {
		return
	}
	ready, err := c.Service.IsReadyForEmission(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	emails, err := c.Service.FilterReadyForCertificate(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, domain.CertificateReadiness{EventID: eventID, Ready: ready, Emails: emails})
}

// EmitCertificates godoc
// @Summary Notify every eligible user that their certificate is available
// @Description Delivery failures do not abort the batch; failed recipients are listed in the response.
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EmissionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: certificates_not_ready"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/certificates/emissions [post]
func (c *CertificateController) EmitCertificates(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathValue(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	sent, failed, err := c.Service.EmitCertificates(r.Context(), eventID, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if failed == nil {
		failed = []string{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EmissionResult{Sent: sent, Failed: failed})
}
