package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"eventactivities/internal/delivery/http/helpers"
	"eventactivities/internal/delivery/http/middleware"
	"eventactivities/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// newRequest builds a request with JSON body, path values and an optional authenticated user.
func newRequest(method, target, body, userID string, pathValues map[string]string) *http.Request {
	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req = req.WithContext(middleware.SetUserID(req.Context(), userID))
	}
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data any) *helpers.APIError {
	t.Helper()
	var env struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	if data != nil && env.Error == nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env.Error
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	err         error
	event       *domain.Event
	lastCreate  *domain.Event
	lastEventID string
	lastCaller  string
	lastPatch   domain.EventPatch
}

func (f *fakeEventService) CreateEvent(_ context.Context, e *domain.Event) error {
	f.lastCreate = e
	if f.err != nil {
		return f.err
	}
	e.ID = "ev-1"
	return nil
}

func (f *fakeEventService) GetEvent(_ context.Context, id string) (*domain.Event, error) {
	f.lastEventID = id
	return f.event, f.err
}

func (f *fakeEventService) UpdateEvent(_ context.Context, id, caller string, p domain.EventPatch) (*domain.Event, error) {
	f.lastEventID, f.lastCaller, f.lastPatch = id, caller, p
	return f.event, f.err
}

// fakeActivityService implements domain.ActivityService for handler tests.
type fakeActivityService struct {
	err        error
	activity   *domain.Activity
	list       []*domain.Activity
	last       *domain.Activity
	lastID     string
	lastCaller string
	lastReady  bool
}

func (f *fakeActivityService) Create(_ context.Context, a *domain.Activity, caller string) error {
	f.last, f.lastCaller = a, caller
	if f.err != nil {
		return f.err
	}
	a.ID = "act-1"
	a.IndexInCategory = 1
	return nil
}

func (f *fakeActivityService) Update(_ context.Context, a *domain.Activity, caller string) error {
	f.last, f.lastCaller = a, caller
	return f.err
}

func (f *fakeActivityService) Delete(_ context.Context, id, caller string) error {
	f.lastID, f.lastCaller = id, caller
	return f.err
}

func (f *fakeActivityService) Get(_ context.Context, id string) (*domain.Activity, error) {
	f.lastID = id
	return f.activity, f.err
}

func (f *fakeActivityService) ListByEvent(_ context.Context, eventID string) ([]*domain.Activity, error) {
	f.lastID = eventID
	return f.list, f.err
}

func (f *fakeActivityService) SetReadyForCertificate(_ context.Context, id string, ready bool, caller string) error {
	f.lastID, f.lastReady, f.lastCaller = id, ready, caller
	return f.err
}

// fakeRegistryService implements domain.RegistryService for handler tests.
type fakeRegistryService struct {
	err          error
	registry     *domain.Registry
	list         []*domain.RegistryWithActivity
	lastActivity string
	lastUser     string
	lastCaller   string
	lastRegistry string
	lastSchedule string
	lastFlag     bool
	lastRating   int
}

func (f *fakeRegistryService) Register(_ context.Context, activityID, userID string) (*domain.Registry, error) {
	f.lastActivity, f.lastUser = activityID, userID
	return f.registry, f.err
}

func (f *fakeRegistryService) RegisterByResponsible(_ context.Context, activityID, userID, caller string) (*domain.Registry, error) {
	f.lastActivity, f.lastUser, f.lastCaller = activityID, userID, caller
	return f.registry, f.err
}

func (f *fakeRegistryService) Delete(_ context.Context, activityID, userID string) error {
	f.lastActivity, f.lastUser = activityID, userID
	return f.err
}

func (f *fakeRegistryService) SetPresence(_ context.Context, registryID, scheduleID string, present bool, caller string) error {
	f.lastRegistry, f.lastSchedule, f.lastFlag, f.lastCaller = registryID, scheduleID, present, caller
	return f.err
}

func (f *fakeRegistryService) SetReadyForCertificate(_ context.Context, registryID string, ready bool, caller string) error {
	f.lastRegistry, f.lastFlag, f.lastCaller = registryID, ready, caller
	return f.err
}

func (f *fakeRegistryService) Rate(_ context.Context, activityID, userID string, rating int) error {
	f.lastActivity, f.lastUser, f.lastRating = activityID, userID, rating
	return f.err
}

func (f *fakeRegistryService) ListByUser(_ context.Context, userID string) ([]*domain.RegistryWithActivity, error) {
	f.lastUser = userID
	return f.list, f.err
}

// fakeCertificateService implements domain.CertificateService for handler tests.
type fakeCertificateService struct {
	ready      bool
	readyErr   error
	emails     []string
	emailsErr  error
	sent       int
	failed     []string
	emitErr    error
	lastCaller string
}

func (f *fakeCertificateService) IsReadyForEmission(context.Context, string) (bool, error) {
	return f.ready, f.readyErr
}

func (f *fakeCertificateService) FilterReadyForCertificate(context.Context, string) ([]string, error) {
	return f.emails, f.emailsErr
}

func (f *fakeCertificateService) EmitCertificates(_ context.Context, _, caller string) (int, []string, error) {
	f.lastCaller = caller
	return f.sent, f.failed, f.emitErr
}

// fakeExportService implements domain.ExportService for handler tests.
type fakeExportService struct {
	body       []byte
	err        error
	lastUser   string
	lastCaller string
}

func (f *fakeExportService) UserAgenda(_ context.Context, userID string) ([]byte, error) {
	f.lastUser = userID
	return f.body, f.err
}

func (f *fakeExportService) PresenceSheet(_ context.Context, _, caller string) ([]byte, error) {
	f.lastCaller = caller
	return f.body, f.err
}
