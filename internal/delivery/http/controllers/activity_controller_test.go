package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventactivities/internal/delivery/http/helpers"
	"eventactivities/internal/domain"
)

const validActivityBody = `{
	"category_id": "cat-talk",
	"title": "Go in production",
	"total_vacancy": 30,
	"workload_in_minutes": 60,
	"schedules": [
		{"start_date": "2025-03-01T09:00:00Z", "duration_in_minutes": 60, "room_id": "room-1"},
		{"id": "s-2", "start_date": "2025-03-01T14:00:00Z", "duration_in_minutes": 30, "url": "https://meet.example.com/go"}
	],
	"responsible_user_ids": ["user-1"],
	"teaching_user_ids": ["user-2"]
}`

func TestActivityController_CreateActivity(t *testing.T) {
	room := "R1"
	conflict := domain.NewConflictError(domain.ConflictKindRoom, []domain.Conflict{
		{ActivityName: "Other", EventName: "Conf", RoomName: &room, Index: 0},
	})

	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{name: "created", body: validActivityBody, wantStatus: http.StatusCreated},
		{name: "room conflict", body: validActivityBody, svcErr: fmt.Errorf("create activity: %w", conflict), wantStatus: http.StatusConflict},
		{name: "incomplete", body: `{"title":"x","schedules":[]}`, svcErr: domain.ErrIncompleteActivity, wantStatus: http.StatusBadRequest, wantCode: "incomplete_activity"},
		{name: "forbidden", body: validActivityBody, svcErr: domain.ErrForbidden, wantStatus: http.StatusForbidden, wantCode: helpers.ErrCodeForbidden},
		{name: "unknown event", body: validActivityBody, svcErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeNotFound},
		{name: "schedule without start", body: `{"title":"x","schedules":[{"duration_in_minutes":10,"room_id":"r"}]}`, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeActivityService{err: tt.svcErr}
			rr := httptest.NewRecorder()
			req := newRequest(http.MethodPost, "/events/ev-1/activities", tt.body, "user-1", map[string]string{"eventID": "ev-1"})
			NewActivityController(testLogger, svc).CreateActivity(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusConflict {
				var body helpers.ConflictResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.Equal(t, conflict.Message, body.Message)
				require.Len(t, body.Data, 1)
				assert.Equal(t, 0, body.Data[0].Index)
				assert.Equal(t, "R1", *body.Data[0].RoomName)
				return
			}
			var activity domain.Activity
			apiErr := decodeEnvelope(t, rr, &activity)
			if tt.wantCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				return
			}
			require.Nil(t, apiErr)
			assert.Equal(t, "act-1", activity.ID)
			assert.Equal(t, 1, activity.IndexInCategory)
			assert.Equal(t, "ev-1", svc.last.EventID)
			assert.Equal(t, "user-1", svc.lastCaller)
			require.Len(t, svc.last.Schedules, 2)
			assert.Equal(t, "room-1", *svc.last.Schedules[0].RoomID)
			assert.Nil(t, svc.last.Schedules[0].URL)
			assert.Equal(t, "s-2", svc.last.Schedules[1].ID)
		})
	}
}

func TestActivityController_UpdateActivity(t *testing.T) {
	svc := &fakeActivityService{}
	rr := httptest.NewRecorder()
	req := newRequest(http.MethodPut, "/activities/act-9", validActivityBody, "user-1", map[string]string{"activityID": "act-9"})
	NewActivityController(testLogger, svc).UpdateActivity(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "act-9", svc.last.ID)
	assert.Empty(t, svc.last.EventID, "event is taken from the stored activity")
	assert.Equal(t, "act-9", svc.last.Schedules[0].ActivityID)

	svc = &fakeActivityService{err: domain.ErrEventChangeRestriction}
	rr = httptest.NewRecorder()
	NewActivityController(testLogger, svc).UpdateActivity(rr, newRequest(http.MethodPut, "/activities/act-9", validActivityBody, "user-1", map[string]string{"activityID": "act-9"}))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	apiErr := decodeEnvelope(t, rr, nil)
	require.NotNil(t, apiErr)
	assert.Equal(t, "event_change_restriction", apiErr.Code)
}

func TestActivityController_DeleteActivity(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{name: "deleted", wantStatus: http.StatusNoContent},
		{name: "has registries", svcErr: domain.ErrActivityHasRegistries, wantStatus: http.StatusBadRequest, wantCode: "activity_has_registries"},
		{name: "not found", svcErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeActivityService{err: tt.svcErr}
			rr := httptest.NewRecorder()
			req := newRequest(http.MethodDelete, "/activities/act-1", "", "user-1", map[string]string{"activityID": "act-1"})
			NewActivityController(testLogger, svc).DeleteActivity(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "act-1", svc.lastID)
			if tt.wantCode != "" {
				apiErr := decodeEnvelope(t, rr, nil)
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
			}
		})
	}
}

func TestActivityController_ListAndGet(t *testing.T) {
	svc := &fakeActivityService{
		list:     []*domain.Activity{{ID: "a1"}, {ID: "a2"}},
		activity: &domain.Activity{ID: "a1", Title: "Go"},
	}
	ctrl := NewActivityController(testLogger, svc)

	rr := httptest.NewRecorder()
	ctrl.ListActivities(rr, newRequest(http.MethodGet, "/events/ev-1/activities", "", "user-1", map[string]string{"eventID": "ev-1"}))
	require.Equal(t, http.StatusOK, rr.Code)
	var list []*domain.Activity
	require.Nil(t, decodeEnvelope(t, rr, &list))
	assert.Len(t, list, 2)
	assert.Equal(t, "ev-1", svc.lastID)

	rr = httptest.NewRecorder()
	ctrl.GetActivity(rr, newRequest(http.MethodGet, "/activities/a1", "", "user-1", map[string]string{"activityID": "a1"}))
	require.Equal(t, http.StatusOK, rr.Code)
	var got domain.Activity
	require.Nil(t, decodeEnvelope(t, rr, &got))
	assert.Equal(t, "Go", got.Title)

	rr = httptest.NewRecorder()
	ctrl.GetActivity(rr, newRequest(http.MethodGet, "/activities/a1", "", "", map[string]string{"activityID": "a1"}))
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestActivityController_SetActivityReady(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantReady  bool
	}{
		{name: "ready", body: `{"ready":true}`, wantStatus: http.StatusNoContent, wantReady: true},
		{name: "not ready", body: `{"ready":false}`, wantStatus: http.StatusNoContent},
		{name: "missing flag", body: `{}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeActivityService{lastReady: !tt.wantReady}
			rr := httptest.NewRecorder()
			req := newRequest(http.MethodPatch, "/activities/a1/certificate-ready", tt.body, "user-1", map[string]string{"activityID": "a1"})
			NewActivityController(testLogger, svc).SetActivityReady(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, tt.wantReady, svc.lastReady)
				assert.Equal(t, "user-1", svc.lastCaller)
			}
		})
	}
}
