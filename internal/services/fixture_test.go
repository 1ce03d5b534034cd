package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventactivities/internal/domain"
	"eventactivities/internal/repository/memory"
	"eventactivities/internal/scheduling"
)

const (
	organizerID = "org"
	teacherID   = "teacher"
	speakerID   = "speaker"
	studentID   = "student"
	student2ID  = "student2"

	roomR1   = "room-r1"
	roomR2   = "room-r2"
	talk     = "cat-talk"
	workshop = "cat-workshop"
)

var (
	// clockNow sits before the registry window closes and before the event starts.
	clockNow      = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	eventDay      = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	registryStart = time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
	registryEnd   = time.Date(2025, 1, 9, 18, 0, 0, 0, time.UTC)
)

type fixture struct {
	store        *memory.Store
	clock        *testClock
	events       *eventService
	activities   *activityService
	registries   *registryService
	certificates *certificateService
	exports      *exportService
	mail         *fakeEmailService
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type fakeEmailService struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]bool
}

func (f *fakeEmailService) SendCertificateAvailable(ctx context.Context, data *domain.CertificateEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[data.Email] {
		return errors.New("mailbox unavailable")
	}
	f.sent = append(f.sent, data.Email)
	return nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	for _, u := range []*domain.User{
		{ID: organizerID, Name: "Organizer", Email: "org@example.com"},
		{ID: teacherID, Name: "Teacher", Email: "teacher@example.com"},
		{ID: speakerID, Name: "Speaker", Email: "speaker@example.com"},
		{ID: studentID, Name: "Student", Email: "student@example.com"},
		{ID: student2ID, Name: "Student Two", Email: "student2@example.com"},
	} {
		store.SeedUser(u)
	}
	store.SeedRoom(&domain.Room{ID: roomR1, Code: "R1", Capacity: 40})
	store.SeedRoom(&domain.Room{ID: roomR2, Code: "R2", Capacity: 20})
	store.SeedCategory(&domain.ActivityCategory{ID: talk, Code: "talk"})
	store.SeedCategory(&domain.ActivityCategory{ID: workshop, Code: "workshop"})

	clock := &testClock{t: clockNow}
	detector := scheduling.NewDetector(4)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	timeout := 5 * time.Second
	mail := &fakeEmailService{failFor: map[string]bool{}}

	events := NewEventService(store, timeout).(*eventService)
	events.now = clock.Now
	activities := NewActivityService(store, detector, timeout).(*activityService)
	activities.now = clock.Now
	registries := NewRegistryService(store, detector, timeout).(*registryService)
	registries.now = clock.Now
	exports := NewExportService(store, timeout).(*exportService)
	exports.now = clock.Now

	return &fixture{
		store:        store,
		clock:        clock,
		events:       events,
		activities:   activities,
		registries:   registries,
		certificates: NewCertificateService(store, mail, logger, timeout).(*certificateService),
		exports:      exports,
		mail:         mail,
	}
}

// createEvent stores a visible event on eventDay..eventDay+2 organized by organizerID.
func (f *fixture) createEvent(t *testing.T, name string) *domain.Event {
	t.Helper()
	e := domain.NewEvent(name, eventDay, eventDay.Add(48*time.Hour), registryStart, registryEnd, []string{organizerID}, time.Time{}, time.Time{})
	e.StatusVisible = true
	e.StatusActive = true
	require.NoError(t, f.events.CreateEvent(context.Background(), e))
	return e
}

func strPtr(s string) *string { return &s }

// at returns eventDay at hh:mm.
func at(hour, minute int) time.Time {
	return eventDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func inRoom(room string, start time.Time, minutes int) *domain.Schedule {
	return &domain.Schedule{StartDate: start, DurationInMinutes: minutes, RoomID: strPtr(room)}
}

func online(start time.Time, minutes int) *domain.Schedule {
	return &domain.Schedule{StartDate: start, DurationInMinutes: minutes, URL: strPtr("https://meet.example.com/x")}
}

func newActivity(eventID, category, title string, schedules ...*domain.Schedule) *domain.Activity {
	return &domain.Activity{
		EventID:            eventID,
		CategoryID:         category,
		Title:              title,
		TotalVacancy:       10,
		WorkloadInMinutes:  60,
		Schedules:          schedules,
		ResponsibleUserIDs: []string{speakerID},
	}
}

func (f *fixture) createActivity(t *testing.T, a *domain.Activity) *domain.Activity {
	t.Helper()
	require.NoError(t, f.activities.Create(context.Background(), a, organizerID))
	return a
}

func (f *fixture) indexOf(t *testing.T, activityID string) int {
	t.Helper()
	a, err := f.activities.Get(context.Background(), activityID)
	require.NoError(t, err)
	return a.IndexInCategory
}
