package domain

import (
	"context"
	"time"
)

// Registry is a user's registration in an activity.
// swagger:model Registry
type Registry struct {
	ID                  string      `json:"id"`
	ActivityID          string      `json:"activity_id"`
	UserID              string      `json:"user_id"`
	RegistryDate        time.Time   `json:"registry_date"`
	ReadyForCertificate bool        `json:"ready_for_certificate"`
	Rating              *int        `json:"rating,omitempty"`
	Presences           []*Presence `json:"presences"`
}

// NewRegistry returns a registry for userID in activity with one presence per schedule.
// New registries are certificate-ready and every presence starts as present.
func NewRegistry(activity *Activity, userID string, now time.Time) *Registry {
	presences := make([]*Presence, 0, len(activity.Schedules))
	for _, s := range activity.Schedules {
		presences = append(presences, &Presence{ScheduleID: s.ID, IsPresent: true})
	}
	return &Registry{
		ActivityID:          activity.ID,
		UserID:              userID,
		RegistryDate:        now,
		ReadyForCertificate: true,
		Presences:           presences,
	}
}

// Presence is the attendance of a registry in one schedule.
// swagger:model Presence
type Presence struct {
	ID         string `json:"id"`
	RegistryID string `json:"registry_id"`
	ScheduleID string `json:"schedule_id"`
	IsPresent  bool   `json:"is_present"`
}

// Rating bounds accepted by RegistryService.Rate.
const (
	MinRating = 1
	MaxRating = 5
)

// RegistryRepository defines storage for registries and their presences.
type RegistryRepository interface {
	// Create inserts the registry and its presences. A duplicate (user, activity) pair returns ErrAlreadyRegistered.
	Create(ctx context.Context, registry *Registry) error
	GetByID(ctx context.Context, id string) (*Registry, error)
	GetByActivityAndUser(ctx context.Context, activityID, userID string) (*Registry, error)
	Delete(ctx context.Context, id string) error
	DeleteByActivityID(ctx context.Context, activityID string) error
	CountByActivityID(ctx context.Context, activityID string) (int, error)
	ListByActivityID(ctx context.Context, activityID string) ([]*Registry, error)
	ListByUserID(ctx context.Context, userID string) ([]*Registry, error)
	SetPresence(ctx context.Context, registryID, scheduleID string, present bool) error
	SetReadyForCertificate(ctx context.Context, registryID string, ready bool) error
	SetRating(ctx context.Context, registryID string, rating int) error
	// ListReadyEmailsByEventID returns the distinct emails of users holding a certificate-ready
	// registry in any activity of the event.
	ListReadyEmailsByEventID(ctx context.Context, eventID string) ([]string, error)
}

// RegistryWithActivity bundles a registry with its activity.
type RegistryWithActivity struct {
	Registry *Registry `json:"registry"`
	Activity *Activity `json:"activity"`
}

// RegistryService defines the registration lifecycle of users in activities.
type RegistryService interface {
	// Register registers userID in the activity on their own behalf.
	Register(ctx context.Context, activityID, userID string) (*Registry, error)
	// RegisterByResponsible lets an organizer register another user, skipping the registry window
	// and the responsible exclusion.
	RegisterByResponsible(ctx context.Context, activityID, userID, callerID string) (*Registry, error)
	Delete(ctx context.Context, activityID, userID string) error
	SetPresence(ctx context.Context, registryID, scheduleID string, present bool, callerID string) error
	SetReadyForCertificate(ctx context.Context, registryID string, ready bool, callerID string) error
	Rate(ctx context.Context, activityID, userID string, rating int) error
	ListByUser(ctx context.Context, userID string) ([]*RegistryWithActivity, error)
}

// CertificateReadiness is the aggregated certificate state of an event.
type CertificateReadiness struct {
	EventID string   `json:"event_id"`
	Ready   bool     `json:"ready"`
	Emails  []string `json:"emails"`
}

// CertificateService aggregates certificate readiness and emits certificate notifications.
type CertificateService interface {
	IsReadyForEmission(ctx context.Context, eventID string) (bool, error)
	FilterReadyForCertificate(ctx context.Context, eventID string) ([]string, error)
	// EmitCertificates notifies every eligible user. Per-recipient failures are returned in failed
	// and do not abort the batch.
	EmitCertificates(ctx context.Context, eventID, callerID string) (sent int, failed []string, err error)
}

// ExportService renders registrations in external formats.
type ExportService interface {
	// UserAgenda returns an iCalendar document with the schedules of every activity the user is registered in.
	UserAgenda(ctx context.Context, userID string) ([]byte, error)
	// PresenceSheet returns an XLSX workbook with the presences of every registry of the activity.
	PresenceSheet(ctx context.Context, activityID, callerID string) ([]byte, error)
}
