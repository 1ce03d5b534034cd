package domain

import (
	"context"
	"time"
)

// Event groups activities under a date range and a registry window.
// swagger:model Event
type Event struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	RegistryStartDate  time.Time `json:"registry_start_date"`
	RegistryEndDate    time.Time `json:"registry_end_date"`
	StatusVisible      bool      `json:"status_visible"`
	StatusActive       bool      `json:"status_active"`
	CategoryID         string    `json:"category_id"`
	AreaID             string    `json:"area_id"`
	ResponsibleUserIDs []string  `json:"responsible_user_ids"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(name string, startDate, endDate, registryStart, registryEnd time.Time, responsibleUserIDs []string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:               name,
		StartDate:          startDate,
		EndDate:            endDate,
		RegistryStartDate:  registryStart,
		RegistryEndDate:    registryEnd,
		ResponsibleUserIDs: responsibleUserIDs,
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
	}
}

// EndOfDay returns the last microsecond of t's UTC calendar day.
// Postgres timestamps keep microseconds, so the result survives a round trip and
// EndOfDay(EndOfDay(t)) == EndOfDay(t) whatever zone the value is read back in.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Microsecond), time.UTC)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ValidateDates checks the date-only ordering used when an event is first submitted.
func (e *Event) ValidateDates() error {
	if dateOnly(e.EndDate).Before(dateOnly(e.StartDate)) {
		return ErrInvalidInput
	}
	if e.RegistryEndDate.Before(e.RegistryStartDate) {
		return ErrInvalidInput
	}
	return nil
}

// Normalize moves EndDate to the end of its day and re-validates the full instants.
// It runs before every persist.
func (e *Event) Normalize() error {
	e.EndDate = EndOfDay(e.EndDate)
	if e.EndDate.Before(e.StartDate) {
		return ErrInvalidInput
	}
	if e.RegistryEndDate.Before(e.RegistryStartDate) {
		return ErrInvalidInput
	}
	return nil
}

// Active reports whether the event has not ended yet at now.
func (e *Event) Active(now time.Time) bool {
	return e.EndDate.After(now)
}

// Ongoing reports whether now falls inside [StartDate, EndDate).
func (e *Event) Ongoing(now time.Time) bool {
	return !now.Before(e.StartDate) && now.Before(e.EndDate)
}

// InRegistryWindow reports whether now lies within [RegistryStartDate, RegistryEndDate].
func (e *Event) InRegistryWindow(now time.Time) bool {
	return !now.Before(e.RegistryStartDate) && !now.After(e.RegistryEndDate)
}

// IsResponsible reports whether userID is one of the event organizers.
func (e *Event) IsResponsible(userID string) bool {
	return containsID(e.ResponsibleUserIDs, userID)
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, event *Event) error
}

// EventService defines the thin event management used to host activities.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	UpdateEvent(ctx context.Context, eventID, callerID string, patch EventPatch) (*Event, error)
}

// EventPatch holds the optional fields accepted by EventService.UpdateEvent.
type EventPatch struct {
	Name              *string
	StartDate         *time.Time
	EndDate           *time.Time
	RegistryStartDate *time.Time
	RegistryEndDate   *time.Time
	StatusVisible     *bool
	StatusActive      *bool
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
