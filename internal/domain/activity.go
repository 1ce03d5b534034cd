package domain

import (
	"context"
	"strconv"
	"time"
)

// Activity is a talk or workshop of an event, held in one or more schedules.
// swagger:model Activity
type Activity struct {
	ID                  string      `json:"id"`
	EventID             string      `json:"event_id"`
	CategoryID          string      `json:"category_id"`
	Title               string      `json:"title"`
	Description         string      `json:"description"`
	TotalVacancy        int         `json:"total_vacancy"`
	WorkloadInMinutes   int         `json:"workload_in_minutes"`
	ReadyForCertificate bool        `json:"ready_for_certificate_emission"`
	IndexInCategory     int         `json:"index_in_category"`
	Schedules           []*Schedule `json:"schedules"`
	ResponsibleUserIDs  []string    `json:"responsible_user_ids"`
	TeachingUserIDs     []string    `json:"teaching_user_ids"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// IsResponsible reports whether userID is responsible for the activity.
func (a *Activity) IsResponsible(userID string) bool {
	return containsID(a.ResponsibleUserIDs, userID)
}

// RoomIDs returns the distinct rooms referenced by the activity schedules, in schedule order.
func (a *Activity) RoomIDs() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range a.Schedules {
		if s.RoomID == nil {
			continue
		}
		if _, ok := seen[*s.RoomID]; ok {
			continue
		}
		seen[*s.RoomID] = struct{}{}
		out = append(out, *s.RoomID)
	}
	return out
}

// Validate returns every shape problem of the activity. An empty result means valid.
func (a *Activity) Validate() []string {
	var errs []string
	if a.Title == "" {
		errs = append(errs, "title is required")
	}
	if a.TotalVacancy <= 0 {
		errs = append(errs, "total_vacancy must be greater than zero")
	}
	if a.WorkloadInMinutes <= 0 {
		errs = append(errs, "workload_in_minutes must be greater than zero")
	}
	for i, s := range a.Schedules {
		for _, msg := range s.Validate() {
			errs = append(errs, "schedules["+strconv.Itoa(i)+"]: "+msg)
		}
	}
	return errs
}

// Schedule is one time slot of an activity, either in a room or behind a URL.
// swagger:model Schedule
type Schedule struct {
	ID                string    `json:"id"`
	ActivityID        string    `json:"activity_id"`
	StartDate         time.Time `json:"start_date"`
	DurationInMinutes int       `json:"duration_in_minutes"`
	RoomID            *string   `json:"room_id,omitempty"`
	URL               *string   `json:"url,omitempty"`
}

// EndDate returns the exclusive end of the schedule interval.
func (s *Schedule) EndDate() time.Time {
	return s.StartDate.Add(time.Duration(s.DurationInMinutes) * time.Minute)
}

// Validate returns the shape problems of the schedule.
func (s *Schedule) Validate() []string {
	var errs []string
	if s.DurationInMinutes <= 0 {
		errs = append(errs, "duration_in_minutes must be greater than zero")
	}
	hasRoom := s.RoomID != nil && *s.RoomID != ""
	hasURL := s.URL != nil && *s.URL != ""
	if hasRoom == hasURL {
		errs = append(errs, "exactly one of room_id or url is required")
	}
	return errs
}

// SameSlots reports whether both schedule lists describe the same intervals, in order.
func SameSlots(a, b []*Schedule) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].StartDate.Equal(b[i].StartDate) || a[i].DurationInMinutes != b[i].DurationInMinutes {
			return false
		}
	}
	return true
}

// Room is a physical place where schedules happen.
// swagger:model Room
type Room struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
}

// ActivityCategory classifies activities inside an event (talk, workshop, ...).
type ActivityCategory struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ScheduleFilter selects stored schedules of events still active at Now whose interval
// intersects [Start, End). Exactly one of TeacherID, RoomID or RegisteredUserID is set.
type ScheduleFilter struct {
	TeacherID         string
	RoomID            string
	RegisteredUserID  string
	Start             time.Time
	End               time.Time
	ExcludeActivityID string
	Now               time.Time
}

// ScheduleMatch is a stored schedule with the names needed to report a conflict against it.
type ScheduleMatch struct {
	Schedule      *Schedule
	ActivityTitle string
	EventName     string
	RoomCode      *string
}

// ScheduleFinder runs the range query used by the conflict detector.
type ScheduleFinder interface {
	FindOverlapping(ctx context.Context, filter ScheduleFilter) ([]*ScheduleMatch, error)
}

// ActivityRepository defines storage for activities, their schedules and user links.
type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	Update(ctx context.Context, activity *Activity) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Activity, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Activity, error)
	CountInCategory(ctx context.Context, eventID, categoryID string) (int, error)
	// ShiftCategoryIndex decrements IndexInCategory of every activity of the pair whose index is greater than after.
	ShiftCategoryIndex(ctx context.Context, eventID, categoryID string, after int) error
	SetReadyForCertificate(ctx context.Context, id string, ready bool) error
}

// RoomRepository resolves rooms referenced by schedules.
type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*Room, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Room, error)
}

// CategoryRepository resolves activity categories.
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*ActivityCategory, error)
}

// ActivityService defines create/edit/delete of activities with conflict checks and category indexing.
type ActivityService interface {
	// Create, Update, Delete and SetReadyForCertificate require callerID to be an event organizer
	// (SetReadyForCertificate also accepts an activity responsible).
	Create(ctx context.Context, activity *Activity, callerID string) error
	Update(ctx context.Context, activity *Activity, callerID string) error
	Delete(ctx context.Context, activityID, callerID string) error
	Get(ctx context.Context, activityID string) (*Activity, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Activity, error)
	SetReadyForCertificate(ctx context.Context, activityID string, ready bool, callerID string) error
}
