package domain

import (
	"errors"
	"fmt"
)

// Generic sentinel errors shared by services and repositories.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)

// Business rule violations. Controllers render all of them as 400 with a rule-specific code.
var (
	ErrResponsibleRegistry    = errors.New("a responsible user cannot register in the activity")
	ErrAlreadyRegistered      = errors.New("user is already registered in the activity")
	ErrArchivedEvent          = errors.New("event has already ended")
	ErrInvisibleEvent         = errors.New("event is not visible")
	ErrOutsideRegistryWindow  = errors.New("event is outside its registry period")
	ErrEventChangeRestriction = errors.New("event does not allow this change")
	ErrIncompleteActivity     = errors.New("activity needs at least one schedule and one responsible user")
	ErrActivityHasRegistries  = errors.New("activity has registered users")
	ErrNoVacancy              = errors.New("activity has no vacancy left")
	ErrCertificatesNotReady   = errors.New("event activities are not ready for certificate emission")
)

var businessRules = []error{
	ErrResponsibleRegistry,
	ErrAlreadyRegistered,
	ErrArchivedEvent,
	ErrInvisibleEvent,
	ErrOutsideRegistryWindow,
	ErrEventChangeRestriction,
	ErrIncompleteActivity,
	ErrActivityHasRegistries,
	ErrNoVacancy,
	ErrCertificatesNotReady,
}

// IsBusinessRule reports whether err is (or wraps) one of the business rule violations.
func IsBusinessRule(err error) bool {
	for _, rule := range businessRules {
		if errors.Is(err, rule) {
			return true
		}
	}
	return false
}

// ErrDateConflict matches every *ConflictError through errors.Is.
var ErrDateConflict = errors.New("date conflict")

// ConflictKind names the pass of the conflict detector that produced a ConflictError.
type ConflictKind string

const (
	ConflictKindSelf     ConflictKind = "self"
	ConflictKindTeacher  ConflictKind = "teacher"
	ConflictKindRoom     ConflictKind = "room"
	ConflictKindRegistry ConflictKind = "registry"
)

// Conflict is one overlap between a candidate schedule and another schedule.
// Index is the position of the offending candidate in the submitted schedule list.
// swagger:model Conflict
type Conflict struct {
	ActivityName string  `json:"activityName"`
	EventName    string  `json:"eventName"`
	RoomName     *string `json:"roomName,omitempty"`
	Index        int     `json:"index"`
}

// ConflictError carries every conflict found by one detector pass.
type ConflictError struct {
	Kind      ConflictKind
	Message   string
	Conflicts []Conflict
}

// NewConflictError returns a ConflictError with the default message for kind.
func NewConflictError(kind ConflictKind, conflicts []Conflict) *ConflictError {
	return &ConflictError{Kind: kind, Message: conflictMessages[kind], Conflicts: conflicts}
}

var conflictMessages = map[ConflictKind]string{
	ConflictKindSelf:     "activity schedules overlap each other",
	ConflictKindTeacher:  "a teaching user already has an activity at this time",
	ConflictKindRoom:     "the room is already booked at this time",
	ConflictKindRegistry: "user is already registered in an activity at this time",
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s (%d conflicts)", e.Message, len(e.Conflicts))
}

// Is makes errors.Is(err, ErrDateConflict) true for any ConflictError.
func (e *ConflictError) Is(target error) bool {
	return target == ErrDateConflict
}
