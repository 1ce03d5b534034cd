package scheduling

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"eventactivities/internal/domain"
)

// CurrentEventName is reported as the event of conflicts found among the candidate schedules themselves.
const CurrentEventName = "current event"

// Detector finds schedule conflicts for activities being created, edited or registered in.
type Detector struct {
	parallelism int
}

// NewDetector returns a Detector issuing at most parallelism range queries at once.
// Values below 1 mean sequential queries.
func NewDetector(parallelism int) *Detector {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Detector{parallelism: parallelism}
}

// CheckRequest describes the candidate schedules of an activity.
type CheckRequest struct {
	// ActivityID is empty for an activity that does not exist yet.
	ActivityID    string
	ActivityTitle string
	Schedules     []*domain.Schedule
	TeacherIDs    []string
	Now           time.Time
}

// Report holds the result of every detector pass.
type Report struct {
	Self    []domain.Conflict
	Teacher []domain.Conflict
	Room    []domain.Conflict
}

// Err returns a ConflictError for the first non-empty pass (self, teacher, room) or nil.
func (r Report) Err() error {
	switch {
	case len(r.Self) > 0:
		return domain.NewConflictError(domain.ConflictKindSelf, r.Self)
	case len(r.Teacher) > 0:
		return domain.NewConflictError(domain.ConflictKindTeacher, r.Teacher)
	case len(r.Room) > 0:
		return domain.NewConflictError(domain.ConflictKindRoom, r.Room)
	}
	return nil
}

// Check runs the self, teacher and room passes to completion and returns their conflicts.
// The returned error is only set when a query fails.
func (d *Detector) Check(ctx context.Context, finder domain.ScheduleFinder, req CheckRequest) (Report, error) {
	report := Report{Self: selfConflicts(req.ActivityTitle, req.Schedules)}

	var jobs []lookup
	for i, s := range req.Schedules {
		for _, teacherID := range req.TeacherIDs {
			jobs = append(jobs, lookup{index: i, kind: domain.ConflictKindTeacher, filter: d.filter(req.ActivityID, req.Now, s, domain.ScheduleFilter{TeacherID: teacherID})})
		}
	}
	for i, s := range req.Schedules {
		if s.RoomID == nil || *s.RoomID == "" {
			continue
		}
		jobs = append(jobs, lookup{index: i, kind: domain.ConflictKindRoom, filter: d.filter(req.ActivityID, req.Now, s, domain.ScheduleFilter{RoomID: *s.RoomID})})
	}

	if err := d.run(ctx, finder, jobs); err != nil {
		return Report{}, err
	}
	report.Teacher = collect(jobs, domain.ConflictKindTeacher, req.Schedules)
	report.Room = collect(jobs, domain.ConflictKindRoom, req.Schedules)
	return report, nil
}

// RegistrantRequest describes the schedules of the activity a user is registering in.
type RegistrantRequest struct {
	ActivityID string
	UserID     string
	Schedules  []*domain.Schedule
	Now        time.Time
}

// CheckRegistrant compares the activity schedules with the user's other active registrations.
// It returns a ConflictError of kind registry when any overlap is found.
func (d *Detector) CheckRegistrant(ctx context.Context, finder domain.ScheduleFinder, req RegistrantRequest) error {
	jobs := make([]lookup, 0, len(req.Schedules))
	for i, s := range req.Schedules {
		jobs = append(jobs, lookup{index: i, kind: domain.ConflictKindRegistry, filter: d.filter(req.ActivityID, req.Now, s, domain.ScheduleFilter{RegisteredUserID: req.UserID})})
	}
	if err := d.run(ctx, finder, jobs); err != nil {
		return err
	}
	if conflicts := collect(jobs, domain.ConflictKindRegistry, req.Schedules); len(conflicts) > 0 {
		return domain.NewConflictError(domain.ConflictKindRegistry, conflicts)
	}
	return nil
}

type lookup struct {
	index   int
	kind    domain.ConflictKind
	filter  domain.ScheduleFilter
	matches []*domain.ScheduleMatch
}

func (d *Detector) filter(activityID string, now time.Time, s *domain.Schedule, key domain.ScheduleFilter) domain.ScheduleFilter {
	key.Start = s.StartDate
	key.End = s.EndDate()
	key.ExcludeActivityID = activityID
	key.Now = now
	return key
}

func (d *Detector) run(ctx context.Context, finder domain.ScheduleFinder, jobs []lookup) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.parallelism)
	for i := range jobs {
		job := &jobs[i]
		g.Go(func() error {
			matches, err := finder.FindOverlapping(gctx, job.filter)
			if err != nil {
				return fmt.Errorf("find %s schedules: %w", job.kind, err)
			}
			job.matches = matches
			return nil
		})
	}
	return g.Wait()
}

// selfConflicts flags every candidate that overlaps at least one other candidate.
func selfConflicts(title string, schedules []*domain.Schedule) []domain.Conflict {
	var conflicts []domain.Conflict
	for i, a := range schedules {
		hit := false
		for j, b := range schedules {
			if i == j {
				continue
			}
			if Overlaps(a.StartDate, a.DurationInMinutes, b.StartDate, b.DurationInMinutes) {
				hit = true
			}
		}
		if hit {
			conflicts = append(conflicts, domain.Conflict{ActivityName: title, EventName: CurrentEventName, Index: i})
		}
	}
	return conflicts
}

// collect turns the matches of every job of kind into conflicts, keeping job order and reporting
// a stored schedule at most once per candidate index.
func collect(jobs []lookup, kind domain.ConflictKind, schedules []*domain.Schedule) []domain.Conflict {
	type seenKey struct {
		index      int
		scheduleID string
	}
	seen := make(map[seenKey]struct{})
	var conflicts []domain.Conflict
	for _, job := range jobs {
		if job.kind != kind {
			continue
		}
		candidate := schedules[job.index]
		for _, m := range job.matches {
			if !Overlaps(candidate.StartDate, candidate.DurationInMinutes, m.Schedule.StartDate, m.Schedule.DurationInMinutes) {
				continue
			}
			key := seenKey{index: job.index, scheduleID: m.Schedule.ID}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			conflicts = append(conflicts, domain.Conflict{
				ActivityName: m.ActivityTitle,
				EventName:    m.EventName,
				RoomName:     m.RoomCode,
				Index:        job.index,
			})
		}
	}
	return conflicts
}
