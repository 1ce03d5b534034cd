package services

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"

	"eventactivities/internal/domain"
)

const presenceSheetName = "Presences"

type exportService struct {
	uow            domain.UnitOfWork
	contextTimeout time.Duration
	now            func() time.Time
}

func NewExportService(uow domain.UnitOfWork, timeout time.Duration) domain.ExportService {
	return &exportService{
		uow:            uow,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *exportService) UserAgenda(ctx context.Context, userID string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//eventactivities//agenda//EN")
	stamp := s.now().UTC()

	err := s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		registries, err := store.Registries().ListByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("list registries: %w", err)
		}
		for _, r := range registries {
			activity, err := getActivity(ctx, store, r.ActivityID)
			if err != nil {
				return err
			}
			event, err := getEvent(ctx, store, activity.EventID)
			if err != nil {
				return err
			}
			rooms, err := roomCodes(ctx, store, activity)
			if err != nil {
				return err
			}
			for _, sch := range activity.Schedules {
				vevent := cal.AddEvent(sch.ID + "@eventactivities")
				vevent.SetDtStampTime(stamp)
				vevent.SetStartAt(sch.StartDate)
				vevent.SetEndAt(sch.EndDate())
				vevent.SetSummary(activity.Title)
				vevent.SetDescription(event.Name)
				switch {
				case sch.RoomID != nil:
					vevent.SetLocation(rooms[*sch.RoomID])
				case sch.URL != nil:
					vevent.SetLocation(*sch.URL)
					vevent.SetURL(*sch.URL)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return []byte(cal.Serialize()), nil
}

// PresenceSheet lays out one row per registry and one column per schedule, marking each
// presence with an X.
func (s *exportService) PresenceSheet(ctx context.Context, activityID, callerID string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		activity   *domain.Activity
		registries []*domain.Registry
		users      map[string]*domain.User
	)
	err := s.uow.Do(ctx, func(ctx context.Context, store domain.Store) error {
		var err error
		activity, err = getActivity(ctx, store, activityID)
		if err != nil {
			return err
		}
		if !activity.IsResponsible(callerID) {
			event, err := getEvent(ctx, store, activity.EventID)
			if err != nil {
				return err
			}
			if !event.IsResponsible(callerID) {
				return domain.ErrForbidden
			}
		}
		registries, err = store.Registries().ListByActivityID(ctx, activityID)
		if err != nil {
			return fmt.Errorf("list registries: %w", err)
		}
		ids := make([]string, 0, len(registries))
		for _, r := range registries {
			ids = append(ids, r.UserID)
		}
		found, err := store.Users().ListByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		users = make(map[string]*domain.User, len(found))
		for _, u := range found {
			users[u.ID] = u
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", presenceSheetName); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := []any{"Name", "Email"}
	for _, sch := range activity.Schedules {
		header = append(header, sch.StartDate.Format("2006-01-02 15:04"))
	}
	if err := f.SetSheetRow(presenceSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, r := range registries {
		row := []any{"", ""}
		if u, ok := users[r.UserID]; ok {
			row = []any{u.Name, u.Email}
		}
		present := make(map[string]bool, len(r.Presences))
		for _, p := range r.Presences {
			present[p.ScheduleID] = p.IsPresent
		}
		for _, sch := range activity.Schedules {
			mark := ""
			if present[sch.ID] {
				mark = "X"
			}
			row = append(row, mark)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(presenceSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func roomCodes(ctx context.Context, store domain.Store, activity *domain.Activity) (map[string]string, error) {
	ids := activity.RoomIDs()
	codes := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return codes, nil
	}
	rooms, err := store.Rooms().ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	for _, r := range rooms {
		codes[r.ID] = r.Code
	}
	return codes, nil
}
