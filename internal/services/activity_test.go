package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventactivities/internal/domain"
)

func TestActivityService_ConflictThenReindexScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	event := f.createEvent(t, "Week of Code")

	a := f.createActivity(t, newActivity(event.ID, talk, "A", inRoom(roomR1, at(10, 0), 30)))
	assert.Equal(t, 1, a.IndexInCategory)

	b := newActivity(event.ID, talk, "B", inRoom(roomR1, at(10, 15), 30))
	err := f.activities.Create(ctx, b, organizerID)
	var cerr *domain.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, domain.ConflictKindRoom, cerr.Kind)
	require.Len(t, cerr.Conflicts, 1)
	assert.Equal(t, 0, cerr.Conflicts[0].Index)
	assert.Equal(t, "A", cerr.Conflicts[0].ActivityName)
	assert.Equal(t, "Week of Code", cerr.Conflicts[0].EventName)
	require.NotNil(t, cerr.Conflicts[0].RoomName)
	assert.Equal(t, "R1", *cerr.Conflicts[0].RoomName)

	b = f.createActivity(t, newActivity(event.ID, talk, "B", inRoom(roomR2, at(10, 15), 30)))
	assert.Equal(t, 2, b.IndexInCategory)

	require.NoError(t, f.activities.Delete(ctx, a.ID, organizerID))
	assert.Equal(t, 1, f.indexOf(t, b.ID))
}

func TestActivityService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	event := f.createEvent(t, "Conf")

	tests := []struct {
		name    string
		mutate  func(a *domain.Activity)
		caller  string
		wantErr error
	}{
		{
			name:    "no schedules",
			mutate:  func(a *domain.Activity) { a.Schedules = nil },
			caller:  organizerID,
			wantErr: domain.ErrIncompleteActivity,
		},
		{
			name:    "no responsible users",
			mutate:  func(a *domain.Activity) { a.ResponsibleUserIDs = nil },
			caller:  organizerID,
			wantErr: domain.ErrIncompleteActivity,
		},
		{
			name: "room and url together",
			mutate: func(a *domain.Activity) {
				a.Schedules[0].URL = strPtr("https://meet.example.com")
			},
			caller:  organizerID,
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "zero vacancy",
			mutate:  func(a *domain.Activity) { a.TotalVacancy = 0 },
			caller:  organizerID,
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "non-positive duration",
			mutate:  func(a *domain.Activity) { a.Schedules[0].DurationInMinutes = 0 },
			caller:  organizerID,
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "unknown room",
			mutate:  func(a *domain.Activity) { a.Schedules[0].RoomID = strPtr("nowhere") },
			caller:  organizerID,
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "unknown teacher",
			mutate:  func(a *domain.Activity) { a.TeachingUserIDs = []string{"ghost"} },
			caller:  organizerID,
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "unknown category",
			mutate:  func(a *domain.Activity) { a.CategoryID = "cat-missing" },
			caller:  organizerID,
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "unknown event",
			mutate:  func(a *domain.Activity) { a.EventID = "ev-missing" },
			caller:  organizerID,
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "caller is not an organizer",
			mutate:  func(a *domain.Activity) {},
			caller:  studentID,
			wantErr: domain.ErrForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newActivity(event.ID, talk, "Talk", inRoom(roomR1, at(9, 0), 60))
			tt.mutate(a)
			err := f.activities.Create(ctx, a, tt.caller)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	list, err := f.activities.ListByEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestActivityService_Create_SelfAndTeacherConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	event := f.createEvent(t, "Conf")

	self := newActivity(event.ID, talk, "Twice", online(at(9, 0), 60), online(at(9, 30), 60))
	err := f.activities.Create(ctx, self, organizerID)
	var cerr *domain.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, domain.ConflictKindSelf, cerr.Kind)
	assert.Len(t, cerr.Conflicts, 2)

	taught := newActivity(event.ID, talk, "Morning", online(at(9, 0), 60))
	taught.TeachingUserIDs = []string{teacherID}
	f.createActivity(t, taught)

	clash := newActivity(event.ID, workshop, "Clash", inRoom(roomR1, at(9, 30), 60))
	clash.TeachingUserIDs = []string{teacherID}
	err = f.activities.Create(ctx, clash, organizerID)
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, domain.ConflictKindTeacher, cerr.Kind)
	assert.Equal(t, "Morning", cerr.Conflicts[0].ActivityName)
	assert.Nil(t, cerr.Conflicts[0].RoomName)
}

// The memory store serialises units of work, so this only checks the service side of the
// allocation under concurrent callers. The postgres lock ordering is covered by
// category_index_test.go.
func TestActivityService_ConcurrentCreatesGetContiguousIndexes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	event := f.createEvent(t, "Conf")

	const n = 12
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a := newActivity(event.ID, talk, fmt.Sprintf("Talk %d", i), online(at(8, 0).Add(time.Duration(i)*time.Hour), 30))
			errs <- f.activities.Create(ctx, a, organizerID)
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := f.activities.ListByEvent(ctx, event.ID)
	require.NoError(t, err)
	indexes := make([]int, 0, len(list))
	for _, a := range list {
		indexes = append(indexes, a.IndexInCategory)
	}
	sort.Ints(indexes)
	want := make([]int, n)
	for i := range want {
		want[i] = i + 1
	}
	assert.Equal(t, want, indexes)
}

func TestActivityService_Delete_ShiftsFollowingIndexes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	event := f.createEvent(t, "Conf")

	first := f.createActivity(t, newActivity(event.ID, talk, "1", online(at(8, 0), 30)))
	second := f.createActivity(t, newActivity(event.ID, talk, "2", online(at(9, 0), 30)))
	third := f.createActivity(t, newActivity(event.ID, talk, "3", online(at(10, 0), 30)))
	other := f.createActivity(t, newActivity(event.ID, workshop, "W", online(at(11, 0), 30)))

	require.NoError(t, f.activities.Delete(ctx, second.ID, organizerID))
	assert.Equal(t, 1, f.indexOf(t, first.ID))
	assert.Equal(t, 2, f.indexOf(t, third.ID))
	assert.Equal(t, 1, f.indexOf(t, other.ID))

	_, err := f.activities.Get(ctx, second.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActivityService_Delete_Restrictions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	event := f.createEvent(t, "Conf")
	a := f.createActivity(t, newActivity(event.ID, talk, "Talk", online(at(8, 0), 30)))

	assert.ErrorIs(t, f.activities.Delete(ctx, a.ID, studentID), domain.ErrForbidden)

	_, err := f.registries.Register(ctx, a.ID, studentID)
	require.NoError(t, err)
	assert.ErrorIs(t, f.activities.Delete(ctx, a.ID, organizerID), domain.ErrActivityHasRegistries)

	require.NoError(t, f.registries.Delete(ctx, a.ID, studentID))
	f.clock.Set(eventDay.Add(time.Hour))
	assert.ErrorIs(t, f.activities.Delete(ctx, a.ID, organizerID), domain.ErrEventChangeRestriction)

	assert.ErrorIs(t, f.activities.Delete(ctx, "missing", organizerID), domain.ErrNotFound)
}

func TestActivityService_Update_CategoryChangeMovesIndex(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	event := f.createEvent(t, "Conf")

	a := f.createActivity(t, newActivity(event.ID, talk, "A", online(at(8, 0), 30)))
	b := f.createActivity(t, newActivity(event.ID, talk, "B", online(at(9, 0), 30)))
	c := f.createActivity(t, newActivity(event.ID, talk, "C", online(at(10, 0), 30)))
	w := f.createActivity(t, newActivity(event.ID, workshop, "W", online(at(11, 0), 30)))

	moved := newActivity(event.ID, workshop, "B", online(at(9, 0), 30))
	moved.ID = b.ID
	require.NoError(t, f.activities.Update(ctx, moved, organizerID))

	assert.Equal(t, 1, f.indexOf(t, a.ID))
	assert.Equal(t, 2, f.indexOf(t, c.ID))
	assert.Equal(t, 1, f.indexOf(t, w.ID))
	assert.Equal(t, 2, f.indexOf(t, b.ID))
}

func TestActivityService_Update_Registries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	event := f.createEvent(t, "Conf")
	a := f.createActivity(t, newActivity(event.ID, talk, "Talk", inRoom(roomR1, at(8, 0), 30)))
	_, err := f.registries.Register(ctx, a.ID, studentID)
	require.NoError(t, err)

	t.Run("same slots keep registries and presences", func(t *testing.T) {
		edit := newActivity(event.ID, talk, "Talk renamed", inRoom(roomR2, at(8, 0), 30))
		edit.ID = a.ID
		require.NoError(t, f.activities.Update(ctx, edit, organizerID))

		mine, err := f.registries.ListByUser(ctx, studentID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, "Talk renamed", mine[0].Activity.Title)
		require.Len(t, mine[0].Registry.Presences, 1)
		assert.Equal(t, mine[0].Activity.Schedules[0].ID, mine[0].Registry.Presences[0].ScheduleID)
	})

	t.Run("moved slot drops registries", func(t *testing.T) {
		edit := newActivity(event.ID, talk, "Talk renamed", inRoom(roomR2, at(9, 0), 30))
		edit.ID = a.ID
		require.NoError(t, f.activities.Update(ctx, edit, organizerID))

		mine, err := f.registries.ListByUser(ctx, studentID)
		require.NoError(t, err)
		assert.Empty(t, mine)
	})

	t.Run("moving to another event is rejected", func(t *testing.T) {
		other := f.createEvent(t, "Other")
		edit := newActivity(other.ID, talk, "Talk", inRoom(roomR2, at(9, 0), 30))
		edit.ID = a.ID
		assert.ErrorIs(t, f.activities.Update(ctx, edit, organizerID), domain.ErrEventChangeRestriction)
	})

	t.Run("editing keeps its own slots out of the room check", func(t *testing.T) {
		edit := newActivity(event.ID, talk, "Talk", inRoom(roomR2, at(9, 0), 45))
		edit.ID = a.ID
		require.NoError(t, f.activities.Update(ctx, edit, organizerID))
	})
}

func TestActivityService_Update_ScheduleIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	event := f.createEvent(t, "Conf")
	a := f.createActivity(t, newActivity(event.ID, talk, "A", inRoom(roomR1, at(8, 0), 30)))
	b := f.createActivity(t, newActivity(event.ID, talk, "B", inRoom(roomR2, at(8, 0), 30)))
	aSlot := a.Schedules[0].ID
	bSlot := b.Schedules[0].ID

	t.Run("id of another activity becomes a new schedule", func(t *testing.T) {
		moved := inRoom(roomR2, at(10, 0), 30)
		moved.ID = aSlot
		edit := newActivity(event.ID, talk, "B", moved)
		edit.ID = b.ID
		require.NoError(t, f.activities.Update(ctx, edit, organizerID))

		gotB, err := f.activities.Get(ctx, b.ID)
		require.NoError(t, err)
		require.Len(t, gotB.Schedules, 1)
		assert.NotEqual(t, aSlot, gotB.Schedules[0].ID)
		assert.True(t, at(10, 0).Equal(gotB.Schedules[0].StartDate))

		gotA, err := f.activities.Get(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, gotA.Schedules, 1)
		assert.Equal(t, aSlot, gotA.Schedules[0].ID)
		assert.True(t, at(8, 0).Equal(gotA.Schedules[0].StartDate))
		bSlot = gotB.Schedules[0].ID
	})

	t.Run("own id is kept when the slot moves", func(t *testing.T) {
		moved := inRoom(roomR2, at(11, 0), 30)
		moved.ID = bSlot
		edit := newActivity(event.ID, talk, "B", moved)
		edit.ID = b.ID
		require.NoError(t, f.activities.Update(ctx, edit, organizerID))

		got, err := f.activities.Get(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, bSlot, got.Schedules[0].ID)
	})

	t.Run("repeated id keeps only the first", func(t *testing.T) {
		first := inRoom(roomR2, at(12, 0), 30)
		first.ID = bSlot
		second := inRoom(roomR2, at(13, 0), 30)
		second.ID = bSlot
		edit := newActivity(event.ID, talk, "B", first, second)
		edit.ID = b.ID
		require.NoError(t, f.activities.Update(ctx, edit, organizerID))

		got, err := f.activities.Get(ctx, b.ID)
		require.NoError(t, err)
		require.Len(t, got.Schedules, 2)
		assert.Equal(t, bSlot, got.Schedules[0].ID)
		assert.NotEqual(t, bSlot, got.Schedules[1].ID)
	})
}

func TestActivityService_SetReadyForCertificate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	event := f.createEvent(t, "Conf")
	a := f.createActivity(t, newActivity(event.ID, talk, "Talk", online(at(8, 0), 30)))
	assert.False(t, a.ReadyForCertificate)

	assert.ErrorIs(t, f.activities.SetReadyForCertificate(ctx, a.ID, true, studentID), domain.ErrForbidden)
	require.NoError(t, f.activities.SetReadyForCertificate(ctx, a.ID, true, speakerID))

	got, err := f.activities.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.ReadyForCertificate)
}
