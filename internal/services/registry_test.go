package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventactivities/internal/domain"
)

func TestRegistryService_Register(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	event := f.createEvent(t, "Conf")
	a := f.createActivity(t, newActivity(event.ID, talk, "Talk", inRoom(roomR1, at(8, 0), 30), inRoom(roomR1, at(14, 0), 30)))

	reg, err := f.registries.Register(ctx, a.ID, studentID)
	require.NoError(t, err)
	assert.NotEmpty(t, reg.ID)
	assert.True(t, reg.ReadyForCertificate)
	assert.Equal(t, clockNow, reg.RegistryDate)
	require.Len(t, reg.Presences, 2)
	for i, p := range reg.Presences {
		assert.True(t, p.IsPresent)
		assert.Equal(t, a.Schedules[i].ID, p.ScheduleID)
	}

	_, err = f.registries.Register(ctx, a.ID, studentID)
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)

	require.NoError(t, f.registries.Delete(ctx, a.ID, studentID))
	_, err = f.registries.Register(ctx, a.ID, studentID)
	assert.NoError(t, err)

	_, err = f.registries.Register(ctx, "missing", studentID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistryService_Register_Window(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"before the window", registryStart.Add(-time.Nanosecond), domain.ErrOutsideRegistryWindow},
		{"window opens", registryStart, nil},
		{"window closes", registryEnd, nil},
		{"after the window", registryEnd.Add(time.Nanosecond), domain.ErrOutsideRegistryWindow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			event := f.createEvent(t, "Conf")
			a := f.createActivity(t, newActivity(event.ID, talk, "Talk", online(at(8, 0), 30)))
			f.clock.Set(tt.now)

			_, err := f.registries.Register(ctx, a.ID, studentID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegistryService_Register_Rules(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	event := f.createEvent(t, "Conf")

	t.Run("responsible user cannot self-register", func(t *testing.T) {
		a := f.createActivity(t, newActivity(event.ID, talk, "Talk", online(at(8, 0), 30)))
		_, err := f.registries.Register(ctx, a.ID, speakerID)
		assert.ErrorIs(t, err, domain.ErrResponsibleRegistry)

		reg, err := f.registries.RegisterByResponsible(ctx, a.ID, speakerID, organizerID)
		require.NoError(t, err)
		assert.Equal(t, speakerID, reg.UserID)
	})

	t.Run("no vacancy", func(t *testing.T) {
		a := newActivity(event.ID, talk, "Tiny", online(at(9, 0), 30))
		a.TotalVacancy = 1
		f.createActivity(t, a)
		_, err := f.registries.Register(ctx, a.ID, studentID)
		require.NoError(t, err)
		_, err = f.registries.Register(ctx, a.ID, student2ID)
		assert.ErrorIs(t, err, domain.ErrNoVacancy)

		_, err = f.registries.RegisterByResponsible(ctx, a.ID, student2ID, speakerID)
		assert.NoError(t, err)
	})

	t.Run("overlapping registration", func(t *testing.T) {
		first := f.createActivity(t, newActivity(event.ID, talk, "First", inRoom(roomR1, at(15, 0), 60)))
		second := f.createActivity(t, newActivity(event.ID, talk, "Second", inRoom(roomR2, at(15, 30), 60)))
		_, err := f.registries.Register(ctx, first.ID, student2ID)
		require.NoError(t, err)

		_, err = f.registries.Register(ctx, second.ID, student2ID)
		var cerr *domain.ConflictError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, domain.ConflictKindRegistry, cerr.Kind)
		require.Len(t, cerr.Conflicts, 1)
		assert.Equal(t, "First", cerr.Conflicts[0].ActivityName)
		assert.Equal(t, 0, cerr.Conflicts[0].Index)
	})

	t.Run("responsible registration checks the caller and the user", func(t *testing.T) {
		a := f.createActivity(t, newActivity(event.ID, talk, "Guarded", online(at(18, 0), 30)))
		_, err := f.registries.RegisterByResponsible(ctx, a.ID, studentID, student2ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		_, err = f.registries.RegisterByResponsible(ctx, a.ID, "ghost", organizerID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRegistryService_InvisibleEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	event := f.createEvent(t, "Hidden")
	a := f.createActivity(t, newActivity(event.ID, talk, "Talk", online(at(8, 0), 30)))
	_, err := f.registries.Register(ctx, a.ID, studentID)
	require.NoError(t, err)

	hidden := false
	_, err = f.events.UpdateEvent(ctx, event.ID, organizerID, domain.EventPatch{StatusVisible: &hidden})
	require.NoError(t, err)

	_, err = f.registries.Register(ctx, a.ID, student2ID)
	assert.ErrorIs(t, err, domain.ErrInvisibleEvent)
	assert.ErrorIs(t, f.registries.Delete(ctx, a.ID, studentID), domain.ErrInvisibleEvent)
}

func TestRegistryService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	event := f.createEvent(t, "Conf")
	a := f.createActivity(t, newActivity(event.ID, talk, "Talk", online(at(8, 0), 30)))

	assert.ErrorIs(t, f.registries.Delete(ctx, a.ID, studentID), domain.ErrNotFound)

	_, err := f.registries.Register(ctx, a.ID, studentID)
	require.NoError(t, err)
	f.clock.Set(eventDay.Add(72 * time.Hour))
	assert.ErrorIs(t, f.registries.Delete(ctx, a.ID, studentID), domain.ErrArchivedEvent)
}

func TestRegistryService_OrganizerTools(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	event := f.createEvent(t, "Conf")
	a := f.createActivity(t, newActivity(event.ID, talk, "Talk", online(at(8, 0), 30)))
	reg, err := f.registries.Register(ctx, a.ID, studentID)
	require.NoError(t, err)
	scheduleID := a.Schedules[0].ID

	assert.ErrorIs(t, f.registries.SetPresence(ctx, reg.ID, scheduleID, false, studentID), domain.ErrForbidden)
	require.NoError(t, f.registries.SetPresence(ctx, reg.ID, scheduleID, false, speakerID))
	assert.ErrorIs(t, f.registries.SetPresence(ctx, reg.ID, "other-schedule", false, speakerID), domain.ErrNotFound)
	require.NoError(t, f.registries.SetReadyForCertificate(ctx, reg.ID, false, organizerID))
	assert.ErrorIs(t, f.registries.SetReadyForCertificate(ctx, "missing", false, organizerID), domain.ErrNotFound)

	assert.ErrorIs(t, f.registries.Rate(ctx, a.ID, studentID, 6), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.registries.Rate(ctx, a.ID, student2ID, 4), domain.ErrNotFound)
	require.NoError(t, f.registries.Rate(ctx, a.ID, studentID, 4))

	mine, err := f.registries.ListByUser(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	got := mine[0].Registry
	assert.False(t, got.ReadyForCertificate)
	assert.False(t, got.Presences[0].IsPresent)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 4, *got.Rating)
	assert.Equal(t, a.ID, mine[0].Activity.ID)
}
