package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avdonin/resbook/internal/database"
	"github.com/avdonin/resbook/internal/model"
	"github.com/avdonin/resbook/internal/timeline"
)

func prepare(t *testing.T) *database.DatabaseManager {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect database")
	}

	m := database.New(db)
	require.NoError(t, m.Migrate())

	return m
}

func addMission(t *testing.T, dbm *database.DatabaseManager, name string) *model.Mission {
	t.Helper()

	m := &model.Mission{Name: name, ScheduledStart: ts(8)}
	require.NoError(t, NewMissionService(dbm).Create(m))
	require.NotEmpty(t, m.ID)

	return m
}

func stationService(dbm *database.DatabaseManager) *BookingService[model.StationEvent, model.StationEventCreate, model.StationEventUpdate] {
	return NewBookingService[model.StationEvent, model.StationEventCreate, model.StationEventUpdate](dbm, model.ResourceStation)
}

func ts(hour int) time.Time {
	return time.Date(2025, 6, 1, hour, 0, 0, 0, time.UTC)
}

func tsp(hour int) *time.Time {
	t := ts(hour)
	return &t
}

func TestUpdateTimelineAutoFix(t *testing.T) {
	dbm := prepare(t)
	m := addMission(t, dbm, "m1")
	svc := stationService(dbm)

	require.NoError(t, dbm.Create(&model.StationEvent{MissionID: m.ID, StationID: 1, StartTime: ts(10)}))

	err := svc.UpdateTimeline(context.Background(), m.ID,
		[]model.StationEventCreate{{StationID: 1, StartTime: ts(9), EndTime: tsp(11)}},
		nil, nil, true)
	require.NoError(t, err)

	events, err := database.NewEventStore[model.StationEvent](dbm.DB(), model.ResourceStation).ForMission(m.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// the create got truncated to end where the open-ended event starts
	assert.WithinDuration(t, ts(9), events[0].StartTime, time.Second)
	require.NotNil(t, events[0].EndTime)
	assert.WithinDuration(t, ts(10), *events[0].EndTime, time.Second)
	assert.Nil(t, events[1].EndTime)
}

func TestUpdateTimelineConflictNoWrites(t *testing.T) {
	dbm := prepare(t)
	m := addMission(t, dbm, "m1")
	svc := stationService(dbm)

	require.NoError(t, dbm.Create(&model.StationEvent{MissionID: m.ID, StationID: 1, StartTime: ts(10)}))

	err := svc.UpdateTimeline(context.Background(), m.ID,
		[]model.StationEventCreate{{StationID: 1, StartTime: ts(9), EndTime: tsp(11)}},
		nil, nil, false)

	var conflict *timeline.ConflictError
	require.ErrorAs(t, err, &conflict)

	events, err := database.NewEventStore[model.StationEvent](dbm.DB(), model.ResourceStation).ForMission(m.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestUpdateTimelineOtherMissionBlocks(t *testing.T) {
	dbm := prepare(t)
	m1 := addMission(t, dbm, "m1")
	m2 := addMission(t, dbm, "m2")
	svc := stationService(dbm)

	require.NoError(t, dbm.Create(&model.StationEvent{MissionID: m2.ID, StationID: 3, StartTime: ts(9), EndTime: tsp(12)}))

	err := svc.UpdateTimeline(context.Background(), m1.ID,
		[]model.StationEventCreate{{StationID: 3, StartTime: ts(10), EndTime: tsp(11)}},
		nil, nil, true)

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, uint(3), unavailable.ResourceID)

	events, err := database.NewEventStore[model.StationEvent](dbm.DB(), model.ResourceStation).ForMission(m1.ID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestUpdateTimelineUnknownMission(t *testing.T) {
	dbm := prepare(t)
	svc := stationService(dbm)

	err := svc.UpdateTimeline(context.Background(), 12345, nil, nil, nil, true)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateTimelineRejectsBadInterval(t *testing.T) {
	dbm := prepare(t)
	m := addMission(t, dbm, "m1")
	svc := stationService(dbm)

	err := svc.UpdateTimeline(context.Background(), m.ID,
		[]model.StationEventCreate{{StationID: 1, StartTime: ts(11), EndTime: tsp(11)}},
		nil, nil, true)
	require.ErrorIs(t, err, model.ErrInvalidInterval)
}

func TestUpdateTimelineMoveToFreeResource(t *testing.T) {
	dbm := prepare(t)
	m1 := addMission(t, dbm, "m1")
	m2 := addMission(t, dbm, "m2")
	svc := stationService(dbm)
	store := database.NewEventStore[model.StationEvent](dbm.DB(), model.ResourceStation)

	// mission 2's booking of station 2 is long over by the event's window
	require.NoError(t, dbm.Create(&model.StationEvent{MissionID: m2.ID, StationID: 2, StartTime: ts(8), EndTime: tsp(9)}))
	require.NoError(t, dbm.Create(&model.StationEvent{MissionID: m1.ID, StationID: 1, StartTime: ts(10), EndTime: tsp(11)}))

	events, err := store.ForMission(m1.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)

	// a patch naming only the resource keeps the event's own window, so the
	// finished booking does not block the move
	st := uint(2)
	err = svc.UpdateTimeline(context.Background(), m1.ID, nil,
		[]model.StationEventUpdate{{ID: events[0].ID, StationID: &st}}, nil, true)
	require.NoError(t, err)

	events, err = store.ForMission(m1.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint(2), events[0].StationID)

	// an open-ended booking by the other mission still blocks it
	require.NoError(t, dbm.Create(&model.StationEvent{MissionID: m2.ID, StationID: 3, StartTime: ts(9)}))

	st = 3
	err = svc.UpdateTimeline(context.Background(), m1.ID, nil,
		[]model.StationEventUpdate{{ID: events[0].ID, StationID: &st}}, nil, true)

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
}

func TestUpdateTimelineRejectsBadPatchInterval(t *testing.T) {
	dbm := prepare(t)
	m := addMission(t, dbm, "m1")
	svc := stationService(dbm)
	store := database.NewEventStore[model.StationEvent](dbm.DB(), model.ResourceStation)

	require.NoError(t, dbm.Create(&model.StationEvent{MissionID: m.ID, StationID: 1, StartTime: ts(8), EndTime: tsp(9)}))

	events, err := store.ForMission(m.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)

	end := ts(7)
	err = svc.UpdateTimeline(context.Background(), m.ID, nil,
		[]model.StationEventUpdate{{ID: events[0].ID, EndTime: &end}}, nil, true)
	require.ErrorIs(t, err, model.ErrInvalidInterval)

	events, err = store.ForMission(m.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].EndTime)
	assert.WithinDuration(t, ts(9), *events[0].EndTime, time.Second)
}

func TestSwitchResource(t *testing.T) {
	dbm := prepare(t)
	m := addMission(t, dbm, "m7")
	svc := stationService(dbm)
	ctx := context.Background()

	first, err := svc.SwitchResource(ctx, m.ID, 3, model.StationEventCreate{})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	assert.Equal(t, uint(3), first.StationID)
	assert.Equal(t, m.ID, first.MissionID)
	assert.Nil(t, first.EndTime)

	// same resource again: idempotent, no new event
	second, err := svc.SwitchResource(ctx, m.ID, 3, model.StationEventCreate{})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	events, err := database.NewEventStore[model.StationEvent](dbm.DB(), model.ResourceStation).ForMission(m.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	// different resource: old event closed, new one opened
	third, err := svc.SwitchResource(ctx, m.ID, 4, model.StationEventCreate{})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, third.ID)
	assert.Equal(t, uint(4), third.StationID)
	assert.Nil(t, third.EndTime)

	events, err = database.NewEventStore[model.StationEvent](dbm.DB(), model.ResourceStation).ForMission(m.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.NotNil(t, events[0].EndTime)
	assert.WithinDuration(t, third.StartTime, *events[0].EndTime, time.Second)
}

func TestSwitchResourceUnavailable(t *testing.T) {
	dbm := prepare(t)
	m7 := addMission(t, dbm, "m7")
	m9 := addMission(t, dbm, "m9")
	svc := stationService(dbm)

	// mission 9 holds station 3 open-ended since an hour ago
	start := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, dbm.Create(&model.StationEvent{MissionID: m9.ID, StationID: 3, StartTime: start}))

	_, err := svc.SwitchResource(context.Background(), m7.ID, 3, model.StationEventCreate{})

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)

	events, err := database.NewEventStore[model.StationEvent](dbm.DB(), model.ResourceStation).ForMission(m7.ID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestManualEventEditor(t *testing.T) {
	dbm := prepare(t)
	m := addMission(t, dbm, "m1")
	svc := stationService(dbm)
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, m.ID, model.StationEventCreate{StationID: 2, StartTime: ts(8), EndTime: tsp(9)})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	newStart := ts(7)
	updated, err := svc.UpdateEvent(ctx, created.ID, model.StationEventUpdate{StartTime: &newStart})
	require.NoError(t, err)
	assert.WithinDuration(t, ts(7), updated.StartTime, time.Second)
	require.NotNil(t, updated.EndTime)
	assert.WithinDuration(t, ts(9), *updated.EndTime, time.Second)

	_, err = svc.UpdateEvent(ctx, 9999, model.StationEventUpdate{})
	require.ErrorIs(t, err, ErrNotFound)

	badStart := ts(10)
	_, err = svc.UpdateEvent(ctx, created.ID, model.StationEventUpdate{StartTime: &badStart})
	require.ErrorIs(t, err, model.ErrInvalidInterval)

	require.NoError(t, svc.DeleteEvent(ctx, created.ID))
	require.ErrorIs(t, svc.DeleteEvent(ctx, created.ID), ErrNotFound)
}

func TestManualCreateChecksAvailability(t *testing.T) {
	dbm := prepare(t)
	m1 := addMission(t, dbm, "m1")
	m2 := addMission(t, dbm, "m2")
	svc := stationService(dbm)

	require.NoError(t, dbm.Create(&model.StationEvent{MissionID: m2.ID, StationID: 2, StartTime: ts(8), EndTime: tsp(12)}))

	_, err := svc.CreateEvent(context.Background(), m1.ID, model.StationEventCreate{StationID: 2, StartTime: ts(9), EndTime: tsp(10)})

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
}

func TestMissionCRUD(t *testing.T) {
	dbm := prepare(t)
	svc := NewMissionService(dbm)

	m := addMission(t, dbm, "m1")
	assert.NotEmpty(t, m.Token)
	assert.Equal(t, model.MissionStatusPlanned, m.Status)

	require.Error(t, svc.Create(&model.Mission{Name: "m1"}))

	require.NoError(t, dbm.Create(&model.StationEvent{MissionID: m.ID, StationID: 1, StartTime: ts(8), EndTime: tsp(9)}))

	got, err := svc.Get(m.ID)
	require.NoError(t, err)
	assert.Len(t, got.Stations, 1)

	require.NoError(t, svc.Update(m.ID, map[string]any{"status": model.MissionStatusActive}))

	got, err = svc.Get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MissionStatusActive, got.Status)

	require.NoError(t, svc.Delete(m.ID))
	_, err = svc.Get(m.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, svc.Delete(m.ID), ErrNotFound)
}
