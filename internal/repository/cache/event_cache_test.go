package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"eventvenues/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() *domain.Event {
	venue := "venue-1"
	start := domain.NewTimeOfDay(10, 0, 0)
	end := domain.NewTimeOfDay(12, 30, 0)
	created := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	return &domain.Event{
		ID:             "6f1c2a4e-3b5d-4c7e-9a0b-1d2e3f405162",
		OrganizationID: "org-1",
		VenueID:        &venue,
		Title:          "Launch",
		StartDate:      time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		StartTime:      &start,
		EndTime:        &end,
		CreatorID:      "u-1",
		Admins:         []string{"u-1"},
		Status:         domain.EventStatusActive,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

func encoded(t *testing.T, e *domain.Event) string {
	t.Helper()
	data, err := json.Marshal(newCachedEvent(e))
	require.NoError(t, err)
	return string(data)
}

func TestEventCache_CacheEvents(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	e := sampleEvent()
	key := "event:" + e.ID
	mock.ExpectSet(key, encoded(t, e), 0).SetVal("OK")
	mock.ExpectExpire(key, DefaultEventTTL).SetVal(true)

	err := NewEventCache(db, 0).CacheEvents(context.Background(), []*domain.Event{e})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventCache_CacheEvents_Error(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	e := sampleEvent()
	key := "event:" + e.ID
	mock.ExpectSet(key, encoded(t, e), 0).SetErr(errors.New("readonly replica"))
	mock.ExpectExpire(key, time.Minute).SetVal(true)

	err := NewEventCache(db, time.Minute).CacheEvents(context.Background(), []*domain.Event{e})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache events")
}

func TestEventCache_FindEvents(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	e := sampleEvent()
	mock.ExpectMGet("event:"+e.ID, "event:ev-missing", "event:ev-corrupt").
		SetVal([]interface{}{encoded(t, e), nil, "{not json"})

	got, err := NewEventCache(db, 0).FindEvents(context.Background(), []string{
		"{6F1C2A4E-3B5D-4C7E-9A0B-1D2E3F405162}", "ev-missing", "ev-corrupt",
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Nil(t, got[1])
	assert.Nil(t, got[2])

	hit := got[0]
	require.NotNil(t, hit)
	assert.Equal(t, e.ID, hit.ID)
	assert.Equal(t, "venue-1", hit.VenueRef())
	assert.Equal(t, e.StartDate, hit.StartDate)
	assert.Equal(t, e.EndDate, hit.EndDate)
	assert.Equal(t, *e.StartTime, *hit.StartTime)
	assert.Equal(t, *e.EndTime, *hit.EndTime)
	assert.Equal(t, e.CreatedAt, hit.CreatedAt)
	assert.Equal(t, e.Admins, hit.Admins)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventCache_FindEvents_Error(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()

	mock.ExpectMGet("event:ev-1").SetErr(errors.New("connection refused"))

	_, err := NewEventCache(db, 0).FindEvents(context.Background(), []string{"ev-1"})
	require.Error(t, err)
}

func TestCachedEvent_Format(t *testing.T) {
	e := sampleEvent()
	ce := newCachedEvent(e)

	assert.Equal(t, "2025-02-01T00:00:00Z", ce.StartDate)
	assert.Equal(t, "2025-02-01T10:00:00Z", ce.StartTime)
	assert.Equal(t, "2025-02-03T12:30:00Z", ce.EndTime, "end time is anchored on the end date")

	e.StartTime, e.EndTime, e.VenueID = nil, nil, nil
	e.AllDay = true
	back, err := newCachedEvent(e).toDomain()
	require.NoError(t, err)
	assert.Nil(t, back.StartTime)
	assert.Nil(t, back.VenueID)
	assert.True(t, back.AllDay)
}
