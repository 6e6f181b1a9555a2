package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyago/models"
)

func TestMemoryUpsertUserIsIdempotent(t *testing.T) {
	s := NewMemory()

	first, err := s.UpsertUser(context.Background(), "guest_1_abc")
	require.NoError(t, err)
	assert.Equal(t, "guest_1_abc", first.UserID)
	assert.Equal(t, "Guest User", first.Name)

	second, err := s.UpsertUser(context.Background(), "guest_1_abc")
	require.NoError(t, err)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, 1, s.UserCount())
}

func TestMemoryGetItineraryNotFound(t *testing.T) {
	s := NewMemory()
	_, err := s.GetItinerary(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryListByUserNewestFirstAndStripped(t *testing.T) {
	s := NewMemory()
	base := time.Now().UTC()

	older := models.Itinerary{
		ItineraryID: "a",
		UserID:      "u1",
		CreatedAt:   base.Add(-time.Hour),
		ItineraryData: models.ItineraryData{Days: []models.Day{{
			Day: 1, Title: "Day 1",
			Activities: []models.Activity{{Name: "Tour", Location: &models.Location{Lat: 48.85, Lng: 2.35}}},
		}}},
	}
	newer := models.Itinerary{ItineraryID: "b", UserID: "u1", CreatedAt: base}
	other := models.Itinerary{ItineraryID: "c", UserID: "u2", CreatedAt: base}

	for _, it := range []models.Itinerary{older, newer, other} {
		require.NoError(t, s.InsertItinerary(context.Background(), it))
	}

	list, err := s.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ItineraryID)
	assert.Equal(t, "a", list[1].ItineraryID)
	assert.Nil(t, list[1].ItineraryData.Days[0].Activities[0].Location)

	// stripping must not mutate the stored document
	got, err := s.GetItinerary(context.Background(), "a")
	require.NoError(t, err)
	assert.NotNil(t, got.ItineraryData.Days[0].Activities[0].Location)
}

func TestMemoryFailWrites(t *testing.T) {
	s := NewMemory()
	s.FailWrites = true

	_, err := s.UpsertUser(context.Background(), "u1")
	assert.Error(t, err)
	assert.Error(t, s.InsertItinerary(context.Background(), models.Itinerary{ItineraryID: "x"}))
	assert.Equal(t, 0, s.ItineraryCount())
}
