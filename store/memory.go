package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"voyago/models"
)

// Memory is an in-process Store used by tests. Semantics mirror the Mongo
// implementation, including the location stripping on list views.
type Memory struct {
	mu          sync.Mutex
	users       map[string]models.User
	itineraries map[string]models.Itinerary

	// FailWrites makes every mutating call report an error, to exercise the
	// degraded no-persistence path of the create handler.
	FailWrites bool
	// Err is returned when FailWrites is set.
	Err error
}

func NewMemory() *Memory {
	return &Memory{
		users:       make(map[string]models.User),
		itineraries: make(map[string]models.Itinerary),
	}
}

func (s *Memory) UpsertUser(_ context.Context, userID string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		return models.User{}, s.failErr()
	}
	if u, ok := s.users[userID]; ok {
		return u, nil
	}
	u := models.User{UserID: userID, Name: "Guest User", CreatedAt: time.Now().UTC()}
	s.users[userID] = u
	return u, nil
}

func (s *Memory) InsertItinerary(_ context.Context, it models.Itinerary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		return s.failErr()
	}
	s.itineraries[it.ItineraryID] = it
	return nil
}

func (s *Memory) GetItinerary(_ context.Context, id string) (models.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.itineraries[id]
	if !ok {
		return models.Itinerary{}, ErrNotFound
	}
	return it, nil
}

func (s *Memory) ListByUser(_ context.Context, userID string) ([]models.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Itinerary{}
	for _, it := range s.itineraries {
		if it.UserID != userID {
			continue
		}
		out = append(out, stripLocations(it))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UserCount reports how many users exist. Test helper.
func (s *Memory) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// ItineraryCount reports how many itineraries exist. Test helper.
func (s *Memory) ItineraryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.itineraries)
}

func (s *Memory) failErr() error {
	if s.Err != nil {
		return s.Err
	}
	return errSimulated
}

var errSimulated = &simulatedError{}

type simulatedError struct{}

func (*simulatedError) Error() string { return "store unavailable" }

func stripLocations(it models.Itinerary) models.Itinerary {
	days := make([]models.Day, len(it.ItineraryData.Days))
	copy(days, it.ItineraryData.Days)
	for i := range days {
		acts := make([]models.Activity, len(days[i].Activities))
		copy(acts, days[i].Activities)
		for j := range acts {
			acts[j].Location = nil
		}
		days[i].Activities = acts
	}
	it.ItineraryData.Days = days
	return it
}
