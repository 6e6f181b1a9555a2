// Package store persists User and Itinerary documents. The Store interface is
// defined here, on the consumer side, so handlers can be tested against the
// in-memory implementation without a running MongoDB.
package store

import (
	"context"
	"errors"

	"voyago/models"
)

// ErrNotFound is returned when no document matches the given identifier.
var ErrNotFound = errors.New("not found")

type Store interface {
	// UpsertUser atomically finds or creates the User with the given userId.
	// The returned User is the stored document either way.
	UpsertUser(ctx context.Context, userID string) (models.User, error)

	// InsertItinerary persists a new itinerary document.
	InsertItinerary(ctx context.Context, it models.Itinerary) error

	// GetItinerary returns the itinerary with the given id, location fields
	// included, or ErrNotFound.
	GetItinerary(ctx context.Context, id string) (models.Itinerary, error)

	// ListByUser returns the user's itineraries newest first, with the
	// per-activity location fields stripped from every payload.
	ListByUser(ctx context.Context, userID string) ([]models.Itinerary, error)
}
