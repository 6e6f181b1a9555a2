package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"voyago/db"
	"voyago/models"
)

// Mongo implements Store over the db package's collections.
type Mongo struct{}

func NewMongo() *Mongo {
	return &Mongo{}
}

// UpsertUser is a single FindOneAndUpdate with $setOnInsert under the unique
// index on userId, so two concurrent requests with the same id cannot create
// two documents.
func (s *Mongo) UpsertUser(ctx context.Context, userID string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"userId": userID}
	update := bson.M{"$setOnInsert": models.User{
		UserID:    userID,
		Name:      "Guest User",
		CreatedAt: time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var user models.User
	err := db.UserCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *Mongo) InsertItinerary(ctx context.Context, it models.Itinerary) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := db.ItineraryCollection.InsertOne(ctx, it)
	return err
}

func (s *Mongo) GetItinerary(ctx context.Context, id string) (models.Itinerary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var it models.Itinerary
	err := db.ItineraryCollection.FindOne(ctx, bson.M{"itineraryId": id}).Decode(&it)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Itinerary{}, ErrNotFound
	}
	if err != nil {
		return models.Itinerary{}, err
	}
	return it, nil
}

// ListByUser strips location in the query projection rather than in Go, so
// the coordinates never leave the database for list views.
func (s *Mongo) ListByUser(ctx context.Context, userID string) ([]models.Itinerary, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"itineraryData.days.activities.location": 0})

	cursor, err := db.ItineraryCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	itineraries := []models.Itinerary{}
	if err := cursor.All(ctx, &itineraries); err != nil {
		return nil, err
	}
	return itineraries, nil
}
