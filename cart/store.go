package cart

import (
	"context"
	"time"

	"verdia/db"
	"verdia/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the durable owner of cart documents, one per user. The engine
// reads a full document, mutates it in memory, and writes the whole thing
// back; there is no field-level patch.
type Store interface {
	// Fetch returns the user's cart, or (nil, nil) when none exists.
	Fetch(ctx context.Context, userID string) (*models.Cart, error)
	// Replace upserts the whole cart document.
	Replace(ctx context.Context, cart *models.Cart) error
	// Delete removes the user's cart. Reports whether one existed.
	Delete(ctx context.Context, userID string) (bool, error)
}

type mongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore() Store {
	return &mongoStore{coll: db.CartsCollection}
}

func (s *mongoStore) Fetch(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *mongoStore) Replace(ctx context.Context, cart *models.Cart) error {
	now := time.Now()
	if cart.ID == "" {
		cart.ID = uuid.NewString()
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"userId": cart.UserID}, cart, opts)
	return err
}

func (s *mongoStore) Delete(ctx context.Context, userID string) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
