package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/villagecraft/storefront/internal/models"
)

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{collection: db.Collection("carts")}
}

func (m *mongoCartRepository) Get(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart

	filter := bson.M{"user_id": userID}
	err := m.collection.FindOne(ctx, filter).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

// Update is a compare-and-set: the document is replaced only while it
// still carries fromVersion. A fromVersion of 0 covers the not-yet-stored
// case via upsert; a concurrent first insert surfaces as a duplicate key
// on the user_id unique index and is reported as a version conflict too.
func (m *mongoCartRepository) Update(ctx context.Context, cart *models.Cart, fromVersion uint64) error {
	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now
	cart.Version = fromVersion + 1

	filter := bson.M{"user_id": cart.UserID, "version": fromVersion}
	update := bson.M{"$set": cart}

	if fromVersion == 0 {
		opts := options.Update().SetUpsert(true)
		_, err := m.collection.UpdateOne(ctx, filter, update, opts)
		if mongo.IsDuplicateKeyError(err) {
			return ErrVersionConflict
		}
		if err != nil {
			return fmt.Errorf("failed to upsert cart: %w", err)
		}
		return nil
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (m *mongoCartRepository) Delete(ctx context.Context, userID string) error {
	filter := bson.M{"user_id": userID}

	result, err := m.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}
