package repo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/villagecraft/storefront/internal/models"
)

type mongoSessionRepository struct {
	collection *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) SessionRepository {
	return &mongoSessionRepository{collection: db.Collection("sessions")}
}

func (m *mongoSessionRepository) Create(ctx context.Context, session *models.Session) error {
	if _, err := m.collection.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (m *mongoSessionRepository) Get(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session

	err := m.collection.FindOne(ctx, bson.M{"_id": token}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

func (m *mongoSessionRepository) Delete(ctx context.Context, token string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": token}); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
