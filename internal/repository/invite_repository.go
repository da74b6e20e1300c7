package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/codonyx/codonyx-api/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InviteRepository handles database operations on invite tokens.
type InviteRepository struct {
	collection *mongo.Collection
}

func NewInviteRepository(db *mongo.Database) *InviteRepository {
	return &InviteRepository{
		collection: db.Collection("invite_tokens"),
	}
}

// CreateToken inserts a new invite token.
func (r *InviteRepository) CreateToken(ctx context.Context, token *models.InviteToken) (*models.InviteToken, error) {
	token.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to insert invite token: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	token.ID = insertedID

	return token, nil
}

// GetByToken looks an invite up by its token string.
func (r *InviteRepository) GetByToken(ctx context.Context, token string) (*models.InviteToken, error) {
	var invite models.InviteToken
	err := r.collection.FindOne(ctx, bson.M{"token": token}).Decode(&invite)
	if err != nil {
		return nil, fmt.Errorf("failed to find invite token: %v", err)
	}
	return &invite, nil
}

// ListTokens returns every invite token, newest first (admin back-office).
func (r *InviteRepository) ListTokens(ctx context.Context) ([]models.InviteToken, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list invite tokens: %v", err)
	}
	defer cursor.Close(ctx)

	var tokens []models.InviteToken
	if err := cursor.All(ctx, &tokens); err != nil {
		return nil, fmt.Errorf("failed to decode invite tokens: %v", err)
	}
	return tokens, nil
}

// MarkUsed stamps a token as consumed by the given user.
func (r *InviteRepository) MarkUsed(ctx context.Context, id, usedBy primitive.ObjectID) error {
	now := time.Now()
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"used_at": now, "used_by": usedBy}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark invite token used: %v", err)
	}
	return nil
}

// SetActive toggles a token on or off.
func (r *InviteRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_active": active}},
	)
	if err != nil {
		return fmt.Errorf("failed to toggle invite token: %v", err)
	}
	return nil
}

// DeactivateExpired disables every active token past its expiry. Called by
// the nightly maintenance job.
func (r *InviteRepository) DeactivateExpired(ctx context.Context) (int64, error) {
	filter := bson.M{
		"is_active":  true,
		"expires_at": bson.M{"$lte": time.Now()},
	}

	result, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired invite tokens: %v", err)
	}

	if result.ModifiedCount > 0 {
		logrus.Infof("Deactivated %d expired invite tokens", result.ModifiedCount)
	}
	return result.ModifiedCount, nil
}
