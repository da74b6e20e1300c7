package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/codonyx/codonyx-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ConnectionRepository handles database operations on connection requests.
type ConnectionRepository struct {
	collection *mongo.Collection
}

func NewConnectionRepository(db *mongo.Database) *ConnectionRepository {
	return &ConnectionRepository{
		collection: db.Collection("connections"),
	}
}

// Insert stores a new pending connection request.
func (r *ConnectionRepository) Insert(ctx context.Context, conn *models.Connection) (*models.Connection, error) {
	now := time.Now()
	conn.Status = models.ConnectionPending
	conn.CreatedAt = now
	conn.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to insert connection request: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	conn.ID = insertedID

	return conn, nil
}

// GetByID fetches a single connection row.
func (r *ConnectionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Connection, error) {
	var conn models.Connection
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&conn)
	if err != nil {
		return nil, fmt.Errorf("failed to find connection: %v", err)
	}
	return &conn, nil
}

// FindBetween returns the connection between two profiles regardless of
// direction, or nil when none exists. By invariant there is at most one row
// per unordered pair; callers must check it before inserting a new request.
func (r *ConnectionRepository) FindBetween(ctx context.Context, a, b primitive.ObjectID) (*models.Connection, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"sender_id": a, "receiver_id": b},
			{"sender_id": b, "receiver_id": a},
		},
	}

	var conn models.Connection
	err := r.collection.FindOne(ctx, filter).Decode(&conn)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up connection pair: %v", err)
	}
	return &conn, nil
}

// ListForProfile returns every connection row where the profile is sender or
// receiver. No pagination; per-user connection counts stay small.
func (r *ConnectionRepository) ListForProfile(ctx context.Context, profileID primitive.ObjectID) ([]models.Connection, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"sender_id": profileID},
			{"receiver_id": profileID},
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %v", err)
	}
	defer cursor.Close(ctx)

	var connections []models.Connection
	if err := cursor.All(ctx, &connections); err != nil {
		return nil, fmt.Errorf("failed to decode connections: %v", err)
	}
	return connections, nil
}

// UpdateStatus sets the status field (used for accept/reject).
func (r *ConnectionRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update connection status: %v", err)
	}
	return nil
}

// Withdraw records the sender's withdrawal. The row is kept with withdrawn_at
// set so a re-request can be blocked for the cooldown window.
func (r *ConnectionRepository) Withdraw(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"withdrawn_at": at, "updated_at": at}},
	)
	if err != nil {
		return fmt.Errorf("failed to withdraw connection request: %v", err)
	}
	return nil
}

// Delete removes the row entirely (remove connection, or clearing a stale
// rejected/expired-withdrawn row before a fresh request).
func (r *ConnectionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete connection: %v", err)
	}
	return nil
}
