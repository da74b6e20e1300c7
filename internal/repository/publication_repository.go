package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/codonyx/codonyx-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PublicationRepository handles database operations on profile publications.
type PublicationRepository struct {
	collection *mongo.Collection
}

func NewPublicationRepository(db *mongo.Database) *PublicationRepository {
	return &PublicationRepository{
		collection: db.Collection("publications"),
	}
}

// CreatePublication inserts a new publication.
func (r *PublicationRepository) CreatePublication(ctx context.Context, pub *models.Publication) (*models.Publication, error) {
	pub.CreatedAt = time.Now()
	pub.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, pub)
	if err != nil {
		return nil, fmt.Errorf("failed to insert publication: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	pub.ID = insertedID

	return pub, nil
}

// GetPublicationByID fetches a single publication.
func (r *PublicationRepository) GetPublicationByID(ctx context.Context, id primitive.ObjectID) (*models.Publication, error) {
	var pub models.Publication
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&pub)
	if err != nil {
		return nil, fmt.Errorf("failed to find publication: %v", err)
	}
	return &pub, nil
}

// ListByProfile returns a profile's publications, newest first.
func (r *PublicationRepository) ListByProfile(ctx context.Context, profileID primitive.ObjectID) ([]models.Publication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"profile_id": profileID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list publications: %v", err)
	}
	defer cursor.Close(ctx)

	var pubs []models.Publication
	if err := cursor.All(ctx, &pubs); err != nil {
		return nil, fmt.Errorf("failed to decode publications: %v", err)
	}
	return pubs, nil
}

// UpdatePublication applies a partial update.
func (r *PublicationRepository) UpdatePublication(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.Publication, error) {
	update["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return nil, fmt.Errorf("failed to update publication: %v", err)
	}

	return r.GetPublicationByID(ctx, id)
}

// DeletePublication removes a publication.
func (r *PublicationRepository) DeletePublication(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete publication: %v", err)
	}
	return nil
}
