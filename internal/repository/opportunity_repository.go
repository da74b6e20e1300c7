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

// OpportunityRepository handles database operations on opportunity submissions.
type OpportunityRepository struct {
	collection *mongo.Collection
}

func NewOpportunityRepository(db *mongo.Database) *OpportunityRepository {
	return &OpportunityRepository{
		collection: db.Collection("opportunity_submissions"),
	}
}

// CreateSubmission inserts a new pending submission.
func (r *OpportunityRepository) CreateSubmission(ctx context.Context, sub *models.OpportunitySubmission) (*models.OpportunitySubmission, error) {
	sub.SubmissionStatus = models.SubmissionPending
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to insert opportunity submission: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	sub.ID = insertedID

	return sub, nil
}

// GetSubmissionByID fetches a single submission.
func (r *OpportunityRepository) GetSubmissionByID(ctx context.Context, id primitive.ObjectID) (*models.OpportunitySubmission, error) {
	var sub models.OpportunitySubmission
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err != nil {
		return nil, fmt.Errorf("failed to find opportunity submission: %v", err)
	}
	return &sub, nil
}

// ListBySubmitter returns a profile's own submissions, newest first.
func (r *OpportunityRepository) ListBySubmitter(ctx context.Context, profileID primitive.ObjectID) ([]models.OpportunitySubmission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"submitted_by": profileID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %v", err)
	}
	defer cursor.Close(ctx)

	var subs []models.OpportunitySubmission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("failed to decode submissions: %v", err)
	}
	return subs, nil
}

// ListAll returns every submission for admin review, newest first.
func (r *OpportunityRepository) ListAll(ctx context.Context) ([]models.OpportunitySubmission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %v", err)
	}
	defer cursor.Close(ctx)

	var subs []models.OpportunitySubmission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("failed to decode submissions: %v", err)
	}
	return subs, nil
}

// SetReview records the admin decision, optionally linking the deal created
// from an approved submission.
func (r *OpportunityRepository) SetReview(ctx context.Context, id primitive.ObjectID, status string, dealID *primitive.ObjectID) error {
	update := bson.M{"submission_status": status, "updated_at": time.Now()}
	if dealID != nil {
		update["deal_id"] = *dealID
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return fmt.Errorf("failed to review submission: %v", err)
	}
	return nil
}
