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
)

// ProfileRepository handles database operations related to participant profiles.
type ProfileRepository struct {
	collection *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		collection: db.Collection("profiles"),
	}
}

// CreateProfile inserts a new profile.
func (r *ProfileRepository) CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert profile")
		return nil, fmt.Errorf("failed to insert profile: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	profile.ID = insertedID

	logrus.WithField("profileID", profile.ID.Hex()).Info("Profile created")
	return profile, nil
}

// GetProfileByID retrieves a profile by its ID.
func (r *ProfileRepository) GetProfileByID(ctx context.Context, id primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %v", err)
	}
	return &profile, nil
}

// GetProfileByUserID retrieves the profile linked to an auth account.
func (r *ProfileRepository) GetProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		return nil, fmt.Errorf("failed to find profile for user: %v", err)
	}
	return &profile, nil
}

// GetProfilesByIDs fetches profile summaries for a list of IDs (mainly for
// connection list joins).
func (r *ProfileRepository) GetProfilesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Profile, error) {
	filter := bson.M{"_id": bson.M{"$in": ids}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profiles by IDs: %v", err)
	}
	defer cursor.Close(ctx)

	var profiles []models.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %v", err)
	}
	return profiles, nil
}

// UpdateProfile applies a partial update to a profile.
func (r *ProfileRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.Profile, error) {
	update["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"profileID": id.Hex(),
			"error":     err,
		}).Error("Failed to update profile")
		return nil, fmt.Errorf("failed to update profile: %v", err)
	}

	return r.GetProfileByID(ctx, id)
}

// ListByType returns approved profiles of a given participant type for the
// public directory.
func (r *ProfileRepository) ListByType(ctx context.Context, userType string) ([]models.Profile, error) {
	filter := bson.M{
		"user_type":       userType,
		"approval_status": models.ApprovalApproved,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %v", err)
	}
	defer cursor.Close(ctx)

	var profiles []models.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %v", err)
	}
	return profiles, nil
}

// ListByApprovalStatus returns profiles in a given approval state for the
// admin back-office. An empty status returns everything.
func (r *ProfileRepository) ListByApprovalStatus(ctx context.Context, status string) ([]models.Profile, error) {
	filter := bson.M{}
	if status != "" {
		filter["approval_status"] = status
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles by approval status: %v", err)
	}
	defer cursor.Close(ctx)

	var profiles []models.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %v", err)
	}
	return profiles, nil
}

// SetApprovalStatus records an admin approval decision.
func (r *ProfileRepository) SetApprovalStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"approval_status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to set approval status: %v", err)
	}
	return nil
}
