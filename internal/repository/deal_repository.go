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

// DealRepository handles database operations on marketplace deals.
type DealRepository struct {
	collection *mongo.Collection
}

func NewDealRepository(db *mongo.Database) *DealRepository {
	return &DealRepository{
		collection: db.Collection("deals"),
	}
}

// CreateDeal inserts a new deal.
func (r *DealRepository) CreateDeal(ctx context.Context, deal *models.Deal) (*models.Deal, error) {
	deal.CreatedAt = time.Now()
	deal.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, deal)
	if err != nil {
		return nil, fmt.Errorf("failed to insert deal: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	deal.ID = insertedID

	return deal, nil
}

// GetDealByID fetches a single deal.
func (r *DealRepository) GetDealByID(ctx context.Context, id primitive.ObjectID) (*models.Deal, error) {
	var deal models.Deal
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&deal)
	if err != nil {
		return nil, fmt.Errorf("failed to find deal: %v", err)
	}
	return &deal, nil
}

// ListDeals returns deals filtered by status, newest first. An empty status
// returns everything (admin view).
func (r *DealRepository) ListDeals(ctx context.Context, status string) ([]models.Deal, error) {
	filter := bson.M{}
	if status != "" {
		filter["deal_status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %v", err)
	}
	defer cursor.Close(ctx)

	var deals []models.Deal
	if err := cursor.All(ctx, &deals); err != nil {
		return nil, fmt.Errorf("failed to decode deals: %v", err)
	}
	return deals, nil
}

// SetStatus moves a deal through its lifecycle (draft/published/closed).
func (r *DealRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"deal_status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to set deal status: %v", err)
	}
	return nil
}

// AddRaisedAmount increments the raised amount when a bid is accepted.
func (r *DealRepository) AddRaisedAmount(ctx context.Context, id primitive.ObjectID, amount float64) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"raised_amount": amount},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to update raised amount: %v", err)
	}
	return nil
}
