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

// BidRepository handles database operations on deal bids.
type BidRepository struct {
	collection *mongo.Collection
}

func NewBidRepository(db *mongo.Database) *BidRepository {
	return &BidRepository{
		collection: db.Collection("deal_bids"),
	}
}

// CreateBid inserts a new pending bid.
func (r *BidRepository) CreateBid(ctx context.Context, bid *models.DealBid) (*models.DealBid, error) {
	bid.BidStatus = models.BidPending
	bid.CreatedAt = time.Now()
	bid.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, bid)
	if err != nil {
		return nil, fmt.Errorf("failed to insert bid: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	bid.ID = insertedID

	return bid, nil
}

// GetBidByID fetches a single bid.
func (r *BidRepository) GetBidByID(ctx context.Context, id primitive.ObjectID) (*models.DealBid, error) {
	var bid models.DealBid
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&bid)
	if err != nil {
		return nil, fmt.Errorf("failed to find bid: %v", err)
	}
	return &bid, nil
}

// FindActiveBid returns the distributor's non-withdrawn bid on a deal, or nil.
func (r *BidRepository) FindActiveBid(ctx context.Context, dealID, distributorID primitive.ObjectID) (*models.DealBid, error) {
	filter := bson.M{
		"deal_id":                dealID,
		"distributor_profile_id": distributorID,
		"bid_status":             bson.M{"$ne": models.BidWithdrawn},
	}

	var bid models.DealBid
	err := r.collection.FindOne(ctx, filter).Decode(&bid)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up active bid: %v", err)
	}
	return &bid, nil
}

// ListBidsByDistributor returns all bids a distributor has placed, newest first.
func (r *BidRepository) ListBidsByDistributor(ctx context.Context, distributorID primitive.ObjectID) ([]models.DealBid, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"distributor_profile_id": distributorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %v", err)
	}
	defer cursor.Close(ctx)

	var bids []models.DealBid
	if err := cursor.All(ctx, &bids); err != nil {
		return nil, fmt.Errorf("failed to decode bids: %v", err)
	}
	return bids, nil
}

// ListAllBids returns every bid (admin review), newest first.
func (r *BidRepository) ListAllBids(ctx context.Context) ([]models.DealBid, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list all bids: %v", err)
	}
	defer cursor.Close(ctx)

	var bids []models.DealBid
	if err := cursor.All(ctx, &bids); err != nil {
		return nil, fmt.Errorf("failed to decode bids: %v", err)
	}
	return bids, nil
}

// SetStatus updates a bid's status (withdraw, admin accept/reject).
func (r *BidRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"bid_status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to set bid status: %v", err)
	}
	return nil
}
