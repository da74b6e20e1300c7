package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Deal lifecycle statuses.
const (
	DealDraft     = "draft"
	DealPublished = "published"
	DealClosed    = "closed"
)

// Bid statuses on a deal.
const (
	BidPending   = "pending"
	BidAccepted  = "accepted"
	BidRejected  = "rejected"
	BidWithdrawn = "withdrawn"
)

// Deal is a fundraising/distribution opportunity distributors can bid on.
type Deal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	TargetAmount float64            `bson:"target_amount" json:"target_amount"`
	RaisedAmount float64            `bson:"raised_amount" json:"raised_amount"`
	DealStatus   string             `bson:"deal_status" json:"deal_status"`
	CreatedBy    primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// DealBid is a distributor's commitment toward a published deal.
type DealBid struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DealID               primitive.ObjectID `bson:"deal_id" json:"deal_id"`
	DistributorProfileID primitive.ObjectID `bson:"distributor_profile_id" json:"distributor_profile_id"`
	BidAmount            float64            `bson:"bid_amount" json:"bid_amount"`
	Notes                string             `bson:"notes,omitempty" json:"notes,omitempty"`
	BidStatus            string             `bson:"bid_status" json:"bid_status"`
	CreatedAt            time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time          `bson:"updated_at" json:"updated_at"`
}
