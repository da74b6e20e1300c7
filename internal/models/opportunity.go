package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Opportunity submission statuses.
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// OpportunitySubmission is a deal proposal submitted by an advisor or
// laboratory. When an admin approves it, a draft Deal is created and linked
// back through DealID.
type OpportunitySubmission struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	SubmittedBy      primitive.ObjectID  `bson:"submitted_by" json:"submitted_by"`
	Title            string              `bson:"title" json:"title"`
	Description      string              `bson:"description,omitempty" json:"description,omitempty"`
	EstimatedValue   float64             `bson:"estimated_value,omitempty" json:"estimated_value,omitempty"`
	SubmissionStatus string              `bson:"submission_status" json:"submission_status"`
	DealID           *primitive.ObjectID `bson:"deal_id,omitempty" json:"deal_id,omitempty"`
	CreatedAt        time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time           `bson:"updated_at" json:"updated_at"`
}
