package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InviteToken gates distributor registration. A token is consumable while it
// is active, unused and unexpired.
type InviteToken struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Token     string              `bson:"token" json:"token"`
	CreatedBy primitive.ObjectID  `bson:"created_by,omitempty" json:"created_by,omitempty"`
	ExpiresAt time.Time           `bson:"expires_at" json:"expires_at"`
	IsActive  bool                `bson:"is_active" json:"is_active"`
	UsedAt    *time.Time          `bson:"used_at,omitempty" json:"used_at,omitempty"`
	UsedBy    *primitive.ObjectID `bson:"used_by,omitempty" json:"used_by,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
}

// Consumable reports whether the token can still be redeemed at the given time.
func (t *InviteToken) Consumable(now time.Time) bool {
	return t.IsActive && t.UsedAt == nil && now.Before(t.ExpiresAt)
}
