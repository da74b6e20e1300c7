package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Activity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProfileID primitive.ObjectID `bson:"profile_id" json:"profile_id"`
	Type      string             `bson:"type" json:"type"`           // e.g. "connection_accepted", "bid_placed"
	TargetID  primitive.ObjectID `bson:"target_id" json:"target_id"` // the ID of the connection, deal, etc.
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Message   string             `bson:"message" json:"message"`
}
