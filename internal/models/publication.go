package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Publication is a paper, article or resource attached to a profile.
type Publication struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProfileID       primitive.ObjectID `bson:"profile_id" json:"profile_id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	PublicationType string             `bson:"publication_type" json:"publication_type"`
	ExternalURL     string             `bson:"external_url,omitempty" json:"external_url,omitempty"`
	FileURL         string             `bson:"file_url,omitempty" json:"file_url,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
