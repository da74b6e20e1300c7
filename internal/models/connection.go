package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Connection statuses stored in the connections collection.
const (
	ConnectionPending  = "pending"
	ConnectionAccepted = "accepted"
	ConnectionRejected = "rejected"
)

// Connection is a directed connection request between two profiles.
// Only the receiver may accept or reject it; only the sender may withdraw it.
// A withdrawn request keeps its row with WithdrawnAt set so the re-request
// cooldown can be enforced.
type Connection struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID    primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	ReceiverID  primitive.ObjectID `bson:"receiver_id" json:"receiver_id"`
	Status      string             `bson:"status" json:"status"`
	WithdrawnAt *time.Time         `bson:"withdrawn_at,omitempty" json:"withdrawn_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Withdrawn reports whether the request was withdrawn by its sender.
func (c *Connection) Withdrawn() bool {
	return c.WithdrawnAt != nil
}

// Involves reports whether the given profile is either party of the connection.
func (c *Connection) Involves(profileID primitive.ObjectID) bool {
	return c.SenderID == profileID || c.ReceiverID == profileID
}

// Counterpart returns the other party of the connection from the given
// profile's point of view.
func (c *Connection) Counterpart(profileID primitive.ObjectID) primitive.ObjectID {
	if c.SenderID == profileID {
		return c.ReceiverID
	}
	return c.SenderID
}

// ConnectionView is a connection row joined with the counterpart's public
// profile summary, as rendered in connection lists.
type ConnectionView struct {
	Connection  `bson:",inline"`
	Counterpart PublicProfile `json:"counterpart"`
}
