package services

import (
	"time"

	"github.com/codonyx/codonyx-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Relation statuses as seen from one profile's viewpoint.
const (
	RelationNone            = "none"
	RelationPendingSent     = "pending_sent"
	RelationPendingReceived = "pending_received"
	RelationAccepted        = "accepted"
	RelationRejected        = "rejected"
)

// WithdrawCooldown is how long a pair is blocked from re-requesting after a
// withdrawal.
const WithdrawCooldown = 14 * 24 * time.Hour

// ConnectionState is the read model a client needs to render the connect
// action toward one target profile.
type ConnectionState struct {
	Status        string     `json:"status"`
	ConnectionID  string     `json:"connection_id,omitempty"`
	CooldownUntil *time.Time `json:"cooldown_until,omitempty"`
	CooldownDays  int        `json:"cooldown_days,omitempty"`
}

// ResolveStatus computes the relation between currentID and targetID from the
// full set of currentID's connection rows. It is a pure function of its
// inputs.
//
// A withdrawn row resolves to "none" for both parties; while the withdrawal
// is less than WithdrawCooldown old it additionally reports when the pair may
// reconnect, with the remaining days rounded up.
func ResolveStatus(rows []models.Connection, currentID, targetID primitive.ObjectID, now time.Time) ConnectionState {
	var conn *models.Connection
	for i := range rows {
		if rows[i].Involves(currentID) && rows[i].Counterpart(currentID) == targetID {
			conn = &rows[i]
			break
		}
	}

	if conn == nil {
		return ConnectionState{Status: RelationNone}
	}

	if conn.Withdrawn() {
		state := ConnectionState{Status: RelationNone}
		until := conn.WithdrawnAt.Add(WithdrawCooldown)
		if now.Before(until) {
			state.ConnectionID = conn.ID.Hex()
			state.CooldownUntil = &until
			state.CooldownDays = daysUntil(now, until)
		}
		return state
	}

	state := ConnectionState{ConnectionID: conn.ID.Hex()}
	switch conn.Status {
	case models.ConnectionAccepted:
		state.Status = RelationAccepted
	case models.ConnectionRejected:
		state.Status = RelationRejected
	default:
		if conn.SenderID == currentID {
			state.Status = RelationPendingSent
		} else {
			state.Status = RelationPendingReceived
		}
	}
	return state
}

// daysUntil returns the number of whole days from now until t, rounded up.
func daysUntil(now, t time.Time) int {
	remaining := t.Sub(now)
	if remaining <= 0 {
		return 0
	}
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// ConnectionList partitions a profile's connections the way the connections
// page renders them. Withdrawn and rejected rows appear in no bucket.
type ConnectionList struct {
	Accepted        []models.ConnectionView `json:"accepted"`
	PendingSent     []models.ConnectionView `json:"pending_sent"`
	PendingReceived []models.ConnectionView `json:"pending_received"`
}

func partitionConnections(views []models.ConnectionView, currentID primitive.ObjectID) *ConnectionList {
	list := &ConnectionList{
		Accepted:        []models.ConnectionView{},
		PendingSent:     []models.ConnectionView{},
		PendingReceived: []models.ConnectionView{},
	}

	for _, v := range views {
		if v.Withdrawn() {
			continue
		}
		switch v.Status {
		case models.ConnectionAccepted:
			list.Accepted = append(list.Accepted, v)
		case models.ConnectionPending:
			if v.SenderID == currentID {
				list.PendingSent = append(list.PendingSent, v)
			} else {
				list.PendingReceived = append(list.PendingReceived, v)
			}
		}
	}
	return list
}
