package services

import (
	"testing"
	"time"

	"github.com/codonyx/codonyx-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveStatus_NoRow(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	state := ResolveStatus(nil, alice, bob, time.Now())

	assert.Equal(t, RelationNone, state.Status)
	assert.Empty(t, state.ConnectionID)
	assert.Nil(t, state.CooldownUntil)
}

func TestResolveStatus_PendingAsymmetry(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	now := time.Now()

	rows := []models.Connection{{
		ID:         primitive.NewObjectID(),
		SenderID:   alice,
		ReceiverID: bob,
		Status:     models.ConnectionPending,
	}}

	fromAlice := ResolveStatus(rows, alice, bob, now)
	fromBob := ResolveStatus(rows, bob, alice, now)

	assert.Equal(t, RelationPendingSent, fromAlice.Status)
	assert.Equal(t, RelationPendingReceived, fromBob.Status)
	assert.Equal(t, rows[0].ID.Hex(), fromAlice.ConnectionID)
	assert.Equal(t, rows[0].ID.Hex(), fromBob.ConnectionID)
}

func TestResolveStatus_AcceptedIsSymmetric(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	now := time.Now()

	rows := []models.Connection{{
		ID:         primitive.NewObjectID(),
		SenderID:   alice,
		ReceiverID: bob,
		Status:     models.ConnectionAccepted,
	}}

	assert.Equal(t, RelationAccepted, ResolveStatus(rows, alice, bob, now).Status)
	assert.Equal(t, RelationAccepted, ResolveStatus(rows, bob, alice, now).Status)
}

func TestResolveStatus_RejectedIsDistinctFromNone(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	rows := []models.Connection{{
		ID:         primitive.NewObjectID(),
		SenderID:   alice,
		ReceiverID: bob,
		Status:     models.ConnectionRejected,
	}}

	state := ResolveStatus(rows, alice, bob, time.Now())
	assert.Equal(t, RelationRejected, state.Status)
}

func TestResolveStatus_WithdrawnInCooldown(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	withdrawnAt := now.Add(-3 * 24 * time.Hour)

	rows := []models.Connection{{
		ID:          primitive.NewObjectID(),
		SenderID:    alice,
		ReceiverID:  bob,
		Status:      models.ConnectionPending,
		WithdrawnAt: &withdrawnAt,
	}}

	// Both parties see "none" plus the same cooldown window.
	for _, pair := range [][2]primitive.ObjectID{{alice, bob}, {bob, alice}} {
		state := ResolveStatus(rows, pair[0], pair[1], now)
		assert.Equal(t, RelationNone, state.Status)
		require.NotNil(t, state.CooldownUntil)
		assert.Equal(t, withdrawnAt.Add(WithdrawCooldown), *state.CooldownUntil)
		assert.Equal(t, 11, state.CooldownDays)
	}
}

func TestResolveStatus_CooldownExpired(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	now := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	withdrawnAt := now.Add(-WithdrawCooldown)

	rows := []models.Connection{{
		ID:          primitive.NewObjectID(),
		SenderID:    alice,
		ReceiverID:  bob,
		Status:      models.ConnectionPending,
		WithdrawnAt: &withdrawnAt,
	}}

	// Exactly at the boundary the cooldown is over.
	state := ResolveStatus(rows, alice, bob, now)
	assert.Equal(t, RelationNone, state.Status)
	assert.Nil(t, state.CooldownUntil)
	assert.Zero(t, state.CooldownDays)
}

func TestDaysUntil_RoundsUp(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, daysUntil(now, now))
	assert.Equal(t, 1, daysUntil(now, now.Add(time.Minute)))
	assert.Equal(t, 1, daysUntil(now, now.Add(24*time.Hour)))
	assert.Equal(t, 2, daysUntil(now, now.Add(24*time.Hour+time.Second)))
	assert.Equal(t, 14, daysUntil(now, now.Add(WithdrawCooldown)))
}

func TestPartitionConnections(t *testing.T) {
	me := primitive.NewObjectID()
	other := primitive.NewObjectID()
	withdrawnAt := time.Now()

	views := []models.ConnectionView{
		{Connection: models.Connection{ID: primitive.NewObjectID(), SenderID: me, ReceiverID: other, Status: models.ConnectionAccepted}},
		{Connection: models.Connection{ID: primitive.NewObjectID(), SenderID: me, ReceiverID: other, Status: models.ConnectionPending}},
		{Connection: models.Connection{ID: primitive.NewObjectID(), SenderID: other, ReceiverID: me, Status: models.ConnectionPending}},
		{Connection: models.Connection{ID: primitive.NewObjectID(), SenderID: me, ReceiverID: other, Status: models.ConnectionRejected}},
		{Connection: models.Connection{ID: primitive.NewObjectID(), SenderID: me, ReceiverID: other, Status: models.ConnectionPending, WithdrawnAt: &withdrawnAt}},
	}

	list := partitionConnections(views, me)

	assert.Len(t, list.Accepted, 1)
	assert.Len(t, list.PendingSent, 1)
	assert.Len(t, list.PendingReceived, 1)
}
