package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codonyx/codonyx-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubConnectionStore is an in-memory ConnectionStore.
type stubConnectionStore struct {
	rows map[primitive.ObjectID]*models.Connection
}

func newStubConnectionStore() *stubConnectionStore {
	return &stubConnectionStore{rows: map[primitive.ObjectID]*models.Connection{}}
}

func (s *stubConnectionStore) Insert(_ context.Context, conn *models.Connection) (*models.Connection, error) {
	conn.ID = primitive.NewObjectID()
	conn.Status = models.ConnectionPending
	conn.CreatedAt = time.Now()
	conn.UpdatedAt = conn.CreatedAt
	s.rows[conn.ID] = conn
	return conn, nil
}

func (s *stubConnectionStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Connection, error) {
	conn, ok := s.rows[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return conn, nil
}

func (s *stubConnectionStore) FindBetween(_ context.Context, a, b primitive.ObjectID) (*models.Connection, error) {
	for _, conn := range s.rows {
		if (conn.SenderID == a && conn.ReceiverID == b) || (conn.SenderID == b && conn.ReceiverID == a) {
			return conn, nil
		}
	}
	return nil, nil
}

func (s *stubConnectionStore) ListForProfile(_ context.Context, profileID primitive.ObjectID) ([]models.Connection, error) {
	var out []models.Connection
	for _, conn := range s.rows {
		if conn.Involves(profileID) {
			out = append(out, *conn)
		}
	}
	return out, nil
}

func (s *stubConnectionStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	conn, ok := s.rows[id]
	if !ok {
		return errors.New("not found")
	}
	conn.Status = status
	return nil
}

func (s *stubConnectionStore) Withdraw(_ context.Context, id primitive.ObjectID, at time.Time) error {
	conn, ok := s.rows[id]
	if !ok {
		return errors.New("not found")
	}
	conn.WithdrawnAt = &at
	return nil
}

func (s *stubConnectionStore) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(s.rows, id)
	return nil
}

// stubProfiles is an in-memory ProfileGetter.
type stubProfiles struct {
	profiles map[primitive.ObjectID]models.Profile
}

func (s *stubProfiles) GetProfileByID(_ context.Context, id primitive.ObjectID) (*models.Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, errors.New("profile not found")
	}
	return &p, nil
}

func (s *stubProfiles) GetProfilesByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Profile, error) {
	var out []models.Profile
	for _, id := range ids {
		if p, ok := s.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func approvedProfile(name string) models.Profile {
	return models.Profile{
		ID:             primitive.NewObjectID(),
		UserID:         primitive.NewObjectID(),
		FullName:       name,
		UserType:       models.UserTypeAdvisor,
		ApprovalStatus: models.ApprovalApproved,
	}
}

func newTestConnectionService(profiles ...models.Profile) (*ConnectionService, *stubConnectionStore) {
	store := newStubConnectionStore()
	byID := map[primitive.ObjectID]models.Profile{}
	for _, p := range profiles {
		byID[p.ID] = p
	}
	svc := NewConnectionService(store, &stubProfiles{profiles: byID}, nil, nil, nil)
	return svc, store
}

func TestSendRequest_SelfIsRejected(t *testing.T) {
	alice := approvedProfile("Alice")
	svc, _ := newTestConnectionService(alice)

	_, err := svc.SendRequest(context.Background(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfRequest)
}

func TestSendRequest_UnapprovedReceiver(t *testing.T) {
	alice := approvedProfile("Alice")
	bob := approvedProfile("Bob")
	bob.ApprovalStatus = models.ApprovalPending
	svc, _ := newTestConnectionService(alice, bob)

	_, err := svc.SendRequest(context.Background(), alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotApproved)
}

func TestSendRequest_DuplicateBlockedBothDirections(t *testing.T) {
	alice := approvedProfile("Alice")
	bob := approvedProfile("Bob")
	svc, _ := newTestConnectionService(alice, bob)
	ctx := context.Background()

	conn, err := svc.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionPending, conn.Status)

	_, err = svc.SendRequest(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// The reverse direction is blocked by the same row.
	_, err = svc.SendRequest(ctx, bob.ID, alice.ID)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestWithdraw_StartsCooldown(t *testing.T) {
	alice := approvedProfile("Alice")
	bob := approvedProfile("Bob")
	svc, store := newTestConnectionService(alice, bob)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	conn, err := svc.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, svc.WithdrawRequest(ctx, conn.ID, alice.ID))
	assert.True(t, store.rows[conn.ID].Withdrawn())

	// Re-requesting inside the window fails, from either side.
	svc.now = func() time.Time { return base.Add(13 * 24 * time.Hour) }
	_, err = svc.SendRequest(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrCooldownActive)
	_, err = svc.SendRequest(ctx, bob.ID, alice.ID)
	assert.ErrorIs(t, err, ErrCooldownActive)

	// Status surfaces the cooldown to the client.
	state, err := svc.StatusFor(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, RelationNone, state.Status)
	assert.Equal(t, 1, state.CooldownDays)

	// Once the window has elapsed a fresh request goes through and the
	// stale row is gone.
	svc.now = func() time.Time { return base.Add(WithdrawCooldown) }
	fresh, err := svc.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.NotEqual(t, conn.ID, fresh.ID)
	assert.Len(t, store.rows, 1)
}

func TestWithdraw_OnlySenderAndOnlyPending(t *testing.T) {
	alice := approvedProfile("Alice")
	bob := approvedProfile("Bob")
	svc, _ := newTestConnectionService(alice, bob)
	ctx := context.Background()

	conn, err := svc.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.WithdrawRequest(ctx, conn.ID, bob.ID), ErrNotSender)

	require.NoError(t, svc.Respond(ctx, conn.ID, bob.ID, true))
	assert.ErrorIs(t, svc.WithdrawRequest(ctx, conn.ID, alice.ID), ErrNotPending)
}

func TestRespond_ReceiverOnly(t *testing.T) {
	alice := approvedProfile("Alice")
	bob := approvedProfile("Bob")
	svc, _ := newTestConnectionService(alice, bob)
	ctx := context.Background()

	conn, err := svc.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Respond(ctx, conn.ID, alice.ID, true), ErrNotReceiver)
}

func TestRespond_AcceptIsIdempotent(t *testing.T) {
	alice := approvedProfile("Alice")
	bob := approvedProfile("Bob")
	svc, store := newTestConnectionService(alice, bob)
	ctx := context.Background()

	conn, err := svc.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Respond(ctx, conn.ID, bob.ID, true))
	assert.Equal(t, models.ConnectionAccepted, store.rows[conn.ID].Status)

	// Accepting again is a no-op, rejecting afterwards is an error.
	assert.NoError(t, svc.Respond(ctx, conn.ID, bob.ID, true))
	assert.ErrorIs(t, svc.Respond(ctx, conn.ID, bob.ID, false), ErrNotPending)
}

func TestRespond_RejectAllowsReRequest(t *testing.T) {
	alice := approvedProfile("Alice")
	bob := approvedProfile("Bob")
	svc, store := newTestConnectionService(alice, bob)
	ctx := context.Background()

	conn, err := svc.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Respond(ctx, conn.ID, bob.ID, false))
	assert.Equal(t, models.ConnectionRejected, store.rows[conn.ID].Status)

	// A rejection does not start a cooldown; the stale row is replaced.
	fresh, err := svc.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.NotEqual(t, conn.ID, fresh.ID)
	assert.Len(t, store.rows, 1)
}

func TestRemoveConnection(t *testing.T) {
	alice := approvedProfile("Alice")
	bob := approvedProfile("Bob")
	carol := approvedProfile("Carol")
	svc, store := newTestConnectionService(alice, bob, carol)
	ctx := context.Background()

	conn, err := svc.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	// Pending connections cannot be removed, only withdrawn.
	assert.ErrorIs(t, svc.RemoveConnection(ctx, conn.ID, alice.ID), ErrNotAccepted)

	require.NoError(t, svc.Respond(ctx, conn.ID, bob.ID, true))

	assert.ErrorIs(t, svc.RemoveConnection(ctx, conn.ID, carol.ID), ErrNotParticipant)

	require.NoError(t, svc.RemoveConnection(ctx, conn.ID, bob.ID))
	assert.Empty(t, store.rows)
}

func TestListConnections_PartitionsAndJoins(t *testing.T) {
	alice := approvedProfile("Alice")
	bob := approvedProfile("Bob")
	carol := approvedProfile("Carol")
	dave := approvedProfile("Dave")
	svc, _ := newTestConnectionService(alice, bob, carol, dave)
	ctx := context.Background()

	// Alice -> Bob accepted, Alice -> Carol pending, Dave -> Alice pending.
	ab, err := svc.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Respond(ctx, ab.ID, bob.ID, true))
	_, err = svc.SendRequest(ctx, alice.ID, carol.ID)
	require.NoError(t, err)
	_, err = svc.SendRequest(ctx, dave.ID, alice.ID)
	require.NoError(t, err)

	list, err := svc.ListConnections(ctx, alice.ID)
	require.NoError(t, err)

	require.Len(t, list.Accepted, 1)
	assert.Equal(t, "Bob", list.Accepted[0].Counterpart.FullName)
	require.Len(t, list.PendingSent, 1)
	assert.Equal(t, "Carol", list.PendingSent[0].Counterpart.FullName)
	require.Len(t, list.PendingReceived, 1)
	assert.Equal(t, "Dave", list.PendingReceived[0].Counterpart.FullName)
}

func TestStatusFor_RoundTrip(t *testing.T) {
	alice := approvedProfile("Alice")
	bob := approvedProfile("Bob")
	svc, _ := newTestConnectionService(alice, bob)
	ctx := context.Background()

	conn, err := svc.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	fromAlice, err := svc.StatusFor(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, RelationPendingSent, fromAlice.Status)
	assert.Equal(t, conn.ID.Hex(), fromAlice.ConnectionID)

	fromBob, err := svc.StatusFor(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, RelationPendingReceived, fromBob.Status)

	require.NoError(t, svc.Respond(ctx, conn.ID, bob.ID, true))

	fromAlice, err = svc.StatusFor(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, RelationAccepted, fromAlice.Status)
}
