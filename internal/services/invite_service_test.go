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

type stubInviteStore struct {
	tokens map[primitive.ObjectID]*models.InviteToken
}

func newStubInviteStore() *stubInviteStore {
	return &stubInviteStore{tokens: map[primitive.ObjectID]*models.InviteToken{}}
}

func (s *stubInviteStore) CreateToken(_ context.Context, token *models.InviteToken) (*models.InviteToken, error) {
	token.ID = primitive.NewObjectID()
	token.CreatedAt = time.Now()
	s.tokens[token.ID] = token
	return token, nil
}

func (s *stubInviteStore) GetByToken(_ context.Context, token string) (*models.InviteToken, error) {
	for _, t := range s.tokens {
		if t.Token == token {
			return t, nil
		}
	}
	return nil, errors.New("not found")
}

func (s *stubInviteStore) ListTokens(_ context.Context) ([]models.InviteToken, error) {
	var out []models.InviteToken
	for _, t := range s.tokens {
		out = append(out, *t)
	}
	return out, nil
}

func (s *stubInviteStore) MarkUsed(_ context.Context, id, usedBy primitive.ObjectID) error {
	t, ok := s.tokens[id]
	if !ok {
		return errors.New("not found")
	}
	now := time.Now()
	t.UsedAt = &now
	t.UsedBy = &usedBy
	return nil
}

func (s *stubInviteStore) SetActive(_ context.Context, id primitive.ObjectID, active bool) error {
	t, ok := s.tokens[id]
	if !ok {
		return errors.New("not found")
	}
	t.IsActive = active
	return nil
}

func (s *stubInviteStore) DeactivateExpired(_ context.Context) (int64, error) {
	var count int64
	now := time.Now()
	for _, t := range s.tokens {
		if t.IsActive && now.After(t.ExpiresAt) {
			t.IsActive = false
			count++
		}
	}
	return count, nil
}

func newTestInviteService() (*InviteService, *stubInviteStore) {
	store := newStubInviteStore()
	return NewInviteService(store), store
}

func TestMint_DefaultTTL(t *testing.T) {
	svc, _ := newTestInviteService()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	token, err := svc.Mint(context.Background(), primitive.NewObjectID(), 0)
	require.NoError(t, err)

	assert.True(t, token.IsActive)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, base.Add(DefaultInviteTTL), token.ExpiresAt)
}

func TestValidate(t *testing.T) {
	svc, _ := newTestInviteService()
	ctx := context.Background()

	token, err := svc.Mint(ctx, primitive.NewObjectID(), time.Hour)
	require.NoError(t, err)

	got, err := svc.Validate(ctx, token.Token)
	require.NoError(t, err)
	assert.Equal(t, token.ID, got.ID)

	_, err = svc.Validate(ctx, "no-such-token")
	assert.ErrorIs(t, err, ErrInviteNotFound)
}

func TestValidate_RejectsUsedInactiveAndExpired(t *testing.T) {
	svc, _ := newTestInviteService()
	ctx := context.Background()

	used, err := svc.Mint(ctx, primitive.NewObjectID(), time.Hour)
	require.NoError(t, err)
	require.NoError(t, svc.Consume(ctx, used.ID, primitive.NewObjectID()))
	_, err = svc.Validate(ctx, used.Token)
	assert.ErrorIs(t, err, ErrInviteInvalid)

	disabled, err := svc.Mint(ctx, primitive.NewObjectID(), time.Hour)
	require.NoError(t, err)
	require.NoError(t, svc.Toggle(ctx, disabled.ID, false))
	_, err = svc.Validate(ctx, disabled.Token)
	assert.ErrorIs(t, err, ErrInviteInvalid)

	expired, err := svc.Mint(ctx, primitive.NewObjectID(), time.Hour)
	require.NoError(t, err)
	svc.now = func() time.Time { return expired.ExpiresAt.Add(time.Minute) }
	_, err = svc.Validate(ctx, expired.Token)
	assert.ErrorIs(t, err, ErrInviteInvalid)
}

func TestSweepExpired(t *testing.T) {
	svc, store := newTestInviteService()
	ctx := context.Background()

	stale, err := svc.Mint(ctx, primitive.NewObjectID(), time.Hour)
	require.NoError(t, err)
	store.tokens[stale.ID].ExpiresAt = time.Now().Add(-time.Hour)

	fresh, err := svc.Mint(ctx, primitive.NewObjectID(), time.Hour)
	require.NoError(t, err)

	require.NoError(t, svc.SweepExpired(ctx))
	assert.False(t, store.tokens[stale.ID].IsActive)
	assert.True(t, store.tokens[fresh.ID].IsActive)
}
