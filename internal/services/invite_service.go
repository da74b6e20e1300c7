package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codonyx/codonyx-api/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInviteNotFound = errors.New("invite token not found")
	ErrInviteInvalid  = errors.New("invite token is inactive, used or expired")
)

// DefaultInviteTTL is how long a freshly minted invite token stays valid.
const DefaultInviteTTL = 7 * 24 * time.Hour

// InviteStore is the persistence surface for invite tokens.
type InviteStore interface {
	CreateToken(ctx context.Context, token *models.InviteToken) (*models.InviteToken, error)
	GetByToken(ctx context.Context, token string) (*models.InviteToken, error)
	ListTokens(ctx context.Context) ([]models.InviteToken, error)
	MarkUsed(ctx context.Context, id, usedBy primitive.ObjectID) error
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	DeactivateExpired(ctx context.Context) (int64, error)
}

// InviteService manages the invite tokens gating distributor registration.
type InviteService struct {
	store InviteStore
	now   func() time.Time
}

func NewInviteService(store InviteStore) *InviteService {
	return &InviteService{
		store: store,
		now:   time.Now,
	}
}

// Mint creates a new active token. A zero ttl falls back to the default.
func (s *InviteService) Mint(ctx context.Context, createdBy primitive.ObjectID, ttl time.Duration) (*models.InviteToken, error) {
	if ttl <= 0 {
		ttl = DefaultInviteTTL
	}

	token := &models.InviteToken{
		Token:     uuid.NewString(),
		CreatedBy: createdBy,
		ExpiresAt: s.now().Add(ttl),
		IsActive:  true,
	}

	created, err := s.store.CreateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	logrus.WithField("inviteID", created.ID.Hex()).Info("Invite token minted")
	return created, nil
}

// List returns every token for the admin back-office.
func (s *InviteService) List(ctx context.Context) ([]models.InviteToken, error) {
	return s.store.ListTokens(ctx)
}

// Toggle switches a token on or off.
func (s *InviteService) Toggle(ctx context.Context, id primitive.ObjectID, active bool) error {
	return s.store.SetActive(ctx, id, active)
}

// Validate looks a token string up and checks it is still consumable.
func (s *InviteService) Validate(ctx context.Context, token string) (*models.InviteToken, error) {
	invite, err := s.store.GetByToken(ctx, token)
	if err != nil {
		return nil, ErrInviteNotFound
	}
	if !invite.Consumable(s.now()) {
		return nil, ErrInviteInvalid
	}
	return invite, nil
}

// Consume stamps a token as used by the given account.
func (s *InviteService) Consume(ctx context.Context, id, usedBy primitive.ObjectID) error {
	if err := s.store.MarkUsed(ctx, id, usedBy); err != nil {
		return fmt.Errorf("failed to consume invite token: %v", err)
	}
	return nil
}

// SweepExpired disables every token past its expiry. Called by the nightly
// maintenance job.
func (s *InviteService) SweepExpired(ctx context.Context) error {
	_, err := s.store.DeactivateExpired(ctx)
	return err
}
