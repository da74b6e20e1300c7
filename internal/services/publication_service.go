package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/codonyx/codonyx-api/internal/models"
	"github.com/codonyx/codonyx-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotPublicationOwner = errors.New("publication belongs to another profile")

// PublicationService handles profile-owned publications.
type PublicationService struct {
	repo *repository.PublicationRepository
}

func NewPublicationService(repo *repository.PublicationRepository) *PublicationService {
	return &PublicationService{repo: repo}
}

// Create attaches a new publication to the owner's profile.
func (s *PublicationService) Create(ctx context.Context, profileID primitive.ObjectID, pub *models.Publication) (*models.Publication, error) {
	if pub.Title == "" {
		return nil, fmt.Errorf("publication title is required")
	}
	if pub.PublicationType == "" {
		pub.PublicationType = "article"
	}
	pub.ProfileID = profileID

	return s.repo.CreatePublication(ctx, pub)
}

// ListByProfile returns a profile's publications (public read).
func (s *PublicationService) ListByProfile(ctx context.Context, profileID primitive.ObjectID) ([]models.Publication, error) {
	return s.repo.ListByProfile(ctx, profileID)
}

// Update edits a publication after checking ownership.
func (s *PublicationService) Update(ctx context.Context, pubID, callerProfileID primitive.ObjectID, updates map[string]interface{}) (*models.Publication, error) {
	pub, err := s.repo.GetPublicationByID(ctx, pubID)
	if err != nil {
		return nil, fmt.Errorf("publication not found: %v", err)
	}
	if pub.ProfileID != callerProfileID {
		return nil, ErrNotPublicationOwner
	}

	delete(updates, "_id")
	delete(updates, "profile_id")
	delete(updates, "created_at")

	return s.repo.UpdatePublication(ctx, pubID, updates)
}

// Delete removes a publication after checking ownership.
func (s *PublicationService) Delete(ctx context.Context, pubID, callerProfileID primitive.ObjectID) error {
	pub, err := s.repo.GetPublicationByID(ctx, pubID)
	if err != nil {
		return fmt.Errorf("publication not found: %v", err)
	}
	if pub.ProfileID != callerProfileID {
		return ErrNotPublicationOwner
	}

	return s.repo.DeletePublication(ctx, pubID)
}
