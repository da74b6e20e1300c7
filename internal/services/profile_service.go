package services

import (
	"context"
	"fmt"

	"github.com/codonyx/codonyx-api/internal/models"
	"github.com/codonyx/codonyx-api/internal/repository"
	"github.com/codonyx/codonyx-api/pkg/email"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fields a participant can never change on their own profile.
var protectedProfileFields = map[string]bool{
	"_id":             true,
	"user_id":         true,
	"email":           true,
	"user_type":       true,
	"approval_status": true,
	"invite_token_id": true,
	"created_at":      true,
}

// ProfileService handles participant profiles and the admin approval flow.
type ProfileService struct {
	repo          *repository.ProfileRepository
	notifier      *email.Notifier
	notifications NotificationSink
}

func NewProfileService(repo *repository.ProfileRepository, notifier *email.Notifier, notifications NotificationSink) *ProfileService {
	return &ProfileService{
		repo:          repo,
		notifier:      notifier,
		notifications: notifications,
	}
}

// GetProfile retrieves a profile by ID.
func (s *ProfileService) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.Profile, error) {
	return s.repo.GetProfileByID(ctx, id)
}

// GetProfileByUserID retrieves the profile linked to an auth account.
func (s *ProfileService) GetProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	return s.repo.GetProfileByUserID(ctx, userID)
}

// UpdateOwnProfile applies a participant's edits, dropping any protected keys.
func (s *ProfileService) UpdateOwnProfile(ctx context.Context, userID primitive.ObjectID, updates map[string]interface{}) (*models.Profile, error) {
	profile, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile not found: %v", err)
	}

	for key := range updates {
		if protectedProfileFields[key] {
			delete(updates, key)
		}
	}
	if len(updates) == 0 {
		return profile, nil
	}

	updated, err := s.repo.UpdateProfile(ctx, profile.ID, updates)
	if err != nil {
		return nil, err
	}

	logrus.WithField("profileID", profile.ID.Hex()).Info("Profile updated")
	return updated, nil
}

// Directory lists approved profiles of one participant type.
func (s *ProfileService) Directory(ctx context.Context, userType string) ([]models.PublicProfile, error) {
	switch userType {
	case models.UserTypeAdvisor, models.UserTypeLaboratory, models.UserTypeDistributor:
	default:
		return nil, fmt.Errorf("unknown participant type %q", userType)
	}

	profiles, err := s.repo.ListByType(ctx, userType)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.PublicProfile, 0, len(profiles))
	for _, p := range profiles {
		summaries = append(summaries, p.Public())
	}
	return summaries, nil
}

// ListByApprovalStatus returns profiles for the admin back-office.
func (s *ProfileService) ListByApprovalStatus(ctx context.Context, status string) ([]models.Profile, error) {
	return s.repo.ListByApprovalStatus(ctx, status)
}

// ReviewRegistration records an admin approval decision and notifies the
// registrant by email and in-app notice. Notification failures are logged but
// do not roll back the decision.
func (s *ProfileService) ReviewRegistration(ctx context.Context, profileID primitive.ObjectID, approve bool) error {
	profile, err := s.repo.GetProfileByID(ctx, profileID)
	if err != nil {
		return fmt.Errorf("profile not found: %v", err)
	}

	if profile.ApprovalStatus != models.ApprovalPending {
		return fmt.Errorf("registration already reviewed")
	}

	status := models.ApprovalRejected
	if approve {
		status = models.ApprovalApproved
	}

	if err := s.repo.SetApprovalStatus(ctx, profileID, status); err != nil {
		return err
	}

	if approve {
		if err := s.notifier.RegistrationApproved(profile.Email, profile.FullName, profile.UserType); err != nil {
			logrus.WithError(err).Warn("Failed to send approval email")
		}
	} else {
		if err := s.notifier.RegistrationRejected(profile.Email, profile.FullName, profile.UserType); err != nil {
			logrus.WithError(err).Warn("Failed to send rejection email")
		}
	}

	if s.notifications != nil {
		title := "Registration Update"
		msg := "Your Codonyx registration has been reviewed."
		if approve {
			msg = "Your Codonyx registration has been approved. Welcome to the network!"
		}
		if err := s.notifications.CreateNotification(ctx, profile.UserID, "registration_reviewed", title, msg, &profile.ID); err != nil {
			logrus.WithError(err).Warn("Failed to create registration notification")
		}
	}

	logrus.WithFields(logrus.Fields{
		"profileID": profileID.Hex(),
		"status":    status,
	}).Info("Registration reviewed")

	return nil
}
