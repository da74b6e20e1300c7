package services

import (
	"context"
	"time"

	"github.com/codonyx/codonyx-api/internal/models"
	"github.com/codonyx/codonyx-api/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActivityService struct {
	repo *repository.ActivityRepository
}

func NewActivityService(repo *repository.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// LogActivity records a platform event performed by a profile
func (s *ActivityService) LogActivity(
	ctx context.Context,
	profileID primitive.ObjectID,
	actionType string,
	targetID primitive.ObjectID,
	message string,
) error {
	activity := &models.Activity{
		ProfileID: profileID,
		Type:      actionType,
		TargetID:  targetID,
		Message:   message,
		Timestamp: time.Now(),
	}

	err := s.repo.CreateActivity(ctx, activity)
	if err != nil {
		logrus.WithError(err).Error("Failed to log activity in service")
		return err
	}

	return nil
}

// GetRecentActivities returns recent actions performed by a profile
func (s *ActivityService) GetRecentActivities(ctx context.Context, profileID primitive.ObjectID, limit int) ([]models.Activity, error) {
	return s.repo.GetProfileActivities(ctx, profileID, limit)
}
