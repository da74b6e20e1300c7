package services

import (
	"context"
	"fmt"

	"github.com/codonyx/codonyx-api/internal/models"
	"github.com/codonyx/codonyx-api/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OpportunityService handles deal proposals submitted by advisors and
// laboratories.
type OpportunityService struct {
	repo  *repository.OpportunityRepository
	deals DealStore
}

func NewOpportunityService(repo *repository.OpportunityRepository, deals DealStore) *OpportunityService {
	return &OpportunityService{
		repo:  repo,
		deals: deals,
	}
}

// Submit files a new pending opportunity on behalf of a profile.
func (s *OpportunityService) Submit(ctx context.Context, profileID primitive.ObjectID, title, description string, estimatedValue float64) (*models.OpportunitySubmission, error) {
	if title == "" {
		return nil, fmt.Errorf("opportunity title is required")
	}

	sub := &models.OpportunitySubmission{
		SubmittedBy:    profileID,
		Title:          title,
		Description:    description,
		EstimatedValue: estimatedValue,
	}

	created, err := s.repo.CreateSubmission(ctx, sub)
	if err != nil {
		return nil, err
	}

	logrus.WithField("submissionID", created.ID.Hex()).Info("Opportunity submitted")
	return created, nil
}

// ListMine returns a profile's own submissions.
func (s *OpportunityService) ListMine(ctx context.Context, profileID primitive.ObjectID) ([]models.OpportunitySubmission, error) {
	return s.repo.ListBySubmitter(ctx, profileID)
}

// ListAll returns every submission for admin review.
func (s *OpportunityService) ListAll(ctx context.Context) ([]models.OpportunitySubmission, error) {
	return s.repo.ListAll(ctx)
}

// Review records the admin decision. Approving a submission materializes a
// draft deal seeded from it and links the two.
func (s *OpportunityService) Review(ctx context.Context, submissionID, reviewerID primitive.ObjectID, approve bool) error {
	sub, err := s.repo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return fmt.Errorf("submission not found: %v", err)
	}

	if sub.SubmissionStatus != models.SubmissionPending {
		return fmt.Errorf("submission already reviewed")
	}

	if !approve {
		return s.repo.SetReview(ctx, submissionID, models.SubmissionRejected, nil)
	}

	deal := &models.Deal{
		Title:        sub.Title,
		Description:  sub.Description,
		TargetAmount: sub.EstimatedValue,
		DealStatus:   models.DealDraft,
		CreatedBy:    reviewerID,
	}

	created, err := s.deals.CreateDeal(ctx, deal)
	if err != nil {
		return fmt.Errorf("failed to create deal from submission: %v", err)
	}

	if err := s.repo.SetReview(ctx, submissionID, models.SubmissionApproved, &created.ID); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"submissionID": submissionID.Hex(),
		"dealID":       created.ID.Hex(),
	}).Info("Opportunity approved into draft deal")

	return nil
}
