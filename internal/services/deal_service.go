package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/codonyx/codonyx-api/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrDealNotOpen   = errors.New("deal is not open for bidding")
	ErrInvalidAmount = errors.New("bid amount must be greater than zero")
	ErrBidExists     = errors.New("an active bid already exists on this deal")
	ErrNotBidOwner   = errors.New("bid belongs to another distributor")
	ErrBidNotPending = errors.New("bid has already been resolved")
)

// DealStore is the persistence surface for marketplace deals.
type DealStore interface {
	CreateDeal(ctx context.Context, deal *models.Deal) (*models.Deal, error)
	GetDealByID(ctx context.Context, id primitive.ObjectID) (*models.Deal, error)
	ListDeals(ctx context.Context, status string) ([]models.Deal, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
	AddRaisedAmount(ctx context.Context, id primitive.ObjectID, amount float64) error
}

// BidStore is the persistence surface for deal bids.
type BidStore interface {
	CreateBid(ctx context.Context, bid *models.DealBid) (*models.DealBid, error)
	GetBidByID(ctx context.Context, id primitive.ObjectID) (*models.DealBid, error)
	FindActiveBid(ctx context.Context, dealID, distributorID primitive.ObjectID) (*models.DealBid, error)
	ListBidsByDistributor(ctx context.Context, distributorID primitive.ObjectID) ([]models.DealBid, error)
	ListAllBids(ctx context.Context) ([]models.DealBid, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

// DealService handles the deal/bid marketplace for distributors.
type DealService struct {
	deals      DealStore
	bids       BidStore
	activities ActivityLogger
}

func NewDealService(deals DealStore, bids BidStore, activities ActivityLogger) *DealService {
	return &DealService{
		deals:      deals,
		bids:       bids,
		activities: activities,
	}
}

// CreateDeal creates a draft deal (admin only, enforced at the route level).
func (s *DealService) CreateDeal(ctx context.Context, createdBy primitive.ObjectID, title, description string, targetAmount float64) (*models.Deal, error) {
	if title == "" {
		return nil, fmt.Errorf("deal title is required")
	}
	if targetAmount <= 0 {
		return nil, fmt.Errorf("target amount must be greater than zero")
	}

	deal := &models.Deal{
		Title:        title,
		Description:  description,
		TargetAmount: targetAmount,
		DealStatus:   models.DealDraft,
		CreatedBy:    createdBy,
	}

	created, err := s.deals.CreateDeal(ctx, deal)
	if err != nil {
		return nil, err
	}

	logrus.WithField("dealID", created.ID.Hex()).Info("Deal created")
	return created, nil
}

// SetDealStatus moves a deal between draft, published and closed.
func (s *DealService) SetDealStatus(ctx context.Context, dealID primitive.ObjectID, status string) error {
	switch status {
	case models.DealDraft, models.DealPublished, models.DealClosed:
	default:
		return fmt.Errorf("unknown deal status %q", status)
	}

	if _, err := s.deals.GetDealByID(ctx, dealID); err != nil {
		return fmt.Errorf("deal not found: %v", err)
	}

	return s.deals.SetStatus(ctx, dealID, status)
}

// ListPublishedDeals returns the deals distributors can bid on.
func (s *DealService) ListPublishedDeals(ctx context.Context) ([]models.Deal, error) {
	return s.deals.ListDeals(ctx, models.DealPublished)
}

// ListAllDeals returns every deal (admin view).
func (s *DealService) ListAllDeals(ctx context.Context) ([]models.Deal, error) {
	return s.deals.ListDeals(ctx, "")
}

// PlaceBid records a distributor's bid on a published deal. One active bid
// per distributor per deal; a withdrawn bid does not block a new one.
func (s *DealService) PlaceBid(ctx context.Context, dealID, distributorID primitive.ObjectID, amount float64, notes string) (*models.DealBid, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	deal, err := s.deals.GetDealByID(ctx, dealID)
	if err != nil {
		return nil, fmt.Errorf("deal not found: %v", err)
	}
	if deal.DealStatus != models.DealPublished {
		return nil, ErrDealNotOpen
	}

	existing, err := s.bids.FindActiveBid(ctx, dealID, distributorID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrBidExists
	}

	bid := &models.DealBid{
		DealID:               dealID,
		DistributorProfileID: distributorID,
		BidAmount:            amount,
		Notes:                notes,
	}

	created, err := s.bids.CreateBid(ctx, bid)
	if err != nil {
		return nil, err
	}

	if s.activities != nil {
		msg := fmt.Sprintf("Placed a bid on %q", deal.Title)
		if err := s.activities.LogActivity(ctx, distributorID, "bid_placed", created.ID, msg); err != nil {
			logrus.WithError(err).Warn("Failed to log bid activity")
		}
	}

	logrus.WithFields(logrus.Fields{
		"dealID": dealID.Hex(),
		"bidID":  created.ID.Hex(),
	}).Info("Bid placed")

	return created, nil
}

// WithdrawBid lets a distributor pull a pending bid.
func (s *DealService) WithdrawBid(ctx context.Context, bidID, distributorID primitive.ObjectID) error {
	bid, err := s.bids.GetBidByID(ctx, bidID)
	if err != nil {
		return fmt.Errorf("bid not found: %v", err)
	}

	if bid.DistributorProfileID != distributorID {
		return ErrNotBidOwner
	}
	if bid.BidStatus != models.BidPending {
		return ErrBidNotPending
	}

	return s.bids.SetStatus(ctx, bidID, models.BidWithdrawn)
}

// ListBidsByDistributor returns a distributor's own bids.
func (s *DealService) ListBidsByDistributor(ctx context.Context, distributorID primitive.ObjectID) ([]models.DealBid, error) {
	return s.bids.ListBidsByDistributor(ctx, distributorID)
}

// ListAllBids returns every bid for admin review.
func (s *DealService) ListAllBids(ctx context.Context) ([]models.DealBid, error) {
	return s.bids.ListAllBids(ctx)
}

// ReviewBid records the admin decision on a pending bid. Accepting adds the
// amount to the deal's raised total.
func (s *DealService) ReviewBid(ctx context.Context, bidID primitive.ObjectID, accept bool) error {
	bid, err := s.bids.GetBidByID(ctx, bidID)
	if err != nil {
		return fmt.Errorf("bid not found: %v", err)
	}

	if bid.BidStatus != models.BidPending {
		return ErrBidNotPending
	}

	status := models.BidRejected
	if accept {
		status = models.BidAccepted
	}

	if err := s.bids.SetStatus(ctx, bidID, status); err != nil {
		return err
	}

	if accept {
		if err := s.deals.AddRaisedAmount(ctx, bid.DealID, bid.BidAmount); err != nil {
			logrus.WithError(err).Error("Failed to update raised amount after accepting bid")
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"bidID":  bidID.Hex(),
		"status": status,
	}).Info("Bid reviewed")

	return nil
}
