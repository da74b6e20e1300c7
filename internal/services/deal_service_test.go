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

type stubDealStore struct {
	deals map[primitive.ObjectID]*models.Deal
}

func newStubDealStore() *stubDealStore {
	return &stubDealStore{deals: map[primitive.ObjectID]*models.Deal{}}
}

func (s *stubDealStore) CreateDeal(_ context.Context, deal *models.Deal) (*models.Deal, error) {
	deal.ID = primitive.NewObjectID()
	deal.CreatedAt = time.Now()
	s.deals[deal.ID] = deal
	return deal, nil
}

func (s *stubDealStore) GetDealByID(_ context.Context, id primitive.ObjectID) (*models.Deal, error) {
	deal, ok := s.deals[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return deal, nil
}

func (s *stubDealStore) ListDeals(_ context.Context, status string) ([]models.Deal, error) {
	var out []models.Deal
	for _, deal := range s.deals {
		if status == "" || deal.DealStatus == status {
			out = append(out, *deal)
		}
	}
	return out, nil
}

func (s *stubDealStore) SetStatus(_ context.Context, id primitive.ObjectID, status string) error {
	deal, ok := s.deals[id]
	if !ok {
		return errors.New("not found")
	}
	deal.DealStatus = status
	return nil
}

func (s *stubDealStore) AddRaisedAmount(_ context.Context, id primitive.ObjectID, amount float64) error {
	deal, ok := s.deals[id]
	if !ok {
		return errors.New("not found")
	}
	deal.RaisedAmount += amount
	return nil
}

type stubBidStore struct {
	bids map[primitive.ObjectID]*models.DealBid
}

func newStubBidStore() *stubBidStore {
	return &stubBidStore{bids: map[primitive.ObjectID]*models.DealBid{}}
}

func (s *stubBidStore) CreateBid(_ context.Context, bid *models.DealBid) (*models.DealBid, error) {
	bid.ID = primitive.NewObjectID()
	bid.BidStatus = models.BidPending
	bid.CreatedAt = time.Now()
	s.bids[bid.ID] = bid
	return bid, nil
}

func (s *stubBidStore) GetBidByID(_ context.Context, id primitive.ObjectID) (*models.DealBid, error) {
	bid, ok := s.bids[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return bid, nil
}

func (s *stubBidStore) FindActiveBid(_ context.Context, dealID, distributorID primitive.ObjectID) (*models.DealBid, error) {
	for _, bid := range s.bids {
		if bid.DealID == dealID && bid.DistributorProfileID == distributorID && bid.BidStatus != models.BidWithdrawn {
			return bid, nil
		}
	}
	return nil, nil
}

func (s *stubBidStore) ListBidsByDistributor(_ context.Context, distributorID primitive.ObjectID) ([]models.DealBid, error) {
	var out []models.DealBid
	for _, bid := range s.bids {
		if bid.DistributorProfileID == distributorID {
			out = append(out, *bid)
		}
	}
	return out, nil
}

func (s *stubBidStore) ListAllBids(_ context.Context) ([]models.DealBid, error) {
	var out []models.DealBid
	for _, bid := range s.bids {
		out = append(out, *bid)
	}
	return out, nil
}

func (s *stubBidStore) SetStatus(_ context.Context, id primitive.ObjectID, status string) error {
	bid, ok := s.bids[id]
	if !ok {
		return errors.New("not found")
	}
	bid.BidStatus = status
	return nil
}

func newTestDealService() (*DealService, *stubDealStore, *stubBidStore) {
	deals := newStubDealStore()
	bids := newStubBidStore()
	return NewDealService(deals, bids, nil), deals, bids
}

func publishedDeal(t *testing.T, svc *DealService, target float64) *models.Deal {
	t.Helper()
	deal, err := svc.CreateDeal(context.Background(), primitive.NewObjectID(), "Series A distribution", "", target)
	require.NoError(t, err)
	require.NoError(t, svc.SetDealStatus(context.Background(), deal.ID, models.DealPublished))
	return deal
}

func TestCreateDeal_StartsAsDraft(t *testing.T) {
	svc, _, _ := newTestDealService()

	deal, err := svc.CreateDeal(context.Background(), primitive.NewObjectID(), "Lab equipment rollout", "desc", 50000)
	require.NoError(t, err)
	assert.Equal(t, models.DealDraft, deal.DealStatus)

	_, err = svc.CreateDeal(context.Background(), primitive.NewObjectID(), "", "", 50000)
	assert.Error(t, err)
}

func TestPlaceBid_RequiresPublishedDeal(t *testing.T) {
	svc, _, _ := newTestDealService()
	ctx := context.Background()

	deal, err := svc.CreateDeal(ctx, primitive.NewObjectID(), "Draft deal", "", 1000)
	require.NoError(t, err)

	_, err = svc.PlaceBid(ctx, deal.ID, primitive.NewObjectID(), 500, "")
	assert.ErrorIs(t, err, ErrDealNotOpen)
}

func TestPlaceBid_OneActiveBidPerDistributor(t *testing.T) {
	svc, _, _ := newTestDealService()
	ctx := context.Background()
	deal := publishedDeal(t, svc, 10000)
	distributor := primitive.NewObjectID()

	_, err := svc.PlaceBid(ctx, deal.ID, distributor, 0, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	bid, err := svc.PlaceBid(ctx, deal.ID, distributor, 2500, "initial")
	require.NoError(t, err)
	assert.Equal(t, models.BidPending, bid.BidStatus)

	_, err = svc.PlaceBid(ctx, deal.ID, distributor, 3000, "")
	assert.ErrorIs(t, err, ErrBidExists)

	// Withdrawing frees the slot for a new bid.
	require.NoError(t, svc.WithdrawBid(ctx, bid.ID, distributor))
	_, err = svc.PlaceBid(ctx, deal.ID, distributor, 3000, "")
	assert.NoError(t, err)
}

func TestWithdrawBid_OwnershipAndState(t *testing.T) {
	svc, _, _ := newTestDealService()
	ctx := context.Background()
	deal := publishedDeal(t, svc, 10000)
	distributor := primitive.NewObjectID()

	bid, err := svc.PlaceBid(ctx, deal.ID, distributor, 2500, "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.WithdrawBid(ctx, bid.ID, primitive.NewObjectID()), ErrNotBidOwner)

	require.NoError(t, svc.ReviewBid(ctx, bid.ID, false))
	assert.ErrorIs(t, svc.WithdrawBid(ctx, bid.ID, distributor), ErrBidNotPending)
}

func TestReviewBid_AcceptAddsToRaisedAmount(t *testing.T) {
	svc, deals, _ := newTestDealService()
	ctx := context.Background()
	deal := publishedDeal(t, svc, 10000)

	bid, err := svc.PlaceBid(ctx, deal.ID, primitive.NewObjectID(), 2500, "")
	require.NoError(t, err)

	require.NoError(t, svc.ReviewBid(ctx, bid.ID, true))
	assert.Equal(t, 2500.0, deals.deals[deal.ID].RaisedAmount)

	// A resolved bid cannot be reviewed again.
	assert.ErrorIs(t, svc.ReviewBid(ctx, bid.ID, false), ErrBidNotPending)
}

func TestSetDealStatus_RejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newTestDealService()
	deal, err := svc.CreateDeal(context.Background(), primitive.NewObjectID(), "Deal", "", 1000)
	require.NoError(t, err)

	assert.Error(t, svc.SetDealStatus(context.Background(), deal.ID, "archived"))
	assert.NoError(t, svc.SetDealStatus(context.Background(), deal.ID, models.DealClosed))
}
