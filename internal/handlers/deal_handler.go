package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/codonyx/codonyx-api/internal/models"
	"github.com/codonyx/codonyx-api/internal/services"
	"github.com/codonyx/codonyx-api/pkg/logger"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DealHandler exposes the deal marketplace: admin deal management plus the
// distributor-facing bid flow.
type DealHandler struct {
	Service  *services.DealService
	Profiles *services.ProfileService
}

func NewDealHandler(service *services.DealService, profiles *services.ProfileService) *DealHandler {
	return &DealHandler{Service: service, Profiles: profiles}
}

// CreateDealHandler creates a draft deal (admin).
func (h *DealHandler) CreateDealHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Profiles)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Title        string  `json:"title"`
		Description  string  `json:"description"`
		TargetAmount float64 `json:"target_amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		logger.Log.Warnf("Failed to decode deal payload: %v", err)
		return
	}
	defer r.Body.Close()

	deal, err := h.Service.CreateDeal(r.Context(), caller.ID, body.Title, body.Description, body.TargetAmount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		logger.Log.Warnf("Failed to create deal: %v", err)
		return
	}

	logger.Log.Infof("Deal %s created by %s", deal.ID.Hex(), caller.ID.Hex())
	writeJSON(w, http.StatusCreated, deal)
}

// SetDealStatusHandler moves a deal between draft, published and closed (admin).
func (h *DealHandler) SetDealStatusHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dealID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid deal ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.SetDealStatus(r.Context(), dealID, body.Status); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		logger.Log.Warnf("Failed to set deal %s status: %v", dealID.Hex(), err)
		return
	}

	logger.Log.Infof("Deal %s moved to status %s", dealID.Hex(), body.Status)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deal status updated"})
}

// ListDealsHandler returns the published deals participants can act on.
func (h *DealHandler) ListDealsHandler(w http.ResponseWriter, r *http.Request) {
	deals, err := h.Service.ListPublishedDeals(r.Context())
	if err != nil {
		http.Error(w, "Failed to list deals", http.StatusInternalServerError)
		logger.Log.Errorf("Failed to list published deals: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, deals)
}

// ListAllDealsHandler returns every deal (admin).
func (h *DealHandler) ListAllDealsHandler(w http.ResponseWriter, r *http.Request) {
	deals, err := h.Service.ListAllDeals(r.Context())
	if err != nil {
		http.Error(w, "Failed to list deals", http.StatusInternalServerError)
		logger.Log.Errorf("Failed to list all deals: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, deals)
}

// PlaceBidHandler records a distributor's bid on a published deal.
func (h *DealHandler) PlaceBidHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Profiles)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if caller.UserType != models.UserTypeDistributor {
		http.Error(w, "Only distributors can bid on deals", http.StatusForbidden)
		logger.Log.Warnf("Profile %s (%s) attempted to bid", caller.ID.Hex(), caller.UserType)
		return
	}

	vars := mux.Vars(r)
	dealID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid deal ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Amount float64 `json:"amount"`
		Notes  string  `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	bid, err := h.Service.PlaceBid(r.Context(), dealID, caller.ID, body.Amount, body.Notes)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		logger.Log.Warnf("Failed to place bid on deal %s: %v", dealID.Hex(), err)
		return
	}

	logger.Log.Infof("Distributor %s placed bid %s on deal %s", caller.ID.Hex(), bid.ID.Hex(), dealID.Hex())
	writeJSON(w, http.StatusCreated, bid)
}

// WithdrawBidHandler pulls the caller's pending bid.
func (h *DealHandler) WithdrawBidHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Profiles)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	bidID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid bid ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.WithdrawBid(r.Context(), bidID, caller.ID); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		logger.Log.Warnf("Failed to withdraw bid %s: %v", bidID.Hex(), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Bid withdrawn"})
}

// MyBidsHandler returns the caller's own bids.
func (h *DealHandler) MyBidsHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Profiles)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	bids, err := h.Service.ListBidsByDistributor(r.Context(), caller.ID)
	if err != nil {
		http.Error(w, "Failed to list bids", http.StatusInternalServerError)
		logger.Log.Errorf("Failed to list bids for profile %s: %v", caller.ID.Hex(), err)
		return
	}

	writeJSON(w, http.StatusOK, bids)
}

// ListAllBidsHandler returns every bid for admin review.
func (h *DealHandler) ListAllBidsHandler(w http.ResponseWriter, r *http.Request) {
	bids, err := h.Service.ListAllBids(r.Context())
	if err != nil {
		http.Error(w, "Failed to list bids", http.StatusInternalServerError)
		logger.Log.Errorf("Failed to list all bids: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, bids)
}

// ReviewBidHandler records the admin accept/reject decision on a bid.
func (h *DealHandler) ReviewBidHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bidID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid bid ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Accept bool `json:"accept"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.ReviewBid(r.Context(), bidID, body.Accept); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		logger.Log.Warnf("Failed to review bid %s: %v", bidID.Hex(), err)
		return
	}

	logger.Log.Infof("Bid %s reviewed (accepted: %v)", bidID.Hex(), body.Accept)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Bid reviewed"})
}
