package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/codonyx/codonyx-api/internal/services"
	"github.com/codonyx/codonyx-api/pkg/logger"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OpportunityHandler exposes deal proposals from advisors and laboratories.
type OpportunityHandler struct {
	Service  *services.OpportunityService
	Profiles *services.ProfileService
}

func NewOpportunityHandler(service *services.OpportunityService, profiles *services.ProfileService) *OpportunityHandler {
	return &OpportunityHandler{Service: service, Profiles: profiles}
}

// SubmitHandler files a new opportunity on behalf of the caller.
func (h *OpportunityHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Profiles)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Title          string  `json:"title"`
		Description    string  `json:"description"`
		EstimatedValue float64 `json:"estimated_value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		logger.Log.Warnf("Failed to decode opportunity payload: %v", err)
		return
	}
	defer r.Body.Close()

	sub, err := h.Service.Submit(r.Context(), caller.ID, body.Title, body.Description, body.EstimatedValue)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		logger.Log.Warnf("Failed to submit opportunity: %v", err)
		return
	}

	logger.Log.Infof("Profile %s submitted opportunity %s", caller.ID.Hex(), sub.ID.Hex())
	writeJSON(w, http.StatusCreated, sub)
}

// MySubmissionsHandler returns the caller's own submissions.
func (h *OpportunityHandler) MySubmissionsHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Profiles)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	subs, err := h.Service.ListMine(r.Context(), caller.ID)
	if err != nil {
		http.Error(w, "Failed to list submissions", http.StatusInternalServerError)
		logger.Log.Errorf("Failed to list submissions for profile %s: %v", caller.ID.Hex(), err)
		return
	}

	writeJSON(w, http.StatusOK, subs)
}

// ListSubmissionsHandler returns every submission for admin review.
func (h *OpportunityHandler) ListSubmissionsHandler(w http.ResponseWriter, r *http.Request) {
	subs, err := h.Service.ListAll(r.Context())
	if err != nil {
		http.Error(w, "Failed to list submissions", http.StatusInternalServerError)
		logger.Log.Errorf("Failed to list all submissions: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, subs)
}

// ReviewSubmissionHandler records the admin decision; approval materializes a
// draft deal.
func (h *OpportunityHandler) ReviewSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Profiles)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	submissionID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid submission ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Approve bool `json:"approve"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.Review(r.Context(), submissionID, caller.ID, body.Approve); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		logger.Log.Warnf("Failed to review submission %s: %v", submissionID.Hex(), err)
		return
	}

	logger.Log.Infof("Submission %s reviewed (approved: %v)", submissionID.Hex(), body.Approve)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Submission reviewed"})
}
