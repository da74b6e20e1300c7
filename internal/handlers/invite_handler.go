package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/codonyx/codonyx-api/internal/services"
	"github.com/codonyx/codonyx-api/pkg/logger"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InviteHandler manages the admin-only invite tokens that gate distributor
// registration.
type InviteHandler struct {
	Service  *services.InviteService
	Profiles *services.ProfileService
}

func NewInviteHandler(service *services.InviteService, profiles *services.ProfileService) *InviteHandler {
	return &InviteHandler{Service: service, Profiles: profiles}
}

// MintInviteHandler creates a new invite token.
func (h *InviteHandler) MintInviteHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Profiles)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		TTLHours int `json:"ttl_hours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	token, err := h.Service.Mint(r.Context(), caller.ID, time.Duration(body.TTLHours)*time.Hour)
	if err != nil {
		http.Error(w, "Failed to mint invite token", http.StatusInternalServerError)
		logger.Log.Errorf("Failed to mint invite token: %v", err)
		return
	}

	logger.Log.Infof("Invite token %s minted by %s", token.ID.Hex(), caller.ID.Hex())
	writeJSON(w, http.StatusCreated, token)
}

// ListInvitesHandler returns every invite token.
func (h *InviteHandler) ListInvitesHandler(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.Service.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to list invite tokens", http.StatusInternalServerError)
		logger.Log.Errorf("Failed to list invite tokens: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, tokens)
}

// ToggleInviteHandler switches a token on or off.
func (h *InviteHandler) ToggleInviteHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	inviteID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid invite ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.Toggle(r.Context(), inviteID, body.Active); err != nil {
		http.Error(w, "Failed to update invite token", http.StatusInternalServerError)
		logger.Log.Errorf("Failed to toggle invite token %s: %v", inviteID.Hex(), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Invite token updated"})
}
