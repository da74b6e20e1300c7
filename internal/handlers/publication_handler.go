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

// PublicationHandler manages profile-owned publications.
type PublicationHandler struct {
	Service  *services.PublicationService
	Profiles *services.ProfileService
}

func NewPublicationHandler(service *services.PublicationService, profiles *services.ProfileService) *PublicationHandler {
	return &PublicationHandler{Service: service, Profiles: profiles}
}

// CreatePublicationHandler attaches a publication to the caller's profile.
func (h *PublicationHandler) CreatePublicationHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Profiles)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var pub models.Publication
	if err := json.NewDecoder(r.Body).Decode(&pub); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		logger.Log.Warnf("Failed to decode publication payload: %v", err)
		return
	}
	defer r.Body.Close()

	created, err := h.Service.Create(r.Context(), caller.ID, &pub)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		logger.Log.Warnf("Failed to create publication: %v", err)
		return
	}

	logger.Log.Infof("Publication %s created for profile %s", created.ID.Hex(), caller.ID.Hex())
	writeJSON(w, http.StatusCreated, created)
}

// ListPublicationsHandler lists the publications of the profile in the path.
func (h *PublicationHandler) ListPublicationsHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	profileID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid profile ID", http.StatusBadRequest)
		return
	}

	pubs, err := h.Service.ListByProfile(r.Context(), profileID)
	if err != nil {
		http.Error(w, "Failed to list publications", http.StatusInternalServerError)
		logger.Log.Errorf("Failed to list publications for profile %s: %v", profileID.Hex(), err)
		return
	}

	writeJSON(w, http.StatusOK, pubs)
}

// UpdatePublicationHandler edits one of the caller's publications.
func (h *PublicationHandler) UpdatePublicationHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Profiles)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	pubID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid publication ID", http.StatusBadRequest)
		return
	}

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.Update(r.Context(), pubID, caller.ID, updates)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		logger.Log.Warnf("Failed to update publication %s: %v", pubID.Hex(), err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeletePublicationHandler removes one of the caller's publications.
func (h *PublicationHandler) DeletePublicationHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Profiles)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	pubID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid publication ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.Delete(r.Context(), pubID, caller.ID); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		logger.Log.Warnf("Failed to delete publication %s: %v", pubID.Hex(), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Publication deleted"})
}
