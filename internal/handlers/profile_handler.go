package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/codonyx/codonyx-api/internal/models"
	"github.com/codonyx/codonyx-api/internal/services"
	"github.com/codonyx/codonyx-api/pkg/logger"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileHandler manages participant profiles, the public directory and the
// admin approval queue.
type ProfileHandler struct {
	Service    *services.ProfileService
	Activities *services.ActivityService
}

func NewProfileHandler(service *services.ProfileService, activities *services.ActivityService) *ProfileHandler {
	return &ProfileHandler{Service: service, Activities: activities}
}

// GetMyProfileHandler returns the caller's own full profile.
func (h *ProfileHandler) GetMyProfileHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := callerProfile(r.Context(), h.Service)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		logger.Log.Warnf("Unauthorized profile fetch: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// UpdateMyProfileHandler applies the caller's edits. Protected fields in the
// payload are silently dropped.
func (h *ProfileHandler) UpdateMyProfileHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Service)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		logger.Log.Warnf("Failed to decode profile update: %v", err)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateOwnProfile(r.Context(), caller.UserID, updates)
	if err != nil {
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		logger.Log.Errorf("Failed to update profile %s: %v", caller.ID.Hex(), err)
		return
	}

	logger.Log.Infof("Profile %s updated", caller.ID.Hex())
	writeJSON(w, http.StatusOK, updated)
}

// GetProfileHandler returns another participant's public summary. Full
// profiles are only visible to their owner and admins.
func (h *ProfileHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	profileID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid profile ID", http.StatusBadRequest)
		return
	}

	profile, err := h.Service.GetProfile(r.Context(), profileID)
	if err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		logger.Log.Warnf("Profile %s not found: %v", profileID.Hex(), err)
		return
	}

	if profile.ApprovalStatus != models.ApprovalApproved {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, profile.Public())
}

// DirectoryHandler lists approved profiles of the type in the query string.
func (h *ProfileHandler) DirectoryHandler(w http.ResponseWriter, r *http.Request) {
	userType := r.URL.Query().Get("type")

	profiles, err := h.Service.Directory(r.Context(), userType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		logger.Log.Warnf("Failed to list directory: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

// GetMyActivityHandler returns the caller's recent platform activity.
func (h *ProfileHandler) GetMyActivityHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Service)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	activities, err := h.Activities.GetRecentActivities(r.Context(), caller.ID, limit)
	if err != nil {
		http.Error(w, "Failed to fetch activity", http.StatusInternalServerError)
		logger.Log.Errorf("Failed to fetch activity for profile %s: %v", caller.ID.Hex(), err)
		return
	}

	writeJSON(w, http.StatusOK, activities)
}

// ListRegistrationsHandler lists profiles by approval status for the admin
// back-office. Defaults to the pending queue.
func (h *ProfileHandler) ListRegistrationsHandler(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = models.ApprovalPending
	}

	profiles, err := h.Service.ListByApprovalStatus(r.Context(), status)
	if err != nil {
		http.Error(w, "Failed to list registrations", http.StatusInternalServerError)
		logger.Log.Errorf("Failed to list registrations: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

// ReviewRegistrationHandler records an admin approval decision.
func (h *ProfileHandler) ReviewRegistrationHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	profileID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid profile ID", http.StatusBadRequest)
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

	if err := h.Service.ReviewRegistration(r.Context(), profileID, body.Approve); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		logger.Log.Warnf("Failed to review registration %s: %v", profileID.Hex(), err)
		return
	}

	logger.Log.Infof("Registration %s reviewed (approved: %v)", profileID.Hex(), body.Approve)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Registration reviewed"})
}
