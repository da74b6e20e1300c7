package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/codonyx/codonyx-api/internal/models"
	"github.com/codonyx/codonyx-api/internal/services"
	"github.com/codonyx/codonyx-api/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// callerProfile resolves the authenticated caller's profile. Every networking
// and marketplace route is keyed by profile, while the JWT carries the auth
// account ID, so handlers go through this lookup first.
func callerProfile(ctx context.Context, profiles *services.ProfileService) (*models.Profile, error) {
	claims := middleware.GetUserFromContext(ctx)
	if claims == nil {
		return nil, errors.New("unauthorized")
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, errors.New("invalid token subject")
	}

	return profiles.GetProfileByUserID(ctx, userID)
}

// statusForError maps domain rule violations to HTTP status codes. Anything
// unrecognized is treated as an internal failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrSelfRequest),
		errors.Is(err, services.ErrNotPending),
		errors.Is(err, services.ErrNotAccepted),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrBidNotPending),
		errors.Is(err, services.ErrDealNotOpen):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotReceiver),
		errors.Is(err, services.ErrNotSender),
		errors.Is(err, services.ErrNotParticipant),
		errors.Is(err, services.ErrNotBidOwner),
		errors.Is(err, services.ErrNotPublicationOwner),
		errors.Is(err, services.ErrNotApproved):
		return http.StatusForbidden
	case errors.Is(err, services.ErrAlreadyExists),
		errors.Is(err, services.ErrCooldownActive),
		errors.Is(err, services.ErrBidExists):
		return http.StatusConflict
	case errors.Is(err, services.ErrInviteNotFound),
		errors.Is(err, services.ErrInviteInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
