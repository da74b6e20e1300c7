package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/codonyx/codonyx-api/internal/services"
	"github.com/codonyx/codonyx-api/pkg/logger"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConnectionHandler manages HTTP endpoints for connection requests.
type ConnectionHandler struct {
	Service  *services.ConnectionService
	Profiles *services.ProfileService
}

// NewConnectionHandler initializes a new ConnectionHandler.
func NewConnectionHandler(service *services.ConnectionService, profiles *services.ProfileService) *ConnectionHandler {
	return &ConnectionHandler{Service: service, Profiles: profiles}
}

// SendRequestHandler sends a connection request to the profile in the path.
func (h *ConnectionHandler) SendRequestHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Profiles)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		logger.Log.Warnf("Unauthorized attempt to send connection request: %v", err)
		return
	}

	vars := mux.Vars(r)
	receiverID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid profile ID", http.StatusBadRequest)
		logger.Log.Warnf("Invalid receiver profile ID: %v", err)
		return
	}

	request, err := h.Service.SendRequest(r.Context(), caller.ID, receiverID)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		logger.Log.Warnf("Failed to send connection request: %v", err)
		return
	}

	logger.Log.Infof("Profile %s sent a connection request to %s", caller.ID.Hex(), receiverID.Hex())
	writeJSON(w, http.StatusCreated, request)
}

// ListConnectionsHandler returns the caller's connections partitioned into
// accepted, pending_sent and pending_received.
func (h *ConnectionHandler) ListConnectionsHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Profiles)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		logger.Log.Warnf("Unauthorized attempt to list connections: %v", err)
		return
	}

	list, err := h.Service.ListConnections(r.Context(), caller.ID)
	if err != nil {
		http.Error(w, "Failed to list connections", http.StatusInternalServerError)
		logger.Log.Errorf("Failed to list connections for profile %s: %v", caller.ID.Hex(), err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// ConnectionStatusHandler resolves the relation between the caller and the
// profile in the path, including any active cooldown.
func (h *ConnectionHandler) ConnectionStatusHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Profiles)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	targetID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid profile ID", http.StatusBadRequest)
		return
	}

	state, err := h.Service.StatusFor(r.Context(), caller.ID, targetID)
	if err != nil {
		http.Error(w, "Failed to resolve connection status", http.StatusInternalServerError)
		logger.Log.Errorf("Failed to resolve status between %s and %s: %v", caller.ID.Hex(), targetID.Hex(), err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// RespondHandler lets the receiver accept or reject a pending request.
func (h *ConnectionHandler) RespondHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Profiles)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		logger.Log.Warnf("Unauthorized attempt to respond to connection request: %v", err)
		return
	}

	vars := mux.Vars(r)
	connectionID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid connection ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Accept bool `json:"accept"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		logger.Log.Warnf("Failed to decode respond body: %v", err)
		return
	}
	defer r.Body.Close()

	if err := h.Service.Respond(r.Context(), connectionID, caller.ID, body.Accept); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		logger.Log.Warnf("Failed to respond to connection request %s: %v", connectionID.Hex(), err)
		return
	}

	logger.Log.Infof("Profile %s responded to connection request %s (accepted: %v)", caller.ID.Hex(), connectionID.Hex(), body.Accept)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Response recorded"})
}

// WithdrawHandler lets the sender withdraw a pending request, starting the
// cooldown window for the pair.
func (h *ConnectionHandler) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Profiles)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	connectionID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid connection ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.WithdrawRequest(r.Context(), connectionID, caller.ID); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		logger.Log.Warnf("Failed to withdraw connection request %s: %v", connectionID.Hex(), err)
		return
	}

	logger.Log.Infof("Profile %s withdrew connection request %s", caller.ID.Hex(), connectionID.Hex())
	writeJSON(w, http.StatusOK, map[string]string{"message": "Request withdrawn"})
}

// RemoveConnectionHandler deletes an accepted connection.
func (h *ConnectionHandler) RemoveConnectionHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerProfile(r.Context(), h.Profiles)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	connectionID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid connection ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.RemoveConnection(r.Context(), connectionID, caller.ID); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		logger.Log.Warnf("Failed to remove connection %s: %v", connectionID.Hex(), err)
		return
	}

	logger.Log.Infof("Profile %s removed connection %s", caller.ID.Hex(), connectionID.Hex())
	writeJSON(w, http.StatusOK, map[string]string{"message": "Connection removed"})
}
