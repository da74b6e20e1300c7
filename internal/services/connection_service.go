package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codonyx/codonyx-api/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Domain rule violations surfaced to handlers as 4xx responses.
var (
	ErrSelfRequest    = errors.New("cannot send a connection request to yourself")
	ErrAlreadyExists  = errors.New("a connection or pending request already exists between these profiles")
	ErrCooldownActive = errors.New("a withdrawn request is still in its cooldown window")
	ErrNotReceiver    = errors.New("only the receiver can respond to a connection request")
	ErrNotSender      = errors.New("only the sender can withdraw a connection request")
	ErrNotParticipant = errors.New("connection does not involve this profile")
	ErrNotPending     = errors.New("request already responded to")
	ErrNotAccepted    = errors.New("only an accepted connection can be removed")
	ErrNotApproved    = errors.New("profile is not approved for networking")
)

// ConnectionStore is the persistence surface the connection service needs.
type ConnectionStore interface {
	Insert(ctx context.Context, conn *models.Connection) (*models.Connection, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Connection, error)
	FindBetween(ctx context.Context, a, b primitive.ObjectID) (*models.Connection, error)
	ListForProfile(ctx context.Context, profileID primitive.ObjectID) ([]models.Connection, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	Withdraw(ctx context.Context, id primitive.ObjectID, at time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProfileGetter provides the profile lookups needed for guards and joins.
type ProfileGetter interface {
	GetProfileByID(ctx context.Context, id primitive.ObjectID) (*models.Profile, error)
	GetProfilesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Profile, error)
}

// ConnectionNotifier emails the counterpart when a request is accepted.
type ConnectionNotifier interface {
	ConnectionAccepted(recipientEmail, recipientName, accepterName, accepterHeadline, accepterOrganisation string) error
}

// NotificationSink records in-app notifications.
type NotificationSink interface {
	CreateNotification(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, targetID *primitive.ObjectID) error
}

// ActivityLogger records platform activity events, keyed by profile.
type ActivityLogger interface {
	LogActivity(ctx context.Context, profileID primitive.ObjectID, actionType string, targetID primitive.ObjectID, message string) error
}

// ConnectionService handles the business logic of the connection request
// state machine. Notifier, notifications and activities are optional
// collaborators; a nil value simply skips that side effect.
type ConnectionService struct {
	store         ConnectionStore
	profiles      ProfileGetter
	notifier      ConnectionNotifier
	notifications NotificationSink
	activities    ActivityLogger
	now           func() time.Time
}

func NewConnectionService(store ConnectionStore, profiles ProfileGetter, notifier ConnectionNotifier, notifications NotificationSink, activities ActivityLogger) *ConnectionService {
	return &ConnectionService{
		store:         store,
		profiles:      profiles,
		notifier:      notifier,
		notifications: notifications,
		activities:    activities,
		now:           time.Now,
	}
}

// SendRequest creates a pending request from sender to receiver.
//
// The at-most-one-row-per-pair invariant is enforced with a pre-check rather
// than a store constraint, so two near-simultaneous requests from both
// parties can still race past it. Stale rejected rows and withdrawn rows
// whose cooldown has elapsed are cleared before the fresh insert.
func (s *ConnectionService) SendRequest(ctx context.Context, senderID, receiverID primitive.ObjectID) (*models.Connection, error) {
	if senderID == receiverID {
		return nil, ErrSelfRequest
	}

	receiver, err := s.profiles.GetProfileByID(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("could not find receiver profile: %v", err)
	}
	if receiver.ApprovalStatus != models.ApprovalApproved {
		return nil, ErrNotApproved
	}

	existing, err := s.store.FindBetween(ctx, senderID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing connection: %v", err)
	}

	if existing != nil {
		switch {
		case existing.Withdrawn():
			until := existing.WithdrawnAt.Add(WithdrawCooldown)
			if s.now().Before(until) {
				return nil, ErrCooldownActive
			}
			// Cooldown elapsed; clear the stale row and start over.
			if err := s.store.Delete(ctx, existing.ID); err != nil {
				return nil, fmt.Errorf("failed to clear withdrawn request: %v", err)
			}
		case existing.Status == models.ConnectionRejected:
			// A rejection does not block a fresh request.
			if err := s.store.Delete(ctx, existing.ID); err != nil {
				return nil, fmt.Errorf("failed to clear rejected request: %v", err)
			}
		default:
			return nil, ErrAlreadyExists
		}
	}

	conn := &models.Connection{
		SenderID:   senderID,
		ReceiverID: receiverID,
	}

	created, err := s.store.Insert(ctx, conn)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"senderID":   senderID.Hex(),
		"receiverID": receiverID.Hex(),
	}).Info("Connection request sent")

	return created, nil
}

// Respond lets the receiver accept or reject a pending request. Accepting an
// already-accepted connection is a no-op success.
func (s *ConnectionService) Respond(ctx context.Context, connectionID, callerID primitive.ObjectID, accept bool) error {
	conn, err := s.store.GetByID(ctx, connectionID)
	if err != nil {
		return fmt.Errorf("could not find connection request: %v", err)
	}

	if conn.ReceiverID != callerID {
		return ErrNotReceiver
	}
	if conn.Withdrawn() {
		return ErrNotPending
	}
	if conn.Status == models.ConnectionAccepted && accept {
		return nil
	}
	if conn.Status != models.ConnectionPending {
		return ErrNotPending
	}

	status := models.ConnectionRejected
	if accept {
		status = models.ConnectionAccepted
	}

	if err := s.store.UpdateStatus(ctx, connectionID, status); err != nil {
		return err
	}

	if accept {
		s.announceAcceptance(ctx, conn)
	}

	logrus.WithFields(logrus.Fields{
		"connectionID": connectionID.Hex(),
		"accepted":     accept,
	}).Info("Connection request responded to")

	return nil
}

// announceAcceptance emails the original sender and drops an in-app
// notification. Failures are logged, never propagated; the acceptance itself
// has already been persisted.
func (s *ConnectionService) announceAcceptance(ctx context.Context, conn *models.Connection) {
	profiles, err := s.profiles.GetProfilesByIDs(ctx, []primitive.ObjectID{conn.SenderID, conn.ReceiverID})
	if err != nil {
		logrus.WithError(err).Warn("Failed to load profiles for acceptance notification")
		return
	}

	var sender, receiver *models.Profile
	for i := range profiles {
		switch profiles[i].ID {
		case conn.SenderID:
			sender = &profiles[i]
		case conn.ReceiverID:
			receiver = &profiles[i]
		}
	}
	if sender == nil || receiver == nil {
		logrus.Warn("Missing profile while announcing acceptance")
		return
	}

	if s.notifier != nil {
		if err := s.notifier.ConnectionAccepted(sender.Email, sender.FullName, receiver.FullName, receiver.Headline, receiver.Organisation); err != nil {
			logrus.WithError(err).Warn("Failed to send acceptance email")
		}
	}

	if s.notifications != nil {
		msg := fmt.Sprintf("%s accepted your connection request.", receiver.FullName)
		if err := s.notifications.CreateNotification(ctx, sender.UserID, "connection_accepted", "Connection Accepted", msg, &conn.ID); err != nil {
			logrus.WithError(err).Warn("Failed to create acceptance notification")
		}
	}

	if s.activities != nil {
		msg := fmt.Sprintf("Connected with %s", sender.FullName)
		if err := s.activities.LogActivity(ctx, receiver.ID, "connection_accepted", conn.ID, msg); err != nil {
			logrus.WithError(err).Warn("Failed to log acceptance activity")
		}
	}
}

// WithdrawRequest lets the sender withdraw a pending request. The row is kept
// with withdrawn_at set so the pair is blocked from re-requesting for the
// cooldown window.
func (s *ConnectionService) WithdrawRequest(ctx context.Context, connectionID, callerID primitive.ObjectID) error {
	conn, err := s.store.GetByID(ctx, connectionID)
	if err != nil {
		return fmt.Errorf("could not find connection request: %v", err)
	}

	if conn.SenderID != callerID {
		return ErrNotSender
	}
	if conn.Withdrawn() || conn.Status != models.ConnectionPending {
		return ErrNotPending
	}

	if err := s.store.Withdraw(ctx, connectionID, s.now()); err != nil {
		return err
	}

	logrus.WithField("connectionID", connectionID.Hex()).Info("Connection request withdrawn")
	return nil
}

// RemoveConnection deletes an accepted connection. Either party may do it.
func (s *ConnectionService) RemoveConnection(ctx context.Context, connectionID, callerID primitive.ObjectID) error {
	conn, err := s.store.GetByID(ctx, connectionID)
	if err != nil {
		return fmt.Errorf("could not find connection: %v", err)
	}

	if !conn.Involves(callerID) {
		return ErrNotParticipant
	}
	if conn.Status != models.ConnectionAccepted || conn.Withdrawn() {
		return ErrNotAccepted
	}

	if err := s.store.Delete(ctx, connectionID); err != nil {
		return err
	}

	logrus.WithField("connectionID", connectionID.Hex()).Info("Connection removed")
	return nil
}

// ListConnections returns every row involving the profile, joined with the
// counterpart's public summary and partitioned for rendering.
func (s *ConnectionService) ListConnections(ctx context.Context, profileID primitive.ObjectID) (*ConnectionList, error) {
	rows, err := s.store.ListForProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	counterpartIDs := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		counterpartIDs = append(counterpartIDs, row.Counterpart(profileID))
	}

	byID := map[primitive.ObjectID]models.PublicProfile{}
	if len(counterpartIDs) > 0 {
		profiles, err := s.profiles.GetProfilesByIDs(ctx, counterpartIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load counterpart profiles: %v", err)
		}
		for _, p := range profiles {
			byID[p.ID] = p.Public()
		}
	}

	views := make([]models.ConnectionView, 0, len(rows))
	for _, row := range rows {
		views = append(views, models.ConnectionView{
			Connection:  row,
			Counterpart: byID[row.Counterpart(profileID)],
		})
	}

	return partitionConnections(views, profileID), nil
}

// StatusFor resolves the relation between the caller and one target profile.
func (s *ConnectionService) StatusFor(ctx context.Context, profileID, targetID primitive.ObjectID) (ConnectionState, error) {
	rows, err := s.store.ListForProfile(ctx, profileID)
	if err != nil {
		return ConnectionState{}, err
	}
	return ResolveStatus(rows, profileID, targetID, s.now()), nil
}
