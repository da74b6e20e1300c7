package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/codonyx/codonyx-api/internal/models"
	"github.com/codonyx/codonyx-api/internal/repository"
	"github.com/codonyx/codonyx-api/pkg/email"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthService encapsulates account registration and authentication.
type AuthService struct {
	repo     *repository.UserRepository
	profiles *repository.ProfileRepository
	invites  *InviteService
	notifier *email.Notifier
}

func NewAuthService(repo *repository.UserRepository, profiles *repository.ProfileRepository, invites *InviteService, notifier *email.Notifier) *AuthService {
	return &AuthService{
		repo:     repo,
		profiles: profiles,
		invites:  invites,
		notifier: notifier,
	}
}

// RegisterInput carries everything needed to create an account plus its
// pending profile. Distributors must present a valid invite token.
type RegisterInput struct {
	Email       string         `json:"email"`
	Password    string         `json:"password"`
	InviteToken string         `json:"invite_token,omitempty"`
	Profile     models.Profile `json:"profile"`
}

// Register creates the auth account and its pending profile, and sends the
// email verification link. The profile stays invisible until an admin
// approves it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	logrus.Info("Registering new participant")

	if in.Email == "" || in.Password == "" || in.Profile.FullName == "" {
		return nil, fmt.Errorf("missing required registration fields")
	}
	if !emailRegex.MatchString(in.Email) {
		return nil, fmt.Errorf("invalid email format")
	}

	switch in.Profile.UserType {
	case models.UserTypeAdvisor, models.UserTypeLaboratory:
	case models.UserTypeDistributor:
		if in.InviteToken == "" {
			return nil, fmt.Errorf("distributor registration requires an invite token")
		}
	default:
		return nil, fmt.Errorf("unknown participant type %q", in.Profile.UserType)
	}

	existingUser, _ := s.repo.GetUserByEmail(ctx, in.Email)
	if existingUser != nil {
		logrus.WithField("email", in.Email).Warn("Email already in use")
		return nil, fmt.Errorf("email already in use")
	}

	var invite *models.InviteToken
	if in.Profile.UserType == models.UserTypeDistributor {
		var err error
		invite, err = s.invites.Validate(ctx, in.InviteToken)
		if err != nil {
			return nil, err
		}
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:          in.Email,
		HashedPassword: string(hashedPwd),
		Role:           "user",
		IsVerified:     false,
		VerifyToken:    uuid.NewString(),
	}

	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %v", err)
	}

	profile := in.Profile
	profile.ID = primitive.NilObjectID
	profile.UserID = createdUser.ID
	profile.Email = in.Email
	profile.ApprovalStatus = models.ApprovalPending
	if invite != nil {
		profile.InviteTokenID = &invite.ID
	}

	if _, err := s.profiles.CreateProfile(ctx, &profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %v", err)
	}

	if invite != nil {
		if err := s.invites.Consume(ctx, invite.ID, createdUser.ID); err != nil {
			logrus.WithError(err).Warn("Failed to mark invite token used")
		}
	}

	if err := s.notifier.VerificationLink(createdUser.Email, createdUser.VerifyToken); err != nil {
		logrus.WithError(err).Error("Failed to send verification email")
		return nil, fmt.Errorf("failed to send verification email")
	}

	logrus.WithFields(logrus.Fields{
		"userID":   createdUser.ID.Hex(),
		"userType": in.Profile.UserType,
	}).Info("Participant registered successfully")

	return createdUser, nil
}

// VerifyEmail marks the account as verified using the emailed token.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.repo.GetUserByVerificationToken(ctx, token)
	if err != nil {
		return fmt.Errorf("invalid or expired verification token")
	}

	update := map[string]interface{}{
		"is_verified":  true,
		"verify_token": "",
		"updated_at":   time.Now(),
	}

	if _, err := s.repo.UpdateUser(ctx, user.ID, update); err != nil {
		return fmt.Errorf("failed to update user verification status: %v", err)
	}
	return nil
}

// Authenticate verifies credentials and returns the account with its profile.
func (s *AuthService) Authenticate(ctx context.Context, userEmail, password string) (*models.User, *models.Profile, error) {
	user, err := s.repo.GetUserByEmail(ctx, userEmail)
	if err != nil {
		logrus.WithField("email", userEmail).Warn("User not found")
		return nil, nil, fmt.Errorf("user not found")
	}

	if !user.IsVerified {
		return nil, nil, fmt.Errorf("email not verified. Please check your inbox")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", userEmail).Warn("Invalid credentials")
		return nil, nil, fmt.Errorf("invalid credentials")
	}

	profile, err := s.profiles.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profile: %v", err)
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return user, profile, nil
}

// RequestPasswordReset emails a reset link valid for one hour.
func (s *AuthService) RequestPasswordReset(ctx context.Context, userEmail string) error {
	user, err := s.repo.GetUserByEmail(ctx, userEmail)
	if err != nil {
		return fmt.Errorf("no account found with this email")
	}

	resetToken := uuid.NewString()
	update := map[string]interface{}{
		"reset_token":     resetToken,
		"reset_token_exp": time.Now().Add(1 * time.Hour),
		"updated_at":      time.Now(),
	}

	if _, err := s.repo.UpdateUser(ctx, user.ID, update); err != nil {
		return fmt.Errorf("failed to save reset token")
	}

	if err := s.notifier.PasswordReset(user.Email, resetToken); err != nil {
		return fmt.Errorf("failed to send password reset email: %v", err)
	}

	logrus.Infof("Password reset email sent to %s", userEmail)
	return nil
}

// ResetPassword sets a new password using a valid reset token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.repo.GetUserByResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("invalid or expired reset token")
	}

	if time.Now().After(user.ResetTokenExp) {
		return fmt.Errorf("reset token has expired")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	update := map[string]interface{}{
		"hashed_password": string(hashedPwd),
		"reset_token":     "",
		"reset_token_exp": time.Time{},
		"updated_at":      time.Now(),
	}

	if _, err := s.repo.UpdateUser(ctx, user.ID, update); err != nil {
		return fmt.Errorf("failed to update password: %v", err)
	}
	return nil
}

// UpdateLastActive stamps the account's last activity time.
func (s *AuthService) UpdateLastActive(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.repo.UpdateUser(ctx, userID, map[string]interface{}{
		"last_active_at": time.Now(),
	})
	return err
}

// GetUser retrieves an account by its hex ID.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %v", err)
	}

	user, err := s.repo.GetUserByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return user, nil
}

// GetAllUsers returns every account (admin back-office).
func (s *AuthService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.GetAllUsers(ctx)
}
