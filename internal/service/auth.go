package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"online-bookstore/internal/events"
	"online-bookstore/internal/hash"
	"online-bookstore/internal/logging"
	"online-bookstore/internal/models"
	"online-bookstore/internal/repo"
	"online-bookstore/internal/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	Producer  *events.Producer
	JWTSecret []byte
	TokenTTL  time.Duration
}

type AuthResult struct {
	User  *models.User
	Token string
}

// Signup creates the user and logs them in: a token is issued immediately.
func (s *AuthService) Signup(ctx context.Context, email, password, name, mobile string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", ErrValidation)
	}

	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		l.Warn("signup_failed", "reason", "duplicate_email")
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("signup_failed", "reason", "db_error", "error", err)
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("signup_failed", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: pwHash,
		Name:         name,
		Mobile:       mobile,
		Role:         "user",
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			l.Warn("signup_failed", "reason", "duplicate_email")
			return nil, ErrDuplicateEmail
		}
		l.Error("signup_failed", "reason", "db_error", "error", err)
		return nil, err
	}

	token, err := tokens.Issue(user.ID, user.Role, s.TokenTTL, s.JWTSecret)
	if err != nil {
		l.Error("signup_failed", "reason", "cannot create token", "error", err)
		return nil, err
	}

	s.publish(ctx, events.TopicUserEvents, user.ID.String(), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("signup_success", "userID", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Login returns the same ErrInvalidCredentials for an unknown email and for a
// wrong password, so the response never reveals which one it was.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "invalid email or password")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "reason", "db_error", "error", err)
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "invalid email or password")
		return nil, ErrInvalidCredentials
	}

	token, err := tokens.Issue(user.ID, user.Role, s.TokenTTL, s.JWTSecret)
	if err != nil {
		l.Error("login_failed", "reason", "cannot create token", "error", err)
		return nil, err
	}

	s.publish(ctx, events.TopicUserEvents, user.ID.String(), map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
	})

	l.Info("login_success", "userID", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword re-verifies the current password before overwriting.
// Outstanding tokens are not invalidated; they stay valid until expiry.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	l := logging.FromContext(ctx).With("svc", "auth.change_password")

	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("currentPassword and newPassword are required: %w", ErrValidation)
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("change_password_failed", "reason", "invalid current password")
			return ErrInvalidCredentials
		}
		return err
	}

	if !hash.CheckPassword(user.PasswordHash, currentPassword) {
		l.Warn("change_password_failed", "reason", "invalid current password")
		return ErrInvalidCredentials
	}

	pwHash, err := hash.HashPassword(newPassword)
	if err != nil {
		l.Error("change_password_failed", "reason", "cannot hash the password", "error", err)
		return err
	}

	if err := s.Repo.UpdateUserPassword(ctx, userID, pwHash); err != nil {
		l.Error("change_password_failed", "reason", "db_error", "error", err)
		return err
	}

	l.Info("change_password_success", "userID", userID)
	return nil
}

func (s *AuthService) publish(ctx context.Context, topic, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, topic, key, event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", topic, "error", err)
	}
}
