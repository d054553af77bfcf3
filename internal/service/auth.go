package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/villagecraft/storefront/internal/events"
	"github.com/villagecraft/storefront/internal/hash"
	"github.com/villagecraft/storefront/internal/logging"
	"github.com/villagecraft/storefront/internal/models"
	"github.com/villagecraft/storefront/internal/repo"
)

const (
	minPasswordLen = 6
	tokenLifetime  = 7 * 24 * time.Hour
)

type AuthService struct {
	Users      repo.UserRepository
	Sessions   repo.SessionRepository
	JWTSecret  []byte
	SessionTTL time.Duration
	Events     *events.Producer
}

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Register creates the user and returns it with a signed API token.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return nil, "", fmt.Errorf("all fields are required: %w", ErrValidation)
	}
	if !models.ValidRole(req.Role) {
		return nil, "", fmt.Errorf("unknown role %q: %w", req.Role, ErrValidation)
	}
	if len(req.Password) < minPasswordLen {
		return nil, "", fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, ErrValidation)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, "", err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         req.Role,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, "", ErrUserExists
		}
		l.Error("register_error", "error", err)
		return nil, "", err
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, user.ID, map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	})
	l.Info("user_registered", "user_id", user.ID)
	return user, token, nil
}

// Login checks credentials and opens a session with a fixed absolute
// lifetime.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Session, string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return nil, "", fmt.Errorf("email and password are required: %w", ErrValidation)
	}

	user, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		l.Error("login_error", "error", err)
		return nil, "", err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	session := &models.Session{
		Token: uuid.NewString(),
		User: models.SessionUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
		LoggedIn:  true,
		CreatedAt: now,
		ExpiresAt: now.Add(s.SessionTTL),
	}
	if err := s.Sessions.Create(ctx, session); err != nil {
		l.Error("login_error", "error", err)
		return nil, "", err
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, user.ID, map[string]any{
		"type":    "user_logged_in",
		"user_id": user.ID,
		"email":   user.Email,
	})
	l.Info("user_logged_in", "user_id", user.ID)
	return session, token, nil
}

// Logout destroys the session explicitly.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.Sessions.Delete(ctx, token)
}

// CheckSession resolves a session token to its identity snapshot,
// refusing expired sessions.
func (s *AuthService) CheckSession(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	session, err := s.Sessions.Get(ctx, token)
	if errors.Is(err, repo.ErrSessionNotFound) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}

	if !session.LoggedIn || session.Expired(time.Now()) {
		return nil, ErrNotAuthenticated
	}
	return session, nil
}

func (s *AuthService) signToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"exp":    time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Events == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Events.PublishEvent(pubCtx, events.TopicUserEvents, key, event); err != nil {
		logging.FromContext(ctx).Warn("user event publish failed", "error", err)
	}
}
