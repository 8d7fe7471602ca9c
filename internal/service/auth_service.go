package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"customerhub/internal/auth"
	"customerhub/internal/cache"
	"customerhub/internal/errors"
	"customerhub/internal/model"
	"customerhub/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// AuthService handles authentication operations.
type AuthService interface {
	Signup(ctx context.Context, email, password, name, idNumber string) (token string, user *model.PublicUser, err error)
	Signin(ctx context.Context, email, password string) (token string, user *model.PublicUser, err error)
	Me(ctx context.Context, userID string) (*model.PublicUser, error)
	Signout(ctx context.Context, identity *auth.Identity)
	ListUsers(ctx context.Context) ([]model.PublicUser, error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	cache      *cache.Client
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service. cache may be nil.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, cache *cache.Client, logger *zap.Logger) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		cache:      cache,
		logger:     logger,
	}
}

func (s *authService) cacheKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

// Signup creates the user and issues a token for it.
func (s *authService) Signup(ctx context.Context, email, password, name, idNumber string) (string, *model.PublicUser, error) {
	s.logger.Info("user signup attempt", zap.String("email", email), zap.String("name", name))

	user, err := s.users.Create(ctx, email, password, name, idNumber)
	if err != nil {
		return "", nil, err
	}

	token, err := s.jwtService.IssueToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	public := user.Public()
	return token, &public, nil
}

// Signin verifies credentials and issues a token.
func (s *authService) Signin(ctx context.Context, email, password string) (string, *model.PublicUser, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.logger.Info("signin failed: user not found", zap.String("email", email))
		return "", nil, errors.ErrInvalidCredentials
	}
	if !s.users.VerifyPassword(password, user.PasswordHash) {
		s.logger.Info("signin failed: invalid password", zap.String("email", email))
		return "", nil, errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.IssueToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user signed in", zap.String("email", user.Email), zap.String("user_id", user.ID))
	public := user.Public()
	return token, &public, nil
}

// Me looks the user up again so a user removed after the token was issued is reported as not found.
func (s *authService) Me(ctx context.Context, userID string) (*model.PublicUser, error) {
	var cached model.PublicUser
	if s.cache.GetJSON(ctx, s.cacheKey(userID), &cached) {
		return &cached, nil
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.logger.Info("user not found for me", zap.String("user_id", userID))
		return nil, errors.ErrUserNotFound
	}

	public := user.Public()
	_ = s.cache.SetJSON(ctx, s.cacheKey(userID), public, userCacheTTL)
	return &public, nil
}

// Signout is stateless: the token stays valid until it expires.
func (s *authService) Signout(ctx context.Context, identity *auth.Identity) {
	s.logger.Info("user signed out", zap.String("email", identity.Email), zap.String("user_id", identity.ID))
}

func (s *authService) ListUsers(ctx context.Context) ([]model.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	s.logger.Info("all users retrieved", zap.Int("count", len(users)))
	return users, nil
}
