package services

import (
	"context"
	"time"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/pkg/apperrors"
	"github.com/bkassahun/courseload/internal/pkg/auth"
	"github.com/bkassahun/courseload/internal/pkg/logger"
)

// UserStore is the slice of the user repository the auth flow needs.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenStore persists refresh tokens.
type TokenStore interface {
	Save(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetUserID(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}

// TokenPair bundles the issued tokens and their lifetimes in seconds.
type TokenPair struct {
	AccessToken           string
	RefreshToken          string
	ExpiresIn             int
	RefreshTokenExpiresIn int
}

// AuthService handles login and token refresh.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.User, *TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	users      UserStore
	tokens     TokenStore
	jwtService *auth.JWTService
}

// NewAuthService creates an AuthService.
func NewAuthService(users UserStore, tokens TokenStore, jwtService *auth.JWTService) AuthService {
	return &authService{users: users, tokens: tokens, jwtService: jwtService}
}

// Login verifies credentials and issues a token pair. Disabled accounts are
// rejected even with correct credentials.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Same error for unknown email and wrong password.
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Int64("userId", user.ID).Str("role", string(user.RoleType)).Msg("User logged in")
	return user, pair, nil
}

// RefreshToken rotates a refresh token: the presented token is invalidated
// and a new pair is issued.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*models.User, *TokenPair, error) {
	userID, err := s.tokens.GetUserID(ctx, refreshToken)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}
	if err := s.tokens.Delete(ctx, refreshToken); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout invalidates a refresh token. Access tokens expire on their own.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Delete(ctx, refreshToken)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, user.ID, refreshToken, s.jwtService.RefreshTokenExpiry()); err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		ExpiresIn:             expiresIn,
		RefreshTokenExpiresIn: refreshExpiresIn,
	}, nil
}
