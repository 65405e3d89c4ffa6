package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/pkg/apperrors"
	"github.com/bkassahun/courseload/internal/pkg/auth"
)

type fakeUserStore struct {
	users map[int64]*models.User
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %d", apperrors.ErrResourceNotFound, id)
	}
	return u, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", apperrors.ErrResourceNotFound, email)
}

type fakeTokenStore struct {
	tokens map[string]int64
}

func (s *fakeTokenStore) Save(_ context.Context, userID int64, token string, _ time.Time) error {
	s.tokens[token] = userID
	return nil
}

func (s *fakeTokenStore) GetUserID(_ context.Context, token string) (int64, error) {
	userID, ok := s.tokens[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	return userID, nil
}

func (s *fakeTokenStore) Delete(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

func newAuthFixture(t *testing.T) (AuthService, *fakeTokenStore) {
	t.Helper()
	hash, err := auth.HashPassword("depthead123")
	require.NoError(t, err)

	users := &fakeUserStore{users: map[int64]*models.User{
		1: {ID: 1, Email: "depthead@courseload.local", PasswordHash: hash, RoleType: models.RoleDeptHead, IsActive: true},
		2: {ID: 2, Email: "disabled@courseload.local", PasswordHash: hash, RoleType: models.RoleDean, IsActive: false},
	}}
	tokens := &fakeTokenStore{tokens: make(map[string]int64)}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "courseload-test",
	})
	return NewAuthService(users, tokens, jwtService), tokens
}

func TestLogin(t *testing.T) {
	svc, tokens := newAuthFixture(t)

	user, pair, err := svc.Login(context.Background(), "depthead@courseload.local", "depthead123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleDeptHead, user.RoleType)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int(15*time.Minute/time.Second), pair.ExpiresIn)

	// The refresh token is tracked server side.
	assert.Equal(t, int64(1), tokens.tokens[pair.RefreshToken])
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, err := svc.Login(context.Background(), "depthead@courseload.local", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// Unknown email yields the same error as a wrong password.
	_, _, err = svc.Login(context.Background(), "nobody@courseload.local", "depthead123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, err := svc.Login(context.Background(), "disabled@courseload.local", "depthead123")
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshTokenRotates(t *testing.T) {
	svc, tokens := newAuthFixture(t)

	_, pair, err := svc.Login(context.Background(), "depthead@courseload.local", "depthead123")
	require.NoError(t, err)

	user, newPair, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)

	// The presented token is single use.
	_, _, err = svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
	assert.Equal(t, int64(1), tokens.tokens[newPair.RefreshToken])
}

func TestLogout(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, pair, err := svc.Login(context.Background(), "depthead@courseload.local", "depthead123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), pair.RefreshToken))

	_, _, err = svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}
