package service

import (
	"context"
	"testing"
	"time"

	"github.com/djougoo/propass-central/internal/config"
	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/store"
	"github.com/djougoo/propass-central/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepository struct {
	findByUsernameFn func(ctx context.Context, username string) (models.User, error)
	findByIDFn       func(ctx context.Context, id int64) (models.User, error)
}

func (m *mockUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return m.findByUsernameFn(ctx, username)
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return m.findByIDFn(ctx, id)
}

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "propass-central",
		TokenDuration: time.Hour,
	}
}

func hashedUser(t *testing.T, password string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return models.User{
		ID:           7,
		Username:     "operator",
		Email:        "operator@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Active:       true,
	}
}

func TestLogin_Success(t *testing.T) {
	user := hashedUser(t, "s3cret")
	repo := &mockUserRepository{
		findByUsernameFn: func(ctx context.Context, username string) (models.User, error) {
			assert.Equal(t, "operator", username)
			return user, nil
		},
	}
	svc := NewAuthService(repo, testAppConfig(), logger.Nop())

	got, err := svc.Login(context.Background(), "operator", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Username, got.Username)
}

func TestLogin_EmptyCredentials(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{}, testAppConfig(), logger.Nop())

	for _, tc := range []struct{ username, password string }{
		{"", "s3cret"},
		{"operator", ""},
		{"", ""},
	} {
		_, err := svc.Login(context.Background(), tc.username, tc.password)
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	repo := &mockUserRepository{
		findByUsernameFn: func(ctx context.Context, username string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	svc := NewAuthService(repo, testAppConfig(), logger.Nop())

	_, err := svc.Login(context.Background(), "ghost", "s3cret")
	require.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	user := hashedUser(t, "s3cret")
	repo := &mockUserRepository{
		findByUsernameFn: func(ctx context.Context, username string) (models.User, error) {
			return user, nil
		},
	}
	svc := NewAuthService(repo, testAppConfig(), logger.Nop())

	_, err := svc.Login(context.Background(), "operator", "wrong")
	require.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_InactiveAccount(t *testing.T) {
	user := hashedUser(t, "s3cret")
	user.Active = false
	repo := &mockUserRepository{
		findByUsernameFn: func(ctx context.Context, username string) (models.User, error) {
			return user, nil
		},
	}
	svc := NewAuthService(repo, testAppConfig(), logger.Nop())

	_, err := svc.Login(context.Background(), "operator", "s3cret")
	require.ErrorIs(t, err, ErrUserInactive)
}

func TestCreateAndParseToken_Roundtrip(t *testing.T) {
	user := hashedUser(t, "s3cret")
	svc := NewAuthService(&mockUserRepository{}, testAppConfig(), logger.Nop())

	token, err := svc.CreateToken(context.Background(), user, "D42")
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, user.ID, parsed.Claims.UserID)
	assert.Equal(t, user.Username, parsed.Claims.Username)
	assert.Equal(t, models.RoleAdmin, parsed.Claims.Role)
	assert.Equal(t, "D42", parsed.Claims.DeviceID)
}

func TestParseToken_Garbage(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{}, testAppConfig(), logger.Nop())

	_, err := svc.ParseToken(context.Background(), "not.a.token")
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestParseToken_ForeignSignKey(t *testing.T) {
	user := hashedUser(t, "s3cret")
	issuer := NewAuthService(&mockUserRepository{}, testAppConfig(), logger.Nop())

	token, err := issuer.CreateToken(context.Background(), user, "")
	require.NoError(t, err)

	otherCfg := testAppConfig()
	otherCfg.TokenSignKey = "different-key"
	verifier := NewAuthService(&mockUserRepository{}, otherCfg, logger.Nop())

	_, err = verifier.ParseToken(context.Background(), token.SignedString)
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestRefresh_IssuesNewTokenForDevice(t *testing.T) {
	user := hashedUser(t, "s3cret")
	repo := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id int64) (models.User, error) {
			assert.Equal(t, user.ID, id)
			return user, nil
		},
	}
	svc := NewAuthService(repo, testAppConfig(), logger.Nop())

	original, err := svc.CreateToken(context.Background(), user, "D1")
	require.NoError(t, err)

	refreshed, gotUser, err := svc.Refresh(context.Background(), original.SignedString, "D2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, gotUser.ID)
	assert.Equal(t, "D2", refreshed.Claims.DeviceID)
}

func TestRefresh_InvalidToken(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{}, testAppConfig(), logger.Nop())

	_, _, err := svc.Refresh(context.Background(), "expired-or-garbage", "D1")
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestMe_DelegatesToRepository(t *testing.T) {
	user := hashedUser(t, "s3cret")
	repo := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id int64) (models.User, error) {
			return user, nil
		},
	}
	svc := NewAuthService(repo, testAppConfig(), logger.Nop())

	got, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)
}
