package service

import (
	"context"
	"fmt"
	"time"

	"github.com/djougoo/propass-central/internal/config"
	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/store"
	"github.com/djougoo/propass-central/internal/utils"
	"github.com/djougoo/propass-central/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles credential verification and JWT token lifecycle using a
// UserRepository for persistence and bcrypt for password comparison.
type authService struct {
	// userRepository is the data-access layer used to look up accounts.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Login authenticates an existing user.
//
// It validates that both username and password are non-empty, looks up the
// account, compares the bcrypt hash, and rejects inactive accounts.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if username or password is empty.
//   - A wrapped storage error if the lookup fails (e.g. user not found —
//     see store.ErrNoUserWasFound).
//   - ErrWrongPassword if the password does not match.
//   - ErrUserInactive if the account is disabled.
func (a *authService) Login(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid credentials provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)); err != nil {
		log.Error().
			Int64("id", foundUser.ID).
			Str("username", foundUser.Username).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	if !foundUser.Active {
		log.Error().Int64("id", foundUser.ID).Msg("inactive account rejected")
		return models.User{}, ErrUserInactive
	}

	return foundUser, nil
}

// Refresh validates tokenString, re-reads the account it belongs to, and
// issues a fresh token bound to deviceID.
//
// Returns ErrTokenIsExpiredOrInvalid when the presented token fails
// validation, or a wrapped storage error when the account no longer exists.
func (a *authService) Refresh(ctx context.Context, tokenString, deviceID string) (models.Token, models.User, error) {
	log := logger.FromContext(ctx)

	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		return models.Token{}, models.User{}, err
	}

	foundUser, err := a.userRepository.FindUserByID(ctx, token.Claims.UserID)
	if err != nil {
		log.Err(err).Int64("id", token.Claims.UserID).Msg("user search by id failed")
		return models.Token{}, models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	newToken, err := a.CreateToken(ctx, foundUser, deviceID)
	if err != nil {
		return models.Token{}, models.User{}, err
	}

	return newToken, foundUser, nil
}

// Me returns the account identified by userID.
func (a *authService) Me(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user, bound to deviceID
// when one is provided.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, and expires after
// tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User, deviceID string) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user, deviceID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature
// and the issuer claim. Any validation failure (expired, wrong issuer,
// malformed) is normalised to ErrTokenIsExpiredOrInvalid so that callers do
// not need to inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
