package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ltcdata/insurance-api/internal/config"
	"github.com/ltcdata/insurance-api/internal/logger"
	"github.com/ltcdata/insurance-api/internal/store"
	"github.com/ltcdata/insurance-api/internal/utils"
	"github.com/ltcdata/insurance-api/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It verifies bcrypt credentials against the api_users table and issues
// signed JWT tokens carrying the account's role and carrier access claims.
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

const defaultTokenDuration = time.Hour

// NewAuthService constructs an AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	duration := cfg.TokenDuration
	if duration <= 0 {
		duration = defaultTokenDuration
	}

	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  duration,
		logger:         logger,
	}
}

// Login authenticates an account by username and password and issues a JWT.
//
// Unknown usernames and wrong passwords both map to ErrInvalidCredentials so
// responses do not reveal which accounts exist. A deactivated account with a
// correct password yields ErrUserInactive. The last_login timestamp is
// updated best-effort; a failure there does not block the login.
func (a *authService) Login(ctx context.Context, username, password string) (models.TokenResponse, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		return models.TokenResponse{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Warn().Str("username", username).Msg("login attempt for unknown user")
			return models.TokenResponse{}, ErrInvalidCredentials
		}
		log.Err(err).Str("username", username).Msg("user lookup failed")
		return models.TokenResponse{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("username", username).Msg("wrong password")
		return models.TokenResponse{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		log.Warn().Str("username", username).Msg("login attempt for inactive user")
		return models.TokenResponse{}, ErrUserInactive
	}

	if err := a.userRepository.TouchLastLogin(ctx, user.UserID); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("failed to update last login")
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("token generation failed")
		return models.TokenResponse{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	log.Info().Int64("user_id", user.UserID).Str("role", string(user.Role)).Msg("user logged in")

	return models.TokenResponse{
		AccessToken: token.SignedString,
		TokenType:   "bearer",
		ExpiresIn:   int64(a.tokenDuration.Seconds()),
		UserID:      user.UserID,
		Username:    user.Username,
		Role:        user.Role,
	}, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
