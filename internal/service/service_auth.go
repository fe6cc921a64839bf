package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/avkhasev/tasktrack/internal/config"
	"github.com/avkhasev/tasktrack/internal/logger"
	"github.com/avkhasev/tasktrack/internal/store"
	"github.com/avkhasev/tasktrack/internal/utils"
	"github.com/avkhasev/tasktrack/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var emailRegexp = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// dummyPasswordHash is a bcrypt digest of a random throwaway string.
// Login runs a comparison against it when the username is unknown, so the
// unknown-user path costs the same bcrypt work as the wrong-password path.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, the JWT token
// lifecycle, and profile management, using a UserRepository for persistence
// and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// avatarStorage stores uploaded avatar images as opaque files.
	avatarStorage store.AvatarFileStorage

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	// It is a fixed window applied uniformly to every token.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// repositories and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, avatarStorage store.AvatarFileStorage, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		avatarStorage:  avatarStorage,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// The plain-text password is transformed through bcrypt before it reaches
// the repository and is never stored, logged, or echoed anywhere. The
// returned user carries the server-assigned ID.
//
// Errors:
//   - ErrInvalidDataProvided / ErrValidationBadEmail / ErrValidationBadPassword
//     when the request fields do not pass validation.
//   - store.ErrDuplicateIdentity when the username or email is taken.
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validateRegistration(req); err != nil {
		log.Error().Str("username", req.Username).Err(err).Msg("invalid registration data provided")
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// Both failure modes — unknown username and wrong password — return
// ErrInvalidCredentials, and the unknown-username path still performs one
// bcrypt comparison so the two paths sit in the same timing class.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Username == "" || req.Password == "" {
		log.Error().Msg("empty login credentials provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// burn the same bcrypt cost as a real comparison
			_ = bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(req.Password))
			log.Warn().Msg("login failed")
			return models.User{}, ErrInvalidCredentials
		}

		log.Err(err).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn().Int64("id", foundUser.ID).Msg("login failed")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, and expires after
// tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature
// and the issuer claim. Expiry is reported as ErrTokenExpired; every other
// failure (bad signature, malformed structure, wrong issuer) is normalised
// to ErrTokenInvalid so that callers do not need to inspect low-level JWT
// errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenExpired
		}
		return models.Token{}, ErrTokenInvalid
	}

	return token, nil
}

// Profile returns the account record of the given user.
func (a *authService) Profile(ctx context.Context, userID int64) (models.User, error) {
	return a.userRepository.FindUserByID(ctx, userID)
}

// UpdateProfile applies a partial update of profile-only fields and returns
// the refreshed record. Identity fields and the password hash are not
// reachable through this path.
func (a *authService) UpdateProfile(ctx context.Context, userID int64, upd models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	updatedUser, err := a.userRepository.UpdateProfile(ctx, userID, upd)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	return updatedUser, nil
}

// SaveAvatar stores an uploaded avatar image and records its reference path
// on the user. Only JPEG and PNG content types are accepted. A previously
// stored avatar file is removed once the new path is recorded.
func (a *authService) SaveAvatar(ctx context.Context, userID int64, contentType string, content io.Reader) (models.User, error) {
	log := logger.FromContext(ctx)

	ext, ok := avatarExtension(contentType)
	if !ok {
		log.Warn().Int64("user_id", userID).Str("content_type", contentType).Msg("unsupported avatar content type")
		return models.User{}, ErrValidationBadAvatarType
	}

	previous, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	path, err := a.avatarStorage.Save(ctx, ext, content)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("avatar file save failed")
		return models.User{}, fmt.Errorf("avatar file save failed: %w", err)
	}

	updatedUser, err := a.userRepository.SetAvatarPath(ctx, userID, path)
	if err != nil {
		a.avatarStorage.Remove(ctx, path)
		log.Err(err).Int64("user_id", userID).Msg("avatar path update failed")
		return models.User{}, fmt.Errorf("avatar path update failed: %w", err)
	}

	if removeErr := a.avatarStorage.Remove(ctx, previous.AvatarPath); removeErr != nil {
		log.Warn().Err(removeErr).Int64("user_id", userID).Msg("stale avatar file was not removed")
	}

	return updatedUser, nil
}

func avatarExtension(contentType string) (string, bool) {
	switch contentType {
	case "image/jpeg":
		return ".jpg", true
	case "image/png":
		return ".png", true
	}
	return "", false
}

func validateRegistration(req models.RegisterRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return ErrInvalidDataProvided
	}

	if !emailRegexp.MatchString(req.Email) {
		return ErrValidationBadEmail
	}

	if len(req.Password) < 8 || len(req.Password) > 72 {
		return ErrValidationBadPassword
	}

	return nil
}
