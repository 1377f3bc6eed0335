package identity

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/apperrors"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/cache"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/circuitbreaker"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/dto"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/hash"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/logger"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/mail"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/metrics"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/models"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/store"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/token"
)

// VerificationTTL bounds the lifetime of an emailed verification key.
const VerificationTTL = 30 * time.Minute

// Service orchestrates sign-up, sign-in, verification, refresh and validate
// against the credential store, the token cache, the hasher, the codec and
// the mail dispatcher.
type Service struct {
	store  store.Storage
	cache  *cache.TokenCache
	hasher *hash.Hasher
	codec  *token.Codec
	mailer mail.Dispatcher

	cacheBreaker *circuitbreaker.Breaker
	mailBreaker  *circuitbreaker.Breaker
}

// NewService wires the identity service. The breakers keep a dead cache or
// SMTP relay from tying up every request goroutine.
func NewService(st store.Storage, tc *cache.TokenCache, h *hash.Hasher, codec *token.Codec, mailer mail.Dispatcher) *Service {
	return &Service{
		store:        st,
		cache:        tc,
		hasher:       h,
		codec:        codec,
		mailer:       mailer,
		cacheBreaker: circuitbreaker.New(5, 30*time.Second, 3),
		mailBreaker:  circuitbreaker.New(5, 30*time.Second, 3),
	}
}

// SignUp registers a new user. The verification key is written to the cache
// before the persistent insert: a crash between the two leaves only an
// orphaned cache entry that TTL eviction cleans up. Mail goes out last so a
// user record always exists when the verification click arrives, and its
// failure never fails the sign-up.
func (s *Service) SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.StatusResponse, *apperrors.AppError) {
	existing, err := s.store.Users.GetByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		return nil, apperrors.NewConflict("User with such email already exists")
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewInternal("database error while checking email")
	}

	passwordHash, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return nil, apperrors.NewInternal("error hashing password")
	}

	key := uuid.NewString()
	if err := s.cacheBreaker.Call(func() error {
		return s.cache.PutVerificationKey(ctx, key, req.Email, VerificationTTL)
	}); err != nil {
		return nil, apperrors.NewInternal("error storing verification key")
	}

	user := &models.User{
		Email:        req.Email,
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		PasswordHash: passwordHash,
		IsVerified:   false,
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("User with such email already exists")
		}
		return nil, apperrors.NewInternal("error creating user")
	}

	if s.mailer != nil {
		if err := s.mailBreaker.Call(func() error {
			return s.mailer.SendVerification(ctx, user.Email, key)
		}); err != nil {
			logger.Logger.Error().
				Err(err).
				Int64("user_id", user.ID).
				Str("email", user.Email).
				Msg("failed to dispatch verification mail")
			// The user record and the verification key stand.
		}
	}

	metrics.RecordSignUp()
	return &dto.StatusResponse{
		Status:  "success",
		Message: "User has been registered; verify via email",
	}, nil
}

// SignIn authenticates a user and issues a fresh token pair, overwriting any
// previously live pair for the email. Verification status does not block
// sign-in; it is surfaced at validate time.
func (s *Service) SignIn(ctx context.Context, req dto.SignInRequest) (*dto.TokenPairResponse, *apperrors.AppError) {
	user, err := s.store.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewConflict("User with such email does not exist")
		}
		return nil, apperrors.NewInternal("error getting user by email")
	}

	ok, err := s.hasher.Verify(ctx, req.Password, user.PasswordHash)
	if err != nil {
		return nil, apperrors.NewInternal("error verifying password")
	}
	if !ok {
		return nil, apperrors.NewConflict("Invalid password provided")
	}

	pair, appErr := s.issuePair(ctx, user)
	if appErr != nil {
		return nil, appErr
	}

	metrics.RecordSignIn()
	return &dto.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// VerifyUser consumes a verification key and marks the user verified.
// Domain failures are returned as {status:"error", message} rather than
// errors because this operation is reached from a clickable link.
func (s *Service) VerifyUser(ctx context.Context, req dto.VerifyUserRequest) (*dto.StatusResponse, *apperrors.AppError) {
	email, err := s.getVerificationKey(ctx, req.Key)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return &dto.StatusResponse{
				Status:  "error",
				Message: "Invalid or expired verification key",
			}, nil
		}
		return nil, apperrors.NewInternal("error looking up verification key")
	}

	user, err := s.store.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &dto.StatusResponse{
				Status:  "error",
				Message: "User with such email does not exist",
			}, nil
		}
		return nil, apperrors.NewInternal("error loading user for verification")
	}

	if user.IsVerified {
		// Idempotent second click: consume the key if it is still around
		// and report the state without failing.
		_ = s.cacheBreaker.Call(func() error {
			return s.cache.DeleteVerificationKey(ctx, req.Key)
		})
		return &dto.StatusResponse{
			Status:  "error",
			Message: "User has already been verified",
		}, nil
	}

	// Consume the key before flipping the flag so it is accepted at most once.
	if err := s.cacheBreaker.Call(func() error {
		return s.cache.DeleteVerificationKey(ctx, req.Key)
	}); err != nil {
		return nil, apperrors.NewInternal("error consuming verification key")
	}

	if err := s.store.Users.SetVerified(ctx, user.ID); err != nil {
		return nil, apperrors.NewInternal("error updating verification status")
	}

	metrics.RecordVerification()
	return &dto.StatusResponse{
		Status:  "success",
		Message: "User has been verified",
	}, nil
}

// Refresh rotates a token pair. The refresh token is single-use: the cached
// pair is deleted before the new one is written, so a replay of the same
// refresh token fails the byte-equality check and returns NotRefreshToken.
func (s *Service) Refresh(ctx context.Context, tokenStr string) (*dto.TokenPairResponse, *apperrors.AppError) {
	claims, err := s.codec.Parse(tokenStr)
	if err != nil {
		return nil, codecError(err)
	}

	pair, err := s.getPair(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, apperrors.NewNotRefreshToken()
		}
		return nil, apperrors.NewInternal("error loading cached token pair")
	}

	// The supplied token must be byte-identical to the live refresh token
	// and the cached token must actually carry the refresh role.
	cachedClaims, err := s.codec.Parse(pair.RefreshToken)
	if err != nil || cachedClaims.Role != token.RoleRefresh || pair.RefreshToken != tokenStr {
		return nil, apperrors.NewNotRefreshToken()
	}

	if err := s.cacheBreaker.Call(func() error {
		return s.cache.DeletePair(ctx, claims.Email)
	}); err != nil {
		return nil, apperrors.NewInternal("error revoking previous token pair")
	}

	user, err := s.store.Users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewConflict("User with such email does not exist")
		}
		return nil, apperrors.NewInternal("error getting user by email")
	}

	newPair, appErr := s.issuePair(ctx, user)
	if appErr != nil {
		return nil, appErr
	}

	metrics.RecordRefresh()
	return &dto.TokenPairResponse{
		AccessToken:  newPair.AccessToken,
		RefreshToken: newPair.RefreshToken,
	}, nil
}

// Validate checks an access token against the codec and the cache, and
// reports the user's verification status. All outcomes are in-band data.
func (s *Service) Validate(ctx context.Context, tokenStr string) (*dto.TokenStateResponse, *apperrors.AppError) {
	claims, err := s.codec.Parse(tokenStr)
	if err != nil {
		metrics.RecordValidation(false)
		return &dto.TokenStateResponse{
			IsValid: false,
			Message: codecError(err).Message,
		}, nil
	}

	pair, err := s.getPair(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			metrics.RecordValidation(false)
			return &dto.TokenStateResponse{
				IsValid: false,
				Message: apperrors.NewNotAccessToken().Message,
			}, nil
		}
		return nil, apperrors.NewInternal("error loading cached token pair")
	}

	// The cache is the revocation oracle: a token that is not the live
	// access token is rejected even before its cryptographic expiry.
	if pair.AccessToken != tokenStr || claims.Role == token.RoleRefresh {
		metrics.RecordValidation(false)
		return &dto.TokenStateResponse{
			IsValid: false,
			Message: apperrors.NewNotAccessToken().Message,
		}, nil
	}

	user, err := s.store.Users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			metrics.RecordValidation(false)
			return &dto.TokenStateResponse{
				IsValid: false,
				Message: "Token verification failed",
			}, nil
		}
		return nil, apperrors.NewInternal("error getting user by email")
	}

	metrics.RecordValidation(true)
	return &dto.TokenStateResponse{
		IsValid:    true,
		IsVerified: user.IsVerified,
		Message:    "Token is valid",
	}, nil
}

// issuePair signs a fresh access/refresh pair and overwrites the cache
// entry. The entry TTL equals the refresh lifetime.
func (s *Service) issuePair(ctx context.Context, user *models.User) (*models.TokenPair, *apperrors.AppError) {
	subject := strconv.FormatInt(user.ID, 10)

	access, err := s.codec.Sign(user.Email, subject, token.RoleAccess, token.AccessTTL())
	if err != nil {
		return nil, apperrors.NewInternal("error signing access token")
	}
	refresh, err := s.codec.Sign(user.Email, subject, token.RoleRefresh, token.RefreshTTL)
	if err != nil {
		return nil, apperrors.NewInternal("error signing refresh token")
	}

	pair := models.TokenPair{AccessToken: access, RefreshToken: refresh}
	if err := s.cacheBreaker.Call(func() error {
		return s.cache.PutPair(ctx, user.Email, pair, token.RefreshTTL)
	}); err != nil {
		return nil, apperrors.NewInternal("error storing token pair")
	}
	return &pair, nil
}

// getPair reads the live pair through the breaker. A cache miss is a domain
// outcome, not a dependency failure, so it must not trip the breaker.
func (s *Service) getPair(ctx context.Context, email string) (*models.TokenPair, error) {
	var pair *models.TokenPair
	var miss error
	err := s.cacheBreaker.Call(func() error {
		p, cbErr := s.cache.GetPair(ctx, email)
		if errors.Is(cbErr, cache.ErrNotFound) {
			miss = cbErr
			return nil
		}
		pair = p
		return cbErr
	})
	if err != nil {
		return nil, err
	}
	if miss != nil {
		return nil, miss
	}
	return pair, nil
}

func (s *Service) getVerificationKey(ctx context.Context, key string) (string, error) {
	var email string
	var miss error
	err := s.cacheBreaker.Call(func() error {
		v, cbErr := s.cache.GetVerificationKey(ctx, key)
		if errors.Is(cbErr, cache.ErrNotFound) {
			miss = cbErr
			return nil
		}
		email = v
		return cbErr
	})
	if err != nil {
		return "", err
	}
	if miss != nil {
		return "", miss
	}
	return email, nil
}

// codecError maps codec failures to the token error-kind table.
func codecError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, token.ErrTokenExpired):
		return apperrors.NewTokenExpired()
	case errors.Is(err, token.ErrSignatureInvalid), errors.Is(err, token.ErrTokenMalformed):
		return apperrors.NewTokenMalformed()
	default:
		return &apperrors.AppError{
			Code:    apperrors.ErrCodeTokenMalformed,
			Message: "Token verification failed",
			Status:  http.StatusUnauthorized,
		}
	}
}
