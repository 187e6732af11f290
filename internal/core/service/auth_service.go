package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

const defaultTokenTTL = 30 * time.Minute

// AuthService implements login and profile lookup. It keeps no session state.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenCodec
	resolver ports.ClaimsResolver
	limiter  ports.LoginLimiter
	tokenTTL time.Duration
	logger   zerolog.Logger

	dummyOnce   sync.Once
	dummyDigest string
}

// NewAuthService wires the login flow. limiter may be nil to disable throttling.
func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenCodec,
	resolver ports.ClaimsResolver,
	limiter ports.LoginLimiter,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		resolver: resolver,
		limiter:  limiter,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Login verifies the credentials and issues an access token. An unknown email
// and a wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Token, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	key := strings.ToLower(strings.TrimSpace(email))
	if err := s.checkThrottle(ctx, key); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		// Burn the same bcrypt cost as a real check.
		s.hasher.Verify(password, s.dummy())
		s.recordFailure(ctx, key)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		s.recordFailure(ctx, key)
		return nil, domain.ErrInvalidCredentials
	}

	roleID, tenantID, err := s.resolver.Resolve(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("resolve token claims: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, roleID, tenantID, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.resetThrottle(ctx, key)
	s.upgradeDigest(ctx, user, password)

	s.logger.Info().Int64("user_id", user.ID).Int64("role_id", roleID).Int64("tenant_id", tenantID).Msg("user logged in")
	return &domain.Token{AccessToken: token, TokenType: domain.TokenTypeBearer}, nil
}

// Profile returns the live user behind a verified token.
func (s *AuthService) Profile(ctx context.Context, claims domain.Claims) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, claims.SubjectID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		digest, err := s.hasher.Hash("pantry-api:no-such-user")
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to prepare dummy password digest")
			return
		}
		s.dummyDigest = digest
	})
	return s.dummyDigest
}

func (s *AuthService) checkThrottle(ctx context.Context, key string) error {
	if s.limiter == nil {
		return nil
	}
	allowed, err := s.limiter.Allow(ctx, key)
	if err != nil {
		// Fail open: a limiter outage must not lock everyone out.
		s.logger.Warn().Err(err).Msg("login limiter unavailable")
		return nil
	}
	if !allowed {
		s.logger.Warn().Str("email", key).Msg("login throttled")
		return domain.ErrTooManyAttempts
	}
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, key string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Fail(ctx, key); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (s *AuthService) resetThrottle(ctx context.Context, key string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Reset(ctx, key); err != nil {
		s.logger.Warn().Err(err).Msg("failed to reset login limiter")
	}
}

// upgradeDigest re-hashes a password stored with an outdated bcrypt cost.
// The login has already succeeded, so errors are only logged.
func (s *AuthService) upgradeDigest(ctx context.Context, user *domain.User, password string) {
	if !s.hasher.NeedsRehash(user.HashedPassword) {
		return
	}
	digest, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("password rehash failed")
		return
	}
	user.HashedPassword = digest
	user.UpdatedBy = domain.ActorRef(user.ID)
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to store upgraded password digest")
	}
}
