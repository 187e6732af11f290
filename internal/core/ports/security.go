package ports

import (
	"context"
	"time"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
)

// PasswordHasher hashes and verifies passwords. Verify never fails loudly:
// a malformed digest simply does not match.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
	NeedsRehash(digest string) bool
}

// TokenCodec issues and verifies signed access tokens.
type TokenCodec interface {
	Issue(subjectID, roleID, tenantID int64, ttl time.Duration) (string, error)
	Parse(token string) (*domain.Claims, error)
}

// ClaimsResolver decides which role and tenant a token is issued for.
type ClaimsResolver interface {
	Resolve(ctx context.Context, user *domain.User) (roleID, tenantID int64, err error)
}

// LoginLimiter throttles repeated failed logins per key (the login email).
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
