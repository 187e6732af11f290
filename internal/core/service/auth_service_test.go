package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
)

type authFixture struct {
	users   *stubUserRepo
	hasher  *stubHasher
	codec   *stubCodec
	limiter *stubLimiter
	svc     *AuthService
}

func newAuthFixture(t *testing.T, ttl time.Duration) *authFixture {
	t.Helper()
	f := &authFixture{
		users:   newStubUserRepo(),
		hasher:  newStubHasher(),
		codec:   &stubCodec{},
		limiter: newStubLimiter(),
	}
	f.svc = NewAuthService(f.users, f.hasher, f.codec, stubResolver{role: 7, tenant: 3}, f.limiter, ttl, discardLogger)
	return f
}

func (f *authFixture) seed(t *testing.T, email, digest string) *domain.User {
	t.Helper()
	u := &domain.User{Username: strings.Split(email, "@")[0], Email: email, HashedPassword: digest}
	if err := f.users.Add(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture(t, 0)
	u := f.seed(t, "ann@example.com", "hashed:c1:s3cret")

	token, err := f.svc.Login(context.Background(), "ann@example.com", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.TokenType != domain.TokenTypeBearer {
		t.Errorf("expected token type %q, got %q", domain.TokenTypeBearer, token.TokenType)
	}
	if token.AccessToken != "token-1-7-3" {
		t.Errorf("unexpected access token %q", token.AccessToken)
	}
	if len(f.codec.issued) != 1 {
		t.Fatalf("expected 1 issued token, got %d", len(f.codec.issued))
	}
	got := f.codec.issued[0]
	if got.subject != u.ID || got.role != 7 || got.tenant != 3 {
		t.Errorf("unexpected claims: %+v", got)
	}
	if got.ttl != 30*time.Minute {
		t.Errorf("expected default ttl 30m, got %v", got.ttl)
	}
	if len(f.limiter.resets) != 1 || f.limiter.resets[0] != "ann@example.com" {
		t.Errorf("expected limiter reset for ann@example.com, got %v", f.limiter.resets)
	}
}

func TestAuthService_Login_UsesConfiguredTTL(t *testing.T) {
	f := newAuthFixture(t, 5*time.Minute)
	f.seed(t, "ann@example.com", "hashed:c1:s3cret")

	if _, err := f.svc.Login(context.Background(), "ann@example.com", "s3cret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.codec.issued[0].ttl != 5*time.Minute {
		t.Errorf("expected ttl 5m, got %v", f.codec.issued[0].ttl)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := newAuthFixture(t, 0)
	f.seed(t, "ann@example.com", "hashed:c1:s3cret")

	_, err := f.svc.Login(context.Background(), "ann@example.com", "guess")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if f.limiter.failures["ann@example.com"] != 1 {
		t.Errorf("expected one recorded failure, got %d", f.limiter.failures["ann@example.com"])
	}
	if len(f.codec.issued) != 0 {
		t.Error("no token must be issued on failure")
	}
}

// An unknown email must be indistinguishable from a wrong password, including
// the cost of a hash verification.
func TestAuthService_Login_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t, 0)

	_, err := f.svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(f.hasher.verified) != 1 {
		t.Fatalf("expected a dummy verification, got %d", len(f.hasher.verified))
	}
	if !strings.HasPrefix(f.hasher.verified[0], "hashed:") {
		t.Errorf("dummy verification used %q", f.hasher.verified[0])
	}
	if f.limiter.failures["ghost@example.com"] != 1 {
		t.Error("unknown email must count as a failed attempt")
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	f := newAuthFixture(t, 0)

	cases := []struct{ email, password string }{
		{"", "s3cret"},
		{"ann@example.com", ""},
	}
	for _, tc := range cases {
		if _, err := f.svc.Login(context.Background(), tc.email, tc.password); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("Login(%q, %q): expected ErrInvalidCredentials, got %v", tc.email, tc.password, err)
		}
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	f := newAuthFixture(t, 0)
	f.seed(t, "ann@example.com", "hashed:c1:s3cret")
	f.limiter.blocked["ann@example.com"] = true

	_, err := f.svc.Login(context.Background(), "  ANN@example.com ", "s3cret")
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if len(f.hasher.verified) != 0 {
		t.Error("a throttled login must not reach password verification")
	}
}

func TestAuthService_Login_LimiterOutageFailsOpen(t *testing.T) {
	f := newAuthFixture(t, 0)
	f.seed(t, "ann@example.com", "hashed:c1:s3cret")
	f.limiter.err = errStorage

	if _, err := f.svc.Login(context.Background(), "ann@example.com", "s3cret"); err != nil {
		t.Fatalf("expected login to succeed while the limiter is down, got %v", err)
	}
}

func TestAuthService_Login_WithoutLimiter(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, newStubHasher(), &stubCodec{}, stubResolver{role: 1, tenant: 1}, nil, 0, discardLogger)
	if err := users.Add(context.Background(), &domain.User{Username: "ann", Email: "ann@example.com", HashedPassword: "hashed:c1:s3cret"}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Login(context.Background(), "ann@example.com", "nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ann@example.com", "s3cret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAuthService_Login_ResolverError(t *testing.T) {
	users := newStubUserRepo()
	codec := &stubCodec{}
	svc := NewAuthService(users, newStubHasher(), codec, stubResolver{err: errStorage}, nil, 0, discardLogger)
	if err := users.Add(context.Background(), &domain.User{Username: "ann", Email: "ann@example.com", HashedPassword: "hashed:c1:s3cret"}); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Login(context.Background(), "ann@example.com", "s3cret")
	if !errors.Is(err, errStorage) {
		t.Fatalf("expected resolver error, got %v", err)
	}
	if len(codec.issued) != 0 {
		t.Error("no token must be issued when claims cannot be resolved")
	}
}

func TestAuthService_Login_UpgradesOutdatedDigest(t *testing.T) {
	f := newAuthFixture(t, 0)
	u := f.seed(t, "ann@example.com", "hashed:c0:s3cret")

	if _, err := f.svc.Login(context.Background(), "ann@example.com", "s3cret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := f.users.rows[u.ID]
	if stored.HashedPassword != "hashed:c1:s3cret" {
		t.Errorf("expected digest to be upgraded, got %q", stored.HashedPassword)
	}
	if stored.UpdatedBy == nil || *stored.UpdatedBy != u.ID {
		t.Errorf("expected updated_by to be the user, got %v", stored.UpdatedBy)
	}
}

func TestAuthService_Login_RehashFailureDoesNotFailLogin(t *testing.T) {
	f := newAuthFixture(t, 0)
	f.seed(t, "ann@example.com", "hashed:c0:s3cret")
	f.users.updateErr = errStorage

	if _, err := f.svc.Login(context.Background(), "ann@example.com", "s3cret"); err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
}

func TestAuthService_Login_CurrentDigestIsNotRewritten(t *testing.T) {
	f := newAuthFixture(t, 0)
	f.seed(t, "ann@example.com", "hashed:c1:s3cret")

	if _, err := f.svc.Login(context.Background(), "ann@example.com", "s3cret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.users.updates != 0 {
		t.Errorf("expected no user update, got %d", f.users.updates)
	}
}

func TestAuthService_Profile(t *testing.T) {
	f := newAuthFixture(t, 0)
	u := f.seed(t, "ann@example.com", "hashed:c1:s3cret")

	got, err := f.svc.Profile(context.Background(), domain.Claims{SubjectID: u.ID, RoleID: 7, TenantID: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "ann@example.com" {
		t.Errorf("expected ann@example.com, got %q", got.Email)
	}
}

func TestAuthService_Profile_DeletedUser(t *testing.T) {
	f := newAuthFixture(t, 0)
	u := f.seed(t, "ann@example.com", "hashed:c1:s3cret")
	if _, err := f.users.SoftDelete(context.Background(), u.ID, u.ID); err != nil {
		t.Fatal(err)
	}

	_, err := f.svc.Profile(context.Background(), domain.Claims{SubjectID: u.ID})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
