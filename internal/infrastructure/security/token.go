package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
)

// accessClaims is the JWT payload. Identities travel as decimal strings.
type accessClaims struct {
	RoleID   string `json:"role_id"`
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// JWTCodec signs and verifies HS256 access tokens with a process-wide secret.
type JWTCodec struct {
	secret []byte
	now    func() time.Time
}

func NewJWTCodec(secret string) *JWTCodec {
	return &JWTCodec{secret: []byte(secret), now: time.Now}
}

func (c *JWTCodec) Issue(subjectID, roleID, tenantID int64, ttl time.Duration) (string, error) {
	now := c.now()
	claims := accessClaims{
		RoleID:   strconv.FormatInt(roleID, 10),
		TenantID: strconv.FormatInt(tenantID, 10),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies token and returns its claims. An expired token yields
// domain.ErrExpiredCredential; anything else wrong with it yields
// domain.ErrMalformedCredential.
func (c *JWTCodec) Parse(token string) (*domain.Claims, error) {
	var claims accessClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredCredential
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedCredential, err)
	}

	subjectID, err := parseID(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject: %v", domain.ErrMalformedCredential, err)
	}
	roleID, err := parseID(claims.RoleID)
	if err != nil {
		return nil, fmt.Errorf("%w: role_id: %v", domain.ErrMalformedCredential, err)
	}
	tenantID, err := parseID(claims.TenantID)
	if err != nil {
		return nil, fmt.Errorf("%w: tenant_id: %v", domain.ErrMalformedCredential, err)
	}

	return &domain.Claims{
		SubjectID: subjectID,
		RoleID:    roleID,
		TenantID:  tenantID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func parseID(s string) (int64, error) {
	if s == "" {
		return 0, errors.New("missing")
	}
	return strconv.ParseInt(s, 10, 64)
}
