package domain

import "time"

const TokenTypeBearer = "bearer"

// Token is the credential handed back by a successful login. It is never stored.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Claims is the verified content of an access token.
type Claims struct {
	SubjectID int64
	RoleID    int64
	TenantID  int64
	ExpiresAt time.Time
}
