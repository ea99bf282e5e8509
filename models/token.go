package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeRefresh marks refresh tokens in the token_type claim.
// Access tokens carry no token_type.
const TokenTypeRefresh = "refresh"

// Claims is the claim set of both access and refresh tokens.
// The subject is the user's email.
type Claims struct {
	jwt.RegisteredClaims

	// TokenType is "refresh" for refresh tokens and empty for access tokens.
	TokenType string `json:"token_type,omitempty"`
}

// IsRefresh reports whether the claims belong to a refresh token.
func (c Claims) IsRefresh() bool {
	return c.TokenType == TokenTypeRefresh
}

// Token is a signed token together with its parsed claims.
type Token struct {
	// SignedString is the compact JWS representation of the token.
	SignedString string

	Claims Claims
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

// ExpiresAt returns the absolute expiry of the token.
func (t Token) ExpiresAt() time.Time {
	if t.Claims.ExpiresAt == nil {
		return time.Time{}
	}
	return t.Claims.ExpiresAt.Time
}

// TokenPair is the body returned by a successful login or refresh.
type TokenPair struct {
	AccessToken    string    `json:"access_token"`
	AccessExpires  time.Time `json:"access_expires"`
	RefreshToken   string    `json:"refresh_token"`
	RefreshExpires time.Time `json:"refresh_expires"`
}
