// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-disk-next/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidTokenParams  = errors.New("invalid params for generating JWT token")
	ErrEmptySubject        = errors.New("empty subject")
	ErrInvalidBearerHeader = errors.New("invalid authorization header")
)

// GenerateJWTToken signs an HS256 token for subject that expires ttl after
// now. tokenType is written to the token_type claim when non-empty.
func GenerateJWTToken(subject, tokenType string, now time.Time, ttl time.Duration, signKey []byte) (models.Token, error) {
	if subject == "" || ttl <= 0 || len(signKey) == 0 {
		return models.Token{}, ErrInvalidTokenParams
	}

	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{SignedString: signed, Claims: claims}, nil
}

// ValidateAndParseJWTToken verifies the signature (HS256 only) and the
// expiry of tokenString and returns its claims. A token without exp or sub
// is rejected.
func ValidateAndParseJWTToken(tokenString string, signKey []byte) (models.Token, error) {
	claims := models.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return signKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Token{}, ErrEmptySubject
	}

	return models.Token{SignedString: tokenString, Claims: claims}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <t>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidBearerHeader
	}
	return parts[1], nil
}
