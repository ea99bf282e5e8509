// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the server-side credential codec: salted
// PBKDF2-HMAC-SHA256 password hashing with constant-time verification and
// generation of random secrets.
package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 iteration count.
	DefaultIterations = 100_000

	// SaltLength is the number of random salt bytes per hash.
	SaltLength = 32

	// KeyLength is the number of derived key bytes.
	KeyLength = 32
)

// ErrInvalidLength is returned by Generate for non-positive lengths.
var ErrInvalidLength = errors.New("random token length must be positive")

// pbkdf2Codec is the private implementation of [PasswordCodec].
//
// Stored format: hex(salt) || hex(key), 2*(SaltLength+KeyLength) characters.
type pbkdf2Codec struct {
	iterations int
}

// NewPasswordCodec constructs a [PasswordCodec] using DefaultIterations.
func NewPasswordCodec() PasswordCodec {
	return &pbkdf2Codec{iterations: DefaultIterations}
}

// NewPasswordCodecWithIterations is NewPasswordCodec with a custom iteration
// count. Hashes produced with different counts do not verify against each other.
func NewPasswordCodecWithIterations(iterations int) PasswordCodec {
	if iterations < 1 {
		iterations = DefaultIterations
	}
	return &pbkdf2Codec{iterations: iterations}
}

func (c *pbkdf2Codec) Generate(length int, urlSafe bool) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}

	if urlSafe {
		return base64.RawURLEncoding.EncodeToString(buf), nil
	}
	return hex.EncodeToString(buf), nil
}

func (c *pbkdf2Codec) Hash(plaintext string) (string, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	key := c.derive(plaintext, salt)

	return hex.EncodeToString(salt) + hex.EncodeToString(key), nil
}

func (c *pbkdf2Codec) Verify(stored, candidate string) bool {
	if len(stored) != 2*(SaltLength+KeyLength) {
		return false
	}

	salt, err := hex.DecodeString(stored[:2*SaltLength])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(stored[2*SaltLength:])
	if err != nil {
		return false
	}

	got := c.derive(candidate, salt)

	return subtle.ConstantTimeCompare(got, want) == 1
}

func (c *pbkdf2Codec) derive(plaintext string, salt []byte) []byte {
	return pbkdf2.Key([]byte(plaintext), salt, c.iterations, KeyLength, sha256.New)
}
