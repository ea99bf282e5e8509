// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_codec_mock.go -package=mock

// PasswordCodec hashes and verifies user credentials and produces random
// secrets. It knows nothing about users or storage.
type PasswordCodec interface {
	// Generate returns a cryptographically secure random token built from
	// length random bytes: hex encoded, or unpadded base64url when urlSafe.
	Generate(length int, urlSafe bool) (string, error)

	// Hash returns a self-contained representation of plaintext (salt and
	// derived key) suitable for a single text column.
	Hash(plaintext string) (string, error)

	// Verify reports whether candidate matches the stored representation.
	// Malformed stored values never match.
	Verify(stored, candidate string) bool
}
