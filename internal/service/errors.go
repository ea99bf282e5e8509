// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// Unauthenticated
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// Forbidden
	ErrUserNotActivated     = errors.New("account is not activated")
	ErrUserBanned           = errors.New("account is banned")
	ErrAdminRequired        = errors.New("administrator privileges required")
	ErrProtectedUser        = errors.New("the default administrator cannot be deleted")
	ErrProtectedGroup       = errors.New("built-in groups cannot be deleted")
	ErrRegistrationDisabled = errors.New("registration is disabled")

	ErrCaptchaFailed      = errors.New("captcha verification failed")
	ErrCaptchaUnavailable = errors.New("captcha provider unavailable")

	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrSigningKeyIsEmpty     = errors.New("signing key is empty")
	ErrVersionIsNotSpecified = errors.New("version is not specified")
)
