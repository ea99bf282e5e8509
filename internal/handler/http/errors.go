// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidRequestBody is returned when a JSON body cannot be decoded.
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrInvalidRequestForm is returned when a form body cannot be parsed or
	// lacks a required field.
	ErrInvalidRequestForm = errors.New("invalid request form")

	// ErrInvalidID is returned when an {id} path parameter is not a positive
	// integer.
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidQuery is returned for malformed query parameters.
	ErrInvalidQuery = errors.New("invalid query parameter")

	// ErrRouteNotFound is written for unknown routes and unsupported methods.
	ErrRouteNotFound = errors.New("route not found")

	// ErrNoUserInContext means a protected handler ran without the auth
	// middleware in front of it.
	ErrNoUserInContext = errors.New("no authenticated user in context")
)
