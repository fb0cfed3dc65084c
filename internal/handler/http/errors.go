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

	// ErrUnauthenticated is returned when a protected handler runs without a
	// user id in the request context.
	ErrUnauthenticated = errors.New("request is not authenticated")

	// ErrMalformedBody wraps JSON and multipart decoding failures.
	ErrMalformedBody = errors.New("malformed request body")

	// ErrInvalidPathParam is returned for a non-numeric or non-positive id in
	// the URL path.
	ErrInvalidPathParam = errors.New("invalid path parameter")

	// ErrInvalidQueryParam is returned for an unparsable query parameter.
	ErrInvalidQueryParam = errors.New("invalid query parameter")

	// ErrMissingImage is returned when an upload has no "image" form file.
	ErrMissingImage = errors.New("multipart field `image` is missing")

	// ErrMembershipSideNotFound is returned when the contact or the category
	// of a membership route does not exist for the user.
	ErrMembershipSideNotFound = errors.New("contact or category was not found")

	// ErrMissingHash is returned when integrity checking is enabled and the
	// request carries no HashSHA256 header.
	ErrMissingHash = errors.New("missing `HashSHA256` header")

	// ErrIntegrityCheckFailed is returned when the HashSHA256 header does not
	// match the request body.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")
)
