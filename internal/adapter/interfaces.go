// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for the external systems the contact
// keeper talks to.
//
// The only one today is [EmailSender], implemented over the HTTP API of a
// mail relay ([NewMailRelaySender]). Relay failures of any kind are reported
// wrapped in [ErrDelivery] so callers can tell a delivery problem apart from
// their own errors with [errors.Is].
package adapter

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/email_sender_mock.go -package=mock

// EmailSender delivers a rendered HTML message.
type EmailSender interface {
	// Send delivers body to recipients, a ";"-joined list of addresses.
	// Returns an error wrapping ErrDelivery when the relay cannot be reached
	// or does not accept the message.
	Send(ctx context.Context, recipients, subject, body string) error
}
