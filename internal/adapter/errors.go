package adapter

import "errors"

var (
	// ErrDelivery is the root of every mail relay failure.
	ErrDelivery = errors.New("email delivery failed")

	ErrRelayUnauthorized = errors.New("mail relay rejected credentials")
	ErrRelayRejected     = errors.New("mail relay rejected message")
	ErrRelayUnavailable  = errors.New("mail relay unavailable")

	ErrInvalidRelayURL = errors.New("invalid mail relay url")
	ErrNoRecipients    = errors.New("no recipients given")
)
