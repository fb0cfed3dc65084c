package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-contact-keeper/internal/adapter"
	"github.com/MKhiriev/go-contact-keeper/internal/validators"
)

var (
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrVersionIsNotSpecified   = errors.New("application version is not specified")

	// ErrDelivery reports that the mail relay did not take the message.
	ErrDelivery = adapter.ErrDelivery

	// ErrMailNotConfigured is returned by the email operations when no mail
	// relay is configured.
	ErrMailNotConfigured = errors.New("email delivery is not configured")

	ErrNoRecipients        = fmt.Errorf("%w: no member with an email address", validators.ErrValidation)
	ErrContactHasNoEmail   = fmt.Errorf("%w: contact has no email address", validators.ErrValidation)
	ErrImageTooLarge       = fmt.Errorf("%w: image exceeds %d bytes", validators.ErrValidation, MaxImageSize)
	ErrImageEmpty          = fmt.Errorf("%w: image is empty", validators.ErrValidation)
	ErrUnsupportedImage    = fmt.Errorf("%w: only image content types are accepted", validators.ErrValidation)
	ErrInvalidIdentifierID = fmt.Errorf("%w: ids must be positive", validators.ErrValidation)
)
