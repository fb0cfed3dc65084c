package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-contact-keeper/internal/validators"
	"github.com/MKhiriev/go-contact-keeper/models"
)

// ContactValidationService normalises and validates input before it reaches
// the wrapped ContactService.
type ContactValidationService struct {
	inner     ContactService
	validator validators.Validator
}

func NewContactValidationService() ContactServiceWrapper {
	return &ContactValidationService{
		validator: validators.NewValidator(),
	}
}

func (v *ContactValidationService) Wrap(wrapped ContactService) ContactService {
	v.inner = wrapped
	return v
}

// normalizeContact trims every text field and moves the birth date to UTC.
func normalizeContact(c models.Contact) models.Contact {
	for _, f := range []*string{
		&c.FirstName, &c.LastName, &c.Address1, &c.Address2, &c.City,
		&c.State, &c.ZipCode, &c.Email, &c.PhoneNumber,
	} {
		*f = strings.TrimSpace(*f)
	}
	if c.BirthDate != nil {
		utc := c.BirthDate.UTC()
		day := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
		c.BirthDate = &day
	}
	return c
}

func (v *ContactValidationService) CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	contact = normalizeContact(contact)
	if err := v.validator.Validate(ctx, contact); err != nil {
		return models.Contact{}, fmt.Errorf("error during contact validation before saving: %w", err)
	}
	return v.inner.CreateContact(ctx, contact)
}

func (v *ContactValidationService) GetContact(ctx context.Context, userID string, contactID int64) (models.Contact, error) {
	if contactID <= 0 {
		return models.Contact{}, ErrInvalidIdentifierID
	}
	return v.inner.GetContact(ctx, userID, contactID)
}

func (v *ContactValidationService) ListContacts(ctx context.Context, userID string, categoryID int64) ([]models.Contact, error) {
	if categoryID < 0 {
		return nil, ErrInvalidIdentifierID
	}
	return v.inner.ListContacts(ctx, userID, categoryID)
}

func (v *ContactValidationService) UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	if contact.ID <= 0 {
		return models.Contact{}, ErrInvalidIdentifierID
	}
	contact = normalizeContact(contact)
	if err := v.validator.Validate(ctx, contact, validators.ContactUpdateFields...); err != nil {
		return models.Contact{}, fmt.Errorf("error during contact validation before update: %w", err)
	}
	return v.inner.UpdateContact(ctx, contact)
}

func (v *ContactValidationService) DeleteContact(ctx context.Context, userID string, contactID int64) error {
	if contactID <= 0 {
		return ErrInvalidIdentifierID
	}
	return v.inner.DeleteContact(ctx, userID, contactID)
}

func (v *ContactValidationService) SetContactImage(ctx context.Context, userID string, contactID int64, image models.ContactImage) error {
	if contactID <= 0 {
		return ErrInvalidIdentifierID
	}
	return v.inner.SetContactImage(ctx, userID, contactID, image)
}

func (v *ContactValidationService) GetContactImage(ctx context.Context, userID string, contactID int64) (models.ContactImage, error) {
	if contactID <= 0 {
		return models.ContactImage{}, ErrInvalidIdentifierID
	}
	return v.inner.GetContactImage(ctx, userID, contactID)
}
