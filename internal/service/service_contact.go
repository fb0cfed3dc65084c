package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/internal/store"
	"github.com/MKhiriev/go-contact-keeper/models"
)

// MaxImageSize is the largest accepted contact photo.
const MaxImageSize = 5 << 20

type contactService struct {
	repos *store.Repositories
	tx    store.Transactor

	logger *logger.Logger
}

func NewContactService(repos *store.Repositories, tx store.Transactor, logger *logger.Logger) ContactService {
	return &contactService{repos: repos, tx: tx, logger: logger}
}

// CreateContact stores contact and links it to contact.CategoryIDs in one
// transaction. The returned contact carries the linked category ids.
func (c *contactService) CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	log := logger.FromContext(ctx)

	var created models.Contact
	err := c.tx.InTx(ctx, func(ctx context.Context, repos *store.Repositories) error {
		var err error
		created, err = repos.Contacts.CreateContact(ctx, contact)
		if err != nil {
			return fmt.Errorf("creating contact failed: %w", err)
		}

		if _, err = syncContactCategories(ctx, repos, created.UserID, created.ID, contact.CategoryIDs); err != nil {
			return err
		}
		created.CategoryIDs = uniqueSorted(contact.CategoryIDs)
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*contactService.CreateContact").Msg("contact creation failed")
		return models.Contact{}, err
	}

	log.Debug().Str("func", "*contactService.CreateContact").Int64("contact_id", created.ID).Msg("contact created")
	return created, nil
}

// GetContact returns the contact with its current category ids.
func (c *contactService) GetContact(ctx context.Context, userID string, contactID int64) (models.Contact, error) {
	contact, err := c.repos.Contacts.GetContact(ctx, userID, contactID)
	if err != nil {
		return models.Contact{}, fmt.Errorf("getting contact failed: %w", err)
	}

	ids, err := c.repos.Memberships.ListCategoryIDsForContact(ctx, userID, contactID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*contactService.GetContact").Msg("listing category ids failed")
		return models.Contact{}, fmt.Errorf("listing category ids failed: %w", err)
	}
	contact.CategoryIDs = ids

	return contact, nil
}

func (c *contactService) ListContacts(ctx context.Context, userID string, categoryID int64) ([]models.Contact, error) {
	if categoryID > 0 {
		if _, err := c.repos.Categories.GetCategory(ctx, userID, categoryID); err != nil {
			return nil, fmt.Errorf("category lookup failed: %w", err)
		}
	}

	contacts, err := c.repos.Contacts.ListContacts(ctx, models.ContactFilter{UserID: userID, CategoryID: categoryID})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*contactService.ListContacts").Msg("listing contacts failed")
		return nil, fmt.Errorf("listing contacts failed: %w", err)
	}
	return contacts, nil
}

// UpdateContact writes the contact fields guarded by contact.Version and
// makes its categories equal to contact.CategoryIDs, both in one
// transaction. A nil CategoryIDs clears every membership.
func (c *contactService) UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	log := logger.FromContext(ctx)

	var updated models.Contact
	err := c.tx.InTx(ctx, func(ctx context.Context, repos *store.Repositories) error {
		var err error
		updated, err = repos.Contacts.UpdateContact(ctx, contact)
		if err != nil {
			return fmt.Errorf("updating contact failed: %w", err)
		}

		if _, err = syncContactCategories(ctx, repos, contact.UserID, contact.ID, contact.CategoryIDs); err != nil {
			return err
		}
		updated.CategoryIDs = uniqueSorted(contact.CategoryIDs)
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*contactService.UpdateContact").Int64("contact_id", contact.ID).Msg("contact update failed")
		return models.Contact{}, err
	}

	return updated, nil
}

func (c *contactService) DeleteContact(ctx context.Context, userID string, contactID int64) error {
	if err := c.repos.Contacts.DeleteContact(ctx, userID, contactID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*contactService.DeleteContact").Int64("contact_id", contactID).Msg("contact deletion failed")
		return fmt.Errorf("deleting contact failed: %w", err)
	}
	return nil
}

// SetContactImage replaces the photo of a contact. Only image/* content
// types of at most MaxImageSize bytes are accepted.
func (c *contactService) SetContactImage(ctx context.Context, userID string, contactID int64, image models.ContactImage) error {
	switch {
	case len(image.Data) == 0:
		return ErrImageEmpty
	case len(image.Data) > MaxImageSize:
		return ErrImageTooLarge
	case !strings.HasPrefix(image.ContentType, "image/"):
		return ErrUnsupportedImage
	}

	if err := c.repos.Contacts.SetContactImage(ctx, userID, contactID, image); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*contactService.SetContactImage").Int64("contact_id", contactID).Msg("storing image failed")
		return fmt.Errorf("storing contact image failed: %w", err)
	}
	return nil
}

func (c *contactService) GetContactImage(ctx context.Context, userID string, contactID int64) (models.ContactImage, error) {
	image, err := c.repos.Contacts.GetContactImage(ctx, userID, contactID)
	if err != nil {
		return models.ContactImage{}, fmt.Errorf("loading contact image failed: %w", err)
	}
	return image, nil
}
