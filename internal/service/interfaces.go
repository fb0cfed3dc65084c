package service

import (
	"context"

	"github.com/MKhiriev/go-contact-keeper/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user models.AppUser) (models.AppUser, error)
	Login(ctx context.Context, user models.AppUser) (models.AppUser, error)
	CreateToken(ctx context.Context, user models.AppUser) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string

	// CheckStorage reports whether the database answers.
	CheckStorage(ctx context.Context) error
}

// ContactService manages the contacts of a user. CategoryIDs on create and
// update is the desired membership set and is applied in the same
// transaction as the contact write.
type ContactService interface {
	CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error)
	GetContact(ctx context.Context, userID string, contactID int64) (models.Contact, error)

	// ListContacts lists all contacts of the user, or the members of one
	// category when categoryID is positive.
	ListContacts(ctx context.Context, userID string, categoryID int64) ([]models.Contact, error)

	UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error)
	DeleteContact(ctx context.Context, userID string, contactID int64) error

	SetContactImage(ctx context.Context, userID string, contactID int64, image models.ContactImage) error
	GetContactImage(ctx context.Context, userID string, contactID int64) (models.ContactImage, error)
}

type CategoryService interface {
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)

	// GetCategory returns the category together with its member contacts.
	GetCategory(ctx context.Context, userID string, categoryID int64) (models.Category, error)

	ListCategories(ctx context.Context, userID string) ([]models.Category, error)
	UpdateCategory(ctx context.Context, category models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, userID string, categoryID int64) error
}

// MembershipService maintains the many-to-many relation between contacts and
// categories. Every method is scoped by the caller's user id.
type MembershipService interface {
	// IsMember is false when either side does not resolve for userID.
	IsMember(ctx context.Context, userID string, categoryID, contactID int64) (bool, error)

	AddMembership(ctx context.Context, userID string, categoryID, contactID int64) (models.MembershipResult, error)
	RemoveMembership(ctx context.Context, userID string, categoryID, contactID int64) (models.MembershipResult, error)

	ListCategoriesForContact(ctx context.Context, userID string, contactID int64) ([]models.Category, error)
	ListCategoryIDsForContact(ctx context.Context, userID string, contactID int64) ([]int64, error)
	ListCategoriesForUser(ctx context.Context, userID string) ([]models.Category, error)

	// SyncContactCategories makes the categories of a contact equal to
	// desired, writing only the difference, all in one transaction.
	SyncContactCategories(ctx context.Context, userID string, contactID int64, desired []int64) (models.SyncResult, error)
}

type SearchService interface {
	// SearchContacts matches query case-insensitively against the names,
	// email and phone number of the user's contacts. An empty query
	// returns every contact.
	SearchContacts(ctx context.Context, query, userID string) ([]models.Contact, error)
}

// EmailComposer renders the HTML body of an outgoing email.
type EmailComposer interface {
	ComposeBody(sender models.AppUser, data models.EmailData) (string, error)
}

type EmailService interface {
	EmailContact(ctx context.Context, userID string, contactID int64, req models.EmailRequest) error
	EmailCategory(ctx context.Context, userID string, categoryID int64, req models.EmailRequest) error
}

// ContactServiceWrapper defines middleware composition for ContactService.
// Implementations wrap an existing ContactService to add behavior such as
// validating.
type ContactServiceWrapper interface {
	Wrap(ContactService) ContactService
}

// CategoryServiceWrapper is the [ContactServiceWrapper] counterpart for
// CategoryService.
type CategoryServiceWrapper interface {
	Wrap(CategoryService) CategoryService
}
