package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/go-contact-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Querier is the subset of *sql.DB and *sql.Tx used by repositories, so the
// same repository code runs inside and outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UserRepository persists application user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.AppUser) (models.AppUser, error)
	FindUserByEmail(ctx context.Context, email string) (models.AppUser, error)
	FindUserByID(ctx context.Context, userID string) (models.AppUser, error)
}

// ContactRepository persists contacts. Every method is scoped by the owning
// user id; rows of other owners behave as missing.
type ContactRepository interface {
	CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error)
	GetContact(ctx context.Context, userID string, contactID int64) (models.Contact, error)
	ListContacts(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error)
	UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error)
	DeleteContact(ctx context.Context, userID string, contactID int64) error
	SetContactImage(ctx context.Context, userID string, contactID int64, image models.ContactImage) error
	GetContactImage(ctx context.Context, userID string, contactID int64) (models.ContactImage, error)
}

// CategoryRepository persists categories, scoped by owner like
// [ContactRepository].
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)
	GetCategory(ctx context.Context, userID string, categoryID int64) (models.Category, error)
	ListCategories(ctx context.Context, userID string) ([]models.Category, error)
	UpdateCategory(ctx context.Context, category models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, userID string, categoryID int64) error

	// ListOwnedCategoryIDs returns the subset of ids owned by userID.
	ListOwnedCategoryIDs(ctx context.Context, userID string, ids []int64) ([]int64, error)
}

// MembershipRepository persists contact <-> category edges. Inserts only
// ever link a contact and a category owned by the same user.
type MembershipRepository interface {
	IsMember(ctx context.Context, userID string, categoryID, contactID int64) (bool, error)

	// AddMembership reports whether a new edge was written. False means the
	// edge already existed or one of the sides does not resolve for userID.
	AddMembership(ctx context.Context, userID string, categoryID, contactID int64) (bool, error)

	// RemoveMembership reports whether an edge was deleted.
	RemoveMembership(ctx context.Context, userID string, categoryID, contactID int64) (bool, error)

	ListCategoriesForContact(ctx context.Context, userID string, contactID int64) ([]models.Category, error)
	ListCategoryIDsForContact(ctx context.Context, userID string, contactID int64) ([]int64, error)
}

// Transactor runs a unit of work inside a single database transaction.
//
// fn receives repositories bound to the transaction. The transaction is
// committed when fn returns nil and rolled back when it returns an error or
// panics.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error
}

// ErrorClassificator maps driver specific errors to storage level meaning.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
	IsForeignKeyViolation(err error) bool
}
