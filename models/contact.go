package models

import (
	"strings"
	"time"
)

// Contact is a person record owned by a single [AppUser].
type Contact struct {
	// ID is the server-assigned primary key.
	ID int64 `json:"id"`

	// UserID is the owner of the contact. It is resolved from the
	// authenticated request and never accepted from the request body.
	UserID string `json:"-"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// BirthDate is optional and always stored as UTC.
	BirthDate *time.Time `json:"birth_date,omitempty"`

	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`

	// CreatedAt is set by the server on creation (UTC).
	CreatedAt time.Time `json:"created_at"`

	// Version is the optimistic-locking counter. A new contact starts at 1,
	// every successful update increments it. Updates must carry the version
	// the client last read.
	Version int64 `json:"version"`

	// ImageType is the content type of the stored photo, empty when the
	// contact has no photo. The photo bytes are served separately.
	ImageType string `json:"image_type,omitempty"`

	// CategoryIDs is the set of categories the contact belongs to. On
	// create/update it is the desired set; on read it is the current set.
	CategoryIDs []int64 `json:"category_ids"`
}

// HasImage reports whether a photo is stored for the contact.
func (c Contact) HasImage() bool {
	return c.ImageType != ""
}

// FullName returns "First Last" with surrounding spaces trimmed.
func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// TableName returns the name of the database table
// associated with the Contact model.
func (c Contact) TableName() string {
	return "contacts"
}

// ContactImage is the photo payload of a contact.
type ContactImage struct {
	Data        []byte
	ContentType string
}

// ContactFilter narrows a contact listing. UserID is mandatory.
type ContactFilter struct {
	UserID string

	// CategoryID restricts the listing to members of one category. Zero
	// means all contacts of the user.
	CategoryID int64

	// Query is a case-insensitive substring matched against first name,
	// last name, full name, email and phone number (OR semantics).
	// Empty means no text filter.
	Query string
}
