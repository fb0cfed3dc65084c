package models

import "time"

// AppUser is the authenticated principal that exclusively owns a set of
// contacts and categories.
type AppUser struct {
	// UserID is the opaque identifier of the user (UUIDv7 string).
	UserID string `json:"user_id,omitempty"`

	// Email is the unique login of the user.
	Email string `json:"email"`

	// Password is the plain-text password received on registration or login.
	// It is never persisted and never written back to clients.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored in the database.
	PasswordHash string `json:"-"`

	// FirstName and LastName are required, 2..50 characters each.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// CreatedAt is the moment the account was registered (UTC).
	CreatedAt time.Time `json:"created_at"`
}

// FullName returns "First Last".
func (u AppUser) FullName() string {
	return u.FirstName + " " + u.LastName
}

// TableName returns the name of the database table
// associated with the AppUser model.
func (u AppUser) TableName() string {
	return "users"
}
