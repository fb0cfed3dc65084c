package models

import "time"

// Category is a named group of contacts owned by a single [AppUser].
type Category struct {
	ID     int64  `json:"id"`
	UserID string `json:"-"`
	Name   string `json:"name"`

	// Version is the optimistic-locking counter, see [Contact.Version].
	Version int64 `json:"version"`

	CreatedAt time.Time `json:"created_at"`

	// Contacts holds the member contacts when the category is read
	// together with its members.
	Contacts []Contact `json:"contacts,omitempty"`
}

// TableName returns the name of the database table
// associated with the Category model.
func (c Category) TableName() string {
	return "categories"
}
