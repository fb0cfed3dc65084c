package models

// ContactsResponse wraps a contact listing.
type ContactsResponse struct {
	Contacts []Contact `json:"contacts"`

	// Length is the total number of entries in Contacts.
	Length int `json:"length"`
}

// NewContactsResponse builds a [ContactsResponse], never emitting a null
// list.
func NewContactsResponse(contacts []Contact) ContactsResponse {
	if contacts == nil {
		contacts = []Contact{}
	}
	return ContactsResponse{Contacts: contacts, Length: len(contacts)}
}

// CategoriesResponse wraps a category listing.
type CategoriesResponse struct {
	Categories []Category `json:"categories"`
	Length     int        `json:"length"`
}

// NewCategoriesResponse builds a [CategoriesResponse], never emitting a null
// list.
func NewCategoriesResponse(categories []Category) CategoriesResponse {
	if categories == nil {
		categories = []Category{}
	}
	return CategoriesResponse{Categories: categories, Length: len(categories)}
}

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`

	// Fields carries per-field validation messages, keyed by JSON field name.
	Fields map[string]string `json:"errors,omitempty"`
}
