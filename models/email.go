package models

// EmailRequest is the user input for emailing a contact or a category.
type EmailRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// EmailData is the structured content handed to the body composer.
type EmailData struct {
	Subject string

	// Message is the user-written text. It is sanitized before it is
	// placed into the body.
	Message string

	// Recipients are the individual addresses the message goes to.
	Recipients []string

	// GroupName is set when a whole category is emailed.
	GroupName string

	// ContactName is set when a single contact is emailed.
	ContactName string
}
