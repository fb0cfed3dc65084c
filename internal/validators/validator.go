package validators

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-contact-keeper/models"
	"github.com/badoux/checkmail"
)

// Field name constants used to specify which fields should be validated.
// They match the JSON names of the request bodies, so the keys of a
// [ValidationErrors] value can be shown next to the submitted inputs.
const (
	FieldUserID      = "user_id"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldBirthDate   = "birth_date"
	FieldAddress1    = "address1"
	FieldAddress2    = "address2"
	FieldCity        = "city"
	FieldState       = "state"
	FieldZipCode     = "zip_code"
	FieldPhoneNumber = "phone_number"
	FieldCategoryIDs = "category_ids"
	FieldName        = "name"
	FieldVersion     = "version"
	FieldSubject     = "subject"
	FieldMessage     = "message"
)

const (
	minPasswordLength = 8

	maxPersonName  = 50
	maxAddressLine = 100
	maxCity        = 50
	maxState       = 50
	maxZipCode     = 10
	maxEmailLength = 254
	maxCategory    = 100
	maxSubject     = 200
	maxMessage     = 10000
)

var phonePattern = regexp.MustCompile(`^\+?[0-9 ().-]{3,20}$`)

// ModelValidator implements [Validator] for the contact keeper models:
// AppUser, Contact, Category and EmailRequest.
//
// It accepts both value and pointer forms of every model and allows
// optional field-level scoping via variadic field name arguments. All
// rejected fields are reported together in a [ValidationErrors] value.
type ModelValidator struct {
	now func() time.Time
}

// NewValidator constructs a new ModelValidator and returns it as the
// Validator interface.
func NewValidator() Validator {
	return &ModelValidator{now: time.Now}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj.
//
// Returns ErrUnsupportedType if obj does not match any known model and
// ErrUnknownField when a requested field does not exist on it.
func (v *ModelValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.AppUser:
		return v.validateUser(ctx, value, fields...)
	case *models.AppUser:
		return v.validateUser(ctx, *value, fields...)

	case models.Contact:
		return v.validateContact(ctx, value, fields...)
	case *models.Contact:
		return v.validateContact(ctx, *value, fields...)

	case models.Category:
		return v.validateCategory(ctx, value, fields...)
	case *models.Category:
		return v.validateCategory(ctx, *value, fields...)

	case models.EmailRequest:
		return v.validateEmailRequest(ctx, value, fields...)
	case *models.EmailRequest:
		return v.validateEmailRequest(ctx, *value, fields...)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

// checkRequired records msgRequired when the trimmed value is empty and a
// length message when it exceeds maxLen runes. It reports whether the
// value is present.
func checkRequired(errs ValidationErrors, field, value string, minLen, maxLen int) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		errs.add(field, msgRequired)
		return false
	}
	checkLength(errs, field, value, minLen, maxLen)
	return true
}

// checkLength validates the rune length of an optional value.
func checkLength(errs ValidationErrors, field, value string, minLen, maxLen int) {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n == 0 {
		return
	}
	if n < minLen || n > maxLen {
		if minLen <= 1 {
			errs.add(field, fmt.Sprintf("must be at most %d characters", maxLen))
			return
		}
		errs.add(field, fmt.Sprintf("must be between %d and %d characters", minLen, maxLen))
	}
}

// checkEmail validates an address format with checkmail. Empty values are
// left to the caller.
func checkEmail(errs ValidationErrors, field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if len(value) > maxEmailLength || checkmail.ValidateFormat(value) != nil {
		errs.add(field, msgInvalidEmail)
	}
}
