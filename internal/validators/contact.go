package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-contact-keeper/models"
)

// contactFields is the default field set of a contact create.
var contactFields = []string{
	FieldUserID, FieldFirstName, FieldLastName, FieldBirthDate,
	FieldAddress1, FieldAddress2, FieldCity, FieldState, FieldZipCode,
	FieldEmail, FieldPhoneNumber, FieldCategoryIDs,
}

// ContactUpdateFields is the field set of a contact update: the create
// fields plus the optimistic-locking version.
var ContactUpdateFields = append(append([]string{}, contactFields...), FieldVersion)

// validateContact validates a Contact.
//
// First and last name are required. Email, phone number and the address
// fields are optional but checked for shape and length when present.
func (v *ModelValidator) validateContact(ctx context.Context, contact models.Contact, fields ...string) error {
	if len(fields) == 0 {
		fields = contactFields
	}

	errs := ValidationErrors{}
	for _, f := range fields {
		switch f {
		case FieldUserID:
			if strings.TrimSpace(contact.UserID) == "" {
				errs.add(FieldUserID, msgRequired)
			}
		case FieldFirstName:
			checkRequired(errs, FieldFirstName, contact.FirstName, 1, maxPersonName)
		case FieldLastName:
			checkRequired(errs, FieldLastName, contact.LastName, 1, maxPersonName)
		case FieldBirthDate:
			if contact.BirthDate != nil && contact.BirthDate.After(v.now()) {
				errs.add(FieldBirthDate, msgInFuture)
			}
		case FieldAddress1:
			checkLength(errs, FieldAddress1, contact.Address1, 1, maxAddressLine)
		case FieldAddress2:
			checkLength(errs, FieldAddress2, contact.Address2, 1, maxAddressLine)
		case FieldCity:
			checkLength(errs, FieldCity, contact.City, 1, maxCity)
		case FieldState:
			checkLength(errs, FieldState, contact.State, 1, maxState)
		case FieldZipCode:
			checkLength(errs, FieldZipCode, contact.ZipCode, 1, maxZipCode)
		case FieldEmail:
			checkEmail(errs, FieldEmail, contact.Email)
		case FieldPhoneNumber:
			if phone := strings.TrimSpace(contact.PhoneNumber); phone != "" && !phonePattern.MatchString(phone) {
				errs.add(FieldPhoneNumber, msgInvalidPhone)
			}
		case FieldCategoryIDs:
			for _, id := range contact.CategoryIDs {
				if id <= 0 {
					errs.add(FieldCategoryIDs, msgInvalidID)
					break
				}
			}
		case FieldVersion:
			if contact.Version <= 0 {
				errs.add(FieldVersion, msgInvalidVer)
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.err()
}
