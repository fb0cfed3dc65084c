package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-contact-keeper/models"
)

// validateUser validates an AppUser.
//
// Default validated fields (registration): Email, Password, FirstName,
// LastName. Login validates Email and Password only.
func (v *ModelValidator) validateUser(ctx context.Context, user models.AppUser, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword, FieldFirstName, FieldLastName}
	}

	errs := ValidationErrors{}
	for _, f := range fields {
		switch f {
		case FieldUserID:
			if strings.TrimSpace(user.UserID) == "" {
				errs.add(FieldUserID, msgRequired)
			}
		case FieldEmail:
			if checkRequired(errs, FieldEmail, user.Email, 1, maxEmailLength) {
				checkEmail(errs, FieldEmail, user.Email)
			}
		case FieldPassword:
			if user.Password == "" {
				errs.add(FieldPassword, msgRequired)
			} else if utf8.RuneCountInString(user.Password) < minPasswordLength {
				errs.add(FieldPassword, msgPasswordShort)
			}
		case FieldFirstName:
			checkRequired(errs, FieldFirstName, user.FirstName, 2, maxPersonName)
		case FieldLastName:
			checkRequired(errs, FieldLastName, user.LastName, 2, maxPersonName)
		default:
			return ErrUnknownField
		}
	}

	return errs.err()
}
