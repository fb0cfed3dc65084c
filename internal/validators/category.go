package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-contact-keeper/models"
)

// validateCategory validates a Category.
//
// Default validated fields: UserID, Name. Renames add FieldVersion.
func (v *ModelValidator) validateCategory(ctx context.Context, category models.Category, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldName}
	}

	errs := ValidationErrors{}
	for _, f := range fields {
		switch f {
		case FieldUserID:
			if strings.TrimSpace(category.UserID) == "" {
				errs.add(FieldUserID, msgRequired)
			}
		case FieldName:
			checkRequired(errs, FieldName, category.Name, 1, maxCategory)
		case FieldVersion:
			if category.Version <= 0 {
				errs.add(FieldVersion, msgInvalidVer)
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.err()
}
