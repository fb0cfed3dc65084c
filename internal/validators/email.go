package validators

import (
	"context"

	"github.com/MKhiriev/go-contact-keeper/models"
)

// validateEmailRequest validates the subject and message of an outgoing
// email. Both are required.
func (v *ModelValidator) validateEmailRequest(ctx context.Context, req models.EmailRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSubject, FieldMessage}
	}

	errs := ValidationErrors{}
	for _, f := range fields {
		switch f {
		case FieldSubject:
			checkRequired(errs, FieldSubject, req.Subject, 1, maxSubject)
		case FieldMessage:
			checkRequired(errs, FieldMessage, req.Message, 1, maxMessage)
		default:
			return ErrUnknownField
		}
	}

	return errs.err()
}
