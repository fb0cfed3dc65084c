package validators

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrValidation is matched by every [ValidationErrors] value, so callers
	// can test for a validation failure with errors.Is.
	ErrValidation = errors.New("validation failed")

	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// Field level messages.
const (
	msgRequired      = "is required"
	msgInvalidEmail  = "must be a valid email address"
	msgInvalidPhone  = "must be a valid phone number"
	msgInFuture      = "must not be in the future"
	msgInvalidID     = "must contain positive ids"
	msgInvalidVer    = "must be a positive version"
	msgPasswordShort = "must be at least 8 characters"
)

// ValidationErrors maps a JSON field name to the reason it was rejected.
type ValidationErrors map[string]string

// Error renders the field messages sorted by field name.
func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}

	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is reports whether target is [ErrValidation].
func (e ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// add records the first message for field.
func (e ValidationErrors) add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// err returns nil when nothing was recorded.
func (e ValidationErrors) err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Fields extracts the field messages carried by err, or nil when err is not
// a validation failure with per-field details.
func Fields(err error) map[string]string {
	var verr ValidationErrors
	if errors.As(err, &verr) {
		return verr
	}
	return nil
}
