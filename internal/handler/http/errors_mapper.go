package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/internal/service"
	"github.com/MKhiriev/go-contact-keeper/internal/store"
	"github.com/MKhiriev/go-contact-keeper/internal/utils"
	"github.com/MKhiriev/go-contact-keeper/internal/validators"
	"github.com/MKhiriev/go-contact-keeper/models"
)

type errorStatus struct {
	target error
	status int
}

// errorStatuses is checked in order, the first match wins.
var errorStatuses = []errorStatus{
	{ErrMalformedBody, http.StatusBadRequest},
	{ErrInvalidPathParam, http.StatusBadRequest},
	{ErrInvalidQueryParam, http.StatusBadRequest},
	{ErrMissingImage, http.StatusBadRequest},
	{ErrMissingHash, http.StatusBadRequest},
	{ErrIntegrityCheckFailed, http.StatusBadRequest},
	{validators.ErrValidation, http.StatusBadRequest},

	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{ErrUnauthenticated, http.StatusUnauthorized},
	{utils.ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},

	{ErrMembershipSideNotFound, http.StatusNotFound},
	{store.ErrUserNotFound, http.StatusNotFound},
	{store.ErrContactNotFound, http.StatusNotFound},
	{store.ErrCategoryNotFound, http.StatusNotFound},
	{store.ErrImageNotFound, http.StatusNotFound},

	{store.ErrEmailAlreadyExists, http.StatusConflict},
	{store.ErrVersionConflict, http.StatusConflict},

	{service.ErrDelivery, http.StatusBadGateway},

	{service.ErrMailNotConfigured, http.StatusServiceUnavailable},
	{store.ErrStorageUnavailable, http.StatusServiceUnavailable},
	{context.DeadlineExceeded, http.StatusServiceUnavailable},
}

// classifyError returns the response status for err together with the
// sentinel it matched. The sentinel is nil for unclassified errors.
func classifyError(err error) (int, error) {
	for _, es := range errorStatuses {
		if errors.Is(err, es.target) {
			return es.status, es.target
		}
	}
	return http.StatusInternalServerError, nil
}

func statusFromError(err error) int {
	status, _ := classifyError(err)
	return status
}

// errorResponse builds the public body for err. Server-side failures never
// leak their cause, client errors are described by the matched sentinel.
func errorResponse(err error) (int, models.ErrorResponse) {
	status, target := classifyError(err)

	switch {
	case target == nil:
		return status, models.ErrorResponse{Error: http.StatusText(status)}
	case target == validators.ErrValidation:
		if fields := validators.Fields(err); len(fields) > 0 {
			return status, models.ErrorResponse{Error: target.Error(), Fields: fields}
		}
		// sentinels built on ErrValidation carry their own reason
		return status, models.ErrorResponse{Error: err.Error()}
	case target == store.ErrCategoryNotFound && status == http.StatusNotFound:
		// keeps the list of unknown ids reported by a category sync
		return status, models.ErrorResponse{Error: err.Error()}
	default:
		return status, models.ErrorResponse{Error: target.Error()}
	}
}

// writeError logs err and writes it as a JSON [models.ErrorResponse].
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	log := logger.FromRequest(r)
	status, body := errorResponse(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	}

	if _, werr := utils.WriteJSON(w, body, status); werr != nil {
		log.Err(werr).Str("func", funcName).Msg("writing error response failed")
	}
}

// writeJSON writes data and logs a failed write.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, funcName string, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Str("func", funcName).Msg("writing response failed")
	}
}
