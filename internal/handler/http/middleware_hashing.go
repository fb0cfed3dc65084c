package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/internal/service"
	"github.com/MKhiriev/go-contact-keeper/internal/utils"
)

// hashHeader carries the hex HMAC-SHA256 of the raw request body.
const hashHeader = "HashSHA256"

// withHashCheck verifies the HashSHA256 header against the request body when
// a hash key is configured. Without a key the request passes untouched.
func (h *Handler) withHashCheck(next http.Handler) http.Handler {
	return h.hashCheck(utils.MaxJSONBodyBytes, next)
}

// withImageHashCheck is withHashCheck sized for a multipart image upload.
func (h *Handler) withImageHashCheck(next http.Handler) http.Handler {
	return h.hashCheck(service.MaxImageSize+multipartOverhead, next)
}

// hashCheck hashes at most maxBody bytes of the body. A longer body fails
// the check.
func (h *Handler) hashCheck(maxBody int64, next http.Handler) http.Handler {
	if h.hasher == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		hashFromRequest := r.Header.Get(hashHeader)
		if hashFromRequest == "" {
			h.writeError(w, r, "*Handler.withHashCheck", ErrMissingHash)
			return
		}

		// read bytes from body
		var body []byte
		if r.Body != nil {
			var err error
			body, err = io.ReadAll(io.LimitReader(r.Body, maxBody+1))
			if err != nil {
				h.writeError(w, r, "*Handler.withHashCheck", fmt.Errorf("%w: %w", ErrMalformedBody, err))
				return
			}
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		if !h.hasher.Verify(body, hashFromRequest) {
			log.Debug().Str("func", "*Handler.withHashCheck").Str("hash from request", hashFromRequest).Msg("hashes are not equal")
			h.writeError(w, r, "*Handler.withHashCheck", ErrIntegrityCheckFailed)
			return
		}

		next.ServeHTTP(w, r)
	})
}
