package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-contact-keeper/internal/service"
	"github.com/MKhiriev/go-contact-keeper/models"
)

const (
	imageFormField = "image"

	// multipartOverhead is the room left for multipart headers and
	// boundaries on top of service.MaxImageSize.
	multipartOverhead = 64 << 10
)

// uploadContactImage stores the "image" form file of a multipart request.
// The content type is sniffed from the bytes, the client-declared type is
// ignored.
func (h *Handler) uploadContactImage(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, "*Handler.uploadContactImage", err)
		return
	}
	contactID, err := pathID(r, contactIDParam)
	if err != nil {
		h.writeError(w, r, "*Handler.uploadContactImage", err)
		return
	}

	image, err := readImage(w, r)
	if err != nil {
		h.writeError(w, r, "*Handler.uploadContactImage", err)
		return
	}

	if err = h.services.ContactService.SetContactImage(r.Context(), userID, contactID, image); err != nil {
		h.writeError(w, r, "*Handler.uploadContactImage", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// readImage extracts the image form file, reading at most one byte past
// service.MaxImageSize so an oversized upload is still detected.
func readImage(w http.ResponseWriter, r *http.Request) (models.ContactImage, error) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxImageSize+multipartOverhead)

	file, _, err := r.FormFile(imageFormField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			return models.ContactImage{}, service.ErrImageTooLarge
		case errors.Is(err, http.ErrMissingFile):
			return models.ContactImage{}, ErrMissingImage
		default:
			return models.ContactImage{}, fmt.Errorf("%w: %w", ErrMalformedBody, err)
		}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageSize+1))
	if err != nil {
		return models.ContactImage{}, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	return models.ContactImage{Data: data, ContentType: http.DetectContentType(data)}, nil
}

func (h *Handler) downloadContactImage(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, "*Handler.downloadContactImage", err)
		return
	}
	contactID, err := pathID(r, contactIDParam)
	if err != nil {
		h.writeError(w, r, "*Handler.downloadContactImage", err)
		return
	}

	image, err := h.services.ContactService.GetContactImage(r.Context(), userID, contactID)
	if err != nil {
		h.writeError(w, r, "*Handler.downloadContactImage", err)
		return
	}

	w.Header().Set("Content-Type", image.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(image.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(image.Data)
}
