package http

import (
	"net/http"

	"github.com/MKhiriev/go-contact-keeper/models"
)

func (h *Handler) emailContact(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, "*Handler.emailContact", err)
		return
	}
	contactID, err := pathID(r, contactIDParam)
	if err != nil {
		h.writeError(w, r, "*Handler.emailContact", err)
		return
	}

	var req models.EmailRequest
	if err = decodeBody(r, &req); err != nil {
		h.writeError(w, r, "*Handler.emailContact", err)
		return
	}

	if err = h.services.EmailService.EmailContact(r.Context(), userID, contactID, req); err != nil {
		h.writeError(w, r, "*Handler.emailContact", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) emailCategory(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, "*Handler.emailCategory", err)
		return
	}
	categoryID, err := pathID(r, categoryIDParam)
	if err != nil {
		h.writeError(w, r, "*Handler.emailCategory", err)
		return
	}

	var req models.EmailRequest
	if err = decodeBody(r, &req); err != nil {
		h.writeError(w, r, "*Handler.emailCategory", err)
		return
	}

	if err = h.services.EmailService.EmailCategory(r.Context(), userID, categoryID, req); err != nil {
		h.writeError(w, r, "*Handler.emailCategory", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
