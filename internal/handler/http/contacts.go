package http

import (
	"net/http"

	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/models"
)

func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, "*Handler.listContacts", err)
		return
	}
	categoryID, err := queryID(r, "category_id")
	if err != nil {
		h.writeError(w, r, "*Handler.listContacts", err)
		return
	}

	contacts, err := h.services.ContactService.ListContacts(r.Context(), userID, categoryID)
	if err != nil {
		h.writeError(w, r, "*Handler.listContacts", err)
		return
	}

	h.writeJSON(w, r, "*Handler.listContacts", models.NewContactsResponse(contacts), http.StatusOK)
}

func (h *Handler) searchContacts(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, "*Handler.searchContacts", err)
		return
	}

	contacts, err := h.services.SearchService.SearchContacts(r.Context(), r.URL.Query().Get("q"), userID)
	if err != nil {
		h.writeError(w, r, "*Handler.searchContacts", err)
		return
	}

	h.writeJSON(w, r, "*Handler.searchContacts", models.NewContactsResponse(contacts), http.StatusOK)
}

func (h *Handler) createContact(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, "*Handler.createContact", err)
		return
	}

	var contact models.Contact
	if err = decodeBody(r, &contact); err != nil {
		h.writeError(w, r, "*Handler.createContact", err)
		return
	}
	contact.ID = 0
	contact.UserID = userID

	created, err := h.services.ContactService.CreateContact(r.Context(), contact)
	if err != nil {
		h.writeError(w, r, "*Handler.createContact", err)
		return
	}

	logger.FromRequest(r).Info().Int64("contact_id", created.ID).Msg("contact created")
	h.writeJSON(w, r, "*Handler.createContact", created, http.StatusCreated)
}

func (h *Handler) getContact(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, "*Handler.getContact", err)
		return
	}
	contactID, err := pathID(r, contactIDParam)
	if err != nil {
		h.writeError(w, r, "*Handler.getContact", err)
		return
	}

	contact, err := h.services.ContactService.GetContact(r.Context(), userID, contactID)
	if err != nil {
		h.writeError(w, r, "*Handler.getContact", err)
		return
	}

	h.writeJSON(w, r, "*Handler.getContact", contact, http.StatusOK)
}

func (h *Handler) updateContact(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, "*Handler.updateContact", err)
		return
	}
	contactID, err := pathID(r, contactIDParam)
	if err != nil {
		h.writeError(w, r, "*Handler.updateContact", err)
		return
	}

	var contact models.Contact
	if err = decodeBody(r, &contact); err != nil {
		h.writeError(w, r, "*Handler.updateContact", err)
		return
	}
	contact.ID = contactID
	contact.UserID = userID

	updated, err := h.services.ContactService.UpdateContact(r.Context(), contact)
	if err != nil {
		h.writeError(w, r, "*Handler.updateContact", err)
		return
	}

	h.writeJSON(w, r, "*Handler.updateContact", updated, http.StatusOK)
}

func (h *Handler) deleteContact(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, "*Handler.deleteContact", err)
		return
	}
	contactID, err := pathID(r, contactIDParam)
	if err != nil {
		h.writeError(w, r, "*Handler.deleteContact", err)
		return
	}

	if err = h.services.ContactService.DeleteContact(r.Context(), userID, contactID); err != nil {
		h.writeError(w, r, "*Handler.deleteContact", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listContactCategories(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, "*Handler.listContactCategories", err)
		return
	}
	contactID, err := pathID(r, contactIDParam)
	if err != nil {
		h.writeError(w, r, "*Handler.listContactCategories", err)
		return
	}

	categories, err := h.services.MembershipService.ListCategoriesForContact(r.Context(), userID, contactID)
	if err != nil {
		h.writeError(w, r, "*Handler.listContactCategories", err)
		return
	}

	h.writeJSON(w, r, "*Handler.listContactCategories", models.NewCategoriesResponse(categories), http.StatusOK)
}
