package http

import (
	"net/http"

	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/models"
)

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, "*Handler.listCategories", err)
		return
	}

	categories, err := h.services.MembershipService.ListCategoriesForUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, "*Handler.listCategories", err)
		return
	}

	h.writeJSON(w, r, "*Handler.listCategories", models.NewCategoriesResponse(categories), http.StatusOK)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, "*Handler.createCategory", err)
		return
	}

	var category models.Category
	if err = decodeBody(r, &category); err != nil {
		h.writeError(w, r, "*Handler.createCategory", err)
		return
	}
	category.ID = 0
	category.UserID = userID
	category.Contacts = nil

	created, err := h.services.CategoryService.CreateCategory(r.Context(), category)
	if err != nil {
		h.writeError(w, r, "*Handler.createCategory", err)
		return
	}

	logger.FromRequest(r).Info().Int64("category_id", created.ID).Msg("category created")
	h.writeJSON(w, r, "*Handler.createCategory", created, http.StatusCreated)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, "*Handler.getCategory", err)
		return
	}
	categoryID, err := pathID(r, categoryIDParam)
	if err != nil {
		h.writeError(w, r, "*Handler.getCategory", err)
		return
	}

	category, err := h.services.CategoryService.GetCategory(r.Context(), userID, categoryID)
	if err != nil {
		h.writeError(w, r, "*Handler.getCategory", err)
		return
	}

	h.writeJSON(w, r, "*Handler.getCategory", category, http.StatusOK)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, "*Handler.updateCategory", err)
		return
	}
	categoryID, err := pathID(r, categoryIDParam)
	if err != nil {
		h.writeError(w, r, "*Handler.updateCategory", err)
		return
	}

	var category models.Category
	if err = decodeBody(r, &category); err != nil {
		h.writeError(w, r, "*Handler.updateCategory", err)
		return
	}
	category.ID = categoryID
	category.UserID = userID
	category.Contacts = nil

	updated, err := h.services.CategoryService.UpdateCategory(r.Context(), category)
	if err != nil {
		h.writeError(w, r, "*Handler.updateCategory", err)
		return
	}

	h.writeJSON(w, r, "*Handler.updateCategory", updated, http.StatusOK)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, "*Handler.deleteCategory", err)
		return
	}
	categoryID, err := pathID(r, categoryIDParam)
	if err != nil {
		h.writeError(w, r, "*Handler.deleteCategory", err)
		return
	}

	if err = h.services.CategoryService.DeleteCategory(r.Context(), userID, categoryID); err != nil {
		h.writeError(w, r, "*Handler.deleteCategory", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
