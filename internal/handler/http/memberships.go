// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-contact-keeper/models"
)

// membershipParams reads the user, category and contact of a membership
// route.
func membershipParams(r *http.Request) (userID string, categoryID, contactID int64, err error) {
	if userID, err = userIDFromRequest(r); err != nil {
		return "", 0, 0, err
	}
	if categoryID, err = pathID(r, categoryIDParam); err != nil {
		return "", 0, 0, err
	}
	if contactID, err = pathID(r, contactIDParam); err != nil {
		return "", 0, 0, err
	}
	return userID, categoryID, contactID, nil
}

// addMembership answers 200 both for a new edge and an existing one; the
// body tells them apart.
func (h *Handler) addMembership(w http.ResponseWriter, r *http.Request) {
	userID, categoryID, contactID, err := membershipParams(r)
	if err != nil {
		h.writeError(w, r, "*Handler.addMembership", err)
		return
	}

	result, err := h.services.MembershipService.AddMembership(r.Context(), userID, categoryID, contactID)
	if err != nil {
		h.writeError(w, r, "*Handler.addMembership", err)
		return
	}
	h.writeMembershipResult(w, r, "*Handler.addMembership", categoryID, contactID, result)
}

func (h *Handler) removeMembership(w http.ResponseWriter, r *http.Request) {
	userID, categoryID, contactID, err := membershipParams(r)
	if err != nil {
		h.writeError(w, r, "*Handler.removeMembership", err)
		return
	}

	result, err := h.services.MembershipService.RemoveMembership(r.Context(), userID, categoryID, contactID)
	if err != nil {
		h.writeError(w, r, "*Handler.removeMembership", err)
		return
	}
	h.writeMembershipResult(w, r, "*Handler.removeMembership", categoryID, contactID, result)
}

func (h *Handler) writeMembershipResult(w http.ResponseWriter, r *http.Request, funcName string, categoryID, contactID int64, result models.MembershipResult) {
	if result == models.MembershipNotFound {
		h.writeError(w, r, funcName, ErrMembershipSideNotFound)
		return
	}

	h.writeJSON(w, r, funcName, models.MembershipResponse{
		CategoryID: categoryID,
		ContactID:  contactID,
		Result:     result,
	}, http.StatusOK)
}
