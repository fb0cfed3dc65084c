package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-contact-keeper/internal/logger"
	"github.com/MKhiriev/go-contact-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var user models.AppUser
	if err := decodeBody(r, &user); err != nil {
		h.writeError(w, r, "*Handler.register", err)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		h.writeError(w, r, "*Handler.register", err)
		return
	}

	logger.FromRequest(r).Info().Str("user_id", registeredUser.UserID).Msg("user registered")
	h.respondWithToken(w, r, "*Handler.register", registeredUser)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var user models.AppUser
	if err := decodeBody(r, &user); err != nil {
		h.writeError(w, r, "*Handler.login", err)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		h.writeError(w, r, "*Handler.login", err)
		return
	}

	logger.FromRequest(r).Debug().Str("user_id", foundUser.UserID).Msg("user successfully logged in")
	h.respondWithToken(w, r, "*Handler.login", foundUser)
}

// respondWithToken issues a token for user, returns it in the Authorization
// header and writes the user as the body.
func (h *Handler) respondWithToken(w http.ResponseWriter, r *http.Request, funcName string, user models.AppUser) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		h.writeError(w, r, funcName, err)
		return
	}

	user.Password = ""
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	h.writeJSON(w, r, funcName, user, http.StatusOK)
}
