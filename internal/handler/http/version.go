package http

import (
	"net/http"

	"github.com/MKhiriev/go-contact-keeper/internal/logger"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte(serverVersion)); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getServerVersion").Msg("writing version failed")
	}
}

// getHealth answers 204 while the database is reachable.
func (h *Handler) getHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.services.AppInfoService.CheckStorage(r.Context()); err != nil {
		h.writeError(w, r, "*Handler.getHealth", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
