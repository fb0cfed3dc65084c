// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-contact-keeper/internal/utils"
	"github.com/MKhiriev/go-contact-keeper/models"
)

// CheckHTTPMethod is intended to be registered as the router's
// MethodNotAllowed handler via [chi.Mux.MethodNotAllowed].
//
// Chi's default behaviour is to respond with HTTP 405 Method Not Allowed
// whenever a request path matches a registered route but the HTTP method
// is not handled. CheckHTTPMethod answers HTTP 404 Not Found with a JSON
// [models.ErrorResponse] instead, so a caller using an unsupported method
// cannot tell the route exists.
//
// Chi only invokes this handler after the path matched and the method did
// not, so it never forwards the request back into the router.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod)
func CheckHTTPMethod(w http.ResponseWriter, _ *http.Request) {
	writeNotFound(w)
}

// writeNotFound writes the JSON body used for unknown routes.
func writeNotFound(w http.ResponseWriter) {
	utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusNotFound)}, http.StatusNotFound)
}
