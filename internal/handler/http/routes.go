package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.With(h.withHashCheck).Post("/api/user/register", h.register)
		r.With(h.withHashCheck).Post("/api/user/login", h.login)
		r.Get("/api/version/", h.getServerVersion)
		r.Get("/api/health", h.getHealth)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/contacts", func(r chi.Router) {
			r.Get("/", h.listContacts)
			r.Get("/search", h.searchContacts)
			r.With(h.withHashCheck).Post("/", h.createContact)

			r.Route("/{contactID}", func(r chi.Router) {
				r.Get("/", h.getContact)
				r.With(h.withHashCheck).Put("/", h.updateContact)
				r.Delete("/", h.deleteContact)
				r.With(h.withImageHashCheck).Put("/image", h.uploadContactImage)
				r.Get("/image", h.downloadContactImage)
				r.Get("/categories", h.listContactCategories)
				r.With(h.withHashCheck).Post("/email", h.emailContact)
			})
		})

		r.Route("/api/categories", func(r chi.Router) {
			r.Get("/", h.listCategories)
			r.With(h.withHashCheck).Post("/", h.createCategory)

			r.Route("/{categoryID}", func(r chi.Router) {
				r.Get("/", h.getCategory)
				r.With(h.withHashCheck).Put("/", h.updateCategory)
				r.Delete("/", h.deleteCategory)
				r.With(h.withHashCheck).Put("/contacts/{contactID}", h.addMembership)
				r.Delete("/contacts/{contactID}", h.removeMembership)
				r.With(h.withHashCheck).Post("/email", h.emailCategory)
			})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) { writeNotFound(w) })
	router.MethodNotAllowed(CheckHTTPMethod)

	return router
}
