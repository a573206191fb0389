package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)

	// account routes: registration, login and logout stay open, everything
	// else under the same prefix requires a session
	router.Route("/api/user", func(r chi.Router) {
		r.Post("/", h.register)
		r.Post("/login", h.login)
		r.Get("/logout", h.logout)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.With(h.adminOnly).Get("/", h.listUsers)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getProfile)
				r.Patch("/name", h.editName)
				r.Patch("/email", h.editEmail)
				r.Patch("/phone", h.editPhone)
				r.Patch("/password", h.editPassword)
				r.Put("/items", h.updateSelection)
				r.Get("/history", h.getHistory)
				r.With(h.adminOnly).Delete("/", h.deleteUser)
			})
		})
	})

	// authenticated routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/item", func(r chi.Router) {
			r.Get("/", h.listCategories)
			r.Get("/items", h.listItems)
			r.With(h.adminOnly).Post("/", h.createCategory)

			r.Route("/{category}", func(r chi.Router) {
				r.Get("/", h.getCategory)

				r.Group(func(r chi.Router) {
					r.Use(h.adminOnly)

					r.Patch("/", h.renameCategory)
					r.Delete("/", h.deleteCategory)
					r.Post("/", h.createItem)

					r.Route("/{item}", func(r chi.Router) {
						r.Patch("/name", h.renameItem)
						r.Patch("/image", h.editItemImage)
						r.Patch("/stock", h.setItemStock)
						r.Patch("/move", h.moveItem)
						r.Delete("/", h.deleteItem)
					})
				})
			})
		})

		r.Route("/api/order", func(r chi.Router) {
			r.Post("/claim", h.mintClaim)

			r.Group(func(r chi.Router) {
				r.Use(h.adminOnly)

				r.Get("/inspect", h.inspectClaim)
				r.Post("/", h.redeemClaim)
				r.Get("/", h.listOrders)
				r.Delete("/{id}", h.completeOrder)
				r.Get("/ws", h.ordersSocket)
			})
		})
	})

	return router
}
