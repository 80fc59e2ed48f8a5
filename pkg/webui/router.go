package webui

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/marmos91/ftpserver/pkg/auth"
	"github.com/marmos91/ftpserver/pkg/metrics"
)

// NewRouter builds the admin API's chi router: unauthenticated health
// and auth routes, then a JWT-protected tree for user/group/mount CRUD.
func NewRouter(store *auth.Store, jwt *JWTService, tokens *TokenDB, autoban AutobanRecorder, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	authHandler := NewAuthHandler(store, jwt, tokens, autoban)
	userHandler := NewUserHandler(store, tokens, jwt)
	groupHandler := NewGroupHandler(store)
	mountHandler := NewMountHandler(store)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(JWTAuth(jwt))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		r.Route("/users/me/password", func(r chi.Router) {
			r.Use(JWTAuth(jwt))
			r.Post("/", userHandler.ChangeOwnPassword)
		})

		r.Group(func(r chi.Router) {
			r.Use(JWTAuth(jwt))

			r.Route("/users", func(r chi.Router) {
				r.Get("/{username}", userHandler.Get)
				r.Get("/{username}/mounts", mountHandler.ListForUser)

				r.Group(func(r chi.Router) {
					r.Use(RequireAdmin())
					r.Get("/", userHandler.List)
					r.Post("/", userHandler.Create)
					r.Put("/{username}", userHandler.Update)
					r.Delete("/{username}", userHandler.Delete)
					r.Post("/{username}/password", userHandler.ResetPassword)
					r.Post("/{username}/mounts", mountHandler.CreateForUser)
					r.Delete("/{username}/mounts/*", mountHandler.DeleteForUser)
				})
			})

			r.Route("/groups", func(r chi.Router) {
				r.Use(RequireAdmin())
				r.Get("/", groupHandler.List)
				r.Post("/", groupHandler.Create)
				r.Get("/{name}", groupHandler.Get)
				r.Put("/{name}", groupHandler.Update)
				r.Delete("/{name}", groupHandler.Delete)

				r.Get("/{name}/members", groupHandler.ListMembers)
				r.Post("/{name}/members", groupHandler.AddMember)
				r.Delete("/{name}/members/{username}", groupHandler.RemoveMember)

				r.Get("/{name}/mounts", mountHandler.ListForGroup)
				r.Post("/{name}/mounts", mountHandler.CreateForGroup)
				r.Delete("/{name}/mounts/*", mountHandler.DeleteForGroup)
			})
		})
	})

	return r
}
