package httpserver

import (
	"net/http"
	"time"

	"chapter-points-go/internal/config"
	memberdomain "chapter-points-go/internal/domain/member"
	"chapter-points-go/internal/transport/httpserver/handler"
	authmw "chapter-points-go/internal/transport/httpserver/middleware"
	"chapter-points-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, tokens authmw.TokenVerifier, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))

	auth := authmw.NewAuth(tokens, log)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/register", handlers.Auth.Register)
		r.Post("/login", handlers.Auth.Login)
		r.Post("/auth/forgot-password", handlers.Auth.ForgotPassword)
		r.Post("/auth/reset-password", handlers.Auth.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/me", handlers.Auth.Me)
			r.Get("/leaderboard", handlers.Members.Leaderboard)
			r.Get("/get-approved-users", handlers.Members.ListApproved)

			r.Post("/point-requests", handlers.Points.CreateRequest)
			r.Get("/me/point-history", handlers.Points.MyPointHistory)
			r.Get("/me/point-given", handlers.Points.MyPointsGiven)

			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireRole(memberdomain.RoleAdmin))

				r.Get("/unapproved-users", handlers.Members.ListUnapproved)
				r.Post("/approve-user", handlers.Members.ApproveAccount)
				r.Post("/deny-user", handlers.Members.DenyAccount)
				r.Patch("/members/{id}", handlers.Members.UpdateMember)
				r.Delete("/members/{id}", handlers.Members.DeleteMember)

				r.Get("/point-requests", handlers.Points.ListRequests)
				r.Post("/point-requests/{id}/approve", handlers.Points.ApproveRequest)
				r.Post("/point-requests/{id}/deny", handlers.Points.DenyRequest)
			})
		})
	})

	return r
}
