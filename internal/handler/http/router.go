package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/workpulse-hq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	JWTService        jwt.Service
	AuthHandler       AuthHandler
	AttendanceHandler AttendanceHandler
	LeaveHandler      LeaveHandler
	WorkHoursHandler  WorkHoursHandler
	PolicyHandler     PolicyHandler
	EventsHandler     EventsHandler
	AllowedOrigins    []string
	Environment       string
}

func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workpulse-hrms"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Environment),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", cfg.AuthHandler.RefreshToken)
			r.Post("/logout", cfg.AuthHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", cfg.AuthHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", cfg.AuthHandler.Login)
				r.Post("/employee-code", cfg.AuthHandler.LoginWithEmployeeCode)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", cfg.AuthHandler.LoginWithGoogle)
				})
			})

			// SSE token mint requires a valid access token.
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(cfg.JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(cfg.JWTService.JWTAuth()))
				r.Post("/sse-token", cfg.AuthHandler.SSEToken)
			})
		})

		// Live events authenticate via the short-lived sse token instead.
		r.Get("/events", cfg.EventsHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(cfg.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(cfg.JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/punch-in", cfg.AttendanceHandler.PunchIn)
				r.Post("/punch-out", cfg.AttendanceHandler.PunchOut)
				r.Post("/break/start", cfg.AttendanceHandler.StartBreak)
				r.Post("/break/end", cfg.AttendanceHandler.EndBreak)
				r.Get("/today", cfg.AttendanceHandler.GetToday)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", cfg.AttendanceHandler.List)
					r.Post("/{id}/approve-overtime", cfg.AttendanceHandler.ApproveOvertime)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/", cfg.LeaveHandler.Create)
				r.Get("/stats", cfg.LeaveHandler.GetStats)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", cfg.LeaveHandler.List)
					r.Post("/{id}/approve", cfg.LeaveHandler.Approve)
					r.Post("/{id}/reject", cfg.LeaveHandler.Reject)
				})
			})

			r.Get("/workhours/stats", cfg.WorkHoursHandler.GetStats)

			r.Route("/policy", func(r chi.Router) {
				r.Get("/", cfg.PolicyHandler.Get)

				// Owner only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)
					r.Put("/", cfg.PolicyHandler.Update)
				})
			})
		})
	})
	return r
}
