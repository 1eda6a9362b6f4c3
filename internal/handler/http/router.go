package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/handler/http/middleware"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, timesheetHandler TimesheetHandler, employeeHandler EmployeeHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "staffdesk"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
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

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", timesheetHandler.ClockIn)
				r.Post("/clock-out", timesheetHandler.ClockOut)
				r.Get("/history", timesheetHandler.History)
				r.Get("/edit-context", timesheetHandler.EditContext)

				// Team leads and up
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(employee.RoleAdmin, employee.RoleManager, employee.RoleTeamLeader))
					r.Get("/roster", timesheetHandler.Roster)
					r.Get("/roster/stream", timesheetHandler.RosterStream)
				})

				// Date-sensitive permissions are rechecked in the service
				r.Route("/sessions", func(r chi.Router) {
					r.Use(middleware.RequireRole(employee.RoleAdmin, employee.RoleManager))
					r.Post("/", timesheetHandler.AddSession)
					r.Put("/", timesheetHandler.EditSession)
					r.Delete("/", timesheetHandler.DeleteSession)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequireRole(employee.RoleAdmin, employee.RoleManager))
				r.Get("/", employeeHandler.List)
				r.Get("/{code}", employeeHandler.GetByCode)
			})
		})
	})
	return r
}
