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
	"github.com/shift-report/shift-report-backend-go/internal/handler/http/middleware"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/jwt"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/metrics"
)

type RouterOptions struct {
	Env            string
	Version        string
	AllowedOrigins []string
}

type Handlers struct {
	Auth      AuthHandler
	Shift     ShiftHandler
	Location  LocationHandler
	Personnel PersonnelHandler
	Report    ReportHandler
	Events    EventsHandler
}

func NewRouter(JWTService jwt.Service, m *metrics.Metrics, opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shift-report"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(middleware.Metrics(m))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		// Public form endpoints
		r.Post("/shift-reports", h.Shift.Submit)
		r.Post("/location-pings", h.Location.Report)
		r.Route("/personnel", func(r chi.Router) {
			r.Get("/commanders", h.Personnel.ListCommanders)
			r.Get("/{personal_id}", h.Personnel.Lookup)
		})

		r.Post("/auth/supervisor", h.Auth.SupervisorLogin)

		// Authenticated with a stream token in the query string
		r.Get("/events/stream", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", h.Auth.Logout)

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.SupervisorOnly)

				r.Get("/events/token", h.Auth.StreamToken)

				r.Route("/shift-reports", func(r chi.Router) {
					r.Get("/", h.Shift.List)
					r.Delete("/", h.Shift.Reset)
				})
				r.Route("/location-pings", func(r chi.Router) {
					r.Get("/", h.Location.List)
					r.Delete("/", h.Location.Reset)
				})
				r.Route("/personnel", func(r chi.Router) {
					r.Get("/", h.Personnel.List)
					r.Post("/roster", h.Personnel.ImportRoster)
				})
				r.Route("/reports/weekly", func(r chi.Router) {
					r.Get("/", h.Report.GetWeeklyHours)
					r.Get("/export", h.Report.ExportWeeklyHours)
					r.Get("/{personal_id}", h.Report.GetPersonDetail)
				})
				r.Get("/presence", h.Report.GetPresence)
			})
		})
	})
	return r
}
