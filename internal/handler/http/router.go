package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the deployment knobs of the HTTP surface.
type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// UploadsDir is served read-only under /uploads when set.
	UploadsDir     string
	RequestTimeout time.Duration
}

type Handlers struct {
	TimeEntry TimeEntryHandler
	Branch    BranchHandler
	Employee  EmployeeHandler
	Payroll   PayrollHandler
	Dashboard DashboardHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(chiMiddleware.Timeout(opts.RequestTimeout))

	if opts.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			response.Success(w, map[string]string{"status": "ok"})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/time-entries", func(r chi.Router) {
				r.Post("/check-in", h.TimeEntry.CheckIn)
				r.Post("/check-out", h.TimeEntry.CheckOut)
				r.Get("/open", h.TimeEntry.GetOpen)
				r.Get("/my", h.TimeEntry.ListMine)

				r.With(middleware.AdminOnly).Get("/", h.TimeEntry.List)
			})

			r.Route("/branches", func(r chi.Router) {
				r.Get("/", h.Branch.List)
				r.Get("/{id}", h.Branch.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Branch.Create)
					r.Put("/{id}", h.Branch.Update)
					r.Delete("/{id}", h.Branch.Delete)
				})
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Get("/{id}", h.Employee.Get)
					r.Put("/{id}", h.Employee.Update)
					r.Post("/{id}/deactivate", h.Employee.Deactivate)
				})

				r.Route("/payroll/cycles", func(r chi.Router) {
					r.Get("/", h.Payroll.ListCycles)
					r.Post("/", h.Payroll.CreateCycle)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.Payroll.GetCycle)
						r.Delete("/", h.Payroll.DeleteCycle)
						r.Post("/activate", h.Payroll.ActivateCycle)
						r.Post("/close", h.Payroll.CloseCycle)
						r.Post("/calculate", h.Payroll.Calculate)
						r.Post("/reset", h.Payroll.Reset)
						r.Get("/details", h.Payroll.ListDetails)
						r.Get("/export", h.Payroll.Export)
					})
				})

				r.Get("/dashboard", h.Dashboard.GetDashboard)
			})
		})
	})

	return r
}
