package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-care-dashboard/docs"
	"pet-care-dashboard/internal/domain/appointments"
	"pet-care-dashboard/internal/domain/booking"
	"pet-care-dashboard/internal/domain/calendar"
	"pet-care-dashboard/internal/domain/clinics"
	"pet-care-dashboard/internal/domain/identity"
	"pet-care-dashboard/internal/domain/pets"
	"pet-care-dashboard/internal/domain/records"
	"pet-care-dashboard/internal/middleware"
	"pet-care-dashboard/internal/platform/logger"
	"pet-care-dashboard/internal/workspace"
)

type Options struct {
	Workspaces *workspace.Manager

	// RateLimiter opcional; nil = sin límite.
	RateLimiter *middleware.IPRateLimiter

	SecureCookie bool
	SessionTTL   time.Duration

	Log logger.Logger
	Now func() time.Time
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.ExposeRequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Todo lo demás vive dentro de una sesión del dashboard.
	r.Group(func(sr chi.Router) {
		sr.Use(middleware.Session(middleware.SessionOptions{
			Secure: opts.SecureCookie,
			MaxAge: opts.SessionTTL,
		}))

		res := workspace.NewResolver(opts.Workspaces)

		identity.RegisterRoutes(sr, res)
		pets.RegisterRoutes(sr, res, now)
		records.RegisterRoutes(sr, res)
		clinics.RegisterRoutes(sr, res, opts.Workspaces.Locator())
		booking.RegisterRoutes(sr, res)
		appointments.RegisterRoutes(sr, res)
		calendar.RegisterRoutes(sr, res, now)
	})

	return r
}
