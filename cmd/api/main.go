package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"pet-care-dashboard/internal/adapters/geocoding/nominatim"
	"pet-care-dashboard/internal/adapters/vetapi"
	"pet-care-dashboard/internal/config"
	"pet-care-dashboard/internal/domain/clinics"
	"pet-care-dashboard/internal/middleware"
	"pet-care-dashboard/internal/platform/logger"
	"pet-care-dashboard/internal/router"
	"pet-care-dashboard/internal/workspace"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid configuration", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if z, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = z.Sync() }()
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	api, err := vetapi.NewClient(vetapi.Config{
		BaseURL:       cfg.APIBaseURL,
		CSRFCookieURL: cfg.CSRFCookieURL,
		SlotEndpoints: cfg.SlotEndpoints,
		Timeout:       cfg.HTTPTimeout.Std(),
		Log:           log,
	})
	if err != nil {
		return err
	}

	geo, err := nominatim.NewClient(nominatim.Config{
		BaseURL:   cfg.GeocoderURL,
		UserAgent: cfg.GeocoderUserAgent,
		Timeout:   cfg.HTTPTimeout.Std(),
	})
	if err != nil {
		return err
	}

	spaces := workspace.NewManager(workspace.Config{
		API:        api,
		Store:      store,
		Locator:    clinics.NewLocator(geo, log),
		Location:   cfg.Location(),
		PageSize:   cfg.RecordsPageSize,
		CloseDelay: cfg.CancelCloseDelay.Std(),
		Log:        log,
	})

	var limiter *middleware.IPRateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			Workspaces:   spaces,
			RateLimiter:  limiter,
			SecureCookie: cfg.SecureCookie,
			SessionTTL:   cfg.SessionTTL.Std(),
			Log:          log,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", map[string]any{
			"addr":            srv.Addr,
			"api_base_url":    cfg.APIBaseURL,
			"session_backend": cfg.SessionBackend,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down", nil)
		return srv.Shutdown(sctx)
	})
	g.Go(func() error {
		spaces.Run(gctx, time.Minute)
		return nil
	})
	if limiter != nil {
		g.Go(func() error {
			limiter.Run(gctx)
			return nil
		})
	}
	if store.sweep != nil {
		g.Go(func() error {
			store.sweep(gctx)
			return nil
		})
	}
	return g.Wait()
}
