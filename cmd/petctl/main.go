// petctl es el cliente de terminal del dashboard: mismas operaciones que la web,
// con la sesión guardada en un archivo local.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"pet-care-dashboard/internal/adapters/storage/file"
	"pet-care-dashboard/internal/adapters/vetapi"
	"pet-care-dashboard/internal/config"
	"pet-care-dashboard/internal/domain/identity"
	"pet-care-dashboard/internal/platform/logger"
	"pet-care-dashboard/internal/platform/timezone"
)

const sessionPrefix = "cli"

type globalFlags struct {
	apiURL      string
	sessionFile string
	timezone    string
	verbose     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:   "petctl",
		Short: "Manage your pets and vet appointments from the terminal",
		Long: `petctl talks to the veterinary backend with your saved session.

Start with 'petctl login', then list pets, book appointments, check the
calendar or read medical records.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.apiURL, "api-url", "", "backend API base URL (default from API_BASE_URL)")
	pf.StringVar(&g.sessionFile, "session-file", "", "session file (default in the user config dir)")
	pf.StringVar(&g.timezone, "timezone", "", "IANA timezone for dates and business hours")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(
		newLoginCmd(&g),
		newLogoutCmd(&g),
		newWhoamiCmd(&g),
		newPetsCmd(&g),
		newBookCmd(&g),
		newAppointmentCmd(&g),
		newCalendarCmd(&g),
		newRecordsCmd(&g),
	)
	return root
}

// app es lo que cada comando necesita: gateway, sesión e identidad.
type app struct {
	api      *vetapi.Client
	identity *identity.Service
	loc      *time.Location
	cfg      config.Config
	log      logger.Logger
}

func newApp(g *globalFlags) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if g.apiURL != "" {
		cfg.APIBaseURL = g.apiURL
	}
	if g.timezone != "" {
		if !timezone.IsValid(g.timezone) {
			return nil, fmt.Errorf("invalid timezone %q", g.timezone)
		}
		cfg.Timezone = g.timezone
	}

	level := logger.Warn
	if g.verbose {
		level = logger.Debug
	}
	log := logger.New(logger.Options{Level: level, Format: logger.FormatText, Output: os.Stderr})

	path := g.sessionFile
	if path == "" {
		path = cfg.SessionFile
	}
	if path == "" {
		if path, err = file.DefaultPath(); err != nil {
			return nil, err
		}
	}
	sess := identity.NewStoreSession(file.NewSessionStore(path), sessionPrefix)

	base, err := vetapi.NewClient(vetapi.Config{
		BaseURL:       cfg.APIBaseURL,
		CSRFCookieURL: cfg.CSRFCookieURL,
		SlotEndpoints: cfg.SlotEndpoints,
		Timeout:       cfg.HTTPTimeout.Std(),
		Log:           log,
	})
	if err != nil {
		return nil, err
	}
	api, err := base.WithSession(sess)
	if err != nil {
		return nil, err
	}

	return &app{
		api:      api,
		identity: identity.NewService(api, sess, log),
		loc:      cfg.Location(),
		cfg:      cfg,
		log:      log,
	}, nil
}

func (a *app) ownerID(ctx context.Context) (int64, error) {
	u, err := a.identity.Current(ctx)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}
