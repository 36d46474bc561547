package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/respirex/respirex-client/internal/buildinfo"
	"github.com/respirex/respirex-client/internal/client/api"
	"github.com/respirex/respirex-client/internal/client/cli"
	"github.com/respirex/respirex-client/internal/client/config"
	"github.com/respirex/respirex-client/internal/client/identity"
	"github.com/respirex/respirex-client/internal/client/repositories/session"
	"github.com/respirex/respirex-client/internal/client/services"
	"github.com/respirex/respirex-client/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	store, err := session.InitDatabase(ctx, cfg.SessionStorePath)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}

	provider := identity.NewGoTrueProvider(identity.GoTrueConfig{
		BaseURL:     cfg.IdentityBaseURL,
		APIKey:      cfg.IdentityAPIKey,
		RedirectURL: cfg.OAuthRedirectURL,
	}, store, logger)
	defer provider.Close()

	// Backend requests authenticate with the provider's current token; an
	// absent session sends the request unauthenticated and lets the backend
	// decide.
	tokens := api.TokenSourceFunc(func(ctx context.Context) (string, error) {
		s, err := provider.CurrentSession(ctx)
		if err != nil || s == nil {
			return "", err
		}
		return s.AccessToken, nil
	})

	apiClient := api.NewHTTPClient(cfg.BackendBaseURL, tokens, api.Options{
		Timeout:   cfg.RequestTimeout,
		TokenWait: cfg.TokenWait,
	}, logger)
	defer apiClient.Close()

	app := cli.NewApp(cfg, logger, provider,
		services.NewRoleResolver(apiClient, logger),
		services.NewScreeningService(apiClient),
		services.NewAppointmentService(apiClient),
		services.NewProfileService(apiClient),
		services.NewDoctorService(apiClient),
	)

	app.Root(ctx)
}
