package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	adapthttp "weightlog/internal/adapter/http"
	"weightlog/internal/adapter/memory"
	"weightlog/internal/adapter/postgres"
	"weightlog/internal/adapter/storage"
	"weightlog/internal/app"
	"weightlog/internal/config"
	"weightlog/internal/domain"
	"weightlog/internal/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	purgeInterval   = time.Hour
)

// repositories is the set of ports one store backend provides.
type repositories struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	weights  domain.WeightRepository
	profiles domain.ProfileRepository
	goals    domain.GoalRepository
	photos   domain.PhotoRepository
	close    func() error
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	if code := finish(log, run(cfg, log)); code != 0 {
		os.Exit(code)
	}
}

// finish logs a fatal run error and flushes the logger before main exits,
// since os.Exit skips deferred calls.
func finish(log *zap.Logger, err error) int {
	if err != nil {
		log.Error("exit", zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		return 1
	}
	return 0
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = repos.close() }()

	files, err := openFileStorage(ctx, cfg)
	if err != nil {
		return err
	}

	authSvc := app.NewAuthService(repos.users, repos.sessions)
	if cfg.InitialUser != "" && cfg.InitialPassword != "" {
		err := authSvc.CreateInitialUser(ctx, cfg.InitialUser, cfg.InitialPassword)
		switch {
		case err == nil:
			log.Info("created initial user", zap.String("email", cfg.InitialUser))
		case errors.Is(err, app.ErrUsersExist):
			// already set up
		default:
			return fmt.Errorf("initial user: %w", err)
		}
	}

	srv := adapthttp.New(adapthttp.Services{
		Auth:     authSvc,
		Users:    app.NewUserService(repos.users, repos.profiles, repos.weights, repos.goals),
		Weight:   app.NewWeightService(repos.weights),
		Profile:  app.NewProfileService(repos.profiles),
		Goals:    app.NewGoalService(repos.goals),
		Photos:   app.NewPhotoService(repos.photos, repos.weights, files, log.Named("photos"), cfg.MaxUploadBytes),
		Progress: app.NewProgressService(repos.weights, repos.profiles, repos.goals),
		Charts:   app.NewChartsService(repos.weights, repos.profiles),
	}, log.Named("http"), cfg.WebDir).
		WithUploadRate(cfg.UploadRatePerMinute).
		WithMaxUploadBytes(cfg.MaxUploadBytes)

	if cfg.AuthDisabled {
		log.Warn("authentication disabled, all requests act as the local user")
		srv = srv.WithoutAuth()
	}
	if cfg.ForwardAuth {
		log.Info("forward auth enabled, trusting Remote-User header")
		srv = srv.WithForwardAuth()
	}
	if cfg.OIDC.Issuer != "" {
		oidcCfg, err := newOIDC(ctx, cfg.OIDC)
		if err != nil {
			return fmt.Errorf("oidc: %w", err)
		}
		srv = srv.WithOIDC(oidcCfg)
		log.Info("sso enabled", zap.String("issuer", cfg.OIDC.Issuer))
	}

	go purgeSessions(ctx, authSvc, log)

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func openRepositories(cfg config.Config, log *zap.Logger) (*repositories, error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, using in-memory store")
		db := memory.New()
		return &repositories{
			users: db, sessions: db.NewSessionRepo(), weights: db,
			profiles: db, goals: db, photos: db,
			close: func() error { return nil },
		}, nil
	}

	db, err := postgres.Open(cfg.DatabaseURL, log.Named("db"))
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	return &repositories{
		users: db, sessions: postgres.NewSessionRepo(db), weights: db,
		profiles: db, goals: db, photos: db,
		close: db.Close,
	}, nil
}

func openFileStorage(ctx context.Context, cfg config.Config) (domain.FileStorage, error) {
	switch cfg.StorageDriver {
	case "disk":
		return storage.NewDisk(cfg.UploadDir)
	case "minio":
		return storage.NewMinIO(ctx, cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}

func newOIDC(ctx context.Context, cfg config.OIDCConfig) (adapthttp.OIDCConfig, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, err
	}
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

func purgeSessions(ctx context.Context, auth *app.AuthService, log *zap.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := auth.PurgeExpiredSessions(ctx); err != nil {
				log.Warn("purge expired sessions", zap.Error(err))
			}
		}
	}
}
