package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-api-skeleton/auth"
	"github.com/jrsteele09/go-api-skeleton/internal/config"
	"github.com/jrsteele09/go-api-skeleton/internal/logging"
	"github.com/jrsteele09/go-api-skeleton/internal/store"
	"github.com/jrsteele09/go-api-skeleton/server"
	"github.com/jrsteele09/go-api-skeleton/token"
	"github.com/jrsteele09/go-api-skeleton/users"
	"github.com/rs/zerolog/log"
)

const revocationCleanupInterval = 10 * time.Minute

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.New()
	if err != nil {
		// Misconfigured secrets or algorithms must stop startup.
		return fmt.Errorf("config.New: %w", err)
	}
	logging.Setup(c.GetEnv(), c.GetLogLevel())
	displayAppname(c.GetAppName())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, closer, err := store.Open(ctx, c.GetDatabaseURL(), true)
	if err != nil {
		return fmt.Errorf("store.Open: %w", err)
	}
	defer closer.Close()

	handler, tokens, err := buildHandler(ctx, c, repo)
	if err != nil {
		return err
	}
	go tokens.RunRevocationCleanup(ctx, revocationCleanupInterval)

	srv := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- listenAndServe(srv) }()

	select {
	case err := <-errCh:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(srv)
}

func buildHandler(ctx context.Context, c *config.Config, repo users.UserRepo) (http.Handler, *token.Manager, error) {
	hasher, err := users.NewHasher(c.GetPasswordHashCost())
	if err != nil {
		return nil, nil, fmt.Errorf("users.NewHasher: %w", err)
	}
	log.Debug().Int("bcrypt_cost", hasher.Cost()).Msg("Password hasher ready")
	validScopes := users.NewScopes(c.GetValidScopes()...)

	userService, err := users.NewService(repo, hasher, validScopes)
	if err != nil {
		return nil, nil, fmt.Errorf("users.NewService: %w", err)
	}

	tokens, err := token.NewManager(token.Settings{
		Secret:    c.GetSecretKey(),
		Algorithm: c.GetJWTAlgorithm(),
		TTL:       c.GetAccessTokenTTL(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("token.NewManager: %w", err)
	}

	authService, err := auth.NewService(auth.Deps{
		Users:     repo,
		Hasher:    hasher,
		Tokens:    tokens,
		Passwords: userService,
	}, validScopes)
	if err != nil {
		return nil, nil, fmt.Errorf("auth.NewService: %w", err)
	}

	s, err := server.New(ctx, c, authService, userService)
	if err != nil {
		return nil, nil, fmt.Errorf("server.New: %w", err)
	}
	return s, tokens, nil
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
