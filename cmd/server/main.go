// Command server runs the Wanderlust HTTP API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/Ritpra93/wanderlust/internal/api"
	"github.com/Ritpra93/wanderlust/internal/auth"
	"github.com/Ritpra93/wanderlust/internal/config"
	"github.com/Ritpra93/wanderlust/internal/middleware"
	"github.com/Ritpra93/wanderlust/internal/service"
	"github.com/Ritpra93/wanderlust/internal/storage/sqlite"
	"github.com/Ritpra93/wanderlust/pkg/logging"
)

func main() {
	logging.Setup()

	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Database ready", "path", cfg.DBPath)

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	server := api.NewServer(
		service.NewAuthService(authenticator, jwtManager, store),
		service.NewTripService(store),
		service.NewExpenseService(store),
		service.NewItineraryService(store),
		service.NewPollService(store),
		jwtManager,
	)

	handler := middleware.CORS(cfg.CORSOrigin)(server.Routes())

	// h2c lets gRPC-web style clients speak HTTP/2 without TLS; plain
	// HTTP/1.1 clients are unaffected.
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
