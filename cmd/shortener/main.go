package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nestjam/shortlink/internal/cert"
	conf "github.com/nestjam/shortlink/internal/config"
	env "github.com/nestjam/shortlink/internal/config/environment"
	"github.com/nestjam/shortlink/internal/factory"
	"github.com/nestjam/shortlink/internal/server"
)

const (
	eventKey        = "event"
	shutdownTimeout = 5 * time.Second
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
)

func main() {
	config := conf.New().
		FromArgs(os.Args).
		FromEnv(env.New())

	logger, tearDownLogger, err := factory.NewLogger(config.LogLevel)
	if err != nil {
		panic(err)
	}
	defer tearDownLogger()

	logger.Info("Starting shortener",
		zap.String("version", buildVersion),
		zap.String("date", buildDate))

	store, tearDownStore := factory.NewStore(config, logger)
	defer tearDownStore()

	svc := factory.NewService(store, logger)
	handler := server.New(svc,
		server.WithLogger(logger),
		server.WithBaseURL(config.BaseURL))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := run(ctx, config, handler, logger); err != nil {
		logger.Fatal(err.Error(), zap.String(eventKey, "run server"))
	}
}

func run(ctx context.Context, config conf.Config, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:    config.ServerAddress,
		Handler: handler,
	}

	if config.EnableHTTPS {
		tlsConfig, err := cert.TLSConfig()
		if err != nil {
			return err
		}
		srv.TLSConfig = tlsConfig
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Running server",
			zap.String("address", config.ServerAddress),
			zap.Bool("https", config.EnableHTTPS))

		var err error
		if config.EnableHTTPS {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return <-errCh
}
