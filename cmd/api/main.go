package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"viewcounter/internal/http/handlers"
	"viewcounter/internal/http/httpapi"
	"viewcounter/internal/infra"
	"viewcounter/internal/storage"
)

func main() {
	infra.LoadDotenv()

	cfg, err := infra.LoadAPIConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv).With().Str("cmd", "api").Logger()

	store, err := storage.NewFileStore(cfg.MetricsFile, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure metrics store")
	}

	app := handlers.NewApp(store, &logger)
	router := httpapi.NewRouter(app, cfg)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("metrics_file", store.Path()).Msgf("API listening on %s", server.Addr())
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
