package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/agile/internal/handler"
	"github.com/deppfellow/agile/internal/repository"
	"github.com/deppfellow/agile/internal/router"
	"github.com/deppfellow/agile/internal/server"
	"github.com/deppfellow/agile/internal/service"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API and the job worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, loggerService, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		srv, err := server.New(cfg, log, loggerService)
		if err != nil {
			log.Error().Err(err).Msg("failed to initialize server")
			return err
		}

		repos := repository.NewRepositories(srv.DB)

		services, err := service.NewService(srv, repos)
		if err != nil {
			log.Error().Err(err).Msg("could not create services")
			return err
		}

		srv.Job.InitHandlers(cfg, log, repos)
		if err := srv.Job.Start(); err != nil {
			log.Error().Err(err).Msg("failed to start job server")
			return err
		}

		handlers := handler.NewHandlers(srv, services, repos)
		srv.SetupHTTPServer(router.NewRouter(srv, handlers))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		serveErr := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		var runErr error
		select {
		case runErr = <-serveErr:
			if runErr != nil {
				log.Error().Err(runErr).Msg("server stopped unexpectedly")
			}
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server forced to shutdown")
			return err
		}

		log.Info().Msg("server exited properly")
		return runErr
	},
}
