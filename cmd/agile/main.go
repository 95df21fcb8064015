// Command agile runs the project-management backend.
//
//	agile migrate   create or upgrade the schema
//	agile seed      insert one demo row per table and print them
//	agile serve     serve the HTTP API and the background job worker
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/deppfellow/agile/internal/config"
	"github.com/deppfellow/agile/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "agile",
	Short:         "Project management backend",
	Long:          `Agile stores users, projects, tasks, chats and their access rules in PostgreSQL and serves them over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// bootstrap loads configuration and builds the application logger. The
// returned LoggerService must be shut down by the caller.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, &log, loggerService, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
