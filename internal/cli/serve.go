package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/trtslyr/islajournal/internal/api/handlers"
	"github.com/trtslyr/islajournal/internal/config"
	"github.com/trtslyr/islajournal/internal/database"
	"github.com/trtslyr/islajournal/internal/generation"
	"github.com/trtslyr/islajournal/internal/jobs"
	"github.com/trtslyr/islajournal/internal/repository"
	"github.com/trtslyr/islajournal/internal/server"
	"github.com/trtslyr/islajournal/internal/service"
	"github.com/trtslyr/islajournal/internal/telemetry"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the journal daemon",
		Long:  "Start the isla HTTP daemon serving import, search and query endpoints",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "", "Port to listen on (overrides ISLA_PORT)")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.SentryDSN != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      environment,
			TracesSampleRate: sampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	if portFlag, _ := cmd.Flags().GetString("port"); portFlag != "" {
		cfg.Port = portFlag
	}

	db, err := database.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	log.Printf("opened database at %s", cfg.DatabasePath)

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	fileRepo := repository.NewFileRepository(db)
	chunkRepo := repository.NewChunkRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	indexerSvc := service.NewIndexerService(fileRepo, chunkRepo)
	searchSvc := service.NewSearchService(chunkRepo)
	contextBuilder := service.NewContextBuilder(settingsRepo, fileRepo, searchSvc, cfg.ContextTokenBudget)
	generator := generation.NewClientWithConfig(generation.Config{
		BaseURL: cfg.GenerationURL,
		Model:   cfg.GenerationModel,
	})
	querySvc := service.NewQueryService(contextBuilder, generator, service.DefaultAnswerTokens)

	reindexProcessor := jobs.NewReindexWorker(fileRepo, indexerSvc)
	reindexWorker := jobs.NewWorker(reindexProcessor, time.Duration(cfg.ReindexIntervalSeconds)*time.Second)
	go reindexWorker.Start(ctx)
	log.Println("reindex worker started")

	routerCfg := server.RouterConfig{
		FilesHandler:    handlers.NewFilesHandler(fileRepo, indexerSvc),
		SearchHandler:   handlers.NewSearchHandler(searchSvc),
		QueryHandler:    handlers.NewQueryHandler(querySvc, conversationRepo, settingsRepo),
		SettingsHandler: handlers.NewSettingsHandler(settingsRepo),
	}

	router := server.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	reindexWorker.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}
