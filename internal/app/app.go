package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"ContentTriage/internal/config"
	"ContentTriage/internal/httpserver"
	"ContentTriage/internal/infrastructure/ingest"
	"ContentTriage/internal/infrastructure/llm"
	schedinfra "ContentTriage/internal/infrastructure/scheduler"
	"ContentTriage/internal/infrastructure/storage"
	"ContentTriage/internal/infrastructure/telegram"
	"ContentTriage/internal/logging"
	"ContentTriage/internal/ports"
	"ContentTriage/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	db        *sql.DB
	server    *httpserver.Server
	scheduler *usecase.Scheduler
	logger    *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := storage.NewPostgresStore(db)
	analyzer := llm.NewGroqClient(cfg.Groq)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Store:    store,
		Analyzer: analyzer,
		Logger:   baseLogger.With("component", "pipeline"),
	})

	var ingestion *usecase.Ingestion
	if len(cfg.Sources) > 0 {
		registry := ingest.NewRegistry()
		registry.Register(ingest.NewRSSConnector(nil))
		registry.Register(ingest.NewHTMLListConnector(nil))

		source := ingest.NewStrategySource(registry, cfg.Sources, baseLogger.With("component", "source"))
		ingestion = usecase.NewIngestion(usecase.IngestionDeps{
			Source: source,
			Store:  store,
			Logger: baseLogger.With("component", "ingestion"),
		})
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	var scheduler *usecase.Scheduler
	if cfg.Scheduler.Enabled {
		scheduler = usecase.NewScheduler(usecase.SchedulerDeps{
			Driver:    schedinfra.NewIntervalScheduler(cfg.Scheduler.IntervalDuration()),
			Pipeline:  pipeline,
			Ingestion: ingestion,
			Notifier:  notifier,
			BatchSize: cfg.Triage.BatchSize,
			Logger:    baseLogger.With("component", "scheduler"),
		})
	}

	var ingestRunner httpserver.IngestRunner
	if ingestion != nil {
		ingestRunner = ingestion
	}
	server := httpserver.New(cfg.HTTP.Addr, pipeline, ingestRunner, baseLogger.With("component", "http"))

	return &Application{
		cfg:       cfg,
		db:        db,
		server:    server,
		scheduler: scheduler,
		logger:    baseLogger,
	}, nil
}

// Run starts the optional scheduler and serves HTTP until the listener fails.
func (a *Application) Run(ctx context.Context) error {
	if a.scheduler != nil {
		if err := a.scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		defer func() { _ = a.scheduler.Stop(ctx) }()
	}

	defer func() { _ = a.db.Close() }()

	return a.server.Run()
}
