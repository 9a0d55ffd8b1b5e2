package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/nats-io/nats.go"
	"github.com/phrazzld/studybuddy-api/internal/cache"
	"github.com/phrazzld/studybuddy-api/internal/config"
	"github.com/phrazzld/studybuddy-api/internal/events"
	"github.com/phrazzld/studybuddy-api/internal/generation"
	"github.com/phrazzld/studybuddy-api/internal/platform/inference"
	"github.com/phrazzld/studybuddy-api/internal/platform/logger"
	"github.com/phrazzld/studybuddy-api/internal/platform/postgres"
	"github.com/phrazzld/studybuddy-api/internal/service"
)

// application holds the shared dependencies of the server and owns their
// shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	cache cache.Cache
	nats  *nats.Conn

	cardService service.CardService
	generator   generation.Generator
}

// newApplication loads configuration and wires every dependency. On error,
// anything already opened is released.
func newApplication(ctx context.Context) (_ *application, err error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	app := &application{
		config: cfg,
		logger: logger.Setup(cfg.Server.LogLevel),
	}
	defer func() {
		if err != nil {
			app.cleanup()
		}
	}()

	app.logger.Info("starting studybuddy-api",
		slog.Int("port", cfg.Server.Port),
		slog.String("llm_provider", cfg.LLM.Provider),
		slog.String("llm_model", cfg.LLM.Model))

	app.db, err = openDatabase(ctx, cfg.Database, app.logger)
	if err != nil {
		return nil, err
	}

	emitter, err := app.setupEvents()
	if err != nil {
		return nil, err
	}

	cardStore := postgres.NewPostgresCardStore(app.db, app.logger)
	deckStore := postgres.NewPostgresDeckStore(app.db, app.logger)
	app.cardService, err = service.NewCardService(app.db, cardStore, deckStore, emitter, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	app.generator, err = app.setupGenerator(ctx)
	if err != nil {
		return nil, err
	}

	return app, nil
}

// setupEvents returns the emitter for card events, publishing to NATS when
// a server is configured.
func (app *application) setupEvents() (*events.InMemoryEventEmitter, error) {
	emitter := events.NewInMemoryEventEmitter(app.logger)

	cfg := app.config.Events
	if cfg.NATSURL == "" {
		app.logger.Debug("event publishing disabled")
		return emitter, nil
	}

	nc, err := events.ConnectNATS(cfg.NATSURL, app.logger)
	if err != nil {
		return nil, err
	}
	app.nats = nc
	emitter.RegisterHandler(events.NewNATSHandler(nc, cfg.Subject, app.logger))

	app.logger.Info("publishing card events", slog.String("subject", cfg.Subject))
	return emitter, nil
}

// setupGenerator builds the generation chain: admission limit, then cache,
// then the pipeline around the configured provider.
func (app *application) setupGenerator(ctx context.Context) (generation.Generator, error) {
	llm := app.config.LLM

	completer, err := inference.New(ctx, llm, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create inference client: %w", err)
	}

	var tmpl string
	if llm.PromptTemplatePath != "" {
		b, err := os.ReadFile(llm.PromptTemplatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt template: %w", err)
		}
		tmpl = string(b)
	}

	temperature := llm.Temperature
	pipeline, err := generation.NewPipeline(completer, generation.Config{
		MaxNewTokens:   llm.MaxNewTokens,
		Temperature:    &temperature,
		Timeout:        llm.Timeout,
		PromptTemplate: tmpl,
	}, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation pipeline: %w", err)
	}

	app.cache = app.setupCache(ctx)
	cached := generation.NewCachingGenerator(
		pipeline,
		app.cache,
		app.config.Cache.TTL,
		llm.Provider+":"+llm.Model+":"+pipeline.Fingerprint(),
		app.logger,
	)

	return generation.NewLimitedGenerator(cached, llm.MaxConcurrent), nil
}

// setupCache connects to Redis when configured. An unreachable Redis does
// not stop the server; generation just runs uncached.
func (app *application) setupCache(ctx context.Context) cache.Cache {
	cfg := app.config.Cache
	if cfg.RedisURL == "" || cfg.TTL <= 0 {
		app.logger.Debug("generation cache disabled")
		return cache.NewNoOpCache()
	}

	rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
	if err != nil {
		app.logger.Warn("redis unavailable, generation cache disabled", slog.String("error", err.Error()))
		return cache.NewNoOpCache()
	}

	app.logger.Info("generation cache enabled", slog.Duration("ttl", cfg.TTL))
	return rc
}

// cleanup releases resources in reverse order of acquisition. It is safe to
// call on a partially built application.
func (app *application) cleanup() {
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("failed to close cache", slog.String("error", err.Error()))
		}
		app.cache = nil
	}

	if app.nats != nil {
		if err := app.nats.Drain(); err != nil {
			app.logger.Error("failed to drain nats connection", slog.String("error", err.Error()))
		}
		app.nats = nil
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", slog.String("error", err.Error()))
		}
		app.db = nil
	}
}
