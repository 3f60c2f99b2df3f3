package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"messenger/services/chat-api/internal/config"
	"messenger/services/chat-api/internal/domain/conversation"
	"messenger/services/chat-api/internal/domain/message"
	"messenger/services/chat-api/internal/infrastructure/cassandra"
	"messenger/services/chat-api/internal/infrastructure/logger"
	conversationrepo "messenger/services/chat-api/internal/infrastructure/repository/conversation"
	messagerepo "messenger/services/chat-api/internal/infrastructure/repository/message"
	"messenger/services/chat-api/internal/interfaces/httpserver"
)

// Application bundles the long-running parts of the process.
type Application struct {
	httpServer *httpserver.HTTPServer
	log        zerolog.Logger
}

// NewApplication wires the top-level application.
func NewApplication(httpServer *httpserver.HTTPServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

// Start runs the HTTP server until the context is cancelled.
func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cassandraCfg := cassandra.Config{
		Host:            cfg.CassandraHost,
		Port:            cfg.CassandraPort,
		Keyspace:        cfg.CassandraKeyspace,
		ConnectAttempts: cfg.ConnectAttempts,
		ConnectDelay:    cfg.ConnectDelay,
		QueryTimeout:    cfg.QueryTimeout,
	}

	if err := cassandra.EnsureSchema(cassandraCfg, log); err != nil {
		log.Fatal().Err(err).Msg("bootstrap schema")
	}

	client, err := cassandra.Connect(cassandraCfg, log)
	if err != nil {
		// Storage being unreachable after the retry budget is a fatal
		// startup condition; the process must not serve traffic.
		log.Fatal().Err(err).Msg("connect cassandra")
	}
	defer client.Close()

	conversationRepository := conversationrepo.NewRepository(client, log)
	messageRepository := messagerepo.NewRepository(client, log)

	conversationService := conversation.NewService(conversationRepository, cfg.ConversationCAS, cfg.DefaultPageSize, log)
	messageService := message.NewService(
		messageRepository,
		conversationService,
		conversationRepository,
		cfg.SnippetMaxRunes,
		cfg.DefaultPageSize,
		log,
	)

	httpServer := httpserver.New(cfg, log, messageService, conversationService)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
