//go:build wireinject

package main

import (
	"github.com/google/wire"
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

var storageSet = wire.NewSet(
	conversationrepo.NewRepository,
	wire.Bind(new(conversation.Repository), new(*conversationrepo.Repository)),
	wire.Bind(new(conversation.IndexRepository), new(*conversationrepo.Repository)),
	messagerepo.NewRepository,
	wire.Bind(new(message.Repository), new(*messagerepo.Repository)),
	newConversationService,
	wire.Bind(new(conversation.Service), new(*conversation.ServiceImpl)),
	newMessageService,
	wire.Bind(new(message.Service), new(*message.ServiceImpl)),
)

// BuildApplication demonstrates how to assemble the chat service with Wire.
func BuildApplication() (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newCassandraConfig,
		newCassandraClient,
		storageSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newCassandraConfig(cfg *config.Config) cassandra.Config {
	return cassandra.Config{
		Host:            cfg.CassandraHost,
		Port:            cfg.CassandraPort,
		Keyspace:        cfg.CassandraKeyspace,
		ConnectAttempts: cfg.ConnectAttempts,
		ConnectDelay:    cfg.ConnectDelay,
		QueryTimeout:    cfg.QueryTimeout,
	}
}

func newCassandraClient(cfg cassandra.Config, log zerolog.Logger) (*cassandra.Client, error) {
	if err := cassandra.EnsureSchema(cfg, log); err != nil {
		return nil, err
	}
	return cassandra.Connect(cfg, log)
}

func newConversationService(repo conversation.Repository, cfg *config.Config, log zerolog.Logger) *conversation.ServiceImpl {
	return conversation.NewService(repo, cfg.ConversationCAS, cfg.DefaultPageSize, log)
}

func newMessageService(
	repo message.Repository,
	conversations conversation.Service,
	index conversation.IndexRepository,
	cfg *config.Config,
	log zerolog.Logger,
) *message.ServiceImpl {
	return message.NewService(repo, conversations, index, cfg.SnippetMaxRunes, cfg.DefaultPageSize, log)
}
