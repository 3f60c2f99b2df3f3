package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the chat service.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"chat-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	CassandraHost     string        `env:"CASSANDRA_HOST" envDefault:"localhost"`
	CassandraPort     int           `env:"CASSANDRA_PORT" envDefault:"9042"`
	CassandraKeyspace string        `env:"CASSANDRA_KEYSPACE" envDefault:"messenger"`
	ConnectAttempts   int           `env:"CASSANDRA_CONNECT_ATTEMPTS" envDefault:"10"`
	ConnectDelay      time.Duration `env:"CASSANDRA_CONNECT_DELAY" envDefault:"5s"`
	QueryTimeout      time.Duration `env:"CASSANDRA_QUERY_TIMEOUT" envDefault:"10s"`

	DefaultPageSize int  `env:"DEFAULT_PAGE_SIZE" envDefault:"20"`
	SnippetMaxRunes int  `env:"CONVERSATION_SNIPPET_MAX" envDefault:"200"`
	ConversationCAS bool `env:"CONVERSATION_CAS_ENABLED" envDefault:"true"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}

	if cfg.SnippetMaxRunes <= 0 {
		cfg.SnippetMaxRunes = 200
	}

	if cfg.ConnectAttempts <= 0 {
		cfg.ConnectAttempts = 10
	}

	if cfg.ConnectDelay <= 0 {
		cfg.ConnectDelay = 5 * time.Second
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
