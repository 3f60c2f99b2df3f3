package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "chat-api", cfg.ServiceName)
	assert.Equal(t, 8000, cfg.HTTPPort)
	assert.Equal(t, "messenger", cfg.CassandraKeyspace)
	assert.Equal(t, 10, cfg.ConnectAttempts)
	assert.Equal(t, 20, cfg.DefaultPageSize)
	assert.Equal(t, 200, cfg.SnippetMaxRunes)
	assert.True(t, cfg.ConversationCAS)
}

func TestLoad_ClampsNonPositiveValues(t *testing.T) {
	t.Setenv("DEFAULT_PAGE_SIZE", "-3")
	t.Setenv("CONVERSATION_SNIPPET_MAX", "0")
	t.Setenv("CASSANDRA_CONNECT_ATTEMPTS", "0")
	t.Setenv("CASSANDRA_CONNECT_DELAY", "0s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.DefaultPageSize)
	assert.Equal(t, 200, cfg.SnippetMaxRunes)
	assert.Equal(t, 10, cfg.ConnectAttempts)
	assert.Equal(t, "5s", cfg.ConnectDelay.String())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CASSANDRA_HOST", "cassandra.internal")
	t.Setenv("CONVERSATION_CAS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "cassandra.internal", cfg.CassandraHost)
	assert.False(t, cfg.ConversationCAS)
}
