package cassandra

import (
	"fmt"

	"github.com/rs/zerolog"
)

// EnsureSchema creates the keyspace and tables when they do not exist yet. It
// connects without a keyspace so a fresh cluster can be bootstrapped, and uses
// the same retry budget as Connect.
func EnsureSchema(cfg Config, log zerolog.Logger) error {
	log = log.With().Str("component", "cassandra-schema").Logger()

	session, err := connectWithRetry(cfg, "", log)
	if err != nil {
		return err
	}
	defer session.Close()

	keyspaceCQL := fmt.Sprintf(`CREATE KEYSPACE IF NOT EXISTS %s WITH REPLICATION = {
		'class': 'SimpleStrategy',
		'replication_factor': 1
	}`, cfg.Keyspace)
	if err := session.Query(keyspaceCQL).Exec(); err != nil {
		return fmt.Errorf("create keyspace %s: %w", cfg.Keyspace, err)
	}
	log.Info().Str("keyspace", cfg.Keyspace).Msg("keyspace ready")

	for _, stmt := range tableStatements(cfg.Keyspace) {
		if err := session.Query(stmt).Exec(); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	log.Info().Msg("tables ready")
	return nil
}

// tableStatements returns the table DDL. Each table is shaped for exactly one
// query pattern; the same logical facts are denormalized across them.
func tableStatements(keyspace string) []string {
	return []string{
		// Message history for a conversation, newest first. The timeuuid
		// clustering key doubles as the message identifier and its creation
		// timestamp.
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.messages_by_conversation (
			conversation_id uuid,
			message_id timeuuid,
			sender_id bigint,
			receiver_id bigint,
			content text,
			PRIMARY KEY ((conversation_id), message_id)
		) WITH CLUSTERING ORDER BY (message_id DESC)`, keyspace),

		// Identity mapping for an unordered user pair. Callers must store the
		// pair ordered (user_a_id <= user_b_id) so both directions hit the
		// same partition.
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.conversation_by_users (
			user_a_id bigint,
			user_b_id bigint,
			conversation_id uuid,
			PRIMARY KEY ((user_a_id, user_b_id))
		)`, keyspace),

		// Per-user conversation index, most recently active first.
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.conversations_by_user (
			user_id bigint,
			last_message_time timeuuid,
			conversation_id uuid,
			other_user_id bigint,
			last_message_sender_id bigint,
			last_message_content text,
			PRIMARY KEY ((user_id), last_message_time, conversation_id)
		) WITH CLUSTERING ORDER BY (last_message_time DESC, conversation_id ASC)`, keyspace),
	}
}
