// Command seed populates the keyspace with random users, conversations and
// messages. It is a data generation utility for development and load testing,
// not part of the serving path; writes use consistency ONE for speed.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gocql/gocql"

	"messenger/services/chat-api/internal/config"
	"messenger/services/chat-api/internal/domain/conversation"
	"messenger/services/chat-api/internal/infrastructure/cassandra"
	"messenger/services/chat-api/internal/infrastructure/logger"
)

const (
	insertMappingCQL = `INSERT INTO conversation_by_users (user_a_id, user_b_id, conversation_id) VALUES (?, ?, ?)`

	insertMessageCQL = `INSERT INTO messages_by_conversation
		(conversation_id, message_id, sender_id, receiver_id, content)
		VALUES (?, ?, ?, ?, ?)`

	insertIndexCQL = `INSERT INTO conversations_by_user
		(user_id, last_message_time, conversation_id, other_user_id, last_message_sender_id, last_message_content)
		VALUES (?, ?, ?, ?, ?, ?)`
)

var sampleContents = []string{
	"hey, are you around?",
	"did you see the game last night",
	"running late, be there in 10",
	"can you send me that link again",
	"sounds good to me",
	"let's catch up this weekend",
	"thanks, that helped a lot",
	"on my way",
}

func main() {
	users := flag.Int("users", 10, "number of distinct users")
	conversations := flag.Int("conversations", 15, "number of conversations to create")
	minMessages := flag.Int("min-messages", 5, "minimum messages per conversation")
	maxMessages := flag.Int("max-messages", 50, "maximum messages per conversation")
	flag.Parse()

	if err := validateCounts(*users, *conversations, *minMessages, *maxMessages); err != nil {
		fmt.Fprintf(os.Stderr, "invalid flags: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

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
		log.Fatal().Err(err).Msg("connect cassandra")
	}
	defer client.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ctx := context.Background()

	seen := make(map[[2]int64]bool)
	created := 0
	attempts := 0
	maxAttempts := *conversations * 5

	for created < *conversations && attempts < maxAttempts {
		attempts++
		userA := int64(rng.Intn(*users) + 1)
		userB := int64(rng.Intn(*users) + 1)
		if userA == userB {
			continue
		}
		low, high := conversation.NormalizePair(userA, userB)
		pair := [2]int64{low, high}
		if seen[pair] {
			continue
		}

		conversationID, err := gocql.RandomUUID()
		if err != nil {
			log.Fatal().Err(err).Msg("generate conversation id")
		}
		if err := client.Exec(ctx, insertMappingCQL, gocql.One, low, high, conversationID); err != nil {
			log.Fatal().Err(err).Msg("insert conversation mapping")
		}
		seen[pair] = true
		created++

		count := *minMessages + rng.Intn(*maxMessages-*minMessages+1)
		if err := seedMessages(ctx, client, rng, cfg.SnippetMaxRunes, conversationID, low, high, count); err != nil {
			log.Fatal().Err(err).Str("conversation_id", conversationID.String()).Msg("seed messages")
		}
		log.Info().
			Str("conversation_id", conversationID.String()).
			Int64("user_a", low).
			Int64("user_b", high).
			Int("messages", count).
			Msg("seeded conversation")
	}

	log.Info().Int("conversations", created).Msg("seeding complete")
}

// seedMessages writes count messages spread over the past month, oldest
// first, plus the matching index rows for both participants.
func seedMessages(ctx context.Context, client *cassandra.Client, rng *rand.Rand, snippetMax int, conversationID gocql.UUID, userA, userB int64, count int) error {
	at := time.Now().UTC().Add(-time.Duration(rng.Intn(30*24)) * time.Hour)

	for i := 0; i < count; i++ {
		sender, receiver := userA, userB
		if rng.Intn(2) == 0 {
			sender, receiver = userB, userA
		}
		content := sampleContents[rng.Intn(len(sampleContents))]
		messageID := gocql.UUIDFromTime(at)

		if err := client.Exec(ctx, insertMessageCQL, gocql.One,
			conversationID, messageID, sender, receiver, content); err != nil {
			return err
		}

		for _, userID := range []int64{sender, receiver} {
			other := receiver
			if userID == receiver {
				other = sender
			}
			if err := client.Exec(ctx, insertIndexCQL, gocql.One,
				userID, messageID, conversationID, other, sender, snippet(content, snippetMax)); err != nil {
				return err
			}
		}

		at = at.Add(time.Duration(rng.Intn(120)+1) * time.Minute)
	}
	return nil
}

// validateCounts rejects flag combinations the generator cannot satisfy.
func validateCounts(users, conversations, minMessages, maxMessages int) error {
	if users < 2 {
		return fmt.Errorf("users must be at least 2, got %d", users)
	}
	if conversations < 1 {
		return fmt.Errorf("conversations must be at least 1, got %d", conversations)
	}
	if minMessages < 0 {
		return fmt.Errorf("min-messages must not be negative, got %d", minMessages)
	}
	if maxMessages < minMessages {
		return fmt.Errorf("max-messages (%d) must be at least min-messages (%d)", maxMessages, minMessages)
	}
	return nil
}

func snippet(content string, maxRunes int) string {
	runes := []rune(content)
	if len(runes) <= maxRunes {
		return content
	}
	return string(runes[:maxRunes])
}
