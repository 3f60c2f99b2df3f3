package message

import (
	"context"
	"time"

	"github.com/gocql/gocql"
	"github.com/rs/zerolog"

	domain "messenger/services/chat-api/internal/domain/message"
	"messenger/services/chat-api/internal/infrastructure/cassandra"
	"messenger/services/chat-api/internal/infrastructure/metrics"
	"messenger/services/chat-api/internal/utils/platformerrors"
)

const (
	insertMessageCQL = `INSERT INTO messages_by_conversation
		(conversation_id, message_id, sender_id, receiver_id, content)
		VALUES (?, ?, ?, ?, ?)`

	listByConversationCQL = `SELECT message_id, sender_id, receiver_id, content
		FROM messages_by_conversation WHERE conversation_id = ?`

	// minTimeuuid makes the cutoff strict: only identifiers whose embedded
	// clock segment is below the timestamp qualify.
	listBeforeCQL = `SELECT message_id, sender_id, receiver_id, content
		FROM messages_by_conversation WHERE conversation_id = ? AND message_id < minTimeuuid(?)`
)

// Repository is the Cassandra-backed message store.
type Repository struct {
	client *cassandra.Client
	log    zerolog.Logger
}

// NewRepository builds a message repository.
func NewRepository(client *cassandra.Client, log zerolog.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log.With().Str("repository", "message").Logger(),
	}
}

// Insert appends the message to its conversation partition.
func (r *Repository) Insert(ctx context.Context, msg *domain.Message) error {
	err := r.client.Exec(ctx, insertMessageCQL, cassandra.WriteConsistency,
		msg.ConversationID,
		msg.ID,
		msg.SenderID,
		msg.ReceiverID,
		msg.Content,
	)
	if err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("insert_message").Inc()
		return platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to insert message",
			err,
			"insert-message-error",
			map[string]any{
				"conversation_id": msg.ConversationID.String(),
				"message_id":      msg.ID.String(),
			},
		)
	}
	return nil
}

// ListByConversation scans one page of the conversation partition, newest
// first per the clustering order.
func (r *Repository) ListByConversation(ctx context.Context, conversationID gocql.UUID, pageSize int, pageState []byte) ([]domain.Message, []byte, error) {
	iter := r.client.QueryPaged(ctx, listByConversationCQL, cassandra.ReadConsistency, pageSize, pageState, conversationID)
	return r.drain(ctx, iter, conversationID, pageSize, "list_by_conversation")
}

// ListBefore scans like ListByConversation with a strict upper bound on the
// embedded message time.
func (r *Repository) ListBefore(ctx context.Context, conversationID gocql.UUID, before time.Time, pageSize int, pageState []byte) ([]domain.Message, []byte, error) {
	iter := r.client.QueryPaged(ctx, listBeforeCQL, cassandra.ReadConsistency, pageSize, pageState, conversationID, before)
	return r.drain(ctx, iter, conversationID, pageSize, "list_before")
}

func (r *Repository) drain(ctx context.Context, iter *gocql.Iter, conversationID gocql.UUID, pageSize int, statement string) ([]domain.Message, []byte, error) {
	start := time.Now()

	var (
		messageID  gocql.UUID
		senderID   int64
		receiverID int64
		content    string
	)
	messages := make([]domain.Message, 0, pageSize)
	for iter.Scan(&messageID, &senderID, &receiverID, &content) {
		messages = append(messages, domain.Message{
			ID:             messageID,
			ConversationID: conversationID,
			SenderID:       senderID,
			ReceiverID:     receiverID,
			Content:        content,
			CreatedAt:      messageID.Time().UTC(),
		})
	}
	next := iter.PageState()

	if err := iter.Close(); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues(statement).Inc()
		return nil, nil, platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list messages",
			err,
			"list-messages-error",
			map[string]any{"conversation_id": conversationID.String()},
		)
	}

	metrics.PagedReadDuration.WithLabelValues("messages_by_conversation").Observe(time.Since(start).Seconds())
	if len(next) == 0 {
		next = nil
	}
	return messages, next, nil
}
