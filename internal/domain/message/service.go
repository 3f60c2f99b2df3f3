package message

import (
	"context"
	"time"

	"github.com/gocql/gocql"
	"github.com/rs/zerolog"

	"messenger/services/chat-api/internal/domain/conversation"
	"messenger/services/chat-api/internal/infrastructure/metrics"
)

// Service owns message creation, including the fan-out to both participants'
// conversation indexes, and the paged message reads.
type Service interface {
	Send(ctx context.Context, senderID, receiverID int64, content string) (*Message, error)
	ListByConversation(ctx context.Context, conversationID gocql.UUID, pageSize int, cursor []byte) ([]Message, []byte, error)
	ListBefore(ctx context.Context, conversationID gocql.UUID, before time.Time, pageSize int, cursor []byte) ([]Message, []byte, error)
}

// ServiceImpl is the production Service backed by the Cassandra repositories.
type ServiceImpl struct {
	messages        Repository
	conversations   conversation.Service
	index           conversation.IndexRepository
	snippetMaxRunes int
	defaultPageSize int
	log             zerolog.Logger
}

// NewService wires dependencies.
func NewService(
	messages Repository,
	conversations conversation.Service,
	index conversation.IndexRepository,
	snippetMaxRunes int,
	defaultPageSize int,
	log zerolog.Logger,
) *ServiceImpl {
	return &ServiceImpl{
		messages:        messages,
		conversations:   conversations,
		index:           index,
		snippetMaxRunes: snippetMaxRunes,
		defaultPageSize: defaultPageSize,
		log:             log.With().Str("component", "message-service").Logger(),
	}
}

// Send resolves the conversation for the pair, appends the message, then
// upserts both participants' index entries.
//
// The three statements are NOT atomic: a failure after the message insert can
// leave an index entry stale or missing. That partial application is an
// accepted cost of the denormalized layout; the first failing statement aborts
// the sequence and surfaces to the caller, with no compensation. Retrying a
// failed Send creates a new message rather than completing the old one; there
// is no idempotency key, so double submission produces duplicates.
func (s *ServiceImpl) Send(ctx context.Context, senderID, receiverID int64, content string) (*Message, error) {
	start := time.Now()

	conversationID, err := s.conversations.ResolveOrCreate(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}

	msg := NewMessage(conversationID, senderID, receiverID, content)
	if err := s.messages.Insert(ctx, msg); err != nil {
		return nil, err
	}

	snippet := truncateSnippet(content, s.snippetMaxRunes)
	entries := []conversation.IndexEntry{
		{
			UserID:         senderID,
			LastMessageID:  msg.ID,
			ConversationID: conversationID,
			OtherUserID:    receiverID,
			LastSenderID:   senderID,
			Snippet:        snippet,
		},
		{
			UserID:         receiverID,
			LastMessageID:  msg.ID,
			ConversationID: conversationID,
			OtherUserID:    senderID,
			LastSenderID:   senderID,
			Snippet:        snippet,
		},
	}
	for _, entry := range entries {
		if err := s.index.UpsertIndexEntry(ctx, entry); err != nil {
			return nil, err
		}
	}

	metrics.MessagesSentTotal.Inc()
	metrics.SendFanoutDuration.Observe(time.Since(start).Seconds())
	s.log.Info().
		Str("conversation_id", conversationID.String()).
		Str("message_id", msg.ID.String()).
		Int64("sender_id", senderID).
		Int64("receiver_id", receiverID).
		Msg("message created")
	return msg, nil
}

// ListByConversation returns one page of a conversation's messages, newest
// first. A non-positive page size falls back to the default.
func (s *ServiceImpl) ListByConversation(ctx context.Context, conversationID gocql.UUID, pageSize int, cursor []byte) ([]Message, []byte, error) {
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	return s.messages.ListByConversation(ctx, conversationID, pageSize, cursor)
}

// ListBefore returns one page of messages created strictly before the cutoff,
// newest first.
func (s *ServiceImpl) ListBefore(ctx context.Context, conversationID gocql.UUID, before time.Time, pageSize int, cursor []byte) ([]Message, []byte, error) {
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	return s.messages.ListBefore(ctx, conversationID, before, pageSize, cursor)
}

// truncateSnippet caps the index preview to bound row size. Truncation is
// silent and counted in runes so multi-byte content is never split.
func truncateSnippet(content string, maxRunes int) string {
	runes := []rune(content)
	if len(runes) <= maxRunes {
		return content
	}
	return string(runes[:maxRunes])
}
