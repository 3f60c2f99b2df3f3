package dto

import (
	"time"

	"messenger/services/chat-api/internal/domain/conversation"
	"messenger/services/chat-api/internal/domain/message"
)

// UnknownTotal marks paginated responses whose total row count is not
// available: the partitioned store does not count partitions cheaply.
const UnknownTotal = -1

// MessagePayload is the HTTP shape of a message.
type MessagePayload struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	ReceiverID     int64     `json:"receiver_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConversationPayload is the HTTP shape of a conversation summary.
type ConversationPayload struct {
	ID                 string    `json:"id"`
	UserID             int64     `json:"user_id"`
	OtherUserID        int64     `json:"other_user_id"`
	LastMessageAt      time.Time `json:"last_message_at"`
	LastSenderID       int64     `json:"last_message_sender_id"`
	LastMessageContent string    `json:"last_message_content"`
}

// PaginatedMessages is one page of messages plus the continuation cursor.
type PaginatedMessages struct {
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	NextCursor string           `json:"next_cursor,omitempty"`
	Data       []MessagePayload `json:"data"`
}

// PaginatedConversations is one page of conversation summaries plus the
// continuation cursor.
type PaginatedConversations struct {
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	NextCursor string                `json:"next_cursor,omitempty"`
	Data       []ConversationPayload `json:"data"`
}

// FromMessage maps a domain message into its HTTP shape.
func FromMessage(msg message.Message) MessagePayload {
	return MessagePayload{
		ID:             msg.ID.String(),
		ConversationID: msg.ConversationID.String(),
		SenderID:       msg.SenderID,
		ReceiverID:     msg.ReceiverID,
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt,
	}
}

// FromMessages maps a page of domain messages.
func FromMessages(msgs []message.Message) []MessagePayload {
	payloads := make([]MessagePayload, len(msgs))
	for i, msg := range msgs {
		payloads[i] = FromMessage(msg)
	}
	return payloads
}

// FromSummary maps a domain conversation summary into its HTTP shape.
func FromSummary(s conversation.Summary) ConversationPayload {
	return ConversationPayload{
		ID:                 s.ConversationID.String(),
		UserID:             s.UserID,
		OtherUserID:        s.OtherUserID,
		LastMessageAt:      s.LastMessageAt,
		LastSenderID:       s.LastSenderID,
		LastMessageContent: s.LastMessageSnippet,
	}
}

// FromSummaries maps a page of domain conversation summaries.
func FromSummaries(summaries []conversation.Summary) []ConversationPayload {
	payloads := make([]ConversationPayload, len(summaries))
	for i, s := range summaries {
		payloads[i] = FromSummary(s)
	}
	return payloads
}
