package message

import (
	"time"

	"github.com/gocql/gocql"
)

// Message is an immutable chat message. ID is a timeuuid: its embedded clock
// segment is both the clustering sort key within the conversation partition
// and the displayed creation time, so identifier order always matches
// chronological order.
type Message struct {
	ID             gocql.UUID
	ConversationID gocql.UUID
	SenderID       int64
	ReceiverID     int64
	Content        string
	CreatedAt      time.Time
}

// NewMessage stamps a fresh timeuuid and derives CreatedAt from it.
func NewMessage(conversationID gocql.UUID, senderID, receiverID int64, content string) *Message {
	id := gocql.TimeUUID()
	return &Message{
		ID:             id,
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
		CreatedAt:      id.Time().UTC(),
	}
}
