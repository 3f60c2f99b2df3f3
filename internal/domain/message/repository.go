package message

import (
	"context"
	"time"

	"github.com/gocql/gocql"
)

// Repository persists messages in the conversation-keyed partition.
type Repository interface {
	// Insert appends the message to its conversation partition.
	Insert(ctx context.Context, msg *Message) error

	// ListByConversation returns one page of messages, newest first, plus
	// the opaque continuation state.
	ListByConversation(ctx context.Context, conversationID gocql.UUID, pageSize int, pageState []byte) ([]Message, []byte, error)

	// ListBefore behaves like ListByConversation restricted to messages
	// whose embedded creation time is strictly before the cutoff.
	ListBefore(ctx context.Context, conversationID gocql.UUID, before time.Time, pageSize int, pageState []byte) ([]Message, []byte, error)
}
