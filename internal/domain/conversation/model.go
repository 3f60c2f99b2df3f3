package conversation

import (
	"time"

	"github.com/gocql/gocql"
)

// Summary is the per-user projection of a 1:1 conversation, shaped for the
// "list my conversations" query. Conversations have no standalone record; a
// summary is materialized from the denormalized index partition.
type Summary struct {
	ConversationID     gocql.UUID
	UserID             int64
	OtherUserID        int64
	LastSenderID       int64
	LastMessageAt      time.Time
	LastMessageSnippet string
}

// IndexEntry is one denormalized row of the per-user conversation index.
// One entry is written per participant on every message; the timeuuid of the
// newest message keys the clustering order, so later writes surface first.
type IndexEntry struct {
	UserID         int64
	LastMessageID  gocql.UUID
	ConversationID gocql.UUID
	OtherUserID    int64
	LastSenderID   int64
	Snippet        string
}

// NormalizePair orders two user IDs so the identity lookup key is the same
// regardless of which participant initiates.
func NormalizePair(a, b int64) (low, high int64) {
	if a <= b {
		return a, b
	}
	return b, a
}
