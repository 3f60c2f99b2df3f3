package conversation

import (
	"context"
	"errors"
	"time"

	"github.com/gocql/gocql"
	"github.com/rs/zerolog"

	domain "messenger/services/chat-api/internal/domain/conversation"
	"messenger/services/chat-api/internal/infrastructure/cassandra"
	"messenger/services/chat-api/internal/infrastructure/metrics"
	"messenger/services/chat-api/internal/utils/platformerrors"
)

const (
	findMappingCQL = `SELECT conversation_id FROM conversation_by_users WHERE user_a_id = ? AND user_b_id = ? LIMIT 1`

	saveMappingCQL = `INSERT INTO conversation_by_users (user_a_id, user_b_id, conversation_id) VALUES (?, ?, ?)`

	saveMappingCASCQL = `INSERT INTO conversation_by_users (user_a_id, user_b_id, conversation_id) VALUES (?, ?, ?) IF NOT EXISTS`

	upsertIndexCQL = `INSERT INTO conversations_by_user
		(user_id, last_message_time, conversation_id, other_user_id, last_message_sender_id, last_message_content)
		VALUES (?, ?, ?, ?, ?, ?)`

	listByUserCQL = `SELECT conversation_id, other_user_id, last_message_time, last_message_sender_id, last_message_content
		FROM conversations_by_user WHERE user_id = ?`
)

// Repository is the Cassandra-backed conversation store. It implements both
// the identity-mapping port and the per-user index port.
type Repository struct {
	client *cassandra.Client
	log    zerolog.Logger
}

// NewRepository builds a conversation repository.
func NewRepository(client *cassandra.Client, log zerolog.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log.With().Str("repository", "conversation").Logger(),
	}
}

// FindMapping point-reads the identity mapping for a normalized pair.
func (r *Repository) FindMapping(ctx context.Context, lowUserID, highUserID int64) (gocql.UUID, bool, error) {
	var id gocql.UUID
	err := r.client.Query(ctx, findMappingCQL, cassandra.ReadConsistency, lowUserID, highUserID).Scan(&id)
	if errors.Is(err, gocql.ErrNotFound) {
		return gocql.UUID{}, false, nil
	}
	if err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("find_mapping").Inc()
		return gocql.UUID{}, false, platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to look up conversation mapping",
			err,
			"find-mapping-error",
			map[string]any{"user_a": lowUserID, "user_b": highUserID},
		)
	}
	return id, true, nil
}

// SaveMapping inserts the identity mapping without a condition.
func (r *Repository) SaveMapping(ctx context.Context, lowUserID, highUserID int64, id gocql.UUID) error {
	if err := r.client.Exec(ctx, saveMappingCQL, cassandra.WriteConsistency, lowUserID, highUserID, id); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("save_mapping").Inc()
		return platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to save conversation mapping",
			err,
			"save-mapping-error",
			map[string]any{"user_a": lowUserID, "user_b": highUserID},
		)
	}
	return nil
}

// SaveMappingCAS inserts the identity mapping with IF NOT EXISTS. When the
// row already exists the stored conversation ID is returned instead of the
// proposed one.
func (r *Repository) SaveMappingCAS(ctx context.Context, lowUserID, highUserID int64, id gocql.UUID) (gocql.UUID, bool, error) {
	applied, prev, err := r.client.ExecCAS(ctx, saveMappingCASCQL, lowUserID, highUserID, id)
	if err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("save_mapping_cas").Inc()
		return gocql.UUID{}, false, platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to save conversation mapping",
			err,
			"save-mapping-cas-error",
			map[string]any{"user_a": lowUserID, "user_b": highUserID},
		)
	}
	if applied {
		return id, true, nil
	}

	existing, ok := prev["conversation_id"].(gocql.UUID)
	if !ok {
		return gocql.UUID{}, false, platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"conditional insert rejected without a prior conversation id",
			nil,
			"save-mapping-cas-no-prior",
			map[string]any{"user_a": lowUserID, "user_b": highUserID},
		)
	}
	return existing, false, nil
}

// UpsertIndexEntry writes one row of the per-user conversation index.
func (r *Repository) UpsertIndexEntry(ctx context.Context, entry domain.IndexEntry) error {
	err := r.client.Exec(ctx, upsertIndexCQL, cassandra.WriteConsistency,
		entry.UserID,
		entry.LastMessageID,
		entry.ConversationID,
		entry.OtherUserID,
		entry.LastSenderID,
		entry.Snippet,
	)
	if err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("upsert_index").Inc()
		return platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update conversation index",
			err,
			"upsert-index-error",
			map[string]any{
				"user_id":         entry.UserID,
				"conversation_id": entry.ConversationID.String(),
			},
		)
	}
	return nil
}

// ListByUser scans one page of the user's index partition, newest activity
// first. The returned page state is the driver's opaque continuation token.
func (r *Repository) ListByUser(ctx context.Context, userID int64, pageSize int, pageState []byte) ([]domain.Summary, []byte, error) {
	start := time.Now()
	iter := r.client.QueryPaged(ctx, listByUserCQL, cassandra.ReadConsistency, pageSize, pageState, userID)

	var (
		conversationID gocql.UUID
		otherUserID    int64
		lastMessageID  gocql.UUID
		lastSenderID   int64
		snippet        string
	)
	summaries := make([]domain.Summary, 0, pageSize)
	for iter.Scan(&conversationID, &otherUserID, &lastMessageID, &lastSenderID, &snippet) {
		summaries = append(summaries, domain.Summary{
			ConversationID:     conversationID,
			UserID:             userID,
			OtherUserID:        otherUserID,
			LastSenderID:       lastSenderID,
			LastMessageAt:      lastMessageID.Time().UTC(),
			LastMessageSnippet: snippet,
		})
	}
	next := iter.PageState()

	if err := iter.Close(); err != nil {
		metrics.QueryErrorsTotal.WithLabelValues("list_by_user").Inc()
		return nil, nil, platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list conversations",
			err,
			"list-by-user-error",
			map[string]any{"user_id": userID},
		)
	}

	metrics.PagedReadDuration.WithLabelValues("conversations_by_user").Observe(time.Since(start).Seconds())
	if len(next) == 0 {
		next = nil
	}
	return summaries, next, nil
}
