package conversation

import (
	"context"

	"github.com/gocql/gocql"
	"github.com/rs/zerolog"

	"messenger/services/chat-api/internal/infrastructure/metrics"
	"messenger/services/chat-api/internal/utils/platformerrors"
)

// Service resolves conversation identity and lists a user's conversations.
type Service interface {
	ResolveOrCreate(ctx context.Context, userA, userB int64) (gocql.UUID, error)
	ListForUser(ctx context.Context, userID int64, pageSize int, cursor []byte) ([]Summary, []byte, error)
	GetByID(ctx context.Context, id gocql.UUID) (*Summary, error)
}

// ServiceImpl is the production Service backed by the Cassandra repository.
type ServiceImpl struct {
	conversations   Repository
	casEnabled      bool
	defaultPageSize int
	log             zerolog.Logger
}

// NewService wires dependencies. casEnabled selects the conditional-insert
// identity creation path; the plain path reproduces the historical
// read-then-write behavior.
func NewService(conversations Repository, casEnabled bool, defaultPageSize int, log zerolog.Logger) *ServiceImpl {
	return &ServiceImpl{
		conversations:   conversations,
		casEnabled:      casEnabled,
		defaultPageSize: defaultPageSize,
		log:             log.With().Str("component", "conversation-service").Logger(),
	}
}

// ResolveOrCreate finds the canonical conversation ID for a user pair,
// creating the mapping on first contact. The result is symmetric in its
// arguments.
func (s *ServiceImpl) ResolveOrCreate(ctx context.Context, userA, userB int64) (gocql.UUID, error) {
	if userA == userB {
		return gocql.UUID{}, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"cannot converse with self",
			nil,
			"conversation-self",
		)
	}

	low, high := NormalizePair(userA, userB)

	id, found, err := s.conversations.FindMapping(ctx, low, high)
	if err != nil {
		return gocql.UUID{}, err
	}
	if found {
		return id, nil
	}

	newID, err := gocql.RandomUUID()
	if err != nil {
		return gocql.UUID{}, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeInternal,
			"generate conversation id",
			err,
			"conversation-id-gen",
		)
	}

	if !s.casEnabled {
		// Read-then-write: concurrent first contacts can each insert a
		// distinct ID for the same pair. Last write wins the cell.
		if err := s.conversations.SaveMapping(ctx, low, high, newID); err != nil {
			return gocql.UUID{}, err
		}
		metrics.ConversationCreatesTotal.WithLabelValues("plain", "created").Inc()
		s.log.Info().
			Int64("user_a", low).
			Int64("user_b", high).
			Str("conversation_id", newID.String()).
			Msg("created conversation")
		return newID, nil
	}

	winner, created, err := s.conversations.SaveMappingCAS(ctx, low, high, newID)
	if err != nil {
		return gocql.UUID{}, err
	}
	if created {
		metrics.ConversationCreatesTotal.WithLabelValues("cas", "created").Inc()
		s.log.Info().
			Int64("user_a", low).
			Int64("user_b", high).
			Str("conversation_id", winner.String()).
			Msg("created conversation")
	} else {
		metrics.ConversationCreatesTotal.WithLabelValues("cas", "adopted").Inc()
		s.log.Debug().
			Int64("user_a", low).
			Int64("user_b", high).
			Str("conversation_id", winner.String()).
			Msg("adopted concurrently created conversation")
	}
	return winner, nil
}

// ListForUser returns one page of the user's conversations ordered by
// last-message recency. A non-positive page size falls back to the default
// instead of failing.
func (s *ServiceImpl) ListForUser(ctx context.Context, userID int64, pageSize int, cursor []byte) ([]Summary, []byte, error) {
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	return s.conversations.ListByUser(ctx, userID, pageSize, cursor)
}

// GetByID reports the structural limitation of the partitioning scheme: the
// index is keyed by user, so a conversation cannot be fetched by its ID alone
// without a full scan, which this layer refuses to do.
func (s *ServiceImpl) GetByID(ctx context.Context, id gocql.UUID) (*Summary, error) {
	return nil, platformerrors.NewErrorWithContext(
		ctx,
		platformerrors.LayerDomain,
		platformerrors.ErrorTypeNotFound,
		"conversations are partitioned by user; lookup by conversation id is not supported",
		nil,
		"conversation-by-id-unsupported",
		map[string]any{"conversation_id": id.String()},
	)
}
