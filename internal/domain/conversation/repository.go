package conversation

import (
	"context"

	"github.com/gocql/gocql"
)

// Repository persists the user-pair identity mapping and answers the per-user
// conversation listing. The pair arguments must already be normalized
// (low <= high).
type Repository interface {
	// FindMapping point-reads the conversation ID for a normalized pair.
	FindMapping(ctx context.Context, lowUserID, highUserID int64) (gocql.UUID, bool, error)

	// SaveMapping inserts the mapping unconditionally. Two concurrent
	// first contacts can both pass the preceding FindMapping miss and
	// insert distinct IDs; the later write wins the cell and the earlier
	// ID is orphaned. Kept for parity with deployments that cannot afford
	// lightweight transactions.
	SaveMapping(ctx context.Context, lowUserID, highUserID int64, id gocql.UUID) error

	// SaveMappingCAS inserts the mapping conditionally. When another
	// writer got there first, the stored ID is returned with created ==
	// false and the proposed ID must be discarded.
	SaveMappingCAS(ctx context.Context, lowUserID, highUserID int64, id gocql.UUID) (winner gocql.UUID, created bool, err error)

	// ListByUser returns one page of the user's conversation index, most
	// recently active first, plus the opaque continuation state.
	ListByUser(ctx context.Context, userID int64, pageSize int, pageState []byte) ([]Summary, []byte, error)
}

// IndexRepository maintains the denormalized per-user conversation index.
// Only the message write path appends to it.
type IndexRepository interface {
	UpsertIndexEntry(ctx context.Context, entry IndexEntry) error
}
