package indexer

import (
	"context"

	"github.com/orgball2608/ledgergram/internal/domain"
)

// Client keeps the Postgres read models in step with the ledger and checks the
// media root against it.
type Client interface {
	// SyncUsernames indexes UsernameSet events since the stored cursor
	SyncUsernames(ctx context.Context) (int, error)
	// SyncTips indexes token Transfer events since the stored cursor
	SyncTips(ctx context.Context) (int, error)
	// SweepOrphans compares post blobs with ledger records. Nothing is deleted
	SweepOrphans(ctx context.Context) (domain.SweepReport, error)
	// Directory lists known users with their post counts
	Directory(ctx context.Context) ([]domain.DirectoryEntry, error)
	TipSummary(ctx context.Context, address string) (domain.TipSummary, error)
	// Schedule starts the periodic jobs; they stop when ctx is done
	Schedule(ctx context.Context) error
}
