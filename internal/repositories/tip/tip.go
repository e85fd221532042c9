package tip

import (
	"context"

	"github.com/orgball2608/ledgergram/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=tip.go -destination=mocks/mock.go
type Repository interface {
	// Insert stores a transfer; it reports false when (tx_hash, log_index) is already known
	Insert(ctx context.Context, tip domain.Tip) (bool, error)

	// Summary aggregates the transfers received by address
	Summary(ctx context.Context, address string) (domain.TipSummary, error)

	// ListReceived returns the latest transfers received by address, limited by count
	ListReceived(ctx context.Context, address string, count int) ([]domain.Tip, error)
}
