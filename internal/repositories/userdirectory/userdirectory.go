package userdirectory

import (
	"context"

	"github.com/orgball2608/ledgergram/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=userdirectory.go -destination=mocks/mock.go
type Repository interface {
	// Upsert records a UsernameSet event unless a later block already set the name
	Upsert(ctx context.Context, event domain.UsernameEvent) error

	// List returns every indexed user ordered by username
	List(ctx context.Context) ([]domain.DirectoryEntry, error)
}
