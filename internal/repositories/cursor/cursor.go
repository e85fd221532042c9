package cursor

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("cursor not found")

//go:generate go run go.uber.org/mock/mockgen -source=cursor.go -destination=mocks/mock.go
type Repository interface {
	// Get returns the last fully indexed block for a named stream
	Get(ctx context.Context, name string) (uint64, error)

	// Set moves a named stream's cursor to block
	Set(ctx context.Context, name string, block uint64) error
}
