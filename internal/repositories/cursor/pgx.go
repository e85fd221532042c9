package cursor

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/ledgergram/internal/repositories"
	"github.com/orgball2608/ledgergram/pkg/logger"
)

const table = "indexer_cursors"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("CursorRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// Get returns the last fully indexed block for a named stream
func (p *Pgx) Get(ctx context.Context, name string) (uint64, error) {
	query, args, err := repositories.SqBuilder.
		Select("block").
		From(table).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	var block int64
	if err := p.pg.QueryRow(ctx, query, args...).Scan(&block); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return uint64(block), nil
}

// Set moves a named stream's cursor to block
func (p *Pgx) Set(ctx context.Context, name string, block uint64) error {
	query, args, err := repositories.SqBuilder.
		Insert(table).
		Columns("name", "block", "updated_at").
		Values(name, int64(block), time.Now()).
		Suffix("ON CONFLICT (name) DO UPDATE SET block = EXCLUDED.block, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := p.pg.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set cursor %s: %w", name, err)
	}
	return nil
}
