package userdirectory

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/ledgergram/internal/domain"
	"github.com/orgball2608/ledgergram/internal/repositories"
	"github.com/orgball2608/ledgergram/pkg/logger"
)

const table = "user_directory"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("UserDirectoryRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// Upsert records a UsernameSet event unless a later block already set the name
func (p *Pgx) Upsert(ctx context.Context, event domain.UsernameEvent) error {
	query, args, err := repositories.SqBuilder.
		Insert(table).
		Columns("address", "username", "updated_block", "updated_at").
		Values(event.Address, event.Username, int64(event.BlockNumber), time.Now()).
		Suffix(`ON CONFLICT (address) DO UPDATE
			SET username = EXCLUDED.username,
			    updated_block = EXCLUDED.updated_block,
			    updated_at = EXCLUDED.updated_at
			WHERE user_directory.updated_block <= EXCLUDED.updated_block`).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := p.pg.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert username: %w", err)
	}
	return nil
}

// List returns every indexed user ordered by username
func (p *Pgx) List(ctx context.Context) ([]domain.DirectoryEntry, error) {
	query, args, err := repositories.SqBuilder.
		Select("address", "username", "updated_block", "updated_at").
		From(table).
		OrderBy("lower(username)").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.DirectoryEntry
	for rows.Next() {
		var (
			e     domain.DirectoryEntry
			block int64
		)
		if err := rows.Scan(&e.Address, &e.Username, &block, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.UpdatedBlock = uint64(block)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
