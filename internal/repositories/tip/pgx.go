package tip

import (
	"context"
	"fmt"
	"math/big"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/ledgergram/internal/domain"
	"github.com/orgball2608/ledgergram/internal/repositories"
	"github.com/orgball2608/ledgergram/pkg/logger"
)

const table = "tips"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("TipRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// Insert stores a transfer; it reports false when (tx_hash, log_index) is already known
func (p *Pgx) Insert(ctx context.Context, tip domain.Tip) (bool, error) {
	amount := "0"
	if tip.Amount != nil {
		amount = tip.Amount.String()
	}
	createdAt := tip.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args, err := repositories.SqBuilder.
		Insert(table).
		Columns("tx_hash", "log_index", "from_address", "to_address", "amount", "block_number", "created_at").
		Values(tip.TxHash, int64(tip.LogIndex), tip.From, tip.To, sq.Expr("?::numeric", amount), int64(tip.BlockNumber), createdAt).
		Suffix("ON CONFLICT (tx_hash, log_index) DO NOTHING").
		ToSql()
	if err != nil {
		return false, repositories.ErrBadQuery
	}

	tag, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to insert tip: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Summary aggregates the transfers received by address
func (p *Pgx) Summary(ctx context.Context, address string) (domain.TipSummary, error) {
	query, args, err := repositories.SqBuilder.
		Select("count(*)", "COALESCE(sum(amount), 0)::text").
		From(table).
		Where(sq.Eq{"to_address": address}).
		ToSql()
	if err != nil {
		return domain.TipSummary{}, repositories.ErrBadQuery
	}

	summary := domain.TipSummary{Address: address}
	if err := p.pg.QueryRow(ctx, query, args...).Scan(&summary.Count, &summary.TotalReceived); err != nil {
		return domain.TipSummary{}, err
	}
	return summary, nil
}

// ListReceived returns the latest transfers received by address, limited by count
func (p *Pgx) ListReceived(ctx context.Context, address string, count int) ([]domain.Tip, error) {
	query, args, err := repositories.SqBuilder.
		Select("tx_hash", "log_index", "from_address", "to_address", "amount::text", "block_number", "created_at").
		From(table).
		Where(sq.Eq{"to_address": address}).
		OrderBy("block_number DESC", "log_index DESC").
		Limit(uint64(count)).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tips []domain.Tip
	for rows.Next() {
		var (
			t        domain.Tip
			logIndex int64
			amount   string
			block    int64
		)
		if err := rows.Scan(&t.TxHash, &logIndex, &t.From, &t.To, &amount, &block, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.LogIndex = uint(logIndex)
		t.BlockNumber = uint64(block)
		t.Amount, _ = new(big.Int).SetString(amount, 10)
		tips = append(tips, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tips, nil
}
