package indexerimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/orgball2608/ledgergram/internal/domain"
	"github.com/orgball2608/ledgergram/internal/repositories/cursor"
	"github.com/orgball2608/ledgergram/pkg/retry"
)

var errNoDatabase = errors.New("indexer database is not configured")

// SyncUsernames upserts UsernameSet events into the user directory.
func (p *IndexerImpl) SyncUsernames(ctx context.Context) (int, error) {
	if p.Users == nil || p.Cursors == nil {
		return 0, errNoDatabase
	}
	return p.syncStream(ctx, streamUsernames, func(ctx context.Context, from, to uint64) (int, error) {
		var events []domain.UsernameEvent
		err := retry.Do(ctx, p.Logger, "username_events", func() error {
			var err error
			events, err = p.Ledger.UsernameEvents(ctx, from, to)
			return err
		}, p.Retry)
		if err != nil {
			return 0, err
		}

		for _, ev := range events {
			if err := p.Users.Upsert(ctx, ev); err != nil {
				return 0, fmt.Errorf("failed to upsert username for %s: %w", ev.Address, err)
			}
		}
		return len(events), nil
	})
}

// SyncTips stores token transfers and announces the ones seen for the first time.
func (p *IndexerImpl) SyncTips(ctx context.Context) (int, error) {
	if p.Tips == nil || p.Cursors == nil {
		return 0, errNoDatabase
	}
	return p.syncStream(ctx, streamTips, func(ctx context.Context, from, to uint64) (int, error) {
		var tips []domain.Tip
		err := retry.Do(ctx, p.Logger, "transfer_events", func() error {
			var err error
			tips, err = p.Ledger.TransferEvents(ctx, from, to)
			return err
		}, p.Retry)
		if err != nil {
			return 0, err
		}

		inserted := 0
		for _, t := range tips {
			isNew, err := p.Tips.Insert(ctx, t)
			if err != nil {
				return 0, fmt.Errorf("failed to insert tip %s/%d: %w", t.TxHash, t.LogIndex, err)
			}
			if !isNew {
				continue
			}
			inserted++
			p.Telegram.AnnounceTip(t, p.usernameOf(ctx, t.To))
		}
		return inserted, nil
	})
}

// syncStream walks [cursor+1, latest] in BlockSpan chunks and moves the cursor
// after each chunk, so a failure resumes from the last finished chunk.
func (p *IndexerImpl) syncStream(ctx context.Context, stream string, fn func(ctx context.Context, from, to uint64) (int, error)) (int, error) {
	var latest uint64
	err := retry.Do(ctx, p.Logger, "latest_block", func() error {
		var err error
		latest, err = p.Ledger.LatestBlock(ctx)
		return err
	}, p.Retry)
	if err != nil {
		return 0, fmt.Errorf("failed to read latest block: %w", err)
	}

	from := p.StartBlock
	last, err := p.Cursors.Get(ctx, stream)
	switch {
	case errors.Is(err, cursor.ErrNotFound):
	case err != nil:
		return 0, fmt.Errorf("failed to read %s cursor: %w", stream, err)
	default:
		from = last + 1
	}

	total := 0
	for start := from; start <= latest; start += p.BlockSpan {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		end := start + p.BlockSpan - 1
		if end > latest {
			end = latest
		}

		n, err := fn(ctx, start, end)
		if err != nil {
			return total, fmt.Errorf("failed to index %s blocks %d-%d: %w", stream, start, end, err)
		}
		if err := p.Cursors.Set(ctx, stream, end); err != nil {
			return total, fmt.Errorf("failed to move %s cursor: %w", stream, err)
		}
		total += n
	}

	if total > 0 {
		p.Logger.Info("Indexed ledger events", "stream", stream, "count", total, "latest_block", latest)
	}
	return total, nil
}

func (p *IndexerImpl) usernameOf(ctx context.Context, address string) string {
	name, err := p.Profiles.Username(ctx, address)
	if err != nil {
		return ""
	}
	return name
}
