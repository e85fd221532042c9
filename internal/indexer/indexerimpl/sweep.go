package indexerimpl

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/orgball2608/ledgergram/internal/domain"
	"github.com/orgball2608/ledgergram/pkg/retry"
	"github.com/panjf2000/ants/v2"
)

// SweepOrphans reads every ledger post and every post blob and reports the
// difference both ways. Orphans go to the ops chat.
func (p *IndexerImpl) SweepOrphans(ctx context.Context) (domain.SweepReport, error) {
	posts, err := p.ledgerPosts(ctx)
	if err != nil {
		return domain.SweepReport{}, err
	}

	onLedger := make(map[string]struct{}, len(posts))
	for _, post := range posts {
		onLedger[blobKey(domain.WalletKey(post.Author), post.ContentHash)] = struct{}{}
	}

	onDisk := make(map[string]struct{})
	var report domain.SweepReport

	wallets, err := p.Blobs.Wallets(ctx)
	if err != nil {
		return domain.SweepReport{}, fmt.Errorf("failed to list wallets: %w", err)
	}
	for _, wallet := range wallets {
		entries, err := p.Blobs.List(ctx, wallet, domain.CategoryPosts)
		if err != nil {
			return domain.SweepReport{}, fmt.Errorf("failed to list posts of %s: %w", wallet, err)
		}
		for _, e := range entries {
			key := blobKey(wallet, e.Name)
			onDisk[key] = struct{}{}
			if _, ok := onLedger[key]; !ok {
				report.Orphans = append(report.Orphans, domain.OrphanBlob{Wallet: wallet, Filename: e.Name})
			}
		}
	}

	for _, post := range posts {
		if _, ok := onDisk[blobKey(domain.WalletKey(post.Author), post.ContentHash)]; !ok {
			report.Missing = append(report.Missing, post)
		}
	}

	for _, o := range report.Orphans {
		p.Logger.Warn("Orphan post blob", "wallet", o.Wallet, "filename", o.Filename)
	}
	for _, m := range report.Missing {
		p.Logger.Warn("Ledger post without blob", "post_id", m.ID, "author", m.Author.Hex(), "content_hash", m.ContentHash)
	}
	p.Logger.Info("Orphan sweep finished",
		"ledger_posts", len(posts),
		"orphans", len(report.Orphans),
		"missing", len(report.Missing))

	p.Telegram.ReportOrphans(report.Orphans)
	return report, nil
}

// ledgerPosts fetches posts 1..postCount on an ants pool. Ids with an empty
// contentHash are skipped.
func (p *IndexerImpl) ledgerPosts(ctx context.Context) ([]domain.Post, error) {
	var count uint64
	err := retry.Do(ctx, p.Logger, "post_count", func() error {
		var err error
		count, err = p.Ledger.PostCount(ctx)
		return err
	}, p.Retry)
	if err != nil {
		return nil, fmt.Errorf("failed to read post count: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(sweepWorkers, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		posts    = make([]domain.Post, 0, count)
		firstErr error
	)
	for id := uint64(1); id <= count; id++ {
		wg.Add(1)
		postID := id
		err := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			var post domain.Post
			err := retry.Do(ctx, p.Logger, "post", func() error {
				var err error
				post, err = p.Ledger.Post(ctx, postID)
				return err
			}, p.Retry)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("failed to read post %d: %w", postID, err)
				}
				return
			}
			if post.ContentHash != "" {
				posts = append(posts, post)
			}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("failed to submit job to worker pool: %w", err)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func blobKey(wallet, filename string) string {
	return wallet + "/" + filename
}
