package indexerimpl

import (
	"context"
	"fmt"

	"github.com/orgball2608/ledgergram/internal/domain"
	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
	"github.com/orgball2608/ledgergram/pkg/formatter"
)

// Directory prefers the indexed user directory and falls back to scanning the
// media root when the table is empty or the database is unavailable.
func (p *IndexerImpl) Directory(ctx context.Context) ([]domain.DirectoryEntry, error) {
	if p.Users != nil {
		entries, err := p.Users.List(ctx)
		switch {
		case err != nil:
			p.Logger.Warn("User directory unavailable, scanning media root", "error", err)
		case len(entries) > 0:
			for i := range entries {
				entries[i].PostCount = p.postCount(ctx, entries[i].Address)
			}
			return entries, nil
		}
	}
	return p.scanDirectory(ctx)
}

func (p *IndexerImpl) scanDirectory(ctx context.Context) ([]domain.DirectoryEntry, error) {
	wallets, err := p.Blobs.Wallets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}

	entries := make([]domain.DirectoryEntry, 0, len(wallets))
	for _, wallet := range wallets {
		count := p.postCount(ctx, wallet)
		if count == 0 {
			continue
		}
		name, err := p.Profiles.Username(ctx, wallet)
		if err != nil {
			if !apperrors.IsNotFound(err) {
				p.Logger.Warn("Failed to read username", "wallet", wallet, "error", err)
			}
			name = "User " + formatter.ShortAddress(wallet)
		}
		entries = append(entries, domain.DirectoryEntry{
			Address:   wallet,
			Username:  name,
			PostCount: count,
		})
	}
	return entries, nil
}

func (p *IndexerImpl) postCount(ctx context.Context, wallet string) int {
	key, err := domain.NormalizeWallet(wallet)
	if err != nil {
		return 0
	}
	entries, err := p.Blobs.List(ctx, key, domain.CategoryPosts)
	if err != nil {
		p.Logger.Warn("Failed to count posts", "wallet", key, "error", err)
		return 0
	}
	return len(entries)
}

// TipSummary aggregates received tips. Without a database every address has none.
func (p *IndexerImpl) TipSummary(ctx context.Context, address string) (domain.TipSummary, error) {
	key, err := domain.NormalizeWallet(address)
	if err != nil {
		return domain.TipSummary{}, err
	}
	if p.Tips == nil {
		return domain.TipSummary{Address: key, TotalReceived: "0"}, nil
	}
	summary, err := p.Tips.Summary(ctx, key)
	if err != nil {
		return domain.TipSummary{}, fmt.Errorf("failed to summarize tips: %w", err)
	}
	return summary, nil
}
