package feed

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/orgball2608/ledgergram/internal/domain"
)

// Stories builds the story bar for viewer: their own group first, then followed
// authors ordered by their newest story. Stories inside a group play oldest first.
func (b *Builder) Stories(ctx context.Context, viewer common.Address, since int64) ([]domain.StoryGroup, error) {
	all, err := b.stories.ScanSince(ctx, since)
	if err != nil {
		return nil, err
	}

	viewerKey := domain.WalletKey(viewer)
	allowed := map[string]struct{}{viewerKey: {}}
	following, err := b.ledger.GetFollowing(ctx, viewer)
	if err != nil {
		return nil, err
	}
	for _, a := range following {
		allowed[domain.WalletKey(a)] = struct{}{}
	}

	viewedList, err := b.views.ListViewed(ctx, viewerKey)
	if err != nil {
		return nil, err
	}
	viewed := make(map[string]struct{}, len(viewedList))
	for _, id := range viewedList {
		viewed[id] = struct{}{}
	}

	// all is newest first, so first appearance orders the groups.
	var order []string
	groups := make(map[string]*domain.StoryGroup)
	for _, s := range all {
		if _, ok := allowed[s.Address]; !ok {
			continue
		}
		g, ok := groups[s.Address]
		if !ok {
			g = &domain.StoryGroup{Address: s.Address, Own: s.Address == viewerKey}
			groups[s.Address] = g
			order = append(order, s.Address)
		}
		_, seen := viewed[s.ID]
		g.Stories = append(g.Stories, domain.StoryItem{Story: s, Viewed: seen})
		if !seen {
			g.Unviewed++
		}
	}

	addrs := make([]common.Address, 0, len(order))
	for _, a := range order {
		addrs = append(addrs, common.HexToAddress(a))
	}
	names := b.usernames(ctx, addrs)

	out := make([]domain.StoryGroup, 0, len(order))
	if g, ok := groups[viewerKey]; ok {
		out = append(out, *g)
	}
	for _, a := range order {
		if a == viewerKey {
			continue
		}
		out = append(out, *groups[a])
	}
	for i := range out {
		out[i].Username = names[out[i].Address]
		reverse(out[i].Stories)
	}
	return out, nil
}

func reverse(items []domain.StoryItem) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}

// Resurface unmarks stories that appeared since the client's previous snapshot and
// belong to someone else, so they show as unseen. It returns the unmarked ids.
func (b *Builder) Resurface(ctx context.Context, viewer common.Address, previous []string) ([]string, error) {
	current, err := b.stories.ScanSince(ctx, 0)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(previous))
	for _, id := range previous {
		known[id] = struct{}{}
	}

	viewerKey := domain.WalletKey(viewer)
	var unmarked []string
	for _, s := range current {
		if _, ok := known[s.ID]; ok || s.Address == viewerKey {
			continue
		}
		if _, err := b.views.Unmark(ctx, viewerKey, s.ID); err != nil {
			return unmarked, err
		}
		unmarked = append(unmarked, s.ID)
	}

	if len(unmarked) > 0 {
		b.logger.Debug("Resurfaced new stories", "viewer", viewerKey, "count", len(unmarked))
	}
	return unmarked, nil
}
