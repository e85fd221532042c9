package feed

import (
	"context"
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/orgball2608/ledgergram/internal/domain"
	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
)

// Build returns the feed for req, newest ledger id first. Ledger failures are fatal;
// missing or slow blobs drop their post; decoration failures degrade to zero values.
func (b *Builder) Build(ctx context.Context, req domain.FeedRequest) ([]domain.FeedItem, error) {
	if req.Mode == "" {
		req.Mode = domain.FeedFollowing
	}
	if req.Media == "" {
		req.Media = domain.FilterAll
	}
	if req.Mode == domain.FeedFollowing && req.Viewer == (common.Address{}) {
		return nil, apperrors.Invalid("viewer is required for the following feed")
	}

	posts, err := b.ledgerPosts(ctx)
	if err != nil {
		return nil, err
	}
	posts = filter(posts, func(p domain.Post) bool { return req.Media.Accepts(p.ContentHash) })

	if req.Mode == domain.FeedFollowing {
		following, err := b.ledger.GetFollowing(ctx, req.Viewer)
		if err != nil {
			return nil, err
		}
		allowed := make(map[common.Address]struct{}, len(following)+1)
		allowed[req.Viewer] = struct{}{}
		for _, a := range following {
			allowed[a] = struct{}{}
		}
		posts = filter(posts, func(p domain.Post) bool {
			_, ok := allowed[p.Author]
			return ok
		})
	}

	posts, err = b.dropGhosts(ctx, posts)
	if err != nil {
		return nil, err
	}

	items, err := b.decorate(ctx, req.Viewer, posts)
	if err != nil {
		return nil, err
	}

	b.logger.Debug("Feed built", "viewer", req.Viewer.Hex(), "mode", req.Mode, "media", req.Media, "items", len(items))
	return items, nil
}

// UserPosts is the profile grid of author: the same pipeline restricted to one author.
func (b *Builder) UserPosts(ctx context.Context, viewer, author common.Address) ([]domain.FeedItem, error) {
	posts, err := b.ledgerPosts(ctx)
	if err != nil {
		return nil, err
	}
	posts = filter(posts, func(p domain.Post) bool { return p.Author == author })

	posts, err = b.dropGhosts(ctx, posts)
	if err != nil {
		return nil, err
	}
	return b.decorate(ctx, viewer, posts)
}

func filter(posts []domain.Post, keep func(domain.Post) bool) []domain.Post {
	out := posts[:0]
	for _, p := range posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// ledgerPosts fetches ids count..1 concurrently and returns them in that order.
func (b *Builder) ledgerPosts(ctx context.Context) ([]domain.Post, error) {
	count, err := b.ledger.PostCount(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return []domain.Post{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	slots := make([]domain.Post, count)
	var (
		mu       sync.Mutex
		firstErr error
	)
	err = parallel(ctx, b.workers, int(count), func(ctx context.Context, i int) {
		id := count - uint64(i)
		p, err := b.ledger.Post(ctx, id)
		if err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
				cancel()
			}
			mu.Unlock()
			return
		}
		slots[i] = p
	})
	if firstErr != nil {
		return nil, firstErr
	}
	if err != nil {
		return nil, err
	}

	// Ids that were never written come back with an empty contentHash.
	return filter(slots, func(p domain.Post) bool { return p.ContentHash != "" }), nil
}

// dropGhosts keeps posts whose blob answers an existence probe within the probe timeout.
func (b *Builder) dropGhosts(ctx context.Context, posts []domain.Post) ([]domain.Post, error) {
	present := make([]bool, len(posts))
	err := parallel(ctx, b.workers, len(posts), func(ctx context.Context, i int) {
		present[i] = b.probe(ctx, posts[i])
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Post, 0, len(posts))
	for i, p := range posts {
		if present[i] {
			out = append(out, p)
		}
	}
	return out, nil
}

type probeResult struct {
	ok  bool
	err error
}

func (b *Builder) probe(ctx context.Context, p domain.Post) bool {
	ctx, cancel := context.WithTimeout(ctx, b.probeTimeout)
	defer cancel()

	wallet := domain.WalletKey(p.Author)
	done := make(chan probeResult, 1)
	go func() {
		ok, err := b.blobs.Exists(ctx, wallet, domain.CategoryPosts, p.ContentHash)
		done <- probeResult{ok: ok, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			b.logger.Warn("Blob probe failed, dropping post", "postID", p.ID, "contentHash", p.ContentHash, "error", r.err)
			return false
		}
		if !r.ok {
			b.logger.Debug("Dropping ghost post", "postID", p.ID, "contentHash", p.ContentHash)
		}
		return r.ok
	case <-ctx.Done():
		b.logger.Warn("Blob probe timed out, dropping post", "postID", p.ID, "contentHash", p.ContentHash)
		return false
	}
}

func (b *Builder) decorate(ctx context.Context, viewer common.Address, posts []domain.Post) ([]domain.FeedItem, error) {
	viewerKey := ""
	if viewer != (common.Address{}) {
		viewerKey = domain.WalletKey(viewer)
	}

	names := b.usernames(ctx, authorsOf(posts))

	items := make([]domain.FeedItem, len(posts))
	err := parallel(ctx, b.workers, len(posts), func(ctx context.Context, i int) {
		p := posts[i]
		author := domain.WalletKey(p.Author)
		item := domain.FeedItem{
			ID:          p.ID,
			Author:      author,
			Username:    names[author],
			ContentHash: p.ContentHash,
			Timestamp:   p.Timestamp,
			MediaURL:    domain.MediaURL(author, domain.CategoryPosts, p.ContentHash),
			MediaType:   domain.MediaTypeOf(p.ContentHash),
		}

		likes, err := b.likes.Read(ctx, author, p.ContentHash, viewerKey)
		if err != nil {
			b.logger.Warn("Failed to read likes", "postID", p.ID, "error", err)
		} else {
			item.LikeCount = likes.Count
			item.LikedByViewer = likes.LikedByUser
		}

		n, err := b.comments.Count(ctx, author, p.Key())
		if err != nil {
			b.logger.Warn("Failed to count comments", "postID", p.ID, "error", err)
		} else {
			item.CommentCount = n
		}

		items[i] = item
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func authorsOf(posts []domain.Post) []common.Address {
	seen := make(map[common.Address]struct{}, len(posts))
	var out []common.Address
	for _, p := range posts {
		if _, ok := seen[p.Author]; ok {
			continue
		}
		seen[p.Author] = struct{}{}
		out = append(out, p.Author)
	}
	return out
}

// usernames resolves each address once per build: the on-chain name first, then the
// off-chain profile name. Unresolved addresses are simply absent from the map.
func (b *Builder) usernames(ctx context.Context, addrs []common.Address) map[string]string {
	names := make([]string, len(addrs))
	_ = parallel(ctx, b.workers, len(addrs), func(ctx context.Context, i int) {
		names[i] = b.username(ctx, addrs[i])
	})

	out := make(map[string]string, len(addrs))
	for i, a := range addrs {
		if names[i] != "" {
			out[domain.WalletKey(a)] = names[i]
		}
	}
	return out
}

func (b *Builder) username(ctx context.Context, addr common.Address) string {
	name, err := b.ledger.Username(ctx, addr)
	if err != nil {
		b.logger.Debug("On-chain username lookup failed", "address", addr.Hex(), "error", err)
	}
	if name != "" {
		return name
	}
	if b.profiles == nil {
		return ""
	}
	name, err = b.profiles.Username(ctx, domain.WalletKey(addr))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		b.logger.Debug("Profile username lookup failed", "address", addr.Hex(), "error", err)
	}
	return name
}
