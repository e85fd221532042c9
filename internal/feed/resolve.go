package feed

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/orgball2608/ledgergram/internal/domain"
	apperrors "github.com/orgball2608/ledgergram/pkg/errors"
)

// PostByID reads one ledger post. Ids the ledger never wrote are ErrNotFound.
func (b *Builder) PostByID(ctx context.Context, postID string) (domain.Post, error) {
	id, err := strconv.ParseUint(postID, 10, 64)
	if err != nil || id == 0 {
		return domain.Post{}, apperrors.Invalid("postId must be a positive integer")
	}
	p, err := b.ledger.Post(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}
	if p.ContentHash == "" {
		return domain.Post{}, fmt.Errorf("post %d: %w", id, apperrors.ErrNotFound)
	}
	return p, nil
}

// FindPost returns the ledger post of author that names contentHash. A claimed postID is
// checked against the ledger instead of scanning, and a mismatch is a validation error.
// found is false when no post names the blob.
func (b *Builder) FindPost(ctx context.Context, author common.Address, contentHash, postID string) (domain.Post, bool, error) {
	if postID != "" {
		p, err := b.PostByID(ctx, postID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return domain.Post{}, false, apperrors.Invalid("postId %s does not exist", postID)
			}
			return domain.Post{}, false, err
		}
		if p.Author != author || p.ContentHash != contentHash {
			return domain.Post{}, false, apperrors.Invalid("postId %s does not belong to %s", postID, contentHash)
		}
		return p, true, nil
	}

	posts, err := b.ledgerPosts(ctx)
	if err != nil {
		return domain.Post{}, false, err
	}
	for _, p := range posts {
		if p.Author == author && p.ContentHash == contentHash {
			return p, true, nil
		}
	}
	return domain.Post{}, false, nil
}
