package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/orgball2608/ledgergram/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=ledger.go -destination=mocks/mock.go

// Gateway is the read/write surface of the post contract and its companion token.
// Every failure wraps errors.ErrLedger. Writes wait for the receipt and are never retried.
type Gateway interface {
	PostCount(ctx context.Context) (uint64, error)
	Post(ctx context.Context, id uint64) (domain.Post, error)
	Username(ctx context.Context, addr common.Address) (string, error)
	Bio(ctx context.Context, addr common.Address) (string, error)
	GetFollowing(ctx context.Context, addr common.Address) ([]common.Address, error)
	IsFollowing(ctx context.Context, follower, followee common.Address) (bool, error)
	IsLiked(ctx context.Context, postID uint64, user common.Address) (bool, error)
	PostLikeCount(ctx context.Context, postID uint64) (uint64, error)
	GetLikedPosts(ctx context.Context, user common.Address) ([]uint64, error)

	CreatePost(ctx context.Context, contentHash string) (string, error)
	Follow(ctx context.Context, addr common.Address) (string, error)
	Unfollow(ctx context.Context, addr common.Address) (string, error)
	SetUsername(ctx context.Context, username string) (string, error)

	LatestBlock(ctx context.Context) (uint64, error)
	UsernameEvents(ctx context.Context, from, to uint64) ([]domain.UsernameEvent, error)
	TransferEvents(ctx context.Context, from, to uint64) ([]domain.Tip, error)
}
