// Package feed merges the ledger's post list with the off-chain stores into
// ordered, decorated feeds and story bars.
package feed

import (
	"context"
	"time"

	"github.com/orgball2608/ledgergram/internal/domain"
	"github.com/orgball2608/ledgergram/internal/ledger"
	"github.com/orgball2608/ledgergram/pkg/logger"
)

const (
	DefaultProbeTimeout = 3 * time.Second
	DefaultWorkers      = 16
)

type BlobProber interface {
	Exists(ctx context.Context, wallet string, category domain.Category, filename string) (bool, error)
}

type LikeReader interface {
	Read(ctx context.Context, author, contentHash, user string) (domain.LikeState, error)
}

type CommentCounter interface {
	Count(ctx context.Context, author, postID string) (int, error)
}

type UsernameReader interface {
	Username(ctx context.Context, address string) (string, error)
}

type StoryScanner interface {
	ScanSince(ctx context.Context, since int64) ([]domain.Story, error)
}

type ViewStore interface {
	ListViewed(ctx context.Context, account string) ([]string, error)
	Unmark(ctx context.Context, account, storyID string) ([]string, error)
}

type Opts struct {
	Ledger       ledger.Gateway
	Blobs        BlobProber
	Likes        LikeReader
	Comments     CommentCounter
	Profiles     UsernameReader
	Stories      StoryScanner
	Views        ViewStore
	Logger       logger.Logger
	ProbeTimeout time.Duration
	Workers      int
}

type Builder struct {
	ledger       ledger.Gateway
	blobs        BlobProber
	likes        LikeReader
	comments     CommentCounter
	profiles     UsernameReader
	stories      StoryScanner
	views        ViewStore
	logger       logger.Logger
	probeTimeout time.Duration
	workers      int
}

func New(opts Opts) *Builder {
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = DefaultProbeTimeout
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	return &Builder{
		ledger:       opts.Ledger,
		blobs:        opts.Blobs,
		likes:        opts.Likes,
		comments:     opts.Comments,
		profiles:     opts.Profiles,
		stories:      opts.Stories,
		views:        opts.Views,
		logger:       opts.Logger.WithComponent("FeedBuilder"),
		probeTimeout: opts.ProbeTimeout,
		workers:      opts.Workers,
	}
}
