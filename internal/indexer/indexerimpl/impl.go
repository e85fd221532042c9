package indexerimpl

import (
	"context"
	"time"

	"github.com/orgball2608/ledgergram/internal/domain"
	"github.com/orgball2608/ledgergram/internal/indexer"
	"github.com/orgball2608/ledgergram/internal/ledger"
	"github.com/orgball2608/ledgergram/internal/repositories/cursor"
	"github.com/orgball2608/ledgergram/internal/repositories/tip"
	"github.com/orgball2608/ledgergram/internal/repositories/userdirectory"
	"github.com/orgball2608/ledgergram/internal/storage/blob"
	"github.com/orgball2608/ledgergram/internal/telegram"
	"github.com/orgball2608/ledgergram/pkg/config"
	"github.com/orgball2608/ledgergram/pkg/logger"
	"github.com/orgball2608/ledgergram/pkg/retry"
	"go.uber.org/fx"
)

const (
	streamUsernames = "usernames"
	streamTips      = "tips"

	defaultBlockSpan = 5000
	sweepWorkers     = 8
)

// BlobLister is the part of the blob store the sweep and the directory fallback read.
type BlobLister interface {
	Wallets(ctx context.Context) ([]string, error)
	List(ctx context.Context, wallet string, category domain.Category) ([]blob.Entry, error)
}

type UsernameReader interface {
	Username(ctx context.Context, address string) (string, error)
}

type Opts struct {
	fx.In

	Ledger    ledger.Gateway
	Blobs     *blob.Store
	Profiles  UsernameReader
	Telegram  telegram.Client
	Directory userdirectory.Repository `optional:"true"`
	Tips      tip.Repository           `optional:"true"`
	Cursors   cursor.Repository        `optional:"true"`
	Config    *config.Config
	Logger    logger.Logger
}

type IndexerImpl struct {
	Ledger   ledger.Gateway
	Blobs    BlobLister
	Profiles UsernameReader
	Telegram telegram.Client
	Users    userdirectory.Repository
	Tips     tip.Repository
	Cursors  cursor.Repository
	Logger   logger.Logger

	Interval   time.Duration
	SweepCron  string
	BlockSpan  uint64
	StartBlock uint64
	Retry      retry.Config
}

func New(opts Opts) *IndexerImpl {
	span := opts.Config.Indexer.BlockSpan
	if span == 0 {
		span = defaultBlockSpan
	}
	return &IndexerImpl{
		Ledger:     opts.Ledger,
		Blobs:      opts.Blobs,
		Profiles:   opts.Profiles,
		Telegram:   opts.Telegram,
		Users:      opts.Directory,
		Tips:       opts.Tips,
		Cursors:    opts.Cursors,
		Logger:     opts.Logger.WithComponent("Indexer"),
		Interval:   opts.Config.Indexer.Interval,
		SweepCron:  opts.Config.Indexer.SweepCron,
		BlockSpan:  span,
		StartBlock: opts.Config.Ledger.StartBlock,
		Retry:      retry.DefaultConfig(),
	}
}

var _ indexer.Client = (*IndexerImpl)(nil)
