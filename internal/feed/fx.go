package feed

import (
	"github.com/orgball2608/ledgergram/internal/ledger"
	"github.com/orgball2608/ledgergram/internal/storage/blob"
	"github.com/orgball2608/ledgergram/internal/storage/comments"
	"github.com/orgball2608/ledgergram/internal/storage/likes"
	"github.com/orgball2608/ledgergram/internal/storage/profile"
	"github.com/orgball2608/ledgergram/internal/storage/stories"
	"github.com/orgball2608/ledgergram/internal/storage/views"
	"github.com/orgball2608/ledgergram/pkg/config"
	"github.com/orgball2608/ledgergram/pkg/logger"
	"go.uber.org/fx"
)

type Params struct {
	fx.In

	Config   *config.Config
	Ledger   ledger.Gateway
	Blobs    *blob.Store
	Likes    *likes.Store
	Comments *comments.Store
	Profiles *profile.Store
	Stories  *stories.Index
	Views    *views.Tracker
	Logger   logger.Logger
}

func NewFromParams(p Params) *Builder {
	return New(Opts{
		Ledger:       p.Ledger,
		Blobs:        p.Blobs,
		Likes:        p.Likes,
		Comments:     p.Comments,
		Profiles:     p.Profiles,
		Stories:      p.Stories,
		Views:        p.Views,
		Logger:       p.Logger,
		ProbeTimeout: p.Config.Feed.ProbeTimeout,
		Workers:      p.Config.Feed.Workers,
	})
}

var Module = fx.Provide(NewFromParams)
