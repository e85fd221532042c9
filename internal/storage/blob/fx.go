package blob

import (
	"github.com/orgball2608/ledgergram/internal/crypto"
	"github.com/orgball2608/ledgergram/pkg/config"
	"github.com/orgball2608/ledgergram/pkg/logger"
	"go.uber.org/fx"
)

// CascadeGroup collects the stores that own per-post artifacts.
const CascadeGroup = `group:"post_cascade"`

type Opts struct {
	fx.In

	Config    *config.Config
	ServerKey crypto.ServerKey
	Logger    logger.Logger
	Cascaders []Cascader `group:"post_cascade"`
}

func NewFromOpts(opts Opts) *Store {
	return New(opts.Config.Storage.MediaRoot, opts.ServerKey, opts.Logger, opts.Cascaders...)
}

var Module = fx.Provide(NewFromOpts)
